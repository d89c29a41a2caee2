package handler

import (
	"net/http"

	"ticket-chain/internal/ledger"
	"ticket-chain/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	ledger *ledger.Ledger
}

func NewEventHandler(l *ledger.Ledger) *EventHandler {
	return &EventHandler{ledger: l}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/:uuid", h.GetByEventID)
		router.GET("events/:uuid/stats", h.GetStats)
		router.GET("events/:uuid/tickets", h.GetEventTickets)
		router.POST("events", h.Create)
		router.POST("events/:uuid/waitlist", h.JoinWaitlist)
		router.PUT("events/:uuid/cancel", h.Cancel)
	}
}

func (h *EventHandler) List(c *gin.Context) {
	events := h.ledger.ListEvents()
	resp := make([]model.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, e.ToResponse())
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetByEventID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	event, err := h.ledger.GetEvent(eventID)
	if err != nil {
		handleError(c, err, "GetByEventID")
		return
	}
	c.JSON(http.StatusOK, event.ToResponse())
}

func (h *EventHandler) Create(c *gin.Context) {
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	for t := range req.TicketTypes {
		if !t.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket type"})
			return
		}
	}
	created, err := h.ledger.CreateEvent(req)
	if err != nil {
		handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created.ToResponse())
}

func (h *EventHandler) Cancel(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	var req model.CancelEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.ledger.CancelEvent(eventID, req.OrganizerAddr); err != nil {
		handleError(c, err, "Cancel")
		return
	}
	c.Status(http.StatusOK)
}

func (h *EventHandler) JoinWaitlist(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	var req model.JoinWaitlistRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.ledger.JoinWaitlist(eventID, req.Address); err != nil {
		handleError(c, err, "JoinWaitlist")
		return
	}
	c.Status(http.StatusOK)
}

func (h *EventHandler) GetStats(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	stats, err := h.ledger.GetEventStats(eventID)
	if err != nil {
		handleError(c, err, "GetStats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *EventHandler) GetEventTickets(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	if _, err := h.ledger.GetEvent(eventID); err != nil {
		handleError(c, err, "GetEventTickets")
		return
	}
	c.JSON(http.StatusOK, h.ledger.GetEventTickets(eventID))
}
