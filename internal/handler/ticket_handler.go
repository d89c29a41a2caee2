package handler

import (
	"encoding/hex"
	"net/http"

	"ticket-chain/internal/ledger"
	"ticket-chain/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

type TicketHandler struct {
	ledger *ledger.Ledger
}

func NewTicketHandler(l *ledger.Ledger) *TicketHandler {
	return &TicketHandler{ledger: l}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("tickets", h.Mint)
		router.GET("tickets/:uuid", h.GetByTicketID)
		router.GET("tickets/:uuid/verify", h.Verify)
		router.GET("tickets/:uuid/qr", h.GetQRCode)
		router.POST("tickets/:uuid/transfer", h.Transfer)
		router.POST("tickets/:uuid/confirm", h.ConfirmTransfer)
		router.POST("tickets/:uuid/refund", h.Refund)
		router.POST("tickets/:uuid/use", h.Use)
		router.GET("users/:address/tickets", h.GetUserTickets)
	}
}

// decodeHexField 簽章與公鑰欄位用 hex 傳輸，空字串視為未提供
func decodeHexField(c *gin.Context, value, name string) ([]byte, bool) {
	if value == "" {
		return nil, true
	}
	decoded, err := hex.DecodeString(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " encoding"})
		return nil, false
	}
	return decoded, true
}

func (h *TicketHandler) Mint(c *gin.Context) {
	var req model.MintTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if !req.TicketType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket type"})
		return
	}
	signature, ok := decodeHexField(c, req.Signature, "signature")
	if !ok {
		return
	}
	publicKey, ok := decodeHexField(c, req.PublicKey, "public key")
	if !ok {
		return
	}

	ticket, err := h.ledger.MintTicket(req.EventID, req.BuyerAddr, req.TicketType, signature, publicKey)
	if err != nil {
		handleError(c, err, "Mint")
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) GetByTicketID(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket uuid"})
		return
	}
	ticket, err := h.ledger.GetTicket(ticketID)
	if err != nil {
		handleError(c, err, "GetByTicketID")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) Transfer(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket uuid"})
		return
	}
	var req model.TransferTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	signature, ok := decodeHexField(c, req.Signature, "signature")
	if !ok {
		return
	}
	publicKey, ok := decodeHexField(c, req.PublicKey, "public key")
	if !ok {
		return
	}

	if err := h.ledger.TransferTicket(ticketID, req.From, req.To, req.Price, signature, publicKey); err != nil {
		handleError(c, err, "Transfer")
		return
	}
	c.Status(http.StatusOK)
}

func (h *TicketHandler) ConfirmTransfer(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket uuid"})
		return
	}
	var req model.ConfirmTransferRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.ledger.ConfirmTransfer(ticketID, req.To); err != nil {
		handleError(c, err, "ConfirmTransfer")
		return
	}
	c.Status(http.StatusOK)
}

func (h *TicketHandler) Refund(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket uuid"})
		return
	}
	var req model.RefundTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	amount, err := h.ledger.RequestRefund(ticketID, req.OwnerAddr)
	if err != nil {
		handleError(c, err, "Refund")
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund_amount": amount})
}

func (h *TicketHandler) Use(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket uuid"})
		return
	}
	var req model.UseTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.ledger.UseTicket(ticketID, req.PresentedBy); err != nil {
		handleError(c, err, "Use")
		return
	}
	c.Status(http.StatusOK)
}

func (h *TicketHandler) Verify(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket uuid"})
		return
	}
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing address query parameter"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": h.ledger.VerifyTicket(ticketID, address)})
}

// GetQRCode 回傳票券 QR 憑證的 PNG 圖檔
func (h *TicketHandler) GetQRCode(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket uuid"})
		return
	}
	ticket, err := h.ledger.GetTicket(ticketID)
	if err != nil {
		handleError(c, err, "GetQRCode")
		return
	}
	png, err := qrcode.Encode(ticket.QRToken, qrcode.Medium, 256)
	if err != nil {
		handleError(c, err, "GetQRCode")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *TicketHandler) GetUserTickets(c *gin.Context) {
	address := c.Param("address")
	c.JSON(http.StatusOK, h.ledger.GetUserTickets(address))
}
