package handler

import (
	"errors"
	"net/http"

	apperrors "ticket-chain/pkg/app_errors"
	"ticket-chain/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// handleError 把帳本錯誤對應到 HTTP 狀態碼，各 handler 共用
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
	case errors.Is(err, apperrors.ErrNotEventOrganizer):
		log.Warn("Not event organizer")
		c.JSON(http.StatusForbidden, gin.H{"error": "Not event organizer"})
	case errors.Is(err, apperrors.ErrNotTicketOwner):
		log.Warn("Not ticket owner")
		c.JSON(http.StatusForbidden, gin.H{"error": "Not ticket owner"})
	case errors.Is(err, apperrors.ErrTransferWrongRecipient):
		log.Warn("Wrong transfer recipient")
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the designated recipient"})
	case errors.Is(err, apperrors.ErrInvalidSignature):
		log.Warn("Invalid signature")
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid signature"})
	case errors.Is(err, apperrors.ErrInvalidTicketStatus):
		log.Warn("Invalid ticket status")
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid ticket status"})
	case errors.Is(err, apperrors.ErrNoPendingTransfer):
		log.Warn("No pending transfer")
		c.JSON(http.StatusConflict, gin.H{"error": "No pending transfer"})
	case errors.Is(err, apperrors.ErrTransferExpired):
		log.Warn("Pending transfer expired")
		c.JSON(http.StatusConflict, gin.H{"error": "Pending transfer expired"})
	case errors.Is(err, apperrors.ErrEventCancelled):
		log.Warn("Event cancelled")
		c.JSON(http.StatusConflict, gin.H{"error": "Event cancelled"})
	case errors.Is(err, apperrors.ErrEventPassed):
		log.Warn("Event already passed")
		c.JSON(http.StatusConflict, gin.H{"error": "Event already passed"})
	case errors.Is(err, apperrors.ErrNoInventory):
		log.Warn("Sold out")
		c.JSON(http.StatusConflict, gin.H{"error": "Sold out"})
	case errors.Is(err, apperrors.ErrExceedsMaxPerUser):
		log.Warn("Exceeds max per user")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exceeds max per user"})
	case errors.Is(err, apperrors.ErrPriceBelowMinimum):
		log.Warn("Price below minimum")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price below minimum resale price"})
	case errors.Is(err, apperrors.ErrRefundIneligible):
		log.Warn("Refund ineligible")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refund ineligible"})
	case errors.Is(err, apperrors.ErrTransferCooldown):
		log.Warn("Transfer cooldown")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Transfer cooldown in effect"})
	case errors.Is(err, apperrors.ErrPurchaseRateLimited):
		log.Warn("Purchase rate limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Purchase rate limited"})
	case errors.Is(err, apperrors.ErrTransferRateLimited):
		log.Warn("Transfer rate limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Transfer rate limited"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
