package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketStatus 票券狀態類型
type TicketStatus string

const (
	TicketStatusValid           TicketStatus = "valid"
	TicketStatusPendingTransfer TicketStatus = "pending_transfer"
	TicketStatusUsed            TicketStatus = "used"
	TicketStatusCancelled       TicketStatus = "cancelled"
	// TicketStatusExpired 保留狀態：目前沒有任何轉換會產生它
	TicketStatusExpired TicketStatus = "expired"
)

// IsValid 驗證狀態是否有效
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusValid, TicketStatusPendingTransfer, TicketStatusUsed,
		TicketStatusCancelled, TicketStatusExpired:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	transitions := map[TicketStatus][]TicketStatus{
		TicketStatusValid:           {TicketStatusPendingTransfer, TicketStatusUsed, TicketStatusCancelled},
		TicketStatusPendingTransfer: {TicketStatusValid},
		TicketStatusUsed:            {}, // 終態
		TicketStatusCancelled:       {}, // 終態
		TicketStatusExpired:         {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// TransferRecord 轉讓歷史紀錄：只追加，不修改、不重排
type TransferRecord struct {
	Timestamp time.Time       `json:"timestamp"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Price     decimal.Decimal `json:"price"`
}

// PendingTransfer 待確認的轉讓
type PendingTransfer struct {
	To        string          `json:"to"`
	Price     decimal.Decimal `json:"price"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Ticket 票券模型
type Ticket struct {
	TicketID        uuid.UUID         `json:"ticket_id"`
	EventID         uuid.UUID         `json:"event_id"`
	Type            TicketType        `json:"ticket_type"`
	Price           decimal.Decimal   `json:"price"`
	OwnerAddr       string            `json:"owner_address"`
	Metadata        map[string]string `json:"metadata"`
	TransferHistory []TransferRecord  `json:"transfer_history"`
	Status          TicketStatus      `json:"status"`
	QRToken         string            `json:"qr_code"`
	IssuedAt        time.Time         `json:"purchased_at"`
	LastTransferAt  time.Time         `json:"last_transfer_at"`
	Pending         *PendingTransfer  `json:"pending_transfer,omitempty"`
}

// Clone 深拷貝：metadata、轉讓歷史與待確認紀錄都不跟原件共享
func (t *Ticket) Clone() *Ticket {
	clone := *t
	clone.Metadata = maps.Clone(t.Metadata)
	clone.TransferHistory = slices.Clone(t.TransferHistory)
	if t.Pending != nil {
		pending := *t.Pending
		clone.Pending = &pending
	}
	return &clone
}

// NewQRToken 由票券內容推導 QR 憑證：sha256(ticketID:eventID:owner:發行時間)
func NewQRToken(ticketID, eventID uuid.UUID, owner string, issuedAt time.Time) string {
	data := fmt.Sprintf("%s:%s:%s:%d", ticketID, eventID, owner, issuedAt.Unix())
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// MintTicketRequest 鑄票請求；簽章欄位可選，有附就必須驗證通過
type MintTicketRequest struct {
	EventID    uuid.UUID  `json:"event_id" binding:"required"`
	BuyerAddr  string     `json:"buyer_address" binding:"required"`
	TicketType TicketType `json:"ticket_type" binding:"required"`
	Signature  string     `json:"signature,omitempty"`
	PublicKey  string     `json:"public_key,omitempty"`
}

// TransferTicketRequest 發起轉讓請求
type TransferTicketRequest struct {
	From      string          `json:"from" binding:"required"`
	To        string          `json:"to" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Signature string          `json:"signature,omitempty"`
	PublicKey string          `json:"public_key,omitempty"`
}

// ConfirmTransferRequest 確認轉讓請求（由受讓人發出）
type ConfirmTransferRequest struct {
	To string `json:"to" binding:"required"`
}

// RefundTicketRequest 退票請求
type RefundTicketRequest struct {
	OwnerAddr string `json:"owner_address" binding:"required"`
}

// UseTicketRequest 入場核銷請求
type UseTicketRequest struct {
	PresentedBy string `json:"presented_by" binding:"required"`
}
