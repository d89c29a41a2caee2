package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxType 交易類型
type TxType string

const (
	TxCreateEvent     TxType = "create_event"
	TxMintTicket      TxType = "mint_ticket"
	TxInitTransfer    TxType = "init_transfer"
	TxConfirmTransfer TxType = "confirm_transfer"
	TxRefundTicket    TxType = "refund_ticket"
	TxUseTicket       TxType = "use_ticket"
	TxCancelEvent     TxType = "cancel_event"
	TxReward          TxType = "reward"
)

// TxRecord 交易紀錄：Data 依 Type 對應固定的 payload 結構，
// 欄位順序固定以確保序列化後的雜湊可重現
type TxRecord struct {
	Type      TxType    `json:"type"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type CreateEventTx struct {
	Name          string                        `json:"name"`
	Venue         string                        `json:"venue"`
	Date          time.Time                     `json:"date"`
	TicketTypes   map[TicketType]int            `json:"ticket_types"`
	Prices        map[TicketType]decimal.Decimal `json:"prices"`
	OrganizerAddr string                        `json:"organizer_address"`
	Description   string                        `json:"description"`
	Category      string                        `json:"category"`
}

type MintTicketTx struct {
	EventID    uuid.UUID       `json:"event_id"`
	BuyerAddr  string          `json:"buyer_address"`
	TicketType TicketType      `json:"ticket_type"`
	Price      decimal.Decimal `json:"price"`
}

type InitTransferTx struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Price     decimal.Decimal `json:"price"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type ConfirmTransferTx struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Price decimal.Decimal `json:"price"`
}

type RefundTicketTx struct {
	EventID      uuid.UUID       `json:"event_id"`
	OwnerAddr    string          `json:"owner_address"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

type UseTicketTx struct {
	PresentedBy string    `json:"presented_by"`
	UsedAt      time.Time `json:"used_at"`
}

type CancelEventTx struct {
	OrganizerAddr string `json:"organizer_address"`
}

type RewardTx struct {
	Miner  string `json:"miner"`
	Reward int64  `json:"reward"`
}
