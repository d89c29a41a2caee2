package model

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketType 票種
type TicketType string

const (
	TicketTypeRegular   TicketType = "regular"
	TicketTypeVIP       TicketType = "vip"
	TicketTypeEarlyBird TicketType = "early_bird"
)

// IsValid 驗證票種是否有效
func (t TicketType) IsValid() bool {
	switch t {
	case TicketTypeRegular, TicketTypeVIP, TicketTypeEarlyBird:
		return true
	}
	return false
}

// Event 活動模型
type Event struct {
	EventID           uuid.UUID                     `json:"event_id"`
	Name              string                        `json:"name"`
	Venue             string                        `json:"venue"`
	Date              time.Time                     `json:"date"`
	TotalTickets      map[TicketType]int            `json:"total_tickets"`
	Prices            map[TicketType]decimal.Decimal `json:"prices"`
	OrganizerAddr     string                        `json:"organizer_address"`
	Description       string                        `json:"description"`
	Category          string                        `json:"category"`
	MaxTicketsPerUser int                           `json:"max_tickets_per_user"`
	RefundableUntil   time.Time                     `json:"refundable_until"`
	// AvailableTickets 只在成功鑄票時 -1，退票或取消活動都不會補回庫存
	AvailableTickets map[TicketType]int `json:"available_tickets"`
	// MinResalePrices 建立活動時計算一次：發行價的一半，為轉讓價格下限
	MinResalePrices  map[TicketType]decimal.Decimal `json:"min_resale_prices"`
	TransferCooldown time.Duration                  `json:"transfer_cooldown"`
	IsCancelled      bool                           `json:"is_cancelled"`
	Waitlist         map[string]struct{}            `json:"-"`
}

// Clone 深拷貝：所有 map 與候補名單都不跟原件共享，
// 讓讀取操作可以把快照帶出臨界區
func (e *Event) Clone() *Event {
	clone := *e
	clone.TotalTickets = maps.Clone(e.TotalTickets)
	clone.Prices = maps.Clone(e.Prices)
	clone.AvailableTickets = maps.Clone(e.AvailableTickets)
	clone.MinResalePrices = maps.Clone(e.MinResalePrices)
	clone.Waitlist = maps.Clone(e.Waitlist)
	return &clone
}

// HasPassed 檢查活動日期是否已過
func (e *Event) HasPassed(now time.Time) bool {
	return !e.Date.After(now)
}

// SoldCount 某票種已售出數量
func (e *Event) SoldCount(t TicketType) int {
	return e.TotalTickets[t] - e.AvailableTickets[t]
}

// CreateEventRequest 建立活動請求
type CreateEventRequest struct {
	Name              string                        `json:"name" binding:"required"`
	Venue             string                        `json:"venue" binding:"required"`
	Date              time.Time                     `json:"date" binding:"required"`
	TicketTypes       map[TicketType]int            `json:"ticket_types" binding:"required"`
	Prices            map[TicketType]decimal.Decimal `json:"prices" binding:"required"`
	OrganizerAddr     string                        `json:"organizer_address" binding:"required"`
	Description       string                        `json:"description"`
	Category          string                        `json:"category"`
	MaxTicketsPerUser int                           `json:"max_tickets_per_user" binding:"required,min=1"`
	RefundableUntil   time.Time                     `json:"refundable_until" binding:"required"`
}

// CancelEventRequest 取消活動請求
type CancelEventRequest struct {
	OrganizerAddr string `json:"organizer_address" binding:"required"`
}

// JoinWaitlistRequest 加入候補名單請求
type JoinWaitlistRequest struct {
	Address string `json:"address" binding:"required"`
}

// EventResponse 活動響應
type EventResponse struct {
	EventID          uuid.UUID                     `json:"event_id"`
	Name             string                        `json:"name"`
	Venue            string                        `json:"venue"`
	Date             time.Time                     `json:"date"`
	Category         string                        `json:"category"`
	TotalTickets     map[TicketType]int            `json:"total_tickets"`
	AvailableTickets map[TicketType]int            `json:"available_tickets"`
	Prices           map[TicketType]decimal.Decimal `json:"prices"`
	MinResalePrices  map[TicketType]decimal.Decimal `json:"min_resale_prices"`
	IsCancelled      bool                          `json:"is_cancelled"`
	WaitlistSize     int                           `json:"waitlist_size"`
}

func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		EventID:          e.EventID,
		Name:             e.Name,
		Venue:            e.Venue,
		Date:             e.Date,
		Category:         e.Category,
		TotalTickets:     e.TotalTickets,
		AvailableTickets: e.AvailableTickets,
		Prices:           e.Prices,
		MinResalePrices:  e.MinResalePrices,
		IsCancelled:      e.IsCancelled,
		WaitlistSize:     len(e.Waitlist),
	}
}

// EventStats 活動統計（純讀取）
type EventStats struct {
	TotalTickets     int                `json:"total_tickets"`
	AvailableTickets int                `json:"available_tickets"`
	SoldTickets      int                `json:"sold_tickets"`
	WaitlistSize     int                `json:"waitlist_size"`
	Revenue          decimal.Decimal    `json:"revenue"`
	TicketsByType    map[TicketType]int `json:"tickets_by_type"`
	UsedTickets      int                `json:"used_tickets"`
	CancelledTickets int                `json:"cancelled_tickets"`
}
