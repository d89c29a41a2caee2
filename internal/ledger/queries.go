package ledger

import (
	"ticket-chain/internal/chain"
	"ticket-chain/internal/model"
	apperrors "ticket-chain/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 讀取操作回傳的都是鎖內拍的快照：呼叫端（handler 的 JSON 序列化、
// 模擬器）在鎖外使用結果，不能跟帳本內部狀態共享 map 或 slice

// GetEvent 查詢單一活動
func (l *Ledger) GetEvent(eventID uuid.UUID) (*model.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, ok := l.events.Get(eventID)
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return event.Clone(), nil
}

// ListEvents 列出所有活動
func (l *Ledger) ListEvents() []*model.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	events := l.events.List()
	clones := make([]*model.Event, 0, len(events))
	for _, e := range events {
		clones = append(clones, e.Clone())
	}
	return clones
}

// GetTicket 查詢單一票券
func (l *Ledger) GetTicket(ticketID uuid.UUID) (*model.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.tickets.Get(ticketID)
	if !ok {
		return nil, apperrors.ErrTicketNotFound
	}
	return ticket.Clone(), nil
}

// GetEventTickets 查詢活動底下所有票券
func (l *Ledger) GetEventTickets(eventID uuid.UUID) []*model.Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneTickets(l.tickets.ListByEvent(eventID))
}

// GetUserTickets 查詢某地址持有的所有票券
func (l *Ledger) GetUserTickets(addr string) []*model.Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneTickets(l.tickets.ListByOwner(addr))
}

func cloneTickets(tickets []*model.Ticket) []*model.Ticket {
	clones := make([]*model.Ticket, 0, len(tickets))
	for _, t := range tickets {
		clones = append(clones, t.Clone())
	}
	return clones
}

// VerifyTicket 純讀取的票券驗證：有效、持有人相符、活動未過期也未取消
func (l *Ledger) VerifyTicket(ticketID uuid.UUID, presentedBy string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.tickets.Get(ticketID)
	if !ok {
		return false
	}
	event, ok := l.events.Get(ticket.EventID)
	if !ok {
		return false
	}

	return ticket.Status == model.TicketStatusValid &&
		ticket.OwnerAddr == presentedBy &&
		!event.HasPassed(l.now()) &&
		!event.IsCancelled
}

// GetEventStats 活動統計（純讀取）
func (l *Ledger) GetEventStats(eventID uuid.UUID) (*model.EventStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, ok := l.events.Get(eventID)
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}

	tickets := l.tickets.ListByEvent(eventID)

	total, available := 0, 0
	for _, count := range event.TotalTickets {
		total += count
	}
	for _, count := range event.AvailableTickets {
		available += count
	}

	revenue := decimal.Zero
	byType := make(map[model.TicketType]int)
	used, cancelled := 0, 0
	for _, t := range tickets {
		revenue = revenue.Add(t.Price)
		byType[t.Type]++
		switch t.Status {
		case model.TicketStatusUsed:
			used++
		case model.TicketStatusCancelled:
			cancelled++
		}
	}

	return &model.EventStats{
		TotalTickets:     total,
		AvailableTickets: available,
		SoldTickets:      total - available,
		WaitlistSize:     len(event.Waitlist),
		Revenue:          revenue,
		TicketsByType:    byType,
		UsedTickets:      used,
		CancelledTickets: cancelled,
	}, nil
}

// Blocks 鏈上所有區塊
func (l *Ledger) Blocks() []*chain.Block {
	return l.chain.Blocks()
}

// VerifyChain 重新驗證整條鏈的完整性
func (l *Ledger) VerifyChain() bool {
	return l.chain.Verify()
}

// PendingCount 待挖交易數
func (l *Ledger) PendingCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
