package store

import (
	"ticket-chain/internal/model"

	"github.com/google/uuid"
)

// TicketStore 記憶體票券儲存，附帶持有人反向索引。
// 不變式：byOwner 索引與每張票的 OwnerAddr 欄位永遠一致。
// 非並發安全：所有存取都必須在 ledger 的臨界區內進行
type TicketStore struct {
	tickets map[uuid.UUID]*model.Ticket
	byOwner map[string]map[uuid.UUID]struct{}
}

func NewTicketStore() *TicketStore {
	return &TicketStore{
		tickets: make(map[uuid.UUID]*model.Ticket),
		byOwner: make(map[string]map[uuid.UUID]struct{}),
	}
}

func (s *TicketStore) Insert(t *model.Ticket) {
	s.tickets[t.TicketID] = t
	s.addToIndex(t.OwnerAddr, t.TicketID)
}

func (s *TicketStore) Get(ticketID uuid.UUID) (*model.Ticket, bool) {
	t, ok := s.tickets[ticketID]
	return t, ok
}

// Reassign 所有權變更：票券欄位與持有人索引在同一步驟內更新
func (s *TicketStore) Reassign(ticketID uuid.UUID, to string) {
	t, ok := s.tickets[ticketID]
	if !ok {
		return
	}
	s.removeFromIndex(t.OwnerAddr, ticketID)
	t.OwnerAddr = to
	s.addToIndex(to, ticketID)
}

func (s *TicketStore) ListByOwner(addr string) []*model.Ticket {
	ids := s.byOwner[addr]
	tickets := make([]*model.Ticket, 0, len(ids))
	for id := range ids {
		tickets = append(tickets, s.tickets[id])
	}
	return tickets
}

func (s *TicketStore) ListByEvent(eventID uuid.UUID) []*model.Ticket {
	var tickets []*model.Ticket
	for _, t := range s.tickets {
		if t.EventID == eventID {
			tickets = append(tickets, t)
		}
	}
	return tickets
}

// CountByOwnerAndEvent 某地址在某活動已持有的票數（個人購買上限用）
func (s *TicketStore) CountByOwnerAndEvent(addr string, eventID uuid.UUID) int {
	count := 0
	for id := range s.byOwner[addr] {
		if s.tickets[id].EventID == eventID {
			count++
		}
	}
	return count
}

func (s *TicketStore) addToIndex(addr string, ticketID uuid.UUID) {
	if s.byOwner[addr] == nil {
		s.byOwner[addr] = make(map[uuid.UUID]struct{})
	}
	s.byOwner[addr][ticketID] = struct{}{}
}

func (s *TicketStore) removeFromIndex(addr string, ticketID uuid.UUID) {
	delete(s.byOwner[addr], ticketID)
	if len(s.byOwner[addr]) == 0 {
		delete(s.byOwner, addr)
	}
}
