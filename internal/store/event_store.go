package store

import (
	"ticket-chain/internal/model"

	"github.com/google/uuid"
)

// EventStore 記憶體活動儲存。
// 非並發安全：所有存取都必須在 ledger 的臨界區內進行
type EventStore struct {
	events map[uuid.UUID]*model.Event
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[uuid.UUID]*model.Event)}
}

func (s *EventStore) Insert(e *model.Event) {
	s.events[e.EventID] = e
}

func (s *EventStore) Get(eventID uuid.UUID) (*model.Event, bool) {
	e, ok := s.events[eventID]
	return e, ok
}

func (s *EventStore) List() []*model.Event {
	events := make([]*model.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}
	return events
}
