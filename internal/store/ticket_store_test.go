package store

import (
	"testing"

	"ticket-chain/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicket(owner string, eventID uuid.UUID) *model.Ticket {
	return &model.Ticket{
		TicketID:  uuid.New(),
		EventID:   eventID,
		OwnerAddr: owner,
		Status:    model.TicketStatusValid,
	}
}

func TestTicketStore_Reassign(t *testing.T) {
	s := NewTicketStore()
	eventID := uuid.New()

	ticket := newTicket("alice", eventID)
	s.Insert(ticket)

	s.Reassign(ticket.TicketID, "bob")

	// 欄位與索引必須一致
	assert.Equal(t, "bob", ticket.OwnerAddr)
	assert.Empty(t, s.ListByOwner("alice"))
	require.Len(t, s.ListByOwner("bob"), 1)
	assert.Equal(t, ticket.TicketID, s.ListByOwner("bob")[0].TicketID)
}

func TestTicketStore_CountByOwnerAndEvent(t *testing.T) {
	s := NewTicketStore()
	eventA := uuid.New()
	eventB := uuid.New()

	s.Insert(newTicket("alice", eventA))
	s.Insert(newTicket("alice", eventA))
	s.Insert(newTicket("alice", eventB))
	s.Insert(newTicket("bob", eventA))

	assert.Equal(t, 2, s.CountByOwnerAndEvent("alice", eventA))
	assert.Equal(t, 1, s.CountByOwnerAndEvent("alice", eventB))
	assert.Equal(t, 1, s.CountByOwnerAndEvent("bob", eventA))
	assert.Equal(t, 0, s.CountByOwnerAndEvent("charlie", eventA))
}

func TestTicketStore_ListByEvent(t *testing.T) {
	s := NewTicketStore()
	eventA := uuid.New()
	eventB := uuid.New()

	s.Insert(newTicket("alice", eventA))
	s.Insert(newTicket("bob", eventA))
	s.Insert(newTicket("bob", eventB))

	assert.Len(t, s.ListByEvent(eventA), 2)
	assert.Len(t, s.ListByEvent(eventB), 1)
}
