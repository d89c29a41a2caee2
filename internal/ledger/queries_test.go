package ledger

import (
	"encoding/json"
	"fmt"
	"testing"

	"ticket-chain/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_QueriesReturnSnapshots(t *testing.T) {
	l, _ := newTestLedger()
	event := createTestEvent(t, l, map[model.TicketType]int{model.TicketTypeRegular: 5}, 4)

	before, err := l.GetEvent(event.EventID)
	require.NoError(t, err)

	ticket, err := l.MintTicket(event.EventID, "alice", model.TicketTypeRegular, nil, nil)
	require.NoError(t, err)

	// 先前拿到的快照不會跟著內部狀態變動
	assert.Equal(t, 5, before.AvailableTickets[model.TicketTypeRegular])
	after, err := l.GetEvent(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, 4, after.AvailableTickets[model.TicketTypeRegular])

	// 改動快照不會污染帳本
	after.AvailableTickets[model.TicketTypeRegular] = 999
	after.Waitlist["mallory"] = struct{}{}
	fresh, err := l.GetEvent(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, 4, fresh.AvailableTickets[model.TicketTypeRegular])
	assert.NotContains(t, fresh.Waitlist, "mallory")

	snap, err := l.GetTicket(ticket.TicketID)
	require.NoError(t, err)
	snap.Status = model.TicketStatusUsed
	snap.TransferHistory[0].From = "tampered"
	snap.Metadata["venue"] = "tampered"

	stored, err := l.GetTicket(ticket.TicketID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusValid, stored.Status)
	assert.Equal(t, "mint", stored.TransferHistory[0].From)
	assert.Equal(t, "Test Arena", stored.Metadata["venue"])
}

func TestLedger_MintReturnsSnapshot(t *testing.T) {
	l, clock := newTestLedger()
	event := createTestEvent(t, l, map[model.TicketType]int{model.TicketTypeRegular: 5}, 4)
	ticket := mintFor(t, l, clock, event, "alice")

	require.NoError(t, l.UseTicket(ticket.TicketID, "alice"))

	// 鑄票回傳的是當下的快照，後續狀態變更不會反映在上面
	assert.Equal(t, model.TicketStatusValid, ticket.Status)

	used, err := l.GetTicket(ticket.TicketID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusUsed, used.Status)
}

// 讀取結果在鎖外做 JSON 序列化，跟鑄票同時進行也不能踩到共享狀態
func TestLedger_ConcurrentReadsDuringMint(t *testing.T) {
	l, _ := newTestLedger()
	event := createTestEvent(t, l, map[model.TicketType]int{model.TicketTypeRegular: 400}, 4)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 400; i++ {
			buyer := fmt.Sprintf("buyer-%03d", i)
			_, err := l.MintTicket(event.EventID, buyer, model.TicketTypeRegular, nil, nil)
			assert.NoError(t, err)
		}
	}()

	for minting := true; minting; {
		select {
		case <-done:
			minting = false
		default:
		}

		got, err := l.GetEvent(event.EventID)
		require.NoError(t, err)
		_, err = json.Marshal(got.ToResponse())
		require.NoError(t, err)

		_, err = json.Marshal(l.GetEventTickets(event.EventID))
		require.NoError(t, err)
	}

	final, err := l.GetEvent(event.EventID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.AvailableTickets[model.TicketTypeRegular])
	assert.Len(t, l.GetEventTickets(event.EventID), 400)
}
