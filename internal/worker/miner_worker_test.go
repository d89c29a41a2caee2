package worker

import (
	"context"
	"testing"
	"time"

	"ticket-chain/config"
	"ticket-chain/internal/ledger"
	"ticket-chain/internal/model"
	"ticket-chain/internal/queue"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinerWorker_MinesPublishedRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := ledger.New(config.LoadTestConfig())
	_, err := l.CreateEvent(model.CreateEventRequest{
		Name:  "Worker Test Event",
		Venue: "Test Arena",
		Date:  time.Now().Add(30 * 24 * time.Hour),
		TicketTypes: map[model.TicketType]int{
			model.TicketTypeRegular: 5,
		},
		Prices: map[model.TicketType]decimal.Decimal{
			model.TicketTypeRegular: decimal.NewFromInt(100),
		},
		OrganizerAddr:     "organizer-1",
		MaxTicketsPerUser: 2,
		RefundableUntil:   time.Now().Add(29 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, 1, l.PendingCount())

	q := queue.NewMineQueue(10)
	w := NewMinerWorker(l, q)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, q.PublishMineRequest(ctx, queue.MineRequest{MinerAddr: "miner-1"}))

	assert.Eventually(t, func() bool {
		return len(l.Blocks()) == 2 && l.PendingCount() == 0
	}, 5*time.Second, 10*time.Millisecond)
	assert.True(t, l.VerifyChain())
}
