package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, msgs <-chan Delivery) Delivery {
	t.Helper()
	select {
	case msg := <-msgs:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return Delivery{}
	}
}

func TestMineQueue_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewMineQueue(10)
	msgs, err := q.SubscribeMineRequests(ctx)
	require.NoError(t, err)

	require.NoError(t, q.PublishMineRequest(ctx, MineRequest{MinerAddr: "miner-1"}))

	msg := receive(t, msgs)
	assert.Equal(t, "miner-1", msg.Data.MinerAddr)
	msg.Ack()
}

func TestMineQueue_NackRequeues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewMineQueue(10)
	msgs, err := q.SubscribeMineRequests(ctx)
	require.NoError(t, err)

	require.NoError(t, q.PublishMineRequest(ctx, MineRequest{MinerAddr: "miner-1"}))

	first := receive(t, msgs)
	first.Nack(true)

	second := receive(t, msgs)
	assert.Equal(t, "miner-1", second.Data.MinerAddr)
	second.Ack()
}

func TestMineQueue_CancelClosesSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := NewMineQueue(10)
	msgs, err := q.SubscribeMineRequests(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-msgs:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription channel not closed after cancel")
	}
}
