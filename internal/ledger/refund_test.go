package ledger

import (
	"testing"
	"time"

	"ticket-chain/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeRefund(t *testing.T) {
	eventDate := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	event := &model.Event{
		Date:            eventDate,
		RefundableUntil: eventDate.Add(-24 * time.Hour),
	}
	ticket := &model.Ticket{Price: decimal.NewFromInt(100)}

	tests := []struct {
		name     string
		now      time.Time
		amount   string
		eligible bool
	}{
		{"EightDaysBefore", eventDate.Add(-8 * 24 * time.Hour), "100", true},
		{"ExactlySevenDays", eventDate.Add(-7 * 24 * time.Hour), "100", true},
		{"SixDaysBefore", eventDate.Add(-6 * 24 * time.Hour), "75", true},
		{"ExactlyThreeDays", eventDate.Add(-3 * 24 * time.Hour), "75", true},
		{"TwoDaysBefore", eventDate.Add(-2 * 24 * time.Hour), "50", true},
		{"ThirtySixHoursBefore", eventDate.Add(-36 * time.Hour), "50", true},
		{"TwentyFiveHoursBefore", eventDate.Add(-25 * time.Hour), "50", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, eligible := ComputeRefund(ticket, event, tc.now)
			assert.Equal(t, tc.eligible, eligible)
			assert.True(t, amount.Equal(decimal.RequireFromString(tc.amount)),
				"expected %s, got %s", tc.amount, amount)
		})
	}

	t.Run("PastRefundDeadline", func(t *testing.T) {
		_, eligible := ComputeRefund(ticket, event, eventDate.Add(-12*time.Hour))
		assert.False(t, eligible)
	})

	t.Run("LessThanOneDayIneligible", func(t *testing.T) {
		// 期限開到活動當天：不足一天的級距自己就要擋下來
		open := &model.Event{
			Date:            eventDate,
			RefundableUntil: eventDate,
		}
		_, eligible := ComputeRefund(ticket, open, eventDate.Add(-12*time.Hour))
		assert.False(t, eligible)

		_, eligible = ComputeRefund(ticket, open, eventDate.Add(-23*time.Hour))
		assert.False(t, eligible)
	})

	t.Run("DeadlineOverridesDistance", func(t *testing.T) {
		// 就算距活動還很遠，過了退款期限就是不能退
		early := &model.Event{
			Date:            eventDate,
			RefundableUntil: eventDate.Add(-15 * 24 * time.Hour),
		}
		_, eligible := ComputeRefund(ticket, early, eventDate.Add(-10*24*time.Hour))
		assert.False(t, eligible)
	})
}
