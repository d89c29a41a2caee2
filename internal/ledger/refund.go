package ledger

import (
	"time"

	"ticket-chain/internal/model"

	"github.com/shopspring/decimal"
)

// 退款級距是精確的政策切點，不是近似值
var (
	refundRate7Days = decimal.NewFromInt(1)
	refundRate3Days = decimal.RequireFromString("0.75")
	refundRate1Day  = decimal.RequireFromString("0.5")
)

// ComputeRefund 純函式：依距活動天數決定退款金額。
// 過了退款期限一律不可退；距活動 ≥7 天全額、3-6 天 75%、1-2 天 50%，
// 不足一天不可退
func ComputeRefund(ticket *model.Ticket, event *model.Event, now time.Time) (decimal.Decimal, bool) {
	if now.After(event.RefundableUntil) {
		return decimal.Zero, false
	}

	daysUntilEvent := int(event.Date.Sub(now).Hours() / 24)

	switch {
	case daysUntilEvent >= 7:
		return ticket.Price.Mul(refundRate7Days), true
	case daysUntilEvent >= 3:
		return ticket.Price.Mul(refundRate3Days), true
	case daysUntilEvent >= 1:
		return ticket.Price.Mul(refundRate1Day), true
	}
	return decimal.Zero, false
}
