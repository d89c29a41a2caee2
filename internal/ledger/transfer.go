package ledger

import (
	"fmt"

	"ticket-chain/internal/model"
	"ticket-chain/internal/monitoring"
	"ticket-chain/internal/wallet"
	apperrors "ticket-chain/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransferTicket 發起轉讓（兩階段的第一步）。
// 成功只會把票標成 pending_transfer 並記下待確認資訊，
// 所有權與轉讓歷史都要等 ConfirmTransfer 才更新。
// 有附簽章就必須驗證通過，payload 為 "transfer:<ticket>:<from>:<to>:<price>"
func (l *Ledger) TransferTicket(ticketID uuid.UUID, from, to string, price decimal.Decimal, signature, publicKey []byte) (err error) {
	defer func() { monitoring.RecordOperation("init_transfer", err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	ticket, ok := l.tickets.Get(ticketID)
	if !ok {
		return apperrors.ErrTicketNotFound
	}
	if ticket.OwnerAddr != from {
		return apperrors.ErrNotTicketOwner
	}
	if ticket.Status != model.TicketStatusValid {
		return apperrors.ErrInvalidTicketStatus
	}

	event, ok := l.events.Get(ticket.EventID)
	if !ok {
		return apperrors.ErrEventNotFound
	}
	if event.HasPassed(now) {
		return apperrors.ErrEventPassed
	}

	if len(signature) > 0 {
		payload := fmt.Sprintf("transfer:%s:%s:%s:%s", ticketID, from, to, price)
		if !wallet.Verify([]byte(payload), signature, publicKey) {
			return apperrors.ErrInvalidSignature
		}
	}

	if price.LessThan(event.MinResalePrices[ticket.Type]) {
		return apperrors.ErrPriceBelowMinimum
	}
	if now.Sub(ticket.LastTransferAt) < event.TransferCooldown {
		return apperrors.ErrTransferCooldown
	}
	if !l.transfers.Allow(from, now) {
		return apperrors.ErrTransferRateLimited
	}

	expiresAt := now.Add(l.policy.PendingTransferTTL)
	ticket.Status = model.TicketStatusPendingTransfer
	ticket.Pending = &model.PendingTransfer{
		To:        to,
		Price:     price,
		ExpiresAt: expiresAt,
	}

	// 只有成功發起才記錄到可疑模式追蹤
	l.transfers.Record(from, now)

	l.appendTx(model.TxInitTransfer, ticketID.String(), model.InitTransferTx{
		From:      from,
		To:        to,
		Price:     price,
		ExpiresAt: expiresAt,
	})

	return nil
}

// ConfirmTransfer 受讓人確認轉讓（兩階段的第二步）。
// 待確認紀錄已過期時：票回到 valid、清除待確認紀錄、回傳過期錯誤，所有權不變
func (l *Ledger) ConfirmTransfer(ticketID uuid.UUID, to string) (err error) {
	defer func() { monitoring.RecordOperation("confirm_transfer", err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	ticket, ok := l.tickets.Get(ticketID)
	if !ok {
		return apperrors.ErrTicketNotFound
	}
	if ticket.Pending == nil {
		return apperrors.ErrNoPendingTransfer
	}
	if ticket.Pending.To != to {
		return apperrors.ErrTransferWrongRecipient
	}
	if now.After(ticket.Pending.ExpiresAt) {
		ticket.Status = model.TicketStatusValid
		ticket.Pending = nil
		return apperrors.ErrTransferExpired
	}

	from := ticket.OwnerAddr
	price := ticket.Pending.Price

	// 所有權欄位與持有人索引一起更新
	l.tickets.Reassign(ticketID, to)
	ticket.TransferHistory = append(ticket.TransferHistory, model.TransferRecord{
		Timestamp: now,
		From:      from,
		To:        to,
		Price:     price,
	})
	ticket.LastTransferAt = now
	ticket.Pending = nil
	ticket.Status = model.TicketStatusValid

	l.appendTx(model.TxConfirmTransfer, ticketID.String(), model.ConfirmTransferTx{
		From:  from,
		To:    to,
		Price: price,
	})

	l.log.Info("ticket transferred",
		zap.String("ticket_id", ticketID.String()),
		zap.String("from", from),
		zap.String("to", to))
	return nil
}

// RequestRefund 持票人申請退票，金額由退款政策決定。庫存不會補回
func (l *Ledger) RequestRefund(ticketID uuid.UUID, ownerAddr string) (amount decimal.Decimal, err error) {
	defer func() { monitoring.RecordOperation("refund_ticket", err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.tickets.Get(ticketID)
	if !ok {
		return decimal.Zero, apperrors.ErrTicketNotFound
	}
	if ticket.OwnerAddr != ownerAddr {
		return decimal.Zero, apperrors.ErrNotTicketOwner
	}
	if ticket.Status != model.TicketStatusValid {
		return decimal.Zero, apperrors.ErrInvalidTicketStatus
	}

	event, ok := l.events.Get(ticket.EventID)
	if !ok {
		return decimal.Zero, apperrors.ErrEventNotFound
	}

	amount, eligible := ComputeRefund(ticket, event, l.now())
	if !eligible {
		return decimal.Zero, apperrors.ErrRefundIneligible
	}

	ticket.Status = model.TicketStatusCancelled
	l.appendTx(model.TxRefundTicket, ticketID.String(), model.RefundTicketTx{
		EventID:      ticket.EventID,
		OwnerAddr:    ownerAddr,
		RefundAmount: amount,
	})

	return amount, nil
}

// UseTicket 入場核銷：持票人出示票券，通過驗證後標記已使用（終態）
func (l *Ledger) UseTicket(ticketID uuid.UUID, presentedBy string) (err error) {
	defer func() { monitoring.RecordOperation("use_ticket", err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	ticket, ok := l.tickets.Get(ticketID)
	if !ok {
		return apperrors.ErrTicketNotFound
	}
	event, ok := l.events.Get(ticket.EventID)
	if !ok {
		return apperrors.ErrEventNotFound
	}
	if ticket.Status != model.TicketStatusValid {
		return apperrors.ErrInvalidTicketStatus
	}
	if ticket.OwnerAddr != presentedBy {
		return apperrors.ErrNotTicketOwner
	}
	if event.IsCancelled {
		return apperrors.ErrEventCancelled
	}
	if event.HasPassed(now) {
		return apperrors.ErrEventPassed
	}

	ticket.Status = model.TicketStatusUsed
	l.appendTx(model.TxUseTicket, ticketID.String(), model.UseTicketTx{
		PresentedBy: presentedBy,
		UsedAt:      now,
	})

	return nil
}
