package ledger

import (
	"fmt"
	"sync"
	"time"

	"ticket-chain/config"
	"ticket-chain/internal/abuse"
	"ticket-chain/internal/chain"
	"ticket-chain/internal/model"
	"ticket-chain/internal/monitoring"
	"ticket-chain/internal/store"
	"ticket-chain/internal/wallet"
	apperrors "ticket-chain/pkg/app_errors"
	"ticket-chain/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var two = decimal.NewFromInt(2)

// Ledger 帳本引擎：持有活動、票券、鏈與限流狀態，
// 所有變更操作都經過同一把互斥鎖（單寫者語義）。
// 操作要嘛完成回傳結果，要嘛同步失敗，沒有取消語義
type Ledger struct {
	mu sync.Mutex

	difficulty int
	reward     int64
	policy     config.PolicyConfig

	events    *store.EventStore
	tickets   *store.TicketStore
	chain     *chain.Chain
	transfers *abuse.TransferTracker

	// pending 等待封塊的交易緩衝區，挖礦時清空
	pending []model.TxRecord

	now  func() time.Time
	seal func(b *chain.Block, difficulty int)
	log  *zap.Logger
}

func New(cfg *config.Config) *Ledger {
	return &Ledger{
		difficulty: cfg.Chain.Difficulty,
		reward:     cfg.Chain.MinerReward,
		policy:     cfg.Policy,
		events:     store.NewEventStore(),
		tickets:    store.NewTicketStore(),
		chain:      chain.New(time.Now()),
		transfers:  abuse.NewTransferTracker(cfg.Policy.TransferWindow, cfg.Policy.TransferLimit),
		now:        time.Now,
		seal:       func(b *chain.Block, difficulty int) { b.Seal(difficulty) },
		log:        logger.WithComponent("ledger"),
	}
}

// CreateEvent 建立活動。日期先後的驗證交給呼叫端，引擎不做
func (l *Ledger) CreateEvent(req model.CreateEventRequest) (*model.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	available := make(map[model.TicketType]int, len(req.TicketTypes))
	for t, count := range req.TicketTypes {
		available[t] = count
	}

	// 最低轉售價：發行價的一半，建立時算一次
	minResale := make(map[model.TicketType]decimal.Decimal, len(req.Prices))
	for t, price := range req.Prices {
		minResale[t] = price.Div(two)
	}

	event := &model.Event{
		EventID:           uuid.New(),
		Name:              req.Name,
		Venue:             req.Venue,
		Date:              req.Date,
		TotalTickets:      req.TicketTypes,
		Prices:            req.Prices,
		OrganizerAddr:     req.OrganizerAddr,
		Description:       req.Description,
		Category:          req.Category,
		MaxTicketsPerUser: req.MaxTicketsPerUser,
		RefundableUntil:   req.RefundableUntil,
		AvailableTickets:  available,
		MinResalePrices:   minResale,
		TransferCooldown:  l.policy.TransferCooldown,
		Waitlist:          make(map[string]struct{}),
	}
	l.events.Insert(event)

	l.appendTx(model.TxCreateEvent, event.EventID.String(), model.CreateEventTx{
		Name:          req.Name,
		Venue:         req.Venue,
		Date:          req.Date,
		TicketTypes:   req.TicketTypes,
		Prices:        req.Prices,
		OrganizerAddr: req.OrganizerAddr,
		Description:   req.Description,
		Category:      req.Category,
	})

	l.log.Info("event created",
		zap.String("event_id", event.EventID.String()),
		zap.String("name", event.Name))
	return event.Clone(), nil
}

// JoinWaitlist 把地址加入活動候補名單
func (l *Ledger) JoinWaitlist(eventID uuid.UUID, addr string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, ok := l.events.Get(eventID)
	if !ok {
		return apperrors.ErrEventNotFound
	}
	event.Waitlist[addr] = struct{}{}
	return nil
}

// MintTicket 鑄票。活動已取消或該票種售罄時，先把買家加入候補名單再失敗。
// 有附簽章就必須驗證通過，payload 為 "mint:<event>:<buyer>:<type>"
func (l *Ledger) MintTicket(eventID uuid.UUID, buyerAddr string, ticketType model.TicketType, signature, publicKey []byte) (t *model.Ticket, err error) {
	defer func() { monitoring.RecordOperation("mint_ticket", err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	event, ok := l.events.Get(eventID)
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	if event.HasPassed(now) {
		return nil, apperrors.ErrEventPassed
	}
	if event.IsCancelled {
		event.Waitlist[buyerAddr] = struct{}{}
		return nil, apperrors.ErrEventCancelled
	}
	if event.AvailableTickets[ticketType] <= 0 {
		event.Waitlist[buyerAddr] = struct{}{}
		return nil, apperrors.ErrNoInventory
	}

	// 購買限流：掃描買家持有票券的發行時間，不另外維護計數器
	owned := l.tickets.ListByOwner(buyerAddr)
	stamps := make([]time.Time, 0, len(owned))
	for _, ot := range owned {
		stamps = append(stamps, ot.IssuedAt)
	}
	if abuse.CountWithin(stamps, l.policy.PurchaseWindow, now) >= l.policy.PurchaseLimit {
		return nil, apperrors.ErrPurchaseRateLimited
	}

	if len(signature) > 0 {
		payload := fmt.Sprintf("mint:%s:%s:%s", eventID, buyerAddr, ticketType)
		if !wallet.Verify([]byte(payload), signature, publicKey) {
			return nil, apperrors.ErrInvalidSignature
		}
	}

	if l.tickets.CountByOwnerAndEvent(buyerAddr, eventID) >= event.MaxTicketsPerUser {
		return nil, apperrors.ErrExceedsMaxPerUser
	}

	price := event.Prices[ticketType]
	ticketID := uuid.New()
	ticket := &model.Ticket{
		TicketID:  ticketID,
		EventID:   eventID,
		Type:      ticketType,
		Price:     price,
		OwnerAddr: buyerAddr,
		Metadata: map[string]string{
			"event_name":  event.Name,
			"venue":       event.Venue,
			"date":        event.Date.Format(time.RFC3339),
			"ticket_type": string(ticketType),
		},
		TransferHistory: []model.TransferRecord{{
			Timestamp: now,
			From:      "mint",
			To:        buyerAddr,
			Price:     price,
		}},
		Status:         model.TicketStatusValid,
		QRToken:        model.NewQRToken(ticketID, eventID, buyerAddr, now),
		IssuedAt:       now,
		LastTransferAt: now,
	}

	l.tickets.Insert(ticket)
	event.AvailableTickets[ticketType]--

	l.appendTx(model.TxMintTicket, ticketID.String(), model.MintTicketTx{
		EventID:    eventID,
		BuyerAddr:  buyerAddr,
		TicketType: ticketType,
		Price:      price,
	})
	monitoring.RecordMint(eventID.String(), string(ticketType))

	return ticket.Clone(), nil
}

// CancelEvent 主辦方取消活動：所有仍有效的票直接標記取消，
// 並逐張記錄全額退款交易（不走退款政策，這是主辦方端的無條件義務）
func (l *Ledger) CancelEvent(eventID uuid.UUID, organizerAddr string) (err error) {
	defer func() { monitoring.RecordOperation("cancel_event", err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	event, ok := l.events.Get(eventID)
	if !ok {
		return apperrors.ErrEventNotFound
	}
	if event.OrganizerAddr != organizerAddr {
		return apperrors.ErrNotEventOrganizer
	}

	event.IsCancelled = true

	for _, ticket := range l.tickets.ListByEvent(eventID) {
		if ticket.Status != model.TicketStatusValid {
			continue
		}
		ticket.Status = model.TicketStatusCancelled
		l.appendTx(model.TxRefundTicket, ticket.TicketID.String(), model.RefundTicketTx{
			EventID:      eventID,
			OwnerAddr:    ticket.OwnerAddr,
			RefundAmount: ticket.Price,
		})
	}

	l.appendTx(model.TxCancelEvent, eventID.String(), model.CancelEventTx{
		OrganizerAddr: organizerAddr,
	})

	l.log.Info("event cancelled", zap.String("event_id", eventID.String()))
	return nil
}

// appendTx 把交易紀錄加入待挖緩衝區，必須在臨界區內呼叫
func (l *Ledger) appendTx(txType model.TxType, id string, data any) {
	l.pending = append(l.pending, model.TxRecord{
		Type:      txType,
		ID:        id,
		Timestamp: l.now(),
		Data:      data,
	})
	monitoring.SetPendingTransactions(len(l.pending))
}
