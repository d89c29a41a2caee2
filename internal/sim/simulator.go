package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"ticket-chain/internal/fraud"
	"ticket-chain/internal/ledger"
	"ticket-chain/internal/model"
	apperrors "ticket-chain/pkg/app_errors"
	"ticket-chain/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Profile 代理人行為輪廓
type Profile string

const (
	ProfileCasual     Profile = "casual"
	ProfileEnthusiast Profile = "enthusiast"
	ProfileScalper    Profile = "scalper"
)

// Agent 模擬中的買家
type Agent struct {
	Wallet  string
	Profile Profile
}

// FraudProne 黃牛輪廓在判定器眼中帶有前科
func (a Agent) FraudProne() bool {
	return a.Profile == ProfileScalper
}

// Summary 一次模擬的統計結果
type Summary struct {
	Steps             int                       `json:"steps"`
	MintAttempts      int                       `json:"mint_attempts"`
	MintSuccesses     int                       `json:"mint_successes"`
	TransferAttempts  int                       `json:"transfer_attempts"`
	TransferSuccesses int                       `json:"transfer_successes"`
	BlockedByFraud    int                       `json:"blocked_by_fraud"`
	BlockedByPolicy   int                       `json:"blocked_by_policy"`
	Judgements        map[fraud.Judgement]int   `json:"judgements"`
	TicketsByProfile  map[Profile]int           `json:"tickets_by_profile"`
}

// Simulator 跑一場搶票模擬：代理人輪流嘗試鑄票與轉讓，
// 鑄票前先過詐欺判定，fraud 直接擋下，suspect 放行但記錄
type Simulator struct {
	ledger   *ledger.Ledger
	detector fraud.Detector
	rng      *rand.Rand
	agents   []Agent
	log      *zap.Logger
}

func New(l *ledger.Ledger, detector fraud.Detector, users int, seed int64) *Simulator {
	rng := rand.New(rand.NewSource(seed))

	agents := make([]Agent, 0, users)
	for i := 0; i < users; i++ {
		profile := ProfileCasual
		switch {
		case i%5 == 0:
			profile = ProfileScalper
		case i%3 == 0:
			profile = ProfileEnthusiast
		}
		agents = append(agents, Agent{
			Wallet:  fmt.Sprintf("agent-%03d", i),
			Profile: profile,
		})
	}

	return &Simulator{
		ledger:   l,
		detector: detector,
		rng:      rng,
		agents:   agents,
		log:      logger.WithComponent("simulator"),
	}
}

// Run 執行 steps 回合，每回合隨機挑一個代理人行動
func (s *Simulator) Run(eventID uuid.UUID, steps int) (*Summary, error) {
	event, err := s.ledger.GetEvent(eventID)
	if err != nil {
		return nil, err
	}

	types := make([]model.TicketType, 0, len(event.TotalTickets))
	for t := range event.TotalTickets {
		types = append(types, t)
	}
	if len(types) == 0 {
		return nil, apperrors.ErrNoInventory
	}

	summary := &Summary{
		Steps:            steps,
		Judgements:       make(map[fraud.Judgement]int),
		TicketsByProfile: make(map[Profile]int),
	}

	for i := 0; i < steps; i++ {
		agent := s.agents[s.rng.Intn(len(s.agents))]

		// 黃牛買得多也轉得勤
		transferBias := 0.2
		if agent.Profile == ProfileScalper {
			transferBias = 0.5
		}

		if s.rng.Float64() < transferBias {
			s.attemptTransfer(agent, summary)
		} else {
			s.attemptMint(agent, eventID, types, summary)
		}
	}

	for _, agent := range s.agents {
		for _, t := range s.ledger.GetUserTickets(agent.Wallet) {
			if t.Status == model.TicketStatusValid {
				summary.TicketsByProfile[agent.Profile]++
			}
		}
	}

	s.log.Info("simulation finished",
		zap.Int("steps", steps),
		zap.Int("mint_successes", summary.MintSuccesses),
		zap.Int("transfer_successes", summary.TransferSuccesses),
		zap.Int("blocked_by_fraud", summary.BlockedByFraud))
	return summary, nil
}

func (s *Simulator) attemptMint(agent Agent, eventID uuid.UUID, types []model.TicketType, summary *Summary) {
	summary.MintAttempts++
	ticketType := types[s.rng.Intn(len(types))]

	judgement := s.detector.Judge(fraud.Transaction{
		Wallet:          agent.Wallet,
		EventID:         eventID.String(),
		TicketType:      string(ticketType),
		FraudProne:      agent.FraudProne(),
		RecentPurchases: len(s.ledger.GetUserTickets(agent.Wallet)),
	})
	summary.Judgements[judgement]++
	if judgement == fraud.JudgementFraud {
		summary.BlockedByFraud++
		return
	}

	_, err := s.ledger.MintTicket(eventID, agent.Wallet, ticketType, nil, nil)
	if err != nil {
		summary.BlockedByPolicy++
		return
	}
	summary.MintSuccesses++
}

func (s *Simulator) attemptTransfer(agent Agent, summary *Summary) {
	owned := s.ledger.GetUserTickets(agent.Wallet)

	var candidate *model.Ticket
	for _, t := range owned {
		if t.Status == model.TicketStatusValid {
			candidate = t
			break
		}
	}
	if candidate == nil {
		return
	}

	recipient := s.agents[s.rng.Intn(len(s.agents))]
	if recipient.Wallet == agent.Wallet {
		return
	}

	summary.TransferAttempts++

	// 黃牛會試著抬價，最低轉售價以下的出價留給政策去擋
	price := candidate.Price
	if agent.Profile == ProfileScalper {
		price = price.Mul(decimal.NewFromFloat(1.5))
	}

	err := s.ledger.TransferTicket(candidate.TicketID, agent.Wallet, recipient.Wallet, price, nil, nil)
	if err != nil {
		if !errors.Is(err, apperrors.ErrTicketNotFound) {
			summary.BlockedByPolicy++
		}
		return
	}

	if err := s.ledger.ConfirmTransfer(candidate.TicketID, recipient.Wallet); err != nil {
		summary.BlockedByPolicy++
		return
	}
	summary.TransferSuccesses++
}
