package fraud

import (
	"math/rand"
	"time"
)

// Judgement 詐欺判定結果
type Judgement string

const (
	JudgementNormal  Judgement = "normal"
	JudgementSuspect Judgement = "suspect"
	JudgementFraud   Judgement = "fraud"
)

// Transaction 待判定的交易描述
type Transaction struct {
	Wallet          string
	EventID         string
	TicketType      string
	Timestamp       time.Time
	FraudProne      bool
	RecentPurchases int
}

// Detector 詐欺判定是外部協作者：fraud 在呼叫端就擋下，
// suspect 只記錄不阻擋，ledger 的鑄票路徑本身不消費這個結果
type Detector interface {
	Judge(tx Transaction) Judgement
}

// HeuristicDetector 規則式的簡易判定器，可替換成真正的模型
type HeuristicDetector struct {
	rng *rand.Rand
}

func NewHeuristicDetector(seed int64) *HeuristicDetector {
	return &HeuristicDetector{rng: rand.New(rand.NewSource(seed))}
}

func (d *HeuristicDetector) Judge(tx Transaction) Judgement {
	suspicion := 0.1
	if tx.FraudProne {
		suspicion += 0.3
	}

	if d.rng.Float64() < suspicion {
		if d.rng.Float64() < 0.5 {
			return JudgementSuspect
		}
		return JudgementFraud
	}
	return JudgementNormal
}
