package ledger

import (
	"time"

	"ticket-chain/internal/chain"
	"ticket-chain/internal/model"
	"ticket-chain/internal/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinePendingTransactions 把待挖緩衝區封存成新區塊。
// 緩衝區為空時是 no-op。封塊（工作量證明）在臨界區外執行，
// 鑄票、轉讓不會被挖礦卡住；挖礦一旦開始就會跑到完成，沒有逾時
func (l *Ledger) MinePendingTransactions(minerAddr string) error {
	l.mu.Lock()
	if len(l.pending) == 0 {
		l.mu.Unlock()
		l.log.Info("no pending transactions to mine")
		return nil
	}

	transactions := make([]model.TxRecord, len(l.pending), len(l.pending)+1)
	copy(transactions, l.pending)
	transactions = append(transactions, model.TxRecord{
		Type:      model.TxReward,
		ID:        uuid.NewString(),
		Timestamp: l.now(),
		Data: model.RewardTx{
			Miner:  minerAddr,
			Reward: l.reward,
		},
	})

	l.pending = nil
	monitoring.SetPendingTransactions(0)

	previousHash := l.chain.Tip().Hash
	timestamp := l.now()
	l.mu.Unlock()

	block := chain.NewBlock(timestamp, transactions, previousHash)

	start := time.Now()
	l.seal(block, l.difficulty)
	monitoring.RecordBlockMined(time.Since(start))

	if err := l.chain.Append(block); err != nil {
		// 鏈尾在封塊期間被搶先：整批交易放回緩衝區（礦工獎勵除外），
		// 下次挖礦重新封存，不能弄丟使用者的交易
		l.restorePending(transactions[:len(transactions)-1])
		return err
	}

	l.log.Info("block mined",
		zap.String("miner", minerAddr),
		zap.Uint64("nonce", block.Nonce),
		zap.String("hash", block.Hash),
		zap.Int("transactions", len(transactions)))
	return nil
}

// restorePending 把封塊失敗的批次放回緩衝區開頭，維持時間順序
func (l *Ledger) restorePending(batch []model.TxRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(batch, l.pending...)
	monitoring.SetPendingTransactions(len(l.pending))
}
