package worker

import (
	"context"

	"ticket-chain/internal/ledger"
	"ticket-chain/internal/queue"
	"ticket-chain/pkg/logger"

	"go.uber.org/zap"
)

// MinerWorker 礦工背景工作者：逐一消化挖礦請求，
// 封塊在這裡序列化執行，API 請求不會被工作量證明卡住
type MinerWorker interface {
	Start(ctx context.Context) error
}

type MinerWorkerImpl struct {
	ledger *ledger.Ledger
	queue  queue.MineQueue
	log    *zap.Logger
}

func NewMinerWorker(l *ledger.Ledger, q queue.MineQueue) MinerWorker {
	return &MinerWorkerImpl{
		ledger: l,
		queue:  q,
		log:    logger.WithComponent("miner_worker"),
	}
}

func (w *MinerWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeMineRequests(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			err := w.ledger.MinePendingTransactions(msg.Data.MinerAddr)
			if err != nil {
				// 失敗的批次已經回到待挖緩衝區，下一個挖礦請求會重新封存
				w.log.Error("mining failed", zap.Error(err))
				msg.Nack(false)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
