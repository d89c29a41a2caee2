package queue

import "context"

// MineRequest 挖礦請求
type MineRequest struct {
	MinerAddr string
}

type Delivery struct {
	Data MineRequest
	Ack  func()
	Nack func(requeue bool)
}

type MineQueue interface {
	// 發送挖礦請求到隊列
	PublishMineRequest(ctx context.Context, req MineRequest) error
	// 訂閱挖礦請求隊列
	SubscribeMineRequests(ctx context.Context) (<-chan Delivery, error)
}

type MineQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan MineRequest
}

func NewMineQueue(bufferSize int) MineQueue {
	return &MineQueueImpl{
		ch: make(chan MineRequest, bufferSize),
	}
}

func (q *MineQueueImpl) PublishMineRequest(ctx context.Context, req MineRequest) error {
	q.ch <- req
	return nil
}

func (q *MineQueueImpl) SubscribeMineRequests(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case req, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: req,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- req
						}
					},
				}
			}
		}
	}()

	return out, nil
}
