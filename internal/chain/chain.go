package chain

import (
	"errors"
	"sync"
	"time"

	"ticket-chain/internal/model"
)

// GenesisPreviousHash 創世區塊的前塊雜湊哨兵值
const GenesisPreviousHash = "0"

var ErrPreviousHashMismatch = errors.New("previous hash does not match chain tip")

// Chain 本地完整性日誌：只會追加，不分叉、不重組
type Chain struct {
	mu     sync.RWMutex
	blocks []*Block
}

// New 建立鏈並生成創世區塊（空交易列表，前塊雜湊為 "0"）
func New(now time.Time) *Chain {
	genesis := NewBlock(now, []model.TxRecord{}, GenesisPreviousHash)
	return &Chain{blocks: []*Block{genesis}}
}

// Tip 目前鏈尾區塊
func (c *Chain) Tip() *Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[len(c.blocks)-1]
}

// Append 追加已封存的區塊；前塊雜湊必須等於鏈尾雜湊
func (c *Chain) Append(b *Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	tip := c.blocks[len(c.blocks)-1]
	if b.PreviousHash != tip.Hash {
		return ErrPreviousHashMismatch
	}
	c.blocks = append(c.blocks, b)
	return nil
}

// Blocks 回傳區塊列表的複本
func (c *Chain) Blocks() []*Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	blocks := make([]*Block, len(c.blocks))
	copy(blocks, c.blocks)
	return blocks
}

func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Verify 重新推導每個區塊的雜湊並檢查前後鏈接
func (c *Chain) Verify() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i, b := range c.blocks {
		if b.Hash != b.CalculateHash() {
			return false
		}
		if i == 0 {
			if b.PreviousHash != GenesisPreviousHash {
				return false
			}
			continue
		}
		if b.PreviousHash != c.blocks[i-1].Hash {
			return false
		}
	}
	return true
}
