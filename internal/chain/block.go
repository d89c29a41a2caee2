package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"ticket-chain/internal/model"
)

// Block 區塊：封存一批交易紀錄，append 之後不可變
type Block struct {
	Timestamp    time.Time        `json:"timestamp"`
	Transactions []model.TxRecord `json:"transactions"`
	PreviousHash string           `json:"previous_hash"`
	Nonce        uint64           `json:"nonce"`
	Hash         string           `json:"hash"`
}

// blockPayload 雜湊輸入的標準序列化格式：欄位順序固定，跨實作可重現
type blockPayload struct {
	Timestamp    string           `json:"timestamp"`
	Transactions []model.TxRecord `json:"transactions"`
	PreviousHash string           `json:"previous_hash"`
	Nonce        uint64           `json:"nonce"`
}

func NewBlock(timestamp time.Time, transactions []model.TxRecord, previousHash string) *Block {
	b := &Block{
		Timestamp:    timestamp,
		Transactions: transactions,
		PreviousHash: previousHash,
	}
	b.Hash = b.CalculateHash()
	return b
}

// CalculateHash 計算區塊雜湊：sha256(timestamp + transactions + previous_hash + nonce)
func (b *Block) CalculateHash() string {
	data, err := json.Marshal(blockPayload{
		Timestamp:    b.Timestamp.UTC().Format(time.RFC3339Nano),
		Transactions: b.Transactions,
		PreviousHash: b.PreviousHash,
		Nonce:        b.Nonce,
	})
	if err != nil {
		// payload 都是可序列化的固定結構，這裡不應該發生
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Seal 工作量證明：遞增 nonce 直到雜湊有 difficulty 個前導零字元。
// 預期迭代次數正比於 16^difficulty，同步阻塞是刻意設計
func (b *Block) Seal(difficulty int) {
	target := strings.Repeat("0", difficulty)
	for !strings.HasPrefix(b.Hash, target) {
		b.Nonce++
		b.Hash = b.CalculateHash()
	}
}
