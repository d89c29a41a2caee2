package handler

import (
	"net/http"

	"ticket-chain/internal/ledger"
	"ticket-chain/internal/queue"

	"github.com/gin-gonic/gin"
)

type ChainHandler struct {
	ledger *ledger.Ledger
	queue  queue.MineQueue
}

func NewChainHandler(l *ledger.Ledger, q queue.MineQueue) *ChainHandler {
	return &ChainHandler{ledger: l, queue: q}
}

func (h *ChainHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("chain", h.GetChain)
		router.GET("chain/verify", h.VerifyChain)
		router.GET("chain/pending", h.GetPending)
		router.POST("chain/mine", h.Mine)
	}
}

// MineRequest 挖礦請求
type MineRequest struct {
	MinerAddr string `json:"miner_address" binding:"required"`
}

func (h *ChainHandler) GetChain(c *gin.Context) {
	blocks := h.ledger.Blocks()
	c.JSON(http.StatusOK, gin.H{
		"length": len(blocks),
		"blocks": blocks,
	})
}

func (h *ChainHandler) VerifyChain(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": h.ledger.VerifyChain()})
}

func (h *ChainHandler) GetPending(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pending": h.ledger.PendingCount()})
}

// Mine 把挖礦請求丟進隊列，由礦工 worker 非同步處理
func (h *ChainHandler) Mine(c *gin.Context) {
	var req MineRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.queue.PublishMineRequest(c, queue.MineRequest{MinerAddr: req.MinerAddr}); err != nil {
		handleError(c, err, "Mine")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "mining scheduled"})
}
