package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"ticket-chain/config"
	"ticket-chain/internal/handler"
	"ticket-chain/internal/ledger"
	"ticket-chain/internal/queue"
	"ticket-chain/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l := ledger.New(cfg)

	mineQueue := queue.NewMineQueue(100)
	minerWorker := worker.NewMinerWorker(l, mineQueue)
	if err := minerWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start miner worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.NewEventHandler(l).RegisterRoutes(router)
	handler.NewTicketHandler(l).RegisterRoutes(router)
	handler.NewChainHandler(l, mineQueue).RegisterRoutes(router)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
