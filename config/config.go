package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig
	Chain  ChainConfig
	Policy PolicyConfig
}

type ServerConfig struct {
	Port string
}

type ChainConfig struct {
	// 挖礦難度：區塊雜湊需要的前導零字元數
	Difficulty int
	// 礦工獎勵
	MinerReward int64
	MinerAddr   string
}

type PolicyConfig struct {
	// 轉讓冷卻時間（自上次所有權變更起算）
	TransferCooldown time.Duration
	// 待確認轉讓的有效期限
	PendingTransferTTL time.Duration
	// 購買限流：滑動時間窗與上限
	PurchaseWindow time.Duration
	PurchaseLimit  int
	// 轉讓限流：滑動時間窗與上限
	TransferWindow time.Duration
	TransferLimit  int
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Chain: ChainConfig{
			Difficulty:  getEnvInt("CHAIN_DIFFICULTY", 2),
			MinerReward: int64(getEnvInt("CHAIN_MINER_REWARD", 10)),
			MinerAddr:   getEnv("CHAIN_MINER_ADDR", "system_miner"),
		},
		Policy: PolicyConfig{
			TransferCooldown:   getEnvDuration("POLICY_TRANSFER_COOLDOWN", 10*time.Minute),
			PendingTransferTTL: getEnvDuration("POLICY_PENDING_TRANSFER_TTL", 24*time.Hour),
			PurchaseWindow:     getEnvDuration("POLICY_PURCHASE_WINDOW", 24*time.Hour),
			PurchaseLimit:      getEnvInt("POLICY_PURCHASE_LIMIT", 10),
			TransferWindow:     getEnvDuration("POLICY_TRANSFER_WINDOW", 24*time.Hour),
			TransferLimit:      getEnvInt("POLICY_TRANSFER_LIMIT", 5),
		},
	}

	return AppConfig
}

// LoadTestConfig 測試用設定：難度 1、冷卻縮短，讓測試可以快速封塊
func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8081",
		},
		Chain: ChainConfig{
			Difficulty:  1,
			MinerReward: 10,
			MinerAddr:   "test_miner",
		},
		Policy: PolicyConfig{
			TransferCooldown:   time.Minute,
			PendingTransferTTL: 24 * time.Hour,
			PurchaseWindow:     24 * time.Hour,
			PurchaseLimit:      10,
			TransferWindow:     24 * time.Hour,
			TransferLimit:      5,
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
