package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ticket-chain/config"
	"ticket-chain/internal/fraud"
	"ticket-chain/internal/ledger"
	"ticket-chain/internal/model"
	"ticket-chain/internal/sim"
	"ticket-chain/internal/wallet"

	"github.com/shopspring/decimal"
)

func main() {
	root := &cobra.Command{
		Use:          "simulate",
		Short:        "Ticket ledger simulation tools",
		SilenceUsage: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a ticket rush simulation against an in-memory ledger",
		RunE:  runSimulation,
	}

	runCmd.Flags().Int("users", 20, "number of simulated agents")
	runCmd.Flags().Int("steps", 200, "simulation steps")
	runCmd.Flags().Int("difficulty", 1, "mining difficulty (leading zero hex chars)")
	runCmd.Flags().Int64("seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().String("miner", "sim_miner", "miner address for the reward transaction")

	root.AddCommand(runCmd)

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Generate a wallet key file and print its address",
		RunE:  runWallet,
	}

	walletCmd.Flags().String("file", "wallet.json", "wallet file path")

	root.AddCommand(walletCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	users, _ := cmd.Flags().GetInt("users")
	steps, _ := cmd.Flags().GetInt("steps")
	difficulty, _ := cmd.Flags().GetInt("difficulty")
	seed, _ := cmd.Flags().GetInt64("seed")
	miner, _ := cmd.Flags().GetString("miner")

	cfg := config.LoadConfig()
	cfg.Chain.Difficulty = difficulty

	l := ledger.New(cfg)

	// 模擬用活動：庫存故意開得比需求小，才看得到售罄與候補行為
	event, err := l.CreateEvent(model.CreateEventRequest{
		Name:  "Simulated Rush Concert",
		Venue: "Sim Arena",
		Date:  time.Now().Add(30 * 24 * time.Hour),
		TicketTypes: map[model.TicketType]int{
			model.TicketTypeRegular: users * 2,
			model.TicketTypeVIP:     users / 2,
		},
		Prices: map[model.TicketType]decimal.Decimal{
			model.TicketTypeRegular: decimal.NewFromInt(100),
			model.TicketTypeVIP:     decimal.NewFromInt(500),
		},
		OrganizerAddr:     "sim_organizer",
		Category:          "concert",
		MaxTicketsPerUser: 4,
		RefundableUntil:   time.Now().Add(29 * 24 * time.Hour),
	})
	if err != nil {
		return err
	}

	simulator := sim.New(l, fraud.NewHeuristicDetector(seed), users, seed)
	summary, err := simulator.Run(event.EventID, steps)
	if err != nil {
		return err
	}

	if err := l.MinePendingTransactions(miner); err != nil {
		return err
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	fmt.Printf("chain length: %d, valid: %v\n", len(l.Blocks()), l.VerifyChain())
	return nil
}

func runWallet(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")

	w := wallet.New(file)
	loaded, err := w.LoadKey()
	if err != nil {
		return err
	}
	if !loaded {
		if err := w.CreateNewKey(); err != nil {
			return err
		}
	}

	addr, err := w.Address()
	if err != nil {
		return err
	}
	fmt.Printf("wallet file: %s\naddress: %s\n", file, addr)
	return nil
}
