// cmd/launchpad/main.go

// Command launchpad drives the bonding-curve engine against a file-backed
// state snapshot: configure policy, launch curves, trade against them and
// withdraw completed ones.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/moonforge/launchpad/internal/config"
	"github.com/moonforge/launchpad/internal/curve"
	"github.com/moonforge/launchpad/internal/events"
	"github.com/moonforge/launchpad/internal/ledger"
	"github.com/moonforge/launchpad/internal/logger"
	"github.com/moonforge/launchpad/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	engine     *curve.Engine
	led        *ledger.Ledger
	dispatcher *events.Dispatcher
	ledgerPath string
}

func newRootCmd() *cobra.Command {
	var configPath string
	a := &app{}

	root := &cobra.Command{
		Use:           "launchpad",
		Short:         "Bonding-curve token launchpad engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(configPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "launchpad.yaml", "deployment config file")

	root.AddCommand(
		newConfigureCmd(a),
		newNominateCmd(a),
		newAcceptCmd(a),
		newLaunchCmd(a),
		newSwapCmd(a, curve.DirectionBuy),
		newSwapCmd(a, curve.DirectionSell),
		newWithdrawCmd(a),
		newStatusCmd(a),
		newFaucetCmd(a),
	)
	return root
}

func (a *app) setup(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.logger = logger.New(cfg.Development)

	seedAuthority, err := solanaKey(cfg.SeedAuthority)
	if err != nil {
		return fmt.Errorf("seed_authority: %w", err)
	}

	st, err := store.OpenFile(cfg.StateFile, a.logger)
	if err != nil {
		return err
	}

	a.led = ledger.New()
	a.ledgerPath = cfg.StateFile + ".ledger"
	if data, err := os.ReadFile(a.ledgerPath); err == nil {
		if err := a.led.Restore(data); err != nil {
			return fmt.Errorf("restore ledger: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read ledger: %w", err)
	}

	a.dispatcher = events.NewDispatcher(a.logger)
	if cfg.WebhookURL != "" {
		a.dispatcher.Subscribe(events.NewWebhookSink(cfg.WebhookURL, a.logger))
	}

	a.engine = curve.New(st, a.led, seedAuthority, a.logger,
		curve.WithDispatcher(a.dispatcher))
	return nil
}

func (a *app) teardown() error {
	data, err := a.led.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot ledger: %w", err)
	}
	if err := os.WriteFile(a.ledgerPath, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := a.dispatcher.Close(); err != nil {
		return err
	}
	logger.Sync(a.logger)
	return nil
}
