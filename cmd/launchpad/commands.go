// cmd/launchpad/commands.go
package main

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/moonforge/launchpad/internal/curve"
)

func solanaKey(s string) (solana.PublicKey, error) {
	if s == "" {
		return solana.PublicKey{}, nil
	}
	return solana.PublicKeyFromBase58(s)
}

func newConfigureCmd(a *app) *cobra.Command {
	var (
		caller, authority, teamWallet, devWallet string
		initBondingCurve                         float64
		buyFee, sellFee, curveLimit              uint64
		tradingFeeBps, devFeeShareBps            uint16
		devFeeEnabled                            bool
		minLamports, maxLamports                 uint64
		minSupply, maxSupply                     uint64
		decimalsOptions                          []uint
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Create or replace the policy record",
		RunE: func(cmd *cobra.Command, args []string) error {
			callerKey, err := solanaKey(caller)
			if err != nil {
				return fmt.Errorf("caller: %w", err)
			}
			authorityKey, err := solanaKey(authority)
			if err != nil {
				return fmt.Errorf("authority: %w", err)
			}
			teamKey, err := solanaKey(teamWallet)
			if err != nil {
				return fmt.Errorf("team-wallet: %w", err)
			}
			devKey, err := solanaKey(devWallet)
			if err != nil {
				return fmt.Errorf("dev-wallet: %w", err)
			}

			decimals := make([]uint8, 0, len(decimalsOptions))
			for _, d := range decimalsOptions {
				decimals = append(decimals, uint8(d))
			}

			cfg := curve.Config{
				Authority:           authorityKey,
				TeamWallet:          teamKey,
				DevWallet:           devKey,
				InitBondingCurve:    initBondingCurve,
				PlatformBuyFee:      buyFee,
				PlatformSellFee:     sellFee,
				TradingFeeBps:       tradingFeeBps,
				DevFeeShareBps:      devFeeShareBps,
				DevFeeEnabled:       devFeeEnabled,
				CurveLimit:          curveLimit,
				LamportAmountConfig: curve.RangeConfig(&minLamports, &maxLamports),
				TokenSupplyConfig:   curve.RangeConfig(&minSupply, &maxSupply),
				TokenDecimalsConfig: curve.EnumConfig(decimals...),
			}
			if err := a.engine.Configure(cmd.Context(), callerKey, cfg); err != nil {
				return err
			}
			cmd.Println("config replaced")
			return nil
		},
	}

	cmd.Flags().StringVar(&caller, "as", "", "caller identity (base58)")
	cmd.Flags().StringVar(&authority, "authority", "", "new administrator identity")
	cmd.Flags().StringVar(&teamWallet, "team-wallet", "", "platform fee destination")
	cmd.Flags().StringVar(&devWallet, "dev-wallet", "", "developer fee destination (empty disables the dev leg)")
	cmd.Flags().Float64Var(&initBondingCurve, "init-bonding-curve", 100, "percent of supply seeded into the curve")
	cmd.Flags().Uint64Var(&buyFee, "platform-buy-fee", 100, "buy fee in bps")
	cmd.Flags().Uint64Var(&sellFee, "platform-sell-fee", 100, "sell fee in bps")
	cmd.Flags().Uint16Var(&tradingFeeBps, "trading-fee-bps", 0, "platform share of the gross fee in bps (0 = default)")
	cmd.Flags().Uint16Var(&devFeeShareBps, "dev-fee-share-bps", 0, "dev share of the gross fee in bps (0 = default)")
	cmd.Flags().BoolVar(&devFeeEnabled, "dev-fee-enabled", false, "enable the dev fee leg")
	cmd.Flags().Uint64Var(&curveLimit, "curve-limit", 0, "native-value completion threshold in lamports")
	cmd.Flags().Uint64Var(&minLamports, "min-lamports", 0, "minimum virtual reserve at launch")
	cmd.Flags().Uint64Var(&maxLamports, "max-lamports", 1_000_000_000_000, "maximum virtual reserve at launch")
	cmd.Flags().Uint64Var(&minSupply, "min-supply", 0, "minimum token supply at launch")
	cmd.Flags().Uint64Var(&maxSupply, "max-supply", ^uint64(0), "maximum token supply at launch")
	cmd.Flags().UintSliceVar(&decimalsOptions, "decimals", []uint{6, 9}, "allowed mint decimals")
	return cmd
}

func newNominateCmd(a *app) *cobra.Command {
	var caller, nominee string

	cmd := &cobra.Command{
		Use:   "nominate-authority",
		Short: "Stage a two-step administrator handoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			callerKey, err := solanaKey(caller)
			if err != nil {
				return fmt.Errorf("as: %w", err)
			}
			nomineeKey, err := solanaKey(nominee)
			if err != nil {
				return fmt.Errorf("nominee: %w", err)
			}
			if err := a.engine.NominateAuthority(cmd.Context(), callerKey, nomineeKey); err != nil {
				return err
			}
			cmd.Printf("nominated %s\n", nomineeKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&caller, "as", "", "caller identity (base58)")
	cmd.Flags().StringVar(&nominee, "nominee", "", "pending administrator identity")
	return cmd
}

func newAcceptCmd(a *app) *cobra.Command {
	var caller string

	cmd := &cobra.Command{
		Use:   "accept-authority",
		Short: "Promote the pending administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			callerKey, err := solanaKey(caller)
			if err != nil {
				return fmt.Errorf("as: %w", err)
			}
			if err := a.engine.AcceptAuthority(cmd.Context(), callerKey); err != nil {
				return err
			}
			cmd.Println("authority accepted")
			return nil
		},
	}

	cmd.Flags().StringVar(&caller, "as", "", "caller identity (base58)")
	return cmd
}

func newLaunchCmd(a *app) *cobra.Command {
	var (
		creator, mint, name, symbol, uri string
		decimals                         uint8
		supply, virtualReserves          uint64
	)

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Mint a token and open its bonding curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			creatorKey, err := solanaKey(creator)
			if err != nil {
				return fmt.Errorf("creator: %w", err)
			}
			mintKey, err := solanaKey(mint)
			if err != nil {
				return fmt.Errorf("mint: %w", err)
			}

			bc, err := a.engine.Launch(cmd.Context(), curve.LaunchParams{
				Creator:                creatorKey,
				Mint:                   mintKey,
				Decimals:               decimals,
				TokenSupply:            supply,
				VirtualLamportReserves: virtualReserves,
				Name:                   name,
				Symbol:                 symbol,
				URI:                    uri,
			})
			if err != nil {
				return err
			}
			cmd.Printf("launched %s: reserve_token=%d reserve_lamport=%d curve_limit=%d\n",
				bc.TokenMint, bc.ReserveToken, bc.ReserveLamport, bc.CurveLimit)
			return nil
		},
	}

	cmd.Flags().StringVar(&creator, "creator", "", "launcher identity (base58)")
	cmd.Flags().StringVar(&mint, "mint", "", "mint identity (base58)")
	cmd.Flags().Uint8Var(&decimals, "decimals", 6, "mint decimals")
	cmd.Flags().Uint64Var(&supply, "supply", 1_000_000_000_000_000, "token supply in smallest units")
	cmd.Flags().Uint64Var(&virtualReserves, "virtual-reserves", 30_000_000_000, "virtual native reserve in lamports")
	cmd.Flags().StringVar(&name, "name", "", "token name")
	cmd.Flags().StringVar(&symbol, "symbol", "", "token symbol")
	cmd.Flags().StringVar(&uri, "uri", "", "metadata URI")
	return cmd
}

func newSwapCmd(a *app, direction curve.Direction) *cobra.Command {
	var (
		user, mint, devWallet string
		amount, minReceive    uint64
		deadlineSecs          int64
	)

	use := "buy"
	short := "Buy tokens with native value"
	if direction == curve.DirectionSell {
		use = "sell"
		short = "Sell tokens for native value"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			userKey, err := solanaKey(user)
			if err != nil {
				return fmt.Errorf("user: %w", err)
			}
			mintKey, err := solanaKey(mint)
			if err != nil {
				return fmt.Errorf("mint: %w", err)
			}
			devKey, err := solanaKey(devWallet)
			if err != nil {
				return fmt.Errorf("dev-wallet: %w", err)
			}

			cfg, ok := a.engine.Config()
			if !ok {
				return curve.ErrIncorrectConfigAccount
			}

			out, err := a.engine.Swap(cmd.Context(), curve.SwapParams{
				User:           userKey,
				Mint:           mintKey,
				Amount:         amount,
				Direction:      direction,
				MinimumReceive: minReceive,
				Deadline:       time.Now().Unix() + deadlineSecs,
				TeamWallet:     cfg.TeamWallet,
				DevWallet:      devKey,
			})
			if err != nil {
				return err
			}
			cmd.Printf("%s filled: received %d\n", use, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "trader identity (base58)")
	cmd.Flags().StringVar(&mint, "mint", "", "mint identity (base58)")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "input amount in smallest units")
	cmd.Flags().Uint64Var(&minReceive, "min-receive", 0, "slippage floor on the output")
	cmd.Flags().Int64Var(&deadlineSecs, "deadline", 60, "expiry in seconds from now")
	cmd.Flags().StringVar(&devWallet, "dev-wallet", "", "dev fee destination (optional)")
	return cmd
}

func newWithdrawCmd(a *app) *cobra.Command {
	var caller, mint string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Drain a completed curve to the administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			callerKey, err := solanaKey(caller)
			if err != nil {
				return fmt.Errorf("as: %w", err)
			}
			mintKey, err := solanaKey(mint)
			if err != nil {
				return fmt.Errorf("mint: %w", err)
			}
			if err := a.engine.Withdraw(cmd.Context(), callerKey, mintKey); err != nil {
				return err
			}
			cmd.Println("withdrawn")
			return nil
		},
	}

	cmd.Flags().StringVar(&caller, "as", "", "caller identity (base58)")
	cmd.Flags().StringVar(&mint, "mint", "", "mint identity (base58)")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	var mint string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show curve reserves, price and completion progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mint == "" {
				for _, bc := range a.engine.Curves() {
					printCurve(cmd, a, bc)
				}
				return nil
			}
			mintKey, err := solanaKey(mint)
			if err != nil {
				return fmt.Errorf("mint: %w", err)
			}
			bc, ok := a.engine.Curve(mintKey)
			if !ok {
				return fmt.Errorf("mint %s: %w", mintKey, curve.ErrCurveNotFound)
			}
			printCurve(cmd, a, bc)
			return nil
		},
	}

	cmd.Flags().StringVar(&mint, "mint", "", "mint identity (empty lists all curves)")
	return cmd
}

func printCurve(cmd *cobra.Command, a *app, bc curve.BondingCurve) {
	decimals := uint8(curve.LamportDecimals)
	if info, err := a.led.MintInfo(bc.TokenMint); err == nil {
		decimals = info.Decimals
	}
	state := "active"
	if bc.IsCompleted {
		state = "completed"
	}
	cmd.Printf("%s  %s  reserve_token=%d reserve_lamport=%d price=%s progress=%s%%\n",
		bc.TokenMint, state, bc.ReserveToken, bc.ReserveLamport,
		bc.Price(decimals).String(), bc.Progress().String())
}

func newFaucetCmd(a *app) *cobra.Command {
	var to string
	var amount uint64

	cmd := &cobra.Command{
		Use:   "faucet",
		Short: "Credit native value to an account (sandbox only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			toKey, err := solanaKey(to)
			if err != nil {
				return fmt.Errorf("to: %w", err)
			}
			a.led.CreditLamports(toKey, amount)
			cmd.Printf("credited %d lamports to %s\n", amount, toKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient identity (base58)")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "lamports to credit")
	return cmd
}
