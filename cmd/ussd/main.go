package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edufair/internal/app"
	"edufair/internal/server"
)

const janitorInterval = time.Minute

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts app.Options
	var dbURL string
	cmd := &cobra.Command{
		Use:          "ussd",
		Short:        "Serve the USSD registration webhooks",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Passphrase == "" {
				opts.Passphrase = os.Getenv("FAIR_PASSPHRASE")
			}
			a, err := app.New(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, a, dbURL)
		},
	}
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./fair.toml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().StringVarP(&opts.Passphrase, "passphrase", "p", "", "keystore passphrase (or $FAIR_PASSPHRASE)")
	cmd.Flags().StringVar(&opts.SecretsPath, "secrets", "", "keystore file")
	cmd.Flags().StringVar(&dbURL, "database", "", "registration store URL")
	return cmd
}

func run(ctx context.Context, a *app.App, dbURL string) error {
	st, err := a.Store(ctx, dbURL)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := a.USSD(st)
	if err != nil {
		return err
	}

	log := a.Log
	go svc.Sessions().Janitor(ctx, janitorInterval, func(id string) {
		log.Debug("ussd session expired", zap.String("session", id))
	})

	cfg := a.Config.Server
	return server.Run(ctx, server.RunConfig{
		Addr:            cfg.Addr(),
		ReadTimeout:     cfg.ReadTimeoutDuration(),
		ShutdownTimeout: cfg.ShutdownTimeoutDuration(),
	}, server.New(svc, st, log.Named("http")), log)
}
