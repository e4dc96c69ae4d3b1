package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := DefaultConfig()
	cmd := &cobra.Command{
		Use:          "autoshade <port>",
		Short:        "IR remote host",
		Long:         `Reads IR remote scan codes from a serial receiver and serves them over HTTP.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.PortName = args[0]
			return run(cfg)
		},
	}
	cmd.Flags().IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "serial baud rate")
	cmd.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	cmd.Flags().DurationVar(&cfg.HeartbeatInterval, "heartbeat", cfg.HeartbeatInterval, "heartbeat interval")
	cmd.Flags().DurationVar(&cfg.ReconnectDelay, "reconnect", cfg.ReconnectDelay, "delay between port open attempts")
	return cmd
}

func run(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	rootLogger := ptr(log.With().Logger())
	rootLogger = ptr(rootLogger.With().Str(LogKey.Port, cfg.PortName).Logger())
	logger := ptr(rootLogger.With().Str(LogKey.Module, "Main").Logger())
	logger.Info().Msg("Starting host processor")

	ctx, cancel := context.WithCancel(context.Background())

	inChan := make(chan byte, 10)
	outChan := make(chan byte, 10)

	waitGroup := &sync.WaitGroup{}

	portManager := NewPortManager(rootLogger, cfg, inChan, outChan, waitGroup)
	portManager.Start(ctx)

	buttonProcessor := NewButtonProcessor(rootLogger, inChan, waitGroup)
	buttonProcessor.Start(ctx)

	restAPI := NewRestApi(rootLogger, cfg.ListenAddr, buttonProcessor, waitGroup)
	restAPI.Start(ctx)

	err = waitForSignal(restAPI.Err())
	cancel()
	waitGroup.Wait()

	if err != nil {
		logger.Error().Err(err).Msg("Stopped on error")
		return err
	}
	logger.Info().Msg("Done")
	return nil
}

func waitForSignal(errs <-chan error) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	select {
	case <-signals:
		return nil
	case err := <-errs:
		return err
	}
}
