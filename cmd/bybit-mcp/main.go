package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bybitmcp/internal/config"
	"bybitmcp/internal/server"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:     "bybit-mcp",
		Short:   "MCP server exposing Bybit market data and trading tools",
		Version: server.Version,
		Long: `bybit-mcp serves Bybit's v5 REST API as MCP tools over stdio.

Market data tools are always available. Order, position, and margin
tools require BYBIT_TRADING_ENABLED=true plus API credentials.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			srv, err := server.NewBybitMCPServer(cfg, logger)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	return cmd
}

// newLogger writes structured logs to stderr; stdout belongs to the MCP
// stdio transport.
func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}
