package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tournevent/aramexbridge/internal/service"
	"github.com/tournevent/aramexbridge/internal/telemetry"
)

var errOperationFailed = errors.New("operation failed")

var inputFile string

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Get shipping rates for a shipment document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd)
		if err != nil {
			return err
		}
		return runOneShot(cmd, func(ctx context.Context, svc *service.Service) (any, bool) {
			res := svc.QuoteJSON(ctx, raw)
			return res, res.Success
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a shipment from a shipment document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd)
		if err != nil {
			return err
		}
		return runOneShot(cmd, func(ctx context.Context, svc *service.Service) (any, bool) {
			res := svc.CreateJSON(ctx, raw)
			return res, res.Success
		})
	},
}

var labelCmd = &cobra.Command{
	Use:   "label <shipment-id>",
	Short: "Print the label of a shipment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, func(ctx context.Context, svc *service.Service) (any, bool) {
			res := svc.Label(ctx, args[0])
			return res, res.Success
		})
	},
}

var trackCmd = &cobra.Command{
	Use:   "track <shipment-id>...",
	Short: "Track one or more shipments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, func(ctx context.Context, svc *service.Service) (any, bool) {
			if len(args) == 1 {
				res := svc.Track(ctx, args[0])
				return res, res.Success
			}
			results := svc.TrackMany(ctx, args)
			ok := true
			for _, res := range results {
				ok = ok && res.Success
			}
			return results, ok
		})
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded shipments, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, func(ctx context.Context, svc *service.Service) (any, bool) {
			res := svc.History(ctx, historyLimit)
			return res, res.Success
		})
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show supported countries, units, currencies and products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, func(ctx context.Context, svc *service.Service) (any, bool) {
			res := svc.Configuration(ctx)
			return res, res.Success
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{quoteCmd, createCmd} {
		cmd.Flags().StringVarP(&inputFile, "file", "f", "", "JSON document to read (default stdin)")
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum number of records")

	rootCmd.AddCommand(quoteCmd, createCmd, labelCmd, trackCmd, historyCmd, configCmd)
}

func readInput(cmd *cobra.Command) ([]byte, error) {
	if inputFile == "" || inputFile == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// runOneShot builds the service, runs fn and prints its result as JSON.
func runOneShot(cmd *cobra.Command, fn func(context.Context, *service.Service) (any, bool)) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := telemetry.NewCLILogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, cleanup, err := initService(ctx, cfg, logger, nil, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	result, ok := fn(ctx, svc)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if !ok {
		return errOperationFailed
	}
	return nil
}
