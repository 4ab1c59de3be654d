package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"destination-sync/core/config"
	"destination-sync/core/logger"
	"destination-sync/core/metrics"
	"destination-sync/core/reconcile"
	"destination-sync/core/transport"
	"destination-sync/feature/blackbaud"
	"destination-sync/feature/hubspot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags shared by the reconcile subcommands
	payloadFile string
	scopeID     string
	syncMode    string
)

// reconcileCmd is the parent command for one-shot deliveries.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run a single reconciliation against a destination",
	Long: `Reconcile one payload against a destination and print the result.

The file holds the same body the HTTP endpoint accepts: {"settings": {...}, "payload": {...}}.`,
}

var eventReconcileCmd = &cobra.Command{
	Use:   "event",
	Short: "Reconcile the HubSpot event schema and send the event",
	Long: `Reconcile the custom event definition for the payload, then send the event.

Examples:
  reconcile event --file event.json
  reconcile event --file event.json --scope tenant-1 --mode add`,
	RunE: runEventReconcile,
}

var constituentReconcileCmd = &cobra.Command{
	Use:   "constituent",
	Short: "Create or update a Raiser's Edge NXT constituent",
	RunE:  runConstituentReconcile,
}

var giftReconcileCmd = &cobra.Command{
	Use:   "gift",
	Short: "Create a Raiser's Edge NXT gift, reconciling the donor first",
	RunE:  runGiftReconcile,
}

func init() {
	reconcileCmd.PersistentFlags().StringVarP(&payloadFile, "file", "f", "", "Path to the request JSON file")
	_ = reconcileCmd.MarkPersistentFlagRequired("file")

	eventReconcileCmd.Flags().StringVar(&scopeID, "scope", "", "Scope id for the schema cache (overrides the file)")
	eventReconcileCmd.Flags().StringVar(&syncMode, "mode", "", "Sync mode: upsert, add or update (overrides the file)")

	reconcileCmd.AddCommand(eventReconcileCmd)
	reconcileCmd.AddCommand(constituentReconcileCmd)
	reconcileCmd.AddCommand(giftReconcileCmd)

	RootCmd.AddCommand(reconcileCmd)
}

// runtime bundles what every subcommand needs.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	client  *transport.Client
}

func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &runtime{
		cfg:     cfg,
		logger:  l,
		metrics: metrics.New(),
		client:  transport.NewClient(cfg.Transport),
	}, nil
}

func readRequest(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func runEventReconcile(cmd *cobra.Command, args []string) error {
	var req hubspot.SendEventRequest
	if err := readRequest(payloadFile, &req); err != nil {
		return err
	}
	if scopeID != "" {
		req.Settings.ScopeID = scopeID
	}
	if syncMode != "" {
		req.Settings.SyncMode = syncMode
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	cache := reconcile.NewSchemaCache(rt.cfg.Cache, rt.metrics, rt.logger)
	svc := hubspot.NewService(rt.cfg.HubSpot, rt.client, cache, rt.metrics, rt.logger)

	res, err := svc.SendEvent(context.Background(), req)
	return report(cmd, rt.logger, res, err)
}

func runConstituentReconcile(cmd *cobra.Command, args []string) error {
	var req blackbaud.ConstituentRequest
	if err := readRequest(payloadFile, &req); err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	svc := blackbaud.NewService(rt.cfg.Blackbaud, rt.client, rt.metrics, rt.logger)
	res, err := svc.UpsertConstituent(context.Background(), req)
	return report(cmd, rt.logger, res, err)
}

func runGiftReconcile(cmd *cobra.Command, args []string) error {
	var req blackbaud.GiftRequest
	if err := readRequest(payloadFile, &req); err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	svc := blackbaud.NewService(rt.cfg.Blackbaud, rt.client, rt.metrics, rt.logger)
	res, err := svc.CreateGift(context.Background(), req)
	return report(cmd, rt.logger, res, err)
}

// report prints the result as indented JSON, or logs the fault and returns it.
func report(cmd *cobra.Command, l *zap.Logger, res any, err error) error {
	if err != nil {
		l.Warn("Reconciliation failed", logger.FaultFields(err)...)
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
