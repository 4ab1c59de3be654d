package cmd

import (
	"fmt"
	"os"

	"destination-sync/core/logger"

	"github.com/spf13/cobra"
)

// RootCmd is the destination-sync command.
var RootCmd = &cobra.Command{
	Use:   "destination-sync",
	Short: "Deliver events and records to HubSpot and Raiser's Edge NXT",
	Long: `Destination Sync reconciles remote state before every write:
HubSpot custom event definitions are created or extended to fit each event,
and Raiser's Edge NXT constituents are matched, created or updated along with
their addresses, emails, phones and online presences.

Run "start" for the HTTP service or "reconcile" for a one-shot delivery.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// Console output with readable timestamps for operators
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l.Error("command failed", logger.FaultFields(err)...)
	_ = l.Sync()
	os.Exit(1)
}
