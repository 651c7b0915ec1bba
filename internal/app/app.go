package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reservationd",
	Short: "Reservation email ingestion daemon",
	Long: "Ingests reservation-request emails from the configured IMAP mailbox, " +
		"extracts the booking fields, and persists each request exactly once.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
