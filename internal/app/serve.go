package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aljonuschka/reservation-ingest/internal/config"
	"github.com/aljonuschka/reservation-ingest/internal/ingest"
	"github.com/aljonuschka/reservation-ingest/internal/mailbox"
	"github.com/aljonuschka/reservation-ingest/internal/parse"
	"github.com/aljonuschka/reservation-ingest/internal/store"
	"github.com/aljonuschka/reservation-ingest/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ingestion daemon",
	Long: "Performs one full mailbox scan immediately and then one per " +
		"configured interval, persisting new reservation requests until " +
		"interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.DB.Driver, cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()

		client := mailbox.NewClient(cfg.IMAP.Host, cfg.IMAP.Port, cfg.IMAP.Username, cfg.IMAP.Password)
		builder := parse.NewBuilder(parse.SchemaV1, cfg.Ingest.CountryCode)

		dialer := ingest.DialerFunc(func(ctx context.Context) (ingest.Session, error) {
			return client.Dial(ctx)
		})
		ingestor := ingest.New(dialer, st, builder, cfg.Ingest.Subject)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("reservation ingestion daemon started",
			"mailbox", cfg.IMAP.Username,
			"interval", cfg.Ingest.Interval.String(),
		)

		ingest.NewPoller(ingestor, cfg.Ingest.Interval).Run(ctx)

		logger.Info("shutting down")
		return nil
	},
}
