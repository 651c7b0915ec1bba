package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aljonuschka/reservation-ingest/internal/config"
	"github.com/aljonuschka/reservation-ingest/internal/mailbox"
	"github.com/aljonuschka/reservation-ingest/internal/model"
	"github.com/aljonuschka/reservation-ingest/internal/parse"
	"github.com/aljonuschka/reservation-ingest/pkg/logger"
)

var previewLimit int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Fetch and parse reservations without persisting",
	Long: "Scans the mailbox like the daemon would, but prints the parsed " +
		"reservations as JSON instead of inserting them. Ignores the cursor " +
		"and needs no database; useful for checking credentials and form " +
		"parsing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadMailbox()
		if err != nil {
			return err
		}

		ctx := context.Background()
		client := mailbox.NewClient(cfg.IMAP.Host, cfg.IMAP.Port, cfg.IMAP.Username, cfg.IMAP.Password)
		builder := parse.NewBuilder(parse.SchemaV1, cfg.Ingest.CountryCode)

		sess, err := client.Dial(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		uids, err := sess.SearchSubject(ctx, cfg.Ingest.Subject)
		if err != nil {
			return err
		}
		if previewLimit > 0 && len(uids) > previewLimit {
			uids = uids[:previewLimit]
		}

		reservations := make([]model.Reservation, 0, len(uids))
		for _, uid := range uids {
			msg, err := sess.Fetch(ctx, uid)
			if err != nil {
				logger.Error("fetching message", "uid", uid, "error", err)
				continue
			}

			r, err := builder.Build(msg.Body)
			if err != nil {
				logger.Warn("skipping unparsable message", "uid", uid, "error", err)
				continue
			}
			r.ExternalID = uid
			r.ReceivedAt = msg.Date

			reservations = append(reservations, r)
		}

		out, err := json.MarshalIndent(reservations, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding reservations: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))

		logger.Info("preview complete", "candidates", len(uids), "parsed", len(reservations))
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewLimit, "limit", 50, "maximum number of messages to fetch (0 = all)")
}
