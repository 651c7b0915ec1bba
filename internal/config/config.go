package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSubject is the subject line the reservation form sends with.
// The scan only ever considers messages matching it.
const DefaultSubject = "[aljonuschka] Reservierungsanfragen - neue Einreichung"

// IMAPConfig holds the mailbox endpoint and credentials.
type IMAPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

// DBConfig holds the storage driver name and connection string.
type DBConfig struct {
	Driver string
	DSN    string
}

// IngestConfig holds the scan parameters.
type IngestConfig struct {
	// Subject is the literal subject filter for candidate messages.
	Subject string

	// Interval is the wait between full mailbox scans.
	Interval time.Duration

	// CountryCode is prepended to phone numbers without a + prefix.
	CountryCode string
}

// Config is the complete process configuration. It is constructed once
// at startup from the environment and passed by reference; nothing
// reads the environment after Load returns.
type Config struct {
	IMAP   IMAPConfig
	DB     DBConfig
	Ingest IngestConfig
}

// Load reads configuration from the environment. Required variables
// are IMAP_SERVER, EMAIL, EMAIL_PASSWORD, and DATABASE_URL; everything
// else has a default.
func Load() (*Config, error) {
	return load(true)
}

// LoadMailbox is Load without the storage requirement, for tooling
// that only talks to the mailbox.
func LoadMailbox() (*Config, error) {
	return load(false)
}

func load(needDB bool) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("IMAP_PORT", "993")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("SUBJECT_FILTER", DefaultSubject)
	v.SetDefault("FETCH_INTERVAL_MIN", 15)
	v.SetDefault("DEFAULT_COUNTRY_CODE", "+49")

	cfg := &Config{
		IMAP: IMAPConfig{
			Host:     v.GetString("IMAP_SERVER"),
			Port:     v.GetString("IMAP_PORT"),
			Username: v.GetString("EMAIL"),
			Password: v.GetString("EMAIL_PASSWORD"),
		},
		DB: DBConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DATABASE_URL"),
		},
		Ingest: IngestConfig{
			Subject:     v.GetString("SUBJECT_FILTER"),
			Interval:    time.Duration(v.GetInt("FETCH_INTERVAL_MIN")) * time.Minute,
			CountryCode: v.GetString("DEFAULT_COUNTRY_CODE"),
		},
	}

	var missing []string
	if cfg.IMAP.Host == "" {
		missing = append(missing, "IMAP_SERVER")
	}
	if cfg.IMAP.Username == "" {
		missing = append(missing, "EMAIL")
	}
	if cfg.IMAP.Password == "" {
		missing = append(missing, "EMAIL_PASSWORD")
	}
	if needDB && cfg.DB.DSN == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
