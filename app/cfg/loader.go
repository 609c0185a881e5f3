package cfg

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// FreshRSS (Google Reader API) configuration
	BaseURL     string `long:"base-url" env:"FRESHRSS_BASE_URL" description:"FreshRSS base URL (e.g., https://rss.example.com)"`
	Username    string `long:"username" env:"FRESHRSS_USERNAME" description:"FreshRSS username"`
	APIPassword string `long:"api-password" env:"FRESHRSS_API_PASSWORD" description:"FreshRSS API password"`
	Label       string `long:"label" env:"FRESHRSS_LABEL" description:"Only process records carrying this FreshRSS label"`

	// Digest configuration
	Hours            float64 `long:"hours" env:"LOOKBACK_HOURS" default:"24" description:"Lookback window in hours"`
	MaxItems         int     `long:"max-items" env:"MAX_ITEMS" default:"1000" description:"Maximum number of records to fetch"`
	Timezone         string  `long:"timezone" env:"TIMEZONE" default:"Europe/London" description:"Timezone for report timestamps"`
	BlocklistPhrases string  `long:"blocklist" env:"BLOCKLIST_PHRASES" description:"Comma-separated title phrases to reject"`

	// Delivery configuration
	FromEmail    string `long:"from" env:"FROM_EMAIL" description:"Sender address for the digest email"`
	ToEmails     string `long:"to" env:"TO_EMAILS" description:"Comma-separated recipient addresses"`
	SMTPHost     string `long:"smtp-host" env:"SMTP_HOST" description:"SMTP server host"`
	SMTPPort     int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUsername string `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP username (optional)"`
	SMTPPassword string `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password (optional)"`
	SMTPUseTLS   string `long:"smtp-use-tls" env:"SMTP_USE_TLS" default:"true" description:"Use STARTTLS when sending (true/false)"`

	// Run modes
	DryRun         bool   `long:"dry-run" description:"Print the email HTML instead of sending"`
	OPMLPath       string `long:"opml" value-name:"PATH" description:"Write the matched coverage to an OPML file"`
	FeedsDir       string `long:"feeds-dir" env:"FEEDS_DIR" description:"Directory with direct RSS/Atom source configuration files"`
	ArchiveDB      string `long:"archive-db" env:"ARCHIVE_DB" value-name:"PATH" description:"SQLite file to archive the digest run to"`
	Serve          bool   `long:"serve" description:"Serve the rendered digest over HTTP instead of sending it"`
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP port for --serve"`
	ExtractContent bool   `long:"extract-content" description:"Fetch matched articles and include a readable excerpt"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"PressWatch/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		BaseURL:          strings.TrimRight(raw.BaseURL, "/"),
		Username:         raw.Username,
		APIPassword:      raw.APIPassword,
		Label:            raw.Label,
		LookbackHours:    raw.Hours,
		MaxItems:         raw.MaxItems,
		Timezone:         raw.Timezone,
		BlocklistPhrases: raw.BlocklistPhrases,
		FromEmail:        raw.FromEmail,
		ToEmails:         splitList(raw.ToEmails),
		SMTPHost:         raw.SMTPHost,
		SMTPPort:         raw.SMTPPort,
		SMTPUsername:     raw.SMTPUsername,
		SMTPPassword:     raw.SMTPPassword,
		SMTPUseTLS:       parseBool(raw.SMTPUseTLS, true),
		DryRun:           raw.DryRun,
		OPMLPath:         raw.OPMLPath,
		FeedsDir:         raw.FeedsDir,
		ArchiveDB:        raw.ArchiveDB,
		Serve:            raw.Serve,
		Port:             raw.Port,
		ExtractContent:   raw.ExtractContent,
		UserAgent:        raw.UserAgent,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// HasReader reports whether the FreshRSS reading list is configured as a source.
func (c *Cfg) HasReader() bool {
	return c.BaseURL != ""
}

func (c *Cfg) validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc

	if c.LookbackHours <= 0 {
		return fmt.Errorf("lookback hours must be positive, got %g", c.LookbackHours)
	}
	if c.MaxItems <= 0 {
		return fmt.Errorf("max items must be positive, got %d", c.MaxItems)
	}

	if !c.HasReader() && c.FeedsDir == "" {
		return fmt.Errorf("no sources configured: set FRESHRSS_BASE_URL or --feeds-dir")
	}
	if c.HasReader() {
		if c.Username == "" {
			return fmt.Errorf("FRESHRSS_USERNAME is required when FRESHRSS_BASE_URL is set")
		}
		if c.APIPassword == "" {
			return fmt.Errorf("FRESHRSS_API_PASSWORD is required when FRESHRSS_BASE_URL is set")
		}
	}

	// Delivery settings are only needed when the digest is actually sent.
	if !c.DryRun && !c.Serve {
		if c.FromEmail == "" {
			return fmt.Errorf("FROM_EMAIL is required")
		}
		if len(c.ToEmails) == 0 {
			return fmt.Errorf("TO_EMAILS must contain at least one address")
		}
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required")
		}
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
