package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Sources
	SourcesDir string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing extra source definition files"`
	PriceMin   int    `long:"price-min" env:"PRICE_MIN" default:"400" description:"Minimum monthly rent"`
	PriceMax   int    `long:"price-max" env:"PRICE_MAX" default:"600" description:"Maximum monthly rent"`
	Query      string `long:"query" env:"SEARCH_QUERY" default:"Falkirk" description:"Search location"`
	Radius     string `long:"radius" env:"SEARCH_RADIUS" default:"0" description:"Search radius in miles"`
	Exclude    string `long:"exclude" env:"EXCLUDE_LOCATIONS" default:"Denny,Bo'ness" description:"Comma-separated locations to ignore"`

	// Ledger
	LedgerPath   string `long:"ledger" env:"LEDGER_PATH" default:"cache" description:"Path of the seen-listings ledger"`
	LedgerDriver string `long:"ledger-driver" env:"LEDGER_DRIVER" default:"file" choice:"file" choice:"sqlite" description:"Ledger storage backend"`

	// Fetching
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"Rent Comb/1.0" description:"User agent string for HTTP requests"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"HTTP request timeout in seconds"`
	Fixture      string `long:"fixture" env:"FIXTURE" default:"test.html" description:"Page served to every source in debug mode"`

	// Notifications
	SMTPServer     string `long:"smtp-server" env:"SMTP_SERVER" description:"SMTP server host"`
	SMTPPort       int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUsername   string `long:"smtp-username" env:"EMAIL_USERNAME" description:"SMTP username, also the sender address by default"`
	SMTPPassword   string `long:"smtp-password" env:"EMAIL_PASSWORD" description:"SMTP password"`
	SMTPFrom       string `long:"smtp-from" env:"EMAIL_FROM" description:"Sender address (defaults to the SMTP username)"`
	Recipient      string `long:"recipient" env:"RECIPIENT" description:"Notification recipient address"`
	NotifyInterval int    `long:"notify-interval" env:"NOTIFY_INTERVAL" default:"10" description:"Minimum seconds between notifications"`

	// Logging
	LogLevel  string `long:"log-level" env:"LOG_LEVEL" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Log level"`
	LogFormat string `long:"log-format" env:"LOG_FORMAT" default:"console" choice:"console" choice:"json" description:"Log encoding"`
	LogFile   string `long:"log-file" env:"LOG_FILE" description:"Also write logs to this file, rotated by size"`

	// Application metadata
	Timezone    string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/London)"`
	Debug       bool   `long:"debug" env:"DEBUG" description:"Read the fixture, log instead of sending email and never write the ledger"`
	ShowVersion bool   `long:"version" description:"Print the version and exit"`
}

// ErrVersion is returned by Load when --version was requested.
var ErrVersion = errors.New("version requested")

// Load reads an optional .env file, then parses args together with the
// environment. Any leftover positional argument switches on debug mode.
// A nil config with a nil error means help was shown.
func Load(args []string) (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.ShowVersion {
		return nil, ErrVersion
	}

	cfg := &Cfg{
		SourcesDir:     raw.SourcesDir,
		PriceMin:       raw.PriceMin,
		PriceMax:       raw.PriceMax,
		Query:          raw.Query,
		Radius:         raw.Radius,
		Exclude:        splitList(raw.Exclude),
		LedgerPath:     raw.LedgerPath,
		LedgerDriver:   raw.LedgerDriver,
		UserAgent:      raw.UserAgent,
		FetchTimeout:   time.Duration(raw.FetchTimeout) * time.Second,
		Fixture:        raw.Fixture,
		SMTPServer:     raw.SMTPServer,
		SMTPPort:       raw.SMTPPort,
		SMTPUsername:   raw.SMTPUsername,
		SMTPPassword:   raw.SMTPPassword,
		SMTPFrom:       raw.SMTPFrom,
		Recipient:      raw.Recipient,
		NotifyInterval: time.Duration(raw.NotifyInterval) * time.Second,
		LogLevel:       raw.LogLevel,
		LogFormat:      raw.LogFormat,
		LogFile:        raw.LogFile,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug || len(rest) > 0,
		Version:        GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

func (c *Cfg) validate() error {
	var errs []error

	if c.PriceMin > c.PriceMax {
		errs = append(errs, fmt.Errorf("price-min (%d) is greater than price-max (%d)", c.PriceMin, c.PriceMax))
	}
	if c.LedgerPath == "" {
		errs = append(errs, errors.New("ledger path is required"))
	}

	// Debug runs never send mail.
	if !c.Debug {
		if c.SMTPServer == "" {
			errs = append(errs, errors.New("SMTP_SERVER is required"))
		}
		if c.SMTPUsername == "" {
			errs = append(errs, errors.New("EMAIL_USERNAME is required"))
		}
		if c.SMTPPassword == "" {
			errs = append(errs, errors.New("EMAIL_PASSWORD is required"))
		}
		if c.Recipient == "" {
			errs = append(errs, errors.New("RECIPIENT is required"))
		}
	}

	return errors.Join(errs...)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
