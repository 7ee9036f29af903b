package cfg

import "time"

type Cfg struct {
	// Sources
	SourcesDir string
	PriceMin   int
	PriceMax   int
	Query      string
	Radius     string
	Exclude    []string

	// Ledger
	LedgerPath   string
	LedgerDriver string

	// Fetching
	UserAgent    string
	FetchTimeout time.Duration
	Fixture      string

	// Notifications
	SMTPServer     string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPFrom       string
	Recipient      string
	NotifyInterval time.Duration

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
