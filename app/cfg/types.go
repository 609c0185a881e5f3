package cfg

import "time"

type Cfg struct {
	// FreshRSS (Google Reader API) configuration
	BaseURL     string
	Username    string
	APIPassword string
	Label       string

	// Digest configuration
	LookbackHours    float64
	MaxItems         int
	Timezone         string
	Location         *time.Location
	BlocklistPhrases string

	// Delivery configuration
	FromEmail    string
	ToEmails     []string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool

	// Run modes
	DryRun         bool
	OPMLPath       string
	FeedsDir       string
	ArchiveDB      string
	Serve          bool
	Port           string
	ExtractContent bool

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
