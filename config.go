package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Delivery     DeliveryConfig     `yaml:"delivery"`
	Leads        LeadsConfig        `yaml:"leads"`
	WATI         WATIConfig         `yaml:"wati"`
	OutcomeLog   OutcomeLogConfig   `yaml:"outcome_log"`
	WorkingHours WorkingHoursConfig `yaml:"working_hours"`
	Counsellors  []Counsellor       `yaml:"counsellors"`
	Ledger       LedgerConfig       `yaml:"ledger"`
	Files        FilesConfig        `yaml:"files"`
	Browser      BrowserConfig      `yaml:"browser"`
	Retry        RetryConfig        `yaml:"retry"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type DeliveryConfig struct {
	Backend             string `yaml:"backend"` // "wati" or "browser"
	PerSendDelaySeconds int    `yaml:"per_send_delay_seconds"`
	TestMode            bool   `yaml:"test_mode"`
	TestNumber          string `yaml:"test_number"`
	DefaultRegion       string `yaml:"default_region"`
	SendMedia           bool   `yaml:"send_media"`
	MediaDir            string `yaml:"media_dir"`
}

type LeadsConfig struct {
	APIURL     string `yaml:"api_url"`
	APIToken   string `yaml:"api_token"`
	OwnerID    int    `yaml:"owner_id"`
	BatchLimit int    `yaml:"batch_limit"`
}

type WATIConfig struct {
	BaseURL          string `yaml:"base_url"`
	APIKey           string `yaml:"api_key"`
	TemplateName     string `yaml:"template_name"`
	BroadcastName    string `yaml:"broadcast_name"`
	PollAttempts     int    `yaml:"poll_attempts"`
	PollDelaySeconds int    `yaml:"poll_delay_seconds"`
}

type OutcomeLogConfig struct {
	URL string `yaml:"url"`
}

type WorkingHoursConfig struct {
	Start string `yaml:"start"` // "09:00"
	End   string `yaml:"end"`   // "18:00"
}

type LedgerConfig struct {
	Backend       string `yaml:"backend"` // "file" or "sqlite"
	QuotaPath     string `yaml:"quota_path"`
	SentPath      string `yaml:"sent_path"`
	SQLitePath    string `yaml:"sqlite_path"`
	RetentionDays int    `yaml:"retention_days"`
}

type FilesConfig struct {
	TemplatePath string `yaml:"template_path"`
	EnvPath      string `yaml:"env_path"`
}

type BrowserConfig struct {
	Headless           bool   `yaml:"headless"`
	UserDataDir        string `yaml:"user_data_dir"`
	ChromePath         string `yaml:"chrome_path"`
	QRTimeoutSeconds   int    `yaml:"qr_timeout_seconds"`
	PageLoadTimeout    int    `yaml:"page_load_timeout"`
	SendTimeoutSeconds int    `yaml:"send_timeout_seconds"`
}

type RetryConfig struct {
	MaxAttempts         int     `yaml:"max_attempts"`
	InitialDelaySeconds int     `yaml:"initial_delay_seconds"`
	MaxDelaySeconds     int     `yaml:"max_delay_seconds"`
	BackoffMultiplier   float64 `yaml:"backoff_multiplier"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	OutputFile string `yaml:"output_file"`
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Credentials and deployment toggles live in the environment, optionally
	// seeded from an env file (deployments keep them in config.env, next to
	// the YAML). Env values win over YAML.
	if config.Files.EnvPath != "" {
		if err := godotenv.Load(config.Files.EnvPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env file %s: %w", config.Files.EnvPath, err)
		}
	} else {
		_ = godotenv.Load("config.env")
	}
	config.applyEnvOverrides()

	config.fillDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WATI_API_KEY"); v != "" {
		c.WATI.APIKey = v
	}
	if v := os.Getenv("WATI_BASE_URL"); v != "" {
		c.WATI.BaseURL = v
	}
	if v := os.Getenv("WATI_TEMPLATE_NAME"); v != "" {
		c.WATI.TemplateName = v
	}
	if v := os.Getenv("WATI_LOG_API_URL"); v != "" {
		c.OutcomeLog.URL = v
	}
	if v := os.Getenv("LEAD_API_URL"); v != "" {
		c.Leads.APIURL = v
	}
	if v := os.Getenv("LEAD_API_TOKEN"); v != "" {
		c.Leads.APIToken = v
	}
	if v := os.Getenv("USE_TEST_NUMBER"); v != "" {
		c.Delivery.TestMode = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("TEST_MOBILE_NUMBER"); v != "" {
		c.Delivery.TestNumber = v
	}
}

func (c *Config) fillDefaults() {
	if c.Delivery.Backend == "" {
		c.Delivery.Backend = "wati"
	}
	if c.Delivery.PerSendDelaySeconds == 0 {
		c.Delivery.PerSendDelaySeconds = 2
	}
	if c.Delivery.DefaultRegion == "" {
		c.Delivery.DefaultRegion = "IN"
	}
	if c.Delivery.MediaDir == "" {
		c.Delivery.MediaDir = "media"
	}
	if c.Leads.BatchLimit <= 0 || c.Leads.BatchLimit > 500 {
		c.Leads.BatchLimit = 500
	}
	if c.WATI.BroadcastName == "" {
		c.WATI.BroadcastName = "lead_automation"
	}
	if c.WATI.PollDelaySeconds == 0 {
		c.WATI.PollDelaySeconds = 2
	}
	if c.WorkingHours.Start == "" {
		c.WorkingHours.Start = "09:00"
	}
	if c.WorkingHours.End == "" {
		c.WorkingHours.End = "18:00"
	}
	if c.Ledger.Backend == "" {
		c.Ledger.Backend = "file"
	}
	if c.Ledger.QuotaPath == "" {
		c.Ledger.QuotaPath = "quota_usage.json"
	}
	if c.Ledger.SentPath == "" {
		c.Ledger.SentPath = "sent_messages.json"
	}
	if c.Ledger.SQLitePath == "" {
		c.Ledger.SQLitePath = "ledgers.db"
	}
	if c.Ledger.RetentionDays == 0 {
		c.Ledger.RetentionDays = 7
	}
	if c.Files.TemplatePath == "" {
		c.Files.TemplatePath = "template.txt"
	}
	if c.Browser.UserDataDir == "" {
		c.Browser.UserDataDir = "./chrome-data"
	}
	if abs, err := filepath.Abs(c.Browser.UserDataDir); err == nil {
		c.Browser.UserDataDir = abs
	}
	if c.Browser.ChromePath == "" {
		c.Browser.ChromePath = findChromePath()
	}
	if c.Browser.QRTimeoutSeconds == 0 {
		c.Browser.QRTimeoutSeconds = 60
	}
	if c.Browser.PageLoadTimeout == 0 {
		c.Browser.PageLoadTimeout = 30
	}
	if c.Browser.SendTimeoutSeconds == 0 {
		c.Browser.SendTimeoutSeconds = 20
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.InitialDelaySeconds == 0 {
		c.Retry.InitialDelaySeconds = 1
	}
	if c.Retry.MaxDelaySeconds == 0 {
		c.Retry.MaxDelaySeconds = 8
	}
	if c.Retry.BackoffMultiplier == 0 {
		c.Retry.BackoffMultiplier = 2.0
	}
}

func (c *Config) validate() error {
	switch c.Delivery.Backend {
	case "wati", "browser":
	default:
		return fmt.Errorf("delivery.backend must be \"wati\" or \"browser\", got %q", c.Delivery.Backend)
	}
	switch c.Ledger.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("ledger.backend must be \"file\" or \"sqlite\", got %q", c.Ledger.Backend)
	}
	if c.Delivery.TestMode && c.Delivery.TestNumber == "" {
		return fmt.Errorf("delivery.test_mode is enabled but no test number is configured")
	}
	if len(c.Counsellors) == 0 {
		return fmt.Errorf("at least one counsellor must be configured")
	}
	for i, counsellor := range c.Counsellors {
		if counsellor.Name == "" || counsellor.Number == "" {
			return fmt.Errorf("counsellor %d is missing a name or number", i+1)
		}
		if counsellor.DailyLimit <= 0 {
			return fmt.Errorf("counsellor %s must have a positive daily_limit", counsellor.Name)
		}
	}
	if _, _, err := c.WorkingHours.minutes(); err != nil {
		return err
	}
	return nil
}

func (w WorkingHoursConfig) minutes() (int, int, error) {
	start, err := time.Parse("15:04", w.Start)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid working_hours.start %q: %w", w.Start, err)
	}
	end, err := time.Parse("15:04", w.End)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid working_hours.end %q: %w", w.End, err)
	}
	return start.Hour()*60 + start.Minute(), end.Hour()*60 + end.Minute(), nil
}

// Contains reports whether the wall-clock time of t falls inside the window,
// inclusive at both ends.
func (w WorkingHoursConfig) Contains(t time.Time) (bool, error) {
	startMinutes, endMinutes, err := w.minutes()
	if err != nil {
		return false, err
	}
	now := t.Hour()*60 + t.Minute()
	return now >= startMinutes && now <= endMinutes, nil
}

// findChromePath attempts to locate Chrome executable on the system
func findChromePath() string {
	if runtime.GOOS == "windows" {
		// Common Chrome installation paths on Windows
		paths := []string{
			"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
			"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe",
			os.Getenv("LOCALAPPDATA") + "\\Google\\Chrome\\Application\\chrome.exe",
		}

		for _, path := range paths {
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	// Return empty string to use chromedp defaults for other OS or if not found
	return ""
}
