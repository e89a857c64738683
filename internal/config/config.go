package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config defines the application configuration structure
type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	Kite   KiteConfig   `mapstructure:"kite"`
	Report ReportConfig `mapstructure:"report"`
}

// DataConfig defines the symbol list and the date range of the pipeline
type DataConfig struct {
	Symbols     []string `mapstructure:"symbols"`
	SymbolFile  string   `mapstructure:"symbol_file"`
	Source      string   `mapstructure:"source"`
	From        string   `mapstructure:"from"`
	WindowStart string   `mapstructure:"window_start"`
	WindowEnd   string   `mapstructure:"window_end"`
}

// FetchConfig defines the download tuning knobs
type FetchConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	RequestDelay int    `mapstructure:"request_delay"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// KiteConfig defines the Kite Connect credentials and endpoints
type KiteConfig struct {
	ApiKey            string `mapstructure:"api_key"`
	AccessToken       string `mapstructure:"access_token"`
	InstrumentsNSEURL string `mapstructure:"instruments_nse_url"`
}

// ReportConfig defines where and how the table artifacts are rendered
type ReportConfig struct {
	OutputDir  string `mapstructure:"output_dir"`
	Title      string `mapstructure:"title"`
	SourceNote string `mapstructure:"source_note"`
	DateLayout string `mapstructure:"date_layout"`
	Currency   string `mapstructure:"currency"`
	Theme      string `mapstructure:"theme"`
	PageSize   int    `mapstructure:"page_size"`
}

// LoadConfig loads configuration from file and overrides with environment variables
func LoadConfig(path string) (Config, error) {
	// Set up Viper to first try to read from config file
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	// Set up environment variable prefixes
	viper.SetEnvPrefix("TABLES")

	// Set up mappings for nested config keys to env vars
	// Data mappings
	viper.BindEnv("data.symbols", "TABLES_SYMBOLS")
	viper.BindEnv("data.symbol_file", "TABLES_SYMBOL_FILE")
	viper.BindEnv("data.source", "TABLES_SOURCE")
	viper.BindEnv("data.from", "TABLES_FROM")
	viper.BindEnv("data.window_start", "TABLES_WINDOW_START")
	viper.BindEnv("data.window_end", "TABLES_WINDOW_END")

	// Fetch mappings
	viper.BindEnv("fetch.base_url", "TABLES_BASE_URL")
	viper.BindEnv("fetch.request_delay", "TABLES_REQUEST_DELAY")
	viper.BindEnv("fetch.max_retries", "TABLES_MAX_RETRIES")
	viper.BindEnv("fetch.timeout_secs", "TABLES_TIMEOUT_SECS")

	// Kite mappings
	viper.BindEnv("kite.api_key", "TABLES_KITE_API_KEY")
	viper.BindEnv("kite.access_token", "TABLES_KITE_ACCESS_TOKEN")
	viper.BindEnv("kite.instruments_nse_url", "TABLES_INSTRUMENTS_NSE_URL")

	// Report mappings
	viper.BindEnv("report.output_dir", "TABLES_OUTPUT_DIR")
	viper.BindEnv("report.title", "TABLES_TITLE")
	viper.BindEnv("report.source_note", "TABLES_SOURCE_NOTE")
	viper.BindEnv("report.date_layout", "TABLES_DATE_LAYOUT")
	viper.BindEnv("report.currency", "TABLES_CURRENCY")
	viper.BindEnv("report.theme", "TABLES_THEME")
	viper.BindEnv("report.page_size", "TABLES_PAGE_SIZE")

	// First attempt to read the config file
	var configFileFound bool
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Printf("Config file not found at %s, falling back to environment variables\n", path)
		} else {
			fmt.Printf("Error reading config file %s: %v, falling back to environment variables\n", path, err)
		}
	} else {
		configFileFound = true
		fmt.Printf("Loaded config from %s, will override with environment variables\n", viper.ConfigFileUsed())
	}

	// IMPORTANT: enable automatic environment variable binding AFTER reading
	// the config file so environment variables take precedence over it
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Apply default values for any settings not specified
	applyDefaults(&config)

	if configFileFound {
		fmt.Println("Configuration loaded from file and overridden with environment variables")
	} else {
		fmt.Println("Configuration loaded from environment variables with defaults applied")
	}

	return config, nil
}

// applyDefaults sets default values for any config values not set from file
// or environment. The default date range reproduces the reference report:
// four symbols fetched from 2021-01-01, windowed to the second week of
// January 2021.
func applyDefaults(config *Config) {
	// Data defaults
	if len(config.Data.Symbols) == 0 && config.Data.SymbolFile == "" {
		config.Data.Symbols = []string{"AMZN", "AAPL", "GOOG", "NFLX"}
	}
	if config.Data.Source == "" {
		config.Data.Source = "yahoo"
	}
	if config.Data.From == "" {
		config.Data.From = "2021-01-01"
	}
	if config.Data.WindowStart == "" {
		config.Data.WindowStart = "2021-01-11"
	}
	if config.Data.WindowEnd == "" {
		config.Data.WindowEnd = "2021-01-15"
	}

	// Fetch defaults
	if config.Fetch.RequestDelay == 0 {
		config.Fetch.RequestDelay = 500
	}
	if config.Fetch.MaxRetries == 0 {
		config.Fetch.MaxRetries = 3
	}
	if config.Fetch.TimeoutSecs == 0 {
		config.Fetch.TimeoutSecs = 30
	}

	// Report defaults
	if config.Report.OutputDir == "" {
		config.Report.OutputDir = "./output"
	}
	if config.Report.Theme == "" {
		config.Report.Theme = "light"
	}
	if config.Report.PageSize == 0 {
		config.Report.PageSize = 10
	}
}
