package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Export   ExportConfig   `mapstructure:"export"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Image    ImageConfig    `mapstructure:"image"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	DSNString       string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return c.DSNString
	}
	return c.Path
}

// ExportConfig configures the S3-compatible bucket used as the export drive.
type ExportConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
}

// LLMConfig configures the OpenAI-compatible structured-generation endpoint.
type LLMConfig struct {
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// ImageConfig configures the Gemini-style image-generation endpoint.
type ImageConfig struct {
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// PipelineConfig holds the tuning knobs for the content pipeline. Sampling
// temperatures are configuration, not hidden constants: analysis favors some
// determinism (0.7), storyboarding favors variety (0.8), review favors
// consistency of judgment (0.3).
type PipelineConfig struct {
	TranscriptBudget      int     `mapstructure:"transcript_budget"`
	SegmentCount          int     `mapstructure:"segment_count"`
	PanelCount            int     `mapstructure:"panel_count"`
	GridPanel             int     `mapstructure:"grid_panel"`
	ArtStyle              string  `mapstructure:"art_style"`
	AnalysisTemperature   float64 `mapstructure:"analysis_temperature"`
	StoryboardTemperature float64 `mapstructure:"storyboard_temperature"`
	ReviewTemperature     float64 `mapstructure:"review_temperature"`
	SummaryTemperature    float64 `mapstructure:"summary_temperature"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.dsn", "DATABASE_DSN")
	v.BindEnv("export.endpoint", "EXPORT_ENDPOINT")
	v.BindEnv("export.access_key", "EXPORT_ACCESS_KEY")
	v.BindEnv("export.secret_key", "EXPORT_SECRET_KEY")
	v.BindEnv("export.bucket", "EXPORT_BUCKET")
	v.BindEnv("export.public_url", "EXPORT_PUBLIC_URL")
	v.BindEnv("llm.api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.base_url", "OPENAI_BASE_URL")
	v.BindEnv("llm.model", "LLM_MODEL")
	v.BindEnv("image.api_key", "GEMINI_API_KEY")
	v.BindEnv("image.base_url", "GEMINI_BASE_URL")
	v.BindEnv("image.model", "IMAGE_MODEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/jetski.db")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("export.enabled", false)
	v.SetDefault("export.endpoint", "localhost:9000")
	v.SetDefault("export.use_ssl", false)
	v.SetDefault("export.bucket", "jetski-comics")

	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("image.model", "gemini-2.5-flash-image")
	v.SetDefault("image.base_url", "https://generativelanguage.googleapis.com/v1beta")

	v.SetDefault("pipeline.transcript_budget", 12000)
	v.SetDefault("pipeline.segment_count", 3)
	v.SetDefault("pipeline.panel_count", 6)
	v.SetDefault("pipeline.grid_panel", 3)
	v.SetDefault("pipeline.art_style", "classic American comic book, 1960s-1980s Silver/Bronze Age")
	v.SetDefault("pipeline.analysis_temperature", 0.7)
	v.SetDefault("pipeline.storyboard_temperature", 0.8)
	v.SetDefault("pipeline.review_temperature", 0.3)
	v.SetDefault("pipeline.summary_temperature", 0.7)
}
