package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Restaurant   RestaurantConfig
	Conversation ConversationConfig
	Menu         MenuConfig

	OpenAI   OpenAIConfig
	Twilio   TwilioConfig
	Postgres PostgresConfig
	Webhook  WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RestaurantConfig struct {
	Name    string
	TaxRate float64
}

type ConversationConfig struct {
	MaxTurns    int
	MaxFailures int
}

type MenuConfig struct {
	File string // optional YAML menu file; built-in defaults when empty
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type TwilioConfig struct {
	AuthToken          string
	ValidateSignatures bool
}

type PostgresConfig struct {
	DSN string
}

type WebhookConfig struct {
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
// CONFIG_PATH overrides the search with an explicit file.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/app/")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Restaurant.Name = viper.GetString("restaurant.name")
	cfg.Restaurant.TaxRate = viper.GetFloat64("restaurant.tax_rate")

	cfg.Conversation.MaxTurns = viper.GetInt("conversation.max_turns")
	cfg.Conversation.MaxFailures = viper.GetInt("conversation.max_failures")

	cfg.Menu.File = viper.GetString("menu.file")

	cfg.OpenAI.APIKey = viper.GetString("openai.api_key")
	cfg.OpenAI.BaseURL = viper.GetString("openai.base_url")
	cfg.OpenAI.Model = viper.GetString("openai.model")
	if key := viper.GetString("openai_api_key"); key != "" {
		cfg.OpenAI.APIKey = key
	}

	cfg.Twilio.AuthToken = viper.GetString("twilio.auth_token")
	cfg.Twilio.ValidateSignatures = viper.GetBool("twilio.validate_signatures")
	if token := viper.GetString("twilio_auth_token"); token != "" {
		cfg.Twilio.AuthToken = token
	}

	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	if cfg.Restaurant.TaxRate < 0 || cfg.Restaurant.TaxRate >= 1 {
		return nil, fmt.Errorf("restaurant.tax_rate must be in [0, 1), got %v", cfg.Restaurant.TaxRate)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("restaurant.name", "Restaurant")
	viper.SetDefault("restaurant.tax_rate", 0.0925)
	viper.SetDefault("conversation.max_turns", 20)
	viper.SetDefault("conversation.max_failures", 3)
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("twilio.validate_signatures", true)
	viper.SetDefault("webhook.rate_limit_per_min", 60)
}
