package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server     Server     `mapstructure:"server"`
	Database   Database   `mapstructure:"database"`
	Logger     Logger     `mapstructure:"logger"`
	TradeStore TradeStore `mapstructure:"tradestore"`
	Withdrawal Withdrawal `mapstructure:"withdrawal"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TradeStore holds the configuration for the remote trade store API.
type TradeStore struct {
	BaseURL        string  `mapstructure:"base_url"`
	ApiKey         string  `mapstructure:"api_key"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	SyncInterval   int     `mapstructure:"sync_interval"` // seconds
}

// Withdrawal holds the default withdrawal simulation policy.
type Withdrawal struct {
	StartingBalance  float64 `mapstructure:"starting_balance"`
	WithdrawalPct    float64 `mapstructure:"withdrawal_pct"`
	OnlyIfProfitable bool    `mapstructure:"only_if_profitable"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("tradestore.rate_limit", 10)      // requests per second
	viper.SetDefault("tradestore.rate_limit_burst", 5) // burst size
	viper.SetDefault("tradestore.sync_interval", 300)
	viper.SetDefault("withdrawal.starting_balance", 100000)
	viper.SetDefault("withdrawal.withdrawal_pct", 0.3)
	viper.SetDefault("withdrawal.only_if_profitable", true)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
