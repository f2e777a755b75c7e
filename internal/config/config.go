package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Coach    CoachConfig    `mapstructure:"coach"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration.
// Expiration is parsed from a duration string ("60m", "24h").
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// OpenAIConfig configures the LLM program generator. An empty APIKey
// disables the endpoint; the template generator keeps working without it.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// CoachConfig exposes the progression policy knobs. The defaults match the
// standard 4-week cycle; override them only for experimentation.
type CoachConfig struct {
	CycleWeeks          int     `mapstructure:"cycle_weeks"`
	PlateauWindow       int     `mapstructure:"plateau_window"`
	DeloadSetFloor      int     `mapstructure:"deload_set_floor"`
	DeloadLoadFactor    float64 `mapstructure:"deload_load_factor"`
	StrengthResetFactor float64 `mapstructure:"strength_reset_factor"`
	RepFailureDropKg    float64 `mapstructure:"rep_failure_drop_kg"`
	DefaultRepMin       int     `mapstructure:"default_rep_min"`
	DefaultRepMax       int     `mapstructure:"default_rep_max"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Nested keys map to env vars with underscores, e.g.
	// server.address -> SERVER_ADDRESS, openai.api_key -> OPENAI_API_KEY.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "coach_app")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("openai.model", "gpt-4o-mini")

	viper.SetDefault("coach.cycle_weeks", 4)
	viper.SetDefault("coach.plateau_window", 3)
	viper.SetDefault("coach.deload_set_floor", 2)
	viper.SetDefault("coach.deload_load_factor", 0.9)
	viper.SetDefault("coach.strength_reset_factor", 0.95)
	viper.SetDefault("coach.rep_failure_drop_kg", 2.5)
	viper.SetDefault("coach.default_rep_min", 8)
	viper.SetDefault("coach.default_rep_max", 12)

	err = viper.ReadInConfig()
	// A missing config file is fine, env vars and defaults cover everything.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
