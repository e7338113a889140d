package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Interview InterviewConfig `mapstructure:"interview"`
	Session   SessionConfig   `mapstructure:"session"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	TokenTTLHrs int    `mapstructure:"token_ttl_hours"`
}

type InterviewConfig struct {
	// HardDelete switches deleteInterview between physical removal and a
	// soft transition to the deleted status. Both behaviors exist in the
	// wild; neither is clearly the intended one, so it is policy.
	HardDelete bool `mapstructure:"hard_delete"`
}

// SessionConfig holds the defaults merged with caller overrides when an
// AI session is created.
type SessionConfig struct {
	DefaultPersonality string `mapstructure:"default_personality"`
	DefaultStyle       string `mapstructure:"default_style"`
	DefaultDifficulty  string `mapstructure:"default_difficulty"`
	DefaultDurationMin int    `mapstructure:"default_duration_min"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "interviewx")

	v.SetDefault("auth.jwt_secret", "super-secret-key-change-me")
	v.SetDefault("auth.token_ttl_hours", 24)

	v.SetDefault("interview.hard_delete", false)

	v.SetDefault("session.default_personality", "professional")
	v.SetDefault("session.default_style", "structured")
	v.SetDefault("session.default_difficulty", "medium")
	v.SetDefault("session.default_duration_min", 30)
}

// Load reads config.yaml if present and binds INTERVIEWX_* environment
// variables over the defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("INTERVIEWX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName,
	)
}
