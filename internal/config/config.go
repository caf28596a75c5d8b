package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Database *DatabaseConfig `mapstructure:"database"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	SQLite   *SQLiteConfig   `mapstructure:"sqlite"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Team     *TeamConfig     `mapstructure:"team"`
	Admin    *AdminConfig    `mapstructure:"admin"`
	Log      *LogConfig      `mapstructure:"log"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	SessionTTL         time.Duration `mapstructure:"session_ttl"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" or "sqlite"
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SQLiteConfig struct {
	Filename string `mapstructure:"filename"`
}

type StorageConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	UsePathStyle  bool   `mapstructure:"use_path_style"`
}

type TeamConfig struct {
	TokenMaxAttempts int `mapstructure:"token_max_attempts"`
}

type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var (
	errMissingSigningKey = errors.New("api.jwt_signing_key is required")
	errUnknownDriver     = errors.New("database.driver must be postgres or sqlite")
)

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DB, c.Port, c.SSLMode)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.session_ttl", 8*time.Hour)
	v.SetDefault("api.request_timeout", 15*time.Second)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("sqlite.filename", "data/volley.db")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("team.token_max_attempts", 10)
	v.SetDefault("log.level", "info")
}

// Load reads the yml file at path, overlays VOLLEY_* environment variables
// and keeps watching the file. onChange, when non-nil, receives the reloaded
// configuration after every write to the file.
func Load(path string, onChange ...func(*AppConfig)) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("VOLLEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}

	if len(onChange) > 0 {
		v.OnConfigChange(func(e fsnotify.Event) {
			if !e.Has(fsnotify.Write) {
				return
			}
			reloaded, err := decode(v)
			if err != nil {
				return
			}
			for _, fn := range onChange {
				fn(reloaded)
			}
		})
		v.WatchConfig()
	}

	return conf, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return errMissingSigningKey
	}
	if c.Database == nil {
		c.Database = &DatabaseConfig{Driver: "postgres"}
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return errUnknownDriver
	}
	if c.Team == nil {
		c.Team = &TeamConfig{}
	}
	if c.Team.TokenMaxAttempts <= 0 {
		c.Team.TokenMaxAttempts = 10
	}
	if c.Gin == nil {
		c.Gin = &GinConfig{Mode: "debug"}
	}
	if c.Log == nil {
		c.Log = &LogConfig{Level: "info"}
	}
	if c.Storage == nil {
		c.Storage = &StorageConfig{}
	}
	if c.Admin == nil {
		c.Admin = &AdminConfig{}
	}
	return nil
}
