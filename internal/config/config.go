package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Redis     *RedisConfig     `mapstructure:"redis"`
	SMTP      *SMTPConfig      `mapstructure:"smtp"`
	Stripe    *StripeConfig    `mapstructure:"stripe"`
	Storage   *StorageConfig   `mapstructure:"storage"`
	Reactions *ReactionsConfig `mapstructure:"reactions"`
	Donations *DonationsConfig `mapstructure:"donations"`
	Admin     *AdminConfig     `mapstructure:"admin"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	PublicSiteURL      string        `mapstructure:"public_site_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
	VoterTokenTTL      time.Duration `mapstructure:"voter_token_ttl"`
	LogLevel           string        `mapstructure:"log_level"`
	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the socket address is the client address.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
	// Path is the database file when Driver is sqlite.
	Path          string `mapstructure:"path"`
	ConnectTries  uint64 `mapstructure:"connect_tries"`
	AutoMigrate   bool   `mapstructure:"auto_migrate"`
	LogStatements bool   `mapstructure:"log_statements"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CountTTL time.Duration `mapstructure:"count_ttl"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	Domain   string `mapstructure:"domain"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type StorageConfig struct {
	Dir            string `mapstructure:"dir"`
	PublicURL      string `mapstructure:"public_url"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
	ThumbnailWidth uint   `mapstructure:"thumbnail_width"`

	// width*height limit for images decoded into thumbnails
	MaxThumbnailPixels int64 `mapstructure:"max_thumbnail_pixels"`
}

type ReactionsConfig struct {
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type DonationsConfig struct {
	Goal     float64 `mapstructure:"goal"`
	Currency string  `mapstructure:"currency"`
	PageURL  string  `mapstructure:"page_url"`
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.jwt_ttl", 12*time.Hour)
	v.SetDefault("api.voter_token_ttl", 365*24*time.Hour)
	v.SetDefault("api.log_level", "info")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.driver", "postgres")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "Europe/Paris")
	v.SetDefault("postgres.connect_tries", 5)
	v.SetDefault("postgres.auto_migrate", true)
	v.SetDefault("redis.count_ttl", 5*time.Minute)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("storage.dir", "./uploads")
	v.SetDefault("storage.public_url", "http://localhost:8080/api/v1/uploads")
	v.SetDefault("storage.max_upload_bytes", 22<<20)
	v.SetDefault("storage.thumbnail_width", 480)
	v.SetDefault("storage.max_thumbnail_pixels", 40_000_000)
	v.SetDefault("reactions.cleanup_interval", time.Hour)
	v.SetDefault("donations.currency", "EUR")
	v.SetDefault("donations.goal", 0)
	v.SetDefault("donations.page_url", "http://localhost:3000/dons")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.name", "Administrateur")
}

// Load reads the yaml file at path; CLUB_* environment variables override it
// (CLUB_POSTGRES_HOST overrides postgres.host).
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("club")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Watch calls onChange with the reloaded config every time the file changes.
func Watch(path string, onChange func(*AppConfig, fsnotify.Event)) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix("club")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		conf := &AppConfig{}
		if err := v.Unmarshal(conf); err != nil {
			return
		}
		onChange(conf, e)
	})
	v.WatchConfig()
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return fmt.Errorf("api.jwt_signing_key is required")
	}
	if c.Postgres == nil {
		return fmt.Errorf("postgres section is required")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("storage.max_upload_bytes must be positive")
	}
	for _, proxy := range c.API.TrustedProxies {
		if _, _, err := net.ParseCIDR(proxy); err != nil && net.ParseIP(proxy) == nil {
			return fmt.Errorf("api.trusted_proxies: %q is neither an IP nor a CIDR", proxy)
		}
	}

	return nil
}
