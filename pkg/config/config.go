package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Extract    ExtractConfig
	Security   SecurityConfig
	Validation ValidationConfig
	RateLimit  RateLimitConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

// StoreConfig holds the connection parameters for the traffic_logs store.
// Driver is "pgx" for PostgreSQL or "sqlite3" for a local file, in which
// case Database is the file path. Catalog queries need "pgx"; a sqlite3
// store only serves the overview.
type StoreConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type ExtractConfig struct {
	Path string
}

type SecurityConfig struct {
	AllowedOrigins []string
	Development    bool
}

type ValidationConfig struct {
	MaxLookupLength int
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

// Load reads configuration from configPath when given, otherwise from a
// config.yaml found on the search path. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/securecheck")
	}

	v.SetEnvPrefix("SECURECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("server.bodyLimit", 1048576)

	v.SetDefault("store.driver", "pgx")
	v.SetDefault("store.host", "localhost")
	v.SetDefault("store.port", 5432)
	v.SetDefault("store.user", "postgres")
	v.SetDefault("store.password", "")
	v.SetDefault("store.database", "postgres")
	v.SetDefault("store.sslMode", "disable")

	v.SetDefault("extract.path", "traffic_stops_cleaned data.xlsx")

	v.SetDefault("security.allowedOrigins", []string{})
	v.SetDefault("security.development", false)

	v.SetDefault("validation.maxLookupLength", 64)

	v.SetDefault("rateLimit.requestsPerMinute", 120)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputPath", "stdout")
}

// DSN returns the data source name for the configured driver.
func (s StoreConfig) DSN() string {
	if s.Driver == "sqlite3" {
		return s.Database
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(s.Host, strconv.Itoa(s.Port)),
		Path:   "/" + s.Database,
	}
	if s.Password != "" {
		u.User = url.UserPassword(s.User, s.Password)
	} else if s.User != "" {
		u.User = url.User(s.User)
	}
	if s.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{s.SSLMode}}.Encode()
	}
	return u.String()
}

// Address is the listen address for the HTTP server.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
