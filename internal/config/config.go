package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Asset cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendS3     = "s3"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	S3         S3Config         `mapstructure:"s3"`
	AssetCache AssetCacheConfig `mapstructure:"asset_cache"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig selects where routines and logs are kept.
type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DatabaseConfig is the MongoDB connection (storage.driver = mongo).
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// PostgresConfig is the PostgreSQL connection (storage.driver = postgres).
type PostgresConfig struct {
	Address  string `mapstructure:"address"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// AssetCacheConfig drives the offline asset cache in front of the web app.
type AssetCacheConfig struct {
	Version  string   `mapstructure:"version"`  // Cache name is "gym-buddy-<version>"
	Origin   string   `mapstructure:"origin"`   // Base URL the assets are fetched from
	Backend  string   `mapstructure:"backend"`  // memory or s3
	Prefix   string   `mapstructure:"prefix"`   // Object key prefix when backend = s3
	Manifest []string `mapstructure:"manifest"` // Paths cached on install
}

// LoadConfig reads configuration from file or environment variables.
// A .env file next to the config file is loaded into the environment first.
func LoadConfig(path string) (config Config, err error) {
	if err = loadDotEnv(path); err != nil {
		return
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	// Nested keys map with underscores, e.g. storage.driver -> STORAGE_DRIVER
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// --- Defaults ---
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "gymbuddy.db")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gym_buddy")
	v.SetDefault("postgres.address", "localhost:5432")
	v.SetDefault("postgres.db", "gym_buddy")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("asset_cache.version", "v1")
	v.SetDefault("asset_cache.backend", CacheBackendMemory)
	v.SetDefault("asset_cache.prefix", "asset-cache")
	v.SetDefault("asset_cache.manifest", []string{"/", "/index.html", "/manifest.json", "/logo192.png", "/logo512.png"})

	// --- Read Config File ---
	// A missing file is fine: defaults and env vars still apply.
	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	// Durations like "10s" are decoded straight into time.Duration fields.
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	config.Storage.Driver = strings.ToLower(config.Storage.Driver)
	config.AssetCache.Backend = strings.ToLower(config.AssetCache.Backend)
	return config, nil
}

func loadDotEnv(path string) error {
	envFile := filepath.Join(path, ".env")
	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	// Existing environment variables win over the file.
	return godotenv.Load(envFile)
}
