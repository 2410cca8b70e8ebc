package config

import (
	"reflect"
	"strings"

	"card-ledger/core/database"
	"card-ledger/core/logger"
	"card-ledger/core/server"
	"card-ledger/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the snapshot HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for snapshot uploads (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the ledger database connection.
	Database database.Config `mapstructure:"database"`
	// Crawler holds the dataset selector and crawl targets.
	Crawler Crawler `mapstructure:"crawler"`
	// Sync holds the inventory staging settings.
	Sync Sync `mapstructure:"sync"`
	// Ledger holds the REST ledger endpoint used by the rest sync backend.
	Ledger Ledger `mapstructure:"ledger"`
}

// legacyEnv maps keys to environment variables kept from the older scripts.
// The canonical variable always wins when both are set.
var legacyEnv = map[string]string{
	"crawler.expansions": "HOCG_EXPANSIONS",
	"database.url":       "SUPABASE_DB_URL",
	"ledger.url":         "SUPABASE_URL",
	"ledger.api_key":     "SUPABASE_KEY",
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. CRAWLER_EXPANSIONS -> crawler.expansions)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		canonical := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, canonical, legacy); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
