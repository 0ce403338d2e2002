package config

import (
	"reflect"
	"strings"

	"delivery-reconciler/core/archive"
	"delivery-reconciler/core/database"
	"delivery-reconciler/core/ledger"
	"delivery-reconciler/core/logger"
	"delivery-reconciler/core/server"
	"delivery-reconciler/core/verify"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Ledger holds configuration for the external ledger service.
	Ledger ledger.Config `mapstructure:"ledger"`
	// Cache holds configuration for the verification cache.
	Cache verify.Config `mapstructure:"cache"`
	// Archive holds configuration for report archiving.
	Archive archive.Config `mapstructure:"archive"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. LEDGER_BASE_URL -> ledger.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values
// in Viper based on the 'default' and 'mapstructure' tags.
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

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
