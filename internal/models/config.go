package models

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	DefaultOutputFile = "customers.txt"

	FormatText    = "text"
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
	FormatConsole = "console"

	DestinationLocal = "local"
	DestinationS3    = "s3"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
	ObjectKey  string `mapstructure:"object_key"`
}

type Config struct {
	CustomerNum int   `mapstructure:"customer_num"`
	ClassNum    int   `mapstructure:"class_num"`
	MinArrival  int   `mapstructure:"min_arrival"`
	MaxArrival  int   `mapstructure:"max_arrival"`
	MinService  int   `mapstructure:"min_service"`
	MaxService  int   `mapstructure:"max_service"`
	Seed        int64 `mapstructure:"seed"`

	OutputFile        string             `mapstructure:"output_file"`
	OutputFormat      string             `mapstructure:"output_format"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	KafkaEnabled bool          `mapstructure:"kafka_enabled"`
	KafkaBrokers []string      `mapstructure:"kafka_broker_list"`
	KafkaTopic   string        `mapstructure:"kafka_topic"`
	KafkaTimeout time.Duration `mapstructure:"kafka_timeout"`

	PostgresURL string `mapstructure:"postgres_url"`

	Progress  bool   `mapstructure:"progress"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// SetDefaults registers the default value of every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("customer_num", 10)
	v.SetDefault("class_num", 2)
	v.SetDefault("min_arrival", 1)
	v.SetDefault("max_arrival", 10)
	v.SetDefault("min_service", 1)
	v.SetDefault("max_service", 10)
	v.SetDefault("seed", 0)

	v.SetDefault("output_file", DefaultOutputFile)
	v.SetDefault("output_format", FormatText)
	v.SetDefault("output_destination", DestinationLocal)
	v.SetDefault("cloud_storage.provider", "s3")
	v.SetDefault("cloud_storage.region", "us-east-1")
	v.SetDefault("cloud_storage.bucket_name", "")
	v.SetDefault("cloud_storage.object_key", DefaultOutputFile)

	v.SetDefault("kafka_enabled", false)
	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("kafka_topic", "customers")
	v.SetDefault("kafka_timeout", "30s")

	v.SetDefault("postgres_url", "")

	v.SetDefault("progress", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

// LoadConfig reads the configuration from v. Values already bound on v (flags)
// take precedence over CUSTGEN_* environment variables, which take precedence
// over the config file. A missing default config file is not an error, an
// explicit cfgFile that cannot be read is.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".custgen")
	}

	v.SetEnvPrefix("CUSTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// Validate rejects configurations whose ranges cannot be sampled.
func (cfg *Config) Validate() error {
	if cfg.CustomerNum < 0 {
		return fmt.Errorf("%w: customer_num must not be negative, got %d", ErrInvalidRange, cfg.CustomerNum)
	}
	if cfg.ClassNum <= 0 {
		return fmt.Errorf("%w: class_num must be positive, got %d", ErrInvalidRange, cfg.ClassNum)
	}
	if err := validateRange("arrival", cfg.MinArrival, cfg.MaxArrival); err != nil {
		return err
	}
	return validateRange("service", cfg.MinService, cfg.MaxService)
}

// validateRange rejects ranges that are out of order or too wide to sample:
// max-min must not overflow and max-min+1 must still fit in an int.
func validateRange(name string, min, max int) error {
	if min > max {
		return fmt.Errorf("%w: min_%s %d > max_%s %d", ErrInvalidRange, name, min, name, max)
	}
	if width := max - min; width < 0 || width == math.MaxInt {
		return fmt.Errorf("%w: %s range [%d, %d] is too wide", ErrInvalidRange, name, min, max)
	}
	return nil
}
