package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdamba/custgen/internal/generator"
	"github.com/chrisdamba/custgen/internal/logger"
	"github.com/chrisdamba/custgen/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the custgen command with its own viper instance.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "custgen",
		Short: "Generates customer records for queueing simulations",
		Long: `custgen samples customers with a class, an arrival time and a service time from
uniform ranges and writes them as "id:class,arrival_time,service_time" lines to
customers.txt, ready to be read by a queueing simulator.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("error loading .env: %w", err)
			}

			cfg, err := models.LoadConfig(v, cfgFile)
			if err != nil {
				return err
			}

			log := logger.New(logger.Config{Format: cfg.LogFormat, Level: cfg.LogLevel})
			if used := v.ConfigFileUsed(); used != "" {
				log.Info().Str("path", used).Msg("Using config file")
			}

			return generator.NewGenerator(cfg, generator.WithLogger(log)).Run(cmd.Context())
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &models.ArgumentError{Err: err}
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.custgen.yaml or $HOME/.custgen.yaml)")

	flags := rootCmd.Flags()
	flags.IntP("customer_num", "n", 10, "Number of customers to generate")
	flags.IntP("class_num", "c", 2, "Number of customer classes")
	flags.IntP("max_arrival", "A", 10, "Maximum arrival time in seconds")
	flags.IntP("min_arrival", "a", 1, "Minimum arrival time in seconds")
	flags.IntP("max_service", "S", 10, "Maximum service time in seconds")
	flags.IntP("min_service", "s", 1, "Minimum service time in seconds")
	flags.Int64("seed", 0, "Random seed, 0 seeds from the clock")

	flags.StringP("output_file", "o", models.DefaultOutputFile, "Output file path")
	flags.String("output_format", models.FormatText, "Output format: text, csv, json, parquet or console")
	flags.String("output_destination", models.DestinationLocal, "Output destination: local or s3")
	flags.String("s3_bucket", "", "S3 bucket for the s3 destination")
	flags.String("s3_region", "us-east-1", "S3 region")
	flags.String("s3_key", models.DefaultOutputFile, "S3 object key, prefixed with the run id")
	flags.Bool("kafka_enabled", false, "Publish customers to Kafka instead of a file")
	flags.String("kafka_broker_list", "localhost:9092", "Comma separated Kafka broker list")
	flags.String("kafka_topic", "customers", "Kafka topic")
	flags.String("postgres_url", "", "PostgreSQL connection string, copies customers into the customers table")

	flags.Bool("progress", false, "Show a progress bar while writing")
	flags.String("log_level", "info", "Log level: trace, debug, info, warn or error")
	flags.String("log_format", "console", "Log format: console or json")

	cobra.CheckErr(v.BindPFlags(flags))
	cobra.CheckErr(v.BindPFlag("cloud_storage.bucket_name", flags.Lookup("s3_bucket")))
	cobra.CheckErr(v.BindPFlag("cloud_storage.region", flags.Lookup("s3_region")))
	cobra.CheckErr(v.BindPFlag("cloud_storage.object_key", flags.Lookup("s3_key")))

	return rootCmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
