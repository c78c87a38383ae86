package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/convset/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "convset",
	Short: "Convset - build reasoning conversation datasets from agent memory records",
	Long: `Convset converts heterogeneous agent records (chain-of-thought traces,
semantic, episodic and procedural memories, realtime, strategy and deep
reflections) into ShareGPT-style conversations with explicit <think>
reasoning blocks.

It shuffles the combined corpus with a fixed seed, splits it into
train, validation and test sets, and writes a metadata document that
describes each split.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Convset.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("convset v0.3.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.convset/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.convset")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Scalar keys need defaults so CONVSET_* variables reach Unmarshal
	defaults := model.DefaultConfig()
	viper.SetDefault("seed", defaults.Seed)
	viper.SetDefault("system_message", defaults.SystemMessage)
	viper.SetDefault("input_dir", defaults.InputDir)
	viper.SetDefault("converted_dir", defaults.ConvertedDir)
	viper.SetDefault("output_dir", defaults.OutputDir)
	viper.SetDefault("loader.repair", defaults.Loader.Repair)
	viper.SetDefault("loader.progress_every", defaults.Loader.ProgressEvery)

	// Read in environment variables that match CONVSET_*
	viper.SetEnvPrefix("CONVSET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file and environment over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	// Configured lists replace the defaults; Unmarshal would merge them by index
	if viper.IsSet("inputs") {
		cfg.Inputs = nil
	}
	if viper.IsSet("split.ratios") {
		cfg.Split.Ratios = nil
	}
	if viper.IsSet("split.sources") {
		cfg.Split.Sources = nil
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}
	for _, s := range cfg.Split.Sources {
		if _, err := model.ParseDataSource(s); err != nil {
			return nil, fmt.Errorf("split.sources: %w", err)
		}
	}
	cfg.Verbose = verbose || cfg.Verbose
	return cfg, nil
}

// newLogger writes diagnostics to stderr. Skipped records and missing
// inputs are warnings; progress shows up with --verbose.
func newLogger(cfg *model.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
