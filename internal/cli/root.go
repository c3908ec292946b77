// Package cli wires the pipeline stages into the silsila command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/isnadlab/silsila/internal/model"
)

var (
	cfgFile string
	verbose bool
	dataDir string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "silsila",
	Short: "Silsila - narrator identity resolution and chain normalization",
	Long: `Silsila resolves narrator identities across hadith transmission chains.

It normalizes Arabic name variants into canonical identities, builds
deduplicated chains from raw records, enriches narrators from an
authoritative biography table, resolves kinship references (his father,
his uncle, ...) from chain context, and reconciles chains against an
independent secondary encoding, queueing disagreements for a
checkpointed correction loop.

The stages run in order: build, enrich, kinship, reconcile, fix.
Each stage reads and writes plain JSON artifacts in the data directory.`,
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
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("silsila v0.3.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.silsila/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "artifact directory (default: data)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.silsila")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match SILSILA_*
	viper.SetEnvPrefix("SILSILA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration: defaults, then the
// config file / environment via viper, then flags.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	setString := func(key string, dst *string) {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}

	setString("data.dir", &cfg.Data.Dir)
	setString("data.dataset", &cfg.Data.DatasetPath)
	setString("data.biography", &cfg.Data.BiographyPath)
	setString("data.secondary", &cfg.Data.SecondaryPath)
	setString("data.aliases", &cfg.Data.AliasPath)

	if viper.IsSet("match.threshold") {
		cfg.Match.Threshold = viper.GetFloat64("match.threshold")
	}
	if viper.IsSet("match.min_prefix_len") {
		cfg.Match.MinPrefixLen = viper.GetInt("match.min_prefix_len")
	}
	if viper.IsSet("match.min_any_len") {
		cfg.Match.MinAnyLen = viper.GetInt("match.min_any_len")
	}

	setString("oracle.provider", &cfg.Oracle.Provider)
	setString("oracle.model", &cfg.Oracle.Model)
	setString("oracle.base_url", &cfg.Oracle.BaseURL)
	if viper.IsSet("oracle.timeout") {
		cfg.Oracle.Timeout = viper.GetInt("oracle.timeout")
	}
	if viper.IsSet("oracle.request_delay") {
		cfg.Oracle.RequestDelay = viper.GetDuration("oracle.request_delay")
	}
	if viper.IsSet("oracle.max_retries") {
		cfg.Oracle.MaxRetries = viper.GetInt("oracle.max_retries")
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	setString("cache.dir", &cfg.Cache.Dir)

	setString("checkpoint.path", &cfg.Checkpoint.Path)
	if viper.IsSet("checkpoint.save_every") {
		cfg.Checkpoint.SaveEvery = viper.GetInt("checkpoint.save_every")
	}

	// API key never lives in the config file
	cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")

	cfg.Output.Verbose = verbose || viper.GetBool("verbose")
	return cfg
}
