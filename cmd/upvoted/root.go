// Root command for the upvoted CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/upvote/internal/paths"
	"github.com/mesh-intelligence/upvote/pkg/upvote"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagPort      int
	flagJSON      bool
)

// configDataDir and configPort hold values loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use them.
var (
	configDataDir string
	configPort    int
	configOrigins []string
)

var rootCmd = &cobra.Command{
	Use:     "upvoted",
	Short:   "Upvoted is a feature-request voting service",
	Version: upvote.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configPort = cfg.GetInt(cfgKeyPort)
		configOrigins = cfg.GetStringSlice(cfgKeyCORSOrigins)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.upvote-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

// resolveDataDir returns the data directory path following the precedence
// --data-dir flag > config.yaml data_dir > UPVOTE_DATA_DIR env > default $(CWD)/.upvote-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the precedence
// --config-dir flag > UPVOTE_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolvePort returns the listen port following the precedence
// --port flag > config.yaml port > default.
func resolvePort() int {
	if flagPort != 0 {
		return flagPort
	}
	return configPort
}
