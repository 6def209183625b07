package main

import (
	"github.com/bibmend/bibmend/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the global configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a global configuration value",
	Long: `Set a global configuration value.

Keys:
  chars_table     default special-character substitution table
  journals_table  default journal-equivalence table
  key_prefix      default prefix for generated citation keys`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// ConfigResponse is the response for config get.
type ConfigResponse struct {
	CharsTable    string `json:"chars_table,omitempty"`
	JournalsTable string `json:"journals_table,omitempty"`
	KeyPrefix     string `json:"key_prefix,omitempty"`
	Path          string `json:"path"`
}

// UpdateResponse is the response for config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return outputJSON(ConfigResponse{
		CharsTable:    cfg.CharsTable,
		JournalsTable: cfg.JournalsTable,
		KeyPrefix:     cfg.KeyPrefix,
		Path:          config.GlobalConfigPath(),
	})
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	key, value := args[0], args[1]
	switch key {
	case "chars_table":
		cfg.CharsTable = value
	case "journals_table":
		cfg.JournalsTable = value
	case "key_prefix":
		cfg.KeyPrefix = value
	default:
		exitWithError(ExitError, "unknown config key: %s", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
}
