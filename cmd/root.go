// Package cmd wires the gravity CLI: analyze a vault once, watch it for
// changes, or inspect previous runs.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gravity",
	Short: "Ranks the notes of a linked vault by gravity score",
	Long: "Gravity builds the link graph of a markdown vault, runs PageRank over it,\n" +
		"and ranks every connected note by a composite gravity score that favors\n" +
		"well-referenced, actively curating, reciprocally linked notes over raw hubs.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .gravity.yaml)")
	rootCmd.PersistentFlags().String("vault", "", "vault directory to analyze")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".gravity")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("GRAVITY")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
