// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the baseconv CLI.
//
// Every conversion command reads a count followed by that many tokens on
// stdin and prints one converted value per line on stdout. Diagnostics and
// logs go to stderr. Exit status is 1 on any error.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/baseconv/internal/logging"
	"github.com/pdiddy/baseconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the baseconv CLI.
var rootCmd = &cobra.Command{
	Use:   "baseconv",
	Short: "Convert numbers between hexadecimal and decimal",
	Long: `baseconv reads a count N followed by N whitespace-separated numbers and
prints each one converted to the other base, one per line.

  hex2dec  FF -> 255
  dec2hex  255 -> 000000FF  (8 uppercase digits, zero-padded)

Values must fit in 32 bits unsigned. A malformed token stops the run with
exit status 1; --keep-going reports it and continues.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := viper.GetString("log.level")
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		if err := logging.Setup(cmd.ErrOrStderr(), level); err != nil {
			return err
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logging.L().Debug("using config file", zap.String("path", f))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: baseconv.yaml in . or ~/.config/baseconv)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every conversion at debug level")
	rootCmd.PersistentFlags().String("history-db", "", "history database path (default: ~/.local/share/baseconv/history.db)")

	configureDefaults()
}

// configureDefaults registers config defaults and the root flag bindings.
func configureDefaults() {
	viper.SetDefault("convert.mode", string(types.ModeHexToDec))
	viper.SetDefault("history.max_results", 20)
	viper.SetDefault("log.level", "warn")
	_ = viper.BindPFlag("history.db_path", rootCmd.PersistentFlags().Lookup("history-db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("baseconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "baseconv"))
		}
	}

	viper.SetEnvPrefix("BASECONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
