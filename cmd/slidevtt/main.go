// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the slidevtt CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidevtt/internal/logger"
	"github.com/pdiddy/slidevtt/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appConfig holds the settings resolved from flags, environment, and the
// config file before any subcommand runs.
var appConfig types.Config

// rootCmd is the base command for the slidevtt CLI.
var rootCmd = &cobra.Command{
	Use:   "slidevtt",
	Short: "Turn slide presentation recordings into WebVTT slide tracks",
	Long: `slidevtt converts the slide log saved while presenting (a JSON array of
slide changes with timecodes) into a WebVTT track whose cues carry each
slide, so a player can show the right slide next to the recorded video.

It can also read tracks back and keep a local catalogue of presentations
and their recordings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		log, err := logger.Init(cfg.Logging)
		if err != nil {
			return err
		}
		cmd.SetContext(logger.WithContext(cmd.Context(), log))
		if f := viper.ConfigFileUsed(); f != "" {
			log.Debugw("using config file", "path", f)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./slidevtt.yaml or ~/.config/slidevtt/slidevtt.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slidevtt")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "slidevtt"))
		}
	}

	viper.SetEnvPrefix("SLIDEVTT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
