package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsdtsdtsd/stasis/internal/config"
)

var cfgFile string
var appConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "stasis",
	Short: "stasis - a small static blog generator",
	Long: `stasis takes Markdown content with front matter, merges it with a
theme of HTML layouts and stylesheets, and writes a static website.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig(_ *cobra.Command) error {
	// Load .env first so variables from it are visible to viper's env lookup.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("outputDir", "public")
	v.SetDefault("baseURL", "")
	v.SetDefault("themeDir", filepath.Join("themes", "default"))
	v.SetDefault("env", config.EnvDev)
	v.SetDefault("logLevel", "info")
	v.SetDefault("checkLinks", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("STASIS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if cfgFile != "" {
				return fmt.Errorf("reading config file %s: %w", cfgFile, err)
			}
			return fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine: defaults and environment cover everything.
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLevel(appConfig.LogLevel),
	})))

	return nil
}
