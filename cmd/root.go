package cmd

import (
	"fmt"
	"os"

	"AdminBackend/config"
	"AdminBackend/jwt"
	"AdminBackend/logger"

	"github.com/spf13/cobra"
)

const configFlag = "config"

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "admin-backend",
		Short:         "Admin backend for the e-commerce catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(configFlag, config.DefaultPath, "Path to the YAML configuration file")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration named by --config and initializes the logger.
func bootstrap(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Initialize(cfg.Server.Env); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newTokenManager prefers RS256 when both key paths are configured.
func newTokenManager(auth config.AuthConfig) (*jwt.Manager, error) {
	if auth.PrivateKeyPath != "" && auth.PublicKeyPath != "" {
		return jwt.LoadRSAManager(auth.PrivateKeyPath, auth.PublicKeyPath, auth.TokenTTL)
	}
	return jwt.NewHMACManager([]byte(auth.JWTSecret), auth.TokenTTL), nil
}
