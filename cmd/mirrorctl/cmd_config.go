package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/janhq/mirror-server/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(redacted(*cfg))
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

const mask = "********"

func redacted(cfg config.Config) config.Config {
	for _, secret := range []*string{&cfg.EmbeddingAPIKey, &cfg.LLMAPIKey, &cfg.DatabaseURL, &cfg.RedisURL, &cfg.TraceContentSalt} {
		if *secret != "" {
			*secret = mask
		}
	}
	return cfg
}
