package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GregMSThompson/chat-widget/internal/config"
	"github.com/GregMSThompson/chat-widget/internal/embed"
	"github.com/GregMSThompson/chat-widget/internal/models"
	"github.com/GregMSThompson/chat-widget/internal/presets"
)

func snippetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snippet <widgetId>",
		Short: "Print the embed tag for a widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), embed.Snippet(cfg.PublicURL, args[0]))
			return nil
		},
	}
}

func presetsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets [platform]",
		Short: "Print the default widget configuration per platform",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out any
			if len(args) == 1 {
				in, ok, err := presets.Get(models.Platform(args[0]))
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("unknown platform %q", args[0])
				}
				out = in
			} else {
				all, err := presets.Load()
				if err != nil {
					return err
				}
				out = all
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of YAML")
	return cmd
}
