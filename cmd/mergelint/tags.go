package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mergelint/internal/htmltag"
)

var tagsFormat string

func init() {
	tagsCmd.Flags().StringVar(&tagsFormat, "format", "plain", "output format (plain|json)")
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print the tag names treated as HTML rather than merge variables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(tagsFormat))
		switch format {
		case "plain", "json":
		default:
			return errInvalidFlag("format", tagsFormat, "plain|json")
		}

		configPath, err := cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return fmt.Errorf("failed to get config flag: %w", err)
		}
		cfg, err := loadProjectConfig(configPath, ".")
		if err != nil {
			return err
		}

		tags := htmltag.Default.With(cfg.Tags.Allow...)
		return renderTags(cmd.OutOrStdout(), tags, format)
	},
}

type tagsPayload struct {
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func renderTags(out io.Writer, tags htmltag.Set, format string) error {
	names := tags.Names()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tagsPayload{Count: len(names), Tags: names})
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}
