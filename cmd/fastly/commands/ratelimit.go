package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewRateLimitCommand creates the rate-limit command.
func NewRateLimitCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rate-limit",
		Aliases: []string{"ratelimit"},
		Short:   "Show the write quota",
		Long: `Show the write quota reported by Fastly.

Fastly only reports the quota on write calls, so a fresh client shows the
default of 1000 remaining. Use -v on a write command to see the live value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			limit := client.RateLimit()
			remaining, reset := formatRateLimit(limit)

			err = renderOutput(cmd.OutOrStdout(), limit, func(table *tablewriter.Table) {
				table.Header("Remaining", "Reset")
				_ = table.Append(remaining, reset)
			})
			if err != nil {
				return fmt.Errorf("failed to render rate limit: %w", err)
			}

			return nil
		},
	}
}
