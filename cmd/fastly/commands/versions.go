package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewVersionsCommand creates the versions command group.
func NewVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "versions",
		Aliases: []string{"service-version"},
		Short:   "Manage service versions",
		Long:    "List, clone, activate, deactivate and lock versions of the service named by --service",
	}

	cmd.AddCommand(newVersionsListCommand())
	cmd.AddCommand(newVersionsGetCommand())
	cmd.AddCommand(newVersionActionCommand("clone", "Clone a version",
		"Copy a version into a new, editable draft", fastly.VersionsClient.Clone))
	cmd.AddCommand(newVersionActionCommand("activate", "Activate a version",
		"Deploy a version, replacing the active one", fastly.VersionsClient.Activate))
	cmd.AddCommand(newVersionActionCommand("deactivate", "Deactivate a version",
		"Stop serving a version", fastly.VersionsClient.Deactivate))
	cmd.AddCommand(newVersionActionCommand("lock", "Lock a version",
		"Lock a version so it can no longer be edited", fastly.VersionsClient.Lock))

	return cmd
}

func newVersionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List versions",
		Long:    "List every version of the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			service, err := resolveService(cmd.Context(), client)
			if err != nil {
				return err
			}

			versions, err := client.Versions().List(cmd.Context(), service.ID)
			if err != nil {
				return fmt.Errorf("failed to list versions: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), versions, func(table *tablewriter.Table) {
				table.Header("Number", "Active", "Locked", "Comment")

				for _, version := range versions {
					_ = table.Append(
						strconv.Itoa(version.Number.Int()),
						boolText(version.Active),
						boolText(version.Locked),
						version.Comment,
					)
				}
			})
		},
	}
}

func newVersionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [VERSION]",
		Short: "Get version details",
		Long:  "Display one version. Without VERSION, --version or the active version is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersionCommand(cmd, args, fastly.VersionsClient.Get)
		},
	}
}

func newVersionActionCommand(
	name, short, long string,
	action func(fastly.VersionsClient, context.Context, fastly.VersionTarget) (*fastly.Version, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [VERSION]",
		Short: short,
		Long:  long + ". Without VERSION, --version or the active version is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersionCommand(cmd, args, action)
		},
	}
}

func runVersionCommand(
	cmd *cobra.Command,
	args []string,
	action func(fastly.VersionsClient, context.Context, fastly.VersionTarget) (*fastly.Version, error),
) error {
	client, err := CreateClient(cmd.Context())
	if err != nil {
		return err
	}

	versionArg := ""
	if len(args) > 0 {
		versionArg = args[0]
	}

	target, err := serviceTarget(cmd.Context(), client, versionArg)
	if err != nil {
		return err
	}

	version, err := action(client.Versions(), cmd.Context(), target)
	if err != nil {
		return fmt.Errorf("%s version %d: %w", cmd.Name(), target.ServiceVersion, err)
	}

	reportRateLimit(cmd, client)

	return renderOutput(cmd.OutOrStdout(), version, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("Service", version.ServiceID)
		_ = table.Append("Number", strconv.Itoa(version.Number.Int()))
		_ = table.Append("Active", boolText(version.Active))
		_ = table.Append("Locked", boolText(version.Locked))
		_ = table.Append("Comment", version.Comment)
	})
}
