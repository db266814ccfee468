package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewServicesCommand creates the services command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service", "svc"},
		Short:   "Manage services",
		Long:    "List, inspect and search Fastly services",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesGetCommand())
	cmd.AddCommand(newServicesSearchCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List services",
		Long:    "List all services visible to the API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			services, err := client.Services().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list services: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), services, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Type", "Active Version")

				for _, service := range services {
					_ = table.Append(service.ID, service.Name, service.Type, activeVersionText(service))
				}
			})
		},
	}
}

func newServicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SERVICE",
		Short: "Get service details",
		Long:  "Display a service by ID or name. Names are matched fuzzily.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			services, err := client.Services().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list services: %w", err)
			}

			match, err := matchService(args[0], services)
			if err != nil {
				return err
			}

			service, err := client.Services().Get(cmd.Context(), match.ID)
			if err != nil {
				return fmt.Errorf("failed to get service: %w", err)
			}

			return renderService(cmd, service)
		},
	}
}

func newServicesSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search NAME",
		Short: "Find a service by exact name",
		Long:  "Look up a service by its exact name using the search endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			service, err := client.Services().Search(cmd.Context(), args[0])
			if err != nil {
				if fastly.IsNotFound(err) {
					return fmt.Errorf("%w: %q", constants.ErrServiceNotFound, args[0])
				}

				return fmt.Errorf("failed to search services: %w", err)
			}

			return renderService(cmd, service)
		},
	}
}

func renderService(cmd *cobra.Command, service *fastly.Service) error {
	return renderOutput(cmd.OutOrStdout(), service, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("ID", service.ID)
		_ = table.Append("Name", service.Name)
		_ = table.Append("Type", service.Type)
		_ = table.Append("Comment", service.Comment)
		_ = table.Append("Active Version", activeVersionText(service))
		_ = table.Append("Versions", strconv.Itoa(len(service.Versions)))
	})
}

func activeVersionText(service *fastly.Service) string {
	active := service.ActiveVersion()
	if active <= 0 {
		return constants.NotAvailable
	}

	return strconv.Itoa(active)
}
