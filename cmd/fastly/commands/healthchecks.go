package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// NewHealthchecksCommand creates the healthchecks command group.
func NewHealthchecksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "healthchecks",
		Aliases: []string{"healthcheck", "hc"},
		Short:   "Manage healthchecks",
		Long:    "Create, inspect, update and delete backend healthchecks of a service version",
	}

	cmd.AddCommand(newHealthchecksListCommand())
	cmd.AddCommand(newHealthchecksGetCommand())
	cmd.AddCommand(newHealthchecksCreateCommand())
	cmd.AddCommand(newHealthchecksUpdateCommand())
	cmd.AddCommand(newHealthchecksDeleteCommand())

	return cmd
}

func newHealthchecksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List healthchecks",
		Long:    "List the healthchecks of a service version",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			target, err := serviceTarget(cmd.Context(), client, "")
			if err != nil {
				return err
			}

			healthchecks, err := client.Healthchecks().List(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("failed to list healthchecks: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), healthchecks, func(table *tablewriter.Table) {
				table.Header("Name", "Method", "Host", "Path", "Interval", "Threshold")

				for _, hc := range healthchecks {
					_ = table.Append(hc.Name, hc.Method, hc.Host, hc.Path, flexText(hc.CheckInterval), flexText(hc.Threshold))
				}
			})
		},
	}
}

func newHealthchecksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Get healthcheck details",
		Long:  "Display one healthcheck of a service version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			target, err := serviceTarget(cmd.Context(), client, "")
			if err != nil {
				return err
			}

			hc, err := client.Healthchecks().Get(cmd.Context(), endpointTarget(target, args[0]))
			if err != nil {
				return fmt.Errorf("failed to get healthcheck: %w", err)
			}

			return renderHealthcheck(cmd, hc)
		},
	}
}

func newHealthchecksCreateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a healthcheck",
		Long: `Create a healthcheck on an editable service version.

Fields not given as flags are left to the API defaults. --from-file reads a
YAML document with the same field names as the API, e.g. check_interval.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &fastly.CreateHealthcheckInput{}

			err := readInputFile(fromFile, input)
			if err != nil {
				return err
			}

			input.Name = fastly.String(args[0])
			applyHealthcheckFlags(cmd.Flags(), &healthcheckFields{
				Comment:          &input.Comment,
				Method:           &input.Method,
				Host:             &input.Host,
				Path:             &input.Path,
				HTTPVersion:      &input.HTTPVersion,
				Timeout:          &input.Timeout,
				CheckInterval:    &input.CheckInterval,
				ExpectedResponse: &input.ExpectedResponse,
				Window:           &input.Window,
				Threshold:        &input.Threshold,
				Initial:          &input.Initial,
				Headers:          &input.Headers,
			})

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			target, err := serviceTarget(cmd.Context(), client, "")
			if err != nil {
				return err
			}

			input.VersionTarget = target

			hc, err := client.Healthchecks().Create(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to create healthcheck: %w", err)
			}

			reportRateLimit(cmd, client)

			return renderHealthcheck(cmd, hc)
		},
	}

	addHealthcheckFlags(cmd)
	cmd.Flags().StringVar(&fromFile, "from-file", "", "YAML file with healthcheck fields")

	return cmd
}

func newHealthchecksUpdateCommand() *cobra.Command {
	var (
		fromFile string
		newName  string
	)

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update a healthcheck",
		Long:  "Change the given fields of a healthcheck. Only flags that are set are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &fastly.UpdateHealthcheckInput{}

			err := readInputFile(fromFile, input)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("new-name") {
				input.NewName = fastly.String(newName)
			}

			applyHealthcheckFlags(cmd.Flags(), &healthcheckFields{
				Comment:          &input.Comment,
				Method:           &input.Method,
				Host:             &input.Host,
				Path:             &input.Path,
				HTTPVersion:      &input.HTTPVersion,
				Timeout:          &input.Timeout,
				CheckInterval:    &input.CheckInterval,
				ExpectedResponse: &input.ExpectedResponse,
				Window:           &input.Window,
				Threshold:        &input.Threshold,
				Initial:          &input.Initial,
				Headers:          &input.Headers,
			})

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			target, err := serviceTarget(cmd.Context(), client, "")
			if err != nil {
				return err
			}

			input.EndpointTarget = endpointTarget(target, args[0])

			hc, err := client.Healthchecks().Update(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to update healthcheck: %w", err)
			}

			reportRateLimit(cmd, client)

			return renderHealthcheck(cmd, hc)
		},
	}

	addHealthcheckFlags(cmd)
	cmd.Flags().StringVar(&newName, "new-name", "", "rename the healthcheck")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "YAML file with healthcheck fields")

	return cmd
}

func newHealthchecksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME...",
		Short: "Delete healthchecks",
		Long:  "Delete one or more healthchecks from an editable service version",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			target, err := serviceTarget(cmd.Context(), client, "")
			if err != nil {
				return err
			}

			builder := fastly.NewBatchBuilder()
			for _, name := range args {
				builder.AddDelete(endpointTarget(target, name), client.Healthchecks().Delete)
			}

			err = runDeletes(cmd, builder.Build())
			reportRateLimit(cmd, client)

			return err
		},
	}
}

// healthcheckFields points at the optional fields shared by the create and
// update inputs.
type healthcheckFields struct {
	Comment          **string
	Method           **string
	Host             **string
	Path             **string
	HTTPVersion      **string
	Timeout          **int
	CheckInterval    **int
	ExpectedResponse **int
	Window           **int
	Threshold        **int
	Initial          **int
	Headers          *[]string
}

func addHealthcheckFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("comment", "", "free-form comment")
	flags.String("method", "", "HTTP method used for the check, e.g. HEAD")
	flags.String("host", "", "Host header sent with the check")
	flags.String("path", "", "path to check")
	flags.String("http-version", "", "HTTP version, e.g. 1.1")
	flags.Int("timeout", 0, "milliseconds to wait for a response")
	flags.Int("check-interval", 0, "milliseconds between checks")
	flags.Int("expected-response", 0, "expected HTTP status")
	flags.Int("window", 0, "number of most recent checks considered")
	flags.Int("threshold", 0, "checks in the window that must pass")
	flags.Int("initial", 0, "checks assumed passing at startup")
	flags.StringArray("header", nil, "extra request header as 'Name: value' (repeatable)")
}

func applyHealthcheckFlags(flags *pflag.FlagSet, fields *healthcheckFields) {
	stringFlags := map[string]**string{
		"comment":      fields.Comment,
		"method":       fields.Method,
		"host":         fields.Host,
		"path":         fields.Path,
		"http-version": fields.HTTPVersion,
	}

	for name, field := range stringFlags {
		if flags.Changed(name) {
			value, _ := flags.GetString(name)
			*field = fastly.String(value)
		}
	}

	intFlags := map[string]**int{
		"timeout":           fields.Timeout,
		"check-interval":    fields.CheckInterval,
		"expected-response": fields.ExpectedResponse,
		"window":            fields.Window,
		"threshold":         fields.Threshold,
		"initial":           fields.Initial,
	}

	for name, field := range intFlags {
		if flags.Changed(name) {
			value, _ := flags.GetInt(name)
			*field = fastly.Int(value)
		}
	}

	if flags.Changed("header") {
		headers, _ := flags.GetStringArray("header")
		*fields.Headers = headers
	}
}

// readInputFile decodes a YAML document into input. An empty path is a no-op.
func readInputFile(path string, input interface{}) error {
	if path == "" {
		return nil
	}

	// #nosec G304 -- the path is supplied by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	err = yaml.Unmarshal(data, input)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// runDeletes executes delete operations concurrently and prints one line per
// removed object.
func runDeletes(cmd *cobra.Command, operations []fastly.BatchOperation) error {
	results, err := fastly.NewBatchExecutor(constants.DefaultConcurrencyLimit).Execute(cmd.Context(), operations)
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Success {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", result.ID)
		}
	}

	return results.Err()
}

func renderHealthcheck(cmd *cobra.Command, hc *fastly.Healthcheck) error {
	return renderOutput(cmd.OutOrStdout(), hc, func(table *tablewriter.Table) {
		table.Header("Property", "Value")
		_ = table.Append("Name", hc.Name)
		_ = table.Append("Service", hc.ServiceID)
		_ = table.Append("Version", strconv.Itoa(hc.Version.Int()))
		_ = table.Append("Method", hc.Method)
		_ = table.Append("Host", hc.Host)
		_ = table.Append("Path", hc.Path)
		_ = table.Append("HTTP Version", hc.HTTPVersion)
		_ = table.Append("Timeout", flexText(hc.Timeout))
		_ = table.Append("Check Interval", flexText(hc.CheckInterval))
		_ = table.Append("Expected Response", flexText(hc.ExpectedResponse))
		_ = table.Append("Window", flexText(hc.Window))
		_ = table.Append("Threshold", flexText(hc.Threshold))
		_ = table.Append("Initial", flexText(hc.Initial))

		for _, header := range hc.Headers {
			_ = table.Append("Header", header)
		}
	})
}
