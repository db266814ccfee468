package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loggingRow is the provider-independent view of a logging endpoint.
type loggingRow struct {
	Provider      string `json:"provider"       yaml:"provider"`
	Name          string `json:"name"           yaml:"name"`
	Placement     string `json:"placement"      yaml:"placement"`
	FormatVersion int    `json:"format_version" yaml:"format_version"`
	Destination   string `json:"destination"    yaml:"destination"`
}

// loggingProvider is implemented by provider for every endpoint type.
type loggingProvider interface {
	providerName() string
	command() *cobra.Command
	rows(ctx context.Context, client fastly.Client, target fastly.VersionTarget) ([]loggingRow, error)
}

// provider wires one logging endpoint type to the CLI.
type provider[T any, C fastly.TargetedInput, U fastly.EndpointInput] struct {
	name        string
	description string
	client      func(fastly.Client) fastly.LoggingClient[T, C, U]
	newCreate   func(fastly.VersionTarget) C
	newUpdate   func(fastly.EndpointTarget) U
	common      func(*T) *fastly.LoggingCommon
	destination func(*T) string
}

func loggingProviders() []loggingProvider {
	return []loggingProvider{
		provider[fastly.LoggingDigitalocean, *fastly.CreateDigitaloceanInput, *fastly.UpdateDigitaloceanInput]{
			name:        "digitalocean",
			description: "DigitalOcean Spaces",
			client: func(c fastly.Client) fastly.LoggingClient[fastly.LoggingDigitalocean, *fastly.CreateDigitaloceanInput, *fastly.UpdateDigitaloceanInput] {
				return c.LoggingDigitalocean()
			},
			newCreate: func(t fastly.VersionTarget) *fastly.CreateDigitaloceanInput {
				return &fastly.CreateDigitaloceanInput{VersionTarget: t}
			},
			newUpdate: func(t fastly.EndpointTarget) *fastly.UpdateDigitaloceanInput {
				return &fastly.UpdateDigitaloceanInput{EndpointTarget: t}
			},
			common:      func(e *fastly.LoggingDigitalocean) *fastly.LoggingCommon { return &e.LoggingCommon },
			destination: func(e *fastly.LoggingDigitalocean) string { return e.BucketName + e.Path },
		},
		provider[fastly.LoggingS3, *fastly.CreateS3Input, *fastly.UpdateS3Input]{
			name:        "s3",
			description: "Amazon S3",
			client: func(c fastly.Client) fastly.LoggingClient[fastly.LoggingS3, *fastly.CreateS3Input, *fastly.UpdateS3Input] {
				return c.LoggingS3()
			},
			newCreate: func(t fastly.VersionTarget) *fastly.CreateS3Input {
				return &fastly.CreateS3Input{VersionTarget: t}
			},
			newUpdate: func(t fastly.EndpointTarget) *fastly.UpdateS3Input {
				return &fastly.UpdateS3Input{EndpointTarget: t}
			},
			common:      func(e *fastly.LoggingS3) *fastly.LoggingCommon { return &e.LoggingCommon },
			destination: func(e *fastly.LoggingS3) string { return e.BucketName + e.Path },
		},
		provider[fastly.LoggingHTTPS, *fastly.CreateHTTPSInput, *fastly.UpdateHTTPSInput]{
			name:        "https",
			description: "HTTPS",
			client: func(c fastly.Client) fastly.LoggingClient[fastly.LoggingHTTPS, *fastly.CreateHTTPSInput, *fastly.UpdateHTTPSInput] {
				return c.LoggingHTTPS()
			},
			newCreate: func(t fastly.VersionTarget) *fastly.CreateHTTPSInput {
				return &fastly.CreateHTTPSInput{VersionTarget: t}
			},
			newUpdate: func(t fastly.EndpointTarget) *fastly.UpdateHTTPSInput {
				return &fastly.UpdateHTTPSInput{EndpointTarget: t}
			},
			common:      func(e *fastly.LoggingHTTPS) *fastly.LoggingCommon { return &e.LoggingCommon },
			destination: func(e *fastly.LoggingHTTPS) string { return e.URL },
		},
		provider[fastly.LoggingSyslog, *fastly.CreateSyslogInput, *fastly.UpdateSyslogInput]{
			name:        "syslog",
			description: "syslog",
			client: func(c fastly.Client) fastly.LoggingClient[fastly.LoggingSyslog, *fastly.CreateSyslogInput, *fastly.UpdateSyslogInput] {
				return c.LoggingSyslog()
			},
			newCreate: func(t fastly.VersionTarget) *fastly.CreateSyslogInput {
				return &fastly.CreateSyslogInput{VersionTarget: t}
			},
			newUpdate: func(t fastly.EndpointTarget) *fastly.UpdateSyslogInput {
				return &fastly.UpdateSyslogInput{EndpointTarget: t}
			},
			common: func(e *fastly.LoggingSyslog) *fastly.LoggingCommon { return &e.LoggingCommon },
			destination: func(e *fastly.LoggingSyslog) string {
				if e.Port.Int() == 0 {
					return e.Address
				}

				return e.Address + ":" + strconv.Itoa(e.Port.Int())
			},
		},
	}
}

// NewLoggingCommand creates the logging command group.
func NewLoggingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logging",
		Aliases: []string{"log"},
		Short:   "Manage logging endpoints",
		Long:    "Manage the DigitalOcean, S3, HTTPS and syslog logging endpoints of a service version",
	}

	providers := loggingProviders()

	for _, p := range providers {
		cmd.AddCommand(p.command())
	}

	cmd.AddCommand(newLoggingListAllCommand(providers))

	return cmd
}

func newLoggingListAllCommand(providers []loggingProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "list-all",
		Short: "List endpoints of every provider",
		Long:  "List the logging endpoints of all providers, fetched concurrently",
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
			for _, p := range providers {
				builder.Add(p.providerName(), func(ctx context.Context) (interface{}, error) {
					return p.rows(ctx, client, target)
				})
			}

			results, err := fastly.NewBatchExecutor(len(providers)).Execute(cmd.Context(), builder.Build())
			if err != nil {
				return err
			}

			err = results.Err()
			if err != nil {
				return err
			}

			rows := make([]loggingRow, 0)
			for _, result := range results {
				if found, ok := result.Data.([]loggingRow); ok {
					rows = append(rows, found...)
				}
			}

			return renderLoggingRows(cmd, rows)
		},
	}
}

func (p provider[T, C, U]) providerName() string {
	return p.name
}

func (p provider[T, C, U]) rows(ctx context.Context, client fastly.Client, target fastly.VersionTarget) ([]loggingRow, error) {
	endpoints, err := p.client(client).List(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("listing %s endpoints: %w", p.name, err)
	}

	rows := make([]loggingRow, 0, len(endpoints))
	for _, endpoint := range endpoints {
		rows = append(rows, p.row(endpoint))
	}

	return rows, nil
}

func (p provider[T, C, U]) row(endpoint *T) loggingRow {
	common := p.common(endpoint)

	return loggingRow{
		Provider:      p.name,
		Name:          common.Name,
		Placement:     common.Placement,
		FormatVersion: common.FormatVersion.Int(),
		Destination:   p.destination(endpoint),
	}
}

func (p provider[T, C, U]) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   p.name,
		Short: "Manage " + p.description + " logging endpoints",
		Long: "Manage " + p.description + ` logging endpoints.

Endpoint fields use the API names and are given with --set key=value or read
from a YAML file with --from-file. Values given with --set win.`,
	}

	cmd.AddCommand(p.listCommand())
	cmd.AddCommand(p.getCommand())
	cmd.AddCommand(p.createCommand())
	cmd.AddCommand(p.updateCommand())
	cmd.AddCommand(p.deleteCommand())

	return cmd
}

func (p provider[T, C, U]) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List " + p.description + " endpoints",
		Long:    "List the " + p.description + " logging endpoints of a service version",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			target, err := serviceTarget(cmd.Context(), client, "")
			if err != nil {
				return err
			}

			endpoints, err := p.client(client).List(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("failed to list %s endpoints: %w", p.name, err)
			}

			return renderOutput(cmd.OutOrStdout(), endpoints, func(table *tablewriter.Table) {
				fillLoggingTable(table, p.tableRows(endpoints))
			})
		},
	}
}

func (p provider[T, C, U]) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Get a " + p.description + " endpoint",
		Long:  "Display one " + p.description + " logging endpoint",
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

			endpoint, err := p.client(client).Get(cmd.Context(), endpointTarget(target, args[0]))
			if err != nil {
				return fmt.Errorf("failed to get %s endpoint: %w", p.name, err)
			}

			return p.render(cmd, endpoint)
		},
	}
}

func (p provider[T, C, U]) createCommand() *cobra.Command {
	var (
		fromFile string
		sets     []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a " + p.description + " endpoint",
		Long:  "Create a " + p.description + " logging endpoint on an editable service version",
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

			input := p.newCreate(target)

			err = buildInput(fromFile, append(sets, "name="+args[0]), input)
			if err != nil {
				return err
			}

			endpoint, err := p.client(client).Create(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to create %s endpoint: %w", p.name, err)
			}

			reportRateLimit(cmd, client)

			return p.render(cmd, endpoint)
		},
	}

	cmd.Flags().StringVar(&fromFile, "from-file", "", "YAML file with endpoint fields")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "endpoint field as key=value (repeatable)")

	return cmd
}

func (p provider[T, C, U]) updateCommand() *cobra.Command {
	var (
		fromFile string
		sets     []string
	)

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update a " + p.description + " endpoint",
		Long:  "Change fields of a " + p.description + " logging endpoint. Use --set name=NEW to rename it.",
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

			input := p.newUpdate(endpointTarget(target, args[0]))

			err = buildInput(fromFile, sets, input)
			if err != nil {
				return err
			}

			endpoint, err := p.client(client).Update(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to update %s endpoint: %w", p.name, err)
			}

			reportRateLimit(cmd, client)

			return p.render(cmd, endpoint)
		},
	}

	cmd.Flags().StringVar(&fromFile, "from-file", "", "YAML file with endpoint fields")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "endpoint field as key=value (repeatable)")

	return cmd
}

func (p provider[T, C, U]) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME...",
		Short: "Delete " + p.description + " endpoints",
		Long:  "Delete one or more " + p.description + " logging endpoints",
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
				builder.AddDelete(endpointTarget(target, name), p.client(client).Delete)
			}

			err = runDeletes(cmd, builder.Build())
			reportRateLimit(cmd, client)

			return err
		},
	}
}

func (p provider[T, C, U]) tableRows(endpoints []*T) []loggingRow {
	rows := make([]loggingRow, 0, len(endpoints))
	for _, endpoint := range endpoints {
		rows = append(rows, p.row(endpoint))
	}

	return rows
}

// render prints an endpoint. The table view lists every non-empty field using
// the API names.
func (p provider[T, C, U]) render(cmd *cobra.Command, endpoint *T) error {
	return renderOutput(cmd.OutOrStdout(), endpoint, func(table *tablewriter.Table) {
		table.Header("Field", "Value")

		data, err := yaml.Marshal(endpoint)
		if err != nil {
			return
		}

		fields := map[string]interface{}{}
		if yaml.Unmarshal(data, &fields) != nil {
			return
		}

		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			value := fmt.Sprint(fields[key])
			if isSecretField(key) && value != "" {
				value = maskSecret(value)
			}

			_ = table.Append(key, value)
		}
	})
}

func renderLoggingRows(cmd *cobra.Command, rows []loggingRow) error {
	return renderOutput(cmd.OutOrStdout(), rows, func(table *tablewriter.Table) {
		fillLoggingTable(table, rows)
	})
}

func fillLoggingTable(table *tablewriter.Table, rows []loggingRow) {
	table.Header("Provider", "Name", "Placement", "Format Version", "Destination")

	for _, row := range rows {
		_ = table.Append(row.Provider, row.Name, row.Placement, strconv.Itoa(row.FormatVersion), row.Destination)
	}
}

func isSecretField(key string) bool {
	switch key {
	case "secret_key", "token", "tls_client_key", "header_value":
		return true
	default:
		return false
	}
}

func maskSecret(value string) string {
	if len(value) <= constants.SecretVisibleChars {
		return constants.MaskedSecret
	}

	return value[:constants.SecretVisibleChars] + constants.MaskedSecret
}

// buildInput fills input from a YAML file and key=value pairs. Values keep
// their literal text and are typed by the field they land in, so "514" fills
// an int and "%h %r" a string. Unknown keys are rejected.
func buildInput(fromFile string, sets []string, input interface{}) error {
	fields := &yaml.Node{Kind: yaml.MappingNode}

	if fromFile != "" {
		// #nosec G304 -- the path is supplied by the user on purpose
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", fromFile, err)
		}

		var doc yaml.Node

		err = yaml.Unmarshal(data, &doc)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", fromFile, err)
		}

		if len(doc.Content) > 0 {
			fields = doc.Content[0]
		}

		if fields.Kind != yaml.MappingNode {
			return fmt.Errorf("failed to parse %s: %w", fromFile, errNotAMapping)
		}
	}

	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return fmt.Errorf("%w: %q", constants.ErrInvalidSetFlag, set)
		}

		setField(fields, key, value)
	}

	data, err := yaml.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode endpoint fields: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err = decoder.Decode(input)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid endpoint fields: %w", err)
	}

	return nil
}

var errNotAMapping = errors.New("expected a mapping of field names to values")

func setField(mapping *yaml.Node, key, value string) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	if value == "" {
		node.Style = yaml.DoubleQuotedStyle
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = node

			return
		}
	}

	mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, node)
}
