package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/itchyny/gojq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// renderOutput writes data in the format selected by --output. fill populates
// the table for table output. When --query is set the filtered value is
// printed as YAML for --output yaml and as JSON otherwise.
func renderOutput(w io.Writer, data interface{}, fill func(table *tablewriter.Table)) error {
	output := viper.GetString(keyOutput)

	if expression := viper.GetString(keyQuery); expression != "" {
		filtered, err := applyQuery(data, expression)
		if err != nil {
			return err
		}

		data = filtered

		if output != constants.FormatYAML {
			output = constants.FormatJSON
		}
	}

	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)

		return encoder.Encode(data)
	case constants.FormatTable, "":
		table := tablewriter.NewWriter(w)
		fill(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, output)
	}
}

// applyQuery runs a jq expression over the JSON form of data. A single result
// is returned as is; several results are returned as a slice.
func applyQuery(data interface{}, expression string) (interface{}, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid query expression: %w", err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding query input: %w", err)
	}

	var generic interface{}

	err = json.Unmarshal(raw, &generic)
	if err != nil {
		return nil, fmt.Errorf("decoding query input: %w", err)
	}

	results := make([]interface{}, 0)
	iter := query.Run(generic)

	for {
		value, ok := iter.Next()
		if !ok {
			break
		}

		if err, ok := value.(error); ok {
			return nil, fmt.Errorf("query error: %w", err)
		}

		results = append(results, value)
	}

	if len(results) == 1 {
		return results[0], nil
	}

	return results, nil
}

func formatRateLimit(limit fastly.RateLimit) (string, string) {
	reset := constants.NotAvailable
	if resetTime := limit.ResetTime(); !resetTime.IsZero() {
		reset = resetTime.UTC().Format(time.RFC3339)
	}

	return strconv.Itoa(limit.Remaining), reset
}

func boolText(value bool) string {
	if value {
		return constants.CheckMarkSymbol
	}

	return ""
}

func flexText(value *fastly.FlexInt) string {
	if value == nil {
		return ""
	}

	return strconv.Itoa(value.Int())
}
