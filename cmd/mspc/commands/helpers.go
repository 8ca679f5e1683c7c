package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	Masked = "***"
)

// Common static errors used throughout the commands package.
var (
	ErrNotLoggedIn         = errors.New("not logged in; run 'mspc login' first")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrInvalidOutputFormat = errors.New("output must be table, json, or yaml")
	ErrInvalidTokenStore   = errors.New("token_store must be file, nats, or none")
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrClientSecretMissing = errors.New("client secret is required")
	ErrSubscriptionAbsent  = errors.New("subscription not found")
)

// renderOutput writes data as JSON or YAML according to --output, or calls
// renderTable for the default table format.
func renderOutput(data interface{}, renderTable func() error) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		err := yaml.NewEncoder(os.Stdout).Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return nil
	default:
		return renderTable()
	}
}

// renderTable prints rows under headers.
func renderTable(headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(toAny(headers)...)

	for _, row := range rows {
		_ = table.Append(toAny(row)...)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderProperties prints a two-column Property/Value table.
func renderProperties(rows [][]string) error {
	return renderTable([]string{"Property", "Value"}, rows)
}

func toAny(values []string) []interface{} {
	result := make([]interface{}, len(values))
	for i, value := range values {
		result[i] = value
	}

	return result
}

func formatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return constants.NotAvailable
	}

	return value.Format(constants.DateFormat)
}

func formatValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

func maskSecret(value string) string {
	if value == "" {
		return "-"
	}

	return Masked
}

func parsePositiveInt(value string) (int, error) {
	number, err := strconv.Atoi(value)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, value)
	}

	return number, nil
}

func printMessage(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stdout, format+"\n", args...)
}
