package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/spf13/cobra"
)

// NewLicensesCommand creates the licenses command group.
func NewLicensesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "licenses",
		Aliases: []string{"license"},
		Short:   "Inspect customer licenses",
		Long:    "Report license consumption in customer tenants",
	}

	cmd.AddCommand(newLicensesUsageCommand())

	return cmd
}

func newLicensesUsageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "usage CUSTOMER_ID",
		Short: "Show license usage",
		Long:  "Show available, active, and consumed units per product for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPartnerCenter(cmd.Context(), func(pc msapi.PartnerCenter) error {
				usage, err := pc.Licenses().Usage(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get license usage: %w", err)
				}

				return renderOutput(usage, func() error {
					if len(usage) == 0 {
						printMessage("No licenses found")

						return nil
					}

					rows := make([][]string, 0, len(usage))
					for _, entry := range usage {
						rows = append(rows, []string{
							formatValue(entry.ProductSku.Name),
							formatValue(entry.ProductSku.SkuPartNumber),
							strconv.Itoa(entry.AvailableUnits),
							strconv.Itoa(entry.ActiveUnits),
							strconv.Itoa(entry.ConsumedUnits),
							formatValue(entry.CapabilityStatus),
						})
					}

					return renderTable([]string{"Product", "SKU", "Available", "Active", "Consumed", "Status"}, rows)
				})
			})
		},
	}
}
