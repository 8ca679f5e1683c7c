package commands

import (
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/spf13/cobra"
)

// NewCustomersCommand creates the customers command group.
func NewCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
		Long:    "List and inspect Partner Center customer tenants",
	}

	cmd.AddCommand(newCustomersListCommand())
	cmd.AddCommand(newCustomersGetCommand())

	return cmd
}

func newCustomersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Long:  "List all customers of the partner",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPartnerCenter(cmd.Context(), func(pc msapi.PartnerCenter) error {
				customers, err := pc.Customers().List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list customers: %w", err)
				}

				return renderOutput(customers, func() error {
					if len(customers) == 0 {
						printMessage("No customers found")

						return nil
					}

					rows := make([][]string, 0, len(customers))
					for _, customer := range customers {
						rows = append(rows, customerRow(customer))
					}

					return renderTable([]string{"ID", "Company", "Domain", "Relationship"}, rows)
				})
			})
		},
	}
}

func newCustomersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CUSTOMER_ID",
		Short: "Get customer details",
		Long:  "Display detailed information about a specific customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPartnerCenter(cmd.Context(), func(pc msapi.PartnerCenter) error {
				customer, err := pc.Customers().Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get customer: %w", err)
				}

				return renderOutput(customer, func() error {
					return renderProperties([][]string{
						{"ID", customer.ID},
						{"Company", formatValue(customer.CompanyProfile.CompanyName)},
						{"Domain", formatValue(customer.CompanyProfile.Domain)},
						{"Tenant ID", formatValue(customer.CompanyProfile.TenantID)},
						{"Relationship", formatValue(customer.RelationshipToPartner)},
					})
				})
			})
		},
	}
}

func customerRow(customer msapi.Customer) []string {
	return []string{
		customer.ID,
		formatValue(customer.CompanyProfile.CompanyName),
		formatValue(customer.CompanyProfile.Domain),
		formatValue(customer.RelationshipToPartner),
	}
}
