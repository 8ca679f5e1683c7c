package commands

import (
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/spf13/cobra"
)

// NewGDAPCommand creates the gdap command group.
func NewGDAPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gdap",
		Short: "Inspect GDAP relationships",
		Long:  "List and inspect granular delegated admin privilege relationships",
	}

	cmd.AddCommand(newGDAPListCommand())
	cmd.AddCommand(newGDAPGetCommand())

	return cmd
}

func newGDAPListCommand() *cobra.Command {
	var customerTenantID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List relationships",
		Long:  "List delegated admin relationships, optionally for a single customer tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGraph(cmd.Context(), func(graph msapi.Graph) error {
				var (
					relationships []msapi.GDAPRelationship
					err           error
				)

				if customerTenantID != "" {
					relationships, err = graph.GDAP().ListRelationshipsByCustomer(cmd.Context(), customerTenantID)
				} else {
					relationships, err = graph.GDAP().ListRelationships(cmd.Context())
				}

				if err != nil {
					return fmt.Errorf("failed to list relationships: %w", err)
				}

				return renderOutput(relationships, func() error {
					if len(relationships) == 0 {
						printMessage("No relationships found")

						return nil
					}

					rows := make([][]string, 0, len(relationships))
					for _, relationship := range relationships {
						rows = append(rows, []string{
							relationship.ID,
							formatValue(relationship.DisplayName),
							formatValue(gdapCustomerName(relationship.Customer)),
							formatValue(relationship.Status),
							formatDate(relationship.EndDateTime),
						})
					}

					return renderTable([]string{"ID", "Name", "Customer", "Status", "Ends"}, rows)
				})
			})
		},
	}

	cmd.Flags().StringVar(&customerTenantID, "customer", "", "only list relationships with this customer tenant ID")

	return cmd
}

func newGDAPGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get RELATIONSHIP_ID",
		Short: "Get relationship details",
		Long:  "Display a delegated admin relationship and its roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGraph(cmd.Context(), func(graph msapi.Graph) error {
				relationship, err := graph.GDAP().GetRelationship(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get relationship: %w", err)
				}

				return renderOutput(relationship, func() error {
					rows := [][]string{
						{"ID", relationship.ID},
						{"Name", formatValue(relationship.DisplayName)},
						{"Customer", formatValue(gdapCustomerName(relationship.Customer))},
						{"Status", formatValue(relationship.Status)},
						{"Duration", formatValue(relationship.Duration)},
						{"Auto Extend", formatValue(relationship.AutoExtendDuration)},
						{"Activated", formatDate(relationship.ActivatedDateTime)},
						{"Ends", formatDate(relationship.EndDateTime)},
					}

					if relationship.AccessDetails != nil {
						for _, role := range relationship.AccessDetails.UnifiedRoles {
							rows = append(rows, []string{"Role", role.RoleDefinitionID})
						}
					}

					return renderProperties(rows)
				})
			})
		},
	}
}

func gdapCustomerName(customer *msapi.GDAPCustomer) string {
	if customer == nil {
		return ""
	}

	if customer.DisplayName != "" {
		return customer.DisplayName
	}

	return customer.TenantID
}
