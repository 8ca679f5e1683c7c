package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/spf13/cobra"
)

// NewDomainsCommand creates the domains command group.
func NewDomainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "domains",
		Aliases: []string{"domain"},
		Short:   "Manage tenant domains",
		Long:    "List, inspect, and verify domains of the tenant through Microsoft Graph",
	}

	cmd.AddCommand(newDomainsListCommand())
	cmd.AddCommand(newDomainsGetCommand())
	cmd.AddCommand(newDomainsVerifyCommand())

	return cmd
}

func newDomainsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List domains",
		Long:  "List all domains registered in the tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGraph(cmd.Context(), func(graph msapi.Graph) error {
				domains, err := graph.Domains().List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list domains: %w", err)
				}

				return renderOutput(domains, func() error {
					if len(domains) == 0 {
						printMessage("No domains found")

						return nil
					}

					rows := make([][]string, 0, len(domains))
					for _, domain := range domains {
						rows = append(rows, []string{
							domain.ID,
							strconv.FormatBool(domain.IsVerified),
							strconv.FormatBool(domain.IsDefault),
							formatValue(domain.AuthenticationType),
							formatValue(strings.Join(domain.SupportedServices, ", ")),
						})
					}

					return renderTable([]string{"Name", "Verified", "Default", "Authentication", "Services"}, rows)
				})
			})
		},
	}
}

func newDomainsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOMAIN",
		Short: "Get domain details",
		Long:  "Display a domain and, when it is unverified, the DNS records that verify it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGraph(cmd.Context(), func(graph msapi.Graph) error {
				domain, err := graph.Domains().Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get domain: %w", err)
				}

				if domain.IsVerified {
					return renderDomain(domain, nil)
				}

				records, err := graph.Domains().VerificationDNSRecords(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get verification records: %w", err)
				}

				return renderDomain(domain, records)
			})
		},
	}
}

func newDomainsVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify DOMAIN",
		Short: "Verify a domain",
		Long:  "Ask Microsoft Graph to check the domain's verification DNS records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGraph(cmd.Context(), func(graph msapi.Graph) error {
				domain, err := graph.Domains().Verify(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to verify domain: %w", err)
				}

				return renderDomain(domain, nil)
			})
		},
	}
}

type domainView struct {
	msapi.Domain `yaml:",inline"`

	VerificationRecords []msapi.DomainDNSRecord `json:"verificationRecords,omitempty" yaml:"verificationRecords,omitempty"`
}

func renderDomain(domain *msapi.Domain, records []msapi.DomainDNSRecord) error {
	view := domainView{Domain: *domain, VerificationRecords: records}

	return renderOutput(view, func() error {
		err := renderProperties([][]string{
			{"Name", domain.ID},
			{"Verified", strconv.FormatBool(domain.IsVerified)},
			{"Default", strconv.FormatBool(domain.IsDefault)},
			{"Initial", strconv.FormatBool(domain.IsInitial)},
			{"Authentication", formatValue(domain.AuthenticationType)},
			{"Services", formatValue(strings.Join(domain.SupportedServices, ", "))},
		})
		if err != nil || len(records) == 0 {
			return err
		}

		printMessage("\nVerification records:")

		rows := make([][]string, 0, len(records))
		for _, record := range records {
			rows = append(rows, []string{
				record.RecordType,
				formatValue(record.Label),
				formatValue(record.Text + record.MailExchange),
				strconv.Itoa(record.TTL),
			})
		}

		return renderTable([]string{"Type", "Label", "Value", "TTL"}, rows)
	})
}
