package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/spf13/cobra"
)

// NewInvoicesCommand creates the invoices command group.
func NewInvoicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice"},
		Short:   "Read partner invoices",
		Long:    "List partner invoices and download invoice statements",
	}

	cmd.AddCommand(newInvoicesListCommand())
	cmd.AddCommand(newInvoicesPDFCommand())

	return cmd
}

func newInvoicesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Long:  "List the partner's invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPartnerCenter(cmd.Context(), func(pc msapi.PartnerCenter) error {
				invoices, err := pc.Invoices().List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list invoices: %w", err)
				}

				return renderOutput(invoices, func() error {
					if len(invoices) == 0 {
						printMessage("No invoices found")

						return nil
					}

					rows := make([][]string, 0, len(invoices))
					for _, invoice := range invoices {
						rows = append(rows, []string{
							invoice.ID,
							formatDate(invoice.InvoiceDate),
							strconv.FormatFloat(invoice.TotalCharges, 'f', 2, 64),
							formatValue(invoice.CurrencyCode),
							formatValue(invoice.InvoiceType),
						})
					}

					return renderTable([]string{"ID", "Date", "Total", "Currency", "Type"}, rows)
				})
			})
		},
	}
}

func newInvoicesPDFCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "pdf INVOICE_ID",
		Short: "Download invoice statement",
		Long:  "Download the PDF statement of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoiceID := args[0]

			path := outputFile
			if path == "" {
				path = invoiceID + ".pdf"
			}

			return withPartnerCenter(cmd.Context(), func(pc msapi.PartnerCenter) error {
				document, err := pc.Invoices().StatementPDF(cmd.Context(), invoiceID)
				if err != nil {
					return fmt.Errorf("failed to download statement: %w", err)
				}

				err = os.WriteFile(path, document, constants.ConfigFilePerm)
				if err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}

				printMessage("Saved statement for invoice %s to %s (%d bytes)", invoiceID, path, len(document))

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "output file (default INVOICE_ID.pdf)")

	return cmd
}
