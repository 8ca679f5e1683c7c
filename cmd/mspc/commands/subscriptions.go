package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/spf13/cobra"
)

// NewSubscriptionsCommand creates the subscriptions command group.
func NewSubscriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subscription", "subs"},
		Short:   "Manage customer subscriptions",
		Long:    "List, inspect, and resize Partner Center subscriptions",
	}

	cmd.AddCommand(newSubscriptionsListCommand())
	cmd.AddCommand(newSubscriptionsGetCommand())
	cmd.AddCommand(newSubscriptionsSetQuantityCommand())

	return cmd
}

func newSubscriptionsListCommand() *cobra.Command {
	var offerID string

	cmd := &cobra.Command{
		Use:   "list CUSTOMER_ID",
		Short: "List subscriptions",
		Long:  "List the subscriptions of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withPartnerCenter(ctx, func(pc msapi.PartnerCenter) error {
				subscriptions, err := listSubscriptions(cmd, pc, args[0], offerID)
				if err != nil {
					return err
				}

				return renderOutput(subscriptions, func() error {
					if len(subscriptions) == 0 {
						printMessage("No subscriptions found")

						return nil
					}

					rows := make([][]string, 0, len(subscriptions))
					for _, subscription := range subscriptions {
						rows = append(rows, []string{
							subscription.ID,
							formatValue(subscription.OfferName),
							strconv.Itoa(subscription.Quantity),
							formatValue(subscription.Status),
							formatValue(subscription.BillingCycle),
							formatDate(subscription.CommitmentEndDate),
						})
					}

					return renderTable([]string{"ID", "Offer", "Quantity", "Status", "Billing", "Commitment End"}, rows)
				})
			})
		},
	}

	cmd.Flags().StringVar(&offerID, "offer", "", "only show the subscription for this offer ID")

	return cmd
}

func listSubscriptions(cmd *cobra.Command, pc msapi.PartnerCenter, customerID, offerID string) ([]msapi.Subscription, error) {
	if offerID == "" {
		subscriptions, err := pc.Subscriptions().List(cmd.Context(), customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}

		return subscriptions, nil
	}

	subscription, err := pc.Subscriptions().GetByOfferID(cmd.Context(), customerID, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	if subscription == nil {
		return nil, fmt.Errorf("offer %q: %w", offerID, ErrSubscriptionAbsent)
	}

	return []msapi.Subscription{*subscription}, nil
}

func newSubscriptionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CUSTOMER_ID SUBSCRIPTION_ID",
		Short: "Get subscription details",
		Long:  "Display detailed information about a specific subscription",
		Args:  cobra.ExactArgs(2), //nolint:mnd // customer and subscription
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPartnerCenter(cmd.Context(), func(pc msapi.PartnerCenter) error {
				subscription, err := pc.Subscriptions().Get(cmd.Context(), args[0], args[1])
				if err != nil {
					return fmt.Errorf("failed to get subscription: %w", err)
				}

				return renderSubscription(subscription)
			})
		},
	}
}

func newSubscriptionsSetQuantityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-quantity CUSTOMER_ID SUBSCRIPTION_ID QUANTITY",
		Short: "Change subscription quantity",
		Long:  "Set the number of licenses of a subscription",
		Args:  cobra.ExactArgs(3), //nolint:mnd // customer, subscription and quantity
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := parsePositiveInt(args[2])
			if err != nil {
				return err
			}

			return withPartnerCenter(cmd.Context(), func(pc msapi.PartnerCenter) error {
				subscription, err := pc.Subscriptions().UpdateQuantity(cmd.Context(), args[0], args[1], quantity)
				if err != nil {
					return fmt.Errorf("failed to update subscription quantity: %w", err)
				}

				return renderSubscription(subscription)
			})
		},
	}
}

func renderSubscription(subscription *msapi.Subscription) error {
	return renderOutput(subscription, func() error {
		return renderProperties([][]string{
			{"ID", subscription.ID},
			{"Offer ID", formatValue(subscription.OfferID)},
			{"Offer", formatValue(subscription.OfferName)},
			{"Friendly Name", formatValue(subscription.FriendlyName)},
			{"Quantity", strconv.Itoa(subscription.Quantity)},
			{"Status", formatValue(subscription.Status)},
			{"Billing Cycle", formatValue(subscription.BillingCycle)},
			{"Term", formatValue(subscription.TermDuration)},
			{"Auto Renew", strconv.FormatBool(subscription.AutoRenewEnabled)},
			{"Created", formatDate(subscription.CreationDate)},
			{"Commitment End", formatDate(subscription.CommitmentEndDate)},
		})
	})
}
