package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// OrdersClient implements msapi.OrdersClient.
type OrdersClient struct {
	httpClient *http.Client
	catalog    *CatalogClient
}

// NewOrdersClient creates a new orders client.
func NewOrdersClient(httpClient *http.Client) *OrdersClient {
	return &OrdersClient{
		httpClient: httpClient,
		catalog:    NewCatalogClient(httpClient),
	}
}

// Create implements msapi.OrdersClient.Create. When any line item has no
// number, every line is numbered by its position. The caller's slice is not
// modified.
func (c *OrdersClient) Create(
	ctx context.Context,
	customerID string,
	billingCycle msapi.BillingCycle,
	lineItems []msapi.OrderLineItem,
) (*msapi.Order, error) {
	request := &msapi.OrderCreateRequest{
		LineItems:    numberLineItems(lineItems),
		BillingCycle: billingCycle,
	}

	resp, err := c.httpClient.Post(ctx, "/customers/"+customerID+"/orders", request)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	return decodeResponse[msapi.Order](resp, "order")
}

// CreateByProductID implements msapi.OrdersClient.CreateByProductID.
func (c *OrdersClient) CreateByProductID(
	ctx context.Context,
	customerID, productID string,
	quantity int,
	billingCycle msapi.BillingCycle,
	options *msapi.OrderLineItemOptions,
) (*msapi.Order, error) {
	skus, err := c.catalog.Skus(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}

	if len(skus) == 0 || skus[0].ID == "" {
		return nil, fmt.Errorf("%w: %s", constants.ErrNoSKUFound, productID)
	}

	skuID := skus[0].ID

	availabilities, err := c.catalog.Availabilities(ctx, customerID, productID, skuID)
	if err != nil {
		return nil, err
	}

	if len(availabilities) == 0 || availabilities[0].ID == "" {
		return nil, fmt.Errorf("%w: %s", constants.ErrNoAvailabilityFound, productID)
	}

	item := msapi.OrderLineItem{
		OfferID:  productID + ":" + skuID + ":" + availabilities[0].ID,
		Quantity: quantity,
	}
	options.ApplyTo(&item)

	return c.Create(ctx, customerID, billingCycle, []msapi.OrderLineItem{item})
}

// numberLineItems renumbers every item from 0 when any item has no number or
// number 0. The caller's slice is left untouched.
func numberLineItems(lineItems []msapi.OrderLineItem) []msapi.OrderLineItem {
	numbered := make([]msapi.OrderLineItem, len(lineItems))
	copy(numbered, lineItems)

	missing := false

	for _, item := range numbered {
		if item.LineItemNumber == nil || *item.LineItemNumber == 0 {
			missing = true

			break
		}
	}

	if !missing {
		return numbered
	}

	for i := range numbered {
		number := i
		numbered[i].LineItemNumber = &number
	}

	return numbered
}
