package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// SubscriptionsClient implements msapi.SubscriptionsClient.
type SubscriptionsClient struct {
	httpClient *http.Client
}

// NewSubscriptionsClient creates a new subscriptions client.
func NewSubscriptionsClient(httpClient *http.Client) *SubscriptionsClient {
	return &SubscriptionsClient{
		httpClient: httpClient,
	}
}

func subscriptionsPath(customerID string) string {
	return "/customers/" + customerID + "/subscriptions"
}

// List implements msapi.SubscriptionsClient.List.
func (c *SubscriptionsClient) List(ctx context.Context, customerID string) ([]msapi.Subscription, error) {
	resp, err := c.httpClient.Get(ctx, subscriptionsPath(customerID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	return decodeItems[msapi.Subscription](resp, "subscriptions list")
}

// Get implements msapi.SubscriptionsClient.Get.
func (c *SubscriptionsClient) Get(ctx context.Context, customerID, subscriptionID string) (*msapi.Subscription, error) {
	resp, err := c.httpClient.Get(ctx, subscriptionsPath(customerID)+"/"+subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	return decodeResponse[msapi.Subscription](resp, "subscription")
}

// GetByOfferID implements msapi.SubscriptionsClient.GetByOfferID.
func (c *SubscriptionsClient) GetByOfferID(ctx context.Context, customerID, offerID string) (*msapi.Subscription, error) {
	subscriptions, err := c.List(ctx, customerID)
	if err != nil {
		return nil, err
	}

	for i := range subscriptions {
		if subscriptions[i].OfferID == offerID {
			return &subscriptions[i], nil
		}
	}

	return nil, nil //nolint:nilnil // absence is not an error
}

// Update implements msapi.SubscriptionsClient.Update. The current subscription
// is fetched as raw JSON and the set fields are overlaid before it is sent
// back, so properties this package does not model are preserved.
func (c *SubscriptionsClient) Update(
	ctx context.Context,
	customerID, subscriptionID string,
	update *msapi.SubscriptionUpdate,
) (*msapi.Subscription, error) {
	path := subscriptionsPath(customerID) + "/" + subscriptionID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	var current map[string]json.RawMessage

	err = json.Unmarshal(resp.Body, &current)
	if err != nil {
		return nil, fmt.Errorf("parsing subscription: %w", err)
	}

	if current == nil {
		current = make(map[string]json.RawMessage)
	}

	for name, value := range update.Fields() {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding subscription field %s: %w", name, err)
		}

		current[name] = encoded
	}

	resp, err = c.httpClient.Patch(ctx, path, current)
	if err != nil {
		return nil, fmt.Errorf("updating subscription: %w", err)
	}

	return decodeResponse[msapi.Subscription](resp, "subscription")
}

// UpdateQuantity implements msapi.SubscriptionsClient.UpdateQuantity.
func (c *SubscriptionsClient) UpdateQuantity(
	ctx context.Context,
	customerID, subscriptionID string,
	quantity int,
) (*msapi.Subscription, error) {
	return c.Update(ctx, customerID, subscriptionID, &msapi.SubscriptionUpdate{Quantity: &quantity})
}
