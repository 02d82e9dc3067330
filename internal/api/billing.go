package api

import (
	"context"
	"fmt"

	"github.com/audit-iq-labs/auditiq/internal/domain"
)

// GetEntitlements fetches the current plan, quota, and usage state.
// Payment processing itself is delegated to the external billing backend.
func (c *Client) GetEntitlements(ctx context.Context) (*domain.Entitlements, error) {
	var ent domain.Entitlements
	if err := c.get(ctx, "/api/billing/entitlements", &ent); err != nil {
		return nil, fmt.Errorf("fetch entitlements: %w", err)
	}
	return &ent, nil
}

// CreateCheckoutSession asks the billing backend for a hosted checkout URL
// for the given plan. The URL is opened in the user's browser.
func (c *Client) CreateCheckoutSession(ctx context.Context, organizationID, planID string) (string, error) {
	body := struct {
		OrganizationID string `json:"organization_id"`
		PlanID         string `json:"plan_id"`
	}{organizationID, planID}

	var resp struct {
		CheckoutURL string `json:"checkout_url"`
		URL         string `json:"url"`
	}
	if err := c.post(ctx, "/api/billing/checkout", body, &resp); err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if resp.CheckoutURL != "" {
		return resp.CheckoutURL, nil
	}
	return resp.URL, nil
}

// CreatePortalSession asks the billing backend for a hosted billing portal
// URL for the current organization.
func (c *Client) CreatePortalSession(ctx context.Context, organizationID string) (string, error) {
	body := struct {
		OrganizationID string `json:"organization_id"`
	}{organizationID}

	var resp struct {
		PortalURL string `json:"portal_url"`
		URL       string `json:"url"`
	}
	if err := c.post(ctx, "/api/billing/portal", body, &resp); err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}
	if resp.PortalURL != "" {
		return resp.PortalURL, nil
	}
	return resp.URL, nil
}
