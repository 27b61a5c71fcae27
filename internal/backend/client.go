// Package backend wraps the billing backend's REST API. The backend is the
// source of truth for subscriptions, plans, orders, credit packages, brand
// message generation and scrape execution; this client only moves JSON.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"brandoraBack/internal/models"
)

// Client is a minimal billing backend API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient constructs a backend client for the given base URL.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// APIError carries the backend's error payload. Message is surfaced to the
// user verbatim when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend: unexpected status %d", e.StatusCode)
}

type bearerKey struct{}

// WithToken returns a context carrying the caller's bearer token; every
// request made with that context is authenticated with it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return models.ErrNoRecord
	}
	if resp.StatusCode >= 300 {
		var payload struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CurrentSubscription fetches the caller's subscription. The backend's "no
// subscription" sentinel decodes to a record with an empty id.
func (c *Client) CurrentSubscription(ctx context.Context) (models.Subscription, error) {
	var sub models.Subscription
	err := c.do(ctx, http.MethodGet, "/subscription/current", nil, &sub)
	return sub, err
}

// ChangePlan switches the caller's subscription to planID.
func (c *Client) ChangePlan(ctx context.Context, planID string) (models.Subscription, error) {
	var sub models.Subscription
	err := c.do(ctx, http.MethodPost, "/subscription/change-plan", map[string]string{"planId": planID}, &sub)
	return sub, err
}

// Plans lists plans; includeInactive is an admin-only filter.
func (c *Client) Plans(ctx context.Context, includeInactive bool) ([]models.Plan, error) {
	path := "/plan"
	if includeInactive {
		path += "?includeInactive=true"
	}
	var plans []models.Plan
	err := c.do(ctx, http.MethodGet, path, nil, &plans)
	return plans, err
}

// PublicPlans is the unauthenticated fallback plan listing.
func (c *Client) PublicPlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := c.do(ctx, http.MethodGet, "/plan/public", nil, &plans)
	return plans, err
}

func (c *Client) PlanByID(ctx context.Context, id string) (models.Plan, error) {
	var plan models.Plan
	err := c.do(ctx, http.MethodGet, "/plan/"+url.PathEscape(id), nil, &plan)
	return plan, err
}

func (c *Client) CreatePlan(ctx context.Context, in models.PlanInput) (models.Plan, error) {
	var plan models.Plan
	err := c.do(ctx, http.MethodPost, "/plan", in, &plan)
	return plan, err
}

func (c *Client) UpdatePlan(ctx context.Context, id string, in models.PlanInput) (models.Plan, error) {
	var plan models.Plan
	err := c.do(ctx, http.MethodPut, "/plan/"+url.PathEscape(id), in, &plan)
	return plan, err
}

func (c *Client) DeletePlan(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/plan/"+url.PathEscape(id), nil, nil)
}

// PendingOrders lists the caller's not-yet-completed orders.
func (c *Client) PendingOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, "/order/pending", nil, &orders)
	return orders, err
}

// InitiateOrder starts a purchase of planID.
func (c *Client) InitiateOrder(ctx context.Context, planID string) (models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/order/initiate", map[string]string{"planId": planID}, &order)
	return order, err
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPost, "/order/"+url.PathEscape(orderID)+"/cancel", nil, nil)
}

func (c *Client) RetryPayment(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/order/"+url.PathEscape(orderID)+"/retry-payment", nil, &order)
	return order, err
}

// CreateCheckout returns the payment provider's checkout URL for an order.
func (c *Client) CreateCheckout(ctx context.Context, orderID string) (string, error) {
	var resp struct {
		CheckoutURL string `json:"checkout_url"`
	}
	err := c.do(ctx, http.MethodPost, "/order/"+url.PathEscape(orderID)+"/checkout", nil, &resp)
	return resp.CheckoutURL, err
}

func (c *Client) CreditPackages(ctx context.Context) ([]models.CreditPackage, error) {
	var packs []models.CreditPackage
	err := c.do(ctx, http.MethodGet, "/credit-package", nil, &packs)
	return packs, err
}

func (c *Client) InitiateCreditOrder(ctx context.Context, packageID string) (models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/credit-package/initiate-order", map[string]string{"packageId": packageID}, &order)
	return order, err
}

func (c *Client) CreateCreditPackage(ctx context.Context, in models.CreditPackageInput) (models.CreditPackage, error) {
	var pack models.CreditPackage
	err := c.do(ctx, http.MethodPost, "/credit-package", in, &pack)
	return pack, err
}

func (c *Client) UpdateCreditPackage(ctx context.Context, id string, in models.CreditPackageInput) (models.CreditPackage, error) {
	var pack models.CreditPackage
	err := c.do(ctx, http.MethodPut, "/credit-package/"+url.PathEscape(id), in, &pack)
	return pack, err
}

func (c *Client) DeleteCreditPackage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/credit-package/"+url.PathEscape(id), nil, nil)
}

// BrandMessages lists generated messages for a project.
func (c *Client) BrandMessages(ctx context.Context, projectID string) ([]models.BrandMessage, error) {
	var msgs []models.BrandMessage
	err := c.do(ctx, http.MethodGet, "/brand-message?projectId="+url.QueryEscape(projectID), nil, &msgs)
	return msgs, err
}

// GenerateBrandMessage asks the backend to generate content; the backend
// performs credit accounting.
func (c *Client) GenerateBrandMessage(ctx context.Context, req models.GenerateBrandMessageRequest) (models.BrandMessage, error) {
	var msg models.BrandMessage
	err := c.do(ctx, http.MethodPost, "/brand-message/generate", req, &msg)
	return msg, err
}

func (c *Client) CreateProject(ctx context.Context, draft models.ProjectDraft) (models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodPost, "/project", draft, &project)
	return project, err
}

func (c *Client) CreditUsage(ctx context.Context) (models.CreditUsage, error) {
	var usage models.CreditUsage
	err := c.do(ctx, http.MethodGet, "/credit-usage/summary", nil, &usage)
	return usage, err
}

// TriggerScrape asks the scraping backend to execute a manifest run.
func (c *Client) TriggerScrape(ctx context.Context, manifestID, jobID string) error {
	body := map[string]string{"manifestId": manifestID, "jobId": jobID}
	return c.do(ctx, http.MethodPost, "/scrape/trigger", body, nil)
}
