package blackbaud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"destination-sync/core/fault"
	"destination-sync/core/metrics"
	"destination-sync/core/reconcile"
	"destination-sync/core/transport"
)

const destination = "blackbaud"

// Fault codes raised by the Raiser's Edge NXT destination.
const (
	CodeMultipleRecords   = "MULTIPLE_EXISTING_RECORDS"
	CodeUnexpectedCount   = "UNEXPECTED_RECORD_COUNT"
	CodeCreateConstituent = "CREATE_CONSTITUENT_ERROR"
	CodeUpdateConstituent = "UPDATE_CONSTITUENT_ERROR"
	CodeCreateGift        = "CREATE_GIFT_ERROR"
)

// Search fields accepted by the constituent search.
const (
	SearchLookupID     = "lookup_id"
	SearchEmailAddress = "email_address"
)

// Client calls the SKY constituent and gift APIs.
type Client struct {
	transport       transport.Transport
	baseURL         string
	giftBaseURL     string
	token           string
	subscriptionKey string
	metrics         *metrics.Metrics
}

// NewClient creates a SKY API client.
func NewClient(t transport.Transport, cfg Config, m *metrics.Metrics) *Client {
	return &Client{
		transport:       t,
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		giftBaseURL:     strings.TrimRight(cfg.GiftBaseURL, "/"),
		token:           cfg.AccessToken,
		subscriptionKey: cfg.SubscriptionKey,
		metrics:         m,
	}
}

// SearchConstituent returns the id of the single constituent matching text,
// or "" when none does.
func (c *Client) SearchConstituent(ctx context.Context, s Settings, field, text string) (string, error) {
	u := fmt.Sprintf("%s/constituents/search?search_field=%s&search_text=%s", c.baseURL, field, url.QueryEscape(text))

	var out searchResponse
	if err := c.call(ctx, s, http.MethodGet, u, nil, &out, "returned when searching for constituent", fault.CodeUnexpected); err != nil {
		return "", err
	}

	switch {
	case out.Count == 0:
		return "", nil
	case out.Count == 1 && len(out.Value) == 1:
		return out.Value[0].ID, nil
	case out.Count > 1:
		return "", fault.Fatal(CodeMultipleRecords, "Multiple records returned for given traits", http.StatusBadRequest)
	default:
		return "", fault.Fatal(CodeUnexpectedCount, "Unexpected record count for given traits", http.StatusInternalServerError)
	}
}

// CreateConstituent creates a constituent and returns its id.
func (c *Client) CreateConstituent(ctx context.Context, s Settings, body createConstituentBody) (string, error) {
	var out createdResponse
	if err := c.call(ctx, s, http.MethodPost, c.baseURL+"/constituents", body, &out, "occurred when creating constituent", CodeCreateConstituent); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateConstituent patches a constituent's top-level fields.
func (c *Client) UpdateConstituent(ctx context.Context, s Settings, id string, body constituentFields) error {
	u := fmt.Sprintf("%s/constituents/%s", c.baseURL, url.PathEscape(id))
	return c.call(ctx, s, http.MethodPatch, u, body, nil, "occurred when updating constituent", CodeUpdateConstituent)
}

// ListSubRecords returns every record of a kind, including inactive ones, in API order.
func (c *Client) ListSubRecords(ctx context.Context, s Settings, constituentID string, k subRecordKind) ([]reconcile.Fields, error) {
	u := fmt.Sprintf("%s/constituents/%s/%s?include_inactive=true", c.baseURL, url.PathEscape(constituentID), k.list)

	var out listResponse
	if err := c.call(ctx, s, http.MethodGet, u, nil, &out, "occurred when updating constituent "+k.label, CodeUpdateConstituent); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// CreateSubRecord creates a record of a kind. The body carries the constituent id.
func (c *Client) CreateSubRecord(ctx context.Context, s Settings, k subRecordKind, body reconcile.Fields) error {
	u := fmt.Sprintf("%s/%s", c.baseURL, k.resource)
	resp, err := c.send(ctx, s, http.MethodPost, u, body, "occurred when updating constituent "+k.label)
	if err != nil {
		return err
	}
	// A concurrent delivery may have created the same record.
	if fault.AlreadyExists(resp.Status, string(resp.Body)) {
		return nil
	}
	return decode(resp, nil, "occurred when updating constituent "+k.label, CodeUpdateConstituent)
}

// UpdateSubRecord patches a record of a kind.
func (c *Client) UpdateSubRecord(ctx context.Context, s Settings, k subRecordKind, id string, body reconcile.Fields) error {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, k.resource, url.PathEscape(id))
	return c.call(ctx, s, http.MethodPatch, u, body, nil, "occurred when updating constituent "+k.label, CodeUpdateConstituent)
}

// CreateGift creates a gift and returns its id.
func (c *Client) CreateGift(ctx context.Context, s Settings, body giftBody) (string, error) {
	var out createdResponse
	if err := c.call(ctx, s, http.MethodPost, c.giftBaseURL+"/gifts", body, &out, "occurred when creating gift", CodeCreateGift); err != nil {
		return "", err
	}
	return out.ID, nil
}

// call sends a request and decodes a successful response into out.
// A failed status becomes a fault whose message reads "<status> error <what>".
func (c *Client) call(ctx context.Context, s Settings, method, u string, body, out any, what, code string) error {
	resp, err := c.send(ctx, s, method, u, body, what)
	if err != nil {
		return err
	}
	return decode(resp, out, what, code)
}

func (c *Client) send(ctx context.Context, s Settings, method, u string, body any, what string) (*transport.Response, error) {
	token := s.AccessToken
	if token == "" {
		token = c.token
	}
	key := s.SubscriptionKey
	if key == "" {
		key = c.subscriptionKey
	}

	resp, err := c.transport.Send(ctx, transport.Request{
		Method: method,
		URL:    u,
		Headers: map[string]string{
			"Authorization":           "Bearer " + token,
			"Bb-Api-Subscription-Key": key,
		},
		Body: body,
	})
	if err != nil {
		c.metrics.ObserveStatus(destination, 0)
		return nil, fault.Retryable(fmt.Sprintf("request error %s: %v", what, err), http.StatusServiceUnavailable)
	}
	c.metrics.ObserveStatus(destination, resp.Status)
	return resp, nil
}

func decode(resp *transport.Response, out any, what, code string) error {
	if err := fault.FromStatus(resp.Status, code, fmt.Sprintf("%d error %s", resp.Status, what)); err != nil {
		return err
	}
	if out != nil {
		return resp.JSON(out)
	}
	return nil
}
