package hubspot

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

const destination = "hubspot"

// Fault codes raised by the HubSpot destination.
const (
	CodeSchemaMissing   = "SCHEMA_NOT_FOUND"
	CodeCreateSchema    = "CREATE_SCHEMA_ERROR"
	CodeUpdateSchema    = "UPDATE_SCHEMA_ERROR"
	CodeSendEvent       = "SEND_EVENT_ERROR"
	CodeSyncModeBlocked = "SYNC_MODE_FORBIDS_CHANGE"
	CodeArchived        = "ARCHIVED_PROPERTY"
)

// Client calls the HubSpot custom events API.
type Client struct {
	transport transport.Transport
	baseURL   string
	token     string
	metrics   *metrics.Metrics
}

// NewClient creates a client for the configured HubSpot account.
func NewClient(t transport.Transport, cfg Config, m *metrics.Metrics) *Client {
	return &Client{
		transport: t,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		token:     cfg.AccessToken,
		metrics:   m,
	}
}

// GetEventDefinition fetches an event definition with its properties.
// A missing or archived definition returns nil without error. A success
// status other than 200 carries no definition and is a fatal fault.
func (c *Client) GetEventDefinition(ctx context.Context, s Settings, name string) (*eventDefinition, error) {
	u := fmt.Sprintf("%s/events/v3/event-definitions/%s/?includeProperties=true", c.baseURL, url.PathEscape(name))
	resp, err := c.send(ctx, s, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.Status == http.StatusOK:
		var def eventDefinition
		if err := resp.JSON(&def); err != nil {
			return nil, err
		}
		if def.Archived {
			return nil, nil
		}
		return &def, nil
	case resp.Status == http.StatusBadRequest || resp.Status == http.StatusNotFound:
		return nil, nil
	case fault.IsSuccess(resp.Status):
		msg := fmt.Sprintf("event definition lookup for %s returned status %d without a definition", name, resp.Status)
		return nil, fault.Fatal(fault.CodeUnexpected, msg, resp.Status)
	default:
		msg := fmt.Sprintf("failed to fetch event definition %s: %s", name, remoteMessage(resp))
		return nil, fault.FromStatus(resp.Status, fault.CodeUnexpected, msg)
	}
}

// CreateEventDefinition creates an event definition with every property of schema.
// It returns the created definition.
func (c *Client) CreateEventDefinition(ctx context.Context, s Settings, schema reconcile.Schema) (*eventDefinition, error) {
	body := createEventDefinitionRequest{
		Label:         schema.Name,
		Name:          schema.Name,
		Description:   schema.Name + " - (created by destination-sync)",
		PrimaryObject: schema.PrimaryObjectType,
	}
	for _, name := range sortedNames(schema.Properties) {
		def, err := propertyDefinitionFor(name, schema.Properties[name])
		if err != nil {
			return nil, err
		}
		body.PropertyDefinitions = append(body.PropertyDefinitions, def)
	}

	resp, err := c.send(ctx, s, http.MethodPost, c.baseURL+"/events/v3/event-definitions", body)
	if err != nil {
		return nil, err
	}

	if fault.IsSuccess(resp.Status) {
		var def eventDefinition
		if err := resp.JSON(&def); err != nil {
			return nil, err
		}
		if def.FullyQualifiedName != "" {
			return &def, nil
		}
		// Accepted without a body: read the definition back for its identifier.
		fetched, err := c.GetEventDefinition(ctx, s, schema.Name)
		if err != nil {
			return nil, err
		}
		if fetched == nil || fetched.FullyQualifiedName == "" {
			return nil, fault.Retryable(fmt.Sprintf("event definition %s accepted but not yet available", schema.Name), http.StatusServiceUnavailable)
		}
		return fetched, nil
	}

	remote := remoteMessage(resp)
	msg := fmt.Sprintf("failed to create event definition %s: %s", schema.Name, remote)
	// A concurrent delivery won the race; the next attempt will find the definition.
	if fault.AlreadyExists(resp.Status, remote) {
		return nil, fault.Retryable(msg, resp.Status)
	}
	return nil, fault.FromStatus(resp.Status, CodeCreateSchema, msg)
}

// CreatePropertyDefinition adds a property to an existing event definition.
// A conflict reporting that the property already exists counts as success.
func (c *Client) CreatePropertyDefinition(ctx context.Context, s Settings, fqn, name string, d reconcile.PropertyDescriptor) error {
	def, err := propertyDefinitionFor(name, d)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/events/v3/event-definitions/%s/property", c.baseURL, url.PathEscape(fqn))
	resp, err := c.send(ctx, s, http.MethodPost, u, def)
	if err != nil {
		return err
	}
	if fault.IsSuccess(resp.Status) {
		return nil
	}

	remote := remoteMessage(resp)
	if fault.AlreadyExists(resp.Status, remote) {
		return nil
	}
	msg := fmt.Sprintf("failed to create property %s: %s", name, remote)
	return fault.FromStatus(resp.Status, CodeUpdateSchema, msg)
}

// SendEvent records an event occurrence.
func (c *Client) SendEvent(ctx context.Context, s Settings, ev eventCompletion) (int, error) {
	resp, err := c.send(ctx, s, http.MethodPost, c.baseURL+"/events/v3/send", ev)
	if err != nil {
		return 0, err
	}
	if fault.IsSuccess(resp.Status) {
		return resp.Status, nil
	}
	msg := fmt.Sprintf("failed to send event %s: %s", ev.EventName, remoteMessage(resp))
	return resp.Status, fault.FromStatus(resp.Status, CodeSendEvent, msg)
}

func (c *Client) send(ctx context.Context, s Settings, method, u string, body any) (*transport.Response, error) {
	token := s.AccessToken
	if token == "" {
		token = c.token
	}

	resp, err := c.transport.Send(ctx, transport.Request{
		Method: method,
		URL:    u,
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
		},
		Body: body,
	})
	if err != nil {
		c.metrics.ObserveStatus(destination, 0)
		return nil, fault.Retryable(fmt.Sprintf("hubspot request %s %s failed: %v", method, u, err), http.StatusServiceUnavailable)
	}
	c.metrics.ObserveStatus(destination, resp.Status)
	return resp, nil
}

// toSchema converts a remote definition into a known schema named name.
// Archived remote properties are skipped unless desired asks for them.
func (d *eventDefinition) toSchema(name string, desired reconcile.Schema) (reconcile.Schema, error) {
	known := reconcile.Schema{
		Name:              name,
		PrimaryObjectType: d.PrimaryObject,
		Properties:        make(map[string]reconcile.PropertyDescriptor, len(d.Properties)),
	}
	for _, p := range d.Properties {
		if p.Archived {
			if _, wanted := desired.Properties[p.Name]; wanted {
				return reconcile.Schema{}, fault.Validationf(CodeArchived,
					"property %s of event %s is archived and cannot receive values", p.Name, name)
			}
			continue
		}
		known.Properties[p.Name] = descriptorFor(p.Type)
	}
	return known, nil
}

func descriptorFor(remoteType string) reconcile.PropertyDescriptor {
	switch strings.ToLower(remoteType) {
	case "number":
		return reconcile.PropertyDescriptor{Type: reconcile.TypeNumber}
	case "enumeration", "bool", "boolean":
		return reconcile.PropertyDescriptor{Type: reconcile.TypeBoolean}
	case "datetime":
		return reconcile.PropertyDescriptor{Type: reconcile.TypeString, StringFormat: reconcile.FormatDatetime}
	case "date":
		return reconcile.PropertyDescriptor{Type: reconcile.TypeString, StringFormat: reconcile.FormatDate}
	default:
		return reconcile.PropertyDescriptor{Type: reconcile.TypeString, StringFormat: reconcile.FormatString}
	}
}

func propertyDefinitionFor(name string, d reconcile.PropertyDescriptor) (propertyDefinition, error) {
	def := propertyDefinition{Name: name, Label: name, Description: name}

	switch d.Type {
	case reconcile.TypeNumber:
		def.Type = "number"
	case reconcile.TypeObject:
		def.Type = "string"
	case reconcile.TypeBoolean:
		def.Type = "enumeration"
		def.Options = []propertyOption{
			{Label: "true", Value: true, Description: "True", DisplayOrder: 1},
			{Label: "false", Value: false, Description: "False", DisplayOrder: 2},
		}
	case reconcile.TypeString:
		if d.IsTemporal() {
			def.Type = "datetime"
		} else {
			def.Type = "string"
		}
	default:
		return propertyDefinition{}, fault.Validationf(fault.CodeTypeMismatch, "property %s has unsupported type %q", name, d.Type)
	}
	return def, nil
}

func remoteMessage(resp *transport.Response) string {
	var body errorResponse
	if err := resp.JSON(&body); err == nil && body.Message != "" {
		return body.Message
	}
	if len(resp.Body) > 0 && len(resp.Body) < 512 {
		return fmt.Sprintf("%d %s", resp.Status, strings.TrimSpace(string(resp.Body)))
	}
	return fmt.Sprintf("%d %s", resp.Status, http.StatusText(resp.Status))
}
