package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1/"
	sessionsPath   = "realtime/sessions"
)

// ErrInvalidResponse is returned when the upstream answers 2xx with a body that is not JSON
var ErrInvalidResponse = errors.New("upstream returned a non-JSON body")

// ClientOptions configures the upstream session client
type ClientOptions struct {
	APIKey       string        // Secret credential, never forwarded to the browser
	BaseURL      string        // Upstream API root, defaults to DefaultBaseURL
	Organization string        // Optional OpenAI-Organization header
	Project      string        // Optional OpenAI-Project header
	Timeout      time.Duration // Per-request timeout, zero leaves the client default
	Session      SessionConfig // Model and voice sent with every request
}

// Client mints ephemeral realtime session tokens
type Client struct {
	client  openai.Client
	session SessionConfig
}

// NewClient creates a client that issues one upstream request per call with no retries
func NewClient(opts ClientOptions, extra ...option.RequestOption) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// openai.NewClient applies OPENAI_* process variables first; every one of
	// them is overridden here so only the passed options reach the upstream
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithWebhookSecret(""),
		headerOption("OpenAI-Organization", opts.Organization, option.WithOrganization),
		headerOption("OpenAI-Project", opts.Project, option.WithProject),
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}
	reqOpts = append(reqOpts, extra...)

	return &Client{
		client:  openai.NewClient(reqOpts...),
		session: opts.Session.Merge(DefaultSessionConfig()),
	}
}

// headerOption sets an optional header, or clears it when value is empty
func headerOption(header, value string, with func(string) option.RequestOption) option.RequestOption {
	if value != "" {
		return with(value)
	}
	return option.WithHeaderDel(header)
}

// Session returns the preset sent upstream
func (c *Client) Session() SessionConfig {
	return c.session
}

// NewSession requests a realtime session and returns the upstream body untouched
func (c *Client) NewSession(ctx context.Context) (json.RawMessage, error) {
	var body []byte
	if err := c.client.Post(ctx, sessionsPath, c.session, &body); err != nil {
		return nil, fmt.Errorf("failed to create realtime session: %w", err)
	}

	if !json.Valid(body) {
		return nil, ErrInvalidResponse
	}

	return json.RawMessage(body), nil
}
