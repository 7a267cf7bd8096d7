package bigip

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/f5ops/mcp-bigip/internal/logging"
)

const (
	// authTokenHeader carries the session token on every authenticated call.
	authTokenHeader = "X-F5-Auth-Token"

	// loginPath is the token-exchange endpoint.
	loginPath = "/mgmt/shared/authn/login"

	tracerName = "github.com/f5ops/mcp-bigip/internal/bigip"
)

// restClient implements Client against the iControl REST API.
type restClient struct {
	cfg    Config
	httpc  *http.Client
	logger *slog.Logger
	tracer trace.Tracer

	// mu guards the cached token for the supported single-caller case; it
	// does not make interleaved operations from multiple goroutines safe.
	mu    sync.Mutex
	token string
}

// ClientOption customizes a Client at construction time.
type ClientOption func(*restClient)

// WithLogger sets the structured logger used by the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *restClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the transport, typically in tests.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *restClient) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// NewClient builds a Client for the given configuration. The configuration
// is validated eagerly; no network call happens until the first operation.
func NewClient(cfg Config, opts ...ClientOption) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}

	c := &restClient{
		cfg: cfg,
		httpc: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   cfg.Timeout,
		},
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Info implements Client.
func (c *restClient) Info() Info {
	authMode := "credentials"
	if c.cfg.Token != "" {
		authMode = "static-token"
	}
	return Info{
		Host:      c.cfg.Host,
		Partition: c.cfg.Partition,
		VerifyTLS: !c.cfg.InsecureSkipVerify,
		AuthMode:  authMode,
	}
}

// Result is the normalized outcome of one successful iControl round trip.
// Exactly one branch is populated: Body holds the decoded-JSON branch when
// the status was success, the body non-empty, and the body valid JSON; in
// every other success case Body is nil and Text carries the raw body (which
// may be empty, as delete endpoints routinely return).
type Result struct {
	StatusCode int
	Body       json.RawMessage
	Text       string
}

// Decode unmarshals the structured branch into out. A Result without a
// structured branch decodes to nothing, matching the delete tolerance: the
// call succeeded even though there is no document to read.
func (r *Result) Decode(out any) error {
	if r.Body == nil || out == nil {
		return nil
	}
	return json.Unmarshal(r.Body, out)
}

// do performs one iControl request with auth and the single refresh-retry
// cycle. path is rooted at the host, e.g. "/mgmt/tm/ltm/rule".
func (c *restClient) do(ctx context.Context, method, path string, payload any) (*Result, error) {
	ctx, span := c.tracer.Start(ctx, "bigip."+method,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("bigip.path", path),
		))
	defer span.End()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, &ValidationError{Field: "body", Reason: err.Error()}
		}
	}

	token, err := c.ensureToken(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "token exchange failed")
		return nil, err
	}

	resp, status, err := c.roundTrip(ctx, method, path, body, token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		if !c.cfg.HasCredentials() {
			span.SetStatus(codes.Error, "unauthorized")
			return nil, &AuthenticationError{
				Reason: fmt.Sprintf("request was rejected with status %d and the static token cannot be refreshed", status),
			}
		}

		c.logger.Debug("refreshing session token after authorization failure",
			logging.Status(fmt.Sprintf("%d", status)), slog.String("path", path))
		token, err = c.refreshToken(ctx)
		if err != nil {
			span.SetStatus(codes.Error, "token refresh failed")
			return nil, err
		}

		resp, status, err = c.roundTrip(ctx, method, path, body, token)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			span.SetStatus(codes.Error, "unauthorized after refresh")
			return nil, &AuthenticationError{
				Reason: fmt.Sprintf("request still rejected with status %d after one token refresh", status),
			}
		}
	}

	span.SetAttributes(attribute.Int("http.status_code", status))

	if status < 200 || status > 299 {
		span.SetStatus(codes.Error, http.StatusText(status))
		return nil, &RemoteOperationError{
			StatusCode: status,
			Method:     method,
			Path:       path,
			Body:       string(resp),
		}
	}

	return normalize(status, resp), nil
}

// roundTrip issues a single HTTP exchange and drains the body. Network
// failures come back as TransportError; status interpretation is the
// caller's concern.
func (c *restClient) roundTrip(ctx context.Context, method, path string, body []byte, token string) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Host+path, reader)
	if err != nil {
		return nil, 0, &ValidationError{Field: "path", Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authTokenHeader, token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &TransportError{Method: method, Path: path, Err: err}
	}
	return data, resp.StatusCode, nil
}

// normalize applies the deterministic two-branch rule: a non-empty body that
// parses as JSON is structured; anything else on a success status is the raw
// branch. Delete endpoints advertise application/json and then send nothing,
// so a strict decode-or-fail policy here would turn successful deletes into
// false failures.
func normalize(status int, body []byte) *Result {
	result := &Result{StatusCode: status}
	if len(body) > 0 && json.Valid(body) {
		result.Body = json.RawMessage(body)
		return result
	}
	result.Text = string(body)
	return result
}

// ensureToken returns a token usable for the next request: the static token
// when one was configured, the cached session token when present, or a
// freshly minted one.
func (c *restClient) ensureToken(ctx context.Context) (string, error) {
	if c.cfg.Token != "" {
		return c.cfg.Token, nil
	}

	c.mu.Lock()
	cached := c.token
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}
	return c.refreshToken(ctx)
}

// refreshToken discards any cached token and performs the login exchange.
func (c *restClient) refreshToken(ctx context.Context) (string, error) {
	if !c.cfg.HasCredentials() {
		return "", &AuthenticationError{Reason: "no credentials available to mint a token"}
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.logger.Debug("minted session token",
		logging.Host(c.cfg.Host), slog.String("token", logging.SanitizeToken(token)))
	return token, nil
}

// fetchToken performs the credentials-for-token exchange.
func (c *restClient) fetchToken(ctx context.Context) (string, error) {
	ctx, span := c.tracer.Start(ctx, "bigip.login")
	defer span.End()

	payload, err := json.Marshal(map[string]string{
		"username":          c.cfg.Username,
		"password":          c.cfg.Password,
		"loginProviderName": c.cfg.LoginProvider,
	})
	if err != nil {
		return "", &AuthenticationError{Reason: "encoding login request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+loginPath, bytes.NewReader(payload))
	if err != nil {
		return "", &AuthenticationError{Reason: "building login request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", &TransportError{Method: http.MethodPost, Path: loginPath, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Method: http.MethodPost, Path: loginPath, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, "login rejected")
		return "", &AuthenticationError{
			Reason: fmt.Sprintf("login endpoint returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	var login struct {
		Token struct {
			Token string `json:"token"`
		} `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		return "", &AuthenticationError{Reason: "decoding login response", Err: err}
	}
	if login.Token.Token == "" {
		return "", &AuthenticationError{Reason: "login response carries no token field"}
	}
	return login.Token.Token, nil
}

// partitionOrDefault returns the override partition when set.
func (c *restClient) partitionOrDefault(partition string) string {
	if partition != "" {
		return partition
	}
	return c.cfg.Partition
}
