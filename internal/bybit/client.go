// Package bybit is a thin client for the Bybit v5 REST API. It exposes one
// method per tool in the catalog, signs private requests, and normalizes
// failures into *Error so callers can classify them. It holds no state beyond
// the connection pool owned by its http.Client.
package bybit

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Network selects which upstream environment the client talks to.
type Network string

const (
	NetworkLive    Network = "live"
	NetworkTestnet Network = "testnet"
)

// BaseURL returns the REST endpoint for the network.
func (n Network) BaseURL() string {
	if n == NetworkTestnet {
		return "https://api-testnet.bybit.com"
	}
	return "https://api.bybit.com"
}

const defaultRecvWindow = "5000"

// Config carries everything needed to construct a Client.
type Config struct {
	Network   Network
	APIKey    string
	APISecret string

	// BaseURL overrides the network endpoint; used by tests.
	BaseURL string
	// HTTPClient overrides the default client (10s timeout).
	HTTPClient *http.Client
}

// Client issues signed requests against one network. It is safe for
// concurrent use; all fields are set at construction and never mutated.
type Client struct {
	baseURL    string
	key        string
	secret     string
	recvWindow string
	http       *http.Client
}

// NewClient builds a client bound to cfg.Network. Credentials may be empty
// for public market-data endpoints.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = cfg.Network.BaseURL()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		key:        cfg.APIKey,
		secret:     cfg.APISecret,
		recvWindow: defaultRecvWindow,
		http:       httpClient,
	}
}

// envelope is the uniform v5 response wrapper.
type envelope struct {
	RetCode int64           `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
	Time    int64           `json:"time"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, body map[string]any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("bybit: encode %s body: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, nil, payload)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) (json.RawMessage, error) {
	rawQuery := ""
	if len(query) > 0 {
		rawQuery = query.Encode()
	}
	u := c.baseURL + path
	if rawQuery != "" {
		u += "?" + rawQuery
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("bybit: build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.key != "" {
		signPayload := rawQuery
		if payload != nil {
			signPayload = string(payload)
		}
		c.sign(req, signPayload)
	}

	reqID := uuid.NewString()
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("exchange request failed", "id", reqID, "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("bybit: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bybit: read %s %s response: %w", method, path, err)
	}

	var env envelope
	if unmarshalErr := json.Unmarshal(raw, &env); unmarshalErr != nil && resp.StatusCode < 400 {
		return nil, fmt.Errorf("bybit: decode %s %s response: %w", method, path, unmarshalErr)
	}
	if resp.StatusCode >= 400 {
		msg := env.RetMsg
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Status: resp.StatusCode, RetCode: env.RetCode, RetMsg: msg}
	}
	if env.RetCode != 0 {
		return nil, &Error{Status: resp.StatusCode, RetCode: env.RetCode, RetMsg: env.RetMsg}
	}

	slog.Debug("exchange request",
		"id", reqID, "method", method, "path", path,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return env.Result, nil
}

// sign sets the v5 authentication headers: the signature is
// HMAC-SHA256(secret, timestamp + apiKey + recvWindow + queryString|body).
func (c *Client) sign(req *http.Request, payload string) {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(ts + c.key + c.recvWindow + payload))
	req.Header.Set("X-BAPI-API-KEY", c.key)
	req.Header.Set("X-BAPI-TIMESTAMP", ts)
	req.Header.Set("X-BAPI-RECV-WINDOW", c.recvWindow)
	req.Header.Set("X-BAPI-SIGN", hex.EncodeToString(mac.Sum(nil)))
}

// setIf adds key=val to the query unless val is empty.
func setIf(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

// setInt adds key=v unless v is zero. All integer query parameters on this
// API are at least 1 when meaningful.
func setInt(q url.Values, key string, v int64) {
	if v != 0 {
		q.Set(key, strconv.FormatInt(v, 10))
	}
}

// setIntPtr adds key=*v when v is non-nil; used where zero is a legal value.
func setIntPtr(q url.Values, key string, v *int64) {
	if v != nil {
		q.Set(key, strconv.FormatInt(*v, 10))
	}
}

// putIf adds key=val to a POST body unless val is empty.
func putIf(body map[string]any, key, val string) {
	if val != "" {
		body[key] = val
	}
}

// putIntPtr adds key=*v when v is non-nil.
func putIntPtr(body map[string]any, key string, v *int64) {
	if v != nil {
		body[key] = *v
	}
}

// putBoolPtr adds key=*v when v is non-nil.
func putBoolPtr(body map[string]any, key string, v *bool) {
	if v != nil {
		body[key] = *v
	}
}
