package bybit

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, key, secret string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:     key,
		APISecret:  secret,
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
}

func okBody(result string) string {
	return `{"retCode":0,"retMsg":"OK","result":` + result + `,"time":1715000000000}`
}

func TestGetTickersBuildsQuery(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		io.WriteString(w, okBody(`{"category":"linear","list":[]}`))
	}, "", "")

	_, err := c.GetTickers(context.Background(), GetTickersParams{
		Category: "linear",
		Symbol:   "BTCUSDT",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v5/market/tickers" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "category=linear&symbol=BTCUSDT" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestGetReturnsResultPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, okBody(`{"timeSecond":"1715000000"}`))
	}, "", "")

	raw, err := c.GetServerTime(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var result map[string]string
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("payload is not the result object: %v", err)
	}
	if result["timeSecond"] != "1715000000" {
		t.Errorf("result = %v", result)
	}
}

func TestPostSignsRequest(t *testing.T) {
	const key, secret = "test-key", "test-secret"
	var gotHeaders http.Header
	var gotBody []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, okBody(`{"orderId":"1"}`))
	}, key, secret)

	_, err := c.PlaceOrder(context.Background(), PlaceOrderParams{
		Category:  "linear",
		Symbol:    "BTCUSDT",
		Side:      "Buy",
		OrderType: "Market",
		Qty:       "0.001",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotHeaders.Get("X-BAPI-API-KEY") != key {
		t.Errorf("api key header = %q", gotHeaders.Get("X-BAPI-API-KEY"))
	}
	ts := gotHeaders.Get("X-BAPI-TIMESTAMP")
	recv := gotHeaders.Get("X-BAPI-RECV-WINDOW")
	if ts == "" || recv != "5000" {
		t.Fatalf("timestamp = %q, recvWindow = %q", ts, recv)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + key + recv + string(gotBody)))
	want := hex.EncodeToString(mac.Sum(nil))
	if got := gotHeaders.Get("X-BAPI-SIGN"); got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}

	var body map[string]any
	if err := json.Unmarshal(gotBody, &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["qty"] != "0.001" {
		t.Errorf("body qty = %v", body["qty"])
	}
	if _, present := body["price"]; present {
		t.Error("empty price was sent")
	}
}

func TestPublicRequestsAreUnsigned(t *testing.T) {
	var signed bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		signed = r.Header.Get("X-BAPI-SIGN") != ""
		io.WriteString(w, okBody(`{}`))
	}, "", "")

	if _, err := c.GetServerTime(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed {
		t.Error("request was signed without credentials")
	}
}

func TestRetCodeErrorKeepsMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"retCode":110007,"retMsg":"ab not enough for new order","result":{},"time":1}`)
	}, "", "")

	_, err := c.GetServerTime(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.RetCode != 110007 {
		t.Errorf("retCode = %d", apiErr.RetCode)
	}
	if apiErr.RetMsg != "ab not enough for new order" {
		t.Errorf("retMsg = %q", apiErr.RetMsg)
	}
	if Retryable(err) {
		t.Error("business rejection must not be retryable")
	}
}

func TestTransientRetCodeIsRetryable(t *testing.T) {
	// 10006 is the exchange's rate limit code.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"retCode":10006,"retMsg":"Too many visits","result":{},"time":1}`)
	}, "", "")

	_, err := c.GetServerTime(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !Retryable(err) {
		t.Error("rate limit must be retryable")
	}
}

func TestServerErrorIsRetryable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "", "")

	_, err := c.GetServerTime(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d", apiErr.Status)
	}
	if !Retryable(err) {
		t.Error("502 must be retryable")
	}
}

func TestClientErrorIsNotRetryable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"retCode":10003,"retMsg":"API key is invalid","result":{}}`)
	}, "k", "s")

	_, err := c.GetServerTime(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.RetMsg != "API key is invalid" {
		t.Errorf("retMsg = %q", apiErr.RetMsg)
	}
	if Retryable(err) {
		t.Error("auth failure must not be retryable")
	}
}

func TestContextTimeoutIsRetryable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, okBody(`{}`))
	}, "", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.GetServerTime(ctx)
	if err == nil {
		t.Fatal("expected timeout")
	}
	if !Retryable(err) {
		t.Errorf("timeout must be retryable: %v", err)
	}
}

func TestOpenInterestRenamesInterval(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, okBody(`{}`))
	}, "", "")

	_, err := c.GetOpenInterest(context.Background(), GetOpenInterestParams{
		Category: "linear",
		Symbol:   "BTCUSDT",
		Interval: "5min",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "category=linear&intervalTime=5min&symbol=BTCUSDT" {
		t.Errorf("query = %q, want intervalTime rename", gotQuery)
	}
}

func TestLongShortRatioRenamesInterval(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, okBody(`{}`))
	}, "", "")

	_, err := c.GetLongShortRatio(context.Background(), GetLongShortRatioParams{
		Category: "linear",
		Symbol:   "BTCUSDT",
		Interval: "1h",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "category=linear&period=1h&symbol=BTCUSDT" {
		t.Errorf("query = %q, want period rename", gotQuery)
	}
}
