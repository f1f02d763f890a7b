package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/config"
	"bybitmcp/internal/tools"
)

const (
	wantMarketTools   = 14
	wantTradeTools    = 8
	wantAccountTools  = 6
	wantPositionTools = 8
	wantTradingTools  = 14
)

// nullExchange satisfies the interface via embedding; tests here never hit
// the network.
type nullExchange struct {
	bybit.Exchange
}

func (nullExchange) GetServerTime(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"timeSecond":"1"}`), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, tradingEnabled bool) *BybitMCPServer {
	t.Helper()
	cfg := &config.Config{Network: bybit.NetworkTestnet, TradingEnabled: tradingEnabled}
	s, err := newWithDeps(cfg, testLogger(), tools.ToolDependencies{Exchange: nullExchange{}})
	if err != nil {
		t.Fatalf("newWithDeps: %v", err)
	}
	return s
}

func TestCatalogIsComplete(t *testing.T) {
	defs := allToolDefs()

	counts := map[string]int{}
	trading := 0
	names := map[string]bool{}
	for _, d := range defs {
		if names[d.Name] {
			t.Errorf("duplicate tool name %q", d.Name)
		}
		names[d.Name] = true
		counts[d.Category]++
		if d.Trading {
			trading++
		}
		if d.Description == "" {
			t.Errorf("tool %q has no description", d.Name)
		}
		if d.Invoke == nil {
			t.Errorf("tool %q has no binding", d.Name)
		}
		if problems := d.Schema.Problems(); len(problems) > 0 {
			t.Errorf("tool %q schema: %v", d.Name, problems)
		}
	}

	if counts[tools.CategoryMarket] != wantMarketTools {
		t.Errorf("market tools = %d, want %d", counts[tools.CategoryMarket], wantMarketTools)
	}
	if counts[tools.CategoryTrade] != wantTradeTools {
		t.Errorf("trade tools = %d, want %d", counts[tools.CategoryTrade], wantTradeTools)
	}
	if counts[tools.CategoryAccount] != wantAccountTools {
		t.Errorf("account tools = %d, want %d", counts[tools.CategoryAccount], wantAccountTools)
	}
	if counts[tools.CategoryPosition] != wantPositionTools {
		t.Errorf("position tools = %d, want %d", counts[tools.CategoryPosition], wantPositionTools)
	}
	if trading != wantTradingTools {
		t.Errorf("trading-gated tools = %d, want %d", trading, wantTradingTools)
	}
}

func TestMarketToolsAreNeverGated(t *testing.T) {
	for _, d := range allToolDefs() {
		if d.Category == tools.CategoryMarket && d.Trading {
			t.Errorf("market tool %q is trading-gated", d.Name)
		}
		if d.Category == tools.CategoryAccount && d.Trading {
			t.Errorf("account query tool %q is trading-gated", d.Name)
		}
	}
}

func TestTradingDisabledHidesMutatingTools(t *testing.T) {
	s := newTestServer(t, false)

	visible := s.registry.Visible()
	want := wantMarketTools + wantAccountTools + 2 // position queries stay visible
	if len(visible) != want {
		t.Errorf("visible tools = %d, want %d", len(visible), want)
	}
	for _, d := range visible {
		if d.Trading {
			t.Errorf("trading tool %q visible while disabled", d.Name)
		}
	}
}

func TestTradingEnabledExposesFullCatalog(t *testing.T) {
	s := newTestServer(t, true)

	visible := s.registry.Visible()
	if len(visible) != len(allToolDefs()) {
		t.Errorf("visible tools = %d, want %d", len(visible), len(allToolDefs()))
	}
}

func TestHandlerWrapsDispatchEnvelope(t *testing.T) {
	s := newTestServer(t, false)

	result := s.registry.Dispatch(context.Background(), "get_server_time", map[string]any{})
	if result.Status != "ok" {
		t.Fatalf("result = %+v", result.Err)
	}

	// Calling a hidden trading tool by name must produce the disabled
	// envelope, not an unknown-tool error.
	result = s.registry.Dispatch(context.Background(), "place_order", map[string]any{
		"symbol": "BTCUSDT", "side": "Buy", "orderType": "Market", "qty": "1",
	})
	if result.Err == nil || string(result.Err.Kind) != "DISABLED_CAPABILITY" {
		t.Fatalf("result = %+v", result)
	}
}

func TestCatalogResourceText(t *testing.T) {
	s := newTestServer(t, false)

	text := s.catalogText()
	if !strings.Contains(text, "trading enabled: false") {
		t.Errorf("missing gate line:\n%s", text)
	}
	if !strings.Contains(text, "get_tickers") {
		t.Error("catalog missing market tools")
	}
	if strings.Contains(text, "place_order") {
		t.Error("catalog lists hidden trading tool")
	}

	enabled := newTestServer(t, true)
	text = enabled.catalogText()
	if !strings.Contains(text, "place_order (trading)") {
		t.Errorf("enabled catalog missing trading marker:\n%s", text)
	}
}

func TestMCPToolDeclarations(t *testing.T) {
	for _, d := range allToolDefs() {
		tool := d.MCPTool()
		if tool.Name != d.Name {
			t.Errorf("tool name mismatch: %q vs %q", tool.Name, d.Name)
		}
		if tool.InputSchema.Type != "object" {
			t.Errorf("tool %q schema type = %q", d.Name, tool.InputSchema.Type)
		}
		if len(tool.InputSchema.Properties) != len(d.Schema.Fields) {
			t.Errorf("tool %q declares %d properties, schema has %d fields",
				d.Name, len(tool.InputSchema.Properties), len(d.Schema.Fields))
		}
	}
}
