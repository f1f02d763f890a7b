package trade

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

type orderRecorder struct {
	bybit.Exchange
	place   *bybit.PlaceOrderParams
	trigger *bybit.PlaceTriggerOrderParams
	batch   *bybit.BatchOrderParams
}

func (r *orderRecorder) PlaceOrder(_ context.Context, p bybit.PlaceOrderParams) (json.RawMessage, error) {
	r.place = &p
	return json.RawMessage(`{"orderId":"1"}`), nil
}

func (r *orderRecorder) PlaceTriggerOrder(_ context.Context, p bybit.PlaceTriggerOrderParams) (json.RawMessage, error) {
	r.trigger = &p
	return json.RawMessage(`{"orderId":"2"}`), nil
}

func (r *orderRecorder) BatchPlaceOrder(_ context.Context, p bybit.BatchOrderParams) (json.RawMessage, error) {
	r.batch = &p
	return json.RawMessage(`{"list":[]}`), nil
}

func invoke(t *testing.T, def tools.Definition, ex bybit.Exchange, raw map[string]any) (json.RawMessage, error) {
	t.Helper()
	normalized, err := def.Schema.Validate(raw)
	require.NoError(t, err, "arguments should validate")
	return def.Invoke(context.Background(), tools.ToolDependencies{Exchange: ex}, normalized)
}

func TestPlaceOrderBinding(t *testing.T) {
	rec := &orderRecorder{}
	_, err := invoke(t, PlaceOrder(), rec, map[string]any{
		"symbol":    "BTCUSDT",
		"side":      "Buy",
		"orderType": "Limit",
		"qty":       0.5,
		"price":     "50000",
	})
	require.NoError(t, err)
	require.NotNil(t, rec.place)

	assert.Equal(t, "linear", rec.place.Category, "default category")
	assert.Equal(t, "0.5", rec.place.Qty, "qty normalized to string")
	assert.Equal(t, "50000", rec.place.Price)
	assert.Equal(t, "GTC", rec.place.TimeInForce, "default time in force")
}

func TestPlaceOrderLimitRequiresPrice(t *testing.T) {
	def := PlaceOrder()
	_, err := def.Schema.Validate(map[string]any{
		"symbol":    "BTCUSDT",
		"side":      "Buy",
		"orderType": "Limit",
		"qty":       "1",
	})
	require.Error(t, err)
	verr := err.(*schema.ValidationError)
	assert.Equal(t, []string{"price"}, verr.Fields())

	_, err = def.Schema.Validate(map[string]any{
		"symbol":    "BTCUSDT",
		"side":      "Buy",
		"orderType": "Market",
		"qty":       "1",
	})
	assert.NoError(t, err, "Market orders need no price")
}

func TestAmendOrderNeedsAnIdentifier(t *testing.T) {
	def := AmendOrder()
	_, err := def.Schema.Validate(map[string]any{
		"category": "linear",
		"symbol":   "BTCUSDT",
		"qty":      "2",
	})
	require.Error(t, err)
	verr := err.(*schema.ValidationError)
	assert.ElementsMatch(t, []string{"orderId", "orderLinkId"}, verr.Fields())

	_, err = def.Schema.Validate(map[string]any{
		"category": "linear",
		"symbol":   "BTCUSDT",
		"orderId":  "123",
		"qty":      "2",
	})
	assert.NoError(t, err)
}

func TestPlaceTriggerOrderDefaults(t *testing.T) {
	rec := &orderRecorder{}
	_, err := invoke(t, PlaceTriggerOrder(), rec, map[string]any{
		"category":         "linear",
		"symbol":           "BTCUSDT",
		"side":             "Sell",
		"orderType":        "Market",
		"qty":              "0.1",
		"triggerPrice":     48000,
		"triggerDirection": 2,
		"reduceOnly":       true,
	})
	require.NoError(t, err)
	require.NotNil(t, rec.trigger)

	assert.Equal(t, "48000", rec.trigger.TriggerPrice)
	assert.Equal(t, int64(2), rec.trigger.TriggerDirection)
	assert.Equal(t, "LastPrice", rec.trigger.TriggerBy)
	assert.Equal(t, "StopOrder", rec.trigger.OrderFilter)
	require.NotNil(t, rec.trigger.ReduceOnly)
	assert.True(t, *rec.trigger.ReduceOnly)
	require.NotNil(t, rec.trigger.PositionIdx)
	assert.Equal(t, int64(0), *rec.trigger.PositionIdx)
}

func TestBatchPlaceOrderBinding(t *testing.T) {
	rec := &orderRecorder{}
	_, err := invoke(t, BatchPlaceOrder(), rec, map[string]any{
		"category": "linear",
		"request": []any{
			map[string]any{"symbol": "BTCUSDT", "side": "Buy", "orderType": "Market", "qty": 0.01},
			map[string]any{"symbol": "ETHUSDT", "side": "Sell", "orderType": "Limit", "qty": "1", "price": "3000"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, rec.batch)

	assert.Equal(t, "linear", rec.batch.Category)
	require.Len(t, rec.batch.Request, 2)
	assert.Equal(t, "0.01", rec.batch.Request[0]["qty"], "element qty normalized")
	assert.Equal(t, "3000", rec.batch.Request[1]["price"])
}

func TestBatchRejectsOversizedRequest(t *testing.T) {
	items := make([]any, 21)
	for i := range items {
		items[i] = map[string]any{"symbol": "BTCUSDT", "side": "Buy", "orderType": "Market", "qty": "1"}
	}
	def := BatchPlaceOrder()
	_, err := def.Schema.Validate(map[string]any{
		"category": "linear",
		"request":  items,
	})
	require.Error(t, err)
	verr := err.(*schema.ValidationError)
	assert.Equal(t, []string{"request"}, verr.Fields())
}

func TestAllTradeToolsAreGated(t *testing.T) {
	for _, def := range Definitions() {
		assert.True(t, def.Trading, "tool %s must be trading-gated", def.Name)
	}
}
