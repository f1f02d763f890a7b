package position

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

type positionRecorder struct {
	bybit.Exchange
	tradingStop *bybit.SetTradingStopParams
	switchMode  *bybit.SwitchPositionModeParams
}

func (r *positionRecorder) SetTradingStop(_ context.Context, p bybit.SetTradingStopParams) (json.RawMessage, error) {
	r.tradingStop = &p
	return json.RawMessage(`{}`), nil
}

func (r *positionRecorder) SwitchPositionMode(_ context.Context, p bybit.SwitchPositionModeParams) (json.RawMessage, error) {
	r.switchMode = &p
	return json.RawMessage(`{}`), nil
}

func TestGetPositionInfoNeedsSymbolOrSettleCoin(t *testing.T) {
	def := GetPositionInfo()

	_, err := def.Schema.Validate(map[string]any{"category": "linear"})
	require.Error(t, err)
	verr := err.(*schema.ValidationError)
	assert.ElementsMatch(t, []string{"symbol", "settleCoin"}, verr.Fields())

	_, err = def.Schema.Validate(map[string]any{"category": "linear", "settleCoin": "USDT"})
	assert.NoError(t, err)
}

func TestSetTradingStopBinding(t *testing.T) {
	def := SetTradingStop()
	normalized, err := def.Schema.Validate(map[string]any{
		"category":    "linear",
		"symbol":      "BTCUSDT",
		"tpslMode":    "Full",
		"positionIdx": 0,
		"takeProfit":  52000,
		"stopLoss":    "48000",
	})
	require.NoError(t, err)

	rec := &positionRecorder{}
	_, err = def.Invoke(context.Background(), tools.ToolDependencies{Exchange: rec}, normalized)
	require.NoError(t, err)
	require.NotNil(t, rec.tradingStop)

	assert.Equal(t, "52000", rec.tradingStop.TakeProfit, "TP normalized to string")
	assert.Equal(t, "48000", rec.tradingStop.StopLoss)
	require.NotNil(t, rec.tradingStop.PositionIdx)
	assert.Equal(t, int64(0), *rec.tradingStop.PositionIdx, "positionIdx 0 must survive binding")
}

func TestSetTradingStopTrailingNeedsActivePrice(t *testing.T) {
	def := SetTradingStop()
	_, err := def.Schema.Validate(map[string]any{
		"category":     "linear",
		"symbol":       "BTCUSDT",
		"tpslMode":     "Full",
		"positionIdx":  0,
		"trailingStop": "100",
	})
	require.Error(t, err)
	verr := err.(*schema.ValidationError)
	assert.Equal(t, []string{"activePrice"}, verr.Fields())
}

func TestSwitchPositionModeEnum(t *testing.T) {
	def := SwitchPositionMode()

	// Mode 3 is hedge mode; 1 and 2 are not valid values for this endpoint.
	_, err := def.Schema.Validate(map[string]any{"category": "linear", "symbol": "BTCUSDT", "mode": 1})
	require.Error(t, err)

	normalized, err := def.Schema.Validate(map[string]any{"category": "linear", "symbol": "BTCUSDT", "mode": 3})
	require.NoError(t, err)

	rec := &positionRecorder{}
	_, err = def.Invoke(context.Background(), tools.ToolDependencies{Exchange: rec}, normalized)
	require.NoError(t, err)
	require.NotNil(t, rec.switchMode.Mode)
	assert.Equal(t, int64(3), *rec.switchMode.Mode)
}

func TestGateSplit(t *testing.T) {
	gated := map[string]bool{}
	for _, def := range Definitions() {
		gated[def.Name] = def.Trading
	}
	assert.False(t, gated["get_position_info"])
	assert.False(t, gated["get_closed_pnl"])
	for _, name := range []string{
		"set_leverage", "switch_cross_isolated_margin", "switch_position_mode",
		"set_trading_stop", "set_auto_add_margin", "modify_position_margin",
	} {
		assert.True(t, gated[name], "%s must be trading-gated", name)
	}
}
