// Package position defines position query and management tools. The queries
// are always available; everything that changes leverage, margin, or risk
// parameters sits behind the trading flag.
package position

import (
	"context"
	"encoding/json"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

var (
	derivCategories = []string{"linear", "inverse"}
	triggerPrices   = []string{"LastPrice", "IndexPrice", "MarkPrice"}
	positionIdxEnum = []int64{0, 1, 2}
)

func GetPositionInfo() tools.Definition {
	return tools.Definition{
		Name:        "get_position_info",
		Description: "Get detailed position information including size, value, PnL, and margin for your trading positions. Essential for portfolio monitoring and risk management.",
		Category:    tools.CategoryPosition,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category to query positions for", Enum: []string{"linear", "spot", "option", "inverse"}, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Specific trading pair to get position for. Leave empty to get all positions in category. Required if settleCoin is not present"},
				{Name: "baseCoin", Kind: schema.KindString, Description: "Base coin filter for derivatives and options"},
				{Name: "settleCoin", Kind: schema.KindString, Description: "Settlement coin filter. Required if symbol is not present"},
				{Name: "limit", Kind: schema.KindInteger, Description: "Maximum number of records to return (1-200)", Min: schema.Int(1), Max: schema.Int(200), Default: int64(20)},
				{Name: "cursor", Kind: schema.KindString, Description: "Pagination cursor for next page of results"},
			},
			Constraints: []schema.Constraint{
				schema.RequireOneOf{Fields: []string{"symbol", "settleCoin"}},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetPositionInfoParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetPositionInfo(ctx, p)
		},
	}
}

func GetClosedPnl() tools.Definition {
	return tools.Definition{
		Name:        "get_closed_pnl",
		Description: "Get historical profit and loss data for closed positions. Useful for performance analysis and tax reporting.",
		Category:    tools.CategoryPosition,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category to query closed PnL for", Enum: []string{"linear", "spot", "option", "inverse"}, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Specific trading pair to get PnL for. Leave empty to get all closed PnL in category"},
				{Name: "startTime", Kind: schema.KindInteger, Description: "Start timestamp in milliseconds for PnL query"},
				{Name: "endTime", Kind: schema.KindInteger, Description: "End timestamp in milliseconds for PnL query"},
				{Name: "limit", Kind: schema.KindInteger, Description: "Maximum number of records to return (1-100)", Min: schema.Int(1), Max: schema.Int(100), Default: int64(20)},
				{Name: "cursor", Kind: schema.KindString, Description: "Pagination cursor for next page of results"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetClosedPnlParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetClosedPnl(ctx, p)
		},
	}
}

func SetLeverage() tools.Definition {
	return tools.Definition{
		Name:        "set_leverage",
		Description: "Set leverage for a trading position. Higher leverage amplifies both profits and losses. Use with caution as it increases risk significantly.",
		Category:    tools.CategoryPosition,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category to set leverage for", Enum: []string{"linear", "inverse", "option"}, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol to set leverage for", Required: true},
				{Name: "buyLeverage", Kind: schema.KindNumericString, Description: "Leverage for long positions. Range depends on symbol (e.g., 1-100x)", Required: true},
				{Name: "sellLeverage", Kind: schema.KindNumericString, Description: "Leverage for short positions. Range depends on symbol (e.g., 1-100x)", Required: true},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.SetLeverageParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.SetLeverage(ctx, p)
		},
	}
}

func SwitchCrossIsolatedMargin() tools.Definition {
	return tools.Definition{
		Name:        "switch_cross_isolated_margin",
		Description: "Switch between cross margin (uses entire account balance as collateral) and isolated margin (uses only position margin). Cross margin has lower liquidation risk but affects entire account.",
		Category:    tools.CategoryPosition,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category to change margin mode for", Enum: derivCategories, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol to change margin mode for", Required: true},
				{Name: "tradeMode", Kind: schema.KindInteger, Description: "Margin mode: 0 = cross margin (shared account balance), 1 = isolated margin (separate position margin)", IntEnum: []int64{0, 1}, Required: true},
				{Name: "buyLeverage", Kind: schema.KindNumericString, Description: "Leverage for long positions after mode switch", Required: true},
				{Name: "sellLeverage", Kind: schema.KindNumericString, Description: "Leverage for short positions after mode switch", Required: true},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.SwitchCrossIsolatedMarginParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.SwitchCrossIsolatedMargin(ctx, p)
		},
	}
}

func SwitchPositionMode() tools.Definition {
	return tools.Definition{
		Name:        "switch_position_mode",
		Description: "Switch between one-way mode (net position) and hedge mode (separate long/short positions). Hedge mode allows simultaneous long and short positions on the same symbol.",
		Category:    tools.CategoryPosition,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category to change position mode for", Enum: []string{"linear", "inverse", "option"}, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol (optional for some categories, required for linear/inverse)"},
				{Name: "coin", Kind: schema.KindString, Description: "Base coin for options category"},
				{Name: "mode", Kind: schema.KindInteger, Description: "Position mode: 0 = One-Way Mode (net position), 3 = Hedge Mode (separate buy/sell positions)", IntEnum: []int64{0, 3}, Required: true},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.SwitchPositionModeParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.SwitchPositionMode(ctx, p)
		},
	}
}

func SetTradingStop() tools.Definition {
	return tools.Definition{
		Name:        "set_trading_stop",
		Description: "Set take profit and stop loss orders for an existing position. These orders automatically close your position at specified profit or loss levels to manage risk.",
		Category:    tools.CategoryPosition,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category for the position", Enum: derivCategories, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol for the position", Required: true},
				{Name: "tpslMode", Kind: schema.KindString, Description: "TP/SL mode: Full = entire position, Partial = partial position", Enum: []string{"Full", "Partial"}, Required: true},
				{Name: "positionIdx", Kind: schema.KindInteger, Description: "Position index: 0 = one-way mode, 1 = hedge-mode Buy side, 2 = hedge-mode Sell side", IntEnum: positionIdxEnum, Required: true},
				{Name: "takeProfit", Kind: schema.KindNumericString, Description: "Take profit price to automatically close position at profit target. Use '0' to cancel TP"},
				{Name: "stopLoss", Kind: schema.KindNumericString, Description: "Stop loss price to automatically close position to limit losses. Use '0' to cancel SL"},
				{Name: "trailingStop", Kind: schema.KindNumericString, Description: "Trailing stop distance. Use '0' to cancel trailing stop"},
				{Name: "tpTriggerBy", Kind: schema.KindString, Description: "Take profit trigger price type", Enum: triggerPrices},
				{Name: "slTriggerBy", Kind: schema.KindString, Description: "Stop loss trigger price type", Enum: triggerPrices},
				{Name: "activePrice", Kind: schema.KindNumericString, Description: "Trailing stop trigger price, required when setting trailing stop"},
				{Name: "tpSize", Kind: schema.KindNumericString, Description: "Take profit size for partial closure mode only"},
				{Name: "slSize", Kind: schema.KindNumericString, Description: "Stop loss size for partial closure mode only"},
				{Name: "tpLimitPrice", Kind: schema.KindNumericString, Description: "Take profit limit order price when tpOrderType=Limit"},
				{Name: "slLimitPrice", Kind: schema.KindNumericString, Description: "Stop loss limit order price when slOrderType=Limit"},
				{Name: "tpOrderType", Kind: schema.KindString, Description: "Take profit order type when triggered", Enum: []string{"Market", "Limit"}},
				{Name: "slOrderType", Kind: schema.KindString, Description: "Stop loss order type when triggered", Enum: []string{"Market", "Limit"}},
			},
			Constraints: []schema.Constraint{
				schema.RequireWith{When: "trailingStop", Then: "activePrice"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.SetTradingStopParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.SetTradingStop(ctx, p)
		},
	}
}

func SetAutoAddMargin() tools.Definition {
	return tools.Definition{
		Name:        "set_auto_add_margin",
		Description: "Enable or disable automatic margin addition for isolated margin positions. When enabled, margin is automatically added to prevent liquidation.",
		Category:    tools.CategoryPosition,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category for the position", Enum: derivCategories, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol for the position", Required: true},
				{Name: "autoAddMargin", Kind: schema.KindInteger, Description: "Auto add margin setting: 0 = disabled, 1 = enabled", IntEnum: []int64{0, 1}, Required: true},
				{Name: "positionIdx", Kind: schema.KindInteger, Description: "Position index: 0 = one-way mode, 1 = hedge-mode Buy side, 2 = hedge-mode Sell side", IntEnum: positionIdxEnum},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.SetAutoAddMarginParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.SetAutoAddMargin(ctx, p)
		},
	}
}

func ModifyPositionMargin() tools.Definition {
	return tools.Definition{
		Name:        "modify_position_margin",
		Description: "Manually add or reduce margin for an isolated margin position. Use positive values to add margin (reduce liquidation risk) or negative values to reduce margin.",
		Category:    tools.CategoryPosition,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category for the position", Enum: derivCategories, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol for the position", Required: true},
				{Name: "margin", Kind: schema.KindNumericString, Description: "Margin amount to add (positive) or reduce (negative). In quote currency for linear, base currency for inverse", Required: true},
				{Name: "positionIdx", Kind: schema.KindInteger, Description: "Position index: 0 = one-way mode, 1 = hedge-mode Buy side, 2 = hedge-mode Sell side", IntEnum: positionIdxEnum},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.ModifyPositionMarginParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.ModifyPositionMargin(ctx, p)
		},
	}
}

// Definitions lists every position tool in registration order.
func Definitions() []tools.Definition {
	return []tools.Definition{
		GetPositionInfo(),
		GetClosedPnl(),
		SetLeverage(),
		SwitchCrossIsolatedMargin(),
		SwitchPositionMode(),
		SetTradingStop(),
		SetAutoAddMargin(),
		ModifyPositionMargin(),
	}
}
