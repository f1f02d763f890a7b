// Package trade defines the order management tools. Every tool here mutates
// exchange state, so all of them sit behind the trading flag.
package trade

import (
	"context"
	"encoding/json"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

var (
	categoryAll  = []string{"linear", "spot", "option", "inverse"}
	orderSides   = []string{"Buy", "Sell"}
	orderTypes   = []string{"Market", "Limit"}
	timeInForces = []string{"GTC", "IOC", "FOK", "PostOnly"}
)

func PlaceOrder() tools.Definition {
	return tools.Definition{
		Name:        "place_order",
		Description: "Place a new trading order on Bybit with comprehensive risk management. ⚠️ EXECUTES REAL TRADES WITH REAL MONEY when trading is enabled. Supports Market/Limit orders, reduce-only positions, and multiple execution strategies. Always confirm symbol, side, quantity, and price before executing.",
		Category:    tools.CategoryTrade,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category: 'linear' for USDT perpetuals (most common), 'spot' for spot trading, 'option' for options, 'inverse' for coin-margined futures", Enum: categoryAll, Default: "linear"},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol. Examples: 'BTCUSDT', 'ETHUSDT', 'SOLUSDT'", Required: true},
				{Name: "side", Kind: schema.KindString, Description: "Order side: 'Buy' to purchase, 'Sell' to sell", Enum: orderSides, Required: true},
				{Name: "orderType", Kind: schema.KindString, Description: "Order type: 'Market' executes immediately at current price, 'Limit' waits for specific price", Enum: orderTypes, Required: true},
				{Name: "qty", Kind: schema.KindNumericString, Description: "Order quantity. For spot: coin amount (e.g., '0.001' BTC). For derivatives: contract size (e.g., '100' USDT)", Required: true},
				{Name: "price", Kind: schema.KindNumericString, Description: "Order price. Required for Limit orders, ignored for Market orders. Examples: '50000', '3000.5'"},
				{Name: "isLeverage", Kind: schema.KindInteger, Description: "Use leverage for spot margin trading: 0 = normal spot, 1 = use leverage (spot margin only)", IntEnum: []int64{0, 1}, Default: int64(0)},
				{Name: "orderLinkId", Kind: schema.KindString, Description: "Custom order ID for tracking. Must be unique. Use for order management and identification"},
				{Name: "timeInForce", Kind: schema.KindString, Description: "Order execution strategy: 'GTC' = Good Till Cancel (default), 'IOC' = Immediate or Cancel, 'FOK' = Fill or Kill, 'PostOnly' = maker only", Enum: timeInForces, Default: "GTC"},
			},
			Constraints: []schema.Constraint{
				schema.RequireIfEquals{When: "orderType", Equals: "Limit", Then: "price"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.PlaceOrderParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.PlaceOrder(ctx, p)
		},
	}
}

func AmendOrder() tools.Definition {
	return tools.Definition{
		Name:        "amend_order",
		Description: "Modify an existing pending order's price or quantity. ⚠️ Only works on orders that haven't been filled yet. Use this to adjust your order without canceling and re-placing it. You must provide either orderId or orderLinkId to identify the order.",
		Category:    tools.CategoryTrade,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category where the order exists", Enum: categoryAll, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol of the order to amend. Examples: 'BTCUSDT', 'ETHUSDT'", Required: true},
				{Name: "orderId", Kind: schema.KindString, Description: "Bybit's order ID. Either orderId or orderLinkId must be provided"},
				{Name: "orderLinkId", Kind: schema.KindString, Description: "Your custom order ID. Either orderId or orderLinkId must be provided"},
				{Name: "qty", Kind: schema.KindNumericString, Description: "New order quantity. Leave empty if only changing price"},
				{Name: "price", Kind: schema.KindNumericString, Description: "New order price. Leave empty if only changing quantity"},
			},
			Constraints: []schema.Constraint{
				schema.RequireOneOf{Fields: []string{"orderId", "orderLinkId"}},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.AmendOrderParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.AmendOrder(ctx, p)
		},
	}
}

func CancelOrder() tools.Definition {
	return tools.Definition{
		Name:        "cancel_order",
		Description: "Cancel a single pending order immediately. ⚠️ Only works on orders that haven't been filled yet. You must provide either orderId or orderLinkId to identify the specific order to cancel.",
		Category:    tools.CategoryTrade,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category where the order exists", Enum: categoryAll, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol of the order to cancel. Examples: 'BTCUSDT', 'ETHUSDT'", Required: true},
				{Name: "orderId", Kind: schema.KindString, Description: "Bybit's order ID. Either orderId or orderLinkId must be provided"},
				{Name: "orderLinkId", Kind: schema.KindString, Description: "Your custom order ID. Either orderId or orderLinkId must be provided"},
			},
			Constraints: []schema.Constraint{
				schema.RequireOneOf{Fields: []string{"orderId", "orderLinkId"}},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.CancelOrderParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.CancelOrder(ctx, p)
		},
	}
}

func CancelAllOrders() tools.Definition {
	return tools.Definition{
		Name:        "cancel_all_orders",
		Description: "Cancel all pending orders for a category or specific symbol. Use with caution as this cancels ALL open orders matching the criteria.",
		Category:    tools.CategoryTrade,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category to cancel orders in", Enum: categoryAll, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Specific trading pair to cancel orders for. Leave empty to cancel ALL orders in the category"},
				{Name: "baseCoin", Kind: schema.KindString, Description: "Base coin filter for options and derivatives. Examples: 'BTC', 'ETH'"},
				{Name: "settleCoin", Kind: schema.KindString, Description: "Settlement coin filter. Examples: 'USDT', 'BTC', 'ETH'"},
				{Name: "orderFilter", Kind: schema.KindString, Description: "Order type filter: 'Order' for normal orders, 'StopOrder' for conditional orders", Enum: []string{"Order", "StopOrder"}},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.CancelAllOrdersParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.CancelAllOrders(ctx, p)
		},
	}
}

func PlaceTriggerOrder() tools.Definition {
	return tools.Definition{
		Name:        "place_trigger_order",
		Description: "Place a conditional/trigger order that executes only when market price reaches your trigger condition. ⚠️ EXECUTES REAL TRADES WITH REAL MONEY when triggered. The order doesn't occupy margin until triggered. Useful for stop-loss, take-profit, and breakout strategies.",
		Category:    tools.CategoryTrade,
		Trading:     true,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category: 'linear' for USDT perpetuals, 'spot' for spot trading, 'inverse' for coin-margined futures. Options not supported for trigger orders", Enum: []string{"linear", "spot", "inverse"}, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol. Examples: 'BTCUSDT', 'ETHUSDT', 'SOLUSDT'", Required: true},
				{Name: "side", Kind: schema.KindString, Description: "Order side: 'Buy' to purchase when triggered, 'Sell' to sell when triggered", Enum: orderSides, Required: true},
				{Name: "orderType", Kind: schema.KindString, Description: "Order type after trigger: 'Market' executes at market price when triggered, 'Limit' waits for your limit price after trigger", Enum: orderTypes, Required: true},
				{Name: "qty", Kind: schema.KindNumericString, Description: "Order quantity when triggered. For spot: coin amount. For derivatives: contract size", Required: true},
				{Name: "triggerPrice", Kind: schema.KindNumericString, Description: "Price that triggers the conditional order. When market hits this price, the order becomes active", Required: true},
				{Name: "triggerDirection", Kind: schema.KindInteger, Description: "Trigger direction: 1 = triggered when price RISES to triggerPrice, 2 = triggered when price FALLS to triggerPrice", IntEnum: []int64{1, 2}, Required: true},
				{Name: "triggerBy", Kind: schema.KindString, Description: "Price type for trigger: 'LastPrice' = last traded price (default), 'MarkPrice' = mark price (recommended for derivatives), 'IndexPrice' = index price", Enum: []string{"LastPrice", "MarkPrice", "IndexPrice"}, Default: "LastPrice"},
				{Name: "price", Kind: schema.KindNumericString, Description: "Order price after trigger (for Limit orders only). Leave empty for Market orders"},
				{Name: "orderFilter", Kind: schema.KindString, Description: "Order filter for spot: 'Order' = normal conditional order, 'StopOrder' = stop order (assets not reserved until trigger), 'tpslOrder' = TP/SL order (assets reserved)", Enum: []string{"Order", "StopOrder", "tpslOrder"}, Default: "StopOrder"},
				{Name: "timeInForce", Kind: schema.KindString, Description: "Time in force after trigger: 'GTC' = Good Till Cancelled, 'IOC' = Immediate or Cancel, 'FOK' = Fill or Kill, 'PostOnly' = Post Only", Enum: timeInForces, Default: "GTC"},
				{Name: "reduceOnly", Kind: schema.KindBoolean, Description: "Reduce only flag: true = can only reduce position size (for closing positions). Use true for stop-loss orders"},
				{Name: "closeOnTrigger", Kind: schema.KindBoolean, Description: "Close on trigger: true = ensures order executes even with insufficient margin by canceling other orders if needed"},
				{Name: "positionIdx", Kind: schema.KindInteger, Description: "Position index for hedge mode: 0 = one-way mode, 1 = hedge-mode Buy side, 2 = hedge-mode Sell side", IntEnum: []int64{0, 1, 2}, Default: int64(0)},
				{Name: "orderLinkId", Kind: schema.KindString, Description: "Custom order ID for tracking. Must be unique"},
			},
			Constraints: []schema.Constraint{
				schema.RequireIfEquals{When: "orderType", Equals: "Limit", Then: "price"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.PlaceTriggerOrderParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.PlaceTriggerOrder(ctx, p)
		},
	}
}
