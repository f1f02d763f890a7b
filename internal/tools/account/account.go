// Package account defines order/trade query and balance tools. They read
// private account state, so they need credentials, but they never mutate
// anything and stay visible regardless of the trading flag.
package account

import (
	"context"
	"encoding/json"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

var categoryAll = []string{"linear", "spot", "option", "inverse"}

func GetOpenClosedOrders() tools.Definition {
	return tools.Definition{
		Name:        "get_open_closed_orders",
		Description: "Query unfilled or partially filled orders in real-time. Also supports querying recent 500 closed status orders (Cancelled, Filled). Essential for monitoring order status and trading activity.",
		Category:    tools.CategoryAccount,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category to query orders for. Unified account: spot, linear, option. Normal account: linear, inverse", Enum: categoryAll, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Trading symbol to filter orders. Leave empty to get all orders in category. Required if settleCoin not present"},
				{Name: "baseCoin", Kind: schema.KindString, Description: "Base coin filter. For linear & inverse, either symbol or baseCoin is required"},
				{Name: "settleCoin", Kind: schema.KindString, Description: "Settle coin filter. For linear & inverse only. Required if symbol not present"},
				{Name: "orderId", Kind: schema.KindString, Description: "Specific order ID to query"},
				{Name: "orderLinkId", Kind: schema.KindString, Description: "User customised order ID to query"},
				{Name: "openOnly", Kind: schema.KindInteger, Description: "Order status filter. 0: open orders only (default), 1: include recent closed orders, 2: all status", IntEnum: []int64{0, 1, 2}, Default: int64(0)},
				{Name: "orderFilter", Kind: schema.KindString, Description: "Order filter condition. Valid for spot only", Enum: []string{"Order", "tpslOrder", "StopOrder", "OcoOrder", "BidirectionalTpslOrder"}},
				{Name: "limit", Kind: schema.KindInteger, Description: "Number of records per page (1-50)", Min: schema.Int(1), Max: schema.Int(50), Default: int64(20)},
				{Name: "cursor", Kind: schema.KindString, Description: "Pagination cursor for next page of results"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetOpenClosedOrdersParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetOpenClosedOrders(ctx, p)
		},
	}
}

func GetOrderHistory() tools.Definition {
	return tools.Definition{
		Name:        "get_order_history",
		Description: "Get comprehensive order history with detailed information about past orders including execution details, timestamps, and status changes. Useful for trade analysis and record keeping.",
		Category:    tools.CategoryAccount,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category to query order history for", Enum: categoryAll, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Specific trading pair to get order history for. Leave empty to get all orders in category"},
				{Name: "baseCoin", Kind: schema.KindString, Description: "Base coin filter for derivatives and options"},
				{Name: "orderId", Kind: schema.KindString, Description: "Specific order ID to query"},
				{Name: "orderLinkId", Kind: schema.KindString, Description: "Specific custom order ID to query"},
				{Name: "orderStatus", Kind: schema.KindString, Description: "Filter by order status", Enum: []string{"New", "PartiallyFilled", "Filled", "Cancelled", "Rejected", "PartiallyFilledCanceled", "Deactivated"}},
				{Name: "orderFilter", Kind: schema.KindString, Description: "Order type filter", Enum: []string{"Order", "StopOrder", "tpslOrder", "OcoOrder", "BidirectionalTpslOrder"}},
				{Name: "startTime", Kind: schema.KindInteger, Description: "Start timestamp in milliseconds for history query"},
				{Name: "endTime", Kind: schema.KindInteger, Description: "End timestamp in milliseconds for history query"},
				{Name: "limit", Kind: schema.KindInteger, Description: "Maximum number of records to return (1-50)", Min: schema.Int(1), Max: schema.Int(50), Default: int64(20)},
				{Name: "cursor", Kind: schema.KindString, Description: "Pagination cursor for next page of results"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetOrderHistoryParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetOrderHistory(ctx, p)
		},
	}
}

func GetTradeHistory() tools.Definition {
	return tools.Definition{
		Name:        "get_trade_history",
		Description: "Get detailed execution history showing actual trades (fills) with execution prices, quantities, fees, and timestamps. Essential for performance analysis and tax reporting.",
		Category:    tools.CategoryAccount,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "category", Kind: schema.KindString, Description: "Product category to query trade executions for", Enum: categoryAll, Required: true},
				{Name: "symbol", Kind: schema.KindString, Description: "Specific trading pair to get trade history for. Leave empty to get all trades in category"},
				{Name: "baseCoin", Kind: schema.KindString, Description: "Base coin filter for derivatives and options"},
				{Name: "orderId", Kind: schema.KindString, Description: "Get trades for specific order ID"},
				{Name: "orderLinkId", Kind: schema.KindString, Description: "Get trades for specific custom order ID"},
				{Name: "execType", Kind: schema.KindString, Description: "Execution type filter", Enum: []string{"Trade", "AdlTrade", "Funding", "BustTrade", "Settle"}},
				{Name: "startTime", Kind: schema.KindInteger, Description: "Start timestamp in milliseconds for trade history query"},
				{Name: "endTime", Kind: schema.KindInteger, Description: "End timestamp in milliseconds for trade history query"},
				{Name: "limit", Kind: schema.KindInteger, Description: "Maximum number of records to return (1-100)", Min: schema.Int(1), Max: schema.Int(100), Default: int64(50)},
				{Name: "cursor", Kind: schema.KindString, Description: "Pagination cursor for next page of results"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetTradeHistoryParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetTradeHistory(ctx, p)
		},
	}
}

func GetWalletBalance() tools.Definition {
	return tools.Definition{
		Name:        "get_wallet_balance",
		Description: "Get detailed wallet balance information including available balance, locked balance, and total equity across different account types. Essential for portfolio monitoring and risk management.",
		Category:    tools.CategoryAccount,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "accountType", Kind: schema.KindString, Description: "Account type to query balance for. UNIFIED is most common for modern trading", Enum: []string{"UNIFIED", "CONTRACT", "SPOT", "INVESTMENT", "OPTION", "FUND", "COPYTRADING"}, Required: true},
				{Name: "coin", Kind: schema.KindString, Description: "Specific coin to get balance for. Leave empty to get all coin balances"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetWalletBalanceParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetWalletBalance(ctx, p)
		},
	}
}

func GetSingleCoinBalance() tools.Definition {
	return tools.Definition{
		Name:        "get_single_coin_balance",
		Description: "Get balance information for a specific coin with additional details like transferable amounts and account relationships. More detailed than wallet balance for single coin queries.",
		Category:    tools.CategoryAccount,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "accountType", Kind: schema.KindString, Description: "Account type to query coin balance for", Enum: []string{"UNIFIED", "CONTRACT", "SPOT"}, Required: true},
				{Name: "coin", Kind: schema.KindString, Description: "Specific coin to get detailed balance for", Required: true},
				{Name: "memberId", Kind: schema.KindString, Description: "Member ID for institutional accounts (optional)"},
				{Name: "toAccountType", Kind: schema.KindString, Description: "Target account type for transfer queries (optional)", Enum: []string{"UNIFIED", "CONTRACT", "SPOT"}},
				{Name: "toMemberId", Kind: schema.KindString, Description: "Target member ID for institutional transfers (optional)"},
				{Name: "withBonus", Kind: schema.KindInteger, Description: "Include bonus balance in results: 0 = exclude bonus, 1 = include bonus", IntEnum: []int64{0, 1}, Default: int64(0)},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetSingleCoinBalanceParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetSingleCoinBalance(ctx, p)
		},
	}
}

func GetAccountInfo() tools.Definition {
	return tools.Definition{
		Name:        "get_account_info",
		Description: "Get comprehensive account information including margin ratios, account status, upgrade status, and overall account health metrics. Essential for risk monitoring.",
		Category:    tools.CategoryAccount,
		Schema:      schema.Object{},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, _ map[string]any) (json.RawMessage, error) {
			return deps.Exchange.GetAccountInfo(ctx)
		},
	}
}

// Definitions lists every account query tool in registration order.
func Definitions() []tools.Definition {
	return []tools.Definition{
		GetOpenClosedOrders(),
		GetOrderHistory(),
		GetTradeHistory(),
		GetWalletBalance(),
		GetSingleCoinBalance(),
		GetAccountInfo(),
	}
}
