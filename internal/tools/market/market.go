// Package market defines the public market data tools. None of them require
// credentials or the trading flag.
package market

import (
	"context"
	"encoding/json"
	"regexp"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

var expDatePattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{3}[0-9]{2}$`)

func categoryField(desc string, enum []string) schema.Field {
	return schema.Field{
		Name:        "category",
		Kind:        schema.KindString,
		Description: desc,
		Enum:        enum,
		Default:     "linear",
	}
}

func symbolField(required bool, desc string) schema.Field {
	return schema.Field{
		Name:        "symbol",
		Kind:        schema.KindString,
		Description: desc,
		Required:    required,
	}
}

func GetServerTime() tools.Definition {
	return tools.Definition{
		Name:        "get_server_time",
		Description: "Get the current Bybit server time",
		Category:    tools.CategoryMarket,
		Schema:      schema.Object{},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, _ map[string]any) (json.RawMessage, error) {
			return deps.Exchange.GetServerTime(ctx)
		},
	}
}

func GetTickers() tools.Definition {
	return tools.Definition{
		Name:        "get_tickers",
		Description: "Get real-time ticker information including current prices, 24h volume, and price changes for trading symbols. Use this to get current market data for any cryptocurrency pair.",
		Category:    tools.CategoryMarket,
		Schema: schema.Object{
			Fields: []schema.Field{
				categoryField("Product type: 'linear' for USDT perpetuals (most common), 'inverse' for coin-margined futures, 'option' for options, 'spot' for spot trading",
					[]string{"linear", "inverse", "option", "spot"}),
				symbolField(false, "Trading pair symbol. Examples: 'BTCUSDT' (Bitcoin), 'ETHUSDT' (Ethereum), 'SOLUSDT' (Solana). Leave empty to get all symbols."),
				{Name: "baseCoin", Kind: schema.KindString, Description: "Base coin for options only. Examples: 'BTC', 'ETH'"},
				{Name: "expDate", Kind: schema.KindString, Description: "Expiry date for options only. Format: DDMMMYY (e.g., '25DEC21', '30JUN22')", Pattern: expDatePattern},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetTickersParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetTickers(ctx, p)
		},
	}
}

func GetOrderBook() tools.Definition {
	return tools.Definition{
		Name:        "get_order_book",
		Description: "Get order book depth for a trading symbol",
		Category:    tools.CategoryMarket,
		Schema: schema.Object{
			Fields: []schema.Field{
				categoryField("Product type", []string{"linear", "inverse", "option", "spot"}),
				symbolField(true, "Symbol name (e.g., BTCUSDT)"),
				{Name: "limit", Kind: schema.KindInteger, Description: "Limit for data size per page (1-500)", Min: schema.Int(1), Max: schema.Int(500), Default: int64(25)},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetOrderBookParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetOrderBook(ctx, p)
		},
	}
}

func GetRecentTrades() tools.Definition {
	return tools.Definition{
		Name:        "get_recent_trades",
		Description: "Get recent trades for a symbol",
		Category:    tools.CategoryMarket,
		Schema: schema.Object{
			Fields: []schema.Field{
				categoryField("Product type", []string{"linear", "inverse", "option", "spot"}),
				symbolField(true, "Symbol name (e.g., BTCUSDT)"),
				{Name: "baseCoin", Kind: schema.KindString, Description: "Base coin (for option only)"},
				{Name: "optionType", Kind: schema.KindString, Description: "Option type (Call or Put, for option only)", Enum: []string{"Call", "Put"}},
				{Name: "limit", Kind: schema.KindInteger, Description: "Limit for data size per page (1-1000)", Min: schema.Int(1), Max: schema.Int(1000), Default: int64(500)},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetRecentTradesParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetRecentTrades(ctx, p)
		},
	}
}
