package market

import (
	"context"
	"encoding/json"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

var ratioIntervals = []string{"5min", "15min", "30min", "1h", "4h", "1d"}

func GetInstrumentsInfo() tools.Definition {
	return tools.Definition{
		Name:        "get_instruments_info",
		Description: "Get trading instruments information",
		Category:    tools.CategoryMarket,
		Schema: schema.Object{
			Fields: []schema.Field{
				categoryField("Product type", []string{"linear", "inverse", "option", "spot"}),
				symbolField(false, "Symbol name (e.g., BTCUSDT)"),
				{Name: "baseCoin", Kind: schema.KindString, Description: "Base coin"},
				{Name: "limit", Kind: schema.KindInteger, Description: "Limit for data size per page (1-1000)", Min: schema.Int(1), Max: schema.Int(1000), Default: int64(500)},
				{Name: "cursor", Kind: schema.KindString, Description: "Cursor for pagination"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetInstrumentsInfoParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetInstrumentsInfo(ctx, p)
		},
	}
}

func GetFundingRateHistory() tools.Definition {
	return tools.Definition{
		Name:        "get_funding_rate_history",
		Description: "Get funding rate history",
		Category:    tools.CategoryMarket,
		Schema: schema.Object{
			Fields: []schema.Field{
				categoryField("Product type", []string{"linear", "inverse"}),
				symbolField(true, "Symbol name (e.g., BTCUSDT)"),
				{Name: "startTime", Kind: schema.KindInteger, Description: "Start timestamp (ms)"},
				{Name: "endTime", Kind: schema.KindInteger, Description: "End timestamp (ms)"},
				{Name: "limit", Kind: schema.KindInteger, Description: "Limit for data size per page (1-200)", Min: schema.Int(1), Max: schema.Int(200), Default: int64(200)},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetFundingRateHistoryParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetFundingRateHistory(ctx, p)
		},
	}
}

func GetOpenInterest() tools.Definition {
	return tools.Definition{
		Name:        "get_open_interest",
		Description: "Get open interest data",
		Category:    tools.CategoryMarket,
		Schema: schema.Object{
			Fields: []schema.Field{
				categoryField("Product type", []string{"linear", "inverse"}),
				symbolField(true, "Symbol name (e.g., BTCUSDT)"),
				{Name: "interval", Kind: schema.KindString, Description: "Interval time", Enum: ratioIntervals, Default: "5min"},
				{Name: "startTime", Kind: schema.KindInteger, Description: "Start timestamp (ms)"},
				{Name: "endTime", Kind: schema.KindInteger, Description: "End timestamp (ms)"},
				{Name: "limit", Kind: schema.KindInteger, Description: "Limit for data size per page (1-200)", Min: schema.Int(1), Max: schema.Int(200), Default: int64(50)},
				{Name: "cursor", Kind: schema.KindString, Description: "Cursor for pagination"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetOpenInterestParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetOpenInterest(ctx, p)
		},
	}
}

func GetInsurance() tools.Definition {
	return tools.Definition{
		Name:        "get_insurance",
		Description: "Get insurance fund data",
		Category:    tools.CategoryMarket,
		Schema: schema.Object{
			Fields: []schema.Field{
				{Name: "coin", Kind: schema.KindString, Description: "Coin name (e.g., BTC, ETH, USDT)"},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetInsuranceParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetInsurance(ctx, p)
		},
	}
}

func GetRiskLimit() tools.Definition {
	return tools.Definition{
		Name:        "get_risk_limit",
		Description: "Get risk limit information",
		Category:    tools.CategoryMarket,
		Schema: schema.Object{
			Fields: []schema.Field{
				categoryField("Product type", []string{"linear", "inverse"}),
				symbolField(false, "Symbol name (e.g., BTCUSDT)"),
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetRiskLimitParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetRiskLimit(ctx, p)
		},
	}
}

func GetLongShortRatio() tools.Definition {
	return tools.Definition{
		Name:        "get_long_short_ratio",
		Description: "Get long/short ratio data",
		Category:    tools.CategoryMarket,
		Schema: schema.Object{
			Fields: []schema.Field{
				categoryField("Product type", []string{"linear", "inverse"}),
				symbolField(true, "Symbol name (e.g., BTCUSDT)"),
				{Name: "interval", Kind: schema.KindString, Description: "Data recording interval", Enum: ratioIntervals, Default: "5min"},
				{Name: "startTime", Kind: schema.KindInteger, Description: "Start timestamp (ms)"},
				{Name: "endTime", Kind: schema.KindInteger, Description: "End timestamp (ms)"},
				{Name: "limit", Kind: schema.KindInteger, Description: "Limit for data size per page (1-500)", Min: schema.Int(1), Max: schema.Int(500), Default: int64(50)},
			},
		},
		Invoke: func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
			var p bybit.GetLongShortRatioParams
			if err := tools.Decode(args, &p); err != nil {
				return nil, err
			}
			return deps.Exchange.GetLongShortRatio(ctx, p)
		},
	}
}

// Definitions lists every market data tool in registration order.
func Definitions() []tools.Definition {
	return []tools.Definition{
		GetServerTime(),
		GetTickers(),
		GetOrderBook(),
		GetRecentTrades(),
		GetKline(),
		GetMarkPriceKline(),
		GetIndexPriceKline(),
		GetPremiumIndexPriceKline(),
		GetInstrumentsInfo(),
		GetFundingRateHistory(),
		GetOpenInterest(),
		GetInsurance(),
		GetRiskLimit(),
		GetLongShortRatio(),
	}
}
