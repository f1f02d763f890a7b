package market

import (
	"context"
	"encoding/json"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

var klineIntervals = []string{"1", "3", "5", "15", "30", "60", "120", "240", "360", "720", "D", "M", "W"}

func klineSchema(categories []string, categoryDesc string) schema.Object {
	return schema.Object{
		Fields: []schema.Field{
			categoryField(categoryDesc, categories),
			symbolField(true, "Trading pair symbol. Examples: 'BTCUSDT', 'ETHUSDT'"),
			{Name: "interval", Kind: schema.KindString, Description: "Time interval for each candlestick. Minutes: '1', '3', '5', '15', '30', '60' (1h), '120' (2h), '240' (4h), '360' (6h), '720' (12h). Periods: 'D' (daily), 'W' (weekly), 'M' (monthly)", Enum: klineIntervals, Default: "D"},
			{Name: "start", Kind: schema.KindInteger, Description: "Start time in milliseconds timestamp. The oldest time point wanted. If not provided, returns recent data."},
			{Name: "end", Kind: schema.KindInteger, Description: "End time in milliseconds timestamp. The newest time point wanted. If not provided, defaults to current time."},
			{Name: "limit", Kind: schema.KindInteger, Description: "Maximum number of candlesticks to return (1-1000)", Min: schema.Int(1), Max: schema.Int(1000)},
		},
	}
}

func klineInvoke(call func(context.Context, bybit.Exchange, bybit.GetKlineParams) (json.RawMessage, error)) tools.InvokeFunc {
	return func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
		var p bybit.GetKlineParams
		if err := tools.Decode(args, &p); err != nil {
			return nil, err
		}
		return call(ctx, deps.Exchange, p)
	}
}

func GetKline() tools.Definition {
	return tools.Definition{
		Name:        "get_kline",
		Description: "Get historical candlestick/OHLC data for technical analysis. Returns open, high, low, close prices and volume data. If no time range specified, returns recent data ending at current time.",
		Category:    tools.CategoryMarket,
		Schema: klineSchema([]string{"spot", "linear", "inverse", "option"},
			"Product type: 'linear' for USDT perpetuals (most common), 'inverse' for coin-margined futures, 'option' for options, 'spot' for spot trading"),
		Invoke: klineInvoke(func(ctx context.Context, ex bybit.Exchange, p bybit.GetKlineParams) (json.RawMessage, error) {
			return ex.GetKline(ctx, p)
		}),
	}
}

func GetMarkPriceKline() tools.Definition {
	return tools.Definition{
		Name:        "get_mark_price_kline",
		Description: "Get mark price candlestick data for derivatives trading. Mark price is used for liquidation calculations and PnL. Available for linear and inverse perpetual contracts only.",
		Category:    tools.CategoryMarket,
		Schema: klineSchema([]string{"linear", "inverse"},
			"Product type: 'linear' for USDT perpetuals, 'inverse' for coin-margined futures"),
		Invoke: klineInvoke(func(ctx context.Context, ex bybit.Exchange, p bybit.GetKlineParams) (json.RawMessage, error) {
			return ex.GetMarkPriceKline(ctx, p)
		}),
	}
}

func GetIndexPriceKline() tools.Definition {
	return tools.Definition{
		Name:        "get_index_price_kline",
		Description: "Get index price candlestick data for derivatives. Index price is the fair value price based on major spot exchanges, used as reference for mark price calculation.",
		Category:    tools.CategoryMarket,
		Schema: klineSchema([]string{"linear", "inverse"},
			"Product type: 'linear' for USDT perpetuals, 'inverse' for coin-margined futures"),
		Invoke: klineInvoke(func(ctx context.Context, ex bybit.Exchange, p bybit.GetKlineParams) (json.RawMessage, error) {
			return ex.GetIndexPriceKline(ctx, p)
		}),
	}
}

func GetPremiumIndexPriceKline() tools.Definition {
	return tools.Definition{
		Name:        "get_premium_index_price_kline",
		Description: "Get premium index price candlestick data for linear perpetuals. Premium index shows the funding rate basis and is used to calculate funding payments.",
		Category:    tools.CategoryMarket,
		Schema: klineSchema([]string{"linear"},
			"Product type: only 'linear' (USDT perpetuals) supported"),
		Invoke: klineInvoke(func(ctx context.Context, ex bybit.Exchange, p bybit.GetKlineParams) (json.RawMessage, error) {
			return ex.GetPremiumIndexPriceKline(ctx, p)
		}),
	}
}
