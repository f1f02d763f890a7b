package bybit

import (
	"context"
	"encoding/json"
	"net/url"
)

type GetTickersParams struct {
	Category string `mapstructure:"category"`
	Symbol   string `mapstructure:"symbol"`
	BaseCoin string `mapstructure:"baseCoin"`
	ExpDate  string `mapstructure:"expDate"`
}

type GetOrderBookParams struct {
	Category string `mapstructure:"category"`
	Symbol   string `mapstructure:"symbol"`
	Limit    int64  `mapstructure:"limit"`
}

type GetRecentTradesParams struct {
	Category   string `mapstructure:"category"`
	Symbol     string `mapstructure:"symbol"`
	BaseCoin   string `mapstructure:"baseCoin"`
	OptionType string `mapstructure:"optionType"`
	Limit      int64  `mapstructure:"limit"`
}

// GetKlineParams serves all four kline variants; they share one parameter set.
type GetKlineParams struct {
	Category string `mapstructure:"category"`
	Symbol   string `mapstructure:"symbol"`
	Interval string `mapstructure:"interval"`
	Start    int64  `mapstructure:"start"`
	End      int64  `mapstructure:"end"`
	Limit    int64  `mapstructure:"limit"`
}

type GetInstrumentsInfoParams struct {
	Category string `mapstructure:"category"`
	Symbol   string `mapstructure:"symbol"`
	BaseCoin string `mapstructure:"baseCoin"`
	Limit    int64  `mapstructure:"limit"`
	Cursor   string `mapstructure:"cursor"`
}

type GetFundingRateHistoryParams struct {
	Category  string `mapstructure:"category"`
	Symbol    string `mapstructure:"symbol"`
	StartTime int64  `mapstructure:"startTime"`
	EndTime   int64  `mapstructure:"endTime"`
	Limit     int64  `mapstructure:"limit"`
}

type GetOpenInterestParams struct {
	Category  string `mapstructure:"category"`
	Symbol    string `mapstructure:"symbol"`
	Interval  string `mapstructure:"interval"`
	StartTime int64  `mapstructure:"startTime"`
	EndTime   int64  `mapstructure:"endTime"`
	Limit     int64  `mapstructure:"limit"`
	Cursor    string `mapstructure:"cursor"`
}

type GetInsuranceParams struct {
	Coin string `mapstructure:"coin"`
}

type GetRiskLimitParams struct {
	Category string `mapstructure:"category"`
	Symbol   string `mapstructure:"symbol"`
}

type GetLongShortRatioParams struct {
	Category  string `mapstructure:"category"`
	Symbol    string `mapstructure:"symbol"`
	Interval  string `mapstructure:"interval"`
	StartTime int64  `mapstructure:"startTime"`
	EndTime   int64  `mapstructure:"endTime"`
	Limit     int64  `mapstructure:"limit"`
}

func (c *Client) GetServerTime(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/v5/market/time", nil)
}

func (c *Client) GetTickers(ctx context.Context, p GetTickersParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	setIf(q, "symbol", p.Symbol)
	setIf(q, "baseCoin", p.BaseCoin)
	setIf(q, "expDate", p.ExpDate)
	return c.get(ctx, "/v5/market/tickers", q)
}

func (c *Client) GetOrderBook(ctx context.Context, p GetOrderBookParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	q.Set("symbol", p.Symbol)
	setInt(q, "limit", p.Limit)
	return c.get(ctx, "/v5/market/orderbook", q)
}

func (c *Client) GetRecentTrades(ctx context.Context, p GetRecentTradesParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	q.Set("symbol", p.Symbol)
	setIf(q, "baseCoin", p.BaseCoin)
	setIf(q, "optionType", p.OptionType)
	setInt(q, "limit", p.Limit)
	return c.get(ctx, "/v5/market/recent-trade", q)
}

func (c *Client) GetKline(ctx context.Context, p GetKlineParams) (json.RawMessage, error) {
	return c.get(ctx, "/v5/market/kline", klineQuery(p))
}

func (c *Client) GetMarkPriceKline(ctx context.Context, p GetKlineParams) (json.RawMessage, error) {
	return c.get(ctx, "/v5/market/mark-price-kline", klineQuery(p))
}

func (c *Client) GetIndexPriceKline(ctx context.Context, p GetKlineParams) (json.RawMessage, error) {
	return c.get(ctx, "/v5/market/index-price-kline", klineQuery(p))
}

func (c *Client) GetPremiumIndexPriceKline(ctx context.Context, p GetKlineParams) (json.RawMessage, error) {
	return c.get(ctx, "/v5/market/premium-index-price-kline", klineQuery(p))
}

func klineQuery(p GetKlineParams) url.Values {
	q := url.Values{}
	q.Set("category", p.Category)
	q.Set("symbol", p.Symbol)
	q.Set("interval", p.Interval)
	setInt(q, "start", p.Start)
	setInt(q, "end", p.End)
	setInt(q, "limit", p.Limit)
	return q
}

func (c *Client) GetInstrumentsInfo(ctx context.Context, p GetInstrumentsInfoParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	setIf(q, "symbol", p.Symbol)
	setIf(q, "baseCoin", p.BaseCoin)
	setInt(q, "limit", p.Limit)
	setIf(q, "cursor", p.Cursor)
	return c.get(ctx, "/v5/market/instruments-info", q)
}

func (c *Client) GetFundingRateHistory(ctx context.Context, p GetFundingRateHistoryParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	q.Set("symbol", p.Symbol)
	setInt(q, "startTime", p.StartTime)
	setInt(q, "endTime", p.EndTime)
	setInt(q, "limit", p.Limit)
	return c.get(ctx, "/v5/market/funding/history", q)
}

func (c *Client) GetOpenInterest(ctx context.Context, p GetOpenInterestParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	q.Set("symbol", p.Symbol)
	// The tool field is "interval"; the wire parameter is "intervalTime".
	setIf(q, "intervalTime", p.Interval)
	setInt(q, "startTime", p.StartTime)
	setInt(q, "endTime", p.EndTime)
	setInt(q, "limit", p.Limit)
	setIf(q, "cursor", p.Cursor)
	return c.get(ctx, "/v5/market/open-interest", q)
}

func (c *Client) GetInsurance(ctx context.Context, p GetInsuranceParams) (json.RawMessage, error) {
	q := url.Values{}
	setIf(q, "coin", p.Coin)
	return c.get(ctx, "/v5/market/insurance", q)
}

func (c *Client) GetRiskLimit(ctx context.Context, p GetRiskLimitParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	setIf(q, "symbol", p.Symbol)
	return c.get(ctx, "/v5/market/risk-limit", q)
}

func (c *Client) GetLongShortRatio(ctx context.Context, p GetLongShortRatioParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	q.Set("symbol", p.Symbol)
	// The tool field is "interval"; the wire parameter is "period".
	setIf(q, "period", p.Interval)
	setInt(q, "startTime", p.StartTime)
	setInt(q, "endTime", p.EndTime)
	setInt(q, "limit", p.Limit)
	return c.get(ctx, "/v5/market/account-ratio", q)
}
