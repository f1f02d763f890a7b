package bybit

import (
	"context"
	"encoding/json"
	"net/url"
)

type GetPositionInfoParams struct {
	Category   string `mapstructure:"category"`
	Symbol     string `mapstructure:"symbol"`
	BaseCoin   string `mapstructure:"baseCoin"`
	SettleCoin string `mapstructure:"settleCoin"`
	Limit      int64  `mapstructure:"limit"`
	Cursor     string `mapstructure:"cursor"`
}

type GetClosedPnlParams struct {
	Category  string `mapstructure:"category"`
	Symbol    string `mapstructure:"symbol"`
	StartTime int64  `mapstructure:"startTime"`
	EndTime   int64  `mapstructure:"endTime"`
	Limit     int64  `mapstructure:"limit"`
	Cursor    string `mapstructure:"cursor"`
}

type SetLeverageParams struct {
	Category     string `mapstructure:"category"`
	Symbol       string `mapstructure:"symbol"`
	BuyLeverage  string `mapstructure:"buyLeverage"`
	SellLeverage string `mapstructure:"sellLeverage"`
}

type SwitchCrossIsolatedMarginParams struct {
	Category     string `mapstructure:"category"`
	Symbol       string `mapstructure:"symbol"`
	TradeMode    *int64 `mapstructure:"tradeMode"`
	BuyLeverage  string `mapstructure:"buyLeverage"`
	SellLeverage string `mapstructure:"sellLeverage"`
}

type SwitchPositionModeParams struct {
	Category string `mapstructure:"category"`
	Symbol   string `mapstructure:"symbol"`
	Coin     string `mapstructure:"coin"`
	Mode     *int64 `mapstructure:"mode"`
}

type SetTradingStopParams struct {
	Category     string `mapstructure:"category"`
	Symbol       string `mapstructure:"symbol"`
	PositionIdx  *int64 `mapstructure:"positionIdx"`
	TakeProfit   string `mapstructure:"takeProfit"`
	StopLoss     string `mapstructure:"stopLoss"`
	TrailingStop string `mapstructure:"trailingStop"`
	TpTriggerBy  string `mapstructure:"tpTriggerBy"`
	SlTriggerBy  string `mapstructure:"slTriggerBy"`
	ActivePrice  string `mapstructure:"activePrice"`
	TpslMode     string `mapstructure:"tpslMode"`
	TpSize       string `mapstructure:"tpSize"`
	SlSize       string `mapstructure:"slSize"`
	TpLimitPrice string `mapstructure:"tpLimitPrice"`
	SlLimitPrice string `mapstructure:"slLimitPrice"`
	TpOrderType  string `mapstructure:"tpOrderType"`
	SlOrderType  string `mapstructure:"slOrderType"`
}

type SetAutoAddMarginParams struct {
	Category      string `mapstructure:"category"`
	Symbol        string `mapstructure:"symbol"`
	AutoAddMargin *int64 `mapstructure:"autoAddMargin"`
	PositionIdx   *int64 `mapstructure:"positionIdx"`
}

type ModifyPositionMarginParams struct {
	Category    string `mapstructure:"category"`
	Symbol      string `mapstructure:"symbol"`
	Margin      string `mapstructure:"margin"`
	PositionIdx *int64 `mapstructure:"positionIdx"`
}

func (c *Client) GetPositionInfo(ctx context.Context, p GetPositionInfoParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	setIf(q, "symbol", p.Symbol)
	setIf(q, "baseCoin", p.BaseCoin)
	setIf(q, "settleCoin", p.SettleCoin)
	setInt(q, "limit", p.Limit)
	setIf(q, "cursor", p.Cursor)
	return c.get(ctx, "/v5/position/list", q)
}

func (c *Client) GetClosedPnl(ctx context.Context, p GetClosedPnlParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	setIf(q, "symbol", p.Symbol)
	setInt(q, "startTime", p.StartTime)
	setInt(q, "endTime", p.EndTime)
	setInt(q, "limit", p.Limit)
	setIf(q, "cursor", p.Cursor)
	return c.get(ctx, "/v5/position/closed-pnl", q)
}

func (c *Client) SetLeverage(ctx context.Context, p SetLeverageParams) (json.RawMessage, error) {
	body := map[string]any{
		"category":     p.Category,
		"symbol":       p.Symbol,
		"buyLeverage":  p.BuyLeverage,
		"sellLeverage": p.SellLeverage,
	}
	return c.post(ctx, "/v5/position/set-leverage", body)
}

func (c *Client) SwitchCrossIsolatedMargin(ctx context.Context, p SwitchCrossIsolatedMarginParams) (json.RawMessage, error) {
	body := map[string]any{
		"category":     p.Category,
		"symbol":       p.Symbol,
		"buyLeverage":  p.BuyLeverage,
		"sellLeverage": p.SellLeverage,
	}
	putIntPtr(body, "tradeMode", p.TradeMode)
	return c.post(ctx, "/v5/position/switch-isolated", body)
}

func (c *Client) SwitchPositionMode(ctx context.Context, p SwitchPositionModeParams) (json.RawMessage, error) {
	body := map[string]any{"category": p.Category}
	putIf(body, "symbol", p.Symbol)
	putIf(body, "coin", p.Coin)
	putIntPtr(body, "mode", p.Mode)
	return c.post(ctx, "/v5/position/switch-mode", body)
}

func (c *Client) SetTradingStop(ctx context.Context, p SetTradingStopParams) (json.RawMessage, error) {
	body := map[string]any{
		"category": p.Category,
		"symbol":   p.Symbol,
	}
	putIntPtr(body, "positionIdx", p.PositionIdx)
	putIf(body, "takeProfit", p.TakeProfit)
	putIf(body, "stopLoss", p.StopLoss)
	putIf(body, "trailingStop", p.TrailingStop)
	putIf(body, "tpTriggerBy", p.TpTriggerBy)
	putIf(body, "slTriggerBy", p.SlTriggerBy)
	putIf(body, "activePrice", p.ActivePrice)
	putIf(body, "tpslMode", p.TpslMode)
	putIf(body, "tpSize", p.TpSize)
	putIf(body, "slSize", p.SlSize)
	putIf(body, "tpLimitPrice", p.TpLimitPrice)
	putIf(body, "slLimitPrice", p.SlLimitPrice)
	putIf(body, "tpOrderType", p.TpOrderType)
	putIf(body, "slOrderType", p.SlOrderType)
	return c.post(ctx, "/v5/position/trading-stop", body)
}

func (c *Client) SetAutoAddMargin(ctx context.Context, p SetAutoAddMarginParams) (json.RawMessage, error) {
	body := map[string]any{
		"category": p.Category,
		"symbol":   p.Symbol,
	}
	putIntPtr(body, "autoAddMargin", p.AutoAddMargin)
	putIntPtr(body, "positionIdx", p.PositionIdx)
	return c.post(ctx, "/v5/position/set-auto-add-margin", body)
}

func (c *Client) ModifyPositionMargin(ctx context.Context, p ModifyPositionMarginParams) (json.RawMessage, error) {
	body := map[string]any{
		"category": p.Category,
		"symbol":   p.Symbol,
		"margin":   p.Margin,
	}
	putIntPtr(body, "positionIdx", p.PositionIdx)
	return c.post(ctx, "/v5/position/add-margin", body)
}
