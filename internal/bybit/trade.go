package bybit

import (
	"context"
	"encoding/json"
	"net/url"
)

type PlaceOrderParams struct {
	Category    string `mapstructure:"category"`
	Symbol      string `mapstructure:"symbol"`
	Side        string `mapstructure:"side"`
	OrderType   string `mapstructure:"orderType"`
	Qty         string `mapstructure:"qty"`
	Price       string `mapstructure:"price"`
	IsLeverage  *int64 `mapstructure:"isLeverage"`
	OrderLinkID string `mapstructure:"orderLinkId"`
	TimeInForce string `mapstructure:"timeInForce"`
}

type PlaceTriggerOrderParams struct {
	Category         string `mapstructure:"category"`
	Symbol           string `mapstructure:"symbol"`
	Side             string `mapstructure:"side"`
	OrderType        string `mapstructure:"orderType"`
	Qty              string `mapstructure:"qty"`
	TriggerPrice     string `mapstructure:"triggerPrice"`
	TriggerDirection int64  `mapstructure:"triggerDirection"`
	TriggerBy        string `mapstructure:"triggerBy"`
	Price            string `mapstructure:"price"`
	OrderFilter      string `mapstructure:"orderFilter"`
	TimeInForce      string `mapstructure:"timeInForce"`
	ReduceOnly       *bool  `mapstructure:"reduceOnly"`
	CloseOnTrigger   *bool  `mapstructure:"closeOnTrigger"`
	PositionIdx      *int64 `mapstructure:"positionIdx"`
	OrderLinkID      string `mapstructure:"orderLinkId"`
}

type AmendOrderParams struct {
	Category    string `mapstructure:"category"`
	Symbol      string `mapstructure:"symbol"`
	OrderID     string `mapstructure:"orderId"`
	OrderLinkID string `mapstructure:"orderLinkId"`
	Qty         string `mapstructure:"qty"`
	Price       string `mapstructure:"price"`
}

type CancelOrderParams struct {
	Category    string `mapstructure:"category"`
	Symbol      string `mapstructure:"symbol"`
	OrderID     string `mapstructure:"orderId"`
	OrderLinkID string `mapstructure:"orderLinkId"`
}

type CancelAllOrdersParams struct {
	Category    string `mapstructure:"category"`
	Symbol      string `mapstructure:"symbol"`
	BaseCoin    string `mapstructure:"baseCoin"`
	SettleCoin  string `mapstructure:"settleCoin"`
	OrderFilter string `mapstructure:"orderFilter"`
}

// BatchOrderParams carries a batch request through unchanged: the items were
// already validated element by element, and the exchange's batch endpoint
// receives them as one aggregate call, never as N sequential calls.
type BatchOrderParams struct {
	Category string           `mapstructure:"category"`
	Request  []map[string]any `mapstructure:"request"`
}

type GetOpenClosedOrdersParams struct {
	Category    string `mapstructure:"category"`
	Symbol      string `mapstructure:"symbol"`
	BaseCoin    string `mapstructure:"baseCoin"`
	SettleCoin  string `mapstructure:"settleCoin"`
	OrderID     string `mapstructure:"orderId"`
	OrderLinkID string `mapstructure:"orderLinkId"`
	OpenOnly    *int64 `mapstructure:"openOnly"`
	OrderFilter string `mapstructure:"orderFilter"`
	Limit       int64  `mapstructure:"limit"`
	Cursor      string `mapstructure:"cursor"`
}

type GetOrderHistoryParams struct {
	Category    string `mapstructure:"category"`
	Symbol      string `mapstructure:"symbol"`
	BaseCoin    string `mapstructure:"baseCoin"`
	OrderID     string `mapstructure:"orderId"`
	OrderLinkID string `mapstructure:"orderLinkId"`
	OrderStatus string `mapstructure:"orderStatus"`
	OrderFilter string `mapstructure:"orderFilter"`
	StartTime   int64  `mapstructure:"startTime"`
	EndTime     int64  `mapstructure:"endTime"`
	Limit       int64  `mapstructure:"limit"`
	Cursor      string `mapstructure:"cursor"`
}

type GetTradeHistoryParams struct {
	Category    string `mapstructure:"category"`
	Symbol      string `mapstructure:"symbol"`
	BaseCoin    string `mapstructure:"baseCoin"`
	OrderID     string `mapstructure:"orderId"`
	OrderLinkID string `mapstructure:"orderLinkId"`
	ExecType    string `mapstructure:"execType"`
	StartTime   int64  `mapstructure:"startTime"`
	EndTime     int64  `mapstructure:"endTime"`
	Limit       int64  `mapstructure:"limit"`
	Cursor      string `mapstructure:"cursor"`
}

func (c *Client) PlaceOrder(ctx context.Context, p PlaceOrderParams) (json.RawMessage, error) {
	body := map[string]any{
		"category":  p.Category,
		"symbol":    p.Symbol,
		"side":      p.Side,
		"orderType": p.OrderType,
		"qty":       p.Qty,
	}
	putIf(body, "price", p.Price)
	putIntPtr(body, "isLeverage", p.IsLeverage)
	putIf(body, "orderLinkId", p.OrderLinkID)
	putIf(body, "timeInForce", p.TimeInForce)
	return c.post(ctx, "/v5/order/create", body)
}

// PlaceTriggerOrder shares the order-create endpoint with PlaceOrder; it is a
// separate operation so the mapping from tool to client call stays 1:1.
func (c *Client) PlaceTriggerOrder(ctx context.Context, p PlaceTriggerOrderParams) (json.RawMessage, error) {
	body := map[string]any{
		"category":         p.Category,
		"symbol":           p.Symbol,
		"side":             p.Side,
		"orderType":        p.OrderType,
		"qty":              p.Qty,
		"triggerPrice":     p.TriggerPrice,
		"triggerDirection": p.TriggerDirection,
	}
	putIf(body, "triggerBy", p.TriggerBy)
	putIf(body, "price", p.Price)
	putIf(body, "orderFilter", p.OrderFilter)
	putIf(body, "timeInForce", p.TimeInForce)
	putBoolPtr(body, "reduceOnly", p.ReduceOnly)
	putBoolPtr(body, "closeOnTrigger", p.CloseOnTrigger)
	putIntPtr(body, "positionIdx", p.PositionIdx)
	putIf(body, "orderLinkId", p.OrderLinkID)
	return c.post(ctx, "/v5/order/create", body)
}

func (c *Client) AmendOrder(ctx context.Context, p AmendOrderParams) (json.RawMessage, error) {
	body := map[string]any{
		"category": p.Category,
		"symbol":   p.Symbol,
	}
	putIf(body, "orderId", p.OrderID)
	putIf(body, "orderLinkId", p.OrderLinkID)
	putIf(body, "qty", p.Qty)
	putIf(body, "price", p.Price)
	return c.post(ctx, "/v5/order/amend", body)
}

func (c *Client) CancelOrder(ctx context.Context, p CancelOrderParams) (json.RawMessage, error) {
	body := map[string]any{
		"category": p.Category,
		"symbol":   p.Symbol,
	}
	putIf(body, "orderId", p.OrderID)
	putIf(body, "orderLinkId", p.OrderLinkID)
	return c.post(ctx, "/v5/order/cancel", body)
}

func (c *Client) CancelAllOrders(ctx context.Context, p CancelAllOrdersParams) (json.RawMessage, error) {
	body := map[string]any{"category": p.Category}
	putIf(body, "symbol", p.Symbol)
	putIf(body, "baseCoin", p.BaseCoin)
	putIf(body, "settleCoin", p.SettleCoin)
	putIf(body, "orderFilter", p.OrderFilter)
	return c.post(ctx, "/v5/order/cancel-all", body)
}

func (c *Client) BatchPlaceOrder(ctx context.Context, p BatchOrderParams) (json.RawMessage, error) {
	return c.post(ctx, "/v5/order/create-batch", batchBody(p))
}

func (c *Client) BatchAmendOrder(ctx context.Context, p BatchOrderParams) (json.RawMessage, error) {
	return c.post(ctx, "/v5/order/amend-batch", batchBody(p))
}

func (c *Client) BatchCancelOrder(ctx context.Context, p BatchOrderParams) (json.RawMessage, error) {
	return c.post(ctx, "/v5/order/cancel-batch", batchBody(p))
}

func batchBody(p BatchOrderParams) map[string]any {
	return map[string]any{
		"category": p.Category,
		"request":  p.Request,
	}
}

func (c *Client) GetOpenClosedOrders(ctx context.Context, p GetOpenClosedOrdersParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	setIf(q, "symbol", p.Symbol)
	setIf(q, "baseCoin", p.BaseCoin)
	setIf(q, "settleCoin", p.SettleCoin)
	setIf(q, "orderId", p.OrderID)
	setIf(q, "orderLinkId", p.OrderLinkID)
	setIntPtr(q, "openOnly", p.OpenOnly)
	setIf(q, "orderFilter", p.OrderFilter)
	setInt(q, "limit", p.Limit)
	setIf(q, "cursor", p.Cursor)
	return c.get(ctx, "/v5/order/realtime", q)
}

func (c *Client) GetOrderHistory(ctx context.Context, p GetOrderHistoryParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	setIf(q, "symbol", p.Symbol)
	setIf(q, "baseCoin", p.BaseCoin)
	setIf(q, "orderId", p.OrderID)
	setIf(q, "orderLinkId", p.OrderLinkID)
	setIf(q, "orderStatus", p.OrderStatus)
	setIf(q, "orderFilter", p.OrderFilter)
	setInt(q, "startTime", p.StartTime)
	setInt(q, "endTime", p.EndTime)
	setInt(q, "limit", p.Limit)
	setIf(q, "cursor", p.Cursor)
	return c.get(ctx, "/v5/order/history", q)
}

func (c *Client) GetTradeHistory(ctx context.Context, p GetTradeHistoryParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	setIf(q, "symbol", p.Symbol)
	setIf(q, "baseCoin", p.BaseCoin)
	setIf(q, "orderId", p.OrderID)
	setIf(q, "orderLinkId", p.OrderLinkID)
	setIf(q, "execType", p.ExecType)
	setInt(q, "startTime", p.StartTime)
	setInt(q, "endTime", p.EndTime)
	setInt(q, "limit", p.Limit)
	setIf(q, "cursor", p.Cursor)
	return c.get(ctx, "/v5/execution/list", q)
}
