package bybit

import (
	"context"
	"encoding/json"
)

// Exchange is the outbound surface the dispatcher binds tools to: exactly one
// operation per catalog tool, named for the tool it serves. Payloads are the
// raw `result` objects from the exchange, opaque to everything above this
// package.
type Exchange interface {
	// Market data.
	GetServerTime(ctx context.Context) (json.RawMessage, error)
	GetTickers(ctx context.Context, p GetTickersParams) (json.RawMessage, error)
	GetOrderBook(ctx context.Context, p GetOrderBookParams) (json.RawMessage, error)
	GetRecentTrades(ctx context.Context, p GetRecentTradesParams) (json.RawMessage, error)
	GetKline(ctx context.Context, p GetKlineParams) (json.RawMessage, error)
	GetMarkPriceKline(ctx context.Context, p GetKlineParams) (json.RawMessage, error)
	GetIndexPriceKline(ctx context.Context, p GetKlineParams) (json.RawMessage, error)
	GetPremiumIndexPriceKline(ctx context.Context, p GetKlineParams) (json.RawMessage, error)
	GetInstrumentsInfo(ctx context.Context, p GetInstrumentsInfoParams) (json.RawMessage, error)
	GetFundingRateHistory(ctx context.Context, p GetFundingRateHistoryParams) (json.RawMessage, error)
	GetOpenInterest(ctx context.Context, p GetOpenInterestParams) (json.RawMessage, error)
	GetInsurance(ctx context.Context, p GetInsuranceParams) (json.RawMessage, error)
	GetRiskLimit(ctx context.Context, p GetRiskLimitParams) (json.RawMessage, error)
	GetLongShortRatio(ctx context.Context, p GetLongShortRatioParams) (json.RawMessage, error)

	// Order management.
	PlaceOrder(ctx context.Context, p PlaceOrderParams) (json.RawMessage, error)
	PlaceTriggerOrder(ctx context.Context, p PlaceTriggerOrderParams) (json.RawMessage, error)
	AmendOrder(ctx context.Context, p AmendOrderParams) (json.RawMessage, error)
	CancelOrder(ctx context.Context, p CancelOrderParams) (json.RawMessage, error)
	CancelAllOrders(ctx context.Context, p CancelAllOrdersParams) (json.RawMessage, error)
	BatchPlaceOrder(ctx context.Context, p BatchOrderParams) (json.RawMessage, error)
	BatchAmendOrder(ctx context.Context, p BatchOrderParams) (json.RawMessage, error)
	BatchCancelOrder(ctx context.Context, p BatchOrderParams) (json.RawMessage, error)

	// Account and order/trade queries.
	GetOpenClosedOrders(ctx context.Context, p GetOpenClosedOrdersParams) (json.RawMessage, error)
	GetOrderHistory(ctx context.Context, p GetOrderHistoryParams) (json.RawMessage, error)
	GetTradeHistory(ctx context.Context, p GetTradeHistoryParams) (json.RawMessage, error)
	GetWalletBalance(ctx context.Context, p GetWalletBalanceParams) (json.RawMessage, error)
	GetSingleCoinBalance(ctx context.Context, p GetSingleCoinBalanceParams) (json.RawMessage, error)
	GetAccountInfo(ctx context.Context) (json.RawMessage, error)

	// Positions.
	GetPositionInfo(ctx context.Context, p GetPositionInfoParams) (json.RawMessage, error)
	GetClosedPnl(ctx context.Context, p GetClosedPnlParams) (json.RawMessage, error)
	SetLeverage(ctx context.Context, p SetLeverageParams) (json.RawMessage, error)
	SwitchCrossIsolatedMargin(ctx context.Context, p SwitchCrossIsolatedMarginParams) (json.RawMessage, error)
	SwitchPositionMode(ctx context.Context, p SwitchPositionModeParams) (json.RawMessage, error)
	SetTradingStop(ctx context.Context, p SetTradingStopParams) (json.RawMessage, error)
	SetAutoAddMargin(ctx context.Context, p SetAutoAddMarginParams) (json.RawMessage, error)
	ModifyPositionMargin(ctx context.Context, p ModifyPositionMarginParams) (json.RawMessage, error)
}

var _ Exchange = (*Client)(nil)
