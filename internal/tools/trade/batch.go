package trade

import (
	"context"
	"encoding/json"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

// batchMaxOrders is the per-request cap the exchange enforces on batch
// endpoints; exceeding it is rejected locally before any call goes out.
const batchMaxOrders = 20

func batchSchema(itemFields []schema.Field, itemDesc string) schema.Object {
	return schema.Object{
		Fields: []schema.Field{
			{Name: "category", Kind: schema.KindString, Description: "Product category for all orders in the batch", Enum: categoryAll, Required: true},
			{Name: "request", Kind: schema.KindArray, Description: itemDesc, Required: true, MaxItems: batchMaxOrders,
				Items: &schema.Object{Fields: itemFields}},
		},
	}
}

func batchInvoke(call func(context.Context, bybit.Exchange, bybit.BatchOrderParams) (json.RawMessage, error)) tools.InvokeFunc {
	return func(ctx context.Context, deps tools.ToolDependencies, args map[string]any) (json.RawMessage, error) {
		var p bybit.BatchOrderParams
		if err := tools.Decode(args, &p); err != nil {
			return nil, err
		}
		return call(ctx, deps.Exchange, p)
	}
}

func BatchPlaceOrder() tools.Definition {
	return tools.Definition{
		Name:        "batch_place_order",
		Description: "Place multiple orders in a single request. More efficient than placing orders individually. All orders must be in the same category.",
		Category:    tools.CategoryTrade,
		Trading:     true,
		Schema: batchSchema([]schema.Field{
			{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol", Required: true},
			{Name: "side", Kind: schema.KindString, Description: "Order side", Enum: orderSides, Required: true},
			{Name: "orderType", Kind: schema.KindString, Description: "Order type", Enum: orderTypes, Required: true},
			{Name: "qty", Kind: schema.KindNumericString, Description: "Order quantity", Required: true},
			{Name: "price", Kind: schema.KindNumericString, Description: "Order price (required for Limit orders)"},
			{Name: "orderLinkId", Kind: schema.KindString, Description: "Custom order ID for tracking"},
		}, "Array of order objects to place. Maximum 20 orders per batch"),
		Invoke: batchInvoke(func(ctx context.Context, ex bybit.Exchange, p bybit.BatchOrderParams) (json.RawMessage, error) {
			return ex.BatchPlaceOrder(ctx, p)
		}),
	}
}

func BatchAmendOrder() tools.Definition {
	return tools.Definition{
		Name:        "batch_amend_order",
		Description: "Modify multiple existing orders in a single request. More efficient than amending orders individually. All orders must be in the same category.",
		Category:    tools.CategoryTrade,
		Trading:     true,
		Schema: batchSchema([]schema.Field{
			{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol", Required: true},
			{Name: "orderId", Kind: schema.KindString, Description: "Bybit's order ID (use either orderId or orderLinkId)"},
			{Name: "orderLinkId", Kind: schema.KindString, Description: "Your custom order ID (use either orderId or orderLinkId)"},
			{Name: "qty", Kind: schema.KindNumericString, Description: "New order quantity (optional)"},
			{Name: "price", Kind: schema.KindNumericString, Description: "New order price (optional)"},
		}, "Array of order amendment objects. Maximum 20 orders per batch"),
		Invoke: batchInvoke(func(ctx context.Context, ex bybit.Exchange, p bybit.BatchOrderParams) (json.RawMessage, error) {
			return ex.BatchAmendOrder(ctx, p)
		}),
	}
}

func BatchCancelOrder() tools.Definition {
	return tools.Definition{
		Name:        "batch_cancel_order",
		Description: "Cancel multiple existing orders in a single request. More efficient than canceling orders individually. All orders must be in the same category.",
		Category:    tools.CategoryTrade,
		Trading:     true,
		Schema: batchSchema([]schema.Field{
			{Name: "symbol", Kind: schema.KindString, Description: "Trading pair symbol for the order to cancel", Required: true},
			{Name: "orderId", Kind: schema.KindString, Description: "Bybit's order ID (use either orderId or orderLinkId)"},
			{Name: "orderLinkId", Kind: schema.KindString, Description: "Your custom order ID (use either orderId or orderLinkId)"},
		}, "Array of order cancellation objects. Maximum 20 orders per batch"),
		Invoke: batchInvoke(func(ctx context.Context, ex bybit.Exchange, p bybit.BatchOrderParams) (json.RawMessage, error) {
			return ex.BatchCancelOrder(ctx, p)
		}),
	}
}

// Definitions lists every order management tool in registration order.
func Definitions() []tools.Definition {
	return []tools.Definition{
		PlaceOrder(),
		AmendOrder(),
		CancelOrder(),
		CancelAllOrders(),
		BatchPlaceOrder(),
		BatchAmendOrder(),
		BatchCancelOrder(),
		PlaceTriggerOrder(),
	}
}
