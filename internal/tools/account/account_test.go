package account

import (
	"context"
	"encoding/json"
	"testing"

	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
	"bybitmcp/internal/tools"
)

type accountRecorder struct {
	bybit.Exchange
	orders  *bybit.GetOpenClosedOrdersParams
	balance *bybit.GetWalletBalanceParams
}

func (r *accountRecorder) GetOpenClosedOrders(_ context.Context, p bybit.GetOpenClosedOrdersParams) (json.RawMessage, error) {
	r.orders = &p
	return json.RawMessage(`{"list":[]}`), nil
}

func (r *accountRecorder) GetWalletBalance(_ context.Context, p bybit.GetWalletBalanceParams) (json.RawMessage, error) {
	r.balance = &p
	return json.RawMessage(`{"list":[]}`), nil
}

func TestGetOpenClosedOrdersDefaults(t *testing.T) {
	def := GetOpenClosedOrders()
	normalized, err := def.Schema.Validate(map[string]any{"category": "linear"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	rec := &accountRecorder{}
	if _, err := def.Invoke(context.Background(), tools.ToolDependencies{Exchange: rec}, normalized); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if rec.orders.Limit != 20 {
		t.Errorf("limit = %d, want default 20", rec.orders.Limit)
	}
	if rec.orders.OpenOnly == nil || *rec.orders.OpenOnly != 0 {
		t.Errorf("openOnly = %v, want explicit 0", rec.orders.OpenOnly)
	}
}

func TestGetWalletBalanceRequiresAccountType(t *testing.T) {
	def := GetWalletBalance()

	_, err := def.Schema.Validate(map[string]any{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	verr := err.(*schema.ValidationError)
	fields := verr.Fields()
	if len(fields) != 1 || fields[0] != "accountType" {
		t.Errorf("fields = %v", fields)
	}

	_, err = def.Schema.Validate(map[string]any{"accountType": "MARGIN"})
	if err == nil {
		t.Error("unknown account type accepted")
	}

	normalized, err := def.Schema.Validate(map[string]any{"accountType": "UNIFIED", "coin": "USDT"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	rec := &accountRecorder{}
	if _, err := def.Invoke(context.Background(), tools.ToolDependencies{Exchange: rec}, normalized); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if rec.balance.AccountType != "UNIFIED" || rec.balance.Coin != "USDT" {
		t.Errorf("params = %+v", rec.balance)
	}
}

func TestAccountToolsAreQueriesOnly(t *testing.T) {
	defs := Definitions()
	if len(defs) != 6 {
		t.Fatalf("account tools = %d, want 6", len(defs))
	}
	for _, def := range defs {
		if def.Trading {
			t.Errorf("query tool %q must not be trading-gated", def.Name)
		}
	}
}
