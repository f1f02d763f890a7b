package bybit

import (
	"context"
	"encoding/json"
	"net/url"
)

type GetWalletBalanceParams struct {
	AccountType string `mapstructure:"accountType"`
	Coin        string `mapstructure:"coin"`
}

type GetSingleCoinBalanceParams struct {
	AccountType   string `mapstructure:"accountType"`
	Coin          string `mapstructure:"coin"`
	MemberID      string `mapstructure:"memberId"`
	ToAccountType string `mapstructure:"toAccountType"`
	ToMemberID    string `mapstructure:"toMemberId"`
	WithBonus     *int64 `mapstructure:"withBonus"`
}

func (c *Client) GetWalletBalance(ctx context.Context, p GetWalletBalanceParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("accountType", p.AccountType)
	setIf(q, "coin", p.Coin)
	return c.get(ctx, "/v5/account/wallet-balance", q)
}

func (c *Client) GetSingleCoinBalance(ctx context.Context, p GetSingleCoinBalanceParams) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("accountType", p.AccountType)
	q.Set("coin", p.Coin)
	setIf(q, "memberId", p.MemberID)
	setIf(q, "toAccountType", p.ToAccountType)
	setIf(q, "toMemberId", p.ToMemberID)
	setIntPtr(q, "withBonus", p.WithBonus)
	return c.get(ctx, "/v5/asset/transfer/query-account-coin-balance", q)
}

func (c *Client) GetAccountInfo(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/v5/account/info", url.Values{})
}
