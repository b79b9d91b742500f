package fund

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/qwertyexchange/cryptopawn/internal/common"
	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

// ToChainQuantity converts a human-readable decimal amount into the
// integer quantity the chain expects, scaled by the token's registered
// decimals. Excess fractional digits are truncated, never rounded up.
func (r *Registry) ToChainQuantity(amount, denom string) (string, error) {
	decimals, err := r.Decimals(denom)
	if err != nil {
		return "", err
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", err
	}

	return d.Shift(decimals).Truncate(0).String(), nil
}

// FromChainQuantity is the inverse of ToChainQuantity.
func (r *Registry) FromChainQuantity(amount, denom string) (string, error) {
	decimals, err := r.Decimals(denom)
	if err != nil {
		return "", err
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", err
	}

	return d.Shift(-decimals).String(), nil
}

// CoinsToChain returns a copy of the proposition whose coin legs carry
// chain-integer quantities. The contract validates the attached funds
// against the declared coins, so a create payload must carry its legs
// in chain units too.
func (r *Registry) CoinsToChain(p pawn.Proposition) (pawn.Proposition, error) {
	for _, leg := range []*pawn.Coin{&p.Assets, &p.Deposit, &p.Premium} {
		q, err := r.ToChainQuantity(leg.Amount, leg.Denom)
		if err != nil {
			return pawn.Proposition{}, err
		}

		leg.Amount = q
	}

	return p, nil
}

// FundsForCreate returns the funds the creator escrows: the collateral
// side (deposit + premium) for an ask, the assets side for a bid.
func (r *Registry) FundsForCreate(p pawn.Proposition) ([]pawn.Coin, error) {
	if p.IsAsk() {
		return r.collateralFunds(p)
	}

	return r.assetsFunds(p)
}

// FundsForAccept returns the funds the accepting counterparty supplies:
// whichever side the creator did not escrow.
func (r *Registry) FundsForAccept(p pawn.Proposition) ([]pawn.Coin, error) {
	if p.IsAsk() {
		return r.assetsFunds(p)
	}

	return r.collateralFunds(p)
}

// FundsForClose returns the assets side when the actor is the borrower,
// otherwise the explicit empty-funds marker. Some broadcast layers reject
// a literal empty list, so the marker is a single zero-amount entry in
// the native fee denom.
func (r *Registry) FundsForClose(p pawn.Proposition, actor string) ([]pawn.Coin, error) {
	if common.IsSameAddress(actor, p.Borrower()) {
		return r.assetsFunds(p)
	}

	return []pawn.Coin{{Denom: r.nativeDenom, Amount: "0"}}, nil
}

func (r *Registry) assetsFunds(p pawn.Proposition) ([]pawn.Coin, error) {
	return r.sumFunds(p.Assets)
}

func (r *Registry) collateralFunds(p pawn.Proposition) ([]pawn.Coin, error) {
	return r.sumFunds(p.Deposit, p.Premium)
}

// sumFunds converts each leg to its chain quantity and merges legs
// sharing a denom additively. Zero-amount legs are kept: the contract
// requires an entry for every denom declared on the offer.
func (r *Registry) sumFunds(legs ...pawn.Coin) ([]pawn.Coin, error) {
	totals := map[string]decimal.Decimal{}
	for _, leg := range legs {
		totals[leg.Denom] = decimal.Zero
	}

	for _, leg := range legs {
		q, err := r.ToChainQuantity(leg.Amount, leg.Denom)
		if err != nil {
			return nil, err
		}

		d, err := decimal.NewFromString(q)
		if err != nil {
			return nil, err
		}

		totals[leg.Denom] = totals[leg.Denom].Add(d)
	}

	funds := make([]pawn.Coin, 0, len(totals))
	for denom, amount := range totals {
		funds = append(funds, pawn.Coin{Denom: denom, Amount: amount.String()})
	}

	// stable command bytes
	sort.Slice(funds, func(i, j int) bool {
		return funds[i].Denom < funds[j].Denom
	})

	return funds, nil
}
