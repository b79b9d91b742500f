package pawn

import "time"

type PropositionType string

const (
	Ask PropositionType = "ask"
	Bid PropositionType = "bid"
)

type PropositionState string

const (
	StateActive   PropositionState = "active"
	StateAccepted PropositionState = "accepted"
	StateClosed   PropositionState = "closed"
	StateRejected PropositionState = "rejected"
)

// Coin is a (denom, amount) pair. Amount is a decimal string in human
// units on a Proposition and an integer string once converted for the chain.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type Proposition struct {
	ID              string           `json:"id,omitempty"`
	Owner           string           `json:"owner,omitempty"`
	Contractor      string           `json:"contractor,omitempty"`
	PropositionType PropositionType  `json:"proposition_type"`
	State           PropositionState `json:"state,omitempty"`
	Deposit         Coin             `json:"deposit"`
	Assets          Coin             `json:"assets"`
	Premium         Coin             `json:"premium"`
	Period          int64            `json:"period"`
	Expiry          int64            `json:"expiry"`
}

func (p *Proposition) IsAsk() bool {
	return p.PropositionType == Ask
}

func (p *Proposition) IsBid() bool {
	return p.PropositionType == Bid
}

// Borrower is the party receiving the assets: the owner on an ask offer,
// the counterparty on a bid.
func (p *Proposition) Borrower() string {
	if p.IsAsk() {
		return p.Owner
	}
	return p.Contractor
}

// Lender is the party supplying the assets.
func (p *Proposition) Lender() string {
	if p.IsBid() {
		return p.Owner
	}
	return p.Contractor
}

func (p *Proposition) IsExpired(now time.Time) bool {
	return now.Unix() > p.Expiry
}

// Draft is a proposition as entered by the user: period in minutes, expiry
// as a day offset from now. Normalize converts those to the chain's units.
// The owner is never part of a draft, the chain assigns it from the
// transaction sender.
type Draft struct {
	Contractor      string          `json:"contractor,omitempty"`
	PropositionType PropositionType `json:"proposition_type"`
	Deposit         Coin            `json:"deposit"`
	Assets          Coin            `json:"assets"`
	Premium         Coin            `json:"premium"`
	PeriodMinutes   int64           `json:"period"`
	ExpiryDays      int64           `json:"expiry"`
}

// Normalize produces a fresh Proposition with period in seconds and expiry
// as an absolute unix timestamp. The draft itself is left untouched, so
// calling it twice on the same draft yields the same result.
func (d Draft) Normalize(now time.Time) Proposition {
	return Proposition{
		Contractor:      d.Contractor,
		PropositionType: d.PropositionType,
		Deposit:         d.Deposit,
		Assets:          d.Assets,
		Premium:         d.Premium,
		Period:          d.PeriodMinutes * 60,
		Expiry:          now.Unix() + d.ExpiryDays*24*60*60,
	}
}
