package pawn

import "context"

// contract entry point names, also the method discriminator emitted in
// wasm event attributes
const (
	MethodCreateProposition = "create_proposition"
	MethodAcceptProposition = "accept_proposition"
	MethodRejectProposition = "reject_proposition"
	MethodCloseProposition  = "close_proposition"
)

// ChainEvent is a decoded wasm event emitted by the contract during a
// transaction. Attributes holds the full decoded attribute map; the named
// fields are the ones the dispatcher acts on.
type ChainEvent struct {
	Method        string
	Owner         string
	Contractor    string
	PropositionID string
	Attributes    map[string]string
}

// CommandGateway builds and broadcasts contract-execution commands. The
// returned string is the transaction hash reported by the broadcaster.
type CommandGateway interface {
	CreateProposition(ctx context.Context, sender string, p Proposition, funds []Coin) (string, error)
	AcceptProposition(ctx context.Context, sender, propositionID string, funds []Coin) (string, error)
	RejectProposition(ctx context.Context, sender, propositionID string) (string, error)
	CloseProposition(ctx context.Context, sender, propositionID string, funds []Coin) (string, error)
}

// PropositionQuerier reads propositions from the contract's state.
type PropositionQuerier interface {
	GetPropositions(ctx context.Context, limit int) ([]Proposition, error)
}
