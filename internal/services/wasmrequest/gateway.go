package wasmrequest

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

// ExecMsg is a contract-execution command ready for signing and
// submission.
type ExecMsg struct {
	Contract string          `json:"contract"`
	Sender   string          `json:"sender"`
	Funds    []pawn.Coin     `json:"funds,omitempty"`
	Msg      json.RawMessage `json:"msg"`
}

// Broadcaster is the external signing/broadcast capability. It signs the
// command with the sender's wallet and submits it for inclusion.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg ExecMsg) (string, error)
}

// Gateway builds contract-execution commands and hands them to the
// broadcaster. It does not retry and does not interpret chain errors;
// broadcast results pass through unchanged.
type Gateway struct {
	contract string
	bc       Broadcaster
}

func NewGateway(contract string, bc Broadcaster) *Gateway {
	return &Gateway{
		contract: contract,
		bc:       bc,
	}
}

func (g *Gateway) execute(ctx context.Context, sender string, funds []pawn.Coin, entryPoint string, args any) (string, error) {
	payload, err := json.Marshal(map[string]any{
		entryPoint: args,
	})
	if err != nil {
		return "", err
	}

	return g.bc.Broadcast(ctx, ExecMsg{
		Contract: g.contract,
		Sender:   sender,
		Funds:    funds,
		Msg:      payload,
	})
}

// createArgs is the create_proposition argument set as the contract
// declares it. The contract takes the owner from the signer and rejects
// payloads with undeclared fields.
type createArgs struct {
	PropositionType pawn.PropositionType `json:"proposition_type"`
	Deposit         pawn.Coin            `json:"deposit"`
	Assets          pawn.Coin            `json:"assets"`
	Premium         pawn.Coin            `json:"premium"`
	Period          int64                `json:"period"`
	Expiry          int64                `json:"expiry"`
	Contractor      string               `json:"contractor,omitempty"`
}

func (g *Gateway) CreateProposition(ctx context.Context, sender string, p pawn.Proposition, funds []pawn.Coin) (string, error) {
	return g.execute(ctx, sender, funds, pawn.MethodCreateProposition, createArgs{
		PropositionType: p.PropositionType,
		Deposit:         p.Deposit,
		Assets:          p.Assets,
		Premium:         p.Premium,
		Period:          p.Period,
		Expiry:          p.Expiry,
		Contractor:      p.Contractor,
	})
}

// propositionArgs carries the id the way the contract declares it, as a
// number.
func propositionArgs(propositionID string) (map[string]uint64, error) {
	id, err := strconv.ParseUint(propositionID, 10, 64)
	if err != nil {
		return nil, err
	}

	return map[string]uint64{"proposition_id": id}, nil
}

func (g *Gateway) AcceptProposition(ctx context.Context, sender, propositionID string, funds []pawn.Coin) (string, error) {
	args, err := propositionArgs(propositionID)
	if err != nil {
		return "", err
	}

	return g.execute(ctx, sender, funds, pawn.MethodAcceptProposition, args)
}

func (g *Gateway) RejectProposition(ctx context.Context, sender, propositionID string) (string, error) {
	args, err := propositionArgs(propositionID)
	if err != nil {
		return "", err
	}

	return g.execute(ctx, sender, nil, pawn.MethodRejectProposition, args)
}

func (g *Gateway) CloseProposition(ctx context.Context, sender, propositionID string, funds []pawn.Coin) (string, error) {
	args, err := propositionArgs(propositionID)
	if err != nil {
		return "", err
	}

	return g.execute(ctx, sender, funds, pawn.MethodCloseProposition, args)
}
