package store

import (
	"context"
	"sync"
	"time"

	"github.com/qwertyexchange/cryptopawn/internal/fund"
	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

const fetchLimit = 100

// Store is a session-scoped cache of propositions plus the orchestration
// of the four lifecycle actions. The chain is the single source of truth:
// the cache is replaced wholesale by FetchPropositions and never patched
// after a successful command. Callers re-fetch to observe new state.
type Store struct {
	mu     sync.RWMutex
	offers []pawn.Proposition

	wallet   string
	registry *fund.Registry
	querier  pawn.PropositionQuerier
	gateway  pawn.CommandGateway
}

func New(wallet string, registry *fund.Registry, querier pawn.PropositionQuerier, gateway pawn.CommandGateway) *Store {
	return &Store{
		wallet:   wallet,
		registry: registry,
		querier:  querier,
		gateway:  gateway,
	}
}

// Offers returns a snapshot of the cached propositions.
func (s *Store) Offers() []pawn.Proposition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offers := make([]pawn.Proposition, len(s.offers))
	copy(offers, s.offers)

	return offers
}

func (s *Store) find(propositionID string) (pawn.Proposition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.offers {
		if p.ID == propositionID {
			return p, true
		}
	}

	return pawn.Proposition{}, false
}

// FetchPropositions queries the contract state and replaces the entire
// cached collection. Only the first page is observable; the query has a
// fixed window and no cursor is threaded through.
func (s *Store) FetchPropositions(ctx context.Context) error {
	offers, err := s.querier.GetPropositions(ctx, fetchLimit)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.offers = offers
	s.mu.Unlock()

	return nil
}

// CreateProposition normalizes the draft and submits it with the funds
// the creator escrows. Normalization happens here, exactly once, into a
// fresh value; the caller's draft is never mutated. The payload's coin
// legs are converted to chain units so the contract's funds validation
// matches what is escrowed; the owner is whoever signs, so it is not
// part of the payload.
func (s *Store) CreateProposition(ctx context.Context, draft pawn.Draft) (string, error) {
	p := draft.Normalize(time.Now())

	funds, err := s.registry.FundsForCreate(p)
	if err != nil {
		return "", err
	}

	p, err = s.registry.CoinsToChain(p)
	if err != nil {
		return "", err
	}

	hash, err := s.gateway.CreateProposition(ctx, s.wallet, p, funds)
	if err != nil {
		return "", &pawn.BroadcastError{Err: err}
	}

	return hash, nil
}

// AcceptProposition supplies the side of the offer the creator did not
// escrow and submits the accept command.
func (s *Store) AcceptProposition(ctx context.Context, propositionID string) (string, error) {
	p, ok := s.find(propositionID)
	if !ok {
		return "", pawn.ErrNotFound
	}

	funds, err := s.registry.FundsForAccept(p)
	if err != nil {
		return "", err
	}

	hash, err := s.gateway.AcceptProposition(ctx, s.wallet, propositionID, funds)
	if err != nil {
		return "", &pawn.BroadcastError{Err: err}
	}

	return hash, nil
}

func (s *Store) RejectProposition(ctx context.Context, propositionID string) (string, error) {
	_, ok := s.find(propositionID)
	if !ok {
		return "", pawn.ErrNotFound
	}

	hash, err := s.gateway.RejectProposition(ctx, s.wallet, propositionID)
	if err != nil {
		return "", &pawn.BroadcastError{Err: err}
	}

	return hash, nil
}

// CloseProposition submits the close command with the assets funds when
// the acting wallet is the borrower, otherwise with the empty-funds
// marker. Whether the close is actually reachable in the proposition's
// current state is for the contract to decide.
func (s *Store) CloseProposition(ctx context.Context, propositionID string) (string, error) {
	p, ok := s.find(propositionID)
	if !ok {
		return "", pawn.ErrNotFound
	}

	funds, err := s.registry.FundsForClose(p, s.wallet)
	if err != nil {
		return "", err
	}

	hash, err := s.gateway.CloseProposition(ctx, s.wallet, propositionID, funds)
	if err != nil {
		return "", &pawn.BroadcastError{Err: err}
	}

	return hash, nil
}
