package wasmrequest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

// WasmService reads smart-contract state through a chain LCD endpoint.
type WasmService struct {
	client   *resty.Client
	contract string
}

type smartStateResponse struct {
	Data string `json:"data"`
}

// propositionRow is one entry of the get_propositions response:
// a [id, fields] pair.
type propositionRow struct {
	ID     json.Number
	Fields pawn.Proposition
}

func (r *propositionRow) UnmarshalJSON(b []byte) error {
	pair := []json.RawMessage{}
	err := json.Unmarshal(b, &pair)
	if err != nil {
		return err
	}

	if len(pair) != 2 {
		return fmt.Errorf("expected [id, proposition] pair, got %d elements", len(pair))
	}

	err = json.Unmarshal(pair[0], &r.ID)
	if err != nil {
		return err
	}

	return json.Unmarshal(pair[1], &r.Fields)
}

func NewWasmService(lcdURL, contract string) *WasmService {
	client := resty.New().
		SetBaseURL(lcdURL).
		SetTimeout(15 * time.Second)

	return &WasmService{
		client:   client,
		contract: contract,
	}
}

// FetchSmartContractState issues a read-only query against the contract.
// The payload is base64-encoded on the way out and the response data is
// base64-encoded JSON on the way back.
func (s *WasmService) FetchSmartContractState(ctx context.Context, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	query := base64.StdEncoding.EncodeToString(data)

	result := &smartStateResponse{}
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(result).
		Get(fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s/smart/%s", s.contract, query))
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("contract state query failed: %s", resp.Status())
	}

	return base64.StdEncoding.DecodeString(result.Data)
}

// GetPropositions fetches up to limit propositions, newest first.
func (s *WasmService) GetPropositions(ctx context.Context, limit int) ([]pawn.Proposition, error) {
	payload := map[string]any{
		"get_propositions": map[string]any{
			"limit": limit,
		},
	}

	data, err := s.FetchSmartContractState(ctx, payload)
	if err != nil {
		return nil, err
	}

	rows := []propositionRow{}
	err = json.Unmarshal(data, &rows)
	if err != nil {
		return nil, err
	}

	props := make([]pawn.Proposition, 0, len(rows))
	for _, row := range rows {
		p := row.Fields
		p.ID = row.ID.String()
		props = append(props, p)
	}

	return props, nil
}

// GetProposition fetches a single proposition by id.
func (s *WasmService) GetProposition(ctx context.Context, propositionID string) (*pawn.Proposition, error) {
	id, err := strconv.ParseUint(propositionID, 10, 64)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"get_proposition": map[string]any{
			"proposition_id": id,
		},
	}

	data, err := s.FetchSmartContractState(ctx, payload)
	if err != nil {
		return nil, err
	}

	p := &pawn.Proposition{}
	err = json.Unmarshal(data, p)
	if err != nil {
		return nil, err
	}

	if p.ID == "" {
		p.ID = propositionID
	}

	return p, nil
}

// GetPropositionCount fetches the total number of propositions ever created.
func (s *WasmService) GetPropositionCount(ctx context.Context) (string, error) {
	payload := map[string]any{
		"get_proposition_count": map[string]any{},
	}

	data, err := s.FetchSmartContractState(ctx, payload)
	if err != nil {
		return "", err
	}

	count := ""
	err = json.Unmarshal(data, &count)
	if err != nil {
		return "", err
	}

	return count, nil
}
