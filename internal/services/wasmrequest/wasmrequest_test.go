package wasmrequest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func smartStateServer(t *testing.T, expectedQuery any, rows string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s/smart/", contractAddr)
		if len(r.URL.Path) <= len(prefix) {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}

		query, err := base64.StdEncoding.DecodeString(r.URL.Path[len(prefix):])
		if err != nil {
			t.Error(err)
		}

		expected, err := json.Marshal(expectedQuery)
		if err != nil {
			t.Error(err)
		}

		if string(query) != string(expected) {
			t.Errorf("expected query %s, got %s", expected, query)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(smartStateResponse{
			Data: base64.StdEncoding.EncodeToString([]byte(rows)),
		})
	}))
}

func TestGetPropositions(t *testing.T) {
	rows := `[
		[4, {"owner": "inj14au322k9munkld88243cj0xtfr2tu3dtun7qxp", "proposition_type": "ask", "state": "active",
			"deposit": {"denom": "usdt", "amount": "5"}, "assets": {"denom": "inj", "amount": "2"},
			"premium": {"denom": "usdt", "amount": "3"}, "period": 3600, "expiry": 1700086400}],
		[3, {"owner": "inj1fq8mud6jvgntd3hz57h6gjwd7ese88f0jwtx0t", "proposition_type": "bid", "state": "accepted",
			"contractor": "inj14au322k9munkld88243cj0xtfr2tu3dtun7qxp",
			"deposit": {"denom": "usdt", "amount": "1"}, "assets": {"denom": "inj", "amount": "1"},
			"premium": {"denom": "usdt", "amount": "1"}, "period": 60, "expiry": 1700000000}]
	]`

	expectedQuery := map[string]any{
		"get_propositions": map[string]any{"limit": 100},
	}

	srv := smartStateServer(t, expectedQuery, rows)
	defer srv.Close()

	s := NewWasmService(srv.URL, contractAddr)

	props, err := s.GetPropositions(context.Background(), 100)
	if err != nil {
		t.Fatal(err)
	}

	if len(props) != 2 {
		t.Fatalf("expected 2 propositions, got %d", len(props))
	}

	if props[0].ID != "4" {
		t.Errorf("expected id 4, got %s", props[0].ID)
	}

	if props[0].Owner != "inj14au322k9munkld88243cj0xtfr2tu3dtun7qxp" {
		t.Errorf("unexpected owner: %s", props[0].Owner)
	}

	if props[0].Deposit.Amount != "5" {
		t.Errorf("unexpected deposit: %+v", props[0].Deposit)
	}

	if props[1].ID != "3" {
		t.Errorf("expected id 3, got %s", props[1].ID)
	}

	if props[1].Contractor != "inj14au322k9munkld88243cj0xtfr2tu3dtun7qxp" {
		t.Errorf("unexpected contractor: %s", props[1].Contractor)
	}
}

func TestGetPropositionCount(t *testing.T) {
	expectedQuery := map[string]any{
		"get_proposition_count": map[string]any{},
	}

	srv := smartStateServer(t, expectedQuery, `"12"`)
	defer srv.Close()

	s := NewWasmService(srv.URL, contractAddr)

	count, err := s.GetPropositionCount(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if count != "12" {
		t.Errorf("expected 12, got %s", count)
	}
}
