package watcher

import (
	"errors"
	"testing"

	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

// a trimmed Tendermint Tx subscription message carrying a wasm event
const acceptTxMessage = `{
	"jsonrpc": "2.0",
	"id": "1",
	"result": {
		"query": "tm.event='Tx' and wasm._contract_address='inj1ntkgeswdwx6jhg0q7n9rtunqxsvnsnf5k5vvm8'",
		"data": {
			"type": "tendermint/event/Tx",
			"value": {
				"TxResult": {
					"height": "9371415",
					"result": {
						"events": [
							{
								"type": "message",
								"attributes": [
									{"key": "YWN0aW9u", "value": "L2Nvc213YXNtLndhc20udjEuTXNnRXhlY3V0ZUNvbnRyYWN0"}
								]
							},
							{
								"type": "wasm",
								"attributes": [
									{"key": "X2NvbnRyYWN0X2FkZHJlc3M=", "value": "aW5qMW50a2dlc3dkd3g2amhnMHE3bjlydHVucXhzdm5zbmY1azV2dm04"},
									{"key": "bWV0aG9k", "value": "YWNjZXB0X3Byb3Bvc2l0aW9u"},
									{"key": "aWQ=", "value": "NA=="},
									{"key": "cHJvcG9zaXRpb25fdHlwZQ==", "value": "QXNr"},
									{"key": "b3duZXI=", "value": "aW5qMTRhdTMyMms5bXVua2xkODgyNDNjajB4dGZyMnR1M2R0dW43cXhw"},
									{"key": "Y29udHJhY3Rvcg==", "value": "aW5qMWZxOG11ZDZqdmdudGQzaHo1N2g2Z2p3ZDdlc2U4OGYwand0eDB0"}
								]
							}
						]
					}
				}
			}
		}
	}
}`

func TestDecodeTxMessage(t *testing.T) {
	ev, err := DecodeTxMessage([]byte(acceptTxMessage))
	if err != nil {
		t.Fatal(err)
	}

	if ev == nil {
		t.Fatal("expected a decoded event")
	}

	if ev.Method != pawn.MethodAcceptProposition {
		t.Errorf("expected method accept_proposition, got %s", ev.Method)
	}

	if ev.Owner != "inj14au322k9munkld88243cj0xtfr2tu3dtun7qxp" {
		t.Errorf("unexpected owner: %s", ev.Owner)
	}

	if ev.Contractor != "inj1fq8mud6jvgntd3hz57h6gjwd7ese88f0jwtx0t" {
		t.Errorf("unexpected contractor: %s", ev.Contractor)
	}

	if ev.PropositionID != "4" {
		t.Errorf("unexpected proposition id: %s", ev.PropositionID)
	}

	if ev.Attributes["proposition_type"] != "Ask" {
		t.Errorf("unexpected proposition type attribute: %s", ev.Attributes["proposition_type"])
	}
}

func TestDecodeSubscribeAck(t *testing.T) {
	// the response to the subscribe command has an empty result
	ev, err := DecodeTxMessage([]byte(`{"jsonrpc": "2.0", "id": "1", "result": {}}`))
	if err != nil {
		t.Fatal(err)
	}

	if ev != nil {
		t.Errorf("expected no event, got %+v", ev)
	}
}

func TestDecodeNoWasmEvent(t *testing.T) {
	msg := `{
		"result": {
			"data": {
				"value": {
					"TxResult": {
						"result": {
							"events": [
								{"type": "transfer", "attributes": []}
							]
						}
					}
				}
			}
		}
	}`

	ev, err := DecodeTxMessage([]byte(msg))
	if err != nil {
		t.Fatal(err)
	}

	if ev != nil {
		t.Errorf("expected no event, got %+v", ev)
	}
}

func TestDecodeMissingMethod(t *testing.T) {
	msg := `{
		"result": {
			"data": {
				"value": {
					"TxResult": {
						"result": {
							"events": [
								{
									"type": "wasm",
									"attributes": [
										{"key": "aWQ=", "value": "NA=="}
									]
								}
							]
						}
					}
				}
			}
		}
	}`

	_, err := DecodeTxMessage([]byte(msg))

	target := &pawn.MalformedEventError{}
	if !errors.As(err, &target) {
		t.Fatalf("expected a MalformedEventError, got %v", err)
	}

	if target.Missing != "method" {
		t.Errorf("expected the missing attribute to be method, got %s", target.Missing)
	}
}
