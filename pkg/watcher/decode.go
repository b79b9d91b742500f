package watcher

import (
	"encoding/base64"
	"encoding/json"

	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

type wsAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type wsEvent struct {
	Type       string        `json:"type"`
	Attributes []wsAttribute `json:"attributes"`
}

type wsMessage struct {
	Result *struct {
		Data *struct {
			Value struct {
				TxResult struct {
					Result struct {
						Events []wsEvent `json:"events"`
					} `json:"result"`
				} `json:"TxResult"`
			} `json:"value"`
		} `json:"data"`
	} `json:"result"`
}

// DecodeTxMessage extracts the wasm event from a Tendermint Tx message.
// Messages without a result payload or without a wasm event return
// (nil, nil): not every message on the subscription carries one.
func DecodeTxMessage(data []byte) (*pawn.ChainEvent, error) {
	msg := wsMessage{}
	err := json.Unmarshal(data, &msg)
	if err != nil {
		return nil, err
	}

	if msg.Result == nil || msg.Result.Data == nil {
		return nil, nil
	}

	for _, ev := range msg.Result.Data.Value.TxResult.Result.Events {
		if ev.Type == "wasm" {
			return decodeWasmEvent(ev)
		}
	}

	return nil, nil
}

// decodeWasmEvent decodes the base64 attribute list into a ChainEvent.
// The method attribute is required; an event without it is malformed.
func decodeWasmEvent(ev wsEvent) (*pawn.ChainEvent, error) {
	attrs := map[string]string{}
	for _, attr := range ev.Attributes {
		key, err := base64.StdEncoding.DecodeString(attr.Key)
		if err != nil {
			return nil, err
		}

		value, err := base64.StdEncoding.DecodeString(attr.Value)
		if err != nil {
			return nil, err
		}

		attrs[string(key)] = string(value)
	}

	method, ok := attrs["method"]
	if !ok {
		return nil, &pawn.MalformedEventError{Missing: "method"}
	}

	id, ok := attrs["proposition_id"]
	if !ok {
		// accept and close emit the id under "id"
		id = attrs["id"]
	}

	return &pawn.ChainEvent{
		Method:        method,
		Owner:         attrs["owner"],
		Contractor:    attrs["contractor"],
		PropositionID: id,
		Attributes:    attrs,
	}, nil
}
