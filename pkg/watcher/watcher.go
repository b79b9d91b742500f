package watcher

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
	"github.com/qwertyexchange/cryptopawn/pkg/queue"
)

type subscribeRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  subscribeParams `json:"params"`
}

type subscribeParams struct {
	Query string `json:"query"`
}

// Watcher holds a persistent subscription to the chain's transaction
// event stream, filtered to the target contract, and feeds decoded
// events into the queue. A transport close is fatal to the watcher:
// Run returns and the operator restarts the process.
type Watcher struct {
	conn     *websocket.Conn
	contract string
}

// New dials the Tendermint RPC websocket and subscribes to transaction
// events touching the contract.
func New(wsURL, contract string) (*Watcher, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 15 * time.Second,
	}

	conn, _, err := dialer.Dial(wsURL, nil)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		conn:     conn,
		contract: contract,
	}

	err = w.subscribe()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return w, nil
}

func (w *Watcher) subscribe() error {
	req := subscribeRequest{
		JSONRPC: "2.0",
		ID:      "1",
		Method:  "subscribe",
		Params: subscribeParams{
			Query: fmt.Sprintf("tm.event='Tx' and wasm._contract_address='%s'", w.contract),
		},
	}

	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	return w.conn.WriteMessage(websocket.TextMessage, data)
}

// Run reads messages until the connection closes. Messages are handled
// one at a time in arrival order; decoded events go into the queue,
// which blocks when full.
func (w *Watcher) Run(q *queue.Service) error {
	for {
		_, data, err := w.conn.ReadMessage()
		if err != nil {
			log.Default().Println("event stream closed: ", err)
			return pawn.ErrTransportClosed
		}

		ev, err := DecodeTxMessage(data)
		if err != nil {
			log.Default().Println("skipping undecodable message: ", err)
			continue
		}

		if ev == nil {
			// not a wasm transaction message
			continue
		}

		q.Enqueue(*pawn.NewEventMessage(*ev))
	}
}

// Close tears the subscription down. The read loop in Run returns with
// ErrTransportClosed.
func (w *Watcher) Close() error {
	return w.conn.Close()
}
