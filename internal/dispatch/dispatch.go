package dispatch

import (
	"context"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/qwertyexchange/cryptopawn/internal/common"
	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

// Sender is the push-notification provider capability.
type Sender interface {
	SendDirectPush(ctx context.Context, push pawn.PushMessage) error
}

// Stats are exposed on the daemon's status endpoint.
type Stats struct {
	EventsSeen     int64
	SendsAttempted int64
	SendsFailed    int64
}

// Dispatcher maps decoded chain events to push notifications. Sends are
// fire-and-forget: a failure is logged and counted, never propagated, so
// one recipient's failure cannot suppress another's notification.
type Dispatcher struct {
	ctx    context.Context
	sender Sender

	eventsSeen     int64
	sendsAttempted int64
	sendsFailed    int64
}

func New(ctx context.Context, sender Sender) *Dispatcher {
	return &Dispatcher{
		ctx:    ctx,
		sender: sender,
	}
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		EventsSeen:     atomic.LoadInt64(&d.eventsSeen),
		SendsAttempted: atomic.LoadInt64(&d.sendsAttempted),
		SendsFailed:    atomic.LoadInt64(&d.sendsFailed),
	}
}

// Process implements queue.Processor.
func (d *Dispatcher) Process(m pawn.Message) error {
	ev, ok := m.Message.(pawn.ChainEvent)
	if !ok {
		return nil
	}

	atomic.AddInt64(&d.eventsSeen, 1)

	switch ev.Method {
	case pawn.MethodAcceptProposition:
		d.sendAll(pawn.PushMessageAcceptedBody, ev.Owner)
	case pawn.MethodCloseProposition:
		d.sendAll(pawn.PushMessageClosedBody, ev.Owner, ev.Contractor)
	}

	return nil
}

// sendAll pushes the message to every recipient. The sends run
// concurrently and are independent of one another.
func (d *Dispatcher) sendAll(message string, recipients ...string) {
	wg := sync.WaitGroup{}
	for _, recipient := range recipients {
		wg.Add(1)
		go func(recipient string) {
			defer wg.Done()
			d.send(recipient, message)
		}(recipient)
	}

	wg.Wait()
}

func (d *Dispatcher) send(recipient, message string) {
	atomic.AddInt64(&d.sendsAttempted, 1)

	addr, err := common.EthereumAddress(recipient)
	if err != nil {
		atomic.AddInt64(&d.sendsFailed, 1)
		log.Default().Println("skipping push, unresolvable address: ", recipient, err)
		return
	}

	err = d.sender.SendDirectPush(d.ctx, pawn.PushMessage{
		WalletPublicKey: strings.ToLower(addr),
		Message:         message,
	})
	if err != nil {
		atomic.AddInt64(&d.sendsFailed, 1)
		log.Default().Println("push failed for ", recipient, ": ", err)
	}
}
