package dispatch

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

type TestSender struct {
	mu    sync.Mutex
	sends []pawn.PushMessage

	failFor string
}

func (s *TestSender) SendDirectPush(ctx context.Context, push pawn.PushMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if push.WalletPublicKey == s.failFor {
		return errors.New("provider rejected the push")
	}

	s.sends = append(s.sends, push)

	return nil
}

func (s *TestSender) Sends() []pawn.PushMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	sends := make([]pawn.PushMessage, len(s.sends))
	copy(sends, s.sends)

	return sends
}

func TestDispatchAccept(t *testing.T) {
	sender := &TestSender{}
	d := New(context.Background(), sender)

	err := d.Process(*pawn.NewEventMessage(pawn.ChainEvent{
		Method: pawn.MethodAcceptProposition,
		Owner:  "0xABC",
	}))
	if err != nil {
		t.Fatal(err)
	}

	sends := sender.Sends()
	if len(sends) != 1 {
		t.Fatalf("expected 1 send, got %d", len(sends))
	}

	if sends[0].WalletPublicKey != "0xabc" {
		t.Errorf("expected recipient 0xabc, got %s", sends[0].WalletPublicKey)
	}

	if sends[0].Message != "Your proposition has been accepted." {
		t.Errorf("unexpected message: %s", sends[0].Message)
	}
}

func TestDispatchClose(t *testing.T) {
	sender := &TestSender{}
	d := New(context.Background(), sender)

	err := d.Process(*pawn.NewEventMessage(pawn.ChainEvent{
		Method:     pawn.MethodCloseProposition,
		Owner:      "0xAAA",
		Contractor: "0xBBB",
	}))
	if err != nil {
		t.Fatal(err)
	}

	sends := sender.Sends()
	if len(sends) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(sends))
	}

	recipients := []string{sends[0].WalletPublicKey, sends[1].WalletPublicKey}
	sort.Strings(recipients)

	if recipients[0] != "0xaaa" || recipients[1] != "0xbbb" {
		t.Errorf("unexpected recipients: %v", recipients)
	}

	for _, send := range sends {
		if send.Message != "Your proposition has been closed." {
			t.Errorf("unexpected message: %s", send.Message)
		}
	}
}

func TestDispatchCloseOneFailure(t *testing.T) {
	sender := &TestSender{failFor: "0xaaa"}
	d := New(context.Background(), sender)

	err := d.Process(*pawn.NewEventMessage(pawn.ChainEvent{
		Method:     pawn.MethodCloseProposition,
		Owner:      "0xAAA",
		Contractor: "0xBBB",
	}))
	if err != nil {
		t.Fatal(err)
	}

	sends := sender.Sends()
	if len(sends) != 1 {
		t.Fatalf("expected 1 successful send, got %d", len(sends))
	}

	if sends[0].WalletPublicKey != "0xbbb" {
		t.Errorf("expected the send to 0xbbb to go through, got %s", sends[0].WalletPublicKey)
	}

	stats := d.Stats()
	if stats.SendsAttempted != 2 {
		t.Errorf("expected 2 attempted sends, got %d", stats.SendsAttempted)
	}

	if stats.SendsFailed != 1 {
		t.Errorf("expected 1 failed send, got %d", stats.SendsFailed)
	}
}

func TestDispatchIgnoresOtherMethods(t *testing.T) {
	sender := &TestSender{}
	d := New(context.Background(), sender)

	methods := []string{pawn.MethodCreateProposition, pawn.MethodRejectProposition, "instantiate", ""}
	for _, method := range methods {
		err := d.Process(*pawn.NewEventMessage(pawn.ChainEvent{
			Method: method,
			Owner:  "0xAAA",
		}))
		if err != nil {
			t.Fatal(err)
		}
	}

	if len(sender.Sends()) != 0 {
		t.Errorf("expected no sends, got %d", len(sender.Sends()))
	}
}

func TestDispatchResolvesBech32Recipients(t *testing.T) {
	sender := &TestSender{}
	d := New(context.Background(), sender)

	err := d.Process(*pawn.NewEventMessage(pawn.ChainEvent{
		Method: pawn.MethodAcceptProposition,
		Owner:  "inj14au322k9munkld88243cj0xtfr2tu3dtun7qxp",
	}))
	if err != nil {
		t.Fatal(err)
	}

	sends := sender.Sends()
	if len(sends) != 1 {
		t.Fatalf("expected 1 send, got %d", len(sends))
	}

	if sends[0].WalletPublicKey != "0xaf79152ac5df276fb4e75563893ccb48d4be45ab" {
		t.Errorf("unexpected recipient: %s", sends[0].WalletPublicKey)
	}
}
