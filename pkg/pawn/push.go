package pawn

// push notification texts, keyed by the event method that triggers them
const (
	PushMessageAcceptedBody = "Your proposition has been accepted."
	PushMessageClosedBody   = "Your proposition has been closed."
)

// PushMessage is a single outbound push: a provider wallet key and the
// literal message text.
type PushMessage struct {
	WalletPublicKey string
	Message         string
}
