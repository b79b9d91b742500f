package wasmrequest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// SignerBroadcaster submits commands to a wallet signer sidecar that
// holds the keys, signs and broadcasts. Errors from the sidecar are
// returned as-is.
type SignerBroadcaster struct {
	client *resty.Client
}

type broadcastResponse struct {
	TxHash string `json:"tx_hash"`
	Error  string `json:"error,omitempty"`
}

func NewSignerBroadcaster(signerURL string) *SignerBroadcaster {
	client := resty.New().
		SetBaseURL(signerURL).
		SetTimeout(30 * time.Second)

	return &SignerBroadcaster{
		client: client,
	}
}

func (b *SignerBroadcaster) Broadcast(ctx context.Context, msg ExecMsg) (string, error) {
	result := &broadcastResponse{}
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(msg).
		SetResult(result).
		SetError(result).
		Post("/broadcast")
	if err != nil {
		return "", err
	}

	if resp.IsError() || result.Error != "" {
		return "", fmt.Errorf("broadcast rejected: %s %s", resp.Status(), result.Error)
	}

	return result.TxHash, nil
}
