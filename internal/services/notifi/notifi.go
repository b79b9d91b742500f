package notifi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

const pushType = "qwertyexchange__cryptopawn"

var envURLs = map[string]string{
	"Development": "https://api.dev.notifi.network",
	"Production":  "https://api.notifi.network",
}

// Client talks to the push-notification provider. Login happens once per
// process lifetime; the session token is reused for every push.
type Client struct {
	client *resty.Client
	sid    string
	secret string

	mu    sync.Mutex
	token string
}

type loginRequest struct {
	SID    string `json:"sid"`
	Secret string `json:"secret"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type directPushRequest struct {
	Key              string `json:"key"`
	Type             string `json:"type"`
	WalletPublicKey  string `json:"walletPublicKey"`
	WalletBlockchain string `json:"walletBlockchain"`
	Message          string `json:"message"`
}

func NewClient(env, sid, secret string) *Client {
	baseURL, ok := envURLs[env]
	if !ok {
		baseURL = envURLs["Development"]
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	return &Client{
		client: client,
		sid:    sid,
		secret: secret,
	}
}

// NewClientWithURL is used in tests to point the client at a local server.
func NewClientWithURL(baseURL, sid, secret string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	return &Client{
		client: client,
		sid:    sid,
		secret: secret,
	}
}

func (c *Client) logIn(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	result := &loginResponse{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(loginRequest{SID: c.sid, Secret: c.secret}).
		SetResult(result).
		Post("/login")
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", fmt.Errorf("provider login failed: %s", resp.Status())
	}

	c.token = result.Token

	return c.token, nil
}

// SendDirectPush pushes a message to the wallet identified by the
// push's lowercase hex public key. Each push carries a fresh unique key.
func (c *Client) SendDirectPush(ctx context.Context, push pawn.PushMessage) error {
	token, err := c.logIn(ctx)
	if err != nil {
		return err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(directPushRequest{
			Key:              uuid.NewString(),
			Type:             pushType,
			WalletPublicKey:  push.WalletPublicKey,
			WalletBlockchain: "ETHEREUM",
			Message:          push.Message,
		}).
		Post("/sendDirectPush")
	if err != nil {
		return err
	}

	if resp.IsError() {
		return fmt.Errorf("push failed: %s", resp.Status())
	}

	return nil
}
