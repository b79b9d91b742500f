package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

type Message struct {
	Content string `json:"content"`
}

// Messager posts operational alerts from the notifier daemon to a chat
// webhook. With notify disabled it is a no-op, which keeps local runs quiet.
type Messager struct {
	BaseURL string

	client *http.Client
	notify bool
}

func NewMessager(baseURL string, notify bool) pawn.WebhookMessager {
	return &Messager{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		notify:  notify,
	}
}

func (m *Messager) send(ctx context.Context, content string) error {
	if !m.notify {
		return nil
	}

	data, err := json.Marshal(Message{Content: content})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL, bytes.NewReader(data))
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("error sending message")
	}

	return nil
}

func (m *Messager) Notify(ctx context.Context, message string) error {
	return m.send(ctx, fmt.Sprintf("[notifier] %s", message))
}

func (m *Messager) NotifyError(ctx context.Context, errorMessage error) error {
	return m.send(ctx, fmt.Sprintf("[notifier] error: %s", errorMessage.Error()))
}
