// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Wobas/ngw-geofencer/internal/adapter"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/internal/utils"
)

const telegramTimeout = 10 * time.Second

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramNotifier struct {
	client *utils.HTTPClient
	token  string
	chatID int64
}

// NewTelegramNotifier returns a [Notifier] that delivers messages to chatID
// through the bot API at apiURL.
func NewTelegramNotifier(apiURL, token string, chatID int64) Notifier {
	client := utils.NewHTTPClient(telegramTimeout)
	client.SetBaseURL(strings.TrimRight(apiURL, "/"))

	return &telegramNotifier{client: client, token: token, chatID: chatID}
}

func (t *telegramNotifier) Send(ctx context.Context, message string) {
	if err := t.send(ctx, message); err != nil {
		logger.FromContext(ctx).Err(err).Int64("chat_id", t.chatID).Msg("failed to deliver telegram notification")
	}
}

func (t *telegramNotifier) send(ctx context.Context, message string) error {
	const op = "telegram send message"

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sendMessageRequest{ChatID: t.chatID, Text: message}).
		Post(fmt.Sprintf("/bot%s/sendMessage", t.token))
	if err != nil {
		return &adapter.RemoteError{Op: op, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		return &adapter.RemoteError{Op: op, Status: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	return nil
}
