// Package telegram talks to the Telegram Bot API, which holds file payloads
// as channel messages.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const requestTimeout = 15 * time.Second

// Client deletes messages through a bot account.
type Client struct {
	bot *tgbotapi.BotAPI
}

// New authenticates the bot token. An empty apiEndpoint uses the public Bot API;
// a nil httpClient uses a client with a request timeout.
func New(token, apiEndpoint string, httpClient *http.Client) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	slog.Info("telegram bot authorized", slog.String("username", bot.Self.UserName))
	return &Client{bot: bot}, nil
}

// DeleteMessage removes messageID from chatID. The returned bool is true only
// when the Bot API answered ok with a result of true; any other well-formed
// answer is reported as false with a nil error. Transport failures, malformed
// bodies and ok=false answers are returned as errors.
func (c *Client) DeleteMessage(ctx context.Context, chatID string, messageID int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	cfg, err := deleteMessageConfig(chatID, messageID)
	if err != nil {
		return false, err
	}

	resp, err := c.bot.Request(cfg)
	if err != nil {
		return false, fmt.Errorf("telegram deleteMessage: %w", err)
	}
	return acknowledged(resp), nil
}

// acknowledged reports whether the response explicitly confirms the deletion.
// A missing or non-boolean result counts as not acknowledged.
func acknowledged(resp *tgbotapi.APIResponse) bool {
	if resp == nil || !resp.Ok || len(resp.Result) == 0 {
		return false
	}
	var ok bool
	if err := json.Unmarshal(resp.Result, &ok); err != nil {
		return false
	}
	return ok
}

// deleteMessageConfig accepts a numeric chat id or an @channel username.
func deleteMessageConfig(chatID string, messageID int) (tgbotapi.DeleteMessageConfig, error) {
	chatID = strings.TrimSpace(chatID)
	if messageID <= 0 {
		return tgbotapi.DeleteMessageConfig{}, fmt.Errorf("invalid telegram message id %d", messageID)
	}
	if strings.HasPrefix(chatID, "@") {
		return tgbotapi.DeleteMessageConfig{ChannelUsername: chatID, MessageID: messageID}, nil
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return tgbotapi.DeleteMessageConfig{}, fmt.Errorf("telegram chat id must be @username or numeric id: %q", chatID)
	}
	return tgbotapi.NewDeleteMessage(id, messageID), nil
}
