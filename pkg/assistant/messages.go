package assistant

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoReply reports that the thread held no readable assistant text after a
// completed run.
var ErrNoReply = errors.New("no assistant reply in thread")

type messageListResponse struct {
	Data []threadMessage `json:"data"`
}

type threadMessage struct {
	ID      string           `json:"id"`
	Role    string           `json:"role"`
	Content []messageContent `json:"content"`
}

type messageContent struct {
	Type string `json:"type"`
	Text *struct {
		Value string `json:"value"`
	} `json:"text"`
}

// LatestAssistantText lists the thread's messages (the provider returns them
// newest first) and returns the first text content block of the newest one.
func (c *Client) LatestAssistantText(ctx context.Context, threadID string) (string, error) {
	var resp messageListResponse
	if err := c.doJSON(ctx, "GET", "/threads/"+threadID+"/messages", nil, &resp); err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}

	if len(resp.Data) == 0 {
		return "", ErrNoReply
	}
	for _, content := range resp.Data[0].Content {
		if content.Type == "text" && content.Text != nil {
			return content.Text.Value, nil
		}
	}
	return "", ErrNoReply
}
