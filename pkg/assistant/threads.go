package assistant

import (
	"context"
	"fmt"
)

// CreateThread creates a fresh remote conversation thread and returns its id.
// Old threads are abandoned, never deleted; the provider expires them.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	var resp objectResponse
	if err := c.doJSON(ctx, "POST", "/threads", struct{}{}, &resp); err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	return resp.ID, nil
}
