package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRunTimedOut reports that a remote run did not reach a terminal state
	// within the client's poll timeout.
	ErrRunTimedOut = errors.New("assistant run timed out")

	// ErrRunFailed reports that the remote run ended in a terminal state other
	// than completed.
	ErrRunFailed = errors.New("assistant run failed")
)

type createRunRequest struct {
	AssistantID  string `json:"assistant_id"`
	Instructions string `json:"instructions,omitempty"`
}

type runResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

// CreateRunAndPoll submits a run against the thread and assistant with the
// given instruction override and polls until it reaches a terminal state.
// The poll is bounded: PollTimeout expires into ErrRunTimedOut instead of
// blocking forever, and ctx cancellation is honored between polls.
func (c *Client) CreateRunAndPoll(ctx context.Context, threadID, assistantID, instructions string) error {
	req := createRunRequest{
		AssistantID:  assistantID,
		Instructions: instructions,
	}

	var run runResponse
	if err := c.doJSON(ctx, "POST", "/threads/"+threadID+"/runs", req, &run); err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	deadline := time.Now().Add(c.PollTimeout)
	for {
		switch run.Status {
		case "completed":
			return nil
		case "failed", "cancelled", "expired", "incomplete", "requires_action":
			if run.LastError != nil {
				return fmt.Errorf("%w: %s (%s): %s", ErrRunFailed, run.Status, run.LastError.Code, run.LastError.Message)
			}
			return fmt.Errorf("%w: status %s", ErrRunFailed, run.Status)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: run %s still %s after %s", ErrRunTimedOut, run.ID, run.Status, c.PollTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.PollInterval):
		}

		if err := c.doJSON(ctx, "GET", "/threads/"+threadID+"/runs/"+run.ID, nil, &run); err != nil {
			return fmt.Errorf("poll run: %w", err)
		}
	}
}
