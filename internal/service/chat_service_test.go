package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"knowledge-chatbot-be/internal/constant"
	"knowledge-chatbot-be/internal/dto"
	"knowledge-chatbot-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func writeTemplate(t *testing.T, svc IChatService, contents string) {
	t.Helper()
	cs := svc.(*chatService)
	if err := os.WriteFile(cs.meetingMinutesPath, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSendAppendsExchange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)
	out, err := env.chat.Send(ctx, res.SessionId, &dto.SendChatRequest{Message: "Summarize the document"})
	assert.NoError(t, err)
	assert.Equal(t, store.RoleUser, out.Sent.Role)
	assert.Equal(t, "Summarize the document", out.Sent.Message)
	assert.Equal(t, store.RoleAI, out.Reply.Role)
	assert.Equal(t, "hello there", out.Reply.Message)

	history, _ := env.chat.History(ctx, res.SessionId)
	assert.Len(t, history.History, 2)
}

func TestSendInstructionRouting(t *testing.T) {
	tests := []struct {
		name         string
		prompt       string
		wantTemplate bool
	}{
		{"default prompt gets citation suffix", "Summarize the document", false},
		{"meeting minutes command", "/meeting_minutes Q1 Sync", true},
		{"korean command", "/회의록 주간 회의", true},
		{"capitalized command", "/Meeting standup", true},
		{"unrecognized command falls through", "/meeting notes", false},
		{"case sensitive match", "/MEETING_MINUTES x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			writeTemplate(t, env.chat, "TEMPLATE: write meeting minutes with attendees and action items")

			res, _ := env.sessions.Create(ctx)
			_, err := env.chat.Send(ctx, res.SessionId, &dto.SendChatRequest{Message: tt.prompt})
			assert.NoError(t, err)

			assert.Len(t, env.api.instructions, 1)
			got := env.api.instructions[0]
			if tt.wantTemplate {
				assert.Equal(t, "TEMPLATE: write meeting minutes with attendees and action items", got)
			} else {
				assert.Equal(t, tt.prompt+constant.CitationRemovalSuffix, got)
			}
		})
	}
}

func TestSendEmptyPrompt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)
	_, err := env.chat.Send(ctx, res.SessionId, &dto.SendChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestSendFailureLeavesHistoryUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)
	_, err := env.chat.Send(ctx, res.SessionId, &dto.SendChatRequest{Message: "first"})
	assert.NoError(t, err)

	env.api.runErr = errors.New("run exploded")
	_, err = env.chat.Send(ctx, res.SessionId, &dto.SendChatRequest{Message: "second"})
	assert.Error(t, err)

	// The failed turn must not leave a dangling user entry.
	history, _ := env.chat.History(ctx, res.SessionId)
	assert.Len(t, history.History, 2)
	assert.Equal(t, "first", history.History[0].Message)
}

func TestHistoryOrderAndClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)
	_, _ = env.chat.Send(ctx, res.SessionId, &dto.SendChatRequest{Message: "one"})
	_, _ = env.chat.Send(ctx, res.SessionId, &dto.SendChatRequest{Message: "two"})

	history, _ := env.chat.History(ctx, res.SessionId)
	assert.Len(t, history.History, 4)
	roles := []string{}
	for _, turn := range history.History {
		roles = append(roles, turn.Role)
	}
	assert.Equal(t, []string{"user", "ai", "user", "ai"}, roles)

	session, _ := env.sessions.Get(res.SessionId)
	oldThread := session.ThreadID

	assert.NoError(t, env.chat.Clear(ctx, res.SessionId))

	history, _ = env.chat.History(ctx, res.SessionId)
	assert.Empty(t, history.History)
	session, _ = env.sessions.Get(res.SessionId)
	assert.NotEqual(t, oldThread, session.ThreadID)
}

func TestExportFormat(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)
	session, _ := env.sessions.Get(res.SessionId)
	session.ChatHistory = []store.ChatTurn{
		{Role: store.RoleUser, Message: "hi"},
		{Role: store.RoleAI, Message: "hello"},
	}
	env.repo.Save(session)

	path, err := env.chat.Export(ctx, res.SessionId)
	assert.NoError(t, err)

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "[USER]: hi\n[AI]: hello", string(raw))

	// Export path is scoped to the session's folder name.
	assert.True(t, strings.HasPrefix(filepath.Base(path), filepath.Base(session.UploadFolder)))
}

// Run with -race. One shared session state is hit by interleaved sends and
// history reads, the way a browser polling history during an in-flight
// message does.
func TestConcurrentSendAndHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)

	const sends = 8
	var wg sync.WaitGroup
	for i := 0; i < sends; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := env.chat.Send(ctx, res.SessionId, &dto.SendChatRequest{Message: "ping"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := env.chat.History(ctx, res.SessionId)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Every exchange committed atomically.
	history, _ := env.chat.History(ctx, res.SessionId)
	assert.Len(t, history.History, 2*sends)

	// Lazy remote setup ran exactly once despite the concurrent first requests.
	assert.Equal(t, 1, env.api.assistants)
	assert.Equal(t, 1, env.api.threads)
	assert.Equal(t, 1, env.api.vectorStores)
}

func TestExportEmptyHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)
	_, err := env.chat.Export(ctx, res.SessionId)
	assert.ErrorIs(t, err, ErrNothingToExport)
}
