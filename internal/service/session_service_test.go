package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSession(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.sessions.Create(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, res.SessionId)
	assert.NotContains(t, res.Folder, ":", "colons must be replaced in the folder name")

	session, err := env.sessions.Get(res.SessionId)
	assert.NoError(t, err)

	info, err := os.Stat(session.UploadFolder)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, res.Folder, filepath.Base(session.UploadFolder))
	assert.Empty(t, session.ChatHistory)
}

func TestFolderStableAcrossInteractions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)
	session, _ := env.sessions.Get(res.SessionId)
	folder := session.UploadFolder

	assert.NoError(t, env.sessions.EnsureRemote(ctx, session))
	assert.NoError(t, env.chat.Clear(ctx, res.SessionId))

	again, _ := env.sessions.Get(res.SessionId)
	assert.Equal(t, folder, again.UploadFolder)
}

func TestEnsureRemoteIsLazyAndIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)

	// Nothing remote happens at session creation.
	assert.Zero(t, env.api.assistants)
	assert.Zero(t, env.api.threads)
	assert.Zero(t, env.api.vectorStores)

	session, _ := env.sessions.Get(res.SessionId)
	for i := 0; i < 3; i++ {
		assert.NoError(t, env.sessions.EnsureRemote(ctx, session))
	}

	assert.Equal(t, 1, env.api.assistants)
	assert.Equal(t, 1, env.api.threads)
	assert.Equal(t, 1, env.api.vectorStores)
	assert.Equal(t, "asst_1", session.AssistantID)
	assert.Equal(t, "vs_1", session.VectorStoreID)
}

func TestNewThreadReplacesHandle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, _ := env.sessions.Create(ctx)
	session, _ := env.sessions.Get(res.SessionId)
	assert.NoError(t, env.sessions.EnsureRemote(ctx, session))
	old := session.ThreadID

	assert.NoError(t, env.sessions.NewThread(ctx, session))
	assert.NotEqual(t, old, session.ThreadID)
	assert.True(t, strings.HasPrefix(session.ThreadID, "th_"))

	// Assistant and vector store survive a thread swap.
	assert.Equal(t, 1, env.api.assistants)
	assert.Equal(t, 1, env.api.vectorStores)
}
