package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"knowledge-chatbot-be/internal/config"
	"knowledge-chatbot-be/internal/dto"
	"knowledge-chatbot-be/internal/pkg/logger"
	"knowledge-chatbot-be/internal/repository/memory"
	"knowledge-chatbot-be/pkg/assistant"
	"knowledge-chatbot-be/pkg/storage"
	"knowledge-chatbot-be/pkg/store"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Get(sessionId string) (*store.Session, error)
	EnsureRemote(ctx context.Context, session *store.Session) error
	NewThread(ctx context.Context, session *store.Session) error
}

type sessionService struct {
	sessionRepo *memory.SessionRepository
	files       *storage.Manager
	api         assistant.API
	cfg         *config.Config
	log         logger.ILogger
}

func NewSessionService(
	sessionRepo *memory.SessionRepository,
	files *storage.Manager,
	api assistant.API,
	cfg *config.Config,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		files:       files,
		api:         api,
		cfg:         cfg,
		log:         log,
	}
}

// Create mints a session and its upload folder. The folder name is the
// creation timestamp with colons replaced, so two sessions starting within
// the same second share a folder name; the session id, not the folder,
// is the identity.
func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	now := time.Now()
	folderName := strings.ReplaceAll(now.Format(time.RFC3339), ":", "_")

	folder, err := s.files.Prepare(folderName)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	session := &store.Session{
		ID:           uuid.NewString(),
		UploadFolder: folder,
		ChatHistory:  []store.ChatTurn{},
		CreatedAt:    now,
	}
	s.sessionRepo.Save(session)

	s.log.Info("session", "Session created", map[string]interface{}{
		"session_id": session.ID,
		"folder":     folder,
	})

	return &dto.CreateSessionResponse{
		SessionId: session.ID,
		Folder:    filepath.Base(folder),
	}, nil
}

func (s *sessionService) Get(sessionId string) (*store.Session, error) {
	return s.sessionRepo.Get(sessionId)
}

// EnsureRemote lazily creates the remote assistant, thread and vector store
// for the session. Idempotent: each handle is created at most once unless a
// teardown cleared it. The caller holds the session lock, which is what makes
// at-most-once hold under concurrent requests for the same session.
func (s *sessionService) EnsureRemote(ctx context.Context, session *store.Session) error {
	dirty := false

	if session.AssistantID == "" {
		id, err := s.api.CreateAssistant(ctx, s.cfg.Assistant.Instructions, s.cfg.Assistant.Model)
		if err != nil {
			return err
		}
		session.AssistantID = id
		dirty = true
	}

	if session.ThreadID == "" {
		id, err := s.api.CreateThread(ctx)
		if err != nil {
			return err
		}
		session.ThreadID = id
		dirty = true
	}

	if session.VectorStoreID == "" {
		id, err := s.api.CreateVectorStore(ctx, s.cfg.Assistant.VectorStoreName, s.cfg.Assistant.StoreExpiryDays)
		if err != nil {
			return err
		}
		session.VectorStoreID = id
		dirty = true
	}

	if dirty {
		s.sessionRepo.Save(session)
		s.log.Info("session", "Remote handles ensured", map[string]interface{}{
			"session_id":      session.ID,
			"assistant_id":    session.AssistantID,
			"thread_id":       session.ThreadID,
			"vector_store_id": session.VectorStoreID,
		})
	}
	return nil
}

// NewThread replaces the session's conversation thread. The old thread is
// abandoned on the remote side, not deleted; the provider expires it.
// The caller holds the session lock.
func (s *sessionService) NewThread(ctx context.Context, session *store.Session) error {
	id, err := s.api.CreateThread(ctx)
	if err != nil {
		return err
	}
	session.ThreadID = id
	s.sessionRepo.Save(session)
	return nil
}
