package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"knowledge-chatbot-be/internal/dto"
	"knowledge-chatbot-be/internal/pkg/logger"
	"knowledge-chatbot-be/internal/repository/memory"
	"knowledge-chatbot-be/pkg/assistant"
	"knowledge-chatbot-be/pkg/events"
	"knowledge-chatbot-be/pkg/storage"
)

var ErrUnsupportedFileType = errors.New("unsupported file type (allowed: pdf, docx, txt)")

var allowedExtensions = []string{".pdf", ".docx", ".txt"}

type IDocumentService interface {
	Upload(ctx context.Context, sessionId, fileName string, data []byte) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, sessionId string) (*dto.ListDocumentsResponse, error)
	Reset(ctx context.Context, sessionId string) error
}

type documentService struct {
	sessions         ISessionService
	sessionRepo      *memory.SessionRepository
	files            *storage.Manager
	api              assistant.API
	publisherService IPublisherService
	ingestedTopic    string
	log              logger.ILogger
}

func NewDocumentService(
	sessions ISessionService,
	sessionRepo *memory.SessionRepository,
	files *storage.Manager,
	api assistant.API,
	publisherService IPublisherService,
	ingestedTopic string,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		sessions:         sessions,
		sessionRepo:      sessionRepo,
		files:            files,
		api:              api,
		publisherService: publisherService,
		ingestedTopic:    ingestedTopic,
		log:              log,
	}
}

// Upload saves the file into the session folder, pushes it into the session's
// vector store and scopes the assistant's file search to that store. The call
// blocks until remote ingestion reaches a terminal state. A remote failure
// after the local save leaves the disk copy in place, out of sync with the
// store; the next successful upload of the same name re-ingests it.
func (d *documentService) Upload(ctx context.Context, sessionId, fileName string, data []byte) (*dto.UploadDocumentResponse, error) {
	if !extensionAllowed(fileName) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, fileName)
	}

	session, err := d.sessions.Get(sessionId)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	if err := d.sessions.EnsureRemote(ctx, session); err != nil {
		return nil, err
	}

	if _, err := d.files.Save(session.UploadFolder, fileName, data); err != nil {
		return nil, err
	}

	fileId, err := d.api.UploadFile(ctx, fileName, data)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", fileName, err)
	}
	if err := d.api.AddFileToVectorStore(ctx, session.VectorStoreID, fileId); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", fileName, err)
	}
	if err := d.api.AttachVectorStore(ctx, session.AssistantID, session.VectorStoreID); err != nil {
		return nil, fmt.Errorf("attach store for %s: %w", fileName, err)
	}

	d.log.Info("document", "Document ingested", map[string]interface{}{
		"session_id": sessionId,
		"file_name":  fileName,
		"file_id":    fileId,
	})

	evt := events.NewDocumentIngested(sessionId, fileName, fileId, session.VectorStoreID)
	if err := d.publisherService.Publish(d.ingestedTopic, evt); err != nil {
		d.log.Warn("document", "Failed to publish ingestion event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.UploadDocumentResponse{
		FileName:      fileName,
		FileId:        fileId,
		VectorStoreId: session.VectorStoreID,
	}, nil
}

func (d *documentService) List(ctx context.Context, sessionId string) (*dto.ListDocumentsResponse, error) {
	session, err := d.sessions.Get(sessionId)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	names, err := d.files.List(session.UploadFolder)
	if err != nil {
		return nil, err
	}
	return &dto.ListDocumentsResponse{Files: names, Count: len(names)}, nil
}

// Reset tears down the session's own vector store (file associations first,
// then the store), empties the upload folder in place and starts a fresh
// thread. Scoped to this session; the credential-wide sweep lives in the
// cleanup CLI. Chat history is left untouched.
func (d *documentService) Reset(ctx context.Context, sessionId string) error {
	session, err := d.sessions.Get(sessionId)
	if err != nil {
		return err
	}
	session.Lock()
	defer session.Unlock()

	if session.VectorStoreID != "" {
		fileIds, err := d.api.ListVectorStoreFiles(ctx, session.VectorStoreID)
		if err != nil {
			return err
		}
		for _, fileId := range fileIds {
			if err := d.api.DeleteFile(ctx, fileId); err != nil {
				return err
			}
		}
		if err := d.api.DeleteVectorStore(ctx, session.VectorStoreID); err != nil {
			return err
		}
		session.VectorStoreID = ""
	}

	if err := d.files.Reset(session.UploadFolder); err != nil {
		return err
	}
	d.sessionRepo.Save(session)

	if err := d.sessions.NewThread(ctx, session); err != nil {
		return err
	}

	d.log.Info("document", "Session storage reset", map[string]interface{}{
		"session_id": sessionId,
	})
	return nil
}

func extensionAllowed(fileName string) bool {
	lower := strings.ToLower(fileName)
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
