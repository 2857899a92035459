package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"knowledge-chatbot-be/internal/constant"
	"knowledge-chatbot-be/internal/dto"
	"knowledge-chatbot-be/internal/pkg/logger"
	"knowledge-chatbot-be/internal/repository/memory"
	"knowledge-chatbot-be/pkg/assistant"
	"knowledge-chatbot-be/pkg/events"
	"knowledge-chatbot-be/pkg/store"
)

var (
	ErrEmptyPrompt     = errors.New("prompt is empty")
	ErrNothingToExport = errors.New("chat history is empty")
)

type IChatService interface {
	Send(ctx context.Context, sessionId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	History(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error)
	Clear(ctx context.Context, sessionId string) error
	Export(ctx context.Context, sessionId string) (string, error)
}

type chatService struct {
	sessions           ISessionService
	sessionRepo        *memory.SessionRepository
	api                assistant.API
	publisherService   IPublisherService
	exchangedTopic     string
	meetingMinutesPath string
	exportDir          string
	log                logger.ILogger
}

func NewChatService(
	sessions ISessionService,
	sessionRepo *memory.SessionRepository,
	api assistant.API,
	publisherService IPublisherService,
	exchangedTopic string,
	meetingMinutesPath string,
	exportDir string,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:           sessions,
		sessionRepo:        sessionRepo,
		api:                api,
		publisherService:   publisherService,
		exchangedTopic:     exchangedTopic,
		meetingMinutesPath: meetingMinutesPath,
		exportDir:          exportDir,
		log:                log,
	}
}

// Send runs one conversation turn: choose the run instruction from the
// prompt, block on the remote run, read back the newest reply. The user and
// assistant turns are committed to history together only after the remote
// call resolves, so a failure leaves the history exactly as it was.
func (c *chatService) Send(ctx context.Context, sessionId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	prompt := req.Message
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	session, err := c.sessions.Get(sessionId)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	if err := c.sessions.EnsureRemote(ctx, session); err != nil {
		return nil, err
	}

	instruction, err := c.instructionFor(prompt)
	if err != nil {
		return nil, err
	}

	if err := c.api.CreateRunAndPoll(ctx, session.ThreadID, session.AssistantID, instruction); err != nil {
		return nil, err
	}
	reply, err := c.api.LatestAssistantText(ctx, session.ThreadID)
	if err != nil {
		return nil, err
	}

	session.AppendExchange(prompt, reply)
	c.sessionRepo.Save(session)

	evt := events.NewChatExchanged(sessionId, session.ThreadID, len(prompt), len(reply))
	if err := c.publisherService.Publish(c.exchangedTopic, evt); err != nil {
		c.log.Warn("chat", "Failed to publish exchange event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.SendChatResponse{
		Sent:  dto.ChatTurnResponse{Role: store.RoleUser, Message: prompt},
		Reply: dto.ChatTurnResponse{Role: store.RoleAI, Message: reply},
	}, nil
}

// instructionFor picks the run instruction. A recognized command prefix loads
// the meeting-minutes template verbatim, ignoring the remainder of the
// prompt; anything else is the prompt plus the citation-removal suffix.
func (c *chatService) instructionFor(prompt string) (string, error) {
	for _, prefix := range constant.MeetingMinutesPrefixes {
		if strings.HasPrefix(prompt, prefix) {
			contents, err := os.ReadFile(c.meetingMinutesPath)
			if err != nil {
				return "", fmt.Errorf("load meeting minutes template: %w", err)
			}
			return string(contents), nil
		}
	}
	return prompt + constant.CitationRemovalSuffix, nil
}

func (c *chatService) History(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error) {
	session, err := c.sessions.Get(sessionId)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()

	history := make([]dto.ChatTurnResponse, 0, len(session.ChatHistory))
	for _, turn := range session.ChatHistory {
		history = append(history, dto.ChatTurnResponse{Role: turn.Role, Message: turn.Message})
	}
	return &dto.GetChatHistoryResponse{History: history}, nil
}

// Clear empties the history and starts a brand-new thread so the assistant
// loses all conversational context.
func (c *chatService) Clear(ctx context.Context, sessionId string) error {
	session, err := c.sessions.Get(sessionId)
	if err != nil {
		return err
	}
	session.Lock()
	defer session.Unlock()

	session.ChatHistory = []store.ChatTurn{}
	c.sessionRepo.Save(session)

	if err := c.sessions.NewThread(ctx, session); err != nil {
		return err
	}

	c.log.Info("chat", "Conversation cleared", map[string]interface{}{
		"session_id": sessionId,
		"thread_id":  session.ThreadID,
	})
	return nil
}

// Export writes the history as "[ROLE]: message" lines to a per-session file
// and returns the path. The path embeds the session's folder name, so
// concurrent sessions never race on a shared export file.
func (c *chatService) Export(ctx context.Context, sessionId string) (string, error) {
	session, err := c.sessions.Get(sessionId)
	if err != nil {
		return "", err
	}
	session.Lock()
	defer session.Unlock()

	if len(session.ChatHistory) == 0 {
		return "", ErrNothingToExport
	}

	lines := make([]string, 0, len(session.ChatHistory))
	for _, turn := range session.ChatHistory {
		lines = append(lines, fmt.Sprintf("[%s]: %s", strings.ToUpper(turn.Role), turn.Message))
	}

	if err := os.MkdirAll(c.exportDir, 0755); err != nil {
		return "", fmt.Errorf("export history: %w", err)
	}
	path := filepath.Join(c.exportDir, filepath.Base(session.UploadFolder)+".txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", fmt.Errorf("export history: %w", err)
	}
	return path, nil
}
