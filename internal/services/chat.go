package services

import (
	"context"
	"strings"

	"github.com/yungbote/studynotes-backend/internal/ai"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

const chatHistoryLimit = 10

type ChatReply struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

type ChatService interface {
	// History returns the caller's most recently updated chat sessions.
	History(ctx context.Context, userID string) ([]*domain.ChatHistory, error)
	Create(ctx context.Context, userID string, cc domain.ChatContext) (*domain.ChatHistory, error)
	Get(ctx context.Context, userID, id string) (*domain.ChatHistory, error)
	// SendMessage appends the user's message and the assistant's reply. An
	// empty sessionID starts a new session.
	SendMessage(ctx context.Context, userID, sessionID, message string) (*ChatReply, error)
	Delete(ctx context.Context, userID, id string) error
}

type chatService struct {
	log   *logger.Logger
	chats repos.ChatRepo
	ai    *ai.Gateway
}

func NewChatService(log *logger.Logger, chats repos.ChatRepo, gateway *ai.Gateway) ChatService {
	return &chatService{
		log:   log.With("service", "ChatService"),
		chats: chats,
		ai:    gateway,
	}
}

func (s *chatService) History(ctx context.Context, userID string) ([]*domain.ChatHistory, error) {
	return s.chats.List(ctx, userID, repos.ChatFilter{Limit: chatHistoryLimit})
}

func (s *chatService) Create(ctx context.Context, userID string, cc domain.ChatContext) (*domain.ChatHistory, error) {
	return s.chats.Create(ctx, userID, domain.NewChat{Context: cc})
}

func (s *chatService) Get(ctx context.Context, userID, id string) (*domain.ChatHistory, error) {
	return s.chats.FindByID(ctx, id, userID)
}

func (s *chatService) SendMessage(ctx context.Context, userID, sessionID, message string) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apierr.Validation("message is required")
	}
	userMsg := domain.ChatMessage{Role: domain.RoleUser, Content: message}

	var (
		chat *domain.ChatHistory
		err  error
	)
	if sessionID == "" {
		chat, err = s.chats.Create(ctx, userID, domain.NewChat{Messages: []domain.ChatMessage{userMsg}})
	} else {
		chat, err = s.chats.AppendMessages(ctx, sessionID, userID, userMsg)
	}
	if err != nil {
		return nil, err
	}

	reply := s.ai.Converse(ctx, chat.Messages, chat.Context)
	if _, err := s.chats.AppendMessages(ctx, chat.ID, userID, domain.ChatMessage{Role: domain.RoleAssistant, Content: reply}); err != nil {
		return nil, err
	}
	return &ChatReply{Response: reply, SessionID: chat.ID}, nil
}

func (s *chatService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.chats.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("chat session")
	}
	return nil
}
