package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/safar/localkirana/internal/models"
	"github.com/sirupsen/logrus"
)

type MessageDraft struct {
	ChatID     string
	SenderID   int64
	SenderType string
	Body       string
}

type ChatService struct {
	repo ChatRepository
	log  logrus.FieldLogger
	now  func() models.Timestamp
}

func NewChatService(repo ChatRepository, log logrus.FieldLogger) *ChatService {
	return &ChatService{
		repo: repo,
		log:  log,
		now:  models.Now,
	}
}

// PostMessage appends a message to a chat, creating the chat from its id on
// first use. A chat id that does not name two participants still gets the
// message stored, without a chat record.
func (s *ChatService) PostMessage(ctx context.Context, draft MessageDraft) (*models.Message, error) {
	if draft.ChatID == "" || draft.SenderID == 0 || draft.SenderType == "" || draft.Body == "" {
		return nil, validation("Missing required chat data")
	}

	chat, ok := ParseChatID(draft.ChatID)
	if !ok {
		s.log.WithField("chat_id", draft.ChatID).Warn("malformed chat id, storing message without chat")
	}

	msg := &models.Message{
		ChatID:     draft.ChatID,
		SenderID:   draft.SenderID,
		SenderType: draft.SenderType,
		Body:       draft.Body,
		CreatedAt:  s.now(),
	}

	if err := s.repo.AppendMessage(ctx, chat, msg); err != nil {
		return nil, translate(s.log, err, "Failed to save chat")
	}
	return msg, nil
}

// List returns chats by newest last message, each with its messages oldest
// first.
func (s *ChatService) List(ctx context.Context) ([]models.Chat, error) {
	chats, err := s.repo.ListChats(ctx)
	if err != nil {
		return nil, translate(s.log, err, "Failed to load chats")
	}
	return chats, nil
}

// ParseChatID splits "{type1}_{id1}_{type2}_{id2}" into a chat with its two
// participants.
func ParseChatID(chatID string) (*models.Chat, bool) {
	parts := strings.Split(chatID, "_")
	if len(parts) != 4 || parts[0] == "" || parts[2] == "" {
		return nil, false
	}

	id1, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, false
	}
	id2, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil, false
	}

	return &models.Chat{
		ChatID:       chatID,
		Participant1: models.Participant{Type: parts[0], ID: id1},
		Participant2: models.Participant{Type: parts[2], ID: id2},
	}, true
}
