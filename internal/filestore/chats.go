package filestore

import (
	"context"
	"sort"

	"github.com/safar/localkirana/internal/models"
)

func (b *Backend) AppendMessage(ctx context.Context, chat *models.Chat, msg *models.Message) error {
	if chat == nil {
		return b.insertMessage(msg)
	}

	// Lock order is chats then messages. The message is saved first; if
	// saving chats.json then fails the message stays without a chat update.
	return b.chats.Update(func(records []chatRecord) ([]chatRecord, error) {
		if err := b.insertMessage(msg); err != nil {
			return nil, err
		}

		i := chatIndex(records, chat.ChatID)
		if i < 0 {
			records = append(records, chatRecord{
				ChatID:       chat.ChatID,
				Participant1: chat.Participant1,
				Participant2: chat.Participant2,
			})
			i = len(records) - 1
		}

		at := msg.CreatedAt
		records[i].LastMessage = msg.Body
		records[i].LastMessageTime = &at
		return records, nil
	})
}

func (b *Backend) ListChats(ctx context.Context) ([]models.Chat, error) {
	records, err := b.chats.Load()
	if err != nil {
		return nil, err
	}
	messages, err := b.messages.Load()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt.Time) {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt.Time)
		}
		return messages[i].ID < messages[j].ID
	})
	byChat := make(map[string][]models.Message)
	for _, m := range messages {
		byChat[m.ChatID] = append(byChat[m.ChatID], m)
	}

	chats := make([]models.Chat, len(records))
	for i, rec := range records {
		msgs := byChat[rec.ChatID]
		if msgs == nil {
			msgs = []models.Message{}
		}
		chats[i] = models.Chat{
			ChatID:          rec.ChatID,
			Participant1:    rec.Participant1,
			Participant2:    rec.Participant2,
			LastMessage:     rec.LastMessage,
			LastMessageTime: rec.LastMessageTime,
			Messages:        msgs,
		}
	}

	sort.SliceStable(chats, func(i, j int) bool {
		ti, tj := chats[i].LastMessageTime, chats[j].LastMessageTime
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		}
		return ti.After(tj.Time)
	})
	return chats, nil
}

func (b *Backend) insertMessage(msg *models.Message) error {
	return b.messages.Update(func(records []models.Message) ([]models.Message, error) {
		msg.ID = nextID(len(records), func(i int) int64 { return records[i].ID })
		return append(records, *msg), nil
	})
}

func chatIndex(records []chatRecord, chatID string) int {
	for i, rec := range records {
		if rec.ChatID == chatID {
			return i
		}
	}
	return -1
}
