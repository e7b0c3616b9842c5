package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/models"
)

type chatRow struct {
	ChatID           string            `db:"chat_id"`
	Participant1Type string            `db:"participant1_type"`
	Participant1ID   int64             `db:"participant1_id"`
	Participant2Type string            `db:"participant2_type"`
	Participant2ID   int64             `db:"participant2_id"`
	LastMessage      string            `db:"last_message"`
	LastMessageTime  *models.Timestamp `db:"last_message_time"`
}

func (b *Backend) AppendMessage(ctx context.Context, chat *models.Chat, msg *models.Message) error {
	return b.tx(ctx, func(tx *sqlx.Tx) error {
		if chat != nil {
			if err := ensureChat(ctx, tx, chat); err != nil {
				return err
			}
		}

		id, err := insert(ctx, tx,
			`INSERT INTO messages (chat_id, sender_id, sender_type, message, created_at) VALUES (?, ?, ?, ?, ?)`,
			msg.ChatID, msg.SenderID, msg.SenderType, msg.Body, msg.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "insert message")
		}
		msg.ID = id

		if chat == nil {
			return nil
		}

		_, err = exec(ctx, tx,
			`UPDATE chats SET last_message = ?, last_message_time = ? WHERE chat_id = ?`,
			msg.Body, msg.CreatedAt, chat.ChatID)
		if err != nil {
			return errors.Wrap(err, "update chat")
		}
		return nil
	})
}

func (b *Backend) ListChats(ctx context.Context) ([]models.Chat, error) {
	var rows []chatRow
	err := selectAll(ctx, b.db, &rows,
		`SELECT chat_id, participant1_type, participant1_id, participant2_type, participant2_id,
			last_message, last_message_time
		 FROM chats
		 ORDER BY last_message_time IS NULL, last_message_time DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list chats")
	}

	var messages []models.Message
	err = selectAll(ctx, b.db, &messages,
		`SELECT m.id, m.chat_id, m.sender_id, m.sender_type, m.message, m.created_at
		 FROM messages m
		 JOIN chats c ON c.chat_id = m.chat_id
		 ORDER BY m.created_at, m.id`)
	if err != nil {
		return nil, errors.Wrap(err, "list messages")
	}

	byChat := make(map[string][]models.Message)
	for _, m := range messages {
		byChat[m.ChatID] = append(byChat[m.ChatID], m)
	}

	chats := make([]models.Chat, len(rows))
	for i, row := range rows {
		msgs := byChat[row.ChatID]
		if msgs == nil {
			msgs = []models.Message{}
		}
		chats[i] = models.Chat{
			ChatID:          row.ChatID,
			Participant1:    models.Participant{Type: row.Participant1Type, ID: row.Participant1ID},
			Participant2:    models.Participant{Type: row.Participant2Type, ID: row.Participant2ID},
			LastMessage:     row.LastMessage,
			LastMessageTime: row.LastMessageTime,
			Messages:        msgs,
		}
	}
	return chats, nil
}

func ensureChat(ctx context.Context, tx *sqlx.Tx, chat *models.Chat) error {
	found, err := exists(ctx, tx, `SELECT COUNT(*) FROM chats WHERE chat_id = ?`, chat.ChatID)
	if err != nil {
		return errors.Wrap(err, "check chat")
	}
	if found {
		return nil
	}

	_, err = insert(ctx, tx,
		`INSERT INTO chats (chat_id, participant1_type, participant1_id, participant2_type, participant2_id)
		 VALUES (?, ?, ?, ?, ?)`,
		chat.ChatID, chat.Participant1.Type, chat.Participant1.ID, chat.Participant2.Type, chat.Participant2.ID)
	if err != nil {
		return errors.Wrap(err, "insert chat")
	}
	return nil
}
