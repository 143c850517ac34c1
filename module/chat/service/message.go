package service

import (
	"context"
	"time"

	chatmodel "ChatGo/module/chat/model"
	"ChatGo/tools/errs"
	"ChatGo/tools/ids"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateMessage writes one durable message record.
func CreateMessage(ctx context.Context, content, sender, chatID string) error {
	m := &chatmodel.Message{
		MsgID:      ids.GenerateString(),
		Content:    content,
		Sender:     sender,
		Chat:       chatID,
		CreateTime: time.Now(),
	}
	if _, err := m.Collection().InsertOne(ctx, m); err != nil {
		return errs.ErrPersistence.WrapMsg(err.Error())
	}
	return nil
}

// ListByChat pages messages newest first. page starts at 1.
func ListByChat(ctx context.Context, chatID string, page, limit int64) ([]chatmodel.Message, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	m := &chatmodel.Message{}
	filter := bson.M{"chat": chatID}

	total, err := m.Collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errs.Wrap(err, "count messages")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "create_time", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cur, err := m.Collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errs.Wrap(err, "find messages")
	}
	defer cur.Close(ctx)

	var out []chatmodel.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, errs.Wrap(err, "decode messages")
	}
	return out, total, nil
}

// MessageStore is the mongo-backed store handed to the realtime gateway.
type MessageStore struct{}

func (MessageStore) Create(ctx context.Context, content, sender, chatID string) error {
	return CreateMessage(ctx, content, sender, chatID)
}
