package service

import (
	"context"
	"errors"
	"time"

	chatmodel "ChatGo/module/chat/model"
	"ChatGo/tools/errs"
	"ChatGo/tools/ids"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateGroupChat creates a named group. The creator is always a member.
func CreateGroupChat(ctx context.Context, creator, name string, members []string) (*chatmodel.Chat, error) {
	all := dedup(append(members, creator))
	if len(all) < 3 {
		return nil, errs.ErrBadRequest.WrapMsg("group chat needs at least 3 members")
	}

	now := time.Now()
	ch := &chatmodel.Chat{
		ChatID:     ids.GenerateString(),
		Name:       name,
		GroupChat:  true,
		Creator:    creator,
		Members:    all,
		CreateTime: now,
		UpdateTime: now,
	}
	if _, err := ch.Collection().InsertOne(ctx, ch); err != nil {
		return nil, errs.Wrap(err, "insert chat")
	}
	return ch, nil
}

// CreateDirectChat creates the two-member chat between a and b, reusing an
// existing one if the pair already has it.
func CreateDirectChat(ctx context.Context, a, b, name string) (*chatmodel.Chat, error) {
	ch := &chatmodel.Chat{}
	err := ch.Collection().FindOne(ctx, bson.M{
		"group_chat": false,
		"members":    bson.M{"$all": []string{a, b}, "$size": 2},
	}).Decode(ch)
	if err == nil {
		return ch, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.Wrap(err, "lookup direct chat")
	}

	now := time.Now()
	ch = &chatmodel.Chat{
		ChatID:     ids.GenerateString(),
		Name:       name,
		GroupChat:  false,
		Creator:    a,
		Members:    []string{a, b},
		CreateTime: now,
		UpdateTime: now,
	}
	if _, err := ch.Collection().InsertOne(ctx, ch); err != nil {
		return nil, errs.Wrap(err, "insert chat")
	}
	return ch, nil
}

// ListMyChats returns every chat the user belongs to, most recent first.
func ListMyChats(ctx context.Context, userID string) ([]chatmodel.Chat, error) {
	ch := &chatmodel.Chat{}
	cur, err := ch.Collection().Find(ctx, bson.M{"members": userID})
	if err != nil {
		return nil, errs.Wrap(err, "find chats")
	}
	defer cur.Close(ctx)

	var out []chatmodel.Chat
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.Wrap(err, "decode chats")
	}
	return out, nil
}

func GetChat(ctx context.Context, chatID string) (*chatmodel.Chat, error) {
	ch := &chatmodel.Chat{}
	err := ch.Collection().FindOne(ctx, bson.M{"chat_id": chatID}).Decode(ch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrRecordNotFound.Wrap()
	}
	if err != nil {
		return nil, errs.Wrap(err, "find chat")
	}
	return ch, nil
}

func dedup(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
