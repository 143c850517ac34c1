package service

import (
	"context"
	"errors"
	"time"

	chatmodel "ChatGo/module/chat/model"
	chatservice "ChatGo/module/chat/service"
	"ChatGo/tools/errs"
	"ChatGo/tools/ids"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SendFriendRequest records a pending request from sender to receiver. A
// request in either direction that is still pending blocks a duplicate.
func SendFriendRequest(ctx context.Context, sender, receiver string) (*chatmodel.FriendRequest, error) {
	if sender == receiver {
		return nil, errs.ErrBadRequest.WrapMsg("cannot friend yourself")
	}
	if _, err := FindByID(ctx, receiver); err != nil {
		return nil, err
	}

	r := &chatmodel.FriendRequest{}
	err := r.Collection().FindOne(ctx, bson.M{
		"status": chatmodel.RequestPending,
		"$or": []bson.M{
			{"sender": sender, "receiver": receiver},
			{"sender": receiver, "receiver": sender},
		},
	}).Err()
	if err == nil {
		return nil, errs.ErrBadRequest.WrapMsg("request already sent")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.Wrap(err, "lookup request")
	}

	now := time.Now()
	r = &chatmodel.FriendRequest{
		RequestID:  ids.GenerateString(),
		Sender:     sender,
		Receiver:   receiver,
		Status:     chatmodel.RequestPending,
		CreateTime: now,
		UpdateTime: now,
	}
	if _, err := r.Collection().InsertOne(ctx, r); err != nil {
		return nil, errs.Wrap(err, "insert request")
	}
	return r, nil
}

// AcceptFriendRequest resolves a pending request. Only the receiver may act
// on it. Accepting creates the direct chat between the two users.
func AcceptFriendRequest(ctx context.Context, userID, requestID string, accept bool) (*chatmodel.Chat, error) {
	r := &chatmodel.FriendRequest{}
	err := r.Collection().FindOne(ctx, bson.M{"request_id": requestID}).Decode(r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrRecordNotFound.Wrap()
	}
	if err != nil {
		return nil, errs.Wrap(err, "find request")
	}
	if r.Receiver != userID {
		return nil, errs.ErrForbidden.WrapMsg("not your request")
	}
	if r.Status != chatmodel.RequestPending {
		return nil, errs.ErrBadRequest.WrapMsg("request already handled")
	}

	status := chatmodel.RequestRejected
	if accept {
		status = chatmodel.RequestAccepted
	}
	_, err = r.Collection().UpdateOne(ctx,
		bson.M{"request_id": requestID},
		bson.M{"$set": bson.M{"status": status, "update_time": time.Now()}},
	)
	if err != nil {
		return nil, errs.Wrap(err, "update request")
	}
	if !accept {
		return nil, nil
	}

	a, err := FindByID(ctx, r.Sender)
	if err != nil {
		return nil, err
	}
	b, err := FindByID(ctx, r.Receiver)
	if err != nil {
		return nil, err
	}
	return chatservice.CreateDirectChat(ctx, r.Sender, r.Receiver, a.Name+"-"+b.Name)
}

// PendingRequests lists requests waiting on the user, sender record included.
func PendingRequests(ctx context.Context, userID string) ([]chatmodel.FriendRequest, error) {
	r := &chatmodel.FriendRequest{}
	cur, err := r.Collection().Find(ctx, bson.M{
		"receiver": userID,
		"status":   chatmodel.RequestPending,
	})
	if err != nil {
		return nil, errs.Wrap(err, "find requests")
	}
	defer cur.Close(ctx)

	var out []chatmodel.FriendRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.Wrap(err, "decode requests")
	}
	return out, nil
}
