package model

import (
	"time"

	mgo "ChatGo/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

const FriendRequestTableName = "friend_request"

// FriendRequest status
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

type FriendRequest struct {
	RequestID string `bson:"request_id" json:"_id"`
	Sender    string `bson:"sender" json:"sender"`
	Receiver  string `bson:"receiver" json:"receiver"`
	Status    string `bson:"status" json:"status"`

	CreateTime time.Time `bson:"create_time" json:"createdAt"`
	UpdateTime time.Time `bson:"update_time" json:"-"`
}

func (r *FriendRequest) GetTableName() string { return FriendRequestTableName }

func (r *FriendRequest) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(r.GetTableName())
}
