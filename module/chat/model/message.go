package model

import (
	"time"

	mgo "ChatGo/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

const MsgTableName = "message"

// Message is the durable record written by the gateway's detached
// persistence task. The realtime view sent to clients carries more (sender
// name snapshot, ephemeral id); only this subset is durable.
type Message struct {
	MsgID   string `bson:"msg_id" json:"_id"`
	Content string `bson:"content" json:"content"`
	Sender  string `bson:"sender" json:"sender"` // user id
	Chat    string `bson:"chat" json:"chat"`     // chat id

	CreateTime time.Time `bson:"create_time" json:"createdAt"`
}

func (m *Message) GetTableName() string { return MsgTableName }

func (m *Message) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(m.GetTableName())
}
