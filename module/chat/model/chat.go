package model

import (
	"time"

	mgo "ChatGo/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

const ChatTableName = "chat"

// Chat is a conversation container: a direct chat (two members, no name) or
// a named group chat. Members is the ordered identity list the gateway
// receives as fan-out input; it is owned here, not cached by the gateway.
type Chat struct {
	ChatID    string   `bson:"chat_id" json:"_id"`
	Name      string   `bson:"name,omitempty" json:"name,omitempty"`
	GroupChat bool     `bson:"group_chat" json:"groupChat"`
	Creator   string   `bson:"creator" json:"creator"`
	Members   []string `bson:"members" json:"members"` // user ids

	CreateTime time.Time `bson:"create_time" json:"createdAt"`
	UpdateTime time.Time `bson:"update_time" json:"-"`
}

func (c *Chat) GetTableName() string { return ChatTableName }

func (c *Chat) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(c.GetTableName())
}

// HasMember reports whether userID belongs to the chat.
func (c *Chat) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}
