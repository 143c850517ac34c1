package model

import (
	"time"

	mgo "ChatGo/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

// User is the account main record. Presence is not stored here; the gateway
// keeps it in memory for the process lifetime.
type User struct {
	UserID   string `bson:"user_id" json:"_id"` // global, immutable (primary key)
	Name     string `bson:"name" json:"name"`   // display name
	Username string `bson:"username" json:"username"`
	Password string `bson:"password" json:"-"` // bcrypt hash, never serialized
	Bio      string `bson:"bio,omitempty" json:"bio,omitempty"`
	FaceURL  string `bson:"face_url,omitempty" json:"avatar,omitempty"`

	CreateTime time.Time `bson:"create_time" json:"createdAt"`
	UpdateTime time.Time `bson:"update_time" json:"-"`
}

func (u *User) GetUserID() string { return u.UserID }

func (u *User) GetName() string { return u.Name }

func (u *User) GetTableName() string { return "user" }

func (u *User) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(u.GetTableName())
}
