package service

import (
	"context"
	"errors"
	"time"

	usermodel "ChatGo/module/user/model"
	"ChatGo/tools/errs"
	"ChatGo/tools/ids"
	"ChatGo/tools/security"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Register creates an account with a bcrypt password hash. Username must be
// free.
func Register(ctx context.Context, name, username, password, bio string) (*usermodel.User, error) {
	u := &usermodel.User{}
	err := u.Collection().FindOne(ctx, bson.M{"username": username}).Err()
	if err == nil {
		return nil, errs.ErrUserExists.Wrap()
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.Wrap(err, "lookup username")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, errs.Wrap(err, "hash password")
	}

	now := time.Now()
	u = &usermodel.User{
		UserID:     ids.GenerateString(),
		Name:       name,
		Username:   username,
		Password:   hash,
		Bio:        bio,
		CreateTime: now,
		UpdateTime: now,
	}
	if _, err := u.Collection().InsertOne(ctx, u); err != nil {
		return nil, errs.Wrap(err, "insert user")
	}
	return u, nil
}

// Login verifies credentials and mints a session token.
func Login(ctx context.Context, opts security.Options, username, password string) (string, *usermodel.User, error) {
	u := &usermodel.User{}
	err := u.Collection().FindOne(ctx, bson.M{"username": username}).Decode(u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil, errs.ErrBadCredentials.Wrap()
	}
	if err != nil {
		return "", nil, errs.Wrap(err, "find user")
	}
	if !security.CheckPassword(u.Password, password) {
		return "", nil, errs.ErrBadCredentials.Wrap()
	}

	token, _, err := security.Generate(opts, u.UserID)
	if err != nil {
		return "", nil, errs.Wrap(err, "generate token")
	}
	return token, u, nil
}

func FindByID(ctx context.Context, userID string) (*usermodel.User, error) {
	u := &usermodel.User{}
	err := u.Collection().FindOne(ctx, bson.M{"user_id": userID}).Decode(u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrUserNotFound.Wrap()
	}
	if err != nil {
		return nil, errs.Wrap(err, "find user")
	}
	return u, nil
}

// Search matches names by case-insensitive prefix, excluding the caller.
func Search(ctx context.Context, q, excludeUserID string) ([]usermodel.User, error) {
	u := &usermodel.User{}
	filter := bson.M{
		"user_id": bson.M{"$ne": excludeUserID},
	}
	if q != "" {
		filter["name"] = bson.M{"$regex": "^" + q, "$options": "i"}
	}
	cur, err := u.Collection().Find(ctx, filter, options.Find().SetLimit(20))
	if err != nil {
		return nil, errs.Wrap(err, "search users")
	}
	defer cur.Close(ctx)

	var out []usermodel.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.Wrap(err, "decode users")
	}
	return out, nil
}

// Loader adapts the package to the gateway's UserLoader contract.
type Loader struct{}

func (Loader) FindByID(ctx context.Context, userID string) (*usermodel.User, error) {
	return FindByID(ctx, userID)
}
