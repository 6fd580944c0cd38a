package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/benchboost/benchboost/internal/domain/chat"
	"github.com/benchboost/benchboost/internal/usecase"
)

type ChatRepository struct {
	col *mongo.Collection
}

func (r *ChatRepository) ListSessions(ctx context.Context) ([]chat.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	return findAll[chat.Session](ctx, r.col, bson.D{}, opts)
}

func (r *ChatRepository) GetSession(ctx context.Context, sessionID string) (chat.Session, error) {
	var out chat.Session
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: sessionID}}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return chat.Session{}, fmt.Errorf("%w: chat session %s", usecase.ErrNotFound, sessionID)
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("find chat session %s: %w", sessionID, err)
	}
	return out, nil
}

func (r *ChatRepository) SaveSession(ctx context.Context, session chat.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: session.ID}}, session, opts); err != nil {
		return fmt.Errorf("save chat session %s: %w", session.ID, err)
	}
	return nil
}

func (r *ChatRepository) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: sessionID}})
	if err != nil {
		return fmt.Errorf("delete chat session %s: %w", sessionID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: chat session %s", usecase.ErrNotFound, sessionID)
	}
	return nil
}
