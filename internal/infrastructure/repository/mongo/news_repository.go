package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/benchboost/benchboost/internal/domain/news"
)

type NewsRepository struct {
	col  *mongo.Collection
	meta *metaRecorder
}

func (r *NewsRepository) ListRecent(ctx context.Context, limit int) ([]news.Update, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "recorded_at", Value: -1}}).
		SetLimit(int64(limit))
	return findAll[news.Update](ctx, r.col, bson.D{}, opts)
}

func (r *NewsRepository) Upsert(ctx context.Context, updates []news.Update) error {
	ids := make([]any, len(updates))
	for i, u := range updates {
		ids[i] = u.ID
	}
	if err := upsertByID(ctx, r.col, ids, updates); err != nil {
		return err
	}
	return r.meta.record(ctx, collNews, len(updates))
}
