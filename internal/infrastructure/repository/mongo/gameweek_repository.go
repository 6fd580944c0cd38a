package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/benchboost/benchboost/internal/domain/gameweek"
	"github.com/benchboost/benchboost/internal/usecase"
)

type GameweekRepository struct {
	col  *mongo.Collection
	meta *metaRecorder
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[gameweek.Gameweek](ctx, r.col, bson.D{}, opts)
}

func (r *GameweekRepository) GetCurrent(ctx context.Context) (gameweek.Gameweek, error) {
	return r.getByFlag(ctx, "is_current")
}

func (r *GameweekRepository) GetNext(ctx context.Context) (gameweek.Gameweek, error) {
	return r.getByFlag(ctx, "is_next")
}

func (r *GameweekRepository) getByFlag(ctx context.Context, flag string) (gameweek.Gameweek, error) {
	var out gameweek.Gameweek
	err := r.col.FindOne(ctx, bson.D{{Key: flag, Value: true}}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek with %s", usecase.ErrNotFound, flag)
	}
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("find gameweek by %s: %w", flag, err)
	}
	return out, nil
}

func (r *GameweekRepository) ReplaceAll(ctx context.Context, gameweeks []gameweek.Gameweek) error {
	ids := make([]any, len(gameweeks))
	for i, gw := range gameweeks {
		ids[i] = gw.ID
	}
	if err := upsertByID(ctx, r.col, ids, gameweeks); err != nil {
		return err
	}
	return r.meta.record(ctx, collGameweeks, len(gameweeks))
}
