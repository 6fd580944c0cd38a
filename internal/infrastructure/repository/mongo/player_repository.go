package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/usecase"
)

type PlayerRepository struct {
	col  *mongo.Collection
	meta *metaRecorder
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	return findAll[player.Player](ctx, r.col, bson.D{})
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int) (player.Player, error) {
	var out player.Player
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return player.Player{}, fmt.Errorf("%w: player %d", usecase.ErrNotFound, id)
	}
	if err != nil {
		return player.Player{}, fmt.Errorf("find player %d: %w", id, err)
	}
	return out, nil
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	ids := make([]any, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	if err := upsertByID(ctx, r.col, ids, players); err != nil {
		return err
	}
	return r.meta.record(ctx, collPlayers, len(players))
}
