package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/benchboost/benchboost/internal/domain/team"
	"github.com/benchboost/benchboost/internal/usecase"
)

type TeamRepository struct {
	col  *mongo.Collection
	meta *metaRecorder
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return findAll[team.Team](ctx, r.col, bson.D{})
}

func (r *TeamRepository) GetByID(ctx context.Context, id int) (team.Team, error) {
	var out team.Team
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return team.Team{}, fmt.Errorf("%w: team %d", usecase.ErrNotFound, id)
	}
	if err != nil {
		return team.Team{}, fmt.Errorf("find team %d: %w", id, err)
	}
	return out, nil
}

func (r *TeamRepository) ReplaceAll(ctx context.Context, teams []team.Team) error {
	ids := make([]any, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	if err := upsertByID(ctx, r.col, ids, teams); err != nil {
		return err
	}
	return r.meta.record(ctx, collTeams, len(teams))
}
