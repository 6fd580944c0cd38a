package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/benchboost/benchboost/internal/domain/fixture"
)

type FixtureRepository struct {
	col  *mongo.Collection
	meta *metaRecorder
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	opts := options.Find().SetSort(bson.D{{Key: "kickoff_time", Value: 1}})
	return findAll[fixture.Fixture](ctx, r.col, bson.D{}, opts)
}

func (r *FixtureRepository) ListByEvent(ctx context.Context, event int) ([]fixture.Fixture, error) {
	opts := options.Find().SetSort(bson.D{{Key: "kickoff_time", Value: 1}})
	return findAll[fixture.Fixture](ctx, r.col, bson.D{{Key: "event", Value: event}}, opts)
}

func (r *FixtureRepository) ReplaceAll(ctx context.Context, fixtures []fixture.Fixture) error {
	ids := make([]any, len(fixtures))
	for i, f := range fixtures {
		ids[i] = f.ID
	}
	if err := upsertByID(ctx, r.col, ids, fixtures); err != nil {
		return err
	}
	return r.meta.record(ctx, collFixtures, len(fixtures))
}
