// Package mongo implements the domain repositories on MongoDB. Every
// collection is keyed by the natural upstream id and rewritten by upsert,
// so repeated ingestion runs with unchanged data leave contents unchanged.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/benchboost/benchboost/internal/platform/logging"
)

const (
	collPlayers      = "players"
	collTeams        = "teams"
	collGameweeks    = "gameweeks"
	collFixtures     = "fixtures"
	collNews         = "news"
	collChatSessions = "chat_sessions"
	collMeta         = "ingestion_meta"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logging.Logger
}

func Connect(ctx context.Context, uri, database string, logger *logging.Logger) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if database == "" {
		return nil, fmt.Errorf("mongo database name is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Store) Players() *PlayerRepository {
	return &PlayerRepository{col: s.db.Collection(collPlayers), meta: s.meta()}
}

func (s *Store) Teams() *TeamRepository {
	return &TeamRepository{col: s.db.Collection(collTeams), meta: s.meta()}
}

func (s *Store) Gameweeks() *GameweekRepository {
	return &GameweekRepository{col: s.db.Collection(collGameweeks), meta: s.meta()}
}

func (s *Store) Fixtures() *FixtureRepository {
	return &FixtureRepository{col: s.db.Collection(collFixtures), meta: s.meta()}
}

func (s *Store) News() *NewsRepository {
	return &NewsRepository{col: s.db.Collection(collNews), meta: s.meta()}
}

func (s *Store) ChatSessions() *ChatRepository {
	return &ChatRepository{col: s.db.Collection(collChatSessions)}
}

func (s *Store) meta() *metaRecorder {
	return &metaRecorder{col: s.db.Collection(collMeta)}
}

// EnsureIndexes creates the lookup indexes each collection relies on.
// Safe to call on every ingestion run; existing indexes are no-ops.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		collPlayers: {
			{Keys: bson.D{{Key: "web_name", Value: 1}}},
			{Keys: bson.D{{Key: "team_id", Value: 1}}},
			{Keys: bson.D{{Key: "position", Value: 1}}},
		},
		collGameweeks: {
			{Keys: bson.D{{Key: "is_current", Value: 1}}},
			{Keys: bson.D{{Key: "is_next", Value: 1}}},
		},
		collFixtures: {
			{Keys: bson.D{{Key: "event", Value: 1}}},
			{Keys: bson.D{{Key: "kickoff_time", Value: 1}}},
		},
		collNews: {
			{Keys: bson.D{{Key: "recorded_at", Value: -1}}},
			{Keys: bson.D{{Key: "kind", Value: 1}}},
		},
		collChatSessions: {
			{Keys: bson.D{{Key: "updated_at", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}

	s.logger.DebugContext(ctx, "mongo indexes ensured")
	return nil
}

// metaRecorder tracks the last successful refresh per collection.
type metaRecorder struct {
	col *mongo.Collection
}

type metaDoc struct {
	ID          string    `bson:"_id"`
	LastUpdated time.Time `bson:"last_updated"`
	Count       int       `bson:"count"`
}

func (m *metaRecorder) record(ctx context.Context, collection string, count int) error {
	doc := metaDoc{ID: collection, LastUpdated: time.Now().UTC(), Count: count}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: collection}}, doc, opts); err != nil {
		return fmt.Errorf("record ingestion meta for %s: %w", collection, err)
	}
	return nil
}

// LastUpdated returns the recorded refresh time per collection.
func (s *Store) LastUpdated(ctx context.Context) (map[string]time.Time, error) {
	cursor, err := s.db.Collection(collMeta).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list ingestion meta: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	out := make(map[string]time.Time)
	for cursor.Next(ctx) {
		var doc metaDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode ingestion meta: %w", err)
		}
		out[doc.ID] = doc.LastUpdated
	}
	return out, cursor.Err()
}

// upsertByID bulk-replaces documents keyed by _id with upsert semantics.
func upsertByID[T any](ctx context.Context, col *mongo.Collection, ids []any, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	if len(ids) != len(docs) {
		return fmt.Errorf("ids and documents length mismatch")
	}

	models := make([]mongo.WriteModel, 0, len(docs))
	for i, doc := range docs {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: ids[i]}}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := col.BulkWrite(ctx, models, opts); err != nil {
		return fmt.Errorf("bulk upsert %s: %w", col.Name(), err)
	}
	return nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return out, nil
}
