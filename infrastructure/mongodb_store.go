package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"job-board/config"
	"job-board/domain"
)

const (
	jobsCollection     = "jobs"
	countersCollection = "counters"
)

// MongoJobStore keeps jobs in a collection keyed by a numeric id drawn from a
// counter document, so ids look the same as with the SQL drivers.
type MongoJobStore struct {
	client   *mongo.Client
	jobs     *mongo.Collection
	counters *mongo.Collection
	now      func() time.Time
}

func NewMongoJobStore(ctx context.Context, cfg config.Database) (*MongoJobStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.Name)
	store := &MongoJobStore{
		client:   client,
		jobs:     db.Collection(jobsCollection),
		counters: db.Collection(countersCollection),
		now:      time.Now,
	}

	_, err = store.jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "title_lower", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create title index: %w", err)
	}

	return store, nil
}

func (s *MongoJobStore) Create(ctx context.Context, input domain.JobInput) (domain.Job, error) {
	job, err := domain.NewJob(input, s.now())
	if err != nil {
		return domain.Job{}, err
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return domain.Job{}, err
	}
	job.ID = id

	if _, err := s.jobs.InsertOne(ctx, job); err != nil {
		return domain.Job{}, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

func (s *MongoJobStore) nextID(ctx context.Context) (uint, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := s.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: jobsCollection}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next job id: %w", err)
	}
	return uint(counter.Seq), nil
}

func (s *MongoJobStore) List(ctx context.Context, filter string, req domain.PageRequest) (domain.Page[domain.Job], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.Job]{}, err
	}

	query := titleRegex(filter)

	total, err := s.jobs.CountDocuments(ctx, query)
	if err != nil {
		return domain.Page[domain.Job]{}, fmt.Errorf("count jobs: %w", err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(req.Offset())).
		SetLimit(int64(req.Size))

	cursor, err := s.jobs.Find(ctx, query, findOptions)
	if err != nil {
		return domain.Page[domain.Job]{}, fmt.Errorf("find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []domain.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return domain.Page[domain.Job]{}, fmt.Errorf("decode jobs: %w", err)
	}

	return domain.NewPage(jobs, total, req), nil
}

func (s *MongoJobStore) Get(ctx context.Context, id uint) (domain.Job, error) {
	var job domain.Job
	err := s.jobs.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Job{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Job{}, fmt.Errorf("get job %d: %w", id, err)
	}
	return job, nil
}

func (s *MongoJobStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func titleRegex(filter string) bson.D {
	if strings.TrimSpace(filter) == "" {
		return bson.D{}
	}
	return bson.D{{Key: "title_lower", Value: bson.Regex{Pattern: regexp.QuoteMeta(strings.ToLower(filter))}}}
}
