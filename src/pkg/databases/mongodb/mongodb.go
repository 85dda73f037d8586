package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-service/src/pkg/databases/docstore"
	"finance-service/src/pkg/log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	URI          string
	Database     string
	Transactions bool
	Timeout      time.Duration
}

type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
	log          log.Log
}

var _ docstore.Store = (*Store)(nil)

func InitConnection(ctx context.Context, cfg Config, logger log.Log) (*Store, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	logger.Info("mongodb", "connected", "InitConnection", cfg.Database)

	return &Store{
		client:       client,
		db:           client.Database(cfg.Database),
		transactions: cfg.Transactions,
		log:          logger,
	}, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return docstore.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return docstore.ErrDuplicateID
	}
	return err
}

func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	m := bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", err
	}
	id, _ := m["_id"].(string)
	if id == "" {
		id = uuid.NewString()
		m["_id"] = id
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		return "", translate(err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch docstore.Fields) error {
	res, err := s.db.Collection(collection).UpdateByID(ctx, id, bson.M{"$set": bson.M(patch)})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	return translate(s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out))
}

func (s *Store) GetAll(ctx context.Context, collection string, out any) error {
	return s.Find(ctx, collection, docstore.Query{}, out)
}

func (s *Store) Find(ctx context.Context, collection string, q docstore.Query, out any) error {
	filter, err := buildFilter(q.Filters)
	if err != nil {
		return err
	}
	opts := options.Find()
	if len(q.OrderBy) > 0 {
		opts.SetSort(buildSort(q.OrderBy))
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return translate(err)
	}
	return translate(cursor.All(ctx, out))
}

func (s *Store) Increment(ctx context.Context, collection, id, field string, delta int64) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc bson.M
	err := s.db.Collection(collection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}}, opts).
		Decode(&doc)
	if err != nil {
		return 0, translate(err)
	}
	switch v := doc[field].(type) {
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	}
	return 0, fmt.Errorf("field %q is not numeric: %T", field, doc[field])
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument bson.Raw `bson:"fullDocument"`
}

// Subscribe opens a change stream; it requires a replica set.
func (s *Store) Subscribe(ctx context.Context, collection string, fn func(docstore.Change)) (func(), error) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := s.db.Collection(collection).Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return nil, translate(err)
	}
	streamCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			var ev changeEvent
			if err := stream.Decode(&ev); err != nil {
				s.log.Error("mongodb", err.Error(), "Subscribe", collection)
				continue
			}
			changeType := docstore.ChangeUpdate
			if ev.OperationType == "insert" {
				changeType = docstore.ChangeInsert
			}
			fn(docstore.Change{
				Collection: collection,
				ID:         ev.DocumentKey.ID,
				Type:       changeType,
				Document:   ev.FullDocument,
			})
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			s.log.Error("mongodb", err.Error(), "Subscribe", collection)
		}
	}()
	return cancel, nil
}

func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}
	session, err := s.client.StartSession()
	if err != nil {
		return translate(err)
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return translate(err)
}

func (s *Store) Transactional() bool {
	return s.transactions
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
