package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/cliptower/pkg/cache"
	"github.com/matzehuels/cliptower/pkg/errors"
)

// MongoCollection is the collection documents are kept in.
const MongoCollection = "timelines"

// MongoStore keeps documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// OpenMongo connects to uri and uses the timelines collection of database.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo store needs a uri")
	}
	if database == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo store needs a database")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return cache.Retryable(client.Ping(pingCtx, readpref.Primary()))
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(MongoCollection),
		now:    time.Now,
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, doc *Document) error {
	var created time.Time
	if doc.ID != "" {
		var old Document
		err := s.coll.FindOne(ctx, bson.M{"_id": doc.ID},
			options.FindOne().SetProjection(bson.M{"createdAt": 1}),
		).Decode(&old)
		switch {
		case err == nil:
			created = old.CreatedAt
		case err != mongo.ErrNoDocuments:
			return errors.Wrap(errors.ErrCodeStorage, err, "query document")
		}
	}
	// BSON dates carry millisecond precision.
	if err := prepare(doc, created, s.now().UTC().Truncate(time.Millisecond)); err != nil {
		return err
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save document")
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load document")
	}
	return &doc, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var doc Document
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode document")
		}
		out = append(out, summarize(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete document")
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
