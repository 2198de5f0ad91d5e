package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a MongoDB database, one Mongo
// collection per logical collection, the document id stored as _id.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MongoDB and verifies connectivity.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound{Collection: collection, ID: id}
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}

	doc := normalizeValue(raw).(map[string]interface{})
	delete(doc, "_id")
	return doc, nil
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, doc Document) error {
	record := bson.M{"_id": id}
	for k, v := range doc {
		record[k] = v
	}

	_, err := s.db.Collection(collection).ReplaceOne(
		ctx,
		bson.M{"_id": id},
		record,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Find(ctx context.Context, q Query) ([]Document, error) {
	opts := options.Find()
	if q.OrderField != "" {
		direction := 1
		if q.Descending {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderField, Value: direction}})
	}
	if q.LimitCount > 0 {
		opts.SetLimit(int64(q.LimitCount))
	}

	cursor, err := s.db.Collection(q.Collection).Find(ctx, buildFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.Collection, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode document from %s: %w", q.Collection, err)
		}
		doc := normalizeValue(raw).(map[string]interface{})
		delete(doc, "_id")
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", q.Collection, err)
	}

	return docs, nil
}

func (s *MongoStore) Count(ctx context.Context, q Query) (int, error) {
	n, err := s.db.Collection(q.Collection).CountDocuments(ctx, buildFilter(q))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", q.Collection, err)
	}
	return int(n), nil
}

// buildFilter translates the query predicates, including the
// StartAt/EndAt bounds on the order-by field, into a Mongo filter.
func buildFilter(q Query) bson.M {
	var clauses []bson.M

	for _, f := range q.Filters {
		switch f.Op {
		case OpEqual:
			clauses = append(clauses, bson.M{f.Field: f.Value})
		case OpIn:
			clauses = append(clauses, bson.M{f.Field: bson.M{"$in": f.Value}})
		case OpGreaterThanOrEqual:
			clauses = append(clauses, bson.M{f.Field: bson.M{"$gte": f.Value}})
		case OpLessThanOrEqual:
			clauses = append(clauses, bson.M{f.Field: bson.M{"$lte": f.Value}})
		}
	}

	if q.OrderField != "" {
		if q.StartValue != nil {
			clauses = append(clauses, bson.M{q.OrderField: bson.M{"$gte": q.StartValue}})
		}
		if q.EndValue != nil {
			clauses = append(clauses, bson.M{q.OrderField: bson.M{"$lte": q.EndValue}})
		}
	}

	if len(clauses) == 0 {
		return bson.M{}
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return bson.M{"$and": clauses}
}

// normalizeValue converts BSON-specific decode types back into the
// plain map/slice/time shapes the Document contract promises.
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			out[k] = normalizeValue(inner)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = normalizeValue(inner)
		}
		return out
	case primitive.DateTime:
		return val.Time()
	default:
		return v
	}
}
