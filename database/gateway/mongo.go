package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoGateway struct {
	db *mongo.Database
}

// NewMongoGateway returns a Gateway backed by a MongoDB database.
func NewMongoGateway(db *mongo.Database) Gateway {
	return &mongoGateway{db: db}
}

func (g *mongoGateway) Select(ctx context.Context, table string, filter Filter, order *Order, joins ...Join) ([]Row, error) {
	opts := options.Find()
	if order != nil {
		dir := 1
		if order.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: order.Field, Value: dir}})
	}

	cursor, err := g.db.Collection(table).Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, &GatewayError{Op: "select", Table: table, Err: err}
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, &GatewayError{Op: "select", Table: table, Err: err}
	}

	rows := make([]Row, 0, len(raw))
	for _, doc := range raw {
		row := Row(doc)
		for _, join := range joins {
			if err := g.embedJoin(ctx, row, join); err != nil {
				return nil, err
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// embedJoin resolves a referenced document by id and embeds it in the row.
// A dangling reference embeds nothing rather than failing the select.
func (g *mongoGateway) embedJoin(ctx context.Context, row Row, join Join) error {
	ref, ok := row[join.LocalField].(string)
	if !ok || ref == "" {
		return nil
	}
	var doc bson.M
	err := g.db.Collection(join.Table).FindOne(ctx, bson.M{"id": ref}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return &GatewayError{Op: "join", Table: join.Table, Err: err}
	}
	row[join.As] = doc
	return nil
}

func (g *mongoGateway) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if id, _ := row["id"].(string); id == "" {
		row["id"] = uuid.New().String()
	}
	now := time.Now()
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = now
	}
	row["updated_at"] = now

	if _, err := g.db.Collection(table).InsertOne(ctx, bson.M(row)); err != nil {
		return nil, &GatewayError{Op: "insert", Table: table, Err: err}
	}
	delete(row, "_id")
	return row, nil
}

func (g *mongoGateway) Update(ctx context.Context, table string, id string, partial Row) (Row, error) {
	partial["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := g.db.Collection(table).FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": bson.M(partial)}, opts)

	var doc bson.M
	err := res.Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &NotFoundError{Table: table, ID: id}
	}
	if err != nil {
		return nil, &GatewayError{Op: "update", Table: table, Err: err}
	}
	return Row(doc), nil
}

func (g *mongoGateway) Delete(ctx context.Context, table string, id string) error {
	res, err := g.db.Collection(table).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return &GatewayError{Op: "delete", Table: table, Err: err}
	}
	if res.DeletedCount == 0 {
		return &NotFoundError{Table: table, ID: id}
	}
	return nil
}

func toBSON(filter Filter) bson.M {
	m := bson.M{}
	for k, v := range filter {
		m[k] = v
	}
	return m
}
