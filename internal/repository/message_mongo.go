package repository

import (
	"context"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoMessageRepo struct {
	col *mongo.Collection
}

func NewMongoMessageRepo(db *mongo.Database) MessageRepository {
	col := db.Collection("messages")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "chat_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("chat_created_idx"),
	})
	return &mongoMessageRepo{col: col}
}

func (r *mongoMessageRepo) Insert(ctx context.Context, m *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.col.InsertOne(ctx, m)
	return err
}

func (r *mongoMessageRepo) ListByChat(ctx context.Context, chatID string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*domain.Message{}
	for cur.Next(ctx) {
		var m domain.Message
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, cur.Err()
}
