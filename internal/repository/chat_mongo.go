package repository

import (
	"context"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoChatRepo struct {
	col *mongo.Collection
}

func NewMongoChatRepo(db *mongo.Database) ChatRepository {
	col := db.Collection("chats")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "participants", Value: 1}},
		Options: options.Index().SetName("participants_idx"),
	})
	return &mongoChatRepo{col: col}
}

func (r *mongoChatRepo) Create(ctx context.Context, c *domain.Chat) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *mongoChatRepo) Get(ctx context.Context, id string) (*domain.Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var c domain.Chat
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoChatRepo) ListForUser(ctx context.Context, userID string) ([]*domain.Chat, error) {
	return r.list(ctx, bson.M{"participants": userID})
}

func (r *mongoChatRepo) ListDirectForUser(ctx context.Context, userID string) ([]*domain.Chat, error) {
	return r.list(ctx, bson.M{"participants": userID, "is_group_chat": false})
}

func (r *mongoChatRepo) list(ctx context.Context, filter bson.M) ([]*domain.Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*domain.Chat{}
	for cur.Next(ctx) {
		var c domain.Chat
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

func (r *mongoChatRepo) SetLastMessage(ctx context.Context, chatID string, m *domain.Message, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.col.UpdateByID(ctx, chatID, bson.M{"$set": bson.M{
		"last_message": m,
		"updated_at":   at,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
