package repository

import (
	"context"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRoomRepo struct {
	col *mongo.Collection
}

func NewMongoRoomRepo(db *mongo.Database) RoomRepository {
	return &mongoRoomRepo{col: db.Collection("rooms")}
}

func (r *mongoRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.col.InsertOne(ctx, room)
	return err
}

func (r *mongoRoomRepo) List(ctx context.Context) ([]*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*domain.Room{}
	for cur.Next(ctx) {
		var room domain.Room
		if err := cur.Decode(&room); err != nil {
			return nil, err
		}
		out = append(out, &room)
	}
	return out, cur.Err()
}
