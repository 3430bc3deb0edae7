package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

const collectionSessions = "sessions"

// SessionRepository stores one document per issued token, keyed by the token.
type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(collectionSessions)}
}

type mongoSession struct {
	Token     string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, mongoSession{Token: s.Token, UserID: s.UserID, CreatedAt: s.CreatedAt})
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindUserID(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSession
	opts := options.FindOne().SetProjection(bson.M{"user_id": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": token}, opts).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrSessionNotFound
		}
		return "", fmt.Errorf("find session: %w", err)
	}
	return ms.UserID, nil
}
