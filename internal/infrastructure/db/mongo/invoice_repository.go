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

const collectionInvoices = "invoices"

// InvoiceRepository keeps the payload as the JSON text it was given, so the
// document is never reshaped by BSON conversion.
type InvoiceRepository struct {
	coll *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{coll: db.Collection(collectionInvoices)}
}

type mongoInvoice struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Data      string    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (m *mongoInvoice) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:        m.ID,
		UserID:    m.UserID,
		Data:      domain.Payload(m.Data),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func ownedFilter(id, userID string) bson.M {
	return bson.M{"_id": id, "user_id": userID}
}

func (r *InvoiceRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find invoices: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.Invoice{}
	for cur.Next(ctx) {
		var mi mongoInvoice
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
		out = append(out, mi.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return out, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoInvoice{
		ID:        inv.ID,
		UserID:    inv.UserID,
		Data:      string(inv.Data),
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) FindOwned(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoInvoice
	if err := r.coll.FindOne(ctx, ownedFilter(id, userID)).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return mi.toDomain(), nil
}

// UpdateOwned counts matched rather than modified documents: replacing a
// payload with an identical one is still a successful update.
func (r *InvoiceRepository) UpdateOwned(ctx context.Context, inv *domain.Invoice) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"data":       string(inv.Data),
		"updated_at": inv.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, ownedFilter(inv.ID, inv.UserID), update)
	if err != nil {
		return false, fmt.Errorf("update invoice: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *InvoiceRepository) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, ownedFilter(id, userID))
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	return res.DeletedCount > 0, nil
}
