package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clientbook/payments-api/internal/core/domain"
	"github.com/clientbook/payments-api/internal/core/ports"
)

const collectionPayments = "payments"

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

// Upsert atomically creates or updates the single payment record for
// (client, month, year). The unique compound index guarantees at most one
// record per key; when two upserts race, the loser hits a duplicate-key
// error on insert and retries as a plain update.
func (r *PaymentRepository) Upsert(ctx context.Context, p ports.UpsertPaymentParams) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"client_id": p.ClientID,
		"month":     p.Month,
		"year":      p.Year,
	}
	set := bson.M{"paid": p.Paid}
	if p.Notes != nil {
		set["notes"] = *p.Notes
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"client_id": p.ClientID,
			"month":     p.Month,
			"year":      p.Year,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var payment domain.Payment
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&payment)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the insert race; the record now exists, so retry updates it.
		err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&payment)
	}
	if err != nil {
		return nil, mapStoreErr("upsert payment", err)
	}
	return &payment, nil
}

func (r *PaymentRepository) Get(ctx context.Context, clientID string, month, year int) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"client_id": clientID, "month": month, "year": year}

	var p domain.Payment
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, mapStoreErr("find payment", err)
	}
	return &p, nil
}

func (r *PaymentRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Payment, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

// ListByYear returns every payment of the given calendar year in one scan.
func (r *PaymentRepository) ListByYear(ctx context.Context, year int) ([]*domain.Payment, error) {
	return r.list(ctx, bson.M{"year": year})
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]*domain.Payment, error) {
	return r.list(ctx, bson.M{})
}

func (r *PaymentRepository) list(ctx context.Context, filter bson.M) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapStoreErr("list payments", err)
	}
	defer cursor.Close(ctx)

	payments := []*domain.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, mapStoreErr("decode payments", err)
	}
	return payments, nil
}

// DeleteByClient removes all payments of one client (cascade step).
func (r *PaymentRepository) DeleteByClient(ctx context.Context, clientID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"client_id": clientID}); err != nil {
		return mapStoreErr("delete payments", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the payments collection depends on. The
// compound (client_id, month, year) index is unique: it is what makes the
// toggle upsert safe under concurrency.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "client_id", Value: 1},
				{Key: "month", Value: 1},
				{Key: "year", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "year", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
