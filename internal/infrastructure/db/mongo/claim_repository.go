package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/launchstack/benefits-api/internal/core/domain"
)

const claimsCollection = "claims"

type ClaimRepository struct {
	coll *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{coll: db.Collection(claimsCollection)}
}

// Create inserts a new claim. The unique (user_id, deal_id) index turns a
// duplicate insert into domain.ErrAlreadyClaimed.
func (r *ClaimRepository) Create(ctx context.Context, c *domain.Claim) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyClaimed
		}
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

func (r *ClaimRepository) FindByID(ctx context.Context, id string) (*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Claim
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("find claim: %w", err)
	}
	return &c, nil
}

// ListByUser returns the user's claims ordered by creation time, oldest
// first, matching the append-only sequence the API exposes.
func (r *ClaimRepository) ListByUser(ctx context.Context, userID string) ([]domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "claimed_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer cursor.Close(ctx)

	var claims []domain.Claim
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}
	return claims, nil
}

func (r *ClaimRepository) ExistsByUserAndDeal(ctx context.Context, userID, dealID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID, "deal_id": dealID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count claims: %w", err)
	}
	return n > 0, nil
}

// UpdateDecision sets the terminal status on a claim that is still pending.
// The pending filter makes the update a no-op on already-decided claims, so
// concurrent reviews cannot overwrite a terminal state.
func (r *ClaimRepository) UpdateDecision(ctx context.Context, id string, status domain.ClaimStatus, decidedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status)}}
	if status == domain.ClaimApproved {
		update["$set"].(bson.M)["approved_at"] = decidedAt.UTC()
	}

	filter := bson.M{"_id": id, "status": string(domain.ClaimPending)}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update claim decision: %w", err)
	}
	return nil
}

func (r *ClaimRepository) CountApprovedByDeal(ctx context.Context, dealID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"deal_id": dealID, "status": string(domain.ClaimApproved)})
	if err != nil {
		return 0, fmt.Errorf("count approved claims: %w", err)
	}
	return n, nil
}

// ListPending returns all pending claims, oldest first. Called once at
// startup to re-enqueue reviews that were in flight when the process last
// stopped.
func (r *ClaimRepository) ListPending(ctx context.Context) ([]domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "claimed_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": string(domain.ClaimPending)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list pending claims: %w", err)
	}
	defer cursor.Close(ctx)

	var claims []domain.Claim
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("decode pending claims: %w", err)
	}
	return claims, nil
}

// EnsureIndexes creates the claims indexes, including the unique
// (user_id, deal_id) pair that enforces at most one claim per user per deal.
func (r *ClaimRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "deal_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "claimed_at", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
