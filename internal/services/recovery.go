package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mernshopper/shopper-backend/internal/database"
	"github.com/mernshopper/shopper-backend/internal/models"
)

const (
	// RecoveryRequestTTL is the redemption window measured from IssuedAt.
	// Checked independently of the activation token's own expiry.
	RecoveryRequestTTL = 10 * time.Minute

	recoveryCollection = "forgots"
)

// RecoveryStore is the recovery request store contract. Lookups return
// (nil, nil) when no request matches.
type RecoveryStore interface {
	// ClearAll deletes every outstanding recovery request, for every email.
	ClearAll(ctx context.Context) error
	FindByEmail(ctx context.Context, email string) (*models.RecoveryRequest, error)
	FindByActivationLink(ctx context.Context, link string) (*models.RecoveryRequest, error)
	Create(ctx context.Context, req *models.RecoveryRequest) error
	// Delete removes the request with the given activation link. This is the
	// single-use consumption point of a redeemed link.
	Delete(ctx context.Context, link string) error
}

type mongoRecoveryStore struct{}

// NewRecoveryStore returns the MongoDB-backed recovery request store.
func NewRecoveryStore() RecoveryStore {
	return &mongoRecoveryStore{}
}

// EnsureRecoveryIndexes creates the unique indexes backing the one-request-
// per-email and one-link-per-request invariants. Called once at startup.
func EnsureRecoveryIndexes(ctx context.Context) error {
	coll := database.DB.Collection(recoveryCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "activation_link", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}
	log.Println("✅ MongoDB recovery indexes ensured")
	return nil
}

func (s *mongoRecoveryStore) ClearAll(ctx context.Context) error {
	_, err := database.DB.Collection(recoveryCollection).DeleteMany(ctx, bson.M{})
	return err
}

func (s *mongoRecoveryStore) FindByEmail(ctx context.Context, email string) (*models.RecoveryRequest, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *mongoRecoveryStore) FindByActivationLink(ctx context.Context, link string) (*models.RecoveryRequest, error) {
	return s.findOne(ctx, bson.M{"activation_link": link})
}

func (s *mongoRecoveryStore) findOne(ctx context.Context, filter bson.M) (*models.RecoveryRequest, error) {
	var req models.RecoveryRequest
	err := database.DB.Collection(recoveryCollection).FindOne(ctx, filter).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *mongoRecoveryStore) Create(ctx context.Context, req *models.RecoveryRequest) error {
	_, err := database.DB.Collection(recoveryCollection).InsertOne(ctx, req)
	return err
}

func (s *mongoRecoveryStore) Delete(ctx context.Context, link string) error {
	_, err := database.DB.Collection(recoveryCollection).DeleteOne(ctx, bson.M{"activation_link": link})
	return err
}
