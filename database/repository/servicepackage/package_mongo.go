package packageRepo

import (
	"context"
	"fmt"
	"time"

	"zela/config"
	"zela/database"
	"zela/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPackageRepo implements Repository using MongoDB.
type MongoPackageRepo struct {
	coll *mongo.Collection
}

// NewMongoPackageRepo creates a new instance of Repository using MongoDB.
func NewMongoPackageRepo() Repository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("service_packages")
	repo := &MongoPackageRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPackageRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expires_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPackageRepo) Create(parent context.Context, p *models.ServicePackage) error {
	ctx, cancel := context.WithTimeout(parent, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert service package: %w", err)
	}
	return nil
}

func (r *MongoPackageRepo) GetByID(parent context.Context, id string) (*models.ServicePackage, error) {
	ctx, cancel := context.WithTimeout(parent, 5*time.Second)
	defer cancel()

	var p models.ServicePackage
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("service package %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch service package %s: %w", id, err)
	}
	return &p, nil
}

func (r *MongoPackageRepo) ListByOwner(parent context.Context, ownerID string) ([]models.ServicePackage, error) {
	ctx, cancel := context.WithTimeout(parent, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "purchased_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var packages []models.ServicePackage
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, fmt.Errorf("failed to decode packages for owner %s: %w", ownerID, err)
	}
	return packages, nil
}

// UpdateCredits performs the atomic compare-and-swap on used credits. The
// filter pins both the package and the used-credit count read by the caller,
// so a concurrent consume makes the write match nothing instead of losing
// an update.
func (r *MongoPackageRepo) UpdateCredits(parent context.Context, id string, expectedUsed, newUsed int, status models.PackageStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(parent, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "used_credits": expectedUsed},
		bson.M{"$set": bson.M{"used_credits": newUsed, "status": status}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update credits for package %s: %w", id, err)
	}
	return res.MatchedCount == 1, nil
}

// SetStatus transitions a package between statuses, guarded by the current
// status so two writers cannot race the same transition.
func (r *MongoPackageRepo) SetStatus(parent context.Context, id string, from, to models.PackageStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(parent, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to set status for package %s: %w", id, err)
	}
	return res.MatchedCount == 1, nil
}

// MarkExpired sweeps active packages whose expiry has passed.
func (r *MongoPackageRepo) MarkExpired(parent context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"status": models.PackageActive, "expires_at": bson.M{"$lt": before}},
		bson.M{"$set": bson.M{"status": models.PackageExpired}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark expired packages: %w", err)
	}
	return res.ModifiedCount, nil
}
