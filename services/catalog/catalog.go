package catalog

import (
	"context"
	"fmt"
	"time"

	"zela/config"
	"zela/database"
	"zela/models"
	"zela/services/booking"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoStore loads flow configurations from the services collection,
// falling back to the built-in defaults for categories that have none.
// A malformed config is degraded per the merge rules, never rejected.
type MongoStore struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewMongoStore(logger *zap.Logger) *MongoStore {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("services")
	return &MongoStore{coll: coll, logger: logger}
}

// Get resolves the flow configuration for a service slug.
func (s *MongoStore) Get(parent context.Context, serviceSlug string) (*models.FlowConfig, error) {
	slug := ResolveSlug(serviceSlug)

	ctx, cancel := context.WithTimeout(parent, 5*time.Second)
	defer cancel()

	var category models.ServiceCategory
	err := s.coll.FindOne(ctx, bson.M{"slug": slug, "active": true}).Decode(&category)
	switch {
	case err == mongo.ErrNoDocuments || (err == nil && category.Flow.FlowType == ""):
		cfg, ok := DefaultConfig(slug)
		if !ok {
			// Unknown categories still book on the generic standard flow.
			cfg = StandardConfig(slug)
		}
		return s.normalize(cfg), nil
	case err != nil:
		return nil, fmt.Errorf("failed to load service category %q: %w", slug, err)
	}

	cfg := category.Flow
	cfg.ServiceSlug = slug
	return s.normalize(&cfg), nil
}

// normalize applies the degradation rules: duplicate screen names are
// dropped by the merge, optional screens without a position are collected
// for the author to see, and skip conditions referencing screens absent
// from the built sequence are pruned.
func (s *MongoStore) normalize(cfg *models.FlowConfig) *models.FlowConfig {
	out := *cfg

	out.UnplacedOptional = nil
	for _, opt := range out.OptionalScreens {
		if !opt.Position.Explicit() {
			out.UnplacedOptional = append(out.UnplacedOptional, opt.Name)
			if s.logger != nil {
				s.logger.Warn("optional screen has no position and will not be placed",
					zap.String("service", out.ServiceSlug),
					zap.String("screen", opt.Name))
			}
		}
	}

	sequence := booking.BuildSequence(out)
	if len(out.SkipConditions) > 0 {
		kept := make(map[string]models.Condition, len(out.SkipConditions))
		for screen, cond := range out.SkipConditions {
			if !containsScreen(sequence, screen) {
				if s.logger != nil {
					s.logger.Warn("skip condition references screen outside the flow",
						zap.String("service", out.ServiceSlug),
						zap.String("screen", screen))
				}
				continue
			}
			kept[screen] = cond
		}
		out.SkipConditions = kept
	}
	return &out
}

func containsScreen(sequence []string, screen string) bool {
	for _, s := range sequence {
		if s == screen {
			return true
		}
	}
	return false
}
