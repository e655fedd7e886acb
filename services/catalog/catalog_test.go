package catalog

import (
	"testing"

	"zela/models"
	"zela/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveSlug(t *testing.T) {
	assert.Equal(t, "indoor-cleaning", ResolveSlug("indoor"))
	assert.Equal(t, "laundry-ironing", ResolveSlug("laundry"))
	assert.Equal(t, "electrician", ResolveSlug("electrician"), "canonical slugs pass through")
	assert.Equal(t, "unknown-thing", ResolveSlug("unknown-thing"))
}

func TestDefaultConfigCoversLaunchCategories(t *testing.T) {
	for _, slug := range []string{
		"indoor-cleaning", "office-cleaning", "outdoor-cleaning", "moving",
		"express-cleaning", "laundry-ironing", "electrician", "ac-repair",
		"pest-control", "dog-trainer",
	} {
		cfg, ok := DefaultConfig(slug)
		require.True(t, ok, "missing default config for %s", slug)
		assert.Equal(t, slug, cfg.ServiceSlug)
		assert.NotEmpty(t, cfg.PricingModel, "%s has no pricing model", slug)
		assert.NotEmpty(t, booking.BuildSequence(*cfg), "%s builds an empty flow", slug)
	}
}

func TestDefaultConfigReturnsACopy(t *testing.T) {
	a, ok := DefaultConfig("electrician")
	require.True(t, ok)
	a.PricingModel = "mutated"
	a.ServiceSlug = "other"

	b, ok := DefaultConfig("electrician")
	require.True(t, ok)
	assert.Equal(t, models.PricingHourlyMinimum, b.PricingModel)
}

func TestDefaultConfigUnknownSlug(t *testing.T) {
	_, ok := DefaultConfig("llama-grooming")
	assert.False(t, ok)
}

func TestStandardConfig(t *testing.T) {
	cfg := StandardConfig("llama-grooming")
	assert.Equal(t, "llama-grooming", cfg.ServiceSlug)
	assert.Equal(t, models.FlowStandard, cfg.FlowType)
	seq := booking.BuildSequence(*cfg)
	assert.Equal(t, []string{"address", "schedule", "worker", "payment", "review"}, seq)
}

func TestNormalizeCollectsUnplacedOptionals(t *testing.T) {
	store := &MongoStore{logger: zap.NewNop()}
	cfg := &models.FlowConfig{
		ServiceSlug: "moving",
		FlowType:    models.FlowStandard,
		OptionalScreens: []models.ScreenSpec{
			{Name: "placed", Position: &models.ScreenPosition{Before: "review"}},
			{Name: "floating"},
		},
	}

	out := store.normalize(cfg)
	assert.Equal(t, []string{"floating"}, out.UnplacedOptional)
	assert.Contains(t, booking.BuildSequence(*out), "placed")
	assert.NotContains(t, booking.BuildSequence(*out), "floating")
}

func TestNormalizePrunesDanglingSkipConditions(t *testing.T) {
	store := &MongoStore{logger: zap.NewNop()}
	cfg := &models.FlowConfig{
		ServiceSlug: "moving",
		FlowType:    models.FlowStandard,
		SkipConditions: map[string]models.Condition{
			"schedule":    {Field: "asap", Operator: models.OpEquals, Value: true},
			"nonexistent": {Field: "x", Operator: models.OpExists},
		},
	}

	out := store.normalize(cfg)
	assert.Contains(t, out.SkipConditions, "schedule")
	assert.NotContains(t, out.SkipConditions, "nonexistent")
}

func TestNormalizeLeavesConfigUntouched(t *testing.T) {
	store := &MongoStore{logger: zap.NewNop()}
	cfg := &models.FlowConfig{
		ServiceSlug: "moving",
		FlowType:    models.FlowStandard,
		OptionalScreens: []models.ScreenSpec{
			{Name: "floating"},
		},
	}

	_ = store.normalize(cfg)
	assert.Nil(t, cfg.UnplacedOptional, "normalize works on a copy")
}
