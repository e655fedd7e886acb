package booking

import (
	"testing"

	"zela/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSequenceBaseFlows(t *testing.T) {
	tests := []struct {
		flowType models.FlowType
		want     []string
	}{
		{models.FlowStandard, []string{"address", "schedule", "worker", "payment", "review"}},
		{models.FlowPropertyBased, []string{"address", "property", "schedule", "worker", "payment", "review"}},
		{models.FlowUnitBased, []string{"address", "units", "schedule", "worker", "payment", "review"}},
		{models.FlowTimeBased, []string{"address", "duration", "schedule", "worker", "payment", "review"}},
		{models.FlowPackageBased, []string{"address", "package", "schedule", "worker", "payment", "review"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.flowType), func(t *testing.T) {
			got := BuildSequence(models.FlowConfig{FlowType: tt.flowType})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSequenceCustomFlowIsExactlyRequired(t *testing.T) {
	cfg := models.FlowConfig{
		FlowType: models.FlowCustom,
		RequiredScreens: []models.ScreenSpec{
			{Name: "address"},
			{Name: "unit_count"},
			{Name: "worker"},
			{Name: "payment"},
		},
		// Optional screens and positions are ignored for custom flows.
		OptionalScreens: []models.ScreenSpec{
			{Name: "notes", Position: &models.ScreenPosition{After: "address"}},
		},
	}
	got := BuildSequence(cfg)
	assert.Equal(t, []string{"address", "unit_count", "worker", "payment"}, got)
}

func TestBuildSequenceRequiredScreenPlacement(t *testing.T) {
	t.Run("no position inserts before schedule", func(t *testing.T) {
		cfg := models.FlowConfig{
			FlowType:        models.FlowStandard,
			RequiredScreens: []models.ScreenSpec{{Name: "pet_details"}},
		}
		got := BuildSequence(cfg)
		assert.Equal(t, []string{"address", "pet_details", "schedule", "worker", "payment", "review"}, got)
	})

	t.Run("after anchor", func(t *testing.T) {
		cfg := models.FlowConfig{
			FlowType: models.FlowStandard,
			RequiredScreens: []models.ScreenSpec{
				{Name: "notes", Position: &models.ScreenPosition{After: "worker"}},
			},
		}
		got := BuildSequence(cfg)
		assert.Equal(t, []string{"address", "schedule", "worker", "notes", "payment", "review"}, got)
	})

	t.Run("before anchor", func(t *testing.T) {
		cfg := models.FlowConfig{
			FlowType: models.FlowStandard,
			RequiredScreens: []models.ScreenSpec{
				{Name: "photos", Position: &models.ScreenPosition{Before: "payment"}},
			},
		}
		got := BuildSequence(cfg)
		assert.Equal(t, []string{"address", "schedule", "worker", "photos", "payment", "review"}, got)
	})

	t.Run("unknown anchor appends instead of failing", func(t *testing.T) {
		cfg := models.FlowConfig{
			FlowType: models.FlowStandard,
			RequiredScreens: []models.ScreenSpec{
				{Name: "extras", Position: &models.ScreenPosition{After: "no-such-screen"}},
			},
		}
		got := BuildSequence(cfg)
		assert.Equal(t, "extras", got[len(got)-1])
	})
}

func TestBuildSequenceOptionalScreens(t *testing.T) {
	t.Run("with position is inserted", func(t *testing.T) {
		cfg := models.FlowConfig{
			FlowType: models.FlowStandard,
			OptionalScreens: []models.ScreenSpec{
				{Name: "promo", Position: &models.ScreenPosition{Before: "review"}},
			},
		}
		got := BuildSequence(cfg)
		assert.Contains(t, got, "promo")
	})

	t.Run("without position is left out", func(t *testing.T) {
		cfg := models.FlowConfig{
			FlowType:        models.FlowStandard,
			OptionalScreens: []models.ScreenSpec{{Name: "promo"}},
		}
		got := BuildSequence(cfg)
		assert.NotContains(t, got, "promo")
	})
}

func TestBuildSequenceNeverDuplicates(t *testing.T) {
	cfg := models.FlowConfig{
		FlowType: models.FlowStandard,
		RequiredScreens: []models.ScreenSpec{
			{Name: "worker"},
			{Name: "worker", Position: &models.ScreenPosition{After: "review"}},
			{Name: "address"},
		},
		OptionalScreens: []models.ScreenSpec{
			{Name: "payment", Position: &models.ScreenPosition{Before: "address"}},
		},
	}
	got := BuildSequence(cfg)
	seen := make(map[string]int)
	for _, s := range got {
		seen[s]++
	}
	for name, n := range seen {
		assert.Equal(t, 1, n, "screen %q appears %d times", name, n)
	}
	// Screens already present keep their original position.
	assert.Equal(t, []string{"address", "schedule", "worker", "payment", "review"}, got)
}

func TestAdvanceAndRetreatAreSymmetric(t *testing.T) {
	cfg := models.FlowConfig{FlowType: models.FlowStandard}
	st := NewFlowState(BuildSequence(cfg))

	require.Equal(t, "address", Current(st))

	st, next := Advance(st, cfg, nil)
	require.Equal(t, "schedule", next)

	st, prev := Retreat(st, cfg, nil)
	assert.Equal(t, "address", prev)
	assert.Equal(t, "address", Current(st))
}

func TestAdvanceSkipsConditionalScreens(t *testing.T) {
	cfg := models.FlowConfig{
		FlowType: models.FlowStandard,
		SkipConditions: map[string]models.Condition{
			"schedule": {Field: "propertyType", Operator: models.OpIn, Value: []interface{}{"T3", "T4+"}},
		},
	}
	st := NewFlowState(BuildSequence(cfg))

	t.Run("condition false keeps the screen", func(t *testing.T) {
		_, next := Advance(st, cfg, map[string]interface{}{"propertyType": "T2"})
		assert.Equal(t, "schedule", next)
	})

	t.Run("condition true skips the screen", func(t *testing.T) {
		_, next := Advance(st, cfg, map[string]interface{}{"propertyType": "T4+"})
		assert.Equal(t, "worker", next)
	})

	t.Run("retreat applies the same skip", func(t *testing.T) {
		at, _ := JumpTo(st, "worker")
		_, prev := Retreat(at, cfg, map[string]interface{}{"propertyType": "T4+"})
		assert.Equal(t, "address", prev)
	})
}

func TestAdvanceAtEndIsUnchanged(t *testing.T) {
	cfg := models.FlowConfig{FlowType: models.FlowStandard}
	st := NewFlowState(BuildSequence(cfg))
	st, _ = JumpTo(st, "review")

	got, next := Advance(st, cfg, nil)
	assert.Equal(t, "", next)
	assert.Equal(t, st, got)
	assert.True(t, IsLast(got))
}

func TestRetreatAtStartIsUnchanged(t *testing.T) {
	cfg := models.FlowConfig{FlowType: models.FlowStandard}
	st := NewFlowState(BuildSequence(cfg))

	got, prev := Retreat(st, cfg, nil)
	assert.Equal(t, "", prev)
	assert.Equal(t, 0, got.Index)
}

func TestJumpTo(t *testing.T) {
	st := NewFlowState([]string{"address", "schedule", "payment"})

	st, screen := JumpTo(st, "payment")
	assert.Equal(t, "payment", screen)
	assert.Equal(t, 2, st.Index)

	// Unknown screens are a no-op, never an error.
	got, screen := JumpTo(st, "nope")
	assert.Equal(t, "", screen)
	assert.Equal(t, st, got)
}

func TestProgress(t *testing.T) {
	cfg := models.FlowConfig{FlowType: models.FlowStandard}
	st := NewFlowState(BuildSequence(cfg))

	last := 0
	for {
		p := Progress(st)
		assert.GreaterOrEqual(t, p, last, "progress must be monotonic")
		assert.Equal(t, IsLast(st), p == 100, "progress is 100 exactly on the last screen")
		last = p

		var next string
		st, next = Advance(st, cfg, nil)
		if next == "" {
			break
		}
	}
	assert.Equal(t, 100, last)
}

func TestProgressRoundsHalfUp(t *testing.T) {
	st := models.FlowState{Sequence: make([]string, 3), Index: 0}
	// 1/3 = 33.33 rounds to 33.
	assert.Equal(t, 33, Progress(st))
	st.Index = 1
	// 2/3 = 66.67 rounds to 67.
	assert.Equal(t, 67, Progress(st))

	assert.Equal(t, 0, Progress(models.FlowState{}))
}

func TestReset(t *testing.T) {
	st := NewFlowState([]string{"a", "b", "c"})
	st, _ = JumpTo(st, "c")
	st = Reset(st)
	assert.Equal(t, "a", Current(st))
}
