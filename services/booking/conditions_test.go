package booking

import (
	"testing"

	"zela/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateConditionEquals(t *testing.T) {
	data := map[string]interface{}{"paymentMethod": "cash", "hours": float64(3)}

	tests := []struct {
		name string
		cond models.Condition
		want bool
	}{
		{"equal strings", models.Condition{Field: "paymentMethod", Operator: models.OpEquals, Value: "cash"}, true},
		{"unequal strings", models.Condition{Field: "paymentMethod", Operator: models.OpEquals, Value: "card"}, false},
		{"json float equals config int", models.Condition{Field: "hours", Operator: models.OpEquals, Value: 3}, true},
		{"missing field never equals", models.Condition{Field: "nope", Operator: models.OpEquals, Value: "cash"}, false},
		{"not_equals on unequal", models.Condition{Field: "paymentMethod", Operator: models.OpNotEquals, Value: "card"}, true},
		{"not_equals on missing field", models.Condition{Field: "nope", Operator: models.OpNotEquals, Value: "card"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, data))
		})
	}
}

func TestEvaluateConditionIn(t *testing.T) {
	cond := models.Condition{
		Field:    "propertyType",
		Operator: models.OpIn,
		Value:    []interface{}{"T3", "T4+"},
	}

	assert.False(t, EvaluateCondition(cond, map[string]interface{}{"propertyType": "T2"}))
	assert.True(t, EvaluateCondition(cond, map[string]interface{}{"propertyType": "T4+"}))
	assert.False(t, EvaluateCondition(cond, map[string]interface{}{}), "missing field is never in")

	t.Run("typed string slice works", func(t *testing.T) {
		c := models.Condition{Field: "propertyType", Operator: models.OpIn, Value: []string{"T3", "T4+"}}
		assert.True(t, EvaluateCondition(c, map[string]interface{}{"propertyType": "T3"}))
	})

	t.Run("non-list value evaluates to false", func(t *testing.T) {
		c := models.Condition{Field: "propertyType", Operator: models.OpIn, Value: "T3"}
		assert.False(t, EvaluateCondition(c, map[string]interface{}{"propertyType": "T3"}))
	})
}

func TestEvaluateConditionNotIn(t *testing.T) {
	cond := models.Condition{
		Field:    "province",
		Operator: models.OpNotIn,
		Value:    []interface{}{"Luanda"},
	}

	assert.True(t, EvaluateCondition(cond, map[string]interface{}{"province": "Benguela"}))
	assert.False(t, EvaluateCondition(cond, map[string]interface{}{"province": "Luanda"}))
	assert.True(t, EvaluateCondition(cond, map[string]interface{}{}), "missing field is not in any list")

	t.Run("non-list value evaluates to false", func(t *testing.T) {
		c := models.Condition{Field: "province", Operator: models.OpNotIn, Value: 7}
		assert.False(t, EvaluateCondition(c, map[string]interface{}{"province": "Benguela"}))
	})
}

func TestEvaluateConditionExists(t *testing.T) {
	data := map[string]interface{}{"workerId": "w-1", "note": nil}

	assert.True(t, EvaluateCondition(models.Condition{Field: "workerId", Operator: models.OpExists}, data))
	assert.False(t, EvaluateCondition(models.Condition{Field: "note", Operator: models.OpExists}, data), "explicit null does not exist")
	assert.False(t, EvaluateCondition(models.Condition{Field: "missing", Operator: models.OpExists}, data))

	assert.False(t, EvaluateCondition(models.Condition{Field: "workerId", Operator: models.OpNotExists}, data))
	assert.True(t, EvaluateCondition(models.Condition{Field: "missing", Operator: models.OpNotExists}, data))
}

func TestEvaluateConditionUnknownOperator(t *testing.T) {
	cond := models.Condition{Field: "x", Operator: "regex", Value: ".*"}
	assert.False(t, EvaluateCondition(cond, map[string]interface{}{"x": "y"}))
}

func TestEvaluateConditionOpaqueEvaluatorWins(t *testing.T) {
	cond := models.Condition{
		Field:    "propertyType",
		Operator: models.OpEquals,
		Value:    "T1",
		Eval:     func(map[string]interface{}) bool { return true },
	}
	// The structured form would say false; the evaluator overrides it.
	assert.True(t, EvaluateCondition(cond, map[string]interface{}{"propertyType": "T2"}))
}

func TestLookupPath(t *testing.T) {
	data := map[string]interface{}{
		"address": map[string]interface{}{
			"province": "Luanda",
			"geo":      map[string]interface{}{"lat": -8.83},
		},
		"flat": "value",
	}

	tests := []struct {
		path      string
		want      interface{}
		wantFound bool
	}{
		{"flat", "value", true},
		{"address.province", "Luanda", true},
		{"address.geo.lat", -8.83, true},
		{"address.missing", nil, false},
		{"address.province.deeper", nil, false},
		{"missing.anything", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, found := lookupPath(data, tt.path)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("nil data never panics", func(t *testing.T) {
		_, found := lookupPath(nil, "a.b")
		assert.False(t, found)
	})
}

func TestShouldSkip(t *testing.T) {
	cfg := models.FlowConfig{
		SkipConditions: map[string]models.Condition{
			"property": {Field: "propertyType", Operator: models.OpExists},
		},
	}

	assert.True(t, ShouldSkip(cfg, "property", map[string]interface{}{"propertyType": "T2"}))
	assert.False(t, ShouldSkip(cfg, "property", map[string]interface{}{}))
	assert.False(t, ShouldSkip(cfg, "unconfigured", map[string]interface{}{"propertyType": "T2"}))
}
