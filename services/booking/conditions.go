package booking

import (
	"fmt"
	"reflect"
	"strings"

	"zela/models"
)

// EvaluateCondition runs a condition against accumulated session data.
// Opaque evaluators win over the structured form. Malformed conditions
// (unknown operator, non-list value for in/not_in) evaluate to false rather
// than failing the flow.
func EvaluateCondition(c models.Condition, data map[string]interface{}) bool {
	if c.Eval != nil {
		return c.Eval(data)
	}

	val, found := lookupPath(data, c.Field)

	switch c.Operator {
	case models.OpExists:
		return found && val != nil
	case models.OpNotExists:
		return !found || val == nil
	case models.OpEquals:
		return found && looseEquals(val, c.Value)
	case models.OpNotEquals:
		return !found || !looseEquals(val, c.Value)
	case models.OpIn:
		list, ok := asList(c.Value)
		if !ok {
			return false
		}
		return found && listContains(list, val)
	case models.OpNotIn:
		list, ok := asList(c.Value)
		if !ok {
			return false
		}
		return !found || !listContains(list, val)
	}
	return false
}

// lookupPath resolves a dot-path ("address.province") against nested maps.
// Any missing segment yields (nil, false); it never panics.
func lookupPath(data map[string]interface{}, path string) (interface{}, bool) {
	if path == "" || data == nil {
		return nil, false
	}
	segments := strings.Split(path, ".")
	var cur interface{} = data
	for _, seg := range segments {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// looseEquals compares session values against config values. Session data
// arrives from JSON, so numbers are float64 while configs may hold ints;
// fall back to string rendering when the types disagree.
func looseEquals(a, b interface{}) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func asList(v interface{}) ([]interface{}, bool) {
	switch list := v.(type) {
	case []interface{}:
		return list, true
	case []string:
		out := make([]interface{}, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

func listContains(list []interface{}, v interface{}) bool {
	for _, item := range list {
		if looseEquals(item, v) {
			return true
		}
	}
	return false
}
