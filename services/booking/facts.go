package booking

import (
	"time"

	"zela/models"
)

// factsFromSession derives the pricing facts from a session's accumulated
// screen data. Field names follow the screen components' form payloads;
// a missing field simply leaves the fact unset — the pricing engine decides
// whether that is an error for the selected model.
func factsFromSession(s *models.BookingSession) models.BookingFacts {
	data := s.FlatData()
	facts := models.BookingFacts{}

	if v, ok := numberField(data, "hours", "duration", "durationHours"); ok {
		facts.Hours = &v
	}
	if v, ok := numberField(data, "unitCount", "units", "itemCount"); ok {
		n := int(v)
		facts.UnitCount = &n
	}
	facts.Typology = stringField(data, "propertyType", "typology")
	facts.SubVariant = stringField(data, "serviceVariant", "treatmentType")

	facts.PackageRef = s.SelectedPackage
	if facts.PackageRef == "" {
		facts.PackageRef = stringField(data, "packageId")
	}

	facts.Urgent = boolField(data, "urgent")
	facts.Holiday = boolField(data, "holiday")
	facts.Weekend = boolField(data, "weekend")
	if !facts.Weekend {
		if date := stringField(data, "date"); date != "" {
			if t, err := time.Parse("2006-01-02", date); err == nil {
				wd := t.Weekday()
				facts.Weekend = wd == time.Saturday || wd == time.Sunday
			}
		}
	}
	return facts
}

func numberField(data map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := data[key].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		}
	}
	return 0, false
}

func stringField(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func boolField(data map[string]interface{}, key string) bool {
	v, _ := data[key].(bool)
	return v
}
