package models

import "time"

// FlowState is the navigation state of a booking flow: the built screen
// sequence and the index of the current screen. It is a value; navigation
// calls return a new state instead of mutating shared fields.
type FlowState struct {
	Sequence []string `json:"sequence"`
	Index    int      `json:"index"`
}

// BookingSession holds an in-progress booking between flow start and
// confirmation. Stored in the session cache, never in the database.
type BookingSession struct {
	SessionID   string     `json:"sessionId"`
	UserID      string     `json:"userId"`
	ServiceSlug string     `json:"serviceSlug"`
	Config      FlowConfig `json:"config"`
	Flow        FlowState  `json:"flow"`

	// Data keys submitted field values by the screen they were captured on.
	Data map[string]map[string]interface{} `json:"data"`

	SelectedWorker  string    `json:"selectedWorkerId,omitempty"`
	SelectedPackage string    `json:"selectedPackageId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FlatData merges all screens' submitted values into a single map, in screen
// order, later screens overriding earlier ones. Skip conditions and pricing
// facts are evaluated against this view.
func (s *BookingSession) FlatData() map[string]interface{} {
	flat := make(map[string]interface{})
	for _, screen := range s.Flow.Sequence {
		for k, v := range s.Data[screen] {
			flat[k] = v
		}
	}
	// Data captured on screens no longer in the sequence still counts.
	for screen, fields := range s.Data {
		if containsString(s.Flow.Sequence, screen) {
			continue
		}
		for k, v := range fields {
			if _, ok := flat[k]; !ok {
				flat[k] = v
			}
		}
	}
	return flat
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
