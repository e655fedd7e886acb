package models

import "time"

// ServiceCategory is a bookable service ("Indoor Cleaning", "Electrician").
// The catalog reads these from the services collection; Flow holds the
// category's booking flow configuration.
type ServiceCategory struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Slug        string     `bson:"slug" json:"slug"`
	Icon        string     `bson:"icon,omitempty" json:"icon,omitempty"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Active      bool       `bson:"active" json:"active"`
	Flow        FlowConfig `bson:"flow" json:"flow"`
	CreatedAt   time.Time  `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time  `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
