package domain

import "time"

type Destination struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Lat, Lon    *float64
	Price       float64
	ImageURL    *string
	Rating      float64 // derived from reviews, 0.0 when none
	IsActive    bool
	OperatorID  int64
	CreatedAt   time.Time
}

// DestinationPatch carries the mutable catalog fields. Nil means "leave as is".
type DestinationPatch struct {
	Title       *string
	Description *string
	Location    *string
	Lat, Lon    *float64
	Price       *float64
	ImageURL    *string
	IsActive    *bool
}

// Apply merges the set fields into d, field by field.
func (p DestinationPatch) Apply(d *Destination) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.Lat != nil {
		d.Lat = p.Lat
	}
	if p.Lon != nil {
		d.Lon = p.Lon
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.ImageURL != nil {
		d.ImageURL = p.ImageURL
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
	}
}

// DestinationSnapshot is the read-time summary nested into booking responses.
type DestinationSnapshot struct {
	ID          int64
	Title       string
	Location    string
	Price       float64
	Rating      float64
	ReviewCount int
}
