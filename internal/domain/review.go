package domain

import "time"

type Review struct {
	ID            int64
	UserID        int64
	DestinationID int64
	Rating        float64 // 1..5 inclusive
	Comment       string
	CreatedAt     time.Time
}

// ReviewPatch carries the author-editable fields. Nil means "leave as is".
type ReviewPatch struct {
	Rating  *float64
	Comment *string
}

func (p ReviewPatch) Apply(r *Review) {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		r.Comment = *p.Comment
	}
}
