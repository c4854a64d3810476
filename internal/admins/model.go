package admins

import "time"

// AdminUser is one entry of the authorization list. Email comparison is
// always case-insensitive; the display form is whatever was submitted
// first. AddedBy and AddedAt are audit fields only.
type AdminUser struct {
	Email   string    `json:"email" bson:"email"`
	AddedBy string    `json:"addedBy,omitempty" bson:"added_by,omitempty"`
	AddedAt time.Time `json:"addedAt,omitempty" bson:"added_at,omitempty"`
}

type AddRequest struct {
	Email   string `json:"email" validate:"required,email"`
	AddedBy string `json:"addedBy"`
}
