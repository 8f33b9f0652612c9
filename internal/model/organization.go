package model

import "time"

// Organization owns screens and is the unit of broadcast targeting.
type Organization struct {
	ID        int       `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	City      *string   `db:"city"       json:"city"`
	Country   *string   `db:"country"    json:"country"`
	IsPaid    bool      `db:"is_paid"    json:"is_paid"`
	IsActive  bool      `db:"is_active"  json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
