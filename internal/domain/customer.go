package domain

import "time"

// Customer is a person record keyed by contact number.
type Customer struct {
	Contact   string
	Name      string
	Address   string
	CreatedAt time.Time
}
