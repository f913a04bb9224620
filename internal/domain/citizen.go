package domain

import (
	"context"
	"time"
)

// Citizen is a single record in the registry. All six civil fields are
// required; the store never holds a partially-filled record.
type Citizen struct {
	ID            int64
	FirstName     string
	LastName      string
	BirthDate     string // calendar date, YYYY-MM-DD
	Address       string
	MaritalStatus string
	Citizenship   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recognized marital statuses.
const (
	MaritalSingle   = "single"
	MaritalMarried  = "married"
	MaritalDivorced = "divorced"
	MaritalWidowed  = "widowed"
)

// MaritalStatuses lists the fixed enumeration accepted on create and update.
var MaritalStatuses = []string{MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed}

// CitizenRepository defines persistence operations for citizens.
type CitizenRepository interface {
	Create(ctx context.Context, citizen *Citizen) error
	GetByID(ctx context.Context, id int64) (*Citizen, error)
	List(ctx context.Context) ([]Citizen, error)
	Update(ctx context.Context, citizen *Citizen) error
	Delete(ctx context.Context, id int64) error
}
