package model

import (
	"time"

	"github.com/google/uuid"
)

// ExhibitionStatus enum constants
const (
	ExhibitionStatusUpcoming  = "upcoming"
	ExhibitionStatusActive    = "active"
	ExhibitionStatusCompleted = "completed"
)

// Exhibition is a time-boxed sales event grouping zero or more sales. It only
// affects aggregation; balances never depend on it.
type Exhibition struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Location  string     `gorm:"type:varchar(255)" json:"location"`
	StartDate *time.Time `gorm:"type:date;index" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`
	Notes     string     `gorm:"type:text" json:"notes"`
	Status    string     `gorm:"type:varchar(20);not null;default:'upcoming';index" json:"status"` // upcoming, active, completed
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
