package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/JorgeWendell/clinics/internal/scheduling"
)

// ── PostgreSQL DATE ──

// Date maps a PostgreSQL DATE column onto scheduling.Date with no zone conversion.
type Date struct {
	scheduling.Date
}

// NewDate wraps d.
func NewDate(d scheduling.Date) Date {
	return Date{Date: d}
}

// Scan accepts the time.Time the pgx driver returns for DATE, or its text form.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		d.Date = scheduling.DateOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("Date.Scan: unsupported type %T", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) > 10 {
		s = s[:10]
	}
	parsed, err := scheduling.ParseDate(s)
	if err != nil {
		return fmt.Errorf("Date.Scan: %w", err)
	}
	d.Date = parsed
	return nil
}

// Value writes the date as "YYYY-MM-DD".
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// BaseModel audit columns shared by clinic-owned records
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// Timestamps for records without an acting user
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
