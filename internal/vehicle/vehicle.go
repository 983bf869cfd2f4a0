package vehicle

import (
	"time"
)

// Vehicle is the gorm model for the vehicles table.
//
// Optional fields are pointers so that unset values render as JSON null,
// and so a partial update can tell "absent" from "zero".
type Vehicle struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	VIN       string    `gorm:"uniqueIndex;size:17;not null" json:"vin"`
	Make      *string   `gorm:"size:64" json:"make"`
	Model     *string   `gorm:"size:64" json:"model"`
	Year      *int      `json:"year"`
	Notes     *string   `gorm:"size:512" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// MaxVINLength is the longest VIN the service accepts.
const MaxVINLength = 17
