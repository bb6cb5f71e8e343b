package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DetectionResult maps a detected item class to its count, e.g.
// {"coke": 14, "pepsi": 5}. Stored as JSONB; key order carries no meaning.
type DetectionResult map[string]int

func (r DetectionResult) Value() (driver.Value, error) {
	if r == nil {
		return "{}", nil
	}
	b, err := json.Marshal(r)
	return string(b), err
}

func (r *DetectionResult) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = DetectionResult{}
		return nil
	}
	return errors.New("detection result: unsupported scan source")
}

// DetectionRun records one image upload and the counts produced for it.
// Immutable after creation.
type DetectionRun struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ImagePath     string    `gorm:"not null"`
	Filename      string    `gorm:"not null"` // original upload filename, drives rule matching
	Result        DetectionResult `gorm:"type:jsonb;not null;default:'{}'"`
	BBoxImagePath string    `gorm:"not null"`
	CreatedAt     time.Time

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
