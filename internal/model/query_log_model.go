package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QueryLog is the audit record written after every processed query
type QueryLog struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      string         `gorm:"type:varchar(100);not null;index"`
	Query          string         `gorm:"type:text;not null"`
	Intent         string         `gorm:"type:varchar(30);not null;index"`
	FilterUsed     *string        `gorm:"type:text"`
	DocumentsFound int            `gorm:"not null;default:0"`
	Sources        datatypes.JSON `gorm:"type:jsonb"`
	Confidence     float64        `gorm:"not null;default:0"`
	DurationMs     int64          `gorm:"not null;default:0"`
	CreatedAt      time.Time      `gorm:"default:now();not null;index"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}
