package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a support request posted to the community.
//
// EscalationLevel and EscalationReason are derived from the rule matcher at
// creation time and are never hand-set by callers.
type Post struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	AuthorID         uint            `gorm:"not null;index" json:"author_id"`
	Author           User            `gorm:"foreignKey:AuthorID" json:"author"`
	Category         Category        `gorm:"not null;index" json:"category"`
	Title            string          `gorm:"not null" json:"title"`
	Content          string          `gorm:"type:text;not null" json:"content"`
	Status           PostStatus      `gorm:"not null;default:open" json:"status"`
	EscalationLevel  EscalationLevel `gorm:"not null;default:none;index" json:"escalation_level"`
	EscalationReason string          `json:"escalation_reason,omitempty"`
	Replies          []Reply         `gorm:"foreignKey:PostID" json:"replies,omitempty"`
	// RepliesCount is not persisted; computed at query time
	RepliesCount int            `gorm:"->" json:"replies_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
