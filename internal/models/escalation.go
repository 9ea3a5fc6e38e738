package models

import "time"

// Escalation is a post flagged as requiring moderator or counselor attention.
// Records are created when the rule matcher or predictor flags a post above
// level none, transition through moderator action, and are never deleted.
type Escalation struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	Reference  string           `gorm:"unique;not null" json:"reference"`
	PostID     uint             `gorm:"not null;index" json:"post_id"`
	Post       *Post            `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Level      EscalationLevel  `gorm:"not null;index" json:"level"`
	Status     EscalationStatus `gorm:"not null;default:pending;index" json:"status"`
	Reason     string           `json:"reason,omitempty"`
	DetectedAt time.Time        `gorm:"not null" json:"detected_at"`
	ResolvedAt *time.Time       `json:"resolved_at,omitempty"`
}

// CanTransition reports whether a moderator may move the escalation from its
// current status to next. Resolved and dismissed are terminal.
func (e *Escalation) CanTransition(next EscalationStatus) bool {
	switch e.Status {
	case EscalationPending:
		return next == EscalationInProgress || next == EscalationResolved || next == EscalationDismissed
	case EscalationInProgress:
		return next == EscalationResolved || next == EscalationDismissed
	default:
		return false
	}
}
