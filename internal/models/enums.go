package models

// Category classifies a support post by topic.
type Category string

const (
	CategoryMentalHealth   Category = "mental-health"
	CategoryRelationships  Category = "relationships"
	CategoryAcademic       Category = "academic"
	CategoryCrisis         Category = "crisis"
	CategorySubstanceAbuse Category = "substance-abuse"
	CategorySexualHealth   Category = "sexual-health"
	CategorySTIsHIV        Category = "stis-hiv"
	CategoryFamilyHome     Category = "family-home"
	CategoryGeneral        Category = "general"
)

// Categories lists every valid category in stable presentation order.
var Categories = []Category{
	CategoryMentalHealth,
	CategoryRelationships,
	CategoryAcademic,
	CategoryCrisis,
	CategorySubstanceAbuse,
	CategorySexualHealth,
	CategorySTIsHIV,
	CategoryFamilyHome,
	CategoryGeneral,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// EscalationLevel is the severity assigned to a flagged post.
type EscalationLevel string

const (
	LevelNone     EscalationLevel = "none"
	LevelLow      EscalationLevel = "low"
	LevelMedium   EscalationLevel = "medium"
	LevelHigh     EscalationLevel = "high"
	LevelCritical EscalationLevel = "critical"
)

// Rank orders levels by severity so they can be compared. Unknown levels
// rank below none.
func (l EscalationLevel) Rank() int {
	switch l {
	case LevelNone:
		return 0
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	case LevelCritical:
		return 4
	default:
		return -1
	}
}

// EscalationStatus tracks an escalation record through moderator handling.
type EscalationStatus string

const (
	EscalationPending    EscalationStatus = "pending"
	EscalationInProgress EscalationStatus = "in-progress"
	EscalationResolved   EscalationStatus = "resolved"
	EscalationDismissed  EscalationStatus = "dismissed"
)

func (s EscalationStatus) Valid() bool {
	switch s {
	case EscalationPending, EscalationInProgress, EscalationResolved, EscalationDismissed:
		return true
	default:
		return false
	}
}

// PostStatus tracks whether a support post has received help yet.
type PostStatus string

const (
	PostOpen     PostStatus = "open"
	PostAnswered PostStatus = "answered"
	PostClosed   PostStatus = "closed"
)
