package escalation

import "solace/internal/models"

// resourcesByCategory maps each support category to its suggested resources.
// Built once; treat as immutable.
var resourcesByCategory = map[models.Category][]string{
	models.CategoryMentalHealth: {
		"Guided breathing and grounding exercises",
		"Directory of low-cost therapists",
		"Peer support circle: managing anxiety and depression",
	},
	models.CategoryRelationships: {
		"Healthy relationships workbook",
		"Conflict resolution guide",
	},
	models.CategoryAcademic: {
		"Study planning templates",
		"Exam stress management guide",
		"Tutoring and mentoring directory",
	},
	models.CategoryCrisis: {
		"24/7 crisis hotline numbers",
		"Safety planning template",
		"Nearest walk-in crisis centers",
	},
	models.CategorySubstanceAbuse: {
		"Harm reduction basics",
		"Local recovery group schedule",
		"Relapse prevention workbook",
	},
	models.CategorySexualHealth: {
		"Sexual health clinic directory",
		"Contraception and consent guides",
	},
	models.CategorySTIsHIV: {
		"Free and anonymous testing locations",
		"Post-exposure prophylaxis fact sheet",
		"Living with HIV peer group",
	},
	models.CategoryFamilyHome: {
		"Family mediation services",
		"Emergency housing contacts",
	},
	models.CategoryGeneral: {
		"Community guidelines and getting-started guide",
		"Directory of all support categories",
	},
}

// ResourcesFor returns the static resource suggestions for a category.
func ResourcesFor(category models.Category) []string {
	return resourcesByCategory[category]
}
