package models

// UserProfile holds the answers of the recommendation quiz. It is never stored.
type UserProfile struct {
	Age                 int      `json:"age" validate:"omitempty,min=1,max=120"`
	Gender              string   `json:"gender" validate:"omitempty,max=32"`
	Weight              float64  `json:"weight" validate:"omitempty,gt=0,lt=500"`
	Height              float64  `json:"height" validate:"omitempty,gt=0,lt=300"`
	ActivityLevel       string   `json:"activity_level" validate:"omitempty,max=64"`
	HealthGoals         []string `json:"health_goals" validate:"omitempty,max=10,dive,max=64"`
	DietaryRestrictions []string `json:"dietary_restrictions" validate:"omitempty,max=10,dive,max=64"`
	Budget              string   `json:"budget" validate:"omitempty,max=128"`
	CookingExperience   string   `json:"cooking_experience" validate:"omitempty,max=64"`
}

type Recommendation struct {
	Plan     DietPlan `json:"plan"`
	Score    int      `json:"score"`
	Features []string `json:"features"`
	Reason   string   `json:"reason"`
}

type RecommendationResult struct {
	Plans   []Recommendation `json:"plans"`
	Recipes []Recipe         `json:"recipes"`
}
