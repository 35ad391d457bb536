package models

// Plan представляет тренировочный план.
// TrainerID — денормализованная ссылка на тренера, может отсутствовать.
type Plan struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	DurationMonths int     `json:"durationMonths"`
	Description    string  `json:"description"`
	Duration       string  `json:"duration"`   // Например, "4 weeks"
	Difficulty     string  `json:"difficulty"` // Beginner / Intermediate / Advanced
	TrainerID      *int64  `json:"trainerId"`
}

// CreatePlanRequest — данные нового тренировочного плана.
type CreatePlanRequest struct {
	Name           string  `json:"name" validate:"required"`
	Price          float64 `json:"price" validate:"gte=0"`
	DurationMonths int     `json:"durationMonths" validate:"gte=0"`
	Description    string  `json:"description"`
	Duration       string  `json:"duration"`
	Difficulty     string  `json:"difficulty"`
	TrainerID      *int64  `json:"trainerId"`
}

// PlanPatch — частичное обновление тренировочного плана.
type PlanPatch struct {
	Name           *string  `json:"name"`
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	DurationMonths *int     `json:"durationMonths" validate:"omitempty,gte=0"`
	Description    *string  `json:"description"`
	Duration       *string  `json:"duration"`
	Difficulty     *string  `json:"difficulty"`
	TrainerID      *int64   `json:"trainerId"`
}

// Apply накладывает заполненные поля патча на pl.
func (p PlanPatch) Apply(pl *Plan) {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Price != nil {
		pl.Price = *p.Price
	}
	if p.DurationMonths != nil {
		pl.DurationMonths = *p.DurationMonths
	}
	if p.Description != nil {
		pl.Description = *p.Description
	}
	if p.Duration != nil {
		pl.Duration = *p.Duration
	}
	if p.Difficulty != nil {
		pl.Difficulty = *p.Difficulty
	}
	if p.TrainerID != nil {
		pl.TrainerID = p.TrainerID
	}
}
