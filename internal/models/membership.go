package models

// MembershipPlan представляет тарифный план абонемента —
// уровень членства, который пользователь оформляет подпиской.
type MembershipPlan struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"` // Например, "Trial", "Pro", "Premium"
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	DurationMonths int     `json:"durationMonths"` // Например, 1, 3, 6, 12
}

// CreateMembershipRequest — данные нового тарифного плана.
type CreateMembershipRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	Price          float64 `json:"price" validate:"gte=0"`
	DurationMonths int     `json:"durationMonths" validate:"required,gt=0"`
}

// MembershipPatch — частичное обновление тарифного плана.
type MembershipPatch struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	DurationMonths *int     `json:"durationMonths" validate:"omitempty,gt=0"`
}

// Apply накладывает заполненные поля патча на m.
func (p MembershipPatch) Apply(m *MembershipPlan) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.DurationMonths != nil {
		m.DurationMonths = *p.DurationMonths
	}
}
