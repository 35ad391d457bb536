package models

// Trainer представляет тренера зала.
type Trainer struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Description    string `json:"description"`
	Experience     int    `json:"experience"` // Стаж в годах
	Photo          string `json:"photo"`     // URL или base64
}

// CreateTrainerRequest — данные нового тренера.
type CreateTrainerRequest struct {
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"specialization"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Description    string `json:"description"`
	Experience     int    `json:"experience" validate:"gte=0"`
	Photo          string `json:"photo"`
}

// TrainerPatch — частичное обновление тренера. nil-поле оставляет
// сохранённое значение без изменений, ненулевой указатель перезаписывает,
// в том числе пустой строкой.
type TrainerPatch struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone"`
	Description    *string `json:"description"`
	Experience     *int    `json:"experience" validate:"omitempty,gte=0"`
	Photo          *string `json:"photo"`
}

// Apply накладывает заполненные поля патча на t.
func (p TrainerPatch) Apply(t *Trainer) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Specialization != nil {
		t.Specialization = *p.Specialization
	}
	if p.Email != nil {
		t.Email = *p.Email
	}
	if p.Phone != nil {
		t.Phone = *p.Phone
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Experience != nil {
		t.Experience = *p.Experience
	}
	if p.Photo != nil {
		t.Photo = *p.Photo
	}
}
