package model

import "gorm.io/datatypes"

type Faq struct {
	DTO
	Question string                      `gorm:"not null" json:"question"`
	Answer   string                      `gorm:"not null" json:"answer"`
	Keywords datatypes.JSONSlice[string] `json:"keywords"`
}

type FaqInput struct {
	Question string   `json:"question" validate:"required,min=3"`
	Answer   string   `json:"answer" validate:"required"`
	Keywords []string `json:"keywords" validate:"omitempty,dive,max=64"`
}
