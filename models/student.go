package models

import "github.com/google/uuid"

type Student struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey" db:"id"`
	Name   string    `json:"name" gorm:"not null;size:100" db:"name"`
	Number string    `json:"number" gorm:"column:student_number;not null;size:50" db:"student_number"`
}

func (Student) TableName() string {
	return "students"
}
