package models

import "github.com/google/uuid"

type Group struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey" db:"id"`
	Name   string    `json:"name" gorm:"not null;size:100" db:"name"`
	Number string    `json:"number" gorm:"column:group_number;not null;size:50" db:"group_number"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupStudent связывает одного студента с одной группой.
// Пара (group_id, student_id) уникальна.
type GroupStudent struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey" db:"id"`
	GroupID   uuid.UUID `json:"group_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_student" db:"group_id"`
	StudentID uuid.UUID `json:"student_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_group_student" db:"student_id"`
	Group     Group     `json:"-" gorm:"foreignKey:GroupID"`
	Student   Student   `json:"-" gorm:"foreignKey:StudentID"`
}

func (GroupStudent) TableName() string {
	return "group_students"
}
