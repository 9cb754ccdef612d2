package models

import "github.com/google/uuid"

// Запросы на создание сущностей
type CreateGroupRequest struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Number string    `json:"number"`
}

type CreateStudentRequest struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Number string    `json:"number"`
}

// Запросы на управление составом групп
type AssignStudentRequest struct {
	StudentID uuid.UUID `json:"student_id"`
	GroupID   uuid.UUID `json:"group_id"`
}

type RemoveStudentRequest struct {
	StudentID uuid.UUID `json:"student_id"`
	GroupID   uuid.UUID `json:"group_id"`
}

type TransferStudentRequest struct {
	StudentID   uuid.UUID `json:"student_id"`
	FromGroupID uuid.UUID `json:"from_group_id"`
	ToGroupID   uuid.UUID `json:"to_group_id"`
}

// Ответы
type GroupListResponse struct {
	Groups []Group `json:"groups"`
}

type StudentListResponse struct {
	Students []Student `json:"students"`
}

type GroupStudentsResponse struct {
	GroupID   uuid.UUID `json:"group_id"`
	GroupName string    `json:"group_name"`
	Students  []Student `json:"students"`
}

type GroupDeleteResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	GroupID uuid.UUID `json:"group_id"`
}

type StudentDeleteResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	StudentID uuid.UUID `json:"student_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Аутентификация администратора
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
