// Package gormstore implements persistence.Store on top of GORM.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"student-groups/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetGroupByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group %s: %w", id, err)
	}
	return &group, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}
	if err := s.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *Store) CreateGroup(ctx context.Context, g models.Group) (models.Group, error) {
	if err := s.db.WithContext(ctx).Create(&g).Error; err != nil {
		return models.Group{}, fmt.Errorf("create group %s: %w", g.ID, err)
	}
	return g, nil
}

func (s *Store) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupStudent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("delete group %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	if err := s.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *Store) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student %s: %w", id, err)
	}
	return &student, nil
}

func (s *Store) CreateStudent(ctx context.Context, st models.Student) (models.Student, error) {
	if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
		return models.Student{}, fmt.Errorf("create student %s: %w", st.ID, err)
	}
	return st, nil
}

func (s *Store) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&models.GroupStudent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Student{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("delete student %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListGroupStudents(ctx context.Context, groupID uuid.UUID) ([]models.Student, error) {
	students := []models.Student{}
	err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Joins("JOIN group_students ON group_students.student_id = students.id").
		Where("group_students.group_id = ?", groupID).
		Order("students.name ASC").
		Order("students.id ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("list students of group %s: %w", groupID, err)
	}
	return students, nil
}

func (s *Store) AssignStudentToGroup(ctx context.Context, studentID, groupID uuid.UUID) error {
	if err := assign(s.db.WithContext(ctx), studentID, groupID); err != nil {
		return fmt.Errorf("assign student %s to group %s: %w", studentID, groupID, err)
	}
	return nil
}

func (s *Store) RemoveStudentFromGroup(ctx context.Context, studentID, groupID uuid.UUID) error {
	if err := remove(s.db.WithContext(ctx), studentID, groupID); err != nil {
		return fmt.Errorf("remove student %s from group %s: %w", studentID, groupID, err)
	}
	return nil
}

func (s *Store) TransferStudentBetweenGroups(ctx context.Context, studentID, fromID, toID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := remove(tx, studentID, fromID); err != nil {
			return err
		}
		return assign(tx, studentID, toID)
	})
	if err != nil {
		return fmt.Errorf("transfer student %s from %s to %s: %w", studentID, fromID, toID, err)
	}
	return nil
}

func assign(db *gorm.DB, studentID, groupID uuid.UUID) error {
	var count int64
	err := db.Model(&models.GroupStudent{}).
		Where("group_id = ? AND student_id = ?", groupID, studentID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	relation := models.GroupStudent{
		ID:        uuid.New(),
		GroupID:   groupID,
		StudentID: studentID,
	}
	return db.Omit(clause.Associations).Create(&relation).Error
}

func remove(db *gorm.DB, studentID, groupID uuid.UUID) error {
	return db.Where("group_id = ? AND student_id = ?", groupID, studentID).
		Delete(&models.GroupStudent{}).Error
}
