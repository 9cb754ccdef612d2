// Package sqlstore implements persistence.Store with plain SQL over sqlx.
//
// Queries are written with '?' placeholders and rebound for the driver in
// use, so the same store runs on PostgreSQL (lib/pq) and SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"student-groups/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	selectGroupByID     = `SELECT id, name, group_number FROM groups WHERE id = ?`
	selectGroups        = `SELECT id, name, group_number FROM groups ORDER BY name ASC, id ASC`
	insertGroup         = `INSERT INTO groups (id, name, group_number) VALUES (?, ?, ?)`
	deleteGroup         = `DELETE FROM groups WHERE id = ?`
	deleteGroupMembers  = `DELETE FROM group_students WHERE group_id = ?`
	selectStudentByID   = `SELECT id, name, student_number FROM students WHERE id = ?`
	selectStudents      = `SELECT id, name, student_number FROM students ORDER BY name ASC, id ASC`
	insertStudent       = `INSERT INTO students (id, name, student_number) VALUES (?, ?, ?)`
	deleteStudent       = `DELETE FROM students WHERE id = ?`
	deleteStudentLinks  = `DELETE FROM group_students WHERE student_id = ?`
	selectGroupStudents = `
    SELECT s.id, s.name, s.student_number
    FROM students s
    JOIN group_students gs ON gs.student_id = s.id
    WHERE gs.group_id = ?
    ORDER BY s.name ASC, s.id ASC`
	countMembership  = `SELECT COUNT(*) FROM group_students WHERE group_id = ? AND student_id = ?`
	insertMembership = `INSERT INTO group_students (id, group_id, student_id) VALUES (?, ?, ?)`
	deleteMembership = `DELETE FROM group_students WHERE group_id = ? AND student_id = ?`
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetGroupByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	var group models.Group
	if err := s.db.GetContext(ctx, &group, s.db.Rebind(selectGroupByID), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group %s: %w", id, err)
	}
	return &group, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}
	if err := s.db.SelectContext(ctx, &groups, selectGroups); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *Store) CreateGroup(ctx context.Context, g models.Group) (models.Group, error) {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(insertGroup), g.ID, g.Name, g.Number); err != nil {
		return models.Group{}, fmt.Errorf("create group %s: %w", g.ID, err)
	}
	return g, nil
}

func (s *Store) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(deleteGroupMembers), id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(deleteGroup), id)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete group %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	if err := s.db.SelectContext(ctx, &students, selectStudents); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *Store) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := s.db.GetContext(ctx, &student, s.db.Rebind(selectStudentByID), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student %s: %w", id, err)
	}
	return &student, nil
}

func (s *Store) CreateStudent(ctx context.Context, st models.Student) (models.Student, error) {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(insertStudent), st.ID, st.Name, st.Number); err != nil {
		return models.Student{}, fmt.Errorf("create student %s: %w", st.ID, err)
	}
	return st, nil
}

func (s *Store) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(deleteStudentLinks), id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(deleteStudent), id)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete student %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListGroupStudents(ctx context.Context, groupID uuid.UUID) ([]models.Student, error) {
	students := []models.Student{}
	if err := s.db.SelectContext(ctx, &students, s.db.Rebind(selectGroupStudents), groupID); err != nil {
		return nil, fmt.Errorf("list students of group %s: %w", groupID, err)
	}
	return students, nil
}

func (s *Store) AssignStudentToGroup(ctx context.Context, studentID, groupID uuid.UUID) error {
	if err := assign(ctx, s.db, studentID, groupID); err != nil {
		return fmt.Errorf("assign student %s to group %s: %w", studentID, groupID, err)
	}
	return nil
}

func (s *Store) RemoveStudentFromGroup(ctx context.Context, studentID, groupID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(deleteMembership), groupID, studentID); err != nil {
		return fmt.Errorf("remove student %s from group %s: %w", studentID, groupID, err)
	}
	return nil
}

func (s *Store) TransferStudentBetweenGroups(ctx context.Context, studentID, fromID, toID uuid.UUID) error {
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(deleteMembership), fromID, studentID); err != nil {
			return err
		}
		return assign(ctx, tx, studentID, toID)
	})
	if err != nil {
		return fmt.Errorf("transfer student %s from %s to %s: %w", studentID, fromID, toID, err)
	}
	return nil
}

// assign accepts both *sqlx.DB and *sqlx.Tx.
func assign(ctx context.Context, db sqlx.ExtContext, studentID, groupID uuid.UUID) error {
	var count int
	if err := sqlx.GetContext(ctx, db, &count, db.Rebind(countMembership), groupID, studentID); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := db.ExecContext(ctx, db.Rebind(insertMembership), uuid.New(), groupID, studentID)
	return err
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
