// Package persistence defines the storage contract for groups, students
// and their memberships.
//
// Lookups report absence with a nil result and a nil error. Nothing here
// checks that referenced groups or students exist; callers do that before
// mutating memberships.
package persistence

import (
	"context"

	"student-groups/models"

	"github.com/google/uuid"
)

type Store interface {
	GetGroupByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	// CreateGroup stores g under its own ID. Duplicate IDs overwrite or
	// fail depending on the backing store.
	CreateGroup(ctx context.Context, g models.Group) (models.Group, error)
	// DeleteGroup removes the group and its memberships. Missing IDs are ignored.
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	CreateStudent(ctx context.Context, s models.Student) (models.Student, error)
	DeleteStudent(ctx context.Context, id uuid.UUID) error

	// ListGroupStudents returns an empty slice for unknown groups.
	ListGroupStudents(ctx context.Context, groupID uuid.UUID) ([]models.Student, error)
	// AssignStudentToGroup is idempotent.
	AssignStudentToGroup(ctx context.Context, studentID, groupID uuid.UUID) error
	RemoveStudentFromGroup(ctx context.Context, studentID, groupID uuid.UUID) error
	// TransferStudentBetweenGroups removes the student from fromID and
	// assigns it to toID as one step.
	TransferStudentBetweenGroups(ctx context.Context, studentID, fromID, toID uuid.UUID) error
}
