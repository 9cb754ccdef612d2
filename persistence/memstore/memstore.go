// Package memstore keeps groups, students and memberships in process memory.
// Each Store owns its own maps, so tests get a clean state per instance.
package memstore

import (
	"context"
	"sort"
	"sync"

	"student-groups/models"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	groups   map[uuid.UUID]models.Group
	students map[uuid.UUID]models.Student
	// members keeps student IDs per group in assignment order.
	members map[uuid.UUID][]uuid.UUID
}

func New() *Store {
	return &Store{
		groups:   make(map[uuid.UUID]models.Group),
		students: make(map[uuid.UUID]models.Student),
		members:  make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *Store) GetGroupByID(_ context.Context, id uuid.UUID) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[id]
	if !ok {
		return nil, nil
	}
	return &group, nil
}

func (s *Store) ListGroups(_ context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.Group, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Name != groups[j].Name {
			return groups[i].Name < groups[j].Name
		}
		return groups[i].ID.String() < groups[j].ID.String()
	})
	return groups, nil
}

func (s *Store) CreateGroup(_ context.Context, g models.Group) (models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups[g.ID] = g
	s.members[g.ID] = []uuid.UUID{}
	return g, nil
}

func (s *Store) DeleteGroup(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return nil
	}
	delete(s.groups, id)
	delete(s.members, id)
	return nil
}

func (s *Store) ListStudents(_ context.Context) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].Name != students[j].Name {
			return students[i].Name < students[j].Name
		}
		return students[i].ID.String() < students[j].ID.String()
	})
	return students, nil
}

func (s *Store) GetStudentByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[id]
	if !ok {
		return nil, nil
	}
	return &student, nil
}

func (s *Store) CreateStudent(_ context.Context, st models.Student) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.students[st.ID] = st
	return st, nil
}

func (s *Store) DeleteStudent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return nil
	}
	for groupID := range s.members {
		s.removeLocked(id, groupID)
	}
	delete(s.students, id)
	return nil
}

func (s *Store) ListGroupStudents(_ context.Context, groupID uuid.UUID) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.members[groupID]
	students := make([]models.Student, 0, len(ids))
	for _, id := range ids {
		if student, ok := s.students[id]; ok {
			students = append(students, student)
		}
	}
	return students, nil
}

func (s *Store) AssignStudentToGroup(_ context.Context, studentID, groupID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assignLocked(studentID, groupID)
	return nil
}

func (s *Store) RemoveStudentFromGroup(_ context.Context, studentID, groupID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(studentID, groupID)
	return nil
}

func (s *Store) TransferStudentBetweenGroups(_ context.Context, studentID, fromID, toID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(studentID, fromID)
	s.assignLocked(studentID, toID)
	return nil
}

func (s *Store) assignLocked(studentID, groupID uuid.UUID) {
	for _, id := range s.members[groupID] {
		if id == studentID {
			return
		}
	}
	s.members[groupID] = append(s.members[groupID], studentID)
}

func (s *Store) removeLocked(studentID, groupID uuid.UUID) {
	ids, ok := s.members[groupID]
	if !ok {
		return
	}
	for i, id := range ids {
		if id == studentID {
			s.members[groupID] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}
