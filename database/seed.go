package database

import (
	"context"
	"fmt"
	"log"
	"os"

	"student-groups/models"
	"student-groups/persistence"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Fixture описывает начальные данные в YAML
type Fixture struct {
	Groups      []FixtureEntity     `yaml:"groups"`
	Students    []FixtureEntity     `yaml:"students"`
	Memberships []FixtureMembership `yaml:"memberships"`
}

type FixtureEntity struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Number string `yaml:"number"`
}

type FixtureMembership struct {
	StudentID string `yaml:"student_id"`
	GroupID   string `yaml:"group_id"`
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &fixture, nil
}

// Seed заполняет хранилище начальными данными. Уже существующие
// группы и студенты пропускаются, повторное назначение безопасно.
func Seed(ctx context.Context, store persistence.Store, fixture *Fixture) error {
	log.Println("🌱 Seeding initial data...")

	for _, g := range fixture.Groups {
		id, err := uuid.Parse(g.ID)
		if err != nil {
			return fmt.Errorf("seed group %q: invalid id: %w", g.Name, err)
		}
		existing, err := store.GetGroupByID(ctx, id)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := store.CreateGroup(ctx, models.Group{ID: id, Name: g.Name, Number: g.Number}); err != nil {
			return err
		}
		log.Printf("✅ Seeded group: %s (%s)", g.Name, id)
	}

	for _, s := range fixture.Students {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			return fmt.Errorf("seed student %q: invalid id: %w", s.Name, err)
		}
		existing, err := store.GetStudentByID(ctx, id)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := store.CreateStudent(ctx, models.Student{ID: id, Name: s.Name, Number: s.Number}); err != nil {
			return err
		}
		log.Printf("✅ Seeded student: %s (%s)", s.Name, id)
	}

	for _, m := range fixture.Memberships {
		studentID, err := uuid.Parse(m.StudentID)
		if err != nil {
			return fmt.Errorf("seed membership: invalid student id: %w", err)
		}
		groupID, err := uuid.Parse(m.GroupID)
		if err != nil {
			return fmt.Errorf("seed membership: invalid group id: %w", err)
		}

		student, err := store.GetStudentByID(ctx, studentID)
		if err != nil {
			return err
		}
		group, err := store.GetGroupByID(ctx, groupID)
		if err != nil {
			return err
		}
		if student == nil || group == nil {
			return fmt.Errorf("seed membership %s -> %s: student or group not found", studentID, groupID)
		}

		if err := store.AssignStudentToGroup(ctx, studentID, groupID); err != nil {
			return err
		}
	}

	log.Println("✅ Initial data seeded successfully!")
	return nil
}
