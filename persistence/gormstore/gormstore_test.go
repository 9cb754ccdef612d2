package gormstore

import (
	"context"
	"testing"

	"student-groups/database"
	"student-groups/models"
	"student-groups/persistence"
	"student-groups/persistence/storetest"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed opening in-memory sqlite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) persistence.Store {
		return New(openTestDB(t))
	})
}

func TestCreateGroupRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := New(openTestDB(t))
	group := models.Group{ID: uuid.New(), Name: "CS", Number: "101"}

	_, err := store.CreateGroup(ctx, group)
	require.NoError(t, err)

	_, err = store.CreateGroup(ctx, group)
	assert.Error(t, err)
}

func TestAssignRequiresExistingRows(t *testing.T) {
	ctx := context.Background()
	store := New(openTestDB(t))
	student, err := store.CreateStudent(ctx, models.Student{ID: uuid.New(), Name: "Alice", Number: "A1"})
	require.NoError(t, err)

	err = store.AssignStudentToGroup(ctx, student.ID, uuid.New())
	assert.Error(t, err)
}

func TestAssignStoresSingleRelationRow(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := New(db)
	group, err := store.CreateGroup(ctx, models.Group{ID: uuid.New(), Name: "CS", Number: "101"})
	require.NoError(t, err)
	student, err := store.CreateStudent(ctx, models.Student{ID: uuid.New(), Name: "Alice", Number: "A1"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, group.ID))
	}

	var relations []models.GroupStudent
	require.NoError(t, db.Find(&relations).Error)
	require.Len(t, relations, 1)
	assert.Equal(t, group.ID, relations[0].GroupID)
	assert.Equal(t, student.ID, relations[0].StudentID)
	assert.NotEqual(t, uuid.Nil, relations[0].ID)
}

func TestTransferRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := New(openTestDB(t))
	from, err := store.CreateGroup(ctx, models.Group{ID: uuid.New(), Name: "CS", Number: "101"})
	require.NoError(t, err)
	student, err := store.CreateStudent(ctx, models.Student{ID: uuid.New(), Name: "Alice", Number: "A1"})
	require.NoError(t, err)
	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, from.ID))

	// Целевая группа не существует, вставка нарушает внешний ключ
	err = store.TransferStudentBetweenGroups(ctx, student.ID, from.ID, uuid.New())
	require.Error(t, err)

	members, err := store.ListGroupStudents(ctx, from.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{student}, members)
}
