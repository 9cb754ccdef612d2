package sqlstore

import (
	"context"
	"testing"

	"student-groups/database"
	"student-groups/models"
	"student-groups/persistence"
	"student-groups/persistence/storetest"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err, "failed opening in-memory sqlite database")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, database.CreateSchema(db))
	return db
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) persistence.Store {
		return New(openTestDB(t))
	})
}

func TestCreateStudentRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := New(openTestDB(t))
	student := models.Student{ID: uuid.New(), Name: "Alice", Number: "A1"}

	_, err := store.CreateStudent(ctx, student)
	require.NoError(t, err)

	_, err = store.CreateStudent(ctx, student)
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

	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, group.ID))
	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, group.ID))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM group_students`))
	assert.Equal(t, 1, count)
}

func TestTransferRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := New(openTestDB(t))
	from, err := store.CreateGroup(ctx, models.Group{ID: uuid.New(), Name: "CS", Number: "101"})
	require.NoError(t, err)
	student, err := store.CreateStudent(ctx, models.Student{ID: uuid.New(), Name: "Alice", Number: "A1"})
	require.NoError(t, err)
	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, from.ID))

	err = store.TransferStudentBetweenGroups(ctx, student.ID, from.ID, uuid.New())
	require.Error(t, err)

	members, err := store.ListGroupStudents(ctx, from.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{student}, members)
}
