package handlers

import (
	"net/http"
	"testing"

	"student-groups/database"
	"student-groups/models"
	"student-groups/persistence/gormstore"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestScenarioOverGormStore(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	h := mux.NewRouter()
	NewRouter(gormstore.New(db), nil, "gorm").Register(h, nil)

	math := createGroup(t, h, "Math", "M-1")
	physics := createGroup(t, h, "Physics", "P-1")
	alice := createStudent(t, h, "Alice", "S-1")
	bob := createStudent(t, h, "Bob", "S-2")

	for _, id := range []uuid.UUID{alice, bob} {
		rec := doRequest(t, h, http.MethodPost, "/api/v1/groups/assign-student",
			models.AssignStudentRequest{StudentID: id, GroupID: math})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := doRequest(t, h, http.MethodPost, "/api/v1/groups/transfer-student",
		models.TransferStudentRequest{StudentID: bob, FromGroupID: math, ToGroupID: physics})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, []uuid.UUID{alice}, groupStudentIDs(t, h, math))
	assert.Equal(t, []uuid.UUID{bob}, groupStudentIDs(t, h, physics))

	rec = doRequest(t, h, http.MethodDelete, "/api/v1/students/"+alice.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, groupStudentIDs(t, h, math))

	rec = doRequest(t, h, http.MethodPost, "/api/v1/groups",
		models.CreateGroupRequest{ID: math, Name: "Math again", Number: "M-2"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
