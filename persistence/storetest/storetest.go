// Package storetest holds the behaviour every persistence.Store must show.
// Implementations call Run from their own tests with a constructor that
// returns an empty store.
package storetest

import (
	"context"
	"testing"

	"student-groups/models"
	"student-groups/persistence"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Run(t *testing.T, newStore func(t *testing.T) persistence.Store) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store persistence.Store)
	}{
		{"GroupRoundTrip", testGroupRoundTrip},
		{"StudentRoundTrip", testStudentRoundTrip},
		{"MissingLookups", testMissingLookups},
		{"ListEntities", testListEntities},
		{"AssignIsIdempotent", testAssignIsIdempotent},
		{"RemoveNonMemberIsNoop", testRemoveNonMemberIsNoop},
		{"RemoveMember", testRemoveMember},
		{"Transfer", testTransfer},
		{"TransferIntoCurrentGroup", testTransferIntoCurrentGroup},
		{"DeleteGroupCascades", testDeleteGroupCascades},
		{"DeleteStudentCascades", testDeleteStudentCascades},
		{"DeleteMissingIsNoop", testDeleteMissingIsNoop},
		{"AssignAndTransferScenario", testAssignAndTransferScenario},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func mustCreateGroup(t *testing.T, store persistence.Store, name, number string) models.Group {
	t.Helper()
	group, err := store.CreateGroup(context.Background(), models.Group{ID: uuid.New(), Name: name, Number: number})
	require.NoError(t, err)
	return group
}

func mustCreateStudent(t *testing.T, store persistence.Store, name, number string) models.Student {
	t.Helper()
	student, err := store.CreateStudent(context.Background(), models.Student{ID: uuid.New(), Name: name, Number: number})
	require.NoError(t, err)
	return student
}

func memberIDs(t *testing.T, store persistence.Store, groupID uuid.UUID) []uuid.UUID {
	t.Helper()
	students, err := store.ListGroupStudents(context.Background(), groupID)
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids
}

func testGroupRoundTrip(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	want := models.Group{ID: uuid.New(), Name: "CS", Number: "101"}

	created, err := store.CreateGroup(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, want, created)

	got, err := store.GetGroupByID(ctx, want.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func testStudentRoundTrip(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	want := models.Student{ID: uuid.New(), Name: "Alice", Number: "A1"}

	created, err := store.CreateStudent(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, want, created)

	got, err := store.GetStudentByID(ctx, want.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func testMissingLookups(t *testing.T, store persistence.Store) {
	ctx := context.Background()

	group, err := store.GetGroupByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, group)

	student, err := store.GetStudentByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, student)

	students, err := store.ListGroupStudents(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, students)
}

func testListEntities(t *testing.T, store persistence.Store) {
	ctx := context.Background()

	groups, err := store.ListGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)

	math := mustCreateGroup(t, store, "Math", "201")
	cs := mustCreateGroup(t, store, "CS", "101")
	bob := mustCreateStudent(t, store, "Bob", "B1")
	alice := mustCreateStudent(t, store, "Alice", "A1")

	groups, err = store.ListGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Group{cs, math}, groups)

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{alice, bob}, students)
}

func testAssignIsIdempotent(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	group := mustCreateGroup(t, store, "CS", "101")
	student := mustCreateStudent(t, store, "Alice", "A1")

	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, group.ID))
	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, group.ID))

	assert.Equal(t, []uuid.UUID{student.ID}, memberIDs(t, store, group.ID))
}

func testRemoveNonMemberIsNoop(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	group := mustCreateGroup(t, store, "CS", "101")
	member := mustCreateStudent(t, store, "Alice", "A1")
	outsider := mustCreateStudent(t, store, "Bob", "B1")
	require.NoError(t, store.AssignStudentToGroup(ctx, member.ID, group.ID))

	require.NoError(t, store.RemoveStudentFromGroup(ctx, outsider.ID, group.ID))
	require.NoError(t, store.RemoveStudentFromGroup(ctx, member.ID, uuid.New()))

	assert.Equal(t, []uuid.UUID{member.ID}, memberIDs(t, store, group.ID))
}

func testRemoveMember(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	group := mustCreateGroup(t, store, "CS", "101")
	alice := mustCreateStudent(t, store, "Alice", "A1")
	bob := mustCreateStudent(t, store, "Bob", "B1")
	require.NoError(t, store.AssignStudentToGroup(ctx, alice.ID, group.ID))
	require.NoError(t, store.AssignStudentToGroup(ctx, bob.ID, group.ID))

	require.NoError(t, store.RemoveStudentFromGroup(ctx, alice.ID, group.ID))

	assert.Equal(t, []uuid.UUID{bob.ID}, memberIDs(t, store, group.ID))
}

func testTransfer(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	from := mustCreateGroup(t, store, "CS", "101")
	to := mustCreateGroup(t, store, "Math", "201")
	student := mustCreateStudent(t, store, "Alice", "A1")
	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, from.ID))

	require.NoError(t, store.TransferStudentBetweenGroups(ctx, student.ID, from.ID, to.ID))

	assert.Empty(t, memberIDs(t, store, from.ID))
	assert.Equal(t, []uuid.UUID{student.ID}, memberIDs(t, store, to.ID))
}

func testTransferIntoCurrentGroup(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	from := mustCreateGroup(t, store, "CS", "101")
	to := mustCreateGroup(t, store, "Math", "201")
	student := mustCreateStudent(t, store, "Alice", "A1")
	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, from.ID))
	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, to.ID))

	require.NoError(t, store.TransferStudentBetweenGroups(ctx, student.ID, from.ID, to.ID))

	assert.Empty(t, memberIDs(t, store, from.ID))
	assert.Equal(t, []uuid.UUID{student.ID}, memberIDs(t, store, to.ID))
}

func testDeleteGroupCascades(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	doomed := mustCreateGroup(t, store, "CS", "101")
	kept := mustCreateGroup(t, store, "Math", "201")
	student := mustCreateStudent(t, store, "Alice", "A1")
	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, doomed.ID))
	require.NoError(t, store.AssignStudentToGroup(ctx, student.ID, kept.ID))

	require.NoError(t, store.DeleteGroup(ctx, doomed.ID))

	got, err := store.GetGroupByID(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	groups, err := store.ListGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Group{kept}, groups)

	assert.Empty(t, memberIDs(t, store, doomed.ID))
	assert.Equal(t, []uuid.UUID{student.ID}, memberIDs(t, store, kept.ID))

	remaining, err := store.GetStudentByID(ctx, student.ID)
	require.NoError(t, err)
	assert.NotNil(t, remaining)
}

func testDeleteStudentCascades(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	cs := mustCreateGroup(t, store, "CS", "101")
	math := mustCreateGroup(t, store, "Math", "201")
	alice := mustCreateStudent(t, store, "Alice", "A1")
	bob := mustCreateStudent(t, store, "Bob", "B1")
	for _, g := range []models.Group{cs, math} {
		require.NoError(t, store.AssignStudentToGroup(ctx, alice.ID, g.ID))
		require.NoError(t, store.AssignStudentToGroup(ctx, bob.ID, g.ID))
	}

	require.NoError(t, store.DeleteStudent(ctx, alice.ID))

	got, err := store.GetStudentByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{bob}, students)

	assert.Equal(t, []uuid.UUID{bob.ID}, memberIDs(t, store, cs.ID))
	assert.Equal(t, []uuid.UUID{bob.ID}, memberIDs(t, store, math.ID))
}

func testDeleteMissingIsNoop(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	group := mustCreateGroup(t, store, "CS", "101")
	student := mustCreateStudent(t, store, "Alice", "A1")

	assert.NoError(t, store.DeleteGroup(ctx, uuid.New()))
	assert.NoError(t, store.DeleteStudent(ctx, uuid.New()))

	groups, err := store.ListGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Group{group}, groups)

	students, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{student}, students)
}

func testAssignAndTransferScenario(t *testing.T, store persistence.Store) {
	ctx := context.Background()
	g1 := models.Group{ID: uuid.New(), Name: "CS", Number: "101"}
	g2 := models.Group{ID: uuid.New(), Name: "Math", Number: "201"}
	s1 := models.Student{ID: uuid.New(), Name: "Alice", Number: "A1"}

	_, err := store.CreateGroup(ctx, g1)
	require.NoError(t, err)
	_, err = store.CreateStudent(ctx, s1)
	require.NoError(t, err)
	require.NoError(t, store.AssignStudentToGroup(ctx, s1.ID, g1.ID))

	members, err := store.ListGroupStudents(ctx, g1.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{s1}, members)

	_, err = store.CreateGroup(ctx, g2)
	require.NoError(t, err)
	require.NoError(t, store.TransferStudentBetweenGroups(ctx, s1.ID, g1.ID, g2.ID))

	members, err = store.ListGroupStudents(ctx, g1.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	members, err = store.ListGroupStudents(ctx, g2.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{s1}, members)
}
