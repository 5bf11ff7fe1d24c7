package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lms/backend/internal/domain/people"
	"github.com/lms/backend/internal/domain/shared"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
)

func newTestStudent(t *testing.T, tenantID uuid.UUID, username, email string) *people.Student {
	t.Helper()
	student, err := people.NewStudent(tenantID, username, email, "Ada", "Lovelace", uuid.New(), "10.0.0.1")
	require.NoError(t, err)
	return student
}

func TestGormStudentRepository_SaveWithEmails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStudentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	student := newTestStudent(t, tenantID, "ada", "ada@example.com")
	require.NoError(t, repo.SaveWithEmails(ctx, student))

	found, err := repo.FindByIDForTenant(ctx, tenantID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", found.Username)
	require.Len(t, found.Emails, 1)
	assert.Equal(t, "ada@example.com", found.PrimaryEmail())
	assert.True(t, found.Emails[0].IsPrimary)
}

func TestGormStudentRepository_TenantScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStudentRepository(db)
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	student := newTestStudent(t, tenantA, "ada", "ada@example.com")
	require.NoError(t, repo.SaveWithEmails(ctx, student))

	// Visible in its own tenant, invisible from another
	_, err := repo.FindByIDForTenant(ctx, tenantA, student.ID)
	require.NoError(t, err)

	_, err = repo.FindByIDForTenant(ctx, tenantB, student.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Same username is free in a different tenant
	exists, err := repo.ExistsByUsername(ctx, tenantA, "ada")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, tenantB, "ada")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormStudentRepository_SoftDeleteHidesRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStudentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	student := newTestStudent(t, tenantID, "ada", "ada@example.com")
	require.NoError(t, repo.SaveWithEmails(ctx, student))

	student.MarkDeleted(uuid.New())
	require.NoError(t, repo.Save(ctx, student))

	// Invisible to every read path
	_, err := repo.FindByIDForTenant(ctx, tenantID, student.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByUsername(ctx, tenantID, "ada")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	count, err := repo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Zero(t, count)

	// The physical row is still there
	var raw int64
	require.NoError(t, db.Unscoped().Model(&models.StudentModel{}).
		Where("id = ?", student.ID).Count(&raw).Error)
	assert.EqualValues(t, 1, raw)
}

func TestGormStudentRepository_ExistsByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStudentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	student := newTestStudent(t, tenantID, "ada", "ada@example.com")
	require.NoError(t, repo.SaveWithEmails(ctx, student))

	exists, err := repo.ExistsByEmail(ctx, tenantID, "ADA@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, tenantID, "other@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormStudentRepository_FindAllPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStudentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	names := []string{"ada", "grace", "mary"}
	for _, name := range names {
		s := newTestStudent(t, tenantID, name, name+"@example.com")
		require.NoError(t, repo.SaveWithEmails(ctx, s))
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 2
	filter.OrderBy = "username"
	filter.OrderDir = "asc"

	page1, err := repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "ada", page1[0].Username)
	assert.Equal(t, "grace", page1[1].Username)

	filter.Page = 2
	page2, err := repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "mary", page2[0].Username)

	total, err := repo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}
