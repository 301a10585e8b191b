package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssigneeRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteAssigneeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignee("Ana", testutil.WithCapacity(6))))

	got, err := repo.GetByKey(ctx, "ANA")
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Key)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, domain.RoleMember, got.Role)
	assert.Equal(t, 6.0, got.DailyCapacityHours)
}

func TestAssigneeRepo_GetByKey_NotFound(t *testing.T) {
	repo := NewSQLiteAssigneeRepo(testutil.NewTestDB(t))

	_, err := repo.GetByKey(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssigneeRepo_DuplicateKey(t *testing.T) {
	repo := NewSQLiteAssigneeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignee("Ana")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestAssignee("ANA")))
}

func TestAssigneeRepo_SetCapacity(t *testing.T) {
	repo := NewSQLiteAssigneeRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignee("Ana")))

	half := 4.5
	require.NoError(t, repo.SetCapacity(ctx, "ana", &half))
	got, err := repo.GetByKey(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.DailyCapacityHours)

	require.NoError(t, repo.SetCapacity(ctx, "ana", nil))
	got, err = repo.GetByKey(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDailyCapacityHours, got.DailyCapacityHours, "unset capacity reads as default")

	assert.ErrorIs(t, repo.SetCapacity(ctx, "ghost", &half), ErrNotFound)
}

func TestAssigneeRepo_ZeroCapacityIsStoredAsIs(t *testing.T) {
	repo := NewSQLiteAssigneeRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignee("Ana", testutil.WithCapacity(0))))

	got, err := repo.GetByKey(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.DailyCapacityHours)
	assert.Equal(t, domain.MinDailyCapacityHours, got.EffectiveCapacity())
}

func TestAssigneeRepo_List(t *testing.T) {
	repo := NewSQLiteAssigneeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignee("Zoe")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignee("Acme", testutil.WithRole(domain.RoleClient))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignee("Bo")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Acme", list[0].Name)
	assert.False(t, list[0].Plannable())
	assert.Equal(t, "Zoe", list[2].Name)
}
