package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quiniela-inc/quiniela/internal/domain/access"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(&models.InviteCodeModel{}, &models.InvitationModel{})
	require.NoError(t, err)

	return gdb
}

func createTestCode(t *testing.T, repo *InviteCodeRepository, usesPerCode int, expiresAt *time.Time) *access.InviteCode {
	t.Helper()

	code, err := access.NewInviteCode(1, 1, 1, usesPerCode, expiresAt)
	require.NoError(t, err)

	err = repo.CreateBatch(context.Background(), []*access.InviteCode{code})
	require.NoError(t, err)
	require.NotZero(t, code.ID())

	return code
}

func TestInviteCodeRepository_Consume_StatusProjection(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewInviteCodeRepository(gdb)
	ctx := context.Background()
	now := time.Now().UTC()

	code := createTestCode(t, repo, 3, nil)

	type step struct {
		wantStatus access.CodeStatus
		wantUsed   int
	}
	steps := []step{
		{access.CodePartiallyUsed, 1},
		{access.CodePartiallyUsed, 2},
		{access.CodeUsed, 3},
	}

	for i, want := range steps {
		err := repo.Consume(ctx, code.ID(), now)
		require.NoError(t, err, "consume %d", i+1)

		got, err := repo.GetByID(ctx, code.ID())
		require.NoError(t, err)
		assert.Equal(t, want.wantStatus, got.Status(), "status after consume %d", i+1)
		assert.Equal(t, want.wantUsed, got.UsedCount(), "used count after consume %d", i+1)
	}
}

func TestInviteCodeRepository_Consume_SingleUseFlipsToUsed(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewInviteCodeRepository(gdb)
	ctx := context.Background()

	code := createTestCode(t, repo, 1, nil)

	err := repo.Consume(ctx, code.ID(), time.Now().UTC())
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, code.ID())
	require.NoError(t, err)
	assert.Equal(t, access.CodeUsed, got.Status())
	assert.Equal(t, 1, got.UsedCount())
}

func TestInviteCodeRepository_Consume_ExhaustedCodeRejected(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewInviteCodeRepository(gdb)
	ctx := context.Background()
	now := time.Now().UTC()

	code := createTestCode(t, repo, 2, nil)

	require.NoError(t, repo.Consume(ctx, code.ID(), now))
	require.NoError(t, repo.Consume(ctx, code.ID(), now))

	err := repo.Consume(ctx, code.ID(), now)
	assert.ErrorIs(t, err, access.ErrCodeExhausted)

	// A rejected claim must not touch the counter.
	got, err := repo.GetByID(ctx, code.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsedCount())
	assert.Equal(t, access.CodeUsed, got.Status())
}

func TestInviteCodeRepository_Consume_ExpiredCodeRejected(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewInviteCodeRepository(gdb)
	ctx := context.Background()
	now := time.Now().UTC()

	past := now.Add(-time.Hour)
	code := createTestCode(t, repo, 3, &past)

	err := repo.Consume(ctx, code.ID(), now)
	assert.ErrorIs(t, err, access.ErrCodeExhausted)
}

func TestInviteCodeRepository_Consume_PausedCodeRejected(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewInviteCodeRepository(gdb)
	ctx := context.Background()

	code := createTestCode(t, repo, 3, nil)
	require.NoError(t, repo.UpdateStatus(ctx, code.ID(), access.CodePaused))

	err := repo.Consume(ctx, code.ID(), time.Now().UTC())
	assert.ErrorIs(t, err, access.ErrCodeExhausted)
}

func TestInvitationRepository_Accept_OnlyPending(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewInvitationRepository(gdb)
	ctx := context.Background()
	now := time.Now().UTC()

	inv, err := access.NewInvitation(1, 1, "player@example.com", now.Add(24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, inv))
	require.NotZero(t, inv.ID())

	require.NoError(t, repo.Accept(ctx, inv.ID(), now))

	got, err := repo.GetByID(ctx, inv.ID())
	require.NoError(t, err)
	assert.Equal(t, access.InvitationAccepted, got.Status())
	require.NotNil(t, got.AcceptedAt())

	// The guarded update matches zero rows once the status left PENDING.
	err = repo.Accept(ctx, inv.ID(), now.Add(time.Minute))
	assert.ErrorIs(t, err, access.ErrInvitationNotPending)
}
