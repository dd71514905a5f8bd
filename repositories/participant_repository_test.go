package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Dosada05/participants-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(id int64, name string, role models.Role) models.Participant {
	return models.Participant{ID: id, Name: name, Role: models.RoleRef{ID: models.IntPtr(1), Name: role}}
}

func TestNewMemoryParticipantRepository(t *testing.T) {
	t.Run("keeps seed order", func(t *testing.T) {
		repo, err := NewMemoryParticipantRepository([]models.Participant{
			sample(3, "c", models.RoleReader),
			sample(1, "a", models.RoleMentor),
		})
		require.NoError(t, err)

		list, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, int64(3), list[0].ID)
		assert.Equal(t, int64(1), list[1].ID)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := NewMemoryParticipantRepository([]models.Participant{
			sample(1, "a", models.RoleReader),
			sample(1, "b", models.RoleReader),
		})
		assert.ErrorIs(t, err, ErrParticipantConflict)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewMemoryParticipantRepository([]models.Participant{sample(1, "a", "janitor")})
		assert.ErrorIs(t, err, ErrParticipantRoleInvalid)
	})
}

func TestMemoryParticipantRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMemoryParticipantRepository(nil)
	require.NoError(t, err)

	p := sample(10, "alice", models.RoleReviewer)
	require.NoError(t, repo.Create(ctx, &p))
	assert.ErrorIs(t, repo.Create(ctx, &p), ErrParticipantConflict)
	assert.Equal(t, 1, repo.Len())

	got, err := repo.FindByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)

	modified, err := repo.Modify(ctx, 10, func(p *models.Participant) error {
		p.Name = "alice2"
		p.ID = 999
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), modified.ID)
	again, err := repo.FindByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "alice2", again.Name)

	_, err = repo.Modify(ctx, 11, func(*models.Participant) error { return nil })
	assert.ErrorIs(t, err, ErrParticipantNotFound)

	removed, err := repo.Delete(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "alice2", removed.Name)
	_, err = repo.Delete(ctx, 10)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	_, err = repo.FindByID(ctx, 10)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	assert.Equal(t, 0, repo.Len())
}

func TestMemoryParticipantRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMemoryParticipantRepository([]models.Participant{sample(1, "a", models.RoleReader)})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	*got.Role.ID = 99
	got.Name = "mutated"

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Name)
	assert.Equal(t, 1, *stored.Role.ID)
}

func TestMemoryParticipantRepositoryModifyRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMemoryParticipantRepository([]models.Participant{sample(1, "a", models.RoleReader)})
	require.NoError(t, err)

	_, err = repo.Modify(ctx, 1, func(p *models.Participant) error {
		p.Name = "b"
		p.Role.Name = "root"
		return nil
	})
	assert.ErrorIs(t, err, ErrParticipantRoleInvalid)

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Name)
	assert.Equal(t, models.RoleReader, stored.Role.Name)
}

func TestMemoryParticipantRepositoryModifyKeepsRecordOnError(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMemoryParticipantRepository([]models.Participant{sample(1, "a", models.RoleReader)})
	require.NoError(t, err)
	boom := errors.New("boom")

	_, err = repo.Modify(ctx, 1, func(p *models.Participant) error {
		p.Name = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Name)
}

func TestMemoryParticipantRepositoryConcurrentModify(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMemoryParticipantRepository([]models.Participant{sample(1, "a", models.RoleReader)})
	require.NoError(t, err)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Modify(ctx, 1, func(p *models.Participant) error {
				p.FullName += "x"
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stored.FullName, writers)
}

func TestMemoryParticipantRepositoryHonoursContext(t *testing.T) {
	repo, err := NewMemoryParticipantRepository(nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
