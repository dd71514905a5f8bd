package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/participants-admin/models"
	"github.com/Dosada05/participants-admin/repositories"
	"github.com/Dosada05/participants-admin/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu  sync.Mutex
	got []models.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, variant models.Variant, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, models.Notification{Variant: variant, Message: message})
	return nil
}

func (n *recordingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.got))
	for i, g := range n.got {
		out[i] = g.Message
	}
	return out
}

func (n *recordingNotifier) last() models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.got) == 0 {
		return models.Notification{}
	}
	return n.got[len(n.got)-1]
}

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
	deleted     []string
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.key, u.contentType, u.body = key, contentType, body
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key, ETag: "abc"}, nil
}

func (u *fakeUploader) Download(context.Context, string) (io.ReadCloser, error) {
	return nil, storage.ErrObjectNotFound
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.com/" + key }

var testNow = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

func seedParticipants() []models.Participant {
	return []models.Participant{
		{ID: 1, Name: "jdoe", Email: "jdoe@example.com", FullName: "Doe, John", TakeQuiz: true, EmailOnReview: true,
			Role: models.RoleRef{ID: models.IntPtr(1), Name: models.RoleParticipant}},
		{ID: 2, Name: "asmith", Email: "asmith@example.com", FullName: "Smith, Alice", TakeQuiz: true,
			Role: models.RoleRef{Name: models.RoleReviewer}, Parent: models.GroupRef{ID: models.IntPtr(2), Name: models.StringPtr("Instructor Smith")}},
		{ID: 3, Name: "bwong", Email: "bwong@example.com", FullName: "Wong, Brian", TakeQuiz: true, EmailOnSubmission: true,
			Role: models.RoleRef{ID: models.IntPtr(4), Name: models.RoleSubmitter}},
	}
}

func newTestService(t *testing.T, uploader storage.FileUploader) (ParticipantService, repositories.ParticipantRepository, *recordingNotifier) {
	t.Helper()
	repo, err := repositories.NewMemoryParticipantRepository(seedParticipants())
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	svc := NewParticipantService(repo, notifier, ParticipantServiceConfig{
		Title:    "Participants for CSC/ECE 517",
		Uploader: uploader,
		Now:      func() time.Time { return testNow },
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo, notifier
}

func TestAddRejectsBlankLogin(t *testing.T) {
	for _, login := range []string{"", "   "} {
		t.Run("login="+login, func(t *testing.T) {
			svc, repo, notifier := newTestService(t, nil)
			before := repo.Len()

			p, err := svc.Add(context.Background(), AddParticipantInput{Login: login, Role: models.RoleReviewer})

			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.Equal(t, before, repo.Len())
			assert.Equal(t, models.Notification{Variant: models.VariantDanger, Message: "Please enter a user login and select a role."}, notifier.last())
		})
	}
}

func TestAddRejectsMissingRole(t *testing.T) {
	svc, repo, notifier := newTestService(t, nil)

	_, err := svc.Add(context.Background(), AddParticipantInput{Login: "alice"})

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, 3, repo.Len())
	assert.Equal(t, models.VariantDanger, notifier.last().Variant)
}

func TestAddRejectsUnknownRole(t *testing.T) {
	svc, repo, notifier := newTestService(t, nil)

	_, err := svc.Add(context.Background(), AddParticipantInput{Login: "alice", Role: "admin"})

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Equal(t, 3, repo.Len())
	assert.Equal(t, models.VariantDanger, notifier.last().Variant)
}

func TestAddCreatesParticipantWithDefaults(t *testing.T) {
	svc, repo, notifier := newTestService(t, nil)

	p, err := svc.Add(context.Background(), AddParticipantInput{Login: "alice", Role: models.RoleReviewer})
	require.NoError(t, err)

	assert.Equal(t, 4, repo.Len())
	assert.Equal(t, testNow.UnixMilli(), p.ID)
	assert.Equal(t, "alice", p.Name)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, "alice", p.FullName)
	assert.Equal(t, models.RoleReviewer, p.Role.Name)
	assert.Equal(t, 1, *p.Role.ID)
	assert.False(t, p.EmailOnReview)
	assert.False(t, p.EmailOnSubmission)
	assert.False(t, p.EmailOnReviewOfReview)
	assert.False(t, p.TakeQuiz)
	assert.Equal(t, 101, *p.Parent.ID)
	assert.Nil(t, p.Parent.Name)
	assert.Equal(t, 123, *p.Institution.ID)
	assert.Nil(t, p.Institution.Name)
	assert.Equal(t, models.Notification{Variant: models.VariantSuccess, Message: "User alice added successfully!"}, notifier.last())

	stored, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, *p, *stored)
}

func TestAddAssignsDistinctIDs(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	a, err := svc.Add(context.Background(), AddParticipantInput{Login: "a", Role: models.RoleMentor})
	require.NoError(t, err)
	b, err := svc.Add(context.Background(), AddParticipantInput{Login: "b", Role: models.RoleMentor})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestDeleteRemovesOnlyTarget(t *testing.T) {
	svc, repo, notifier := newTestService(t, nil)

	require.NoError(t, svc.Delete(context.Background(), 2))

	remaining, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, int64(1), remaining[0].ID)
	assert.Equal(t, int64(3), remaining[1].ID)
	assert.Equal(t, models.Notification{Variant: models.VariantSuccess, Message: "User asmith deleted successfully!"}, notifier.last())
}

func TestDeleteUnknown(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)

	err := svc.Delete(context.Background(), 999)

	assert.ErrorIs(t, err, ErrParticipantNotFound)
	assert.Equal(t, 3, repo.Len())
}

func TestEditReplacesOnlyMutatedFields(t *testing.T) {
	svc, repo, notifier := newTestService(t, nil)
	before, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)

	name := "alice.smith"
	quiz := false
	role := models.RoleMentor
	parent := "Instructor Lee"
	updated, err := svc.Edit(context.Background(), 2, UpdateParticipantInput{
		Name:       &name,
		TakeQuiz:   &quiz,
		Role:       &role,
		ParentName: &parent,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), updated.ID)
	assert.Equal(t, "alice.smith", updated.Name)
	assert.False(t, updated.TakeQuiz)
	assert.Equal(t, models.RoleMentor, updated.Role.Name)
	assert.Equal(t, "Instructor Lee", *updated.Parent.Name)
	assert.Equal(t, before.Parent.ID, updated.Parent.ID)
	assert.Equal(t, before.Email, updated.Email)
	assert.Equal(t, before.FullName, updated.FullName)
	assert.Equal(t, before.EmailOnReview, updated.EmailOnReview)
	assert.Equal(t, before.Role.ID, updated.Role.ID)

	others, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, seedParticipants()[0], *others)
	assert.Equal(t, models.Notification{Variant: models.VariantSuccess, Message: "User alice.smith updated successfully!"}, notifier.last())
}

func TestEditAllowsClearingRole(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	empty := models.Role("")

	updated, err := svc.Edit(context.Background(), 1, UpdateParticipantInput{Role: &empty})

	require.NoError(t, err)
	assert.Equal(t, models.Role(""), updated.Role.Name)
}

func TestEditRejectsUnknownRole(t *testing.T) {
	svc, repo, notifier := newTestService(t, nil)
	bad := models.Role("owner")

	_, err := svc.Edit(context.Background(), 1, UpdateParticipantInput{Role: &bad})

	assert.ErrorIs(t, err, ErrInvalidRole)
	stored, _ := repo.FindByID(context.Background(), 1)
	assert.Equal(t, models.RoleParticipant, stored.Role.Name)
	assert.Empty(t, notifier.got)
}

func TestEditUnknown(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	name := "ghost"

	_, err := svc.Edit(context.Background(), 42, UpdateParticipantInput{Name: &name})

	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestConcurrentEditsKeepBothChanges(t *testing.T) {
	for i := 0; i < 200; i++ {
		svc, repo, _ := newTestService(t, nil)
		email := "john.doe@example.com"
		quiz := false

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Edit(context.Background(), 1, UpdateParticipantInput{Email: &email})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Edit(context.Background(), 1, UpdateParticipantInput{TakeQuiz: &quiz})
			assert.NoError(t, err)
		}()
		wg.Wait()

		stored, err := repo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, email, stored.Email, "run %d lost the email edit", i)
		require.False(t, stored.TakeQuiz, "run %d lost the quiz edit", i)
	}
}

func TestConcurrentEditAndDelete(t *testing.T) {
	for i := 0; i < 200; i++ {
		svc, repo, notifier := newTestService(t, nil)
		name := "john.doe"

		var wg sync.WaitGroup
		var editErr, deleteErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, editErr = svc.Edit(context.Background(), 1, UpdateParticipantInput{Name: &name})
		}()
		go func() {
			defer wg.Done()
			deleteErr = svc.Delete(context.Background(), 1)
		}()
		wg.Wait()

		require.NoError(t, deleteErr)
		_, err := repo.FindByID(context.Background(), 1)
		require.ErrorIs(t, err, repositories.ErrParticipantNotFound)
		assert.Equal(t, 2, repo.Len())

		want := "User john.doe deleted successfully!"
		if editErr != nil {
			// Delete went first.
			require.ErrorIs(t, editErr, ErrParticipantNotFound)
			want = "User jdoe deleted successfully!"
		}
		assert.Contains(t, notifier.messages(), want)
	}
}

func TestMutationsLogActor(t *testing.T) {
	repo, err := repositories.NewMemoryParticipantRepository(seedParticipants())
	require.NoError(t, err)
	var buf bytes.Buffer
	svc := NewParticipantService(repo, nil, ParticipantServiceConfig{Now: func() time.Time { return testNow }},
		slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx := ContextWithActor(context.Background(), 42)
	_, err = svc.Add(ctx, AddParticipantInput{Login: "alice", Role: models.RoleReader})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), 2))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var added, deleted map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &added))
	require.NoError(t, json.Unmarshal(lines[1], &deleted))
	assert.Equal(t, "participant added", added["msg"])
	assert.Equal(t, float64(42), added["actor_id"])
	assert.Equal(t, "participant deleted", deleted["msg"])
	assert.NotContains(t, deleted, "actor_id")
}

func TestTable(t *testing.T) {
	t.Run("all quiz true hides the quiz column and shows the banner", func(t *testing.T) {
		svc, _, _ := newTestService(t, nil)

		view, err := svc.Table(context.Background(), models.RoleInstructor)
		require.NoError(t, err)

		assert.Equal(t, "Participants for CSC/ECE 517", view.Title)
		assert.Equal(t, models.ParticipantSchemaVersion, view.SchemaVersion)
		assert.NotContains(t, columnKeys(view.Columns), models.ColumnTakeQuiz)
		assert.Contains(t, columnKeys(view.Columns), models.ColumnEmailOnReview)
		assert.Contains(t, columnKeys(view.Columns), models.ColumnEmailOnSubmission)
		assert.Contains(t, view.Banners, models.Banner{Key: models.ColumnTakeQuiz, Message: "All participants have taken the quiz"})
		assert.Equal(t, map[string]bool{models.ColumnID: false, models.ColumnInstitution: false}, view.ColumnVisibility)
	})

	t.Run("mixed quiz shows the column and hides the banner", func(t *testing.T) {
		svc, _, _ := newTestService(t, nil)
		quiz := false
		_, err := svc.Edit(context.Background(), 3, UpdateParticipantInput{TakeQuiz: &quiz})
		require.NoError(t, err)

		view, err := svc.Table(context.Background(), models.RoleSuperAdmin)
		require.NoError(t, err)

		assert.Contains(t, columnKeys(view.Columns), models.ColumnTakeQuiz)
		assert.Empty(t, view.Banners)
		assert.True(t, view.ColumnVisibility[models.ColumnInstitution])
	})

	t.Run("missing role id is coerced to zero", func(t *testing.T) {
		svc, repo, _ := newTestService(t, nil)

		view, err := svc.Table(context.Background(), models.RoleAdmin)
		require.NoError(t, err)

		require.Len(t, view.Rows, 3)
		require.NotNil(t, view.Rows[1].Role.ID)
		assert.Equal(t, 0, *view.Rows[1].Role.ID)

		stored, _ := repo.FindByID(context.Background(), 2)
		assert.Nil(t, stored.Role.ID)
	})
}

func columnKeys(columns []models.Column) []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return keys
}

func TestRoles(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	roles := svc.Roles()

	require.Len(t, roles, 5)
	assert.Equal(t, models.RoleParticipant, roles[0].Name)
	assert.Equal(t, "Participant", roles[0].Label)
	assert.Equal(t, "A Mentor provides guidance and support to other users.", roles[4].Description)
}

func TestExport(t *testing.T) {
	t.Run("uploads a snapshot", func(t *testing.T) {
		uploader := &fakeUploader{}
		svc, _, _ := newTestService(t, uploader)

		res, err := svc.Export(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "exports/participants-1725192000000.json", res.Key)
		assert.Equal(t, "https://cdn.example.com/exports/participants-1725192000000.json", res.URL)
		assert.Equal(t, 3, res.Count)
		assert.Equal(t, "application/json", uploader.contentType)

		var doc struct {
			SchemaVersion int                  `json:"schema_version"`
			Participants  []models.Participant `json:"participants"`
		}
		require.NoError(t, json.Unmarshal(uploader.body, &doc))
		assert.Equal(t, models.ParticipantSchemaVersion, doc.SchemaVersion)
		assert.Len(t, doc.Participants, 3)
	})

	t.Run("keeps only the latest snapshot", func(t *testing.T) {
		repo, err := repositories.NewMemoryParticipantRepository(seedParticipants())
		require.NoError(t, err)
		uploader := &fakeUploader{}
		now := testNow
		svc := NewParticipantService(repo, nil, ParticipantServiceConfig{
			Uploader: uploader,
			Now: func() time.Time {
				now = now.Add(time.Second)
				return now
			},
		}, slog.New(slog.NewTextHandler(io.Discard, nil)))

		first, err := svc.Export(context.Background())
		require.NoError(t, err)
		assert.Empty(t, uploader.deleted)

		second, err := svc.Export(context.Background())
		require.NoError(t, err)
		assert.NotEqual(t, first.Key, second.Key)
		assert.Equal(t, []string{first.Key}, uploader.deleted)
	})

	t.Run("unavailable without storage", func(t *testing.T) {
		svc, _, _ := newTestService(t, nil)

		_, err := svc.Export(context.Background())
		assert.ErrorIs(t, err, ErrExportUnavailable)
	})

	t.Run("upload failure", func(t *testing.T) {
		boom := errors.New("r2 down")
		svc, _, _ := newTestService(t, &fakeUploader{err: boom})

		_, err := svc.Export(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}
