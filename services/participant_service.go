package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/participants-admin/models"
	"github.com/Dosada05/participants-admin/repositories"
	"github.com/Dosada05/participants-admin/storage"
)

const (
	addValidationMessage = "Please enter a user login and select a role."

	// Значения по умолчанию для нового участника.
	defaultEmailDomain   = "example.com"
	defaultParentID      = 101
	defaultInstitutionID = 123
	// defaultRoleID is assigned whatever role name was selected.
	defaultRoleID = 1

	exportKeyPrefix = "exports/participants-"
	maxIDAttempts   = 3
)

// Notifier is the notification dispatch port. The service only dispatches.
type Notifier interface {
	Notify(ctx context.Context, variant models.Variant, message string) error
}

type AddParticipantInput struct {
	Login string      `json:"login"`
	Role  models.Role `json:"role"`
}

// UpdateParticipantInput carries only the fields the editor changed; nil
// fields keep their stored value.
type UpdateParticipantInput struct {
	Name                  *string      `json:"name,omitempty"`
	Email                 *string      `json:"email,omitempty"`
	FullName              *string      `json:"full_name,omitempty"`
	Role                  *models.Role `json:"role,omitempty"`
	ParentName            *string      `json:"parent_name,omitempty"`
	EmailOnReview         *bool        `json:"email_on_review,omitempty"`
	EmailOnSubmission     *bool        `json:"email_on_submission,omitempty"`
	EmailOnReviewOfReview *bool        `json:"email_on_review_of_review,omitempty"`
	TakeQuiz              *bool        `json:"take_quiz,omitempty"`
}

type ExportResult struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	ETag     string `json:"etag,omitempty"`
	Count    int    `json:"count"`
	Exported string `json:"exported_at"`
}

type ParticipantService interface {
	List(ctx context.Context) ([]models.Participant, error)
	Get(ctx context.Context, id int64) (*models.Participant, error)
	Add(ctx context.Context, input AddParticipantInput) (*models.Participant, error)
	Edit(ctx context.Context, id int64, input UpdateParticipantInput) (*models.Participant, error)
	Delete(ctx context.Context, id int64) error
	Table(ctx context.Context, viewer models.UserRole) (*models.TableView, error)
	Roles() []models.RoleOption
	Export(ctx context.Context) (*ExportResult, error)
}

type participantService struct {
	repo     repositories.ParticipantRepository
	notifier Notifier
	ids      IDGenerator
	uploader storage.FileUploader
	title    string
	now      func() time.Time
	logger   *slog.Logger

	exportMu      sync.Mutex
	lastExportKey string
}

type ParticipantServiceConfig struct {
	Title    string
	IDs      IDGenerator
	Uploader storage.FileUploader // nil disables Export
	Now      func() time.Time
}

func NewParticipantService(
	repo repositories.ParticipantRepository,
	notifier Notifier,
	cfg ParticipantServiceConfig,
	logger *slog.Logger,
) ParticipantService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.IDs == nil {
		cfg.IDs = NewClockIDGenerator(cfg.Now)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &participantService{
		repo:     repo,
		notifier: notifier,
		ids:      cfg.IDs,
		uploader: cfg.Uploader,
		title:    cfg.Title,
		now:      cfg.Now,
		logger:   logger,
	}
}

func (s *participantService) List(ctx context.Context) ([]models.Participant, error) {
	participants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

func (s *participantService) Get(ctx context.Context, id int64) (*models.Participant, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return p, nil
}

func (s *participantService) Add(ctx context.Context, input AddParticipantInput) (*models.Participant, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" || input.Role == "" {
		s.notify(ctx, models.VariantDanger, addValidationMessage)
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, addValidationMessage)
	}
	if !input.Role.Valid() {
		s.notify(ctx, models.VariantDanger, addValidationMessage)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidRole)
	}

	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		p := newParticipant(s.ids.NextID(), login, input.Role)
		err = s.repo.Create(ctx, &p)
		if err == nil {
			s.logger.InfoContext(ctx, "participant added", slog.Int64("participant_id", p.ID), slog.String("role", string(p.Role.Name)), actorAttr(ctx))
			s.notify(ctx, models.VariantSuccess, fmt.Sprintf("User %s added successfully!", login))
			return &p, nil
		}
		if !errors.Is(err, repositories.ErrParticipantConflict) {
			break
		}
	}
	return nil, handleRepositoryError(err)
}

func newParticipant(id int64, login string, role models.Role) models.Participant {
	return models.Participant{
		ID:                    id,
		Name:                  login,
		Email:                 login + "@" + defaultEmailDomain,
		FullName:              login,
		EmailOnReview:         false,
		EmailOnSubmission:     false,
		EmailOnReviewOfReview: false,
		Parent:                models.GroupRef{ID: models.IntPtr(defaultParentID)},
		Institution:           models.InstitutionRef{ID: models.IntPtr(defaultInstitutionID)},
		Role:                  models.RoleRef{ID: models.IntPtr(defaultRoleID), Name: role},
		TakeQuiz:              false,
	}
}

func (s *participantService) Edit(ctx context.Context, id int64, input UpdateParticipantInput) (*models.Participant, error) {
	if input.Role != nil && *input.Role != "" && !input.Role.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidRole)
	}

	p, err := s.repo.Modify(ctx, id, func(p *models.Participant) error {
		applyUpdate(p, input)
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "participant updated", slog.Int64("participant_id", id), actorAttr(ctx))
	s.notify(ctx, models.VariantSuccess, fmt.Sprintf("User %s updated successfully!", p.Name))
	return p, nil
}

func applyUpdate(p *models.Participant, in UpdateParticipantInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.Role != nil {
		p.Role.Name = *in.Role
	}
	if in.ParentName != nil {
		p.Parent.Name = models.StringPtr(*in.ParentName)
	}
	if in.EmailOnReview != nil {
		p.EmailOnReview = *in.EmailOnReview
	}
	if in.EmailOnSubmission != nil {
		p.EmailOnSubmission = *in.EmailOnSubmission
	}
	if in.EmailOnReviewOfReview != nil {
		p.EmailOnReviewOfReview = *in.EmailOnReviewOfReview
	}
	if in.TakeQuiz != nil {
		p.TakeQuiz = *in.TakeQuiz
	}
}

func (s *participantService) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return handleRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "participant deleted", slog.Int64("participant_id", id), actorAttr(ctx))
	s.notify(ctx, models.VariantSuccess, fmt.Sprintf("User %s deleted successfully!", removed.Name))
	return nil
}

func (s *participantService) Table(ctx context.Context, viewer models.UserRole) (*models.TableView, error) {
	participants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	summary := SummarizeFlags(participants)

	return &models.TableView{
		Title:            s.title,
		SchemaVersion:    models.ParticipantSchemaVersion,
		Columns:          visibleColumns(hiddenFromSummary(summary)),
		Rows:             tableRows(participants),
		ColumnVisibility: columnVisibility(viewer),
		Banners:          Banners(summary),
	}, nil
}

func (s *participantService) Roles() []models.RoleOption {
	options := make([]models.RoleOption, 0, len(models.Roles))
	for _, r := range models.Roles {
		options = append(options, models.RoleOption{Name: r, Label: r.Label(), Description: r.Description()})
	}
	return options
}

// Export выгружает снимок строк таблицы в объектное хранилище. Снимок
// обратно не читается.
func (s *participantService) Export(ctx context.Context) (*ExportResult, error) {
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}
	participants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	exportedAt := s.now().UTC()
	doc := struct {
		SchemaVersion int                  `json:"schema_version"`
		ExportedAt    time.Time            `json:"exported_at"`
		Participants  []models.Participant `json:"participants"`
	}{
		SchemaVersion: models.ParticipantSchemaVersion,
		ExportedAt:    exportedAt,
		Participants:  tableRows(participants),
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode participant export: %w", err)
	}

	key := fmt.Sprintf("%s%d.json", exportKeyPrefix, exportedAt.UnixMilli())
	res, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload participant export: %w", err)
	}
	s.logger.InfoContext(ctx, "participants exported", slog.String("key", res.Key), slog.Int("count", len(participants)), actorAttr(ctx))
	s.pruneExport(ctx, res.Key)

	return &ExportResult{
		Key:      res.Key,
		URL:      res.Location,
		ETag:     res.ETag,
		Count:    len(participants),
		Exported: exportedAt.Format(time.RFC3339),
	}, nil
}

// pruneExport удаляет предыдущий снимок: в бакете хранится только последний.
func (s *participantService) pruneExport(ctx context.Context, key string) {
	s.exportMu.Lock()
	prev := s.lastExportKey
	s.lastExportKey = key
	s.exportMu.Unlock()

	if prev == "" || prev == key {
		return
	}
	if err := s.uploader.Delete(ctx, prev); err != nil {
		s.logger.WarnContext(ctx, "failed to prune previous participant export", slog.String("key", prev), slog.Any("error", err))
	}
}

func (s *participantService) notify(ctx context.Context, variant models.Variant, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, variant, message); err != nil {
		s.logger.WarnContext(ctx, "failed to dispatch notification", slog.String("variant", string(variant)), slog.Any("error", err))
	}
}
