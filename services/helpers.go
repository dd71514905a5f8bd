package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/participants-admin/models"
	"github.com/Dosada05/participants-admin/repositories"
)

// handleRepositoryError переводит ошибки репозитория в ошибки сервиса.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrParticipantNotFound):
		return ErrParticipantNotFound
	case errors.Is(err, repositories.ErrParticipantConflict):
		return ErrParticipantConflict
	case errors.Is(err, repositories.ErrParticipantRoleInvalid):
		return fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidRole)
	default:
		return fmt.Errorf("participant repository: %w", err)
	}
}

// tableRows coerces the records into the renderer's row shape: a missing
// role id becomes 0.
func tableRows(participants []models.Participant) []models.Participant {
	rows := make([]models.Participant, len(participants))
	for i, p := range participants {
		row := p.Clone()
		if row.Role.ID == nil {
			row.Role.ID = models.IntPtr(0)
		}
		rows[i] = row
	}
	return rows
}
