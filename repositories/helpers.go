package repositories

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Dosada05/participants-admin/models"
)

// decodeParticipants читает JSON-массив участников (формат фикстуры).
func decodeParticipants(r io.Reader) ([]models.Participant, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var participants []models.Participant
	if err := dec.Decode(&participants); err != nil {
		return nil, fmt.Errorf("failed to decode participants: %w", err)
	}
	for i := range participants {
		if err := checkRole(&participants[i]); err != nil {
			return nil, fmt.Errorf("participant %d: %w", participants[i].ID, err)
		}
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	return participants, nil
}
