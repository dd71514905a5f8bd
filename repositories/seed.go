package repositories

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/Dosada05/participants-admin/models"
)

//go:embed fixtures/participants.json
var participantsFixture []byte

// SeedSource загружает начальный набор участников один раз при старте.
type SeedSource interface {
	Load(ctx context.Context) ([]models.Participant, error)
}

type fixtureSeed struct {
	data []byte
}

// NewFixtureSeed returns the embedded static fixture.
func NewFixtureSeed() SeedSource {
	return &fixtureSeed{data: participantsFixture}
}

// NewReaderSeed decodes participants from an arbitrary fixture document.
func NewReaderSeed(r io.Reader) (SeedSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return &fixtureSeed{data: data}, nil
}

func (s *fixtureSeed) Load(ctx context.Context) ([]models.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decodeParticipants(bytes.NewReader(s.data))
}
