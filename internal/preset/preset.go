// Package preset stores reusable import settings for recurring bank exports.
package preset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
)

var (
	ErrNotFound      = errors.New("preset not found")
	ErrDuplicateName = errors.New("preset name already in use")
	ErrInvalid       = errors.New("invalid preset")
)

// Preset is a named mapping, grouping column and account assignment.
type Preset struct {
	ID        uuid.UUID
	Name      string
	Settings  Settings
	CreatedAt time.Time
}

// Settings is the part of an import request a preset can supply.
type Settings struct {
	Mapping        importer.MappingSpec `json:"mapping"`
	GroupByColumn  string               `json:"groupByColumn,omitempty"`
	AccountMapping map[string]string    `json:"accountMapping,omitempty"`
}

//go:generate mockgen -source=preset.go -destination=repository_mock.go -package=preset
type Repository interface {
	CreatePreset(ctx context.Context, p *Preset) error
	GetPreset(ctx context.Context, id uuid.UUID) (*Preset, error)
	ListPresets(ctx context.Context) ([]*Preset, error)
	DeletePreset(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Settings Settings
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Preset, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if _, err := params.Settings.Mapping.Config(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	p := &Preset{
		ID:       uuid.New(),
		Name:     name,
		Settings: params.Settings,
	}

	if err := s.repo.CreatePreset(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Preset, error) {
	return s.repo.GetPreset(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Preset, error) {
	return s.repo.ListPresets(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePreset(ctx, id)
}
