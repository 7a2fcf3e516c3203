package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/domain"
)

var (
	ErrUnknownFormation = errors.New("unknown formation")
	ErrInvalidPitch     = domain.ErrInvalidPitch
	ErrMissingPosition  = errors.New("either x and y or pointer coordinates with the pitch size are required")
	// ErrPlayerNotFound also matches ErrNotFound.
	ErrPlayerNotFound = errors.New("player not found")
)

type CompositionRepository interface {
	CRUDRepository[domain.Composition]
	List(ctx context.Context) ([]domain.Composition, error)
}

type RosterReader interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Player, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Player, error)
}

// Move describes where a player was dropped: either percentages, or a
// pointer position relative to the rendered pitch.
type Move struct {
	X        *float64
	Y        *float64
	PointerX *float64
	PointerY *float64
	Pitch    domain.Pitch
}

func (m Move) resolve() (float64, float64, error) {
	if m.PointerX != nil && m.PointerY != nil {
		return domain.PositionFromDrop(*m.PointerX, *m.PointerY, m.Pitch)
	}
	if m.X != nil && m.Y != nil {
		return domain.ClampPercent(*m.X), domain.ClampPercent(*m.Y), nil
	}
	return 0, 0, ErrMissingPosition
}

type CompositionService struct {
	repo    CompositionRepository
	players RosterReader
}

func NewCompositionService(repo CompositionRepository, players RosterReader) *CompositionService {
	return &CompositionService{
		repo:    repo,
		players: players,
	}
}

func (s *CompositionService) List(ctx context.Context) ([]domain.Composition, error) {
	compositions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return compositions, nil
}

func (s *CompositionService) Get(ctx context.Context, id uuid.UUID) (domain.Composition, error) {
	composition, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Composition{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return composition, nil
}

func (s *CompositionService) Create(ctx context.Context, composition domain.Composition) (domain.Composition, error) {
	if err := normalize(&composition); err != nil {
		return domain.Composition{}, err
	}

	created, err := s.repo.Create(ctx, composition)
	if err != nil {
		return domain.Composition{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update replaces the title and formation. Custom positions are kept unless
// the composition carries a new set.
func (s *CompositionService) Update(ctx context.Context, id uuid.UUID, composition domain.Composition) (domain.Composition, error) {
	if composition.Positions.Positions == nil {
		current, err := s.Get(ctx, id)
		if err != nil {
			return domain.Composition{}, err
		}
		composition.Positions = current.Positions
	}
	if err := normalize(&composition); err != nil {
		return domain.Composition{}, err
	}

	return s.save(ctx, id, composition)
}

func (s *CompositionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Move stores the clamped drop position of a player on the board.
func (s *CompositionService) Move(ctx context.Context, id, playerID uuid.UUID, move Move) (domain.Composition, domain.PlayerPosition, error) {
	x, y, err := move.resolve()
	if err != nil {
		return domain.Composition{}, domain.PlayerPosition{}, err
	}

	composition, err := s.Get(ctx, id)
	if err != nil {
		return domain.Composition{}, domain.PlayerPosition{}, err
	}

	if _, err := s.players.Get(ctx, playerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Composition{}, domain.PlayerPosition{}, fmt.Errorf("s.players.Get -> %w: %w", ErrPlayerNotFound, err)
		}
		return domain.Composition{}, domain.PlayerPosition{}, fmt.Errorf("s.players.Get -> %w", err)
	}

	position := composition.Positions.Upsert(playerID, x, y)

	updated, err := s.save(ctx, id, composition)
	if err != nil {
		return domain.Composition{}, domain.PlayerPosition{}, err
	}

	return updated, position, nil
}

// Reset drops every custom position, sending players back to formation slots.
func (s *CompositionService) Reset(ctx context.Context, id uuid.UUID) (domain.Composition, error) {
	composition, err := s.Get(ctx, id)
	if err != nil {
		return domain.Composition{}, err
	}
	composition.Positions = domain.NewPositionSet(composition.Formation)

	return s.save(ctx, id, composition)
}

// Board lays the active roster out according to the composition.
func (s *CompositionService) Board(ctx context.Context, id uuid.UUID) (domain.Composition, domain.Board, error) {
	composition, err := s.Get(ctx, id)
	if err != nil {
		return domain.Composition{}, domain.Board{}, err
	}

	players, err := s.players.List(ctx, true)
	if err != nil {
		return domain.Composition{}, domain.Board{}, fmt.Errorf("s.players.List -> %w", err)
	}

	return composition, domain.BuildBoard(composition.Formation, players, composition.Positions), nil
}

func (s *CompositionService) save(ctx context.Context, id uuid.UUID, composition domain.Composition) (domain.Composition, error) {
	updated, err := s.repo.Update(ctx, id, composition)
	if err != nil {
		return domain.Composition{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func normalize(c *domain.Composition) error {
	if c.Formation == "" {
		c.Formation = domain.DefaultFormation
	}
	if _, ok := domain.FormationByName(c.Formation); !ok {
		return ErrUnknownFormation
	}

	set := domain.NewPositionSet(c.Formation)
	for _, p := range c.Positions.Positions {
		set.Upsert(p.PlayerID, p.X, p.Y)
	}
	c.Positions = set

	return nil
}
