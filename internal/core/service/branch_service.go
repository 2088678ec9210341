package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// BranchService implements branch management. Listing is public.
type BranchService struct {
	repo ports.BranchRepository
	log  zerolog.Logger
}

func NewBranchService(repo ports.BranchRepository, log zerolog.Logger) *BranchService {
	return &BranchService{repo: repo, log: log}
}

func (s *BranchService) Create(ctx context.Context, actor domain.Actor, in ports.BranchInput) (*domain.Branch, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	branch := &domain.Branch{
		Name:        in.Name,
		Address:     in.Address,
		Phone:       in.Phone,
		Coordinates: domain.Coordinates{Lat: in.Lat, Lng: in.Lng},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, branch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("branch_id", created.ID).Str("name", created.Name).Msg("branch created")
	return created, nil
}

func (s *BranchService) List(ctx context.Context) ([]*domain.Branch, error) {
	return s.repo.List(ctx)
}

func (s *BranchService) Update(ctx context.Context, actor domain.Actor, id string, in ports.BranchInput) (*domain.Branch, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	branch.Name = in.Name
	branch.Address = in.Address
	branch.Phone = in.Phone
	branch.Coordinates = domain.Coordinates{Lat: in.Lat, Lng: in.Lng}
	branch.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *BranchService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
