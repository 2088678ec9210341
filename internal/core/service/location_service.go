package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

// LocationService implements location sharing. Points are mirrored into the
// geo index on save; index failures are non-fatal (the document remains the
// source of truth, the nearby query is best-effort).
type LocationService struct {
	repo  ports.LocationRepository
	geo   ports.GeoIndex
	relay ports.RelayPublisher
	log   zerolog.Logger
}

func NewLocationService(repo ports.LocationRepository, geo ports.GeoIndex, relay ports.RelayPublisher, log zerolog.Logger) *LocationService {
	return &LocationService{repo: repo, geo: geo, relay: relay, log: log}
}

func (s *LocationService) Create(ctx context.Context, actor domain.Actor, in ports.SaveLocationInput) (*domain.Location, error) {
	locType := in.Type
	if locType == "" {
		locType = "shared"
	}

	// Clearing prior primaries before the save is what keeps at most one
	// primary per (user, type) pair.
	if in.IsPrimary {
		if err := s.repo.ClearPrimary(ctx, actor.UserID, locType, ""); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	loc := &domain.Location{
		UserID:    actor.UserID,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Name:      in.Name,
		Type:      locType,
		Address:   in.Address,
		IsPrimary: in.IsPrimary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, loc)
	if err != nil {
		return nil, err
	}

	if err := s.geo.Add(ctx, created.ID, created.Latitude, created.Longitude); err != nil {
		s.log.Warn().Err(err).Str("location_id", created.ID).Msg("geo index add failed")
	}

	s.relay.Publish(ports.ChannelAdmin, newRelayEvent(ports.EventLocationUpdate, created))

	return created, nil
}

func (s *LocationService) List(ctx context.Context, actor domain.Actor) ([]*domain.Location, error) {
	userID := actor.UserID
	if actor.Role == domain.RoleAdmin {
		userID = ""
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *LocationService) Update(ctx context.Context, actor domain.Actor, id string, in ports.SaveLocationInput) (*domain.Location, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, loc.UserID); err != nil {
		return nil, err
	}

	locType := in.Type
	if locType == "" {
		locType = loc.Type
	}
	if in.IsPrimary {
		if err := s.repo.ClearPrimary(ctx, loc.UserID, locType, loc.ID); err != nil {
			return nil, err
		}
	}

	loc.Latitude = in.Latitude
	loc.Longitude = in.Longitude
	loc.Name = in.Name
	loc.Type = locType
	loc.Address = in.Address
	loc.IsPrimary = in.IsPrimary
	loc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}

	if err := s.geo.Add(ctx, loc.ID, loc.Latitude, loc.Longitude); err != nil {
		s.log.Warn().Err(err).Str("location_id", loc.ID).Msg("geo index update failed")
	}

	s.relay.Publish(ports.ChannelAdmin, newRelayEvent(ports.EventLocationUpdate, loc))

	return loc, nil
}

func (s *LocationService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.Authorize(actor, loc.UserID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.geo.Remove(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("location_id", id).Msg("geo index remove failed")
	}
	return nil
}

func (s *LocationService) Nearby(ctx context.Context, actor domain.Actor, in ports.NearbyInput) ([]*domain.Location, error) {
	radius := in.RadiusKm
	if radius <= 0 {
		radius = 10
	}

	ids, err := s.geo.SearchRadius(ctx, in.Latitude, in.Longitude, radius)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Location{}, nil
	}

	locations, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Non-admins only see their own points in a nearby query.
	if actor.Role != domain.RoleAdmin {
		own := locations[:0]
		for _, l := range locations {
			if l.UserID == actor.UserID {
				own = append(own, l)
			}
		}
		locations = own
	}
	return locations, nil
}

func (s *LocationService) MapsFormat(ctx context.Context, actor domain.Actor) ([]ports.MapMarker, error) {
	locations, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}

	markers := make([]ports.MapMarker, 0, len(locations))
	for _, l := range locations {
		title := l.Name
		if title == "" {
			title = l.Address
		}
		role := domain.RoleUser
		if actor.Role == domain.RoleAdmin && l.UserID == actor.UserID {
			role = domain.RoleAdmin
		}
		markers = append(markers, ports.MapMarker{
			ID:        l.ID,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			Title:     title,
			Type:      l.Type,
			OwnerRole: role,
		})
	}
	return markers, nil
}
