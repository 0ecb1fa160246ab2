package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"stockmap/internal/caching"
	"stockmap/internal/editor"
	"stockmap/internal/models"
	"stockmap/internal/repositories"

	"github.com/google/uuid"
)

const geometryTTL = 10 * time.Minute

// GeometryService persists committed zone geometry. It is the backend half
// of the canvas editor: the editor emits commit batches, this service writes
// them in order and guards the committed-state invariants (no overlap,
// inside canvas bounds).
type GeometryService interface {
	List(ctx context.Context) ([]*models.ZoneGeometry, error)
	// Commit persists a batch of zone geometries atomically. Each zone's
	// position and dimensions land together as one record.
	Commit(ctx context.Context, geoms []*models.ZoneGeometry) error
	// Reset rearranges every zone into the deterministic row-major grid and
	// persists the whole arrangement in one transaction.
	Reset(ctx context.Context) ([]*models.ZoneGeometry, error)
}

type geometryService struct {
	zoneRepo  repositories.ZoneRepository
	geomRepo  repositories.GeometryRepository
	cacheSvc  caching.CacheService
	editorCfg editor.Config
}

func NewGeometryService(zoneRepo repositories.ZoneRepository, geomRepo repositories.GeometryRepository, cacheSvc caching.CacheService, editorCfg editor.Config) GeometryService {
	return &geometryService{
		zoneRepo:  zoneRepo,
		geomRepo:  geomRepo,
		cacheSvc:  cacheSvc,
		editorCfg: editorCfg,
	}
}

func (s *geometryService) List(ctx context.Context) ([]*models.ZoneGeometry, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetGeometry(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}
	geoms, err := s.geomRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading geometry: %w", err)
	}
	s.primeCache(ctx, geoms)
	return geoms, nil
}

func (s *geometryService) Commit(ctx context.Context, geoms []*models.ZoneGeometry) error {
	if len(geoms) == 0 {
		return nil
	}
	if err := s.checkConstraints(ctx, geoms); err != nil {
		return err
	}
	if err := s.geomRepo.UpsertBatch(ctx, geoms); err != nil {
		return fmt.Errorf("persisting geometry: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *geometryService) Reset(ctx context.Context) ([]*models.ZoneGeometry, error) {
	zones, err := s.zoneRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing zones: %w", err)
	}
	ids := make([]uuid.UUID, len(zones))
	for i, z := range zones {
		ids[i] = z.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	arranged := editor.Arrange(ids, s.editorCfg)
	geoms := make([]*models.ZoneGeometry, 0, len(ids))
	for _, id := range ids {
		r := arranged[id]
		geoms = append(geoms, &models.ZoneGeometry{ZoneID: id, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
	}
	if err := s.geomRepo.UpsertBatch(ctx, geoms); err != nil {
		return nil, fmt.Errorf("persisting reset layout: %w", err)
	}
	s.invalidateCache(ctx)
	return geoms, nil
}

// checkConstraints verifies the batch keeps the committed state inside the
// canvas and free of overlaps, considering both the batch itself and the
// zones it does not touch.
func (s *geometryService) checkConstraints(ctx context.Context, batch []*models.ZoneGeometry) error {
	existing, err := s.geomRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading geometry: %w", err)
	}

	final := make(map[uuid.UUID]editor.Rect, len(existing)+len(batch))
	for _, g := range existing {
		final[g.ZoneID] = editor.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
	}
	for _, g := range batch {
		final[g.ZoneID] = editor.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
	}

	for _, g := range batch {
		r := final[g.ZoneID]
		if r.X < 0 || r.Y < 0 || r.Right() > s.editorCfg.CanvasWidth || r.Bottom() > s.editorCfg.CanvasHeight {
			return models.ErrGeometryConflict
		}
		for otherID, other := range final {
			if otherID == g.ZoneID {
				continue
			}
			if r.Overlaps(other) {
				return models.ErrGeometryConflict
			}
		}
	}
	return nil
}

func (s *geometryService) primeCache(ctx context.Context, geoms []*models.ZoneGeometry) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.SetGeometry(ctx, geoms, geometryTTL); err != nil {
		log.Printf("failed to cache geometry: %v", err)
	}
}

func (s *geometryService) invalidateCache(ctx context.Context) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.InvalidateGeometry(ctx); err != nil {
		log.Printf("failed to invalidate geometry cache: %v", err)
	}
}
