package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockmap/internal/models"
	"stockmap/internal/repositories"
)

const snapshotPrefix = "layout-snapshots/"

// LayoutSnapshot is the exported image of a layout: the full hierarchy plus
// the committed geometry, good enough to restore or audit a layout later.
type LayoutSnapshot struct {
	ExportedAt time.Time              `json:"exported_at"`
	Zones      []*models.Zone         `json:"zones"`
	Geometry   []*models.ZoneGeometry `json:"geometry"`
}

// SnapshotService exports layout snapshots to object storage.
type SnapshotService interface {
	Export(ctx context.Context) (string, error)
	List(ctx context.Context) ([]string, error)
}

type snapshotService struct {
	zoneRepo repositories.ZoneRepository
	geomRepo repositories.GeometryRepository
	store    ObjectStore
	bucket   string
}

func NewSnapshotService(zoneRepo repositories.ZoneRepository, geomRepo repositories.GeometryRepository, store ObjectStore, bucket string) SnapshotService {
	return &snapshotService{
		zoneRepo: zoneRepo,
		geomRepo: geomRepo,
		store:    store,
		bucket:   bucket,
	}
}

// Export captures the current layout and uploads it as a timestamped JSON
// object. Returns the object name.
func (s *snapshotService) Export(ctx context.Context) (string, error) {
	zones, err := s.zoneRepo.ListTree(ctx)
	if err != nil {
		return "", fmt.Errorf("loading layout: %w", err)
	}
	geoms, err := s.geomRepo.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("loading geometry: %w", err)
	}

	snapshot := LayoutSnapshot{
		ExportedAt: time.Now().UTC(),
		Zones:      zones,
		Geometry:   geoms,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := s.store.EnsureBucketExists(ctx, s.bucket); err != nil {
		return "", fmt.Errorf("preparing bucket: %w", err)
	}
	objectName := snapshotPrefix + snapshot.ExportedAt.Format("20060102T150405Z") + ".json"
	if err := s.store.Upload(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return "", fmt.Errorf("uploading snapshot: %w", err)
	}
	return objectName, nil
}

func (s *snapshotService) List(ctx context.Context) ([]string, error) {
	return s.store.ListObjects(ctx, s.bucket, snapshotPrefix)
}
