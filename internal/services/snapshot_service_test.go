package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stockmap/internal/models"
)

type MockObjectStore struct {
	mock.Mock
	lastUpload []byte
}

func (m *MockObjectStore) Upload(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.lastUpload = data
	args := m.Called(ctx, bucketName, objectName, objectSize, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error) {
	args := m.Called(ctx, bucketName, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockObjectStore) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func snapshotFixture() ([]*models.Zone, []*models.ZoneGeometry) {
	zoneID := uuid.New()
	zones := []*models.Zone{
		{
			ID:   zoneID,
			Name: "Receiving",
			Code: "RCV-1",
			Type: models.ZoneTypeReceiving,
			Aisles: []*models.Aisle{
				{
					ID:   uuid.New(),
					Name: "Aisle 1",
					Code: "01",
					Shelves: []*models.Shelf{
						{
							ID:    uuid.New(),
							Name:  "Shelf 1",
							Code:  "1",
							Level: 1,
							Bins: []*models.Bin{
								{ID: uuid.New(), Name: "Bin A", Code: "A", Position: 1, Capacity: intPtr(50), CurrentStock: 10},
							},
						},
					},
				},
			},
		},
	}
	geoms := []*models.ZoneGeometry{
		{ZoneID: zoneID, X: 0, Y: 0, Width: 200, Height: 150, UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
	}
	return zones, geoms
}

func TestSnapshotExportRoundTrips(t *testing.T) {
	zones, geoms := snapshotFixture()

	zoneRepo := new(MockZoneRepository)
	geomRepo := new(MockGeometryRepository)
	store := new(MockObjectStore)

	zoneRepo.On("ListTree", mock.Anything).Return(zones, nil)
	geomRepo.On("ListAll", mock.Anything).Return(geoms, nil)
	store.On("EnsureBucketExists", mock.Anything, "layouts").Return(nil)
	store.On("Upload", mock.Anything, "layouts", mock.Anything, mock.Anything, "application/json").Return(nil)

	svc := NewSnapshotService(zoneRepo, geomRepo, store, "layouts")
	objectName, err := svc.Export(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(objectName, "layout-snapshots/"))
	assert.True(t, strings.HasSuffix(objectName, ".json"))

	var got LayoutSnapshot
	require.NoError(t, json.Unmarshal(store.lastUpload, &got))
	assert.Equal(t, zones, got.Zones, "uploaded JSON must round-trip the source tree")
	assert.Equal(t, geoms, got.Geometry, "uploaded JSON must round-trip the geometry")
	assert.WithinDuration(t, time.Now().UTC(), got.ExportedAt, time.Minute)

	store.AssertExpectations(t)
}

func TestSnapshotExportFailsWhenBucketUnavailable(t *testing.T) {
	zones, geoms := snapshotFixture()

	zoneRepo := new(MockZoneRepository)
	geomRepo := new(MockGeometryRepository)
	store := new(MockObjectStore)

	zoneRepo.On("ListTree", mock.Anything).Return(zones, nil)
	geomRepo.On("ListAll", mock.Anything).Return(geoms, nil)
	store.On("EnsureBucketExists", mock.Anything, "layouts").Return(errors.New("minio down"))

	svc := NewSnapshotService(zoneRepo, geomRepo, store, "layouts")
	_, err := svc.Export(context.Background())

	require.Error(t, err)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSnapshotExportSurfacesRepositoryError(t *testing.T) {
	zoneRepo := new(MockZoneRepository)
	geomRepo := new(MockGeometryRepository)
	store := new(MockObjectStore)

	zoneRepo.On("ListTree", mock.Anything).Return([]*models.Zone(nil), errors.New("db down"))

	svc := NewSnapshotService(zoneRepo, geomRepo, store, "layouts")
	_, err := svc.Export(context.Background())

	require.Error(t, err)
	store.AssertNotCalled(t, "EnsureBucketExists", mock.Anything, mock.Anything)
}

func TestSnapshotListReturnsStoredObjects(t *testing.T) {
	zoneRepo := new(MockZoneRepository)
	geomRepo := new(MockGeometryRepository)
	store := new(MockObjectStore)

	names := []string{
		"layout-snapshots/20260801T120000Z.json",
		"layout-snapshots/20260802T090000Z.json",
	}
	store.On("ListObjects", mock.Anything, "layouts", "layout-snapshots/").Return(names, nil)

	svc := NewSnapshotService(zoneRepo, geomRepo, store, "layouts")
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, names, got)
}
