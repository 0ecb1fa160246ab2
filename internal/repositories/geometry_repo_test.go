package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockmap/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type GeometryRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    GeometryRepository
	zoneID  uuid.UUID
	context context.Context
}

func (suite *GeometryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewGeometryRepository(mock)
	suite.zoneID = uuid.New()
	suite.context = context.Background()
}

func (suite *GeometryRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestGeometryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(GeometryRepoTestSuite))
}

const geometryUpsertPattern = `
	INSERT INTO zone_geometry \(zone_id, x, y, width, height, updated_at\)
	VALUES \(\$1, \$2, \$3, \$4, \$5, NOW\(\)\)
	ON CONFLICT \(zone_id\) DO UPDATE SET x = EXCLUDED\.x, y = EXCLUDED\.y, width = EXCLUDED\.width, height = EXCLUDED\.height, updated_at = NOW\(\)
`

func (suite *GeometryRepoTestSuite) TestUpsert_Insert() {
	geom := &models.ZoneGeometry{ZoneID: suite.zoneID, X: 100, Y: 80, Width: 200, Height: 150}

	suite.mock.ExpectExec(geometryUpsertPattern).
		WithArgs(geom.ZoneID, geom.X, geom.Y, geom.Width, geom.Height).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Upsert(suite.context, geom)
	assert.NoError(suite.T(), err)
}

func (suite *GeometryRepoTestSuite) TestUpsert_ExistingRowUpdated() {
	geom := &models.ZoneGeometry{ZoneID: suite.zoneID, X: 220, Y: 0, Width: 200, Height: 150}

	suite.mock.ExpectExec(geometryUpsertPattern).
		WithArgs(geom.ZoneID, geom.X, geom.Y, geom.Width, geom.Height).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Upsert(suite.context, geom)
	assert.NoError(suite.T(), err)
}

func (suite *GeometryRepoTestSuite) TestUpsert_DatabaseError() {
	geom := &models.ZoneGeometry{ZoneID: suite.zoneID, X: 0, Y: 0, Width: 200, Height: 150}

	suite.mock.ExpectExec(geometryUpsertPattern).
		WithArgs(geom.ZoneID, geom.X, geom.Y, geom.Width, geom.Height).
		WillReturnError(errors.New("database connection failed"))

	err := suite.repo.Upsert(suite.context, geom)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "database connection failed")
}

func (suite *GeometryRepoTestSuite) TestUpsertBatch_SingleTransaction() {
	geoms := []*models.ZoneGeometry{
		{ZoneID: uuid.New(), X: 0, Y: 0, Width: 200, Height: 150},
		{ZoneID: uuid.New(), X: 220, Y: 0, Width: 200, Height: 150},
	}

	suite.mock.ExpectBegin()
	for _, g := range geoms {
		suite.mock.ExpectExec(geometryUpsertPattern).
			WithArgs(g.ZoneID, g.X, g.Y, g.Width, g.Height).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	suite.mock.ExpectCommit()

	err := suite.repo.UpsertBatch(suite.context, geoms)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *GeometryRepoTestSuite) TestUpsertBatch_RollsBackOnFailure() {
	geoms := []*models.ZoneGeometry{
		{ZoneID: uuid.New(), X: 0, Y: 0, Width: 200, Height: 150},
		{ZoneID: uuid.New(), X: 220, Y: 0, Width: 200, Height: 150},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(geometryUpsertPattern).
		WithArgs(geoms[0].ZoneID, geoms[0].X, geoms[0].Y, geoms[0].Width, geoms[0].Height).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(geometryUpsertPattern).
		WithArgs(geoms[1].ZoneID, geoms[1].X, geoms[1].Y, geoms[1].Width, geoms[1].Height).
		WillReturnError(errors.New("disk full"))
	suite.mock.ExpectRollback()

	err := suite.repo.UpsertBatch(suite.context, geoms)
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *GeometryRepoTestSuite) TestGetByZone_Success() {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT zone_id, x, y, width, height, updated_at FROM zone_geometry WHERE zone_id = \$1`).
		WithArgs(suite.zoneID).
		WillReturnRows(pgxmock.NewRows([]string{"zone_id", "x", "y", "width", "height", "updated_at"}).
			AddRow(suite.zoneID, 100.0, 80.0, 200.0, 150.0, now))

	got, err := suite.repo.GetByZone(suite.context, suite.zoneID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.zoneID, got.ZoneID)
	assert.Equal(suite.T(), 100.0, got.X)
	assert.Equal(suite.T(), 80.0, got.Y)
	assert.Equal(suite.T(), 200.0, got.Width)
	assert.Equal(suite.T(), 150.0, got.Height)
}

func (suite *GeometryRepoTestSuite) TestGetByZone_NotFound() {
	suite.mock.ExpectQuery(`SELECT zone_id, x, y, width, height, updated_at FROM zone_geometry WHERE zone_id = \$1`).
		WithArgs(suite.zoneID).
		WillReturnError(pgx.ErrNoRows)

	got, err := suite.repo.GetByZone(suite.context, suite.zoneID)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), got)
}

func (suite *GeometryRepoTestSuite) TestListAll_Success() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"zone_id", "x", "y", "width", "height", "updated_at"}).
		AddRow(uuid.New(), 0.0, 0.0, 200.0, 150.0, now).
		AddRow(uuid.New(), 220.0, 0.0, 200.0, 150.0, now)

	suite.mock.ExpectQuery(`SELECT zone_id, x, y, width, height, updated_at FROM zone_geometry ORDER BY zone_id`).
		WillReturnRows(rows)

	got, err := suite.repo.ListAll(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 2)
	assert.Equal(suite.T(), 220.0, got[1].X)
}

func (suite *GeometryRepoTestSuite) TestListAll_Empty() {
	suite.mock.ExpectQuery(`SELECT zone_id, x, y, width, height, updated_at FROM zone_geometry ORDER BY zone_id`).
		WillReturnRows(pgxmock.NewRows([]string{"zone_id", "x", "y", "width", "height", "updated_at"}))

	got, err := suite.repo.ListAll(suite.context)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), got)
}

func (suite *GeometryRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM zone_geometry WHERE zone_id = \$1`).
		WithArgs(suite.zoneID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.zoneID)
	assert.NoError(suite.T(), err)
}
