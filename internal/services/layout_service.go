package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"stockmap/internal/caching"
	"stockmap/internal/editor"
	"stockmap/internal/models"
	"stockmap/internal/repositories"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const maxCodeLength = 10

// LayoutService owns the Zone/Aisle/Shelf/Bin hierarchy. Every mutation is
// validated before any write; deletes with descendants require the caller to
// acknowledge the cascade and remove the whole subtree atomically.
type LayoutService interface {
	GetTree(ctx context.Context) ([]*models.Zone, error)
	GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error)

	CreateZone(ctx context.Context, zone *models.Zone) error
	UpdateZone(ctx context.Context, zone *models.Zone) error
	DeleteZone(ctx context.Context, id uuid.UUID, cascade bool) error

	CreateAisle(ctx context.Context, zoneID uuid.UUID, aisle *models.Aisle) error
	UpdateAisle(ctx context.Context, aisle *models.Aisle) error
	DeleteAisle(ctx context.Context, id uuid.UUID, cascade bool) error

	CreateShelf(ctx context.Context, aisleID uuid.UUID, shelf *models.Shelf) error
	UpdateShelf(ctx context.Context, shelf *models.Shelf) error
	DeleteShelf(ctx context.Context, id uuid.UUID, cascade bool) error

	CreateBin(ctx context.Context, shelfID uuid.UUID, bin *models.Bin) error
	UpdateBin(ctx context.Context, bin *models.Bin) error
	DeleteBin(ctx context.Context, id uuid.UUID) error
}

type layoutService struct {
	db        repositories.Database
	zoneRepo  repositories.ZoneRepository
	aisleRepo repositories.AisleRepository
	shelfRepo repositories.ShelfRepository
	binRepo   repositories.BinRepository
	geomRepo  repositories.GeometryRepository
	cacheSvc  caching.CacheService
	editorCfg editor.Config
}

func NewLayoutService(
	db repositories.Database,
	zoneRepo repositories.ZoneRepository,
	aisleRepo repositories.AisleRepository,
	shelfRepo repositories.ShelfRepository,
	binRepo repositories.BinRepository,
	geomRepo repositories.GeometryRepository,
	cacheSvc caching.CacheService,
	editorCfg editor.Config,
) LayoutService {
	return &layoutService{
		db:        db,
		zoneRepo:  zoneRepo,
		aisleRepo: aisleRepo,
		shelfRepo: shelfRepo,
		binRepo:   binRepo,
		geomRepo:  geomRepo,
		cacheSvc:  cacheSvc,
		editorCfg: editorCfg,
	}
}

func (s *layoutService) GetTree(ctx context.Context) ([]*models.Zone, error) {
	return s.zoneRepo.ListTree(ctx)
}

func (s *layoutService) GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	return s.zoneRepo.GetByID(ctx, id)
}

// --- validation helpers ---

// notBlank rejects strings that are empty after trimming.
func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}

// toValidationError converts an ozzo validation result into the service's
// ValidationError type, picking the first offending field deterministically.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		fields := make([]string, 0, len(errs))
		for f := range errs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		f := fields[0]
		return models.NewValidationError(f, errs[f].Error())
	}
	return err
}

func validateZoneFields(zone *models.Zone) error {
	return toValidationError(validation.ValidateStruct(zone,
		validation.Field(&zone.Name, validation.Required.Error("name is required"), validation.By(notBlank)),
		validation.Field(&zone.Code, validation.Required.Error("code is required"), validation.By(notBlank),
			validation.Length(1, maxCodeLength).Error(fmt.Sprintf("code must be at most %d characters", maxCodeLength))),
		validation.Field(&zone.Type, validation.By(func(v any) error {
			if t, _ := v.(models.ZoneType); !t.Valid() {
				return errors.New("unknown zone type")
			}
			return nil
		})),
	))
}

func validateAisleFields(aisle *models.Aisle) error {
	return toValidationError(validation.ValidateStruct(aisle,
		validation.Field(&aisle.Name, validation.Required.Error("name is required"), validation.By(notBlank)),
		validation.Field(&aisle.Code, validation.Required.Error("code is required"), validation.By(notBlank),
			validation.Length(1, maxCodeLength).Error(fmt.Sprintf("code must be at most %d characters", maxCodeLength))),
		validation.Field(&aisle.Unit, validation.In(models.UnitFeet, models.UnitMeters).Error("unit must be feet or meters")),
	))
}

func validateShelfFields(shelf *models.Shelf) error {
	return toValidationError(validation.ValidateStruct(shelf,
		validation.Field(&shelf.Name, validation.Required.Error("name is required"), validation.By(notBlank)),
		validation.Field(&shelf.Code, validation.Required.Error("code is required"), validation.By(notBlank),
			validation.Length(1, maxCodeLength).Error(fmt.Sprintf("code must be at most %d characters", maxCodeLength))),
		// Required catches the zero value that non-Required ozzo rules skip.
		validation.Field(&shelf.Level, validation.Required.Error("level must be at least 1"),
			validation.Min(1).Error("level must be at least 1")),
	))
}

func validateBinFields(bin *models.Bin) error {
	if err := toValidationError(validation.ValidateStruct(bin,
		validation.Field(&bin.Name, validation.Required.Error("name is required"), validation.By(notBlank)),
		validation.Field(&bin.Code, validation.Required.Error("code is required"), validation.By(notBlank),
			validation.Length(1, maxCodeLength).Error(fmt.Sprintf("code must be at most %d characters", maxCodeLength))),
		validation.Field(&bin.Position, validation.Required.Error("position must be at least 1"),
			validation.Min(1).Error("position must be at least 1")),
	)); err != nil {
		return err
	}
	if bin.Capacity != nil && *bin.Capacity <= 0 {
		return models.NewValidationError("capacity", "capacity must be greater than 0")
	}
	if bin.CurrentStock < 0 {
		return models.NewValidationError("current_stock", "current stock cannot be negative")
	}
	if bin.Capacity != nil && bin.CurrentStock > *bin.Capacity {
		return &models.CapacityViolation{BinCode: bin.Code, Capacity: *bin.Capacity, Requested: bin.CurrentStock}
	}
	return nil
}

// siblingNamed is the piece of a sibling needed for uniqueness checks.
type siblingNamed interface {
	ident() (id uuid.UUID, name, code string)
}

// checkUnique enforces case-insensitive name and code uniqueness among
// siblings, skipping the entity itself on update.
func checkUnique(id uuid.UUID, name, code string, siblings []siblingNamed) error {
	for _, sib := range siblings {
		sid, sname, scode := sib.ident()
		if sid == id {
			continue
		}
		if strings.EqualFold(scode, code) {
			return models.NewValidationError("code", fmt.Sprintf("code %q is already in use", code))
		}
		if strings.EqualFold(sname, name) {
			return models.NewValidationError("name", fmt.Sprintf("name %q is already in use", name))
		}
	}
	return nil
}

type zoneIdent struct{ z *models.Zone }
type aisleIdent struct{ a *models.Aisle }
type shelfIdent struct{ s *models.Shelf }
type binIdent struct{ b *models.Bin }

func (i zoneIdent) ident() (uuid.UUID, string, string)  { return i.z.ID, i.z.Name, i.z.Code }
func (i aisleIdent) ident() (uuid.UUID, string, string) { return i.a.ID, i.a.Name, i.a.Code }
func (i shelfIdent) ident() (uuid.UUID, string, string) { return i.s.ID, i.s.Name, i.s.Code }
func (i binIdent) ident() (uuid.UUID, string, string)   { return i.b.ID, i.b.Name, i.b.Code }

func (s *layoutService) checkZoneUnique(ctx context.Context, zone *models.Zone) error {
	existing, err := s.zoneRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing zones: %w", err)
	}
	sibs := make([]siblingNamed, len(existing))
	for i, z := range existing {
		sibs[i] = zoneIdent{z}
	}
	return checkUnique(zone.ID, zone.Name, zone.Code, sibs)
}

func (s *layoutService) checkAisleUnique(ctx context.Context, aisle *models.Aisle) error {
	existing, err := s.aisleRepo.ListByZone(ctx, aisle.ZoneID)
	if err != nil {
		return fmt.Errorf("listing aisles: %w", err)
	}
	sibs := make([]siblingNamed, len(existing))
	for i, a := range existing {
		sibs[i] = aisleIdent{a}
	}
	return checkUnique(aisle.ID, aisle.Name, aisle.Code, sibs)
}

func (s *layoutService) checkShelfUnique(ctx context.Context, shelf *models.Shelf) error {
	existing, err := s.shelfRepo.ListByAisle(ctx, shelf.AisleID)
	if err != nil {
		return fmt.Errorf("listing shelves: %w", err)
	}
	sibs := make([]siblingNamed, len(existing))
	for i, sh := range existing {
		sibs[i] = shelfIdent{sh}
	}
	return checkUnique(shelf.ID, shelf.Name, shelf.Code, sibs)
}

func (s *layoutService) checkBinUnique(ctx context.Context, bin *models.Bin) error {
	existing, err := s.binRepo.ListByShelf(ctx, bin.ShelfID)
	if err != nil {
		return fmt.Errorf("listing bins: %w", err)
	}
	sibs := make([]siblingNamed, len(existing))
	for i, b := range existing {
		sibs[i] = binIdent{b}
	}
	return checkUnique(bin.ID, bin.Name, bin.Code, sibs)
}

// --- zones ---

func (s *layoutService) CreateZone(ctx context.Context, zone *models.Zone) error {
	if zone.Type == "" {
		zone.Type = models.ZoneTypeStorage
	}
	if err := validateZoneFields(zone); err != nil {
		return err
	}
	if err := s.checkZoneUnique(ctx, zone); err != nil {
		return err
	}

	zone.ID = uuid.New()
	if err := s.zoneRepo.Create(ctx, zone); err != nil {
		return fmt.Errorf("creating zone: %w", err)
	}

	// Give the new zone a default, non-overlapping canvas position.
	existing, err := s.geomRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading geometry: %w", err)
	}
	rects := make([]editor.Rect, len(existing))
	for i, g := range existing {
		rects[i] = editor.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
	}
	slot := editor.FirstFreeSlot(rects, s.editorCfg)
	geom := &models.ZoneGeometry{ZoneID: zone.ID, X: slot.X, Y: slot.Y, Width: slot.Width, Height: slot.Height}
	if err := s.geomRepo.Upsert(ctx, geom); err != nil {
		return fmt.Errorf("creating zone geometry: %w", err)
	}

	s.invalidateCaches(ctx)
	return nil
}

func (s *layoutService) UpdateZone(ctx context.Context, zone *models.Zone) error {
	if err := validateZoneFields(zone); err != nil {
		return err
	}
	if err := s.checkZoneUnique(ctx, zone); err != nil {
		return err
	}
	if err := s.zoneRepo.Update(ctx, zone); err != nil {
		return fmt.Errorf("updating zone: %w", err)
	}
	s.invalidateCaches(ctx)
	return nil
}

// DeleteZone removes a zone, its entire subtree and its geometry entry in
// one transaction. Descendant ids are collected bottom-up first so the
// removal is a single observable operation.
func (s *layoutService) DeleteZone(ctx context.Context, id uuid.UUID, cascade bool) error {
	if _, err := s.zoneRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if !cascade {
		n, err := s.aisleRepo.CountByZone(ctx, id)
		if err != nil {
			return fmt.Errorf("counting aisles: %w", err)
		}
		if n > 0 {
			return models.ErrCascadeNotAcknowledged
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback(ctx)

	aisleIDs, err := collectIDs(ctx, tx, `SELECT id FROM aisles WHERE zone_id = $1`, id)
	if err != nil {
		return err
	}
	shelfIDs, err := collectChildIDs(ctx, tx, `SELECT id FROM shelves WHERE aisle_id = ANY($1)`, aisleIDs)
	if err != nil {
		return err
	}
	binIDs, err := collectChildIDs(ctx, tx, `SELECT id FROM bins WHERE shelf_id = ANY($1)`, shelfIDs)
	if err != nil {
		return err
	}

	if len(aisleIDs) > 0 && !cascade {
		return models.ErrCascadeNotAcknowledged
	}

	for _, del := range []struct {
		query string
		ids   []uuid.UUID
	}{
		{`DELETE FROM bins WHERE id = ANY($1)`, binIDs},
		{`DELETE FROM shelves WHERE id = ANY($1)`, shelfIDs},
		{`DELETE FROM aisles WHERE id = ANY($1)`, aisleIDs},
	} {
		if len(del.ids) == 0 {
			continue
		}
		if _, err := tx.Exec(ctx, del.query, del.ids); err != nil {
			return fmt.Errorf("deleting descendants: %w", err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM zone_geometry WHERE zone_id = $1`, id); err != nil {
		return fmt.Errorf("deleting zone geometry: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM zones WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting zone: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	s.invalidateCaches(ctx)
	return nil
}

// --- aisles ---

func (s *layoutService) CreateAisle(ctx context.Context, zoneID uuid.UUID, aisle *models.Aisle) error {
	if _, err := s.zoneRepo.GetByID(ctx, zoneID); err != nil {
		return err
	}
	aisle.ZoneID = zoneID
	if aisle.Unit == "" {
		aisle.Unit = models.UnitFeet
	}
	if err := validateAisleFields(aisle); err != nil {
		return err
	}
	if err := s.checkAisleUnique(ctx, aisle); err != nil {
		return err
	}
	aisle.ID = uuid.New()
	if err := s.aisleRepo.Create(ctx, aisle); err != nil {
		return fmt.Errorf("creating aisle: %w", err)
	}
	s.invalidateCaches(ctx)
	return nil
}

func (s *layoutService) UpdateAisle(ctx context.Context, aisle *models.Aisle) error {
	if err := validateAisleFields(aisle); err != nil {
		return err
	}
	if err := s.checkAisleUnique(ctx, aisle); err != nil {
		return err
	}
	if err := s.aisleRepo.Update(ctx, aisle); err != nil {
		return fmt.Errorf("updating aisle: %w", err)
	}
	s.invalidateCaches(ctx)
	return nil
}

func (s *layoutService) DeleteAisle(ctx context.Context, id uuid.UUID, cascade bool) error {
	if _, err := s.aisleRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if !cascade {
		n, err := s.shelfRepo.CountByAisle(ctx, id)
		if err != nil {
			return fmt.Errorf("counting shelves: %w", err)
		}
		if n > 0 {
			return models.ErrCascadeNotAcknowledged
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback(ctx)

	shelfIDs, err := collectIDs(ctx, tx, `SELECT id FROM shelves WHERE aisle_id = $1`, id)
	if err != nil {
		return err
	}
	binIDs, err := collectChildIDs(ctx, tx, `SELECT id FROM bins WHERE shelf_id = ANY($1)`, shelfIDs)
	if err != nil {
		return err
	}

	if len(shelfIDs) > 0 && !cascade {
		return models.ErrCascadeNotAcknowledged
	}

	if len(binIDs) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM bins WHERE id = ANY($1)`, binIDs); err != nil {
			return fmt.Errorf("deleting descendants: %w", err)
		}
	}
	if len(shelfIDs) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM shelves WHERE id = ANY($1)`, shelfIDs); err != nil {
			return fmt.Errorf("deleting descendants: %w", err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM aisles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting aisle: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	s.invalidateCaches(ctx)
	return nil
}

// --- shelves ---

func (s *layoutService) CreateShelf(ctx context.Context, aisleID uuid.UUID, shelf *models.Shelf) error {
	if _, err := s.aisleRepo.GetByID(ctx, aisleID); err != nil {
		return err
	}
	shelf.AisleID = aisleID
	if err := validateShelfFields(shelf); err != nil {
		return err
	}
	if err := s.checkShelfUnique(ctx, shelf); err != nil {
		return err
	}
	shelf.ID = uuid.New()
	if err := s.shelfRepo.Create(ctx, shelf); err != nil {
		return fmt.Errorf("creating shelf: %w", err)
	}
	s.invalidateCaches(ctx)
	return nil
}

func (s *layoutService) UpdateShelf(ctx context.Context, shelf *models.Shelf) error {
	if err := validateShelfFields(shelf); err != nil {
		return err
	}
	if err := s.checkShelfUnique(ctx, shelf); err != nil {
		return err
	}
	if err := s.shelfRepo.Update(ctx, shelf); err != nil {
		return fmt.Errorf("updating shelf: %w", err)
	}
	s.invalidateCaches(ctx)
	return nil
}

func (s *layoutService) DeleteShelf(ctx context.Context, id uuid.UUID, cascade bool) error {
	if _, err := s.shelfRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if !cascade {
		n, err := s.binRepo.CountByShelf(ctx, id)
		if err != nil {
			return fmt.Errorf("counting bins: %w", err)
		}
		if n > 0 {
			return models.ErrCascadeNotAcknowledged
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback(ctx)

	binIDs, err := collectIDs(ctx, tx, `SELECT id FROM bins WHERE shelf_id = $1`, id)
	if err != nil {
		return err
	}
	if len(binIDs) > 0 && !cascade {
		return models.ErrCascadeNotAcknowledged
	}
	if len(binIDs) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM bins WHERE id = ANY($1)`, binIDs); err != nil {
			return fmt.Errorf("deleting descendants: %w", err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM shelves WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting shelf: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	s.invalidateCaches(ctx)
	return nil
}

// --- bins ---

func (s *layoutService) CreateBin(ctx context.Context, shelfID uuid.UUID, bin *models.Bin) error {
	if _, err := s.shelfRepo.GetByID(ctx, shelfID); err != nil {
		return err
	}
	bin.ShelfID = shelfID
	if err := validateBinFields(bin); err != nil {
		return err
	}
	if err := s.checkBinUnique(ctx, bin); err != nil {
		return err
	}
	bin.ID = uuid.New()
	if err := s.binRepo.Create(ctx, bin); err != nil {
		return fmt.Errorf("creating bin: %w", err)
	}
	s.invalidateCaches(ctx)
	return nil
}

func (s *layoutService) UpdateBin(ctx context.Context, bin *models.Bin) error {
	if err := validateBinFields(bin); err != nil {
		return err
	}
	if err := s.checkBinUnique(ctx, bin); err != nil {
		return err
	}
	if err := s.binRepo.Update(ctx, bin); err != nil {
		return fmt.Errorf("updating bin: %w", err)
	}
	s.invalidateCaches(ctx)
	return nil
}

func (s *layoutService) DeleteBin(ctx context.Context, id uuid.UUID) error {
	if _, err := s.binRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.binRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting bin: %w", err)
	}
	s.invalidateCaches(ctx)
	return nil
}

func (s *layoutService) invalidateCaches(ctx context.Context) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.InvalidateLayoutStats(ctx); err != nil {
		log.Printf("failed to invalidate layout stats cache: %v", err)
	}
}

// collectIDs runs a single-parameter id query inside the delete transaction.
func collectIDs(ctx context.Context, tx pgx.Tx, query string, arg any) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("collecting descendant ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// collectChildIDs is collectIDs over a set of parent ids; an empty parent
// set short-circuits to no children.
func collectChildIDs(ctx context.Context, tx pgx.Tx, query string, parents []uuid.UUID) ([]uuid.UUID, error) {
	if len(parents) == 0 {
		return nil, nil
	}
	return collectIDs(ctx, tx, query, parents)
}
