package services

import (
	"testing"

	"stockmap/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleHierarchy() (*models.Zone, *models.Aisle, *models.Shelf, *models.Bin) {
	zone := &models.Zone{Name: "Main Storage", Code: "A"}
	aisle := &models.Aisle{Name: "Aisle 1", Code: "01"}
	shelf := &models.Shelf{Name: "Shelf 2", Code: "2", Level: 2}
	bin := &models.Bin{Name: "Bin B", Code: "B"}
	return zone, aisle, shelf, bin
}

func TestBuildPattern(t *testing.T) {
	tests := []struct {
		name   string
		format models.LocationFormat
		want   string
	}{
		{"default all components", models.DefaultLocationFormat(), "{zone}-{aisle}-{shelf}-{bin}"},
		{
			"dot separator",
			models.LocationFormat{Separator: ".", IncludeZone: true, IncludeAisle: true, IncludeShelf: true, IncludeBin: true},
			"{zone}.{aisle}.{shelf}.{bin}",
		},
		{
			"zone and bin only",
			models.LocationFormat{Separator: "-", IncludeZone: true, IncludeBin: true},
			"{zone}-{bin}",
		},
		{"no components", models.LocationFormat{Separator: "-"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPattern(tt.format))
		})
	}
}

func TestFormatLocationCustomPattern(t *testing.T) {
	zone, aisle, shelf, bin := sampleHierarchy()

	format := models.LocationFormat{CustomPattern: "{zone}-{aisle}-{shelf}-{bin}", Separator: "-"}
	assert.Equal(t, "A-01-2-B", FormatLocation(zone, aisle, shelf, bin, format))

	format.CustomPattern = "Z{zone}/L{level}/{bin}"
	assert.Equal(t, "ZA/L2/B", FormatLocation(zone, aisle, shelf, bin, format))
}

func TestFormatLocationDerivedPattern(t *testing.T) {
	zone, aisle, shelf, bin := sampleHierarchy()

	assert.Equal(t, "A-01-2-B", FormatLocation(zone, aisle, shelf, bin, models.DefaultLocationFormat()))

	format := models.LocationFormat{Separator: ".", IncludeZone: true, IncludeAisle: true, IncludeBin: true}
	assert.Equal(t, "A.01.B", FormatLocation(zone, aisle, shelf, bin, format))
}

func TestFormatLocationMissingComponents(t *testing.T) {
	zone, aisle, _, bin := sampleHierarchy()

	got := FormatLocation(zone, aisle, nil, bin, models.DefaultLocationFormat())
	assert.Equal(t, "A-01--B", got, "missing components render empty, formatting never fails")

	assert.Equal(t, "---", FormatLocation(nil, nil, nil, nil, models.DefaultLocationFormat()))
}

func TestChangeSeparator(t *testing.T) {
	derived := models.DefaultLocationFormat()
	derived = ChangeSeparator(derived, ".")
	assert.Equal(t, ".", derived.Separator)
	assert.Equal(t, "{zone}.{aisle}.{shelf}.{bin}", BuildPattern(derived))

	custom := models.LocationFormat{CustomPattern: "{zone}-{aisle}-{bin}", Separator: "-"}
	custom = ChangeSeparator(custom, "/")
	assert.Equal(t, "{zone}/{aisle}/{bin}", custom.CustomPattern)
	assert.Equal(t, "/", custom.Separator)
}

// Changing the separator and formatting again must keep the same components
// in the same order, only re-joined.
func TestSeparatorChangeRoundTrip(t *testing.T) {
	zone, aisle, shelf, bin := sampleHierarchy()

	format := models.DefaultLocationFormat()
	assert.Equal(t, "A-01-2-B", FormatLocation(zone, aisle, shelf, bin, format))

	format = ChangeSeparator(format, ".")
	assert.Equal(t, "A.01.2.B", FormatLocation(zone, aisle, shelf, bin, format))

	format = ChangeSeparator(format, "-")
	assert.Equal(t, "A-01-2-B", FormatLocation(zone, aisle, shelf, bin, format))
}
