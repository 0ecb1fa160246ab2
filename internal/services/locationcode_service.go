package services

import (
	"strconv"
	"strings"

	"stockmap/internal/models"
)

// Location code formatting. A format either derives its pattern from the
// include flags (joined by the separator) or carries a custom pattern with
// literal {zone} {aisle} {shelf} {level} {bin} tokens.

// BuildPattern derives the pattern string from the format's include flags.
func BuildPattern(f models.LocationFormat) string {
	var tokens []string
	if f.IncludeZone {
		tokens = append(tokens, "{zone}")
	}
	if f.IncludeAisle {
		tokens = append(tokens, "{aisle}")
	}
	if f.IncludeShelf {
		tokens = append(tokens, "{shelf}")
	}
	if f.IncludeBin {
		tokens = append(tokens, "{bin}")
	}
	return strings.Join(tokens, f.Separator)
}

// FormatLocation renders a bin's full address from its hierarchy path.
// Missing path components render as empty strings; formatting never fails.
func FormatLocation(zone *models.Zone, aisle *models.Aisle, shelf *models.Shelf, bin *models.Bin, f models.LocationFormat) string {
	pattern := f.CustomPattern
	if pattern == "" {
		pattern = BuildPattern(f)
	}

	var zoneCode, aisleCode, shelfCode, level, binCode string
	if zone != nil {
		zoneCode = zone.Code
	}
	if aisle != nil {
		aisleCode = aisle.Code
	}
	if shelf != nil {
		shelfCode = shelf.Code
		level = strconv.Itoa(shelf.Level)
	}
	if bin != nil {
		binCode = bin.Code
	}

	return strings.NewReplacer(
		"{zone}", zoneCode,
		"{aisle}", aisleCode,
		"{shelf}", shelfCode,
		"{level}", level,
		"{bin}", binCode,
	).Replace(pattern)
}

// ChangeSeparator switches the format to a new separator. A derived pattern
// regenerates from the include flags on the next format call; a custom
// pattern has its previous separator characters rewritten in place.
func ChangeSeparator(f models.LocationFormat, separator string) models.LocationFormat {
	if f.CustomPattern != "" && f.Separator != "" {
		f.CustomPattern = strings.ReplaceAll(f.CustomPattern, f.Separator, separator)
	}
	f.Separator = separator
	return f
}
