package models

// LocationFormat controls how a bin's full address is rendered. When
// CustomPattern is empty the pattern is derived from the include flags,
// joined by Separator; otherwise CustomPattern is used verbatim with
// {zone} {aisle} {shelf} {level} {bin} token substitution.
type LocationFormat struct {
	CustomPattern string `json:"pattern,omitempty"`
	Separator     string `json:"separator"`
	IncludeZone   bool   `json:"include_zone"`
	IncludeAisle  bool   `json:"include_aisle"`
	IncludeShelf  bool   `json:"include_shelf"`
	IncludeBin    bool   `json:"include_bin"`
}

// DefaultLocationFormat is the zone-aisle-shelf-bin address joined by dashes.
func DefaultLocationFormat() LocationFormat {
	return LocationFormat{
		Separator:    "-",
		IncludeZone:  true,
		IncludeAisle: true,
		IncludeShelf: true,
		IncludeBin:   true,
	}
}
