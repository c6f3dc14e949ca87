package models

import "time"

type Species struct {
	ID             int64     `json:"id" db:"id"`
	ScientificName string    `json:"scientificName" db:"scientific_name"`
	EBirdID        string    `json:"eBirdId" db:"ebird_id"`
	Genus          *string   `json:"genus" db:"genus"`
	Family         *string   `json:"family" db:"family"`
	Order          *string   `json:"order" db:"order_name"`
	IUCNStatus     *string   `json:"iucnStatus" db:"iucn_status"`
	Size           *string   `json:"size" db:"size"`
	Summary        *string   `json:"summary" db:"summary"`
	RangeMapURL    *string   `json:"rangeMapUrl" db:"range_map_url"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

type SpeciesCommonName struct {
	ID          int64   `json:"id" db:"id"`
	SpeciesID   int64   `json:"speciesId" db:"species_id"`
	LangCode    string  `json:"langCode" db:"lang_code"`
	CommonName  string  `json:"commonName" db:"common_name"`
	Notes       *string `json:"notes" db:"notes"`
	IsPreferred bool    `json:"isPreferred" db:"is_preferred"`
}

// SpeciesWithCommonName is a species joined with at most one common name for
// the requested locale. CommonName is nil when the locale has no name.
type SpeciesWithCommonName struct {
	Species
	CommonName *string `json:"commonName"`
}

// SpeciesCard is the trimmed species shape used to build flashcard sessions.
type SpeciesCard struct {
	ID             int64  `json:"id" db:"id"`
	ScientificName string `json:"scientificName" db:"scientific_name"`
	EBirdID        string `json:"eBirdId" db:"ebird_id"`
}
