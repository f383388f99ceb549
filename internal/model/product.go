package model

// Product categories in the static catalog.
const (
	CategorySeeds       = "Seeds & Saplings"
	CategoryFertilizers = "Fertilizers & Pesticides"
	CategoryTools       = "Tools & Machinery"
	CategoryIrrigation  = "Irrigation"
)

// Product is one entry in the static catalog.
//
// The catalog is read-only and lives entirely in memory — there are no
// mutation endpoints and no persistence. Keywords hold search synonyms
// (including transliterated Hindi terms like "beej" for seeds) matched
// case-insensitively alongside the name.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	Image    string   `json:"image"`
	Keywords []string `json:"keywords"`
}
