package domain

// Product is a catalog entry. Prices are in cents to avoid float drift
// when summing cart lines.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Featured    bool     `json:"featured"`
	Tags        []string `json:"tags,omitempty"`
}

// Catalog categories.
const (
	CategoryPearl      = "pearl"
	CategoryGlassFill  = "glass fill"
	CategoryZircon     = "zircon"
	CategoryMoissanite = "moissanite"
)

// Categories lists the known catalog categories in display order.
func Categories() []string {
	return []string{CategoryPearl, CategoryGlassFill, CategoryZircon, CategoryMoissanite}
}
