package domain

// Ring size bounds for cart lines.
const (
	SizeMin     = 1
	SizeMax     = 5
	SizeDefault = 1
)

// CartItem is one cart line. A cart holds at most one line per product ID;
// adding the same product again bumps Quantity instead of appending.
type CartItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Featured    bool     `json:"featured"`
	Tags        []string `json:"tags,omitempty"`
	Quantity    int      `json:"quantity"`
	Size        int      `json:"size"`
}

// LineTotal returns price * quantity for this line.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// NewCartItem builds a quantity-1, default-size line from a product.
func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		Featured:    p.Featured,
		Tags:        p.Tags,
		Quantity:    1,
		Size:        SizeDefault,
	}
}

// ValidSize reports whether size is within the selectable range.
func ValidSize(size int) bool {
	return size >= SizeMin && size <= SizeMax
}
