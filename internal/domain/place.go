package domain

type PriceUnit string

const (
	// PriceUnitPerHour charges the base price per person per rented hour.
	PriceUnitPerHour PriceUnit = "per_hour"
	// PriceUnitPerDay is a flat per-visit charge per person; the booking
	// duration does not multiply the ticket price.
	PriceUnitPerDay PriceUnit = "per_day"
)

// Place is a read-only input owned by the listing catalog. The booking core
// consumes only the pricing fields and the rental catalog at booking time.
type Place struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"` // mitra who manages the listing
	Name      string    `json:"name"`
	BasePrice int64     `json:"base_price"` // integer rupiah
	PriceUnit PriceUnit `json:"price_unit"`
	// Catalog holds the place's rentable equipment with current prices,
	// loaded together with the place at booking time.
	Catalog []RentalItem `json:"catalog,omitempty"`
}

// RentalItem is one rentable equipment entry in a place's catalog, with its
// current (live) price. Orders snapshot this price; they never reference it.
type RentalItem struct {
	ID        int64  `json:"id"`
	PlaceID   int64  `json:"place_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"` // integer rupiah
}

// ItemSelection is a client cart entry: which catalog item and how many.
type ItemSelection struct {
	ItemID   int64 `json:"item_id"`
	Quantity int32 `json:"quantity"`
}
