package utils

import (
	"fmt"

	"mancing-booking-backend/internal/domain"
)

// Quote is the detailed cost breakdown for one booking cart. All amounts are
// integer rupiah; no floating point is involved anywhere in the calculation.
type Quote struct {
	TicketCost    int64
	EquipmentCost int64
	TotalCost     int64
	LineItems     []domain.OrderLineItem
}

// ComputeBookingCost computes the authoritative total for a booking cart from
// the place's live pricing and rental catalog. It is pure: safe to call on
// every cart change, and called again server-side at booking time so a
// client-supplied total is never trusted.
//
// Ticket pricing depends on the place's price unit:
//   - per_hour: base price * headcount * duration (hours)
//   - per_day:  flat per visit, base price * headcount; duration does not
//     multiply the ticket price
func ComputeBookingCost(place *domain.Place, duration, headcount int32, selections []domain.ItemSelection) (Quote, error) {
	if duration <= 0 {
		return Quote{}, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrValidation, duration)
	}
	if headcount <= 0 {
		return Quote{}, fmt.Errorf("%w: headcount must be positive, got %d", domain.ErrValidation, headcount)
	}

	var ticket int64
	switch place.PriceUnit {
	case domain.PriceUnitPerHour:
		ticket = place.BasePrice * int64(headcount) * int64(duration)
	case domain.PriceUnitPerDay:
		ticket = place.BasePrice * int64(headcount)
	default:
		return Quote{}, fmt.Errorf("%w: unknown price unit %q", domain.ErrValidation, place.PriceUnit)
	}

	quote := Quote{TicketCost: ticket}
	for _, sel := range selections {
		if sel.Quantity < 0 {
			return Quote{}, fmt.Errorf("%w: negative quantity for item %d", domain.ErrValidation, sel.ItemID)
		}
		if sel.Quantity == 0 {
			// Deselected cart rows are dropped, never stored as zero rows.
			continue
		}
		item, err := findCatalogItem(place, sel.ItemID)
		if err != nil {
			return Quote{}, err
		}
		quote.EquipmentCost += int64(sel.Quantity) * item.UnitPrice
		quote.LineItems = append(quote.LineItems, domain.OrderLineItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  sel.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	quote.TotalCost = quote.TicketCost + quote.EquipmentCost
	return quote, nil
}

func findCatalogItem(place *domain.Place, itemID int64) (domain.RentalItem, error) {
	for _, item := range place.Catalog {
		if item.ID == itemID {
			return item, nil
		}
	}
	return domain.RentalItem{}, fmt.Errorf("%w: item %d is not in the rental catalog of place %d", domain.ErrValidation, itemID, place.ID)
}
