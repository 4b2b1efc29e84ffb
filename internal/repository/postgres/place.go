package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"mancing-booking-backend/internal/domain"
	"mancing-booking-backend/internal/repository"
)

type placeRepository struct {
	db *sql.DB
}

func NewPlaceRepository(db *sql.DB) repository.PlaceRepository {
	return &placeRepository{db: db}
}

// GetByID loads the place together with its rental catalog so the price
// calculator sees one consistent snapshot of the listing.
func (r *placeRepository) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	const query = `SELECT id, owner_id, name, base_price, price_unit FROM places WHERE id = $1`
	p := &domain.Place{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.OwnerID, &p.Name, &p.BasePrice, &p.PriceUnit)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: place %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get place: %w", err)
	}

	const catalogQuery = `SELECT id, place_id, name, unit_price FROM rental_items WHERE place_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, catalogQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get rental catalog: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.RentalItem
		if err := rows.Scan(&item.ID, &item.PlaceID, &item.Name, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan rental item: %w", err)
		}
		p.Catalog = append(p.Catalog, item)
	}
	return p, rows.Err()
}
