package sqlstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
)

const bookingColumns = `id, customer_id, store_id, product_id, customer_name, customer_phone, store_name,
	store_phone, item_name, status, booking_date, status_updated_date`

func (b *Backend) CreateBooking(ctx context.Context, booking *models.Booking) error {
	id, err := insert(ctx, b.db,
		`INSERT INTO bookings (customer_id, store_id, product_id, customer_name, customer_phone, store_name,
			store_phone, item_name, status, booking_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.CustomerID, booking.StoreID, booking.ProductID, booking.CustomerName, booking.CustomerPhone,
		booking.StoreName, booking.StorePhone, booking.ItemName, booking.Status, booking.BookingDate)
	if err != nil {
		return errors.Wrap(err, "insert booking")
	}

	booking.ID = id
	return nil
}

func (b *Backend) UpdateBookingStatus(ctx context.Context, id int64, status string, at models.Timestamp) error {
	res, err := exec(ctx, b.db,
		`UPDATE bookings SET status = ?, status_updated_date = ? WHERE id = ?`, status, at, id)
	if err != nil {
		return errors.Wrap(err, "update booking status")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "get rows affected")
	}
	if n == 0 {
		return database.ErrBookingNotFound
	}
	return nil
}

func (b *Backend) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := selectAll(ctx, b.db, &bookings,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	return bookings, nil
}
