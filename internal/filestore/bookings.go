package filestore

import (
	"context"

	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
)

func (b *Backend) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return b.bookings.Update(func(records []models.Booking) ([]models.Booking, error) {
		booking.ID = nextID(len(records), func(i int) int64 { return records[i].ID })
		return append(records, *booking), nil
	})
}

func (b *Backend) UpdateBookingStatus(ctx context.Context, id int64, status string, at models.Timestamp) error {
	return b.bookings.Update(func(records []models.Booking) ([]models.Booking, error) {
		for i := range records {
			if records[i].ID == id {
				records[i].Status = status
				records[i].StatusUpdatedDate = &at
				return records, nil
			}
		}
		return nil, database.ErrBookingNotFound
	})
}

func (b *Backend) ListBookings(ctx context.Context) ([]models.Booking, error) {
	records, err := b.bookings.Load()
	if err != nil {
		return nil, err
	}

	newestFirst(records,
		func(r models.Booking) models.Timestamp { return r.BookingDate },
		func(r models.Booking) int64 { return r.ID })
	return records, nil
}
