package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
	"github.com/sirupsen/logrus"
)

// BookingDraft identifies the customer and store by phone, or by id when the
// phone is empty.
type BookingDraft struct {
	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	StoreID       int64
	StoreName     string
	StorePhone    string
	ItemName      string
}

const msgInvalidBooking = "Invalid booking data"

type BookingService struct {
	bookings  BookingRepository
	customers CustomerRepository
	stores    StoreRepository
	log       logrus.FieldLogger
	now       func() models.Timestamp
}

func NewBookingService(bookings BookingRepository, customers CustomerRepository, stores StoreRepository, log logrus.FieldLogger) *BookingService {
	return &BookingService{
		bookings:  bookings,
		customers: customers,
		stores:    stores,
		log:       log,
		now:       models.Now,
	}
}

func (s *BookingService) Create(ctx context.Context, draft BookingDraft) (*models.Booking, error) {
	if draft.ItemName == "" {
		return nil, validation(msgInvalidBooking)
	}

	customer, err := lookupCustomer(ctx, s.customers, draft.CustomerPhone, draft.CustomerID)
	if err != nil {
		return nil, s.lookupErr(err)
	}
	store, err := lookupStore(ctx, s.stores, draft.StorePhone, draft.StoreID)
	if err != nil {
		return nil, s.lookupErr(err)
	}

	booking := &models.Booking{
		CustomerID:    customer.ID,
		StoreID:       store.ID,
		CustomerName:  firstNonEmpty(draft.CustomerName, customer.Name),
		CustomerPhone: firstNonEmpty(draft.CustomerPhone, customer.Phone),
		StoreName:     firstNonEmpty(draft.StoreName, store.ShopName),
		StorePhone:    firstNonEmpty(draft.StorePhone, store.Phone),
		ItemName:      draft.ItemName,
		Status:        models.BookingStatusPending,
		BookingDate:   s.now(),
	}
	for _, p := range store.Products {
		if p.Name == draft.ItemName {
			id := p.ID
			booking.ProductID = &id
			break
		}
	}

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, translate(s.log, err, "Failed to save booking")
	}
	return booking, nil
}

func (s *BookingService) lookupErr(err error) error {
	if errors.Is(err, errNoReference) || errors.Is(err, database.ErrCustomerNotFound) || errors.Is(err, database.ErrStoreNotFound) {
		return validation(msgInvalidBooking)
	}
	return translate(s.log, err, "Failed to save booking")
}

func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if id == 0 || status == "" {
		return validation("Booking ID and status required")
	}

	if err := s.bookings.UpdateBookingStatus(ctx, id, status, s.now()); err != nil {
		return translate(s.log, err, "Failed to update booking status")
	}
	return nil
}

// List returns bookings newest first.
func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, translate(s.log, err, "Failed to load bookings")
	}
	return bookings, nil
}

var errNoReference = errors.New("no phone or id given")

func lookupCustomer(ctx context.Context, repo CustomerRepository, phone string, id int64) (*models.Customer, error) {
	switch {
	case phone != "":
		return repo.GetCustomerByPhone(ctx, phone)
	case id != 0:
		return repo.GetCustomerByID(ctx, id)
	}
	return nil, errNoReference
}

func lookupStore(ctx context.Context, repo StoreRepository, phone string, id int64) (*models.Store, error) {
	switch {
	case phone != "":
		return repo.GetStoreByPhone(ctx, phone)
	case id != 0:
		return repo.GetStoreByID(ctx, id)
	}
	return nil, errNoReference
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
