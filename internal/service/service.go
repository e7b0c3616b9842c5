// Package service implements the marketplace operations on top of a
// persistence Backend.
package service

import (
	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/auth"
	"github.com/safar/localkirana/internal/catalog"
	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Stores    *StoreService
	Customers *CustomerService
	Bookings  *BookingService
	Requests  *RequestService
	Chats     *ChatService
}

func New(backend Backend, hasher auth.PasswordHasher, cat *catalog.Catalog, notifier Notifier, log logrus.FieldLogger) *Services {
	return &Services{
		Stores:    NewStoreService(backend, hasher, cat, log),
		Customers: NewCustomerService(backend, hasher, log),
		Bookings:  NewBookingService(backend, backend, backend, log),
		Requests:  NewRequestService(backend, backend, backend, notifier, log),
		Chats:     NewChatService(backend, log),
	}
}

// translate turns a repository error into an *Error. Errors that are not
// one of the shared sentinels are logged and reported as failure.
func translate(log logrus.FieldLogger, err error, failure string) error {
	var svcErr *Error
	switch {
	case errors.As(err, &svcErr):
		return err
	case errors.Is(err, database.ErrDuplicatePhone):
		return conflict("Phone number already registered", err)
	case errors.Is(err, database.ErrDuplicateEmail):
		return conflict("Email already registered", err)
	case errors.Is(err, database.ErrStoreNotFound):
		return notFound("Store not found", err)
	case errors.Is(err, database.ErrProductNotFound):
		return notFound("Product not found", err)
	case errors.Is(err, database.ErrCustomerNotFound):
		return notFound("Customer not found", err)
	case errors.Is(err, database.ErrBookingNotFound):
		return notFound("Booking not found", err)
	case errors.Is(err, database.ErrChatNotFound):
		return notFound("Chat not found", err)
	}

	log.WithError(err).Error(failure)
	return persistence(failure, err)
}

func validStatus(status string) bool {
	return status == models.StatusActive || status == models.StatusInactive
}

func missingField(name string) error {
	return validation("Missing required field: " + name)
}
