package service

import (
	"context"

	"github.com/safar/localkirana/internal/models"
)

// StoreRepository persists stores and their product lists. Lookups return
// database.ErrStoreNotFound / database.ErrProductNotFound, writes that would
// break phone or email uniqueness return database.ErrDuplicatePhone or
// database.ErrDuplicateEmail, phone being checked first.
type StoreRepository interface {
	// CreateStore assigns store.ID and the ids of its products.
	CreateStore(ctx context.Context, store *models.Store) error
	GetStoreByID(ctx context.Context, id int64) (*models.Store, error)
	GetStoreByPhone(ctx context.Context, phone string) (*models.Store, error)
	ListStores(ctx context.Context) ([]models.Store, error)
	UpdateStore(ctx context.Context, id int64, patch models.StorePatch) error
	SetStorePassword(ctx context.Context, id int64, passwordHash string) error

	// AddProduct appends product to the store and assigns product.ID.
	AddProduct(ctx context.Context, storeID int64, product *models.Product) error
	UpdateProduct(ctx context.Context, storeID int64, product models.Product) error
	DeleteProduct(ctx context.Context, storeID, productID int64) error
}

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, patch models.CustomerPatch) error
	SetCustomerPassword(ctx context.Context, id int64, passwordHash string) error
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, id int64, status string, at models.Timestamp) error
	// ListBookings returns bookings newest first.
	ListBookings(ctx context.Context) ([]models.Booking, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *models.Request) error
	// ListRequests returns requests newest first.
	ListRequests(ctx context.Context) ([]models.Request, error)
}

type ChatRepository interface {
	// AppendMessage records msg and assigns msg.ID. When chat is not nil the
	// chat is created if it does not exist yet and its last message is set
	// to msg, atomically with the insert.
	AppendMessage(ctx context.Context, chat *models.Chat, msg *models.Message) error
	// ListChats returns chats by newest last message, each with its messages
	// oldest first.
	ListChats(ctx context.Context) ([]models.Chat, error)
}

// Backend is a complete persistence backend.
type Backend interface {
	StoreRepository
	CustomerRepository
	BookingRepository
	RequestRepository
	ChatRepository

	Ping(ctx context.Context) error
	Close() error
}
