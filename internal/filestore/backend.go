// Package filestore keeps every collection as a JSON array in a data
// directory.
package filestore

import (
	"context"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/auth"
	"github.com/safar/localkirana/internal/models"
	"github.com/sirupsen/logrus"
)

type storeRecord struct {
	models.Store
	Password   string `json:"password"`
	ProductSeq int64  `json:"productSeq,omitempty"`
}

func newStoreRecord(s models.Store) storeRecord {
	return storeRecord{Store: s, Password: s.PasswordHash}
}

func (r storeRecord) model() models.Store {
	s := r.Store
	s.PasswordHash = r.Password
	s.Products = make([]models.Product, len(r.Products))
	copy(s.Products, r.Products)
	for i := range s.Products {
		s.Products[i].StoreID = s.ID
	}
	return s
}

type customerRecord struct {
	models.Customer
	Password string `json:"password"`
}

func newCustomerRecord(c models.Customer) customerRecord {
	return customerRecord{Customer: c, Password: c.PasswordHash}
}

func (r customerRecord) model() models.Customer {
	c := r.Customer
	c.PasswordHash = r.Password
	return c
}

type chatRecord struct {
	ChatID          string             `json:"chatId"`
	Participant1    models.Participant `json:"participant1"`
	Participant2    models.Participant `json:"participant2"`
	LastMessage     string             `json:"lastMessage"`
	LastMessageTime *models.Timestamp  `json:"lastMessageTime"`
}

type Backend struct {
	dir string

	stores    *collection[storeRecord]
	customers *collection[customerRecord]
	bookings  *collection[models.Booking]
	requests  *collection[models.Request]
	chats     *collection[chatRecord]
	messages  *collection[models.Message]
}

// Open prepares dir, creating any missing collection. Missing stores and
// customers collections are seeded with sample accounts whose passwords are
// hashed with hasher.
func Open(dir string, hasher auth.PasswordHasher, log logrus.FieldLogger) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data directory %s", dir)
	}

	b := &Backend{
		dir:       dir,
		stores:    newCollection[storeRecord](dir, "stores"),
		customers: newCollection[customerRecord](dir, "customers"),
		bookings:  newCollection[models.Booking](dir, "bookings"),
		requests:  newCollection[models.Request](dir, "requests"),
		chats:     newCollection[chatRecord](dir, "chats"),
		messages:  newCollection[models.Message](dir, "messages"),
	}

	seeded, err := b.stores.ensure(func() ([]storeRecord, error) { return sampleStores(hasher) })
	if err != nil {
		return nil, err
	}
	if seeded {
		log.WithField("collection", "stores").Info("seeded sample data")
	}

	seeded, err = b.customers.ensure(func() ([]customerRecord, error) { return sampleCustomers(hasher) })
	if err != nil {
		return nil, err
	}
	if seeded {
		log.WithField("collection", "customers").Info("seeded sample data")
	}

	if _, err := b.bookings.ensure(empty[models.Booking]); err != nil {
		return nil, err
	}
	if _, err := b.requests.ensure(empty[models.Request]); err != nil {
		return nil, err
	}
	if _, err := b.chats.ensure(empty[chatRecord]); err != nil {
		return nil, err
	}
	if _, err := b.messages.ensure(empty[models.Message]); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Backend) Ping(ctx context.Context) error {
	if _, err := os.Stat(b.dir); err != nil {
		return errors.Wrap(err, "stat data directory")
	}
	return nil
}

func (b *Backend) Close() error {
	return nil
}

func empty[T any]() ([]T, error) {
	return []T{}, nil
}

// nextID returns one past the largest id among n records.
func nextID(n int, id func(i int) int64) int64 {
	var highest int64
	for i := 0; i < n; i++ {
		if v := id(i); v > highest {
			highest = v
		}
	}
	return highest + 1
}

// newestFirst orders records by descending time, then descending id.
func newestFirst[T any](records []T, at func(T) models.Timestamp, id func(T) int64) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := at(records[i]), at(records[j])
		if !ti.Equal(tj.Time) {
			return ti.After(tj.Time)
		}
		return id(records[i]) > id(records[j])
	})
}
