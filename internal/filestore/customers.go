package filestore

import (
	"context"

	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
)

func (b *Backend) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return b.customers.Update(func(records []customerRecord) ([]customerRecord, error) {
		if err := checkCustomerUnique(records, 0, customer.Phone, customer.Email); err != nil {
			return nil, err
		}

		customer.ID = nextID(len(records), func(i int) int64 { return records[i].ID })
		return append(records, newCustomerRecord(*customer)), nil
	})
}

func (b *Backend) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	return b.findCustomer(func(c *customerRecord) bool { return c.ID == id })
}

func (b *Backend) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return b.findCustomer(func(c *customerRecord) bool { return c.Phone == phone })
}

func (b *Backend) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	records, err := b.customers.Load()
	if err != nil {
		return nil, err
	}

	customers := make([]models.Customer, len(records))
	for i, rec := range records {
		customers[i] = rec.model()
	}
	return customers, nil
}

func (b *Backend) UpdateCustomer(ctx context.Context, id int64, patch models.CustomerPatch) error {
	return b.updateCustomer(id, func(records []customerRecord, rec *customerRecord) error {
		phone, email := rec.Phone, rec.Email
		if patch.Phone != nil {
			phone = *patch.Phone
		}
		if patch.Email != nil {
			email = *patch.Email
		}
		if err := checkCustomerUnique(records, id, phone, email); err != nil {
			return err
		}

		patch.Apply(&rec.Customer)
		return nil
	})
}

func (b *Backend) SetCustomerPassword(ctx context.Context, id int64, passwordHash string) error {
	return b.updateCustomer(id, func(_ []customerRecord, rec *customerRecord) error {
		rec.Password = passwordHash
		return nil
	})
}

func (b *Backend) findCustomer(match func(*customerRecord) bool) (*models.Customer, error) {
	records, err := b.customers.Load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if match(&records[i]) {
			c := records[i].model()
			return &c, nil
		}
	}
	return nil, database.ErrCustomerNotFound
}

func (b *Backend) updateCustomer(id int64, fn func(records []customerRecord, rec *customerRecord) error) error {
	return b.customers.Update(func(records []customerRecord) ([]customerRecord, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			if err := fn(records, &records[i]); err != nil {
				return nil, err
			}
			return records, nil
		}
		return nil, database.ErrCustomerNotFound
	})
}

func checkCustomerUnique(records []customerRecord, self int64, phone, email string) error {
	for _, rec := range records {
		if rec.ID != self && rec.Phone == phone {
			return database.ErrDuplicatePhone
		}
	}
	for _, rec := range records {
		if rec.ID != self && rec.Email == email {
			return database.ErrDuplicateEmail
		}
	}
	return nil
}
