package sqlstore

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
)

const customerColumns = `id, name, phone, email, location, status, password_hash, registration_date`

func (b *Backend) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return b.tx(ctx, func(tx *sqlx.Tx) error {
		if err := checkUnique(ctx, tx, "customers", 0, customer.Phone, customer.Email); err != nil {
			return err
		}

		id, err := insert(ctx, tx,
			`INSERT INTO customers (name, phone, email, location, status, password_hash, registration_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			customer.Name, customer.Phone, customer.Email, customer.Location, customer.Status,
			customer.PasswordHash, customer.RegistrationDate)
		if err != nil {
			return wrap(err, "insert customer")
		}

		customer.ID = id
		return nil
	})
}

func (b *Backend) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	return b.getCustomer(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
}

func (b *Backend) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return b.getCustomer(ctx, `SELECT `+customerColumns+` FROM customers WHERE phone = ?`, phone)
}

func (b *Backend) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	if err := selectAll(ctx, b.db, &customers, `SELECT `+customerColumns+` FROM customers ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return customers, nil
}

func (b *Backend) UpdateCustomer(ctx context.Context, id int64, patch models.CustomerPatch) error {
	return b.tx(ctx, func(tx *sqlx.Tx) error {
		current := &models.Customer{}
		err := get(ctx, tx, current, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
		if err == sql.ErrNoRows {
			return database.ErrCustomerNotFound
		}
		if err != nil {
			return errors.Wrap(err, "get customer")
		}

		if patch.Phone != nil || patch.Email != nil {
			next := *current
			patch.Apply(&next)
			if err := checkUnique(ctx, tx, "customers", id, next.Phone, next.Email); err != nil {
				return err
			}
		}

		set, args := setClause([]column{
			{"name", patch.Name},
			{"phone", patch.Phone},
			{"email", patch.Email},
			{"location", patch.Location},
			{"status", patch.Status},
		})
		if set == "" {
			return nil
		}

		args = append(args, id)
		if _, err := exec(ctx, tx, `UPDATE customers SET `+set+` WHERE id = ?`, args...); err != nil {
			return wrap(err, "update customer")
		}
		return nil
	})
}

func (b *Backend) SetCustomerPassword(ctx context.Context, id int64, passwordHash string) error {
	if _, err := exec(ctx, b.db, `UPDATE customers SET password_hash = ? WHERE id = ?`, passwordHash, id); err != nil {
		return errors.Wrap(err, "update customer password")
	}
	return nil
}

func (b *Backend) getCustomer(ctx context.Context, query string, arg interface{}) (*models.Customer, error) {
	customer := &models.Customer{}
	err := get(ctx, b.db, customer, query, arg)
	if err == sql.ErrNoRows {
		return nil, database.ErrCustomerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get customer")
	}
	return customer, nil
}
