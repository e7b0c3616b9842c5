package sqlstore

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
)

const storeColumns = `id, shop_name, owner_name, phone, email, address, pincode, category, status,
	password_hash, registration_date`

const productColumns = `id, store_id, name, price, description, available`

func (b *Backend) CreateStore(ctx context.Context, store *models.Store) error {
	return b.tx(ctx, func(tx *sqlx.Tx) error {
		if err := checkUnique(ctx, tx, "stores", 0, store.Phone, store.Email); err != nil {
			return err
		}

		id, err := insert(ctx, tx,
			`INSERT INTO stores (shop_name, owner_name, phone, email, address, pincode, category, status,
				password_hash, registration_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			store.ShopName, store.OwnerName, store.Phone, store.Email, store.Address, store.Pincode,
			store.Category, store.Status, store.PasswordHash, store.RegistrationDate)
		if err != nil {
			return wrap(err, "insert store")
		}
		store.ID = id

		for i := range store.Products {
			if err := insertProduct(ctx, tx, id, &store.Products[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Backend) GetStoreByID(ctx context.Context, id int64) (*models.Store, error) {
	return b.getStore(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = ?`, id)
}

func (b *Backend) GetStoreByPhone(ctx context.Context, phone string) (*models.Store, error) {
	return b.getStore(ctx, `SELECT `+storeColumns+` FROM stores WHERE phone = ?`, phone)
}

func (b *Backend) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := selectAll(ctx, b.db, &stores, `SELECT `+storeColumns+` FROM stores ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "list stores")
	}

	var products []models.Product
	if err := selectAll(ctx, b.db, &products, `SELECT `+productColumns+` FROM products ORDER BY store_id, id`); err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	byStore := make(map[int64][]models.Product)
	for _, p := range products {
		byStore[p.StoreID] = append(byStore[p.StoreID], p)
	}
	for i := range stores {
		stores[i].Products = byStore[stores[i].ID]
		if stores[i].Products == nil {
			stores[i].Products = []models.Product{}
		}
	}
	if stores == nil {
		stores = []models.Store{}
	}
	return stores, nil
}

func (b *Backend) UpdateStore(ctx context.Context, id int64, patch models.StorePatch) error {
	return b.tx(ctx, func(tx *sqlx.Tx) error {
		current := &models.Store{}
		err := get(ctx, tx, current, `SELECT `+storeColumns+` FROM stores WHERE id = ?`, id)
		if err == sql.ErrNoRows {
			return database.ErrStoreNotFound
		}
		if err != nil {
			return errors.Wrap(err, "get store")
		}

		if patch.Phone != nil || patch.Email != nil {
			next := *current
			patch.Apply(&next)
			if err := checkUnique(ctx, tx, "stores", id, next.Phone, next.Email); err != nil {
				return err
			}
		}

		set, args := setClause([]column{
			{"shop_name", patch.ShopName},
			{"owner_name", patch.OwnerName},
			{"phone", patch.Phone},
			{"email", patch.Email},
			{"address", patch.Address},
			{"pincode", patch.Pincode},
			{"category", patch.Category},
			{"status", patch.Status},
		})
		if set == "" {
			return nil
		}

		args = append(args, id)
		if _, err := exec(ctx, tx, `UPDATE stores SET `+set+` WHERE id = ?`, args...); err != nil {
			return wrap(err, "update store")
		}
		return nil
	})
}

func (b *Backend) SetStorePassword(ctx context.Context, id int64, passwordHash string) error {
	if _, err := exec(ctx, b.db, `UPDATE stores SET password_hash = ? WHERE id = ?`, passwordHash, id); err != nil {
		return errors.Wrap(err, "update store password")
	}
	return nil
}

func (b *Backend) AddProduct(ctx context.Context, storeID int64, product *models.Product) error {
	return b.tx(ctx, func(tx *sqlx.Tx) error {
		if err := requireStore(ctx, tx, storeID); err != nil {
			return err
		}
		return insertProduct(ctx, tx, storeID, product)
	})
}

func (b *Backend) UpdateProduct(ctx context.Context, storeID int64, product models.Product) error {
	return b.tx(ctx, func(tx *sqlx.Tx) error {
		if err := requireStore(ctx, tx, storeID); err != nil {
			return err
		}

		found, err := exists(ctx, tx, `SELECT COUNT(*) FROM products WHERE id = ? AND store_id = ?`, product.ID, storeID)
		if err != nil {
			return errors.Wrap(err, "check product")
		}
		if !found {
			return database.ErrProductNotFound
		}

		_, err = exec(ctx, tx,
			`UPDATE products SET name = ?, price = ?, description = ?, available = ?
			 WHERE id = ? AND store_id = ?`,
			product.Name, product.Price, product.Description, product.Available, product.ID, storeID)
		if err != nil {
			return errors.Wrap(err, "update product")
		}
		return nil
	})
}

func (b *Backend) DeleteProduct(ctx context.Context, storeID, productID int64) error {
	return b.tx(ctx, func(tx *sqlx.Tx) error {
		if err := requireStore(ctx, tx, storeID); err != nil {
			return err
		}

		res, err := exec(ctx, tx, `DELETE FROM products WHERE id = ? AND store_id = ?`, productID, storeID)
		if err != nil {
			return errors.Wrap(err, "delete product")
		}

		n, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "get rows affected")
		}
		if n == 0 {
			return database.ErrProductNotFound
		}
		return nil
	})
}

func (b *Backend) getStore(ctx context.Context, query string, arg interface{}) (*models.Store, error) {
	store := &models.Store{}
	err := get(ctx, b.db, store, query, arg)
	if err == sql.ErrNoRows {
		return nil, database.ErrStoreNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get store")
	}

	store.Products = []models.Product{}
	err = selectAll(ctx, b.db, &store.Products,
		`SELECT `+productColumns+` FROM products WHERE store_id = ? ORDER BY id`, store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "get store products")
	}
	return store, nil
}

func insertProduct(ctx context.Context, tx *sqlx.Tx, storeID int64, product *models.Product) error {
	id, err := insert(ctx, tx,
		`INSERT INTO products (store_id, name, price, description, available) VALUES (?, ?, ?, ?, ?)`,
		storeID, product.Name, product.Price, product.Description, product.Available)
	if err != nil {
		if database.ClassifyError(err) == database.ErrorClassForeignKeyViolation {
			return database.ErrStoreNotFound
		}
		return errors.Wrap(err, "insert product")
	}

	product.ID = id
	product.StoreID = storeID
	return nil
}

func requireStore(ctx context.Context, tx *sqlx.Tx, id int64) error {
	found, err := exists(ctx, tx, `SELECT COUNT(*) FROM stores WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "check store")
	}
	if !found {
		return database.ErrStoreNotFound
	}
	return nil
}
