package filestore

import (
	"context"

	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
)

func (b *Backend) CreateStore(ctx context.Context, store *models.Store) error {
	return b.stores.Update(func(records []storeRecord) ([]storeRecord, error) {
		if err := checkStoreUnique(records, 0, store.Phone, store.Email); err != nil {
			return nil, err
		}

		store.ID = nextID(len(records), func(i int) int64 { return records[i].ID })
		rec := newStoreRecord(*store)
		rec.Products = make([]models.Product, len(store.Products))
		for i, p := range store.Products {
			rec.ProductSeq++
			p.ID = rec.ProductSeq
			p.StoreID = store.ID
			rec.Products[i] = p
			store.Products[i] = p
		}

		return append(records, rec), nil
	})
}

func (b *Backend) GetStoreByID(ctx context.Context, id int64) (*models.Store, error) {
	return b.findStore(func(s *storeRecord) bool { return s.ID == id })
}

func (b *Backend) GetStoreByPhone(ctx context.Context, phone string) (*models.Store, error) {
	return b.findStore(func(s *storeRecord) bool { return s.Phone == phone })
}

func (b *Backend) ListStores(ctx context.Context) ([]models.Store, error) {
	records, err := b.stores.Load()
	if err != nil {
		return nil, err
	}

	stores := make([]models.Store, len(records))
	for i, rec := range records {
		stores[i] = rec.model()
	}
	return stores, nil
}

func (b *Backend) UpdateStore(ctx context.Context, id int64, patch models.StorePatch) error {
	return b.updateStore(id, func(records []storeRecord, rec *storeRecord) error {
		phone, email := rec.Phone, rec.Email
		if patch.Phone != nil {
			phone = *patch.Phone
		}
		if patch.Email != nil {
			email = *patch.Email
		}
		if err := checkStoreUnique(records, id, phone, email); err != nil {
			return err
		}

		patch.Apply(&rec.Store)
		return nil
	})
}

func (b *Backend) SetStorePassword(ctx context.Context, id int64, passwordHash string) error {
	return b.updateStore(id, func(_ []storeRecord, rec *storeRecord) error {
		rec.Password = passwordHash
		return nil
	})
}

func (b *Backend) AddProduct(ctx context.Context, storeID int64, product *models.Product) error {
	return b.updateStore(storeID, func(_ []storeRecord, rec *storeRecord) error {
		seq := nextID(len(rec.Products), func(i int) int64 { return rec.Products[i].ID })
		if rec.ProductSeq >= seq {
			seq = rec.ProductSeq + 1
		}
		rec.ProductSeq = seq

		product.ID = seq
		product.StoreID = storeID
		rec.Products = append(rec.Products, *product)
		return nil
	})
}

func (b *Backend) UpdateProduct(ctx context.Context, storeID int64, product models.Product) error {
	return b.updateStore(storeID, func(_ []storeRecord, rec *storeRecord) error {
		i := productIndex(rec.Products, product.ID)
		if i < 0 {
			return database.ErrProductNotFound
		}
		product.StoreID = storeID
		rec.Products[i] = product
		return nil
	})
}

func (b *Backend) DeleteProduct(ctx context.Context, storeID, productID int64) error {
	return b.updateStore(storeID, func(_ []storeRecord, rec *storeRecord) error {
		i := productIndex(rec.Products, productID)
		if i < 0 {
			return database.ErrProductNotFound
		}
		// Keep the sequence past the removed id so it is never handed out again.
		for _, p := range rec.Products {
			if rec.ProductSeq < p.ID {
				rec.ProductSeq = p.ID
			}
		}
		rec.Products = append(rec.Products[:i], rec.Products[i+1:]...)
		return nil
	})
}

func (b *Backend) findStore(match func(*storeRecord) bool) (*models.Store, error) {
	records, err := b.stores.Load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if match(&records[i]) {
			s := records[i].model()
			return &s, nil
		}
	}
	return nil, database.ErrStoreNotFound
}

func (b *Backend) updateStore(id int64, fn func(records []storeRecord, rec *storeRecord) error) error {
	return b.stores.Update(func(records []storeRecord) ([]storeRecord, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			if err := fn(records, &records[i]); err != nil {
				return nil, err
			}
			return records, nil
		}
		return nil, database.ErrStoreNotFound
	})
}

// checkStoreUnique reports a phone clash before an email clash. The store
// with id self is ignored so an update may keep its own values.
func checkStoreUnique(records []storeRecord, self int64, phone, email string) error {
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

func productIndex(products []models.Product, id int64) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
