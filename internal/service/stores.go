package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/auth"
	"github.com/safar/localkirana/internal/catalog"
	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
	"github.com/sirupsen/logrus"
)

type StoreDraft struct {
	ShopName  string
	OwnerName string
	Phone     string
	Email     string
	Address   string
	Pincode   string
	Category  string
	Password  string
	// Products seeds the catalog. Nil means "use the category defaults";
	// an empty non-nil slice registers the store without products.
	Products []models.Product
}

// ProductRef addresses a product either by id or by its position in the
// store's product list. The id wins when both are set.
type ProductRef struct {
	ID    int64
	Index *int
}

func (r ProductRef) IsZero() bool {
	return r.ID == 0 && r.Index == nil
}

type StoreService struct {
	repo    StoreRepository
	hasher  auth.PasswordHasher
	catalog *catalog.Catalog
	log     logrus.FieldLogger
	now     func() models.Timestamp
}

func NewStoreService(repo StoreRepository, hasher auth.PasswordHasher, cat *catalog.Catalog, log logrus.FieldLogger) *StoreService {
	return &StoreService{
		repo:    repo,
		hasher:  hasher,
		catalog: cat,
		log:     log,
		now:     models.Now,
	}
}

func (s *StoreService) Register(ctx context.Context, draft StoreDraft) (*models.Store, error) {
	switch {
	case draft.ShopName == "":
		return nil, missingField("shopName")
	case draft.Phone == "":
		return nil, missingField("phone")
	case draft.Email == "":
		return nil, missingField("email")
	case draft.Password == "":
		return nil, missingField("password")
	}

	for i := range draft.Products {
		if err := validateProduct(&draft.Products[i]); err != nil {
			return nil, err
		}
	}

	category := normalizeCategory(draft.Category)
	products := draft.Products
	if products == nil {
		products = s.catalog.Products(category)
	}

	hash, err := s.hasher.Hash(draft.Password)
	if err != nil {
		return nil, translate(s.log, err, "Failed to save shop data")
	}

	store := &models.Store{
		ShopName:         draft.ShopName,
		OwnerName:        draft.OwnerName,
		Phone:            draft.Phone,
		Email:            draft.Email,
		Address:          draft.Address,
		Pincode:          draft.Pincode,
		Category:         category,
		Status:           models.StatusActive,
		PasswordHash:     hash,
		RegistrationDate: s.now(),
		Products:         products,
	}

	if err := s.repo.CreateStore(ctx, store); err != nil {
		return nil, translate(s.log, err, "Failed to save shop data")
	}

	s.log.WithFields(logrus.Fields{
		"store_id": store.ID,
		"category": store.Category,
		"products": len(store.Products),
	}).Info("store registered")
	return store, nil
}

// Login returns the store with its products. Unknown phone numbers and wrong
// passwords produce the same error.
func (s *StoreService) Login(ctx context.Context, phone, password string) (*models.Store, error) {
	if phone == "" || password == "" {
		return nil, errInvalidCredentials
	}

	store, err := s.repo.GetStoreByPhone(ctx, phone)
	if errors.Is(err, database.ErrStoreNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, translate(s.log, err, "Login failed")
	}

	if !s.hasher.Verify(password, store.PasswordHash) {
		return nil, errInvalidCredentials
	}

	if s.hasher.NeedsRehash(store.PasswordHash) {
		s.rehash(ctx, store, password)
	}
	return store, nil
}

func (s *StoreService) rehash(ctx context.Context, store *models.Store, password string) {
	hash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.repo.SetStorePassword(ctx, store.ID, hash)
	}
	if err != nil {
		s.log.WithError(err).WithField("store_id", store.ID).Warn("upgrade password hash")
		return
	}
	store.PasswordHash = hash
}

func (s *StoreService) List(ctx context.Context) ([]models.Store, error) {
	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, translate(s.log, err, "Failed to load stores")
	}
	return stores, nil
}

func (s *StoreService) Update(ctx context.Context, id int64, patch models.StorePatch) error {
	if id == 0 {
		return validation("Store ID required")
	}
	if patch.IsEmpty() {
		return validation("No fields to update")
	}
	if patch.Status != nil && !validStatus(*patch.Status) {
		return validation("Invalid status")
	}
	if (patch.Phone != nil && *patch.Phone == "") || (patch.Email != nil && *patch.Email == "") {
		return validation("Phone and email cannot be empty")
	}
	if patch.Category != nil {
		category := normalizeCategory(*patch.Category)
		patch.Category = &category
	}

	if err := s.repo.UpdateStore(ctx, id, patch); err != nil {
		return translate(s.log, err, "Failed to update store")
	}
	return nil
}

func (s *StoreService) Products(ctx context.Context, storeID int64) ([]models.Product, error) {
	store, err := s.repo.GetStoreByID(ctx, storeID)
	if err != nil {
		return nil, translate(s.log, err, "Failed to load products")
	}
	return store.Products, nil
}

func (s *StoreService) AddProduct(ctx context.Context, storeID int64, product *models.Product) (*models.Product, error) {
	if storeID == 0 || product == nil {
		return nil, validation("Store ID and product data required")
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	p := *product
	if err := s.repo.AddProduct(ctx, storeID, &p); err != nil {
		return nil, translate(s.log, err, "Failed to add product")
	}
	return &p, nil
}

// UpdateProduct replaces the referenced product. The product keeps its id
// whatever id the replacement carries.
func (s *StoreService) UpdateProduct(ctx context.Context, storeID int64, ref ProductRef, product *models.Product) error {
	if storeID == 0 || ref.IsZero() || product == nil {
		return validation("Store ID, product index, and product data required")
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	id, err := s.resolve(ctx, storeID, ref)
	if err != nil {
		return err
	}

	p := *product
	p.ID = id
	if err := s.repo.UpdateProduct(ctx, storeID, p); err != nil {
		return translate(s.log, err, "Failed to update product")
	}
	return nil
}

func (s *StoreService) DeleteProduct(ctx context.Context, storeID int64, ref ProductRef) error {
	if storeID == 0 || ref.IsZero() {
		return validation("Store ID and product index required")
	}

	id, err := s.resolve(ctx, storeID, ref)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteProduct(ctx, storeID, id); err != nil {
		return translate(s.log, err, "Failed to delete product")
	}
	return nil
}

// resolve maps a positional reference onto a product id.
func (s *StoreService) resolve(ctx context.Context, storeID int64, ref ProductRef) (int64, error) {
	if ref.ID != 0 {
		return ref.ID, nil
	}

	products, err := s.Products(ctx, storeID)
	if err != nil {
		return 0, err
	}

	i := *ref.Index
	if i < 0 || i >= len(products) {
		return 0, notFound("Product not found", database.ErrProductNotFound)
	}
	return products[i].ID, nil
}

func validateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return missingField("name")
	}
	if _, err := models.ParsePrice(p.Price); err != nil {
		return validation("Invalid price: " + p.Price)
	}
	return nil
}

// normalizeCategory lowercases and trims a category; blank means general.
func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return catalog.General
	}
	return category
}
