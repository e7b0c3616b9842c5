package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/auth"
	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
	"github.com/sirupsen/logrus"
)

type CustomerDraft struct {
	Name     string
	Phone    string
	Email    string
	Location string
	Password string
}

type CustomerService struct {
	repo   CustomerRepository
	hasher auth.PasswordHasher
	log    logrus.FieldLogger
	now    func() models.Timestamp
}

func NewCustomerService(repo CustomerRepository, hasher auth.PasswordHasher, log logrus.FieldLogger) *CustomerService {
	return &CustomerService{
		repo:   repo,
		hasher: hasher,
		log:    log,
		now:    models.Now,
	}
}

func (s *CustomerService) Register(ctx context.Context, draft CustomerDraft) (*models.Customer, error) {
	switch {
	case draft.Name == "":
		return nil, missingField("name")
	case draft.Phone == "":
		return nil, missingField("phone")
	case draft.Email == "":
		return nil, missingField("email")
	case draft.Password == "":
		return nil, missingField("password")
	}

	hash, err := s.hasher.Hash(draft.Password)
	if err != nil {
		return nil, translate(s.log, err, "Failed to register customer")
	}

	customer := &models.Customer{
		Name:             draft.Name,
		Phone:            draft.Phone,
		Email:            draft.Email,
		Location:         draft.Location,
		Status:           models.StatusActive,
		PasswordHash:     hash,
		RegistrationDate: s.now(),
	}

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, translate(s.log, err, "Failed to register customer")
	}

	s.log.WithField("customer_id", customer.ID).Info("customer registered")
	return customer, nil
}

func (s *CustomerService) Login(ctx context.Context, phone, password string) (*models.Customer, error) {
	if phone == "" || password == "" {
		return nil, errInvalidCredentials
	}

	customer, err := s.repo.GetCustomerByPhone(ctx, phone)
	if errors.Is(err, database.ErrCustomerNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, translate(s.log, err, "Login failed")
	}

	if !s.hasher.Verify(password, customer.PasswordHash) {
		return nil, errInvalidCredentials
	}

	if s.hasher.NeedsRehash(customer.PasswordHash) {
		hash, err := s.hasher.Hash(password)
		if err == nil {
			err = s.repo.SetCustomerPassword(ctx, customer.ID, hash)
		}
		if err != nil {
			s.log.WithError(err).WithField("customer_id", customer.ID).Warn("upgrade password hash")
		} else {
			customer.PasswordHash = hash
		}
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, translate(s.log, err, "Failed to load customers")
	}
	return customers, nil
}

func (s *CustomerService) Update(ctx context.Context, id int64, patch models.CustomerPatch) error {
	if id == 0 {
		return validation("Customer ID required")
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

	if err := s.repo.UpdateCustomer(ctx, id, patch); err != nil {
		return translate(s.log, err, "Failed to update customer")
	}
	return nil
}
