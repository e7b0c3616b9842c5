package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
	"github.com/sirupsen/logrus"
)

type RequestDraft struct {
	CustomerID       int64
	CustomerName     string
	CustomerPhone    string
	CustomerLocation string
	ItemName         string
	Quantity         string
	Description      string
	TargetStore      string
}

type RequestService struct {
	requests  RequestRepository
	customers CustomerRepository
	stores    StoreRepository
	notifier  Notifier
	log       logrus.FieldLogger
	now       func() models.Timestamp
}

func NewRequestService(requests RequestRepository, customers CustomerRepository, stores StoreRepository, notifier Notifier, log logrus.FieldLogger) *RequestService {
	return &RequestService{
		requests:  requests,
		customers: customers,
		stores:    stores,
		notifier:  notifier,
		log:       log,
		now:       models.Now,
	}
}

func (s *RequestService) Create(ctx context.Context, draft RequestDraft) (*models.Request, error) {
	if draft.ItemName == "" {
		return nil, missingField("itemName")
	}

	customer, err := lookupCustomer(ctx, s.customers, draft.CustomerPhone, draft.CustomerID)
	if errors.Is(err, errNoReference) || errors.Is(err, database.ErrCustomerNotFound) {
		return nil, validation("Customer not found")
	}
	if err != nil {
		return nil, translate(s.log, err, "Failed to save request")
	}

	request := &models.Request{
		CustomerID:       customer.ID,
		CustomerName:     firstNonEmpty(draft.CustomerName, customer.Name),
		CustomerPhone:    firstNonEmpty(draft.CustomerPhone, customer.Phone),
		CustomerLocation: firstNonEmpty(draft.CustomerLocation, customer.Location),
		ItemName:         draft.ItemName,
		Quantity:         draft.Quantity,
		Description:      draft.Description,
		TargetStore:      firstNonEmpty(draft.TargetStore, models.AllStores),
		Status:           models.RequestStatusPending,
		RequestDate:      s.now(),
	}

	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, translate(s.log, err, "Failed to save request")
	}

	s.notify(ctx, *request)
	return request, nil
}

// notify runs after the request is stored; its failures never fail the
// request.
func (s *RequestService) notify(ctx context.Context, request models.Request) {
	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		s.log.WithError(err).WithField("request_id", request.ID).Warn("load stores for notification")
		return
	}
	s.notifier.Notify(ctx, request, MatchingStores(stores, request.ItemName))
}

// List returns requests newest first.
func (s *RequestService) List(ctx context.Context) ([]models.Request, error) {
	requests, err := s.requests.ListRequests(ctx)
	if err != nil {
		return nil, translate(s.log, err, "Failed to load requests")
	}
	return requests, nil
}
