package sqlstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/safar/localkirana/internal/models"
)

const requestColumns = `id, customer_id, customer_name, customer_phone, customer_location, item_name,
	quantity, description, target_store, status, request_date`

func (b *Backend) CreateRequest(ctx context.Context, request *models.Request) error {
	id, err := insert(ctx, b.db,
		`INSERT INTO requests (customer_id, customer_name, customer_phone, customer_location, item_name,
			quantity, description, target_store, status, request_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		request.CustomerID, request.CustomerName, request.CustomerPhone, request.CustomerLocation,
		request.ItemName, request.Quantity, request.Description, request.TargetStore, request.Status,
		request.RequestDate)
	if err != nil {
		return errors.Wrap(err, "insert request")
	}

	request.ID = id
	return nil
}

func (b *Backend) ListRequests(ctx context.Context) ([]models.Request, error) {
	requests := []models.Request{}
	err := selectAll(ctx, b.db, &requests,
		`SELECT `+requestColumns+` FROM requests ORDER BY request_date DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list requests")
	}
	return requests, nil
}
