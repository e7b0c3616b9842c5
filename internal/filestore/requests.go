package filestore

import (
	"context"

	"github.com/safar/localkirana/internal/models"
)

func (b *Backend) CreateRequest(ctx context.Context, request *models.Request) error {
	return b.requests.Update(func(records []models.Request) ([]models.Request, error) {
		request.ID = nextID(len(records), func(i int) int64 { return records[i].ID })
		return append(records, *request), nil
	})
}

func (b *Backend) ListRequests(ctx context.Context) ([]models.Request, error) {
	records, err := b.requests.Load()
	if err != nil {
		return nil, err
	}

	newestFirst(records,
		func(r models.Request) models.Timestamp { return r.RequestDate },
		func(r models.Request) int64 { return r.ID })
	return records, nil
}
