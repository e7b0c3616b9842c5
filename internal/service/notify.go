package service

import (
	"context"
	"strings"

	"github.com/safar/localkirana/internal/models"
	"github.com/sirupsen/logrus"
)

// Notifier tells shopkeepers about a new item request.
type Notifier interface {
	Notify(ctx context.Context, request models.Request, stores []models.Store)
}

// LogNotifier only writes the notification to the log.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, request models.Request, stores []models.Store) {
	names := make([]string, len(stores))
	for i, s := range stores {
		names[i] = s.ShopName
	}

	n.log.WithFields(logrus.Fields{
		"request_id":      request.ID,
		"item":            request.ItemName,
		"customer":        request.CustomerName,
		"relevant_stores": names,
	}).Info("item requested")
}

// MatchingStores returns the stores with at least one product whose name
// contains item, ignoring case.
func MatchingStores(stores []models.Store, item string) []models.Store {
	needle := strings.ToLower(item)
	var matches []models.Store
	for _, s := range stores {
		for _, p := range s.Products {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				matches = append(matches, s)
				break
			}
		}
	}
	return matches
}
