package service

import (
	"context"
	"sync"
	"testing"

	"github.com/safar/localkirana/internal/auth"
	"github.com/safar/localkirana/internal/catalog"
	"github.com/safar/localkirana/internal/filestore"
	"github.com/safar/localkirana/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var _ Backend = (*filestore.Backend)(nil)

type recordingNotifier struct {
	mu      sync.Mutex
	request models.Request
	stores  []string
	calls   int
}

func (n *recordingNotifier) Notify(ctx context.Context, request models.Request, stores []models.Store) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls++
	n.request = request
	n.stores = nil
	for _, s := range stores {
		n.stores = append(n.stores, s.ShopName)
	}
}

type fixture struct {
	backend  *filestore.Backend
	hasher   *auth.BcryptHasher
	notifier *recordingNotifier
	logs     *test.Hook
	svc      *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	backend, err := filestore.Open(t.TempDir(), hasher, logger)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	return &fixture{
		backend:  backend,
		hasher:   hasher,
		notifier: notifier,
		logs:     hook,
		svc:      New(backend, hasher, catalog.Default(), notifier, logger),
	}
}

func requireKind(t *testing.T, err error, kind Kind, message string) {
	t.Helper()

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, kind, svcErr.Kind)
	assert.Equal(t, message, svcErr.Message)
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
