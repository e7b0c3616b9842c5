//go:build integration

package sqlstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/safar/localkirana/internal/database"
	"github.com/safar/localkirana/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(phone, email string) *models.Store {
	return &models.Store{
		ShopName:         "Gupta Kirana",
		OwnerName:        "Ravi Gupta",
		Phone:            phone,
		Email:            email,
		Category:         "grocery",
		Status:           models.StatusActive,
		PasswordHash:     "digest",
		RegistrationDate: models.Now(),
		Products: []models.Product{
			{Name: "Rice (1kg)", Price: "₹80", Available: true},
			{Name: "Dal (1kg)", Price: "₹120", Available: true},
		},
	}
}

func newCustomer(phone, email string) *models.Customer {
	return &models.Customer{
		Name:             "Asha",
		Phone:            phone,
		Email:            email,
		Location:         "Sector 9",
		Status:           models.StatusActive,
		PasswordHash:     "digest",
		RegistrationDate: models.Now(),
	}
}

func TestIntegration(t *testing.T) {
	b := setupTestBackend(t)

	t.Run("StoreLifecycle", func(t *testing.T) { testStoreLifecycle(t, b) })
	t.Run("ConcurrentStoreRegistration", func(t *testing.T) { testConcurrentStoreRegistration(t, b) })
	t.Run("Customers", func(t *testing.T) { testCustomers(t, b) })
	t.Run("BookingsAndRequests", func(t *testing.T) { testBookingsAndRequests(t, b) })
	t.Run("Chats", func(t *testing.T) { testChats(t, b) })
}

func testStoreLifecycle(t *testing.T, b *Backend) {
	ctx := context.Background()

	store := newStore("+91 1000000001", "one@shop.in")
	require.NoError(t, b.CreateStore(ctx, store))
	require.NotZero(t, store.ID)
	require.NotZero(t, store.Products[0].ID)

	err := b.CreateStore(ctx, newStore("+91 1000000001", "one@shop.in"))
	assert.ErrorIs(t, err, database.ErrDuplicatePhone)
	err = b.CreateStore(ctx, newStore("+91 1000000002", "one@shop.in"))
	assert.ErrorIs(t, err, database.ErrDuplicateEmail)

	got, err := b.GetStoreByPhone(ctx, "+91 1000000001")
	require.NoError(t, err)
	assert.Equal(t, store.ID, got.ID)
	assert.Equal(t, "digest", got.PasswordHash)
	require.Len(t, got.Products, 2)
	assert.Equal(t, "Rice (1kg)", got.Products[0].Name)

	name := "Gupta Super Kirana"
	require.NoError(t, b.UpdateStore(ctx, store.ID, models.StorePatch{ShopName: &name}))
	got, err = b.GetStoreByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.ShopName)

	assert.ErrorIs(t, b.UpdateStore(ctx, 999999, models.StorePatch{ShopName: &name}), database.ErrStoreNotFound)

	oil := &models.Product{Name: "Oil (1L)", Price: "₹150", Available: true}
	require.NoError(t, b.AddProduct(ctx, store.ID, oil))
	require.NoError(t, b.DeleteProduct(ctx, store.ID, oil.ID))
	assert.ErrorIs(t, b.DeleteProduct(ctx, store.ID, oil.ID), database.ErrProductNotFound)

	again := &models.Product{Name: "Oil (1L)", Price: "₹150", Available: true}
	require.NoError(t, b.AddProduct(ctx, store.ID, again))
	assert.Greater(t, again.ID, oil.ID)

	updated := got.Products[1]
	updated.Price = "₹125"
	require.NoError(t, b.UpdateProduct(ctx, store.ID, updated))
	got, err = b.GetStoreByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, "₹125", got.Products[1].Price)
	assert.Equal(t, updated.ID, got.Products[1].ID)

	_, err = b.GetStoreByPhone(ctx, "+91 0000000000")
	assert.ErrorIs(t, err, database.ErrStoreNotFound)
}

func testConcurrentStoreRegistration(t *testing.T, b *Backend) {
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = b.CreateStore(ctx, newStore("+91 2000000000", fmt.Sprintf("race%d@shop.in", i)))
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
}

func testCustomers(t *testing.T, b *Backend) {
	ctx := context.Background()

	c := newCustomer("+91 3000000001", "asha@example.com")
	require.NoError(t, b.CreateCustomer(ctx, c))
	assert.ErrorIs(t, b.CreateCustomer(ctx, newCustomer("+91 3000000001", "x@example.com")), database.ErrDuplicatePhone)

	other := newCustomer("+91 3000000002", "other@example.com")
	require.NoError(t, b.CreateCustomer(ctx, other))

	taken := "asha@example.com"
	assert.ErrorIs(t, b.UpdateCustomer(ctx, other.ID, models.CustomerPatch{Email: &taken}), database.ErrDuplicateEmail)

	require.NoError(t, b.SetCustomerPassword(ctx, c.ID, "new-digest"))
	got, err := b.GetCustomerByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-digest", got.PasswordHash)

	customers, err := b.ListCustomers(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(customers), 2)
}

func testBookingsAndRequests(t *testing.T, b *Backend) {
	ctx := context.Background()

	store := newStore("+91 4000000001", "four@shop.in")
	require.NoError(t, b.CreateStore(ctx, store))
	customer := newCustomer("+91 4000000002", "four@example.com")
	require.NoError(t, b.CreateCustomer(ctx, customer))

	base := time.Now().Add(-time.Hour)
	first := &models.Booking{CustomerID: customer.ID, StoreID: store.ID, ProductID: &store.Products[0].ID,
		ItemName: "Rice (1kg)", Status: models.BookingStatusPending, BookingDate: models.NewTimestamp(base)}
	second := &models.Booking{CustomerID: customer.ID, StoreID: store.ID,
		ItemName: "Unknown", Status: models.BookingStatusPending, BookingDate: models.NewTimestamp(base.Add(time.Minute))}
	require.NoError(t, b.CreateBooking(ctx, first))
	require.NoError(t, b.CreateBooking(ctx, second))

	require.NoError(t, b.UpdateBookingStatus(ctx, first.ID, models.BookingStatusConfirmed, models.Now()))
	assert.ErrorIs(t, b.UpdateBookingStatus(ctx, 999999, "x", models.Now()), database.ErrBookingNotFound)

	bookings, err := b.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.ID, bookings[0].ID)
	assert.Nil(t, bookings[0].ProductID)
	assert.Equal(t, models.BookingStatusConfirmed, bookings[1].Status)
	assert.NotNil(t, bookings[1].StatusUpdatedDate)

	req := &models.Request{CustomerID: customer.ID, ItemName: "Ghee", Quantity: "1",
		TargetStore: models.AllStores, Status: models.RequestStatusPending, RequestDate: models.Now()}
	require.NoError(t, b.CreateRequest(ctx, req))

	requests, err := b.ListRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "Ghee", requests[0].ItemName)
}

func testChats(t *testing.T, b *Backend) {
	ctx := context.Background()

	chat := &models.Chat{
		ChatID:       "customer_1_store_2",
		Participant1: models.Participant{Type: models.ParticipantCustomer, ID: 1},
		Participant2: models.Participant{Type: models.ParticipantStore, ID: 2},
	}
	base := time.Now().Add(-time.Minute)

	require.NoError(t, b.AppendMessage(ctx, chat, &models.Message{ChatID: chat.ChatID, SenderID: 1,
		SenderType: "customer", Body: "Hi", CreatedAt: models.NewTimestamp(base)}))
	require.NoError(t, b.AppendMessage(ctx, chat, &models.Message{ChatID: chat.ChatID, SenderID: 2,
		SenderType: "store", Body: "Hello", CreatedAt: models.NewTimestamp(base.Add(time.Second))}))
	require.NoError(t, b.AppendMessage(ctx, nil, &models.Message{ChatID: "garbage", SenderID: 1,
		SenderType: "customer", Body: "orphan", CreatedAt: models.Now()}))

	chats, err := b.ListChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "Hello", chats[0].LastMessage)
	require.Len(t, chats[0].Messages, 2)
	assert.Equal(t, "Hi", chats[0].Messages[0].Body)
}
