// Package transport exposes the marketplace services as a JSON API.
package transport

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/safar/localkirana/internal/service"
	"github.com/sirupsen/logrus"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	svc     *service.Services
	backend Pinger
	log     logrus.FieldLogger
}

func Router(svc *service.Services, backend Pinger, log logrus.FieldLogger) http.Handler {
	h := &Handler{svc: svc, backend: backend, log: log}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	r.HandleFunc("/api/health", h.health).Methods(http.MethodGet)

	r.HandleFunc("/api/stores", h.listStores).Methods(http.MethodGet)
	r.HandleFunc("/api/customers", h.listCustomers).Methods(http.MethodGet)
	r.HandleFunc("/api/bookings", h.listBookings).Methods(http.MethodGet)
	r.HandleFunc("/api/requests", h.listRequests).Methods(http.MethodGet)
	r.HandleFunc("/api/chats", h.listChats).Methods(http.MethodGet)

	r.HandleFunc("/api/register-shop", h.registerShop).Methods(http.MethodPost)
	r.HandleFunc("/api/customer-register", h.registerCustomer).Methods(http.MethodPost)
	r.HandleFunc("/api/shopkeeper-login", h.shopkeeperLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/customer-login", h.customerLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/update-store", h.updateStore).Methods(http.MethodPost)
	r.HandleFunc("/api/update-customer", h.updateCustomer).Methods(http.MethodPost)
	r.HandleFunc("/api/add-product", h.addProduct).Methods(http.MethodPost)
	r.HandleFunc("/api/update-product", h.updateProduct).Methods(http.MethodPost)
	r.HandleFunc("/api/delete-product", h.deleteProduct).Methods(http.MethodPost)
	r.HandleFunc("/api/book-item", h.bookItem).Methods(http.MethodPost)
	r.HandleFunc("/api/update-booking-status", h.updateBookingStatus).Methods(http.MethodPost)
	r.HandleFunc("/api/request-item", h.requestItem).Methods(http.MethodPost)
	r.HandleFunc("/api/save-chat", h.saveChat).Methods(http.MethodPost)

	return requestIDMiddleware(logMiddleware(log, corsMiddleware(r)))
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Not found")
}
