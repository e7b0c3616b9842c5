package transport

import (
	"net/http"

	"github.com/safar/localkirana/internal/service"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Ping(r.Context()); err != nil {
		h.log.WithError(err).Error("backend health check failed")
		respondError(w, http.StatusInternalServerError, "Backend unavailable")
		return
	}
	respondSuccess(w, payload{"status": "ok"})
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.svc.Stores.List(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"stores": stores})
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.Customers.List(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"customers": customers})
}

func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.Bookings.List(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"bookings": bookings})
}

func (h *Handler) listRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.Requests.List(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"requests": requests})
}

func (h *Handler) listChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.svc.Chats.List(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"chats": chats})
}

func (h *Handler) registerShop(w http.ResponseWriter, r *http.Request) {
	var req registerShopRequest
	if !decode(w, r, &req) {
		return
	}

	store, err := h.svc.Stores.Register(r.Context(), req.draft())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Shop registered successfully", "shop_id": store.ID})
}

func (h *Handler) registerCustomer(w http.ResponseWriter, r *http.Request) {
	var req registerCustomerRequest
	if !decode(w, r, &req) {
		return
	}

	customer, err := h.svc.Customers.Register(r.Context(), service.CustomerDraft{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Location: req.Location,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Customer registered successfully", "customer_id": customer.ID})
}

func (h *Handler) shopkeeperLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	store, err := h.svc.Stores.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"user": store})
}

func (h *Handler) customerLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	customer, err := h.svc.Customers.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"user": customer})
}

func (h *Handler) updateStore(w http.ResponseWriter, r *http.Request) {
	var req updateStoreRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.svc.Stores.Update(r.Context(), int64(req.ID), req.patch()); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Store updated successfully"})
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.svc.Customers.Update(r.Context(), int64(req.ID), req.patch()); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Customer updated successfully"})
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decode(w, r, &req) {
		return
	}

	product, err := h.svc.Stores.AddProduct(r.Context(), int64(req.StoreID), req.Product.model())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Product added successfully", "product": product})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.svc.Stores.UpdateProduct(r.Context(), int64(req.StoreID), req.ref(), req.Product.model()); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Product updated successfully"})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.svc.Stores.DeleteProduct(r.Context(), int64(req.StoreID), req.ref()); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Product deleted successfully"})
}

func (h *Handler) bookItem(w http.ResponseWriter, r *http.Request) {
	var req bookItemRequest
	if !decode(w, r, &req) {
		return
	}

	booking, err := h.svc.Bookings.Create(r.Context(), service.BookingDraft{
		CustomerID:    int64(req.CustomerID),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StoreID:       int64(req.StoreID),
		StoreName:     req.StoreName,
		StorePhone:    req.StorePhone,
		ItemName:      req.ItemName,
	})
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Item booked successfully", "booking_id": booking.ID})
}

func (h *Handler) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req bookingStatusRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.svc.Bookings.UpdateStatus(r.Context(), int64(req.BookingID), req.Status); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Booking status updated successfully"})
}

func (h *Handler) requestItem(w http.ResponseWriter, r *http.Request) {
	var req requestItemRequest
	if !decode(w, r, &req) {
		return
	}

	request, err := h.svc.Requests.Create(r.Context(), service.RequestDraft{
		CustomerID:       int64(req.CustomerID),
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerLocation: req.CustomerLocation,
		ItemName:         req.ItemName,
		Quantity:         string(req.Quantity),
		Description:      req.Description,
		TargetStore:      req.TargetStore,
	})
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Item request sent successfully", "request_id": request.ID})
}

func (h *Handler) saveChat(w http.ResponseWriter, r *http.Request) {
	var req saveChatRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.svc.Chats.PostMessage(r.Context(), req.draft()); err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondSuccess(w, payload{"message": "Chat saved successfully"})
}
