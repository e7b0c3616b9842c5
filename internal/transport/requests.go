package transport

import (
	"strconv"
	"strings"

	"github.com/safar/localkirana/internal/models"
	"github.com/safar/localkirana/internal/service"
)

// flexID accepts an id sent either as a JSON number or as a numeric string.
type flexID int64

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s models.FlexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}

	raw := strings.TrimSpace(string(s))
	if raw == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

type productInput struct {
	Name        string            `json:"name"`
	Price       models.FlexString `json:"price"`
	Description string            `json:"description"`
	Available   *bool             `json:"available"`
}

func (p *productInput) model() *models.Product {
	if p == nil {
		return nil
	}

	available := true
	if p.Available != nil {
		available = *p.Available
	}
	return &models.Product{
		Name:        p.Name,
		Price:       string(p.Price),
		Description: p.Description,
		Available:   available,
	}
}

type registerShopRequest struct {
	ShopName  string         `json:"shopName"`
	OwnerName string         `json:"ownerName"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Address   string         `json:"address"`
	Pincode   string         `json:"pincode"`
	Category  string         `json:"category"`
	Password  string         `json:"password"`
	Products  []productInput `json:"products"`
}

func (r registerShopRequest) draft() service.StoreDraft {
	d := service.StoreDraft{
		ShopName:  r.ShopName,
		OwnerName: r.OwnerName,
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
		Pincode:   r.Pincode,
		Category:  r.Category,
		Password:  r.Password,
	}
	if r.Products != nil {
		d.Products = make([]models.Product, len(r.Products))
		for i := range r.Products {
			d.Products[i] = *r.Products[i].model()
		}
	}
	return d
}

type registerCustomerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Password string `json:"password"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type bookItemRequest struct {
	CustomerID    flexID `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	StoreID       flexID `json:"storeId"`
	StoreName     string `json:"storeName"`
	StorePhone    string `json:"storePhone"`
	ItemName      string `json:"itemName"`
}

type requestItemRequest struct {
	CustomerID       flexID            `json:"customerId"`
	CustomerName     string            `json:"customerName"`
	CustomerPhone    string            `json:"customerPhone"`
	CustomerLocation string            `json:"customerLocation"`
	ItemName         string            `json:"itemName"`
	Quantity         models.FlexString `json:"quantity"`
	Description      string            `json:"description"`
	TargetStore      string            `json:"targetStore"`
}

// updateStoreRequest lists every field a store update may touch. Anything
// else in the body, password included, is ignored.
type updateStoreRequest struct {
	ID           flexID  `json:"id"`
	ShopName     *string `json:"shopName"`
	ShopNameAlt  *string `json:"shop_name"`
	OwnerName    *string `json:"ownerName"`
	OwnerNameAlt *string `json:"owner_name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	Pincode      *string `json:"pincode"`
	Category     *string `json:"category"`
	Status       *string `json:"status"`
}

func (r updateStoreRequest) patch() models.StorePatch {
	return models.StorePatch{
		ShopName:  firstSet(r.ShopName, r.ShopNameAlt),
		OwnerName: firstSet(r.OwnerName, r.OwnerNameAlt),
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
		Pincode:   r.Pincode,
		Category:  r.Category,
		Status:    r.Status,
	}
}

type updateCustomerRequest struct {
	ID       flexID  `json:"id"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

func (r updateCustomerRequest) patch() models.CustomerPatch {
	return models.CustomerPatch{
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		Location: r.Location,
		Status:   r.Status,
	}
}

type productRequest struct {
	StoreID      flexID        `json:"storeId"`
	ProductID    flexID        `json:"productId"`
	ProductIndex *int          `json:"productIndex"`
	Product      *productInput `json:"product"`
}

func (r productRequest) ref() service.ProductRef {
	return service.ProductRef{ID: int64(r.ProductID), Index: r.ProductIndex}
}

type bookingStatusRequest struct {
	BookingID flexID `json:"bookingId"`
	Status    string `json:"status"`
}

// saveChatRequest takes the chat id as "chatId" or, from older clients, "id".
type saveChatRequest struct {
	ChatID     string `json:"chatId"`
	LegacyID   string `json:"id"`
	SenderID   flexID `json:"senderId"`
	SenderType string `json:"senderType"`
	Message    string `json:"message"`
}

func (r saveChatRequest) draft() service.MessageDraft {
	chatID := r.ChatID
	if chatID == "" {
		chatID = r.LegacyID
	}
	return service.MessageDraft{
		ChatID:     chatID,
		SenderID:   int64(r.SenderID),
		SenderType: r.SenderType,
		Body:       r.Message,
	}
}

func firstSet(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
