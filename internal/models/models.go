package models

type Store struct {
	ID               int64     `json:"id" db:"id"`
	ShopName         string    `json:"shopName" db:"shop_name"`
	OwnerName        string    `json:"ownerName" db:"owner_name"`
	Phone            string    `json:"phone" db:"phone"`
	Email            string    `json:"email" db:"email"`
	Address          string    `json:"address" db:"address"`
	Pincode          string    `json:"pincode" db:"pincode"`
	Category         string    `json:"category" db:"category"`
	Status           string    `json:"status" db:"status"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	RegistrationDate Timestamp `json:"registrationDate" db:"registration_date"`
	Products         []Product `json:"products" db:"-"`
}

type Product struct {
	ID          int64  `json:"id" db:"id"`
	StoreID     int64  `json:"-" db:"store_id"`
	Name        string `json:"name" db:"name"`
	Price       string `json:"price" db:"price"`
	Description string `json:"description,omitempty" db:"description"`
	Available   bool   `json:"available" db:"available"`
}

type Customer struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Phone            string    `json:"phone" db:"phone"`
	Email            string    `json:"email" db:"email"`
	Location         string    `json:"location" db:"location"`
	Status           string    `json:"status" db:"status"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	RegistrationDate Timestamp `json:"registrationDate" db:"registration_date"`
}

type Booking struct {
	ID                int64      `json:"id" db:"id"`
	CustomerID        int64      `json:"customerId" db:"customer_id"`
	StoreID           int64      `json:"storeId" db:"store_id"`
	ProductID         *int64     `json:"productId" db:"product_id"`
	CustomerName      string     `json:"customerName" db:"customer_name"`
	CustomerPhone     string     `json:"customerPhone" db:"customer_phone"`
	StoreName         string     `json:"storeName" db:"store_name"`
	StorePhone        string     `json:"storePhone" db:"store_phone"`
	ItemName          string     `json:"itemName" db:"item_name"`
	Status            string     `json:"status" db:"status"`
	BookingDate       Timestamp  `json:"bookingDate" db:"booking_date"`
	StatusUpdatedDate *Timestamp `json:"statusUpdatedDate,omitempty" db:"status_updated_date"`
}

type Request struct {
	ID               int64     `json:"id" db:"id"`
	CustomerID       int64     `json:"customerId" db:"customer_id"`
	CustomerName     string    `json:"customerName" db:"customer_name"`
	CustomerPhone    string    `json:"customerPhone" db:"customer_phone"`
	CustomerLocation string    `json:"customerLocation" db:"customer_location"`
	ItemName         string    `json:"itemName" db:"item_name"`
	Quantity         string    `json:"quantity" db:"quantity"`
	Description      string    `json:"description" db:"description"`
	TargetStore      string    `json:"targetStore" db:"target_store"`
	Status           string    `json:"status" db:"status"`
	RequestDate      Timestamp `json:"requestDate" db:"request_date"`
}

type Participant struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

type Chat struct {
	ChatID          string      `json:"chatId"`
	Participant1    Participant `json:"participant1"`
	Participant2    Participant `json:"participant2"`
	LastMessage     string      `json:"lastMessage"`
	LastMessageTime *Timestamp  `json:"lastMessageTime"`
	Messages        []Message   `json:"messages"`
}

type Message struct {
	ID         int64     `json:"id" db:"id"`
	ChatID     string    `json:"chatId" db:"chat_id"`
	SenderID   int64     `json:"senderId" db:"sender_id"`
	SenderType string    `json:"senderType" db:"sender_type"`
	Body       string    `json:"message" db:"message"`
	CreatedAt  Timestamp `json:"createdAt" db:"created_at"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"
	BookingStatusCompleted = "completed"
)

const RequestStatusPending = "pending"

const (
	ParticipantCustomer = "customer"
	ParticipantStore    = "store"
)

// AllStores is the request target used when a customer does not pick a store.
const AllStores = "All Stores"

// StorePatch lists the store fields a profile update may change. Nil fields are left alone.
type StorePatch struct {
	ShopName  *string
	OwnerName *string
	Phone     *string
	Email     *string
	Address   *string
	Pincode   *string
	Category  *string
	Status    *string
}

func (p StorePatch) IsEmpty() bool {
	return p.ShopName == nil && p.OwnerName == nil && p.Phone == nil && p.Email == nil &&
		p.Address == nil && p.Pincode == nil && p.Category == nil && p.Status == nil
}

func (p StorePatch) Apply(s *Store) {
	setIf(&s.ShopName, p.ShopName)
	setIf(&s.OwnerName, p.OwnerName)
	setIf(&s.Phone, p.Phone)
	setIf(&s.Email, p.Email)
	setIf(&s.Address, p.Address)
	setIf(&s.Pincode, p.Pincode)
	setIf(&s.Category, p.Category)
	setIf(&s.Status, p.Status)
}

type CustomerPatch struct {
	Name     *string
	Phone    *string
	Email    *string
	Location *string
	Status   *string
}

func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil && p.Location == nil && p.Status == nil
}

func (p CustomerPatch) Apply(c *Customer) {
	setIf(&c.Name, p.Name)
	setIf(&c.Phone, p.Phone)
	setIf(&c.Email, p.Email)
	setIf(&c.Location, p.Location)
	setIf(&c.Status, p.Status)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
