package filestore

import (
	"time"

	"github.com/safar/localkirana/internal/auth"
	"github.com/safar/localkirana/internal/models"
)

var seedDate = models.NewTimestamp(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

type sampleStore struct {
	store    models.Store
	password string
}

func sampleStores(hasher auth.PasswordHasher) ([]storeRecord, error) {
	samples := []sampleStore{
		{
			store: models.Store{
				ID:        1,
				ShopName:  "Sharma General Store",
				OwnerName: "Raj Sharma",
				Phone:     "+91 9876543210",
				Email:     "raj@sharma.com",
				Address:   "123 Main Street, Sector 15",
				Pincode:   "110001",
				Category:  "grocery",
				Products: []models.Product{
					{ID: 1, Name: "Rice (1kg)", Price: "₹80", Available: true},
					{ID: 2, Name: "Dal (1kg)", Price: "₹120", Available: true},
					{ID: 3, Name: "Oil (1L)", Price: "₹150", Available: true},
					{ID: 4, Name: "Sugar (1kg)", Price: "₹45", Available: false},
				},
			},
			password: "password123",
		},
		{
			store: models.Store{
				ID:        2,
				ShopName:  "City Medical Store",
				OwnerName: "Dr. Priya Patel",
				Phone:     "+91 9876543211",
				Email:     "priya@citymedical.com",
				Address:   "456 Health Plaza, Medical District",
				Pincode:   "110002",
				Category:  "medical",
				Products: []models.Product{
					{ID: 1, Name: "Paracetamol", Price: "₹25", Available: true},
					{ID: 2, Name: "Cough Syrup", Price: "₹85", Available: true},
					{ID: 3, Name: "Bandages", Price: "₹30", Available: true},
					{ID: 4, Name: "Thermometer", Price: "₹200", Available: true},
				},
			},
			password: "medical123",
		},
		{
			store: models.Store{
				ID:        3,
				ShopName:  "Tech Electronics Hub",
				OwnerName: "Amit Kumar",
				Phone:     "+91 9876543212",
				Email:     "amit@techhub.com",
				Address:   "789 Electronics Market, Tech City",
				Pincode:   "110003",
				Category:  "electronics",
				Products: []models.Product{
					{ID: 1, Name: "Mobile Charger", Price: "₹299", Available: true},
					{ID: 2, Name: "Earphones", Price: "₹599", Available: true},
					{ID: 3, Name: "Power Bank", Price: "₹1299", Available: false},
					{ID: 4, Name: "Phone Case", Price: "₹199", Available: true},
				},
			},
			password: "tech123",
		},
	}

	records := make([]storeRecord, 0, len(samples))
	for _, sample := range samples {
		hash, err := hasher.Hash(sample.password)
		if err != nil {
			return nil, err
		}

		s := sample.store
		s.Status = models.StatusActive
		s.RegistrationDate = seedDate
		s.PasswordHash = hash

		rec := newStoreRecord(s)
		rec.ProductSeq = int64(len(s.Products))
		records = append(records, rec)
	}
	return records, nil
}

func sampleCustomers(hasher auth.PasswordHasher) ([]customerRecord, error) {
	hash, err := hasher.Hash("customer123")
	if err != nil {
		return nil, err
	}

	return []customerRecord{newCustomerRecord(models.Customer{
		ID:               1,
		Name:             "John Doe",
		Phone:            "+91 9876543213",
		Email:            "john@example.com",
		Location:         "Sector 15, Delhi",
		Status:           models.StatusActive,
		PasswordHash:     hash,
		RegistrationDate: seedDate,
	})}, nil
}
