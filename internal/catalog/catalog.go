// Package catalog holds the starter products a newly registered store gets
// when it registers without its own product list.
package catalog

import (
	"strings"

	"github.com/safar/localkirana/internal/models"
)

const (
	Grocery     = "grocery"
	Medical     = "medical"
	Stationery  = "stationery"
	Electronics = "electronics"
	General     = "general"
)

type item struct {
	name  string
	price string
}

// Catalog maps a store category to its starter products. It is immutable
// after construction; Products always returns a fresh copy.
type Catalog struct {
	fallback string
	items    map[string][]item
}

func Default() *Catalog {
	return &Catalog{
		fallback: General,
		items: map[string][]item{
			Grocery: {
				{"Rice (1kg)", "₹80"},
				{"Dal (1kg)", "₹120"},
				{"Oil (1L)", "₹150"},
				{"Sugar (1kg)", "₹45"},
			},
			Medical: {
				{"Paracetamol", "₹25"},
				{"Cough Syrup", "₹85"},
				{"Bandages", "₹30"},
				{"Antiseptic", "₹45"},
			},
			Stationery: {
				{"Notebook", "₹25"},
				{"Pen Set", "₹50"},
				{"Pencil Box", "₹75"},
				{"Eraser", "₹5"},
			},
			Electronics: {
				{"Mobile Charger", "₹299"},
				{"Earphones", "₹599"},
				{"Power Bank", "₹1299"},
				{"Phone Case", "₹199"},
			},
			General: {
				{"Soap", "₹30"},
				{"Shampoo", "₹120"},
				{"Toothpaste", "₹45"},
				{"Detergent", "₹80"},
			},
		},
	}
}

// Products returns the starter products for category, numbered from 1 and
// marked available. Unknown categories get the general list.
func (c *Catalog) Products(category string) []models.Product {
	items, ok := c.items[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		items = c.items[c.fallback]
	}

	products := make([]models.Product, 0, len(items))
	for i, it := range items {
		products = append(products, models.Product{
			ID:        int64(i + 1),
			Name:      it.name,
			Price:     it.price,
			Available: true,
		})
	}
	return products
}

func (c *Catalog) Categories() []string {
	return []string{Grocery, Medical, Stationery, Electronics, General}
}
