package stats

import (
	"sort"
	"time"

	"mesa-backend/internal/database"
	"mesa-backend/internal/models"
)

type CategorySales struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type ProductSales struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Report struct {
	TotalRevenue       float64         `json:"total_revenue"`
	TotalService       float64         `json:"total_service"`
	OrdersCount        int             `json:"orders_count"`
	ReviewsCount       int64           `json:"reviews_count"`
	CategoriesMostSold []CategorySales `json:"categories_most_sold"`
	ProductsMostSold   []ProductSales  `json:"products_most_sold"`
	Window             Window          `json:"window"`
}

// Compute aggregates orders created in [start, end): revenue, the estimated
// service fee from the establishment's tax percentage, and per-category /
// per-product quantities sorted by quantity sold.
func Compute(estabID uint, start, end time.Time) (*Report, error) {
	var estab models.Establishment
	if err := database.DB.First(&estab, estabID).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	err := database.DB.
		Where("establishment_id = ? AND created_at >= ? AND created_at < ?", estabID, start, end).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	report := &Report{
		Window:             Window{Start: start, End: end},
		OrdersCount:        len(orders),
		CategoriesMostSold: []CategorySales{},
		ProductsMostSold:   []ProductSales{},
	}
	for _, o := range orders {
		report.TotalRevenue += o.Total
	}
	report.TotalService = report.TotalRevenue * (estab.ServiceTax / 100)

	err = database.DB.Model(&models.Review{}).
		Where("establishment_id = ? AND created_at >= ? AND created_at < ?", estabID, start, end).
		Count(&report.ReviewsCount).Error
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return report, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	var items []models.OrderItem
	if err := database.DB.Where("order_id IN ?", orderIDs).Find(&items).Error; err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	var products []models.Product
	err = database.DB.Where("id IN ?", productIDs).Preload("Category").Find(&products).Error
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	catQty := map[string]int{}
	prodQty := map[uint]*ProductSales{}
	for _, it := range items {
		categoryName := "Uncategorized"
		productName := "Product"
		if p, ok := productByID[it.ProductID]; ok {
			productName = p.Name
			if p.Category != nil {
				categoryName = p.Category.Name
			}
		}
		catQty[categoryName] += it.Quantity

		if prev, ok := prodQty[it.ProductID]; ok {
			prev.Quantity += it.Quantity
		} else {
			prodQty[it.ProductID] = &ProductSales{
				ID:        it.ProductID,
				Name:      productName,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			}
		}
	}

	for name, qty := range catQty {
		report.CategoriesMostSold = append(report.CategoriesMostSold, CategorySales{Category: name, Quantity: qty})
	}
	sort.Slice(report.CategoriesMostSold, func(i, j int) bool {
		return report.CategoriesMostSold[i].Quantity > report.CategoriesMostSold[j].Quantity
	})
	for _, p := range prodQty {
		report.ProductsMostSold = append(report.ProductsMostSold, *p)
	}
	sort.Slice(report.ProductsMostSold, func(i, j int) bool {
		return report.ProductsMostSold[i].Quantity > report.ProductsMostSold[j].Quantity
	})

	return report, nil
}

// DailyWindow is "today so far", shrunk to start at the last closure when one
// happened today, so sealed periods are not counted twice.
func DailyWindow(estab *models.Establishment) Window {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if estab.LastClosureAt != nil && estab.LastClosureAt.After(start) {
		start = *estab.LastClosureAt
	}
	return Window{Start: start, End: now}
}
