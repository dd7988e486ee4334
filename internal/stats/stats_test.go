package stats

import (
	"fmt"
	"testing"
	"time"

	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	return db
}

func TestComputeAggregatesWindow(t *testing.T) {
	db := setupDB(t)

	estab := models.Establishment{Name: "Bar do Zé", ServiceTax: 10}
	require.NoError(t, db.Create(&estab).Error)
	drinks := models.Category{EstablishmentID: estab.ID, Name: "Drinks"}
	require.NoError(t, db.Create(&drinks).Error)
	beer := models.Product{EstablishmentID: estab.ID, CategoryID: &drinks.ID, Name: "Beer", Price: 5}
	snack := models.Product{EstablishmentID: estab.ID, Name: "Snack", Price: 8}
	require.NoError(t, db.Create(&beer).Error)
	require.NoError(t, db.Create(&snack).Error)
	table := models.Table{EstablishmentID: estab.ID, Number: "1", Open: true}
	require.NoError(t, db.Create(&table).Error)

	now := time.Now()
	makeOrder := func(createdAt time.Time, items []models.OrderItem) {
		var total float64
		for _, it := range items {
			total += it.UnitPrice * float64(it.Quantity)
		}
		order := models.Order{
			EstablishmentID: estab.ID,
			TableID:         table.ID,
			Status:          models.OrderStatusSent,
			Total:           total,
			CreatedAt:       createdAt,
			Items:           items,
		}
		require.NoError(t, db.Create(&order).Error)
	}

	// Before the window: must not be counted.
	makeOrder(now.Add(-2*time.Hour), []models.OrderItem{
		{ProductID: beer.ID, Quantity: 10, UnitPrice: 5},
	})
	// In the window.
	makeOrder(now.Add(-10*time.Minute), []models.OrderItem{
		{ProductID: beer.ID, Quantity: 3, UnitPrice: 5},
		{ProductID: snack.ID, Quantity: 1, UnitPrice: 8},
	})
	makeOrder(now.Add(-5*time.Minute), []models.OrderItem{
		{ProductID: beer.ID, Quantity: 2, UnitPrice: 5},
	})

	review := models.Review{EstablishmentID: &estab.ID, Stars: 5}
	require.NoError(t, db.Create(&review).Error)

	report, err := Compute(estab.ID, now.Add(-30*time.Minute), now.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 33.00, report.TotalRevenue) // 15+8 and 10
	assert.InDelta(t, 3.30, report.TotalService, 1e-9)
	assert.Equal(t, 2, report.OrdersCount)
	assert.EqualValues(t, 1, report.ReviewsCount)

	require.Len(t, report.CategoriesMostSold, 2)
	assert.Equal(t, "Drinks", report.CategoriesMostSold[0].Category)
	assert.Equal(t, 5, report.CategoriesMostSold[0].Quantity)
	assert.Equal(t, "Uncategorized", report.CategoriesMostSold[1].Category)

	require.Len(t, report.ProductsMostSold, 2)
	assert.Equal(t, beer.ID, report.ProductsMostSold[0].ID)
	assert.Equal(t, 5, report.ProductsMostSold[0].Quantity)
	assert.Equal(t, 5.00, report.ProductsMostSold[0].UnitPrice)
}

func TestComputeEmptyWindow(t *testing.T) {
	db := setupDB(t)
	estab := models.Establishment{Name: "Quiet", ServiceTax: 12}
	require.NoError(t, db.Create(&estab).Error)

	report, err := Compute(estab.ID, time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.OrdersCount)
	assert.Empty(t, report.CategoriesMostSold)
	assert.Empty(t, report.ProductsMostSold)
}

func TestDailyWindowStartsAtLastClosure(t *testing.T) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	estab := &models.Establishment{}
	w := DailyWindow(estab)
	assert.Equal(t, midnight, w.Start)

	// A closure earlier today moves the start forward.
	closure := now.Add(-time.Hour)
	if closure.Before(midnight) {
		closure = midnight.Add(time.Minute)
	}
	estab.LastClosureAt = &closure
	w = DailyWindow(estab)
	assert.Equal(t, closure, w.Start)

	// A closure from yesterday does not.
	old := midnight.Add(-2 * time.Hour)
	estab.LastClosureAt = &old
	w = DailyWindow(estab)
	assert.Equal(t, midnight, w.Start)
}
