package orders

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mesa-backend/internal/database"
	"mesa-backend/internal/models"
	"mesa-backend/internal/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// OpenTable returns the open table with the given number, creating it when
// none exists. A previously closed number always gets a fresh row, so a new
// guest never sees the previous period's orders.
func OpenTable(estabID uint, number string) (*models.Table, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "table number is required")
	}

	var table models.Table
	err := database.DB.
		Where("establishment_id = ? AND number = ? AND open = ?", estabID, number, true).
		First(&table).Error
	if err == nil {
		return &table, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	table = models.Table{EstablishmentID: estabID, Number: number, Open: true}
	if err := database.DB.Create(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// ResolveTable finds a table by numeric ID, falling back to the number string
// scoped to the establishment. Number lookup takes the most recent row, since
// the same number is reused across seating periods.
func ResolveTable(idOrNumber string, estabID uint) (*models.Table, error) {
	if id, err := strconv.Atoi(idOrNumber); err == nil && id > 0 {
		var table models.Table
		if err := database.DB.First(&table, id).Error; err == nil {
			return &table, nil
		}
	}

	if estabID == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "table not found")
	}
	var table models.Table
	err := database.DB.
		Where("establishment_id = ? AND number = ?", estabID, idOrNumber).
		Order("id desc").
		First(&table).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "table not found")
	}
	return &table, nil
}

// SubmitOrder validates the cart, resolves or opens the table, snapshots
// current product prices into the items and persists the order. When no
// waiter is given it falls back to any waiter on record; with none the whole
// call fails before anything is written.
func SubmitOrder(estabID uint, tableNumber string, items []ItemInput, waiterID *uint) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "order must have at least one item")
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "item quantity must be a positive integer")
		}
	}

	if waiterID == nil {
		var waiter models.Waiter
		err := database.DB.Where("establishment_id = ?", estabID).First(&waiter).Error
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "no waiter identifiable for this establishment")
		}
		waiterID = &waiter.ID
	}

	productIDs := make([]uint, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	var products []models.Product
	if err := database.DB.
		Where("establishment_id = ? AND id IN ?", estabID, productIDs).
		Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, it := range items {
		if _, ok := byID[it.ProductID]; !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("product %d does not belong to this establishment", it.ProductID))
		}
	}

	table, err := OpenTable(estabID, tableNumber)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		EstablishmentID: estabID,
		TableID:         table.ID,
		WaiterID:        waiterID,
		Status:          models.OrderStatusSent,
	}
	for _, it := range items {
		p := byID[it.ProductID]
		order.Items = append(order.Items, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
		order.Total += p.Price * float64(it.Quantity)
	}

	if err := database.DB.Create(&order).Error; err != nil {
		return nil, err
	}
	order.Table = table

	notify.Emit(models.NotificationOrderCreated, models.Notification{
		EstablishmentID: estabID,
		Type:            models.NotificationOrderCreated,
		TableID:         &table.ID,
		OrderID:         &order.ID,
		Title:           "New order",
		Body:            fmt.Sprintf("Table %s sent an order with %d item(s)", table.Number, len(order.Items)),
	}, fiber.Map{
		"order_id":     order.ID,
		"table_number": table.Number,
		"items":        order.Items,
		"total":        order.Total,
	})

	log.Info().Uint("order_id", order.ID).Uint("table_id", table.ID).
		Float64("total", order.Total).Msg("order created")
	return &order, nil
}

// SetItemQuantity updates one line item. Quantity 0 deletes the row; either
// way the parent order's total is recomputed from the remaining items.
func SetItemQuantity(itemID uint, quantity int) (*models.Order, error) {
	if quantity < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "quantity must be 0 or greater")
	}

	var item models.OrderItem
	if err := database.DB.First(&item, itemID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "order item not found")
	}

	if quantity == 0 {
		if err := database.DB.Delete(&item).Error; err != nil {
			return nil, err
		}
	} else {
		item.Quantity = quantity
		if err := database.DB.Save(&item).Error; err != nil {
			return nil, err
		}
	}

	order, err := recomputeTotal(item.OrderID)
	if err != nil {
		return nil, err
	}

	notify.Emit(models.NotificationOrderUpdated, models.Notification{
		EstablishmentID: order.EstablishmentID,
		Type:            models.NotificationOrderUpdated,
		TableID:         &order.TableID,
		OrderID:         &order.ID,
		Title:           "Order updated",
		Body:            fmt.Sprintf("Order #%d items changed", order.ID),
	}, order)

	return order, nil
}

// SetStatus transitions the order to one of the known statuses.
func SetStatus(orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "status must be SENT, SERVED or CLOSED")
	}

	var order models.Order
	if err := database.DB.First(&order, orderID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	order.Status = status
	if err := database.DB.Save(&order).Error; err != nil {
		return nil, err
	}

	refreshed, err := loadOrder(order.ID)
	if err != nil {
		return nil, err
	}

	notify.Emit(models.NotificationOrderUpdated, models.Notification{
		EstablishmentID: order.EstablishmentID,
		Type:            models.NotificationOrderUpdated,
		TableID:         &order.TableID,
		OrderID:         &order.ID,
		Title:           "Order updated",
		Body:            fmt.Sprintf("Order #%d is now %s", order.ID, status),
	}, refreshed)

	return refreshed, nil
}

// CloseTable sums the bill across every order of the table, announces the
// close request while the table is still open (so dashboards can show a
// pending bill), then closes all orders and the table itself.
func CloseTable(table *models.Table, serviceFeePaid bool) (float64, error) {
	var orders []models.Order
	if err := database.DB.Where("table_id = ?", table.ID).Find(&orders).Error; err != nil {
		return 0, err
	}
	var total float64
	for _, o := range orders {
		total += o.Total
	}

	notify.Emit(models.NotificationCloseRequested, models.Notification{
		EstablishmentID: table.EstablishmentID,
		Type:            models.NotificationCloseRequested,
		TableID:         &table.ID,
		Title:           "Bill requested",
		Body:            fmt.Sprintf("Table %s requested the bill (%.2f)", table.Number, total),
	}, fiber.Map{
		"table_id":         table.ID,
		"table_number":     table.Number,
		"total":            total,
		"service_fee_paid": serviceFeePaid,
	})

	err := database.DB.Model(&models.Order{}).
		Where("table_id = ?", table.ID).
		Update("status", models.OrderStatusClosed).Error
	if err != nil {
		return 0, err
	}

	now := time.Now()
	table.Open = false
	table.ServiceFeePaid = serviceFeePaid
	table.ClosedAt = &now
	if err := database.DB.Save(table).Error; err != nil {
		return 0, err
	}

	log.Info().Uint("table_id", table.ID).Str("number", table.Number).
		Float64("total", total).Msg("table closed")
	return total, nil
}

// CallWaiter fires a waiter-call notification for the table. No state changes.
func CallWaiter(table *models.Table) {
	notify.Emit(models.NotificationWaiterCalled, models.Notification{
		EstablishmentID: table.EstablishmentID,
		Type:            models.NotificationWaiterCalled,
		TableID:         &table.ID,
		Title:           "Waiter called",
		Body:            fmt.Sprintf("Table %s is calling a waiter", table.Number),
	}, fiber.Map{
		"table_id":     table.ID,
		"table_number": table.Number,
	})
}

func recomputeTotal(orderID uint) (*models.Order, error) {
	var items []models.OrderItem
	if err := database.DB.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, err
	}
	var total float64
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}

	err := database.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total", total).Error
	if err != nil {
		return nil, err
	}
	return loadOrder(orderID)
}

func loadOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := database.DB.Preload("Items").Preload("Table").First(&order, orderID).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "order not found")
	}
	return &order, nil
}
