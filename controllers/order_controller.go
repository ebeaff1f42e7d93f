package controllers

import (
	"strconv"

	"github.com/Mina-Sayed/tocaan-payment-api/config"
	"github.com/Mina-Sayed/tocaan-payment-api/models"
	"github.com/Mina-Sayed/tocaan-payment-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrderItemRequest represents one line item in an order request
type OrderItemRequest struct {
	ProductName string  `json:"product_name" binding:"required,max=255"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

// CreateOrderRequest represents the order creation request body
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name" binding:"required,max=255"`
	CustomerEmail   string             `json:"customer_email" binding:"required,email,max=255"`
	CustomerPhone   string             `json:"customer_phone" binding:"omitempty,max=50"`
	CustomerAddress string             `json:"customer_address" binding:"omitempty,max=255"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest represents the partial order update request body.
// Items, when present, replace the existing set wholesale.
type UpdateOrderRequest struct {
	CustomerName    *string             `json:"customer_name" binding:"omitempty,max=255"`
	CustomerEmail   *string             `json:"customer_email" binding:"omitempty,email,max=255"`
	CustomerPhone   *string             `json:"customer_phone" binding:"omitempty,max=50"`
	CustomerAddress *string             `json:"customer_address" binding:"omitempty,max=255"`
	Status          *string             `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	Items           *[]OrderItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// buildOrderItems converts request items into order items with decimal
// line totals. line_total = round(quantity * unit_price, 2), half up.
func buildOrderItems(items []OrderItemRequest) []models.OrderItem {
	built := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		unitPrice := decimal.NewFromFloat(item.UnitPrice)
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		built = append(built, models.OrderItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
	}
	return built
}

// orderTotal sums the line totals of all items
func orderTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total.Round(2)
}

// CreateOrder creates an order with its items in one transaction
func CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Order creation failed - invalid request for user %d: %v", user.ID, err)
		utils.ValidationError(c, "Invalid order data", err.Error())
		return
	}

	items := buildOrderItems(req.Items)
	order := models.Order{
		UserID:          user.ID,
		Status:          models.OrderStatusPending,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Total:           orderTotal(items),
		Items:           items,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		utils.LogError("Order creation failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create order", err.Error())
		return
	}

	utils.LogInfo("Order %d created for user %d with total %s", order.ID, user.ID, order.Total.StringFixed(2))
	utils.Created(c, "Order created successfully", gin.H{"order": order})
}

// ListOrders lists the user's orders with optional status filter
func ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("created_at DESC").
		Limit(pagination.PerPage).
		Offset(pagination.Offset).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", gin.H{"orders": orders},
		total, pagination.Page, pagination.PerPage)
}

// GetOrder returns a single order owned by the user
func GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c, user, "Items")
	if !ok {
		return
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": order})
}

// UpdateOrder partially updates an order. When items are provided the
// existing set is replaced wholesale and the total recomputed; this is
// rejected once any payment exists.
func UpdateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c, user, "Items", "Payments")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Order update failed - invalid request for order %d: %v", order.ID, err)
		utils.ValidationError(c, "Invalid order data", err.Error())
		return
	}

	if req.Items != nil && order.HasPayments() {
		utils.LogError("Order update rejected - order %d has payments", order.ID)
		utils.Conflict(c, "Order items cannot be modified while payments exist.")
		return
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		updates["customer_email"] = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = *req.CustomerPhone
	}
	if req.CustomerAddress != nil {
		updates["customer_address"] = *req.CustomerAddress
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for order %d: %v", order.ID, tx.Error)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	if req.Items != nil {
		items := buildOrderItems(*req.Items)
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to clear items for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to update order", err.Error())
			return
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to create items for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to update order", err.Error())
			return
		}
		updates["total"] = orderTotal(items)
	}

	if len(updates) > 0 {
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to update order", err.Error())
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit update for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", err.Error())
		return
	}

	var updated models.Order
	if err := config.DB.Preload("Items").First(&updated, order.ID).Error; err != nil {
		utils.LogError("Failed to reload order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to fetch updated order", err.Error())
		return
	}

	utils.LogInfo("Order %d updated for user %d", order.ID, user.ID)
	utils.Success(c, "Order updated successfully", gin.H{"order": updated})
}

// DeleteOrder deletes an order and its items. Rejected once any payment
// exists, regardless of payment status.
func DeleteOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c, user, "Payments")
	if !ok {
		return
	}

	if order.HasPayments() {
		utils.LogError("Order delete rejected - order %d has payments", order.ID)
		utils.Conflict(c, "Order cannot be deleted while payments exist.")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for order %d: %v", order.ID, tx.Error)
		utils.InternalServerError(c, "Failed to delete order", nil)
		return
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete items for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to delete order", err.Error())
		return
	}
	if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to delete order", err.Error())
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit delete for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to delete order", err.Error())
		return
	}

	utils.LogInfo("Order %d deleted by user %d", order.ID, user.ID)
	utils.Success(c, "Order deleted successfully", nil)
}

// currentUser pulls the authenticated user out of the gin context
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	return userVal.(models.User), true
}

// findOrder loads an order by path id scoped to the owning user. Foreign
// orders answer 404, never 403, so order ids do not leak.
func findOrder(c *gin.Context, user models.User, preloads ...string) (models.Order, bool) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return models.Order{}, false
	}

	query := config.DB.Where("user_id = ?", user.ID)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var order models.Order
	if err := query.First(&order, orderID).Error; err != nil {
		utils.LogError("Order %d not found for user %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return models.Order{}, false
	}
	return order, true
}
