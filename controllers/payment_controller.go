package controllers

import (
	"errors"

	"github.com/Mina-Sayed/tocaan-payment-api/config"
	"github.com/Mina-Sayed/tocaan-payment-api/models"
	"github.com/Mina-Sayed/tocaan-payment-api/payments"
	"github.com/Mina-Sayed/tocaan-payment-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// paymentResolver holds the process-wide method table, built once at
// startup and never mutated afterwards.
var paymentResolver = payments.NewResolver()

// ProcessPayment charges a confirmed order through the gateway configured
// for the requested method. A failed gateway outcome still answers 201;
// the payment is simply recorded as failed.
func ProcessPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c, user, "Payments")
	if !ok {
		return
	}

	var req payments.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Payment rejected - invalid request for order %d: %v", order.ID, err)
		utils.ValidationError(c, "Invalid payment data", err.Error())
		return
	}

	if !paymentResolver.Supports(req.Method) {
		utils.LogError("Payment rejected - unsupported method %q for order %d", req.Method, order.ID)
		utils.ValidationError(c, "Unsupported payment method", gin.H{"supported_methods": paymentResolver.Methods()})
		return
	}

	if order.Status != models.OrderStatusConfirmed {
		utils.LogError("Payment rejected - order %d is %s, not confirmed", order.ID, order.Status)
		utils.Conflict(c, "Payments can only be processed for confirmed orders.")
		return
	}
	if order.HasSuccessfulPayment() {
		utils.LogError("Payment rejected - order %d already paid", order.ID)
		utils.Conflict(c, "Order already has a successful payment.")
		return
	}

	service := payments.NewService(config.DB, paymentResolver)
	payment, err := service.Process(&order, req)
	if err != nil {
		if appErr := utils.GetAppError(err); appErr != nil {
			// The in-transaction guard lost a race or state changed
			// between the pre-check and the lock.
			utils.Error(c, appErr.Code, appErr.Message, nil)
			return
		}
		if errors.Is(err, payments.ErrUnsupportedMethod) || errors.Is(err, payments.ErrMisconfiguredGateway) {
			utils.LogError("Payment failed - gateway configuration error for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Payment gateway configuration error", nil)
			return
		}
		utils.LogError("Payment failed for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to process payment", err.Error())
		return
	}

	utils.LogInfo("Payment %s recorded for order %d with status %s",
		payment.PaymentReference, order.ID, payment.Status)
	utils.Created(c, "Payment processed", gin.H{"payment": payment})
}

// ListOrderPayments lists payments recorded against one of the user's orders
func ListOrderPayments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c, user)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Payment{}).Where("order_id = ?", order.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count payments for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to fetch payments", err.Error())
		return
	}

	var results []models.Payment
	if err := query.Order("created_at DESC").
		Limit(pagination.PerPage).
		Offset(pagination.Offset).
		Find(&results).Error; err != nil {
		utils.LogError("Failed to fetch payments for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to fetch payments", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Payments retrieved successfully", gin.H{"payments": results},
		total, pagination.Page, pagination.PerPage)
}

// ListPayments lists payments across all of the user's orders with
// optional status and method filters
func ListPayments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := userPaymentsQuery(c, user)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count payments for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch payments", err.Error())
		return
	}

	var results []models.Payment
	if err := query.Order("payments.created_at DESC").
		Limit(pagination.PerPage).
		Offset(pagination.Offset).
		Find(&results).Error; err != nil {
		utils.LogError("Failed to fetch payments for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch payments", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Payments retrieved successfully", gin.H{"payments": results},
		total, pagination.Page, pagination.PerPage)
}

// userPaymentsQuery scopes payments to the user's orders and applies the
// optional status/method query filters
func userPaymentsQuery(c *gin.Context, user models.User) *gorm.DB {
	query := config.DB.Model(&models.Payment{}).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("payments.status = ?", status)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("payments.method = ?", method)
	}
	return query
}
