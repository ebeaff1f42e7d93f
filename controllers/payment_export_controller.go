package controllers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/Mina-Sayed/tocaan-payment-api/models"
	"github.com/Mina-Sayed/tocaan-payment-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// ExportPayments downloads the user's payment history as an Excel sheet,
// honouring the same status/method filters as the listing endpoint
func ExportPayments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var results []models.Payment
	if err := userPaymentsQuery(c, user).
		Order("payments.created_at DESC").
		Find(&results).Error; err != nil {
		utils.LogError("Failed to fetch payments for export, user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to export payments", err.Error())
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payments")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to export payments", err.Error())
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Reference", "Order ID", "Method", "Gateway", "Status", "Amount", "Created At"} {
		header.AddCell().SetString(title)
	}

	for _, payment := range results {
		row := sheet.AddRow()
		row.AddCell().SetString(payment.PaymentReference)
		row.AddCell().SetString(strconv.Itoa(int(payment.OrderID)))
		row.AddCell().SetString(payment.Method)
		row.AddCell().SetString(payment.Gateway)
		row.AddCell().SetString(payment.Status)
		row.AddCell().SetString(payment.Amount.StringFixed(2))
		row.AddCell().SetString(payment.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to export payments", err.Error())
		return
	}

	filename := "payments_" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
