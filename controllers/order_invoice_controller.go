package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Mina-Sayed/tocaan-payment-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadInvoice generates and returns a PDF invoice for the order
func DownloadInvoice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	order, ok := findOrder(c, user, "Items", "Payments")
	if !ok {
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Invoice")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Ln(8)
	pdf.Cell(40, 10, "Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(40, 10, "Customer: "+order.CustomerName)
	pdf.Ln(8)
	pdf.Cell(40, 10, "Status: "+order.Status)
	pdf.Ln(8)
	pdf.Cell(40, 10, "Total: "+order.Total.StringFixed(2))
	pdf.Ln(12)
	pdf.Cell(40, 10, "Items:")
	pdf.Ln(8)
	for _, item := range order.Items {
		pdf.Cell(40, 10, item.ProductName+" x"+strconv.Itoa(item.Quantity)+" - "+item.LineTotal.StringFixed(2))
		pdf.Ln(7)
	}
	if len(order.Payments) > 0 {
		pdf.Ln(5)
		pdf.Cell(40, 10, "Payments:")
		pdf.Ln(8)
		for _, payment := range order.Payments {
			pdf.Cell(40, 10, payment.Method+" ("+payment.Status+") - "+payment.Amount.StringFixed(2))
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render invoice for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%d.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
