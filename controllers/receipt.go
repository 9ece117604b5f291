package controllers

import (
	"bytes"
	"fmt"

	"breboot/models"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReceiptPDF renders a simple payment receipt.
func GenerateReceiptPDF(payment models.Payment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Breboot Payment Receipt")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 12)
	rows := [][2]string{
		{"Transaction ID", payment.Txnid},
		{"Gateway Reference", payment.PayuID},
		{"Product", payment.Productinfo},
		{"Name", payment.Firstname},
		{"Email", payment.Email},
		{"Amount", fmt.Sprintf("%.2f INR", payment.Amount)},
		{"Status", payment.Status},
		{"Date", payment.CreatedAt.Format("02 Jan 2006 15:04")},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 8, row[0], "1", 0, "", false, 0, "")
		pdf.CellFormat(120, 8, row[1], "1", 1, "", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 8, "Kindly save your transaction ID for any further queries.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReceiptSender delivers a payment confirmation to the payer.
type ReceiptSender interface {
	SendReceipt(payment models.Payment) error
}

// Receipts is the shared receipt sender, swappable like the OTP senders.
var Receipts ReceiptSender = MailReceiptSender{}

// MailReceiptSender mails the generated PDF receipt through SMTP.
type MailReceiptSender struct{}

func (MailReceiptSender) SendReceipt(payment models.Payment) error {
	receipt, err := GenerateReceiptPDF(payment)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Payment successful for transaction %s. Your receipt is attached.", payment.Txnid)
	return SendReceiptEmail(msg, payment.Email, "receipt.pdf", receipt)
}
