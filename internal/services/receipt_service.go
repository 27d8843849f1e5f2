package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"pg-backend/internal/rentcycle"
	"pg-backend/internal/repositories"
	"pg-backend/internal/timeutil"
)

type ReceiptService struct {
	payments *repositories.RentPaymentRepository
	tenants  *repositories.TenantRepository
	cycles   *repositories.RentCycleRepository
	settings *SystemSettingService
}

func NewReceiptService(
	payments *repositories.RentPaymentRepository,
	tenants *repositories.TenantRepository,
	cycles *repositories.RentCycleRepository,
	settings *SystemSettingService,
) *ReceiptService {
	return &ReceiptService{
		payments: payments,
		tenants:  tenants,
		cycles:   cycles,
		settings: settings,
	}
}

// GeneratePDF renders a rent receipt for one payment. Voided payments get no
// receipt.
func (s *ReceiptService) GeneratePDF(ctx context.Context, paymentID int) ([]byte, string, error) {
	payment, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, "", fmt.Errorf("payment not found: %w", err)
	}
	if payment.Status == rentcycle.StatusVoid {
		return nil, "", fmt.Errorf("payment %d is voided", paymentID)
	}

	tenant, err := s.tenants.Get(ctx, payment.TenantID)
	if err != nil {
		return nil, "", err
	}

	cycle, err := s.cycles.Get(ctx, payment.CycleID)
	if err != nil {
		return nil, "", err
	}

	pgName := "PG Manager"
	if setting, err := s.settings.Get(ctx, "pg_name"); err == nil && setting.SettingValue != "" {
		pgName = setting.SettingValue
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, pgName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, "Rent Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 7, "Receipt No: "+payment.ReceiptNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Date: "+timeutil.FormatIST(payment.PaymentDate, timeutil.DateLayout), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 7, "Reference: "+payment.ReferenceID, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	rows := [][2]string{
		{"Tenant", tenant.Name},
		{"Phone", tenant.Phone},
		{"Period", cycle.Start.Format(timeutil.DateLayout) + " to " + cycle.End.Format(timeutil.DateLayout)},
		{"Rent Due", fmt.Sprintf("Rs. %.2f", payment.ActualRentAmount)},
		{"Amount Paid", fmt.Sprintf("Rs. %.2f", payment.AmountPaid)},
		{"Payment Method", payment.PaymentMethod},
		{"Status", payment.Status},
	}
	if payment.Status == rentcycle.StatusPartial {
		rows = append(rows, [2]string{"Balance Due", fmt.Sprintf("Rs. %.2f", payment.ActualRentAmount-payment.AmountPaid)})
	}
	if payment.Remarks != "" {
		rows = append(rows, [2]string{"Remarks", payment.Remarks})
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(140, 8, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "This is a computer generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render receipt: %w", err)
	}

	filename := fmt.Sprintf("receipt_%s.pdf", payment.ReceiptNumber)
	return buf.Bytes(), filename, nil
}
