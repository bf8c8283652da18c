package reservation

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"staylocal/internal/domain"
)

// Receipt renders a PDF receipt from the frozen pricing snapshot. Visible to
// the same parties as the reservation itself.
func (s *Service) Receipt(ctx context.Context, callerID int64, role domain.Role, id int64) ([]byte, string, error) {
	res, err := s.getOwned(ctx, callerID, role, id)
	if err != nil {
		return nil, "", err
	}

	title := s.propertyTitle(ctx, res.PropertyID)
	var guestName string
	if g, err := s.users.GetByID(ctx, res.GuestID); err == nil {
		guestName = g.Name
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Receipt #%d", res.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "StayLocal Receipt")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(50, 7, label)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 7, value)
		pdf.Ln(7)
	}

	line("Reservation", fmt.Sprintf("#%d", res.ID))
	line("Property", title)
	if guestName != "" {
		line("Guest", guestName)
	}
	line("Check-in", res.CheckIn.Format("Jan 2, 2006"))
	line("Check-out", res.CheckOut.Format("Jan 2, 2006"))
	line("Guests", fmt.Sprintf("%d", res.Guests))
	line("Status", string(res.Status))
	line("Payment", string(res.PaymentStatus))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Charges")
	pdf.Ln(9)

	money := func(v float64) string {
		return fmt.Sprintf("%.2f %s", v, res.Pricing.Currency)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(90, 7, label)
		pdf.CellFormat(40, 7, value, "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	row(fmt.Sprintf("%s x %d nights", money(res.Pricing.PerNight), res.Pricing.Nights), money(res.Pricing.Subtotal))
	row("Service fee", money(res.Pricing.ServiceFee))
	row("Taxes", money(res.Pricing.Taxes))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(90, 8, "Total")
	pdf.CellFormat(40, 8, money(res.Pricing.Total), "T", 0, "R", false, 0, "")
	pdf.Ln(10)

	if res.Cancellation != nil {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Cancelled on %s. Refund issued: %s.",
			res.Cancellation.CancelledAt.Format("Jan 2, 2006"),
			money(res.Cancellation.RefundAmount)))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("receipt-%d.pdf", res.ID), nil
}
