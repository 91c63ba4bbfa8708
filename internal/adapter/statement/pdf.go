// Package statement renders account statements.
package statement

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/iho/goldenlock/internal/domain"
)

const dateLayout = "2006-01-02 15:04"

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 34, "L"},
	{"Type", 28, "L"},
	{"Counterparty", 38, "L"},
	{"Amount", 38, "R"},
	{"Balance", 42, "R"},
}

// PDFRenderer writes a snapshot as a single-document PDF statement.
type PDFRenderer struct {
	bankName string
	now      func() time.Time
}

// NewPDFRenderer creates a new PDFRenderer.
func NewPDFRenderer(bankName string) *PDFRenderer {
	return &PDFRenderer{
		bankName: bankName,
		now:      time.Now,
	}
}

// Render writes the statement for snap to w.
func (r *PDFRenderer) Render(w io.Writer, snap domain.Snapshot) error {
	generatedAt := r.now().UTC()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Statement %s", snap.Number), true)
	pdf.SetCreator(r.bankName, true)
	pdf.SetCreationDate(generatedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(r.bankName), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Account: %s (%s)", snap.Number, snap.Kind),
		fmt.Sprintf("Owner: %s", snap.Owner),
		fmt.Sprintf("Opened: %s", snap.OpenedAt.UTC().Format(dateLayout)),
		fmt.Sprintf("Generated: %s", generatedAt.Format(dateLayout)),
	} {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(snap.Transactions) == 0 {
		pdf.CellFormat(0, 7, "no transactions", "1", 1, "C", false, 0, "")
	}
	for _, txn := range snap.Transactions {
		cells := []string{
			txn.CreatedAt.UTC().Format(dateLayout),
			string(txn.Kind),
			txn.Counterparty,
			txn.SignedAmount().StringFixed(domain.AmountScale),
			txn.BalanceAfter.StringFixed(domain.AmountScale),
		}
		for i, col := range columns {
			pdf.CellFormat(col.width, 6, tr(cells[i]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Closing balance: %s", snap.Balance.StringFixed(domain.AmountScale)), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}
