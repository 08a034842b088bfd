package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/example/mlmadmin/internal/referral"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 7.0
)

// WritePDF writes the table on landscape A4 pages, repeating the header
// row on each page.
func WritePDF(w io.Writer, t Table) error {
	if len(t.Headers) == 0 {
		return errors.New("export: table has no headers")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin) / float64(len(t.Headers))

	title := t.Title
	if title == "" {
		title = t.Sheet
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(237, 233, 254)
		for _, h := range t.Headers {
			pdf.CellFormat(colW, pdfRowHeight, tr(fit(pdf, h, colW)), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	header()

	for _, row := range t.Rows {
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			header()
		}
		for col := range t.Headers {
			var cell string
			if col < len(row) {
				cell = Text(row[col])
			}
			pdf.CellFormat(colW, pdfRowHeight, tr(fit(pdf, cell, colW)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteTreePDF writes a shaped referral tree as an indented outline.
func WriteTreePDF(w io.Writer, title string, root referral.Node) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	referral.Walk(root, func(n referral.Node, level int) {
		indent := float64(level-1) * 8
		pdf.SetX(pdfMargin + indent)
		if level == 1 {
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetFont("Helvetica", "", 9)
		}
		line := fmt.Sprintf("L%d  %s  |  Joined: %s  |  Referrals: %d  |  Wallet: %s",
			level, n.Name, n.JoinDate, n.TotalReferrals, n.Wallet.StringFixed(2))
		if n.ReferralCode != "" {
			line += "  |  Code: " + n.ReferralCode
		}
		if n.HiddenChildren > 0 {
			line += fmt.Sprintf("  (+%d more)", n.HiddenChildren)
		}
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	})

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// PDFBytes renders the table PDF into memory.
func PDFBytes(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TreeTable flattens a referral tree for spreadsheet export.
func TreeTable(root referral.Node) Table {
	t := Table{
		Title:   "Referral Tree",
		Sheet:   "Referral Tree",
		Headers: []string{"Level", "Name", "Email", "Referral Code", "Referrals", "Wallet", "Joined", "Status"},
	}
	referral.Walk(root, func(n referral.Node, level int) {
		t.Rows = append(t.Rows, []any{level, n.Name, n.Email, n.ReferralCode, n.TotalReferrals, n.Wallet, n.JoinDate, n.Status})
	})
	return t
}

func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	max := width - 2
	if pdf.GetStringWidth(s) <= max {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > max {
		r = r[:len(r)-1]
	}
	return strings.TrimSpace(string(r)) + "..."
}
