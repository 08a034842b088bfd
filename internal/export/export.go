// Package export renders filtered page rows as downloadable files.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Table is a titled grid of cells. Rows may be shorter than Headers.
type Table struct {
	Title   string
	Sheet   string
	Headers []string
	Rows    [][]any
}

// Content types of the generated files.
const (
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF   = "application/pdf"
)

// Export file stems per page.
const (
	StemMembers  = "members"
	StemOrders   = "orders"
	StemPayments = "payments"
	StemPayouts  = "payouts"
	StemWallets  = "wallets"
	StemGifts    = "gifts"
	StemRewards  = "rewards"
	StemKYC      = "kyc-verification"
	StemProducts = "products"
)

// IncomeStem returns the dated income report stem.
func IncomeStem(now time.Time) string {
	return "Income_Reports_" + now.Format("2006-01-02")
}

// TreeStem returns the dated referral tree stem.
func TreeStem(now time.Time) string {
	return "referral-tree-" + now.Format("2006-01-02")
}

// Filename joins a stem and a format extension.
func Filename(stem, format string) string {
	return stem + "." + format
}

// Text renders a cell as display text.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case decimal.Decimal:
		return val.StringFixed(2)
	case decimal.NullDecimal:
		if !val.Valid {
			return ""
		}
		return val.Decimal.StringFixed(2)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprintf("%v", v)
}

// excelValue keeps numbers numeric in the workbook.
func excelValue(v any) any {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.InexactFloat64()
	case decimal.NullDecimal:
		if !val.Valid {
			return ""
		}
		return val.Decimal.InexactFloat64()
	case int, int64, float64, string:
		return val
	}
	return Text(v)
}

func columnName(index int) string {
	name := ""
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}
	return name
}

func cellRef(col, row int) string {
	return columnName(col) + strconv.Itoa(row)
}
