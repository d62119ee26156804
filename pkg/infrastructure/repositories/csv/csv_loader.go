package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/application/dto"
	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/services"
)

// ProductHeader is the column layout written by WriteProducts and accepted by LoadProducts
var ProductHeader = []string{
	"name", "description", "brand", "code",
	"wholesale_price", "profit_percentage", "sale_price",
	"stock", "min_alert",
}

// requiredColumns must be present in the header of an import file
var requiredColumns = []string{"name", "code", "wholesale_price"}

// Loader handles loading catalog data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadProductsFile loads a product import from a CSV file
func (l *Loader) LoadProductsFile(filename string) (*dto.ImportResult, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open products file %s: %w", filename, err)
	}
	defer file.Close()

	return l.LoadProducts(file)
}

// LoadProducts parses and validates a product import. Columns are matched by
// header name in any order. Validation problems are collected per row in the
// result; only unreadable input returns an error.
func (l *Loader) LoadProducts(r io.Reader) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read products CSV: %w", err)
	}

	result := &dto.ImportResult{}
	if len(records) < 2 {
		result.Errors = append(result.Errors, dto.ValidationError{
			Row:     0,
			Message: "products CSV must have header and at least one data row",
		})
		return result, nil
	}

	columns := indexHeader(records[0])
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		result.TotalRows = len(records) - 1
		result.InvalidRows = result.TotalRows
		result.Errors = append(result.Errors, dto.ValidationError{
			Row:     0,
			Message: fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")),
		})
		return result, nil
	}

	seenCodes := make(map[string]int)
	for i, record := range records[1:] {
		line := i + 2
		if isBlank(record) {
			continue
		}
		result.TotalRows++

		row, rowErrors := parseProductRow(line, record, columns)
		if row != nil {
			code := strings.ToLower(row.Product.Code)
			if first, dup := seenCodes[code]; dup {
				rowErrors = append(rowErrors, dto.ValidationError{
					Row:     line,
					Field:   "code",
					Message: fmt.Sprintf("duplicate code %q, first seen on row %d", row.Product.Code, first),
				})
			} else {
				seenCodes[code] = line
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.InvalidRows++
			continue
		}
		result.Rows = append(result.Rows, *row)
	}
	result.ValidRows = len(result.Rows)

	return result, nil
}

// WriteProducts writes the catalog in the import layout
func (l *Loader) WriteProducts(w io.Writer, products []*entities.ProductWithStock) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ProductHeader); err != nil {
		return fmt.Errorf("failed to write products header: %w", err)
	}
	for _, p := range products {
		record := []string{
			p.Name,
			p.Description,
			p.Brand,
			p.Code,
			p.WholesalePrice.StringFixed(2),
			p.ProfitPercentage.StringFixed(2),
			p.SalePrice.StringFixed(2),
			strconv.FormatInt(p.Quantity, 10),
			strconv.FormatInt(p.MinAlert, 10),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.Code, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := columns[name]; !dup && name != "" {
			columns[name] = i
		}
	}
	return columns
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func parseProductRow(line int, record []string, columns map[string]int) (*dto.ImportRow, []dto.ValidationError) {
	get := func(col string) string {
		idx, ok := columns[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var errs []dto.ValidationError
	fail := func(field, format string, args ...any) {
		errs = append(errs, dto.ValidationError{Row: line, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	name := get("name")
	if name == "" {
		fail("name", "name is required")
	}
	code := get("code")
	if code == "" {
		fail("code", "code is required")
	}

	wholesale, err := parseAmount(get("wholesale_price"))
	switch {
	case get("wholesale_price") == "":
		fail("wholesale_price", "wholesale price is required")
	case err != nil:
		fail("wholesale_price", "wholesale price must be a valid number")
	case !wholesale.IsPositive():
		fail("wholesale_price", "wholesale price must be positive")
	}

	profit := optionalAmount(get("profit_percentage"), "profit_percentage", "profit percentage", fail)
	sale := optionalAmount(get("sale_price"), "sale_price", "sale price", fail)
	quantity := optionalCount(get("stock"), "stock", 0, fail)
	minAlert := optionalCount(get("min_alert"), "min_alert", entities.DefaultMinAlert, fail)

	if len(errs) > 0 {
		return nil, errs
	}

	profitPct, salePrice, err := services.ResolvePricing(wholesale, profit, sale)
	if err != nil {
		fail("sale_price", "%v", err)
		return nil, errs
	}
	product, err := entities.NewProduct(name, get("description"), get("brand"), code, wholesale, profitPct, salePrice)
	if err != nil {
		fail("", "%v", err)
		return nil, errs
	}

	return &dto.ImportRow{Line: line, Product: product, Quantity: quantity, MinAlert: minAlert}, nil
}

// parseAmount accepts a dot or a single comma as decimal separator
func parseAmount(value string) (decimal.Decimal, error) {
	if !strings.Contains(value, ".") && strings.Count(value, ",") == 1 {
		value = strings.Replace(value, ",", ".", 1)
	}
	return decimal.NewFromString(value)
}

func optionalAmount(value, field, label string, fail func(field, format string, args ...any)) decimal.NullDecimal {
	if value == "" {
		return decimal.NullDecimal{}
	}
	d, err := parseAmount(value)
	if err != nil {
		fail(field, "%s must be a valid number", label)
		return decimal.NullDecimal{}
	}
	if d.IsNegative() {
		fail(field, "%s cannot be negative", label)
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func optionalCount(value, field string, fallback int64, fail func(field, format string, args ...any)) int64 {
	if value == "" {
		return fallback
	}
	d, err := parseAmount(value)
	switch {
	case err != nil:
		fail(field, "%s must be a valid number", field)
	case d.IsNegative():
		fail(field, "%s cannot be negative", field)
	case !d.Equal(d.Truncate(0)):
		fail(field, "%s must be a whole number", field)
	default:
		return d.IntPart()
	}
	return fallback
}
