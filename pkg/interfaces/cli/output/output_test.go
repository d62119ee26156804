package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/application/dto"
	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		locale string
		symbol string
		amount string
		want   string
	}{
		{"en-US", "$", "12345.5", "$12,345.50"},
		{"en-US", "$", "-250", "-$250.00"},
		{"en-US", "US$", "0.005", "US$0.01"},
		{"es", "$", "12345.5", "$12.345,50"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+" "+tt.amount, func(t *testing.T) {
			m, err := NewMoney(tt.locale, tt.symbol)
			if err != nil {
				t.Fatalf("NewMoney failed: %v", err)
			}
			if got := m.Format(decimal.RequireFromString(tt.amount)); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}

	if _, err := NewMoney("not a locale!", "$"); err == nil {
		t.Error("Expected error for invalid locale")
	}
}

func TestNewPrinter_Format(t *testing.T) {
	if _, err := NewPrinter(&bytes.Buffer{}, Config{Format: "xml", Locale: "en"}); err == nil {
		t.Error("Expected error for unsupported format")
	}
	p, err := NewPrinter(&bytes.Buffer{}, Config{Locale: "en"})
	if err != nil {
		t.Fatalf("NewPrinter failed: %v", err)
	}
	if p.JSON() {
		t.Error("Expected text format by default")
	}
}

func TestPrinter_Products(t *testing.T) {
	var buf bytes.Buffer
	p, _ := NewPrinter(&buf, Config{Format: "text", Locale: "en-US", CurrencySymbol: "$"})

	products := []*entities.ProductWithStock{
		{
			Product: entities.Product{
				ID: 1, Name: "Yerba 1kg", Code: "YER-1KG",
				WholesalePrice: decimal.NewFromInt(2500), SalePrice: decimal.NewFromInt(3500),
			},
			Quantity: 2, MinAlert: 5, HasStock: true,
		},
	}
	if err := p.Products(products); err != nil {
		t.Fatalf("Products failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"YER-1KG", "$3,500.00", "⚠️", "1 products"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p, _ := NewPrinter(&buf, Config{Format: "json", Locale: "en-US", CurrencySymbol: "$"})

	result := &dto.ImportResult{
		Errors:      []dto.ValidationError{{Row: 3, Field: "code", Message: "code is required"}},
		TotalRows:   2,
		ValidRows:   1,
		InvalidRows: 1,
	}
	if err := p.ImportResult(result); err != nil {
		t.Fatalf("ImportResult failed: %v", err)
	}
	p.Message("ignored in json mode")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v:\n%s", err, buf.String())
	}
	if decoded["invalid_rows"].(float64) != 1 {
		t.Errorf("Expected invalid_rows 1, got %v", decoded["invalid_rows"])
	}
}

func TestPrinter_Calendar(t *testing.T) {
	var buf bytes.Buffer
	p, _ := NewPrinter(&buf, Config{Locale: "es", CurrencySymbol: "$"})

	days := entities.MonthGrid(2026, time.February, time.UTC)
	days[9].Status = entities.DayPastHigh
	days[10].Status = entities.DayToday
	if err := p.Calendar(&dto.CalendarMonth{Year: 2026, Month: time.February, Name: "febrero", Days: days}); err != nil {
		t.Fatalf("Calendar failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"febrero 2026", " do ", " sá ", "10+", "11*"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected calendar to contain %q, got:\n%s", want, out)
		}
	}
}
