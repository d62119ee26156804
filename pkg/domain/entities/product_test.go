package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewProduct_Validation(t *testing.T) {
	wholesale := decimal.NewFromInt(100)
	profit := decimal.NewFromInt(30)
	sale := decimal.NewFromInt(130)

	p, err := NewProduct("  Yerba  ", "1kg", "Playadito", " YB-1 ", wholesale, profit, sale)
	if err != nil {
		t.Fatalf("Expected valid product creation to succeed: %v", err)
	}
	if p.Name != "Yerba" || p.Code != "YB-1" {
		t.Errorf("Expected trimmed name and code, got %q and %q", p.Name, p.Code)
	}

	testCases := []struct {
		name        string
		productName string
		code        string
		wholesale   decimal.Decimal
		profit      decimal.Decimal
		sale        decimal.Decimal
		expectError string
	}{
		{"empty name", " ", "YB-1", wholesale, profit, sale, "product name cannot be empty"},
		{"empty code", "Yerba", "", wholesale, profit, sale, "product code cannot be empty"},
		{"zero wholesale", "Yerba", "YB-1", decimal.Zero, profit, sale, "wholesale price must be positive, got 0"},
		{"sub-cent wholesale", "Yerba", "YB-1", decimal.RequireFromString("0.004"), profit, sale, "wholesale price must be positive, got 0"},
		{"negative profit", "Yerba", "YB-1", wholesale, decimal.NewFromInt(-1), sale, "profit percentage cannot be negative, got -1"},
		{"negative sale price", "Yerba", "YB-1", wholesale, profit, decimal.NewFromInt(-5), "sale price cannot be negative, got -5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProduct(tc.productName, "", "", tc.code, tc.wholesale, tc.profit, tc.sale)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestProduct_Matches(t *testing.T) {
	p := &Product{Name: "Galletitas", Code: "GAL-01", Brand: "Terrabusi", Description: "Paquete surtido"}

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"galle", true},
		{"gal-01", true},
		{"TERRA", true},
		{"surtido", true},
		{"yerba", false},
	}

	for _, tt := range tests {
		if got := p.Matches(tt.term); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestCentsRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"1.5", 150},
		{"10.005", 1001},
		{"-3.25", -325},
		{"1234.56", 123456},
	}

	for _, tt := range tests {
		got := Cents(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("Cents(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if !FromCents(123456).Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("FromCents(123456) = %s", FromCents(123456))
	}
}
