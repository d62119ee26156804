package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/application/dto"
	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	testhelpers "github.com/Garbi-Collector/stokea2/pkg/infrastructure/testing"
)

func TestCatalogService_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCatalogService(f.deps)

	created, err := svc.CreateProduct(ctx, dto.ProductInput{
		Name:             " Galletitas ",
		Brand:            "Terrabusi",
		Code:             "GAL-1",
		WholesalePrice:   decimal.NewFromInt(400),
		ProfitPercentage: decimal.NewNullDecimal(decimal.NewFromInt(50)),
		Quantity:         10,
		MinAlert:         -1,
	})
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	if created.Name != "Galletitas" || !created.SalePrice.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Unexpected product %+v", created.Product)
	}
	if created.MinAlert != entities.DefaultMinAlert || created.Quantity != 10 {
		t.Errorf("Unexpected stock %d/%d", created.Quantity, created.MinAlert)
	}
	if !created.CreatedAt.Equal(monday) {
		t.Errorf("Expected created at %v, got %v", monday, created.CreatedAt)
	}

	if _, err := svc.CreateProduct(ctx, dto.ProductInput{Name: "Otra", Code: "GAL-1", WholesalePrice: decimal.NewFromInt(1)}); !errors.Is(err, repositories.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists for duplicate code, got %v", err)
	}

	err = svc.UpdateProduct(ctx, created.ID, dto.ProductInput{
		Name:           "Galletitas surtidas",
		Code:           "GAL-1",
		WholesalePrice: decimal.NewFromInt(400),
		SalePrice:      decimal.NewNullDecimal(decimal.NewFromInt(500)),
		Quantity:       4,
		MinAlert:       6,
	})
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got.Name != "Galletitas surtidas" || !got.ProfitPercentage.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Unexpected updated product %+v", got.Product)
	}
	if got.Quantity != 4 || !got.Low() {
		t.Errorf("Expected 4 units below alert, got %d/%d", got.Quantity, got.MinAlert)
	}

	if err := svc.UpdateProduct(ctx, 999, dto.ProductInput{Name: "X", Code: "X", WholesalePrice: decimal.NewFromInt(1)}); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := f.store.Stock().GetByProduct(ctx, created.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected stock row removed, got %v", err)
	}
	if err := svc.DeleteProduct(ctx, created.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestCatalogService_CreateProductValidation(t *testing.T) {
	f := newFixture()
	svc := NewCatalogService(f.deps)

	tests := []struct {
		name string
		in   dto.ProductInput
	}{
		{"missing_name", dto.ProductInput{Code: "A", WholesalePrice: decimal.NewFromInt(1)}},
		{"missing_code", dto.ProductInput{Name: "A", WholesalePrice: decimal.NewFromInt(1)}},
		{"zero_wholesale", dto.ProductInput{Name: "A", Code: "A"}},
		{"negative_stock", dto.ProductInput{Name: "A", Code: "A", WholesalePrice: decimal.NewFromInt(1), Quantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateProduct(context.Background(), tt.in); err == nil {
				t.Error("Expected error")
			}
		})
	}

	count, _ := svc.Count(context.Background())
	if count != len(testhelpers.ShopProducts) {
		t.Errorf("Expected no products added, got %d", count)
	}
}

func TestCatalogService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCatalogService(f.deps)

	tests := []struct {
		name  string
		query dto.ProductQuery
		codes []string
	}{
		{"default_by_name", dto.ProductQuery{}, []string{"ACE-900", "AZU-1KG", "FID-500", "YER-1KG"}},
		{"search_brand", dto.ProductQuery{Search: "ledes"}, []string{"AZU-1KG"}},
		{"price_desc", dto.ProductQuery{SortBy: "price", Descending: true}, []string{"YER-1KG", "ACE-900", "AZU-1KG", "FID-500"}},
		{"low_only", dto.ProductQuery{LowOnly: true, SortBy: "quantity"}, []string{"ACE-900", "AZU-1KG"}},
		{"in_stock_only", dto.ProductQuery{InStockOnly: true, SortBy: "quantity"}, []string{"AZU-1KG", "FID-500", "YER-1KG"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := svc.List(ctx, tt.query)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			var codes []string
			for _, p := range products {
				codes = append(codes, p.Code)
			}
			if strings.Join(codes, ",") != strings.Join(tt.codes, ",") {
				t.Errorf("Expected %v, got %v", tt.codes, codes)
			}
		})
	}

	if _, err := svc.List(ctx, dto.ProductQuery{SortBy: "color"}); err == nil {
		t.Error("Expected error for unknown sort field")
	}
}

func TestCatalogService_LoadForSale(t *testing.T) {
	f := newFixture()
	svc := NewCatalogService(f.deps)

	products, err := svc.LoadForSale(context.Background())
	if err != nil {
		t.Fatalf("LoadForSale failed: %v", err)
	}
	if len(products) != len(testhelpers.ShopProducts) {
		t.Fatalf("Expected %d products, got %d", len(testhelpers.ShopProducts), len(products))
	}
	for _, p := range products {
		if !p.HasStock {
			t.Errorf("Expected %s to carry its stock row", p.Code)
		}
	}
}

func TestCatalogService_Import(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewCatalogService(f.deps)

	valid := "name,code,wholesale_price,profit_percentage,stock,min_alert\n" +
		"Té verde,TE-1,300,50,8,2\n" +
		"Café molido,CAF-1,1200,40,,\n"

	result, err := svc.Import(ctx, strings.NewReader(valid))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}

	products, _ := svc.List(ctx, dto.ProductQuery{Search: "TE-1"})
	if len(products) != 1 || products[0].Quantity != 8 || !products[0].SalePrice.Equal(decimal.NewFromInt(450)) {
		t.Errorf("Unexpected imported product %+v", products)
	}

	invalid := "name,code,wholesale_price\nMate,MAT-1,100\n,MAT-2,50\n"
	result, err = svc.Import(ctx, strings.NewReader(invalid))
	if !errors.Is(err, ErrInvalidImport) {
		t.Fatalf("Expected ErrInvalidImport, got %v", err)
	}
	if result.InvalidRows != 1 || result.Errors[0].Row != 3 {
		t.Errorf("Unexpected result %+v", result)
	}
	if _, err := f.store.Products().GetByCode(ctx, "MAT-1"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected nothing imported from an invalid file, got %v", err)
	}

	clash := "name,code,wholesale_price\nNuevo,NEW-1,10\nYerba,YER-1KG,10\n"
	if _, err := svc.Import(ctx, strings.NewReader(clash)); !errors.Is(err, repositories.ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists for existing code, got %v", err)
	}
	if _, err := f.store.Products().GetByCode(ctx, "NEW-1"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected the import to be rolled back, got %v", err)
	}
}

func TestCatalogService_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := NewCatalogService(newFixture().deps)

	var buf bytes.Buffer
	if err := source.Export(ctx, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	target := newFixture()
	for _, sp := range testhelpers.ShopProducts {
		p := testhelpers.MustProduct(target.store, sp.Code)
		if err := NewCatalogService(target.deps).DeleteProduct(ctx, p.ID); err != nil {
			t.Fatalf("Failed to clear %s: %v", sp.Code, err)
		}
	}

	result, err := NewCatalogService(target.deps).Import(ctx, &buf)
	if err != nil {
		t.Fatalf("Import of export failed: %v (%+v)", err, result)
	}
	if result.Imported != len(testhelpers.ShopProducts) {
		t.Errorf("Expected %d imported, got %d", len(testhelpers.ShopProducts), result.Imported)
	}
}
