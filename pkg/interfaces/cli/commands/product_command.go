package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/application/dto"
	"github.com/Garbi-Collector/stokea2/pkg/application/services"
	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

type productCommand struct {
	*app
}

// productFlags binds the editable product fields to a flag set
type productFlags struct {
	name, description, brand, code string
	wholesale, profit, sale        string
	quantity, minAlert             int64
}

func (f *productFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "product name")
	fs.StringVar(&f.description, "desc", "", "description")
	fs.StringVar(&f.brand, "brand", "", "brand")
	fs.StringVar(&f.code, "code", "", "unique product code")
	fs.StringVar(&f.wholesale, "wholesale", "", "wholesale price")
	fs.StringVar(&f.profit, "profit", "", "profit percentage")
	fs.StringVar(&f.sale, "price", "", "sale price")
	fs.Int64Var(&f.quantity, "qty", 0, "units in stock")
	fs.Int64Var(&f.minAlert, "min", -1, "low stock alert level")
}

// apply copies the flags that were given on the command line onto in
func (f *productFlags) apply(fs *flag.FlagSet, in *dto.ProductInput) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "name":
			in.Name = f.name
		case "desc":
			in.Description = f.description
		case "brand":
			in.Brand = f.brand
		case "code":
			in.Code = f.code
		case "wholesale":
			in.WholesalePrice, err = parseAmount(f.wholesale)
		case "profit":
			in.ProfitPercentage, err = optionalAmount(f.profit)
		case "price":
			in.SalePrice, err = optionalAmount(f.sale)
		case "qty":
			in.Quantity = f.quantity
		case "min":
			in.MinAlert = f.minAlert
		}
	})
	return err
}

func optionalAmount(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func (c *productCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("product: expected add, update, delete, get, list, low, stock, import or export")
	}
	rest := args[1:]
	switch args[0] {
	case "add":
		return c.add(ctx, rest)
	case "update":
		return c.update(ctx, rest)
	case "delete":
		return c.delete(ctx, rest)
	case "get":
		return c.get(ctx, rest)
	case "list":
		return c.list(ctx, rest)
	case "low":
		products, err := c.catalog.LowStock(ctx)
		if err != nil {
			return err
		}
		return c.printer.Products(products)
	case "stock":
		return c.stock(ctx, rest)
	case "import":
		return c.importFile(ctx, rest)
	case "export":
		return c.export(ctx, rest)
	default:
		return fmt.Errorf("product: unknown action %q", args[0])
	}
}

func (c *productCommand) add(ctx context.Context, args []string) error {
	fs := c.newFlagSet("product add")
	var f productFlags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := dto.ProductInput{MinAlert: -1}
	if err := f.apply(fs, &in); err != nil {
		return err
	}
	product, err := c.catalog.CreateProduct(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	c.printer.Message("✅ Product %d created", product.ID)
	return c.printer.Product(product)
}

func (c *productCommand) update(ctx context.Context, args []string) error {
	fs := c.newFlagSet("product update")
	id := fs.Int64("id", 0, "product id")
	var f productFlags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("product update: -id is required")
	}

	current, err := c.catalog.Get(ctx, entities.ProductID(*id))
	if err != nil {
		return err
	}
	in := dto.ProductInput{
		Name:             current.Name,
		Description:      current.Description,
		Brand:            current.Brand,
		Code:             current.Code,
		WholesalePrice:   current.WholesalePrice,
		ProfitPercentage: decimal.NewNullDecimal(current.ProfitPercentage),
		SalePrice:        decimal.NewNullDecimal(current.SalePrice),
		Quantity:         current.Quantity,
		MinAlert:         current.MinAlert,
	}
	if !current.HasStock {
		in.MinAlert = -1
	}
	// A new wholesale price or margin reprices the product unless a price is given too.
	if isSet(fs, "wholesale") || isSet(fs, "profit") {
		in.SalePrice = decimal.NullDecimal{}
	}
	if isSet(fs, "price") && !isSet(fs, "profit") {
		in.ProfitPercentage = decimal.NullDecimal{}
	}
	if err := f.apply(fs, &in); err != nil {
		return err
	}

	if err := c.catalog.UpdateProduct(ctx, current.ID, in); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	updated, err := c.catalog.Get(ctx, current.ID)
	if err != nil {
		return err
	}
	c.printer.Message("✅ Product %d updated", updated.ID)
	return c.printer.Product(updated)
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func (c *productCommand) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: product delete ID")
	}
	id, err := productID(args[0])
	if err != nil {
		return err
	}
	if err := c.catalog.DeleteProduct(ctx, id); err != nil {
		return err
	}
	c.printer.Message("🗑️  Product %d deleted", id)
	return nil
}

func (c *productCommand) get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: product get ID")
	}
	id, err := productID(args[0])
	if err != nil {
		return err
	}
	product, err := c.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.printer.Product(product)
}

func (c *productCommand) list(ctx context.Context, args []string) error {
	fs := c.newFlagSet("product list")
	var q dto.ProductQuery
	fs.StringVar(&q.Search, "q", "", "search name, code, brand or description")
	fs.StringVar(&q.SortBy, "sort", "name", "sort by name, price, quantity or date")
	fs.BoolVar(&q.Descending, "desc", false, "sort descending")
	fs.BoolVar(&q.LowOnly, "low", false, "only products at or below their alert level")
	fs.BoolVar(&q.InStockOnly, "in-stock", false, "only products with units on hand")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := c.catalog.List(ctx, q)
	if err != nil {
		return err
	}
	return c.printer.Products(products)
}

func (c *productCommand) stock(ctx context.Context, args []string) error {
	fs := c.newFlagSet("product stock")
	id := fs.Int64("id", 0, "product id")
	quantity := fs.Int64("qty", 0, "units in stock")
	minAlert := fs.Int64("min", -1, "low stock alert level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("product stock: -id is required")
	}

	pid := entities.ProductID(*id)
	if !isSet(fs, "min") {
		current, err := c.catalog.Get(ctx, pid)
		if err != nil {
			return err
		}
		if current.HasStock {
			*minAlert = current.MinAlert
		}
	}
	if err := c.catalog.AdjustStock(ctx, pid, *quantity, *minAlert); err != nil {
		return err
	}
	product, err := c.catalog.Get(ctx, pid)
	if err != nil {
		return err
	}
	return c.printer.Product(product)
}

func (c *productCommand) importFile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: product import FILE.csv")
	}
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	result, err := c.catalog.Import(ctx, file)
	if result != nil {
		if perr := c.printer.ImportResult(result); perr != nil {
			return perr
		}
	}
	if errors.Is(err, services.ErrInvalidImport) {
		return fmt.Errorf("%w: nothing was imported", err)
	}
	return err
}

func (c *productCommand) export(ctx context.Context, args []string) error {
	var w io.Writer = c.out
	if len(args) == 1 {
		file, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer file.Close()
		w = file
	}
	if err := c.catalog.Export(ctx, w); err != nil {
		return err
	}
	if len(args) == 1 {
		c.printer.Message("✅ Catalog exported to %s", args[0])
	}
	return nil
}
