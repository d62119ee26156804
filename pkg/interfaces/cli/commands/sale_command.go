package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	domainservices "github.com/Garbi-Collector/stokea2/pkg/domain/services"
)

type saleCommand struct {
	*app
}

func (c *saleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("sale: expected checkout, list or items")
	}
	switch args[0] {
	case "checkout":
		return c.checkout(ctx, args[1:])
	case "list":
		return c.list(ctx, args[1:])
	case "items":
		return c.items(ctx, args[1:])
	default:
		return fmt.Errorf("sale: unknown action %q", args[0])
	}
}

// parseCartArg splits CODE or CODE:QTY
func parseCartArg(arg string) (string, int64, error) {
	code, qty, found := strings.Cut(arg, ":")
	code = strings.TrimSpace(code)
	if code == "" {
		return "", 0, fmt.Errorf("invalid cart item %q", arg)
	}
	if !found {
		return code, 1, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(qty), 10, 64)
	if err != nil || n <= 0 {
		return "", 0, fmt.Errorf("invalid quantity in %q", arg)
	}
	return code, n, nil
}

func (c *saleCommand) checkout(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: sale checkout CODE[:QTY]...")
	}

	products, err := c.catalog.LoadForSale(ctx)
	if err != nil {
		return err
	}
	byCode := make(map[string]*entities.ProductWithStock, len(products))
	for _, p := range products {
		if p.Available() {
			byCode[strings.ToUpper(p.Code)] = p
		}
	}

	cart := domainservices.NewCart()
	for _, arg := range args {
		code, qty, err := parseCartArg(arg)
		if err != nil {
			return err
		}
		p, ok := byCode[strings.ToUpper(code)]
		if !ok {
			return fmt.Errorf("product %s not found or out of stock", code)
		}
		if err := cart.Add(*p, qty); err != nil {
			return fmt.Errorf("%s: %w", code, err)
		}
	}

	sale, err := c.sales.Checkout(ctx, cart)
	if err != nil {
		return err
	}
	items, err := c.sales.Items(ctx, sale.ID)
	if err != nil {
		return err
	}
	c.printer.Message("✅ Sale %d recorded", sale.ID)
	return c.printer.Sale(sale, items)
}

func (c *saleCommand) list(ctx context.Context, args []string) error {
	fs := c.newFlagSet("sale list")
	id := fs.Int64("session", 0, "only sales of this session")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		sales []*entities.Sale
		err   error
	)
	if *id > 0 {
		sales, err = c.sales.GetBySession(ctx, entities.SessionID(*id))
	} else {
		sales, err = c.sales.GetAll(ctx)
	}
	if err != nil {
		return err
	}
	return c.printer.Sales(sales)
}

func (c *saleCommand) items(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sale items ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	sale, err := c.sales.Get(ctx, entities.SaleID(id))
	if err != nil {
		return err
	}
	items, err := c.sales.Items(ctx, sale.ID)
	if err != nil {
		return err
	}
	return c.printer.Sale(sale, items)
}
