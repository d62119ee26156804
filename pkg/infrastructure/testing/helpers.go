package testing

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/repositories/memory"
)

// Clock is a settable time source for tests
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock frozen at t
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// ShopProduct is a seeded product with its stock
type ShopProduct struct {
	Name      string
	Brand     string
	Code      string
	Wholesale string
	Profit    string
	Quantity  int64
	MinAlert  int64
}

// ShopProducts is the catalog seeded by BuildShopTestData
var ShopProducts = []ShopProduct{
	{Name: "Yerba Mate 1kg", Brand: "Playadito", Code: "YER-1KG", Wholesale: "2500", Profit: "40", Quantity: 20, MinAlert: 5},
	{Name: "Azúcar 1kg", Brand: "Ledesma", Code: "AZU-1KG", Wholesale: "900", Profit: "30", Quantity: 3, MinAlert: 5},
	{Name: "Fideos Spaghetti", Brand: "Lucchetti", Code: "FID-500", Wholesale: "750.50", Profit: "25", Quantity: 12, MinAlert: 4},
	{Name: "Aceite Girasol", Brand: "Natura", Code: "ACE-900", Wholesale: "1800", Profit: "35", Quantity: 0, MinAlert: 2},
}

// BuildShopTestData creates a memory store with the ShopProducts catalog and
// a configured owner. Product ids follow the order of ShopProducts.
func BuildShopTestData() *memory.Store {
	ctx := context.Background()
	store := memory.NewStore()

	for _, sp := range ShopProducts {
		wholesale := decimal.RequireFromString(sp.Wholesale)
		profit := decimal.RequireFromString(sp.Profit)
		sale := wholesale.Add(wholesale.Mul(profit).Div(decimal.NewFromInt(100))).Round(2)

		product, err := entities.NewProduct(sp.Name, "", sp.Brand, sp.Code, wholesale, profit, sale)
		if err != nil {
			panic(err)
		}
		id, err := store.Products().Create(ctx, product)
		if err != nil {
			panic(err)
		}
		stock, err := entities.NewStock(id, sp.Quantity, sp.MinAlert)
		if err != nil {
			panic(err)
		}
		if _, err := store.Stock().Create(ctx, stock); err != nil {
			panic(err)
		}
	}

	cfg := entities.NewUserConfig("Marta")
	if _, err := store.Users().CreateIfNotExists(ctx, cfg); err != nil {
		panic(err)
	}

	return store
}

// MustProduct loads a seeded product with its stock by code
func MustProduct(store *memory.Store, code string) entities.ProductWithStock {
	products, err := store.Products().ListWithStock(context.Background())
	if err != nil {
		panic(err)
	}
	for _, p := range products {
		if p.Code == code {
			return *p
		}
	}
	panic("unknown product code " + code)
}
