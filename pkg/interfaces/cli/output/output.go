package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/application/dto"
	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
	domainservices "github.com/Garbi-Collector/stokea2/pkg/domain/services"
)

// Config holds configuration for output generation
type Config struct {
	Format         string
	Locale         string
	CurrencySymbol string
}

// Printer renders command results as text tables or JSON
type Printer struct {
	w      io.Writer
	format string
	money  *Money
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, config Config) (*Printer, error) {
	switch config.Format {
	case "", "text":
		config.Format = "text"
	case "json":
	default:
		return nil, fmt.Errorf("unsupported output format: %s", config.Format)
	}
	money, err := NewMoney(config.Locale, config.CurrencySymbol)
	if err != nil {
		return nil, err
	}
	return &Printer{w: w, format: config.Format, money: money}, nil
}

// JSON reports whether results are printed as JSON
func (p *Printer) JSON() bool {
	return p.format == "json"
}

// Money returns the amount formatter
func (p *Printer) Money() *Money {
	return p.money
}

// Message prints a status line in text mode
func (p *Printer) Message(format string, args ...any) {
	if p.JSON() {
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) stamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// Products prints the catalog listing
func (p *Printer) Products(products []*entities.ProductWithStock) error {
	if p.JSON() {
		return p.writeJSON(products)
	}

	if len(products) == 0 {
		fmt.Fprintln(p.w, "No products found.")
		return nil
	}

	fmt.Fprintf(p.w, "%-5s %-12s %-28s %-14s %14s %14s %7s %5s\n",
		"ID", "Code", "Name", "Brand", "Wholesale", "Price", "Stock", "Min")
	fmt.Fprintf(p.w, "%-5s %-12s %-28s %-14s %14s %14s %7s %5s\n",
		"-----", "------------", "----------------------------", "--------------",
		"--------------", "--------------", "-------", "-----")
	for _, prod := range products {
		marker := ""
		if prod.Low() {
			marker = " ⚠️"
		}
		fmt.Fprintf(p.w, "%-5d %-12s %-28s %-14s %14s %14s %7d %5d%s\n",
			prod.ID,
			truncate(prod.Code, 12),
			truncate(prod.Name, 28),
			truncate(prod.Brand, 14),
			p.money.Format(prod.WholesalePrice),
			p.money.Format(prod.SalePrice),
			prod.Quantity,
			prod.MinAlert,
			marker)
	}
	fmt.Fprintf(p.w, "\n%d products\n", len(products))
	return nil
}

// Product prints one product with its stock
func (p *Printer) Product(prod *entities.ProductWithStock) error {
	if p.JSON() {
		return p.writeJSON(prod)
	}
	fmt.Fprintf(p.w, "📦 %s (%s)\n", prod.Name, prod.Code)
	fmt.Fprintf(p.w, "  ID:          %d\n", prod.ID)
	if prod.Brand != "" {
		fmt.Fprintf(p.w, "  Brand:       %s\n", prod.Brand)
	}
	if prod.Description != "" {
		fmt.Fprintf(p.w, "  Description: %s\n", prod.Description)
	}
	fmt.Fprintf(p.w, "  Wholesale:   %s\n", p.money.Format(prod.WholesalePrice))
	fmt.Fprintf(p.w, "  Profit:      %s%%\n", prod.ProfitPercentage.StringFixed(2))
	fmt.Fprintf(p.w, "  Sale price:  %s\n", p.money.Format(prod.SalePrice))
	fmt.Fprintf(p.w, "  Stock:       %d (alert at %d)\n", prod.Quantity, prod.MinAlert)
	return nil
}

// ImportResult prints the outcome of a product import
func (p *Printer) ImportResult(result *dto.ImportResult) error {
	if p.JSON() {
		return p.writeJSON(result)
	}
	fmt.Fprintf(p.w, "Rows: %d  Valid: %d  Invalid: %d  Imported: %d\n",
		result.TotalRows, result.ValidRows, result.InvalidRows, result.Imported)
	for _, e := range result.Errors {
		switch {
		case e.Row == 0:
			fmt.Fprintf(p.w, "  ❌ file: %s\n", e.Message)
		case e.Field == "":
			fmt.Fprintf(p.w, "  ❌ row %d: %s\n", e.Row, e.Message)
		default:
			fmt.Fprintf(p.w, "  ❌ row %d, %s: %s\n", e.Row, e.Field, e.Message)
		}
	}
	return nil
}

// Session prints one cash session
func (p *Printer) Session(s *entities.CashSession) error {
	if p.JSON() {
		return p.writeJSON(s)
	}
	status := "open"
	if !s.IsOpen() {
		status = "closed " + p.stamp(*s.ClosedAt)
	}
	fmt.Fprintf(p.w, "💵 Session %d (%s)\n", s.ID, status)
	fmt.Fprintf(p.w, "  Opened:  %s\n", p.stamp(s.OpenedAt))
	fmt.Fprintf(p.w, "  Start:   %s\n", p.money.Format(s.StartAmount))
	fmt.Fprintf(p.w, "  Current: %s\n", p.money.Format(s.CurrentAmount))
	return nil
}

// Sessions prints the session list
func (p *Printer) Sessions(sessions []*entities.CashSession) error {
	if p.JSON() {
		return p.writeJSON(sessions)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(p.w, "No cash sessions yet.")
		return nil
	}
	fmt.Fprintf(p.w, "%-5s %-16s %-16s %14s %14s\n", "ID", "Opened", "Closed", "Start", "Current")
	fmt.Fprintf(p.w, "%-5s %-16s %-16s %14s %14s\n",
		"-----", "----------------", "----------------", "--------------", "--------------")
	for _, s := range sessions {
		closed := "open"
		if !s.IsOpen() {
			closed = p.stamp(*s.ClosedAt)
		}
		fmt.Fprintf(p.w, "%-5d %-16s %-16s %14s %14s\n",
			s.ID, p.stamp(s.OpenedAt), closed,
			p.money.Format(s.StartAmount), p.money.Format(s.CurrentAmount))
	}
	return nil
}

// Movements prints a flat movement list
func (p *Printer) Movements(movements []*entities.CashMovement) error {
	if p.JSON() {
		return p.writeJSON(movements)
	}
	if len(movements) == 0 {
		fmt.Fprintln(p.w, "No movements.")
		return nil
	}
	for _, m := range movements {
		p.movementLine(m)
	}
	return nil
}

func (p *Printer) movementLine(m *entities.CashMovement) {
	fmt.Fprintf(p.w, "  %-16s %-5s %14s  %s\n",
		p.stamp(m.CreatedAt), m.Type, p.money.Format(m.SignedAmount()), m.Description)
}

// History prints movements grouped by day with the day totals
func (p *Printer) History(days []*domainservices.DayGroup) error {
	if p.JSON() {
		return p.writeJSON(days)
	}
	if len(days) == 0 {
		fmt.Fprintln(p.w, "No movements match the filters.")
		return nil
	}
	for _, day := range days {
		fmt.Fprintf(p.w, "📅 %s %s  in %s  out %s  sales %s  net %s\n",
			entities.WeekdayName(day.Date.Weekday()),
			day.Date.Format("2006-01-02"),
			p.money.Format(day.TotalIn),
			p.money.Format(day.TotalOut),
			p.money.Format(day.TotalSale),
			p.money.Format(day.Net()))
		for _, m := range day.Movements {
			p.movementLine(m)
		}
		fmt.Fprintln(p.w)
	}
	return nil
}

// Sales prints a sale list
func (p *Printer) Sales(sales []*entities.Sale) error {
	if p.JSON() {
		return p.writeJSON(sales)
	}
	if len(sales) == 0 {
		fmt.Fprintln(p.w, "No sales.")
		return nil
	}
	total := decimal.Zero
	fmt.Fprintf(p.w, "%-6s %-8s %-16s %14s\n", "ID", "Session", "Date", "Total")
	fmt.Fprintf(p.w, "%-6s %-8s %-16s %14s\n", "------", "--------", "----------------", "--------------")
	for _, s := range sales {
		fmt.Fprintf(p.w, "%-6d %-8d %-16s %14s\n", s.ID, s.SessionID, p.stamp(s.CreatedAt), p.money.Format(s.Total))
		total = total.Add(s.Total)
	}
	fmt.Fprintf(p.w, "\n%d sales, %s\n", len(sales), p.money.Format(total))
	return nil
}

// Sale prints a recorded sale and its lines
func (p *Printer) Sale(sale *entities.Sale, items []*entities.SaleItem) error {
	if p.JSON() {
		return p.writeJSON(struct {
			Sale  *entities.Sale       `json:"sale"`
			Items []*entities.SaleItem `json:"items"`
		}{sale, items})
	}
	fmt.Fprintf(p.w, "🧾 Sale %d (session %d) %s\n", sale.ID, sale.SessionID, p.stamp(sale.CreatedAt))
	for _, item := range items {
		fmt.Fprintf(p.w, "  product %-6d %4d x %12s = %14s\n",
			item.ProductID, item.Quantity, p.money.Format(item.UnitPrice), p.money.Format(item.Subtotal))
	}
	fmt.Fprintf(p.w, "  Total: %s\n", p.money.Format(sale.Total))
	return nil
}

// UserConfig prints the owner configuration
func (p *Printer) UserConfig(cfg *entities.UserConfig) error {
	if p.JSON() {
		return p.writeJSON(cfg)
	}
	goal := "not set"
	if cfg.HasMoneyGoal() {
		goal = p.money.Format(cfg.MoneyGoal)
	}
	fmt.Fprintf(p.w, "👤 %s\n", cfg.Name)
	fmt.Fprintf(p.w, "  Schedule:   %s - %s\n", cfg.Schedule.OpenLabel(), cfg.Schedule.CloseLabel())
	fmt.Fprintf(p.w, "  Daily goal: %s\n", goal)
	fmt.Fprintf(p.w, "  First run:  %v\n", cfg.IsFirstTime)
	return nil
}

// Summary prints the dashboard
func (p *Printer) Summary(s *dto.DashboardSummary) error {
	if p.JSON() {
		return p.writeJSON(s)
	}
	fmt.Fprintf(p.w, "%s, %s\n", s.Greeting, s.OwnerName)
	fmt.Fprintf(p.w, "======================\n\n")
	state := "closed"
	if s.ShopOpen {
		state = "open"
	}
	fmt.Fprintf(p.w, "Shop:          %s\n", state)
	fmt.Fprintf(p.w, "Products:      %d (%d low on stock)\n", s.ProductCount, s.LowStockCount)
	if s.Session != nil {
		fmt.Fprintf(p.w, "Session:       %d since %s\n", s.Session.ID, p.stamp(s.Session.OpenedAt))
	} else {
		fmt.Fprintf(p.w, "Session:       none open\n")
	}
	fmt.Fprintf(p.w, "In the till:   %s\n", p.money.Format(s.CurrentAmount))
	fmt.Fprintf(p.w, "Sales today:   %s", p.money.Format(s.TodaySales))
	if s.MoneyGoal.IsPositive() {
		fmt.Fprintf(p.w, " of %s", p.money.Format(s.MoneyGoal))
	}
	fmt.Fprintln(p.w)
	return nil
}

var statusMarks = map[entities.DayStatus]string{
	entities.DayPastNoSession: " ",
	entities.DayPastLow:       "-",
	entities.DayPastHigh:      "+",
	entities.DayToday:         "*",
	entities.DayFuture:        " ",
}

// Calendar prints the month grid. Days are marked + (goal reached),
// - (below goal) or * (today).
func (p *Printer) Calendar(cal *dto.CalendarMonth) error {
	if p.JSON() {
		return p.writeJSON(cal)
	}
	fmt.Fprintf(p.w, "%s %d\n", cal.Name, cal.Year)
	for d := time.Sunday; d <= time.Saturday; d++ {
		fmt.Fprintf(p.w, " %-5s", string([]rune(entities.WeekdayName(d))[:2]))
	}
	fmt.Fprintln(p.w)
	for i, day := range cal.Days {
		if day.IsCurrentMonth {
			fmt.Fprintf(p.w, " %2d%s  ", day.DayNumber, statusMarks[day.Status])
		} else {
			fmt.Fprint(p.w, "      ")
		}
		if i%7 == 6 {
			fmt.Fprintln(p.w)
		}
	}
	fmt.Fprintln(p.w, "\n+ goal reached   - below goal   * today")
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
