package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

// DashboardSummary is the data shown on the start screen
type DashboardSummary struct {
	OwnerName     string                `json:"owner_name"`
	Greeting      string                `json:"greeting"`
	IsFirstTime   bool                  `json:"is_first_time"`
	ProductCount  int                   `json:"product_count"`
	LowStockCount int                   `json:"low_stock_count"`
	Session       *entities.CashSession `json:"session,omitempty"`
	CurrentAmount decimal.Decimal       `json:"current_amount"`
	TodaySales    decimal.Decimal       `json:"today_sales"`
	MoneyGoal     decimal.Decimal       `json:"money_goal"`
	ShopOpen      bool                  `json:"shop_open"`
	GeneratedAt   time.Time             `json:"generated_at"`
}

// CalendarMonth is a month grid with per-day sales totals
type CalendarMonth struct {
	Year  int                    `json:"year"`
	Month time.Month             `json:"month"`
	Name  string                 `json:"name"`
	Days  []entities.CalendarDay `json:"days"`
	// Sales maps "2006-01-02" to the sales total of that day
	Sales map[string]decimal.Decimal `json:"sales"`
}
