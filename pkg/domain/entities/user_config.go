package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UserConfigID is the fixed key of the single configuration row
const UserConfigID = 1

// DefaultUserName is used when the owner has not entered a name yet
const DefaultUserName = "Usuario"

// Schedule is the opening window of the shop
type Schedule struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// DefaultSchedule covers the whole day
func DefaultSchedule() Schedule {
	return Schedule{OpenHour: 0, OpenMinute: 0, CloseHour: 23, CloseMinute: 59}
}

// NewSchedule creates a validated Schedule
func NewSchedule(openHour, openMinute, closeHour, closeMinute int) (Schedule, error) {
	s := Schedule{
		OpenHour:    openHour,
		OpenMinute:  openMinute,
		CloseHour:   closeHour,
		CloseMinute: closeMinute,
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Validate checks hour and minute bounds and that closing comes after opening
func (s Schedule) Validate() error {
	if s.OpenHour < 0 || s.OpenHour > 23 {
		return fmt.Errorf("open hour must be between 0 and 23, got %d", s.OpenHour)
	}
	if s.OpenMinute < 0 || s.OpenMinute > 59 {
		return fmt.Errorf("open minute must be between 0 and 59, got %d", s.OpenMinute)
	}
	if s.CloseHour < 0 || s.CloseHour > 23 {
		return fmt.Errorf("close hour must be between 0 and 23, got %d", s.CloseHour)
	}
	if s.CloseMinute < 0 || s.CloseMinute > 59 {
		return fmt.Errorf("close minute must be between 0 and 59, got %d", s.CloseMinute)
	}
	if s.closeMinutes() <= s.openMinutes() {
		return fmt.Errorf("close time %s must be after open time %s", s.CloseLabel(), s.OpenLabel())
	}
	return nil
}

func (s Schedule) openMinutes() int  { return s.OpenHour*60 + s.OpenMinute }
func (s Schedule) closeMinutes() int { return s.CloseHour*60 + s.CloseMinute }

// IsOpenAt reports whether t falls inside the window, both ends inclusive
func (s Schedule) IsOpenAt(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= s.openMinutes() && m <= s.closeMinutes()
}

// OpenLabel formats the opening time as HH:MM
func (s Schedule) OpenLabel() string {
	return fmt.Sprintf("%02d:%02d", s.OpenHour, s.OpenMinute)
}

// CloseLabel formats the closing time as HH:MM
func (s Schedule) CloseLabel() string {
	return fmt.Sprintf("%02d:%02d", s.CloseHour, s.CloseMinute)
}

// UserConfig is the single owner/shop configuration row
type UserConfig struct {
	Name        string
	IsFirstTime bool
	Schedule    Schedule
	// MoneyGoal is the daily sales target; zero means unset.
	MoneyGoal decimal.Decimal
	CreatedAt time.Time
}

// NewUserConfig creates a first-time configuration with the default schedule
func NewUserConfig(name string) *UserConfig {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultUserName
	}
	return &UserConfig{
		Name:        name,
		IsFirstTime: true,
		Schedule:    DefaultSchedule(),
		MoneyGoal:   decimal.Zero,
	}
}

// NewMoneyGoal rounds goal to the cent and requires the result to be positive
func NewMoneyGoal(goal decimal.Decimal) (decimal.Decimal, error) {
	goal = RoundMoney(goal)
	if !goal.IsPositive() {
		return decimal.Zero, fmt.Errorf("money goal must be positive, got %s", goal)
	}
	return goal, nil
}

// HasMoneyGoal reports whether a daily target is configured
func (c *UserConfig) HasMoneyGoal() bool {
	return c.MoneyGoal.IsPositive()
}

// Greeting returns the salutation for the hour of t
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Buenos días"
	case h < 19:
		return "Buenas tardes"
	default:
		return "Buenas noches"
	}
}
