package entities

import "time"

// DayStatus describes how a calendar day went
type DayStatus string

const (
	DayPastNoSession DayStatus = "past-no-session"
	DayPastLow       DayStatus = "past-low"
	DayPastHigh      DayStatus = "past-high"
	DayToday         DayStatus = "today"
	DayFuture        DayStatus = "future"
)

// CalendarDay is one cell of a month grid
type CalendarDay struct {
	Date           time.Time
	DayNumber      int
	Month          time.Month
	MonthName      string
	DayName        string
	IsCurrentMonth bool
	Status         DayStatus
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// MonthName returns the Spanish month name
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return spanishMonths[m-1]
}

// WeekdayName returns the Spanish weekday name
func WeekdayName(d time.Weekday) string {
	return spanishWeekdays[d]
}

// MonthGrid lists the days of the weeks covering the given month. Weeks start
// on Sunday, so the grid may include days of the neighbouring months.
func MonthGrid(year int, month time.Month, loc *time.Location) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var days []CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, CalendarDay{
			Date:           d,
			DayNumber:      d.Day(),
			Month:          d.Month(),
			MonthName:      MonthName(d.Month()),
			DayName:        WeekdayName(d.Weekday()),
			IsCurrentMonth: d.Month() == month && d.Year() == year,
		})
	}
	return days
}
