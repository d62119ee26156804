package events

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Garbi-Collector/stokea2/pkg/domain/entities"
)

const (
	SessionOpenedEvent     = "session.opened"
	SessionClosedEvent     = "session.closed"
	SessionRolledOverEvent = "session.rolled_over"

	MovementRecordedEvent = "movement.recorded"
	SaleRecordedEvent     = "sale.recorded"

	ProductCreatedEvent   = "product.created"
	ProductUpdatedEvent   = "product.updated"
	ProductDeletedEvent   = "product.deleted"
	ProductsImportedEvent = "products.imported"

	ConfigUpdatedEvent = "config.updated"
)

// AllEventTypes lists every event the application publishes
var AllEventTypes = []string{
	SessionOpenedEvent,
	SessionClosedEvent,
	SessionRolledOverEvent,
	MovementRecordedEvent,
	SaleRecordedEvent,
	ProductCreatedEvent,
	ProductUpdatedEvent,
	ProductDeletedEvent,
	ProductsImportedEvent,
	ConfigUpdatedEvent,
}

type SessionOpened struct {
	Session entities.CashSession `json:"session"`
}

type SessionClosed struct {
	SessionID entities.SessionID `json:"session_id"`
	Amount    decimal.Decimal    `json:"amount"`
}

type SessionRolledOver struct {
	ClosedID entities.SessionID `json:"closed_id"`
	OpenedID entities.SessionID `json:"opened_id"`
	Carried  decimal.Decimal    `json:"carried"`
}

type MovementRecorded struct {
	Movement entities.CashMovement `json:"movement"`
}

type SaleRecorded struct {
	Sale  entities.Sale       `json:"sale"`
	Items []entities.SaleItem `json:"items"`
}

type ProductChanged struct {
	ProductID entities.ProductID `json:"product_id"`
	Code      string             `json:"code"`
}

type ProductsImported struct {
	Count int `json:"count"`
}

type ConfigUpdated struct {
	Field string `json:"field"`
}

// SessionStream is the stream key of a cash session
func SessionStream(id entities.SessionID) string {
	return fmt.Sprintf("session-%d", id)
}

// ProductStream is the stream key of a product
func ProductStream(id entities.ProductID) string {
	return fmt.Sprintf("product-%d", id)
}

// CatalogStream collects catalog-wide events
const CatalogStream = "catalog"

// ConfigStream collects configuration events
const ConfigStream = "config"

func NewSessionOpenedEvent(session entities.CashSession) Event {
	return NewEvent(SessionOpenedEvent, SessionStream(session.ID), SessionOpened{Session: session})
}

func NewSessionClosedEvent(id entities.SessionID, amount decimal.Decimal) Event {
	return NewEvent(SessionClosedEvent, SessionStream(id), SessionClosed{SessionID: id, Amount: amount})
}

func NewSessionRolledOverEvent(closedID, openedID entities.SessionID, carried decimal.Decimal) Event {
	return NewEvent(SessionRolledOverEvent, SessionStream(openedID), SessionRolledOver{
		ClosedID: closedID,
		OpenedID: openedID,
		Carried:  carried,
	})
}

func NewMovementRecordedEvent(m entities.CashMovement) Event {
	return NewEvent(MovementRecordedEvent, SessionStream(m.SessionID), MovementRecorded{Movement: m})
}

func NewSaleRecordedEvent(sale entities.Sale, items []entities.SaleItem) Event {
	return NewEvent(SaleRecordedEvent, SessionStream(sale.SessionID), SaleRecorded{Sale: sale, Items: items})
}

func NewProductEvent(eventType string, id entities.ProductID, code string) Event {
	return NewEvent(eventType, ProductStream(id), ProductChanged{ProductID: id, Code: code})
}

func NewProductsImportedEvent(count int) Event {
	return NewEvent(ProductsImportedEvent, CatalogStream, ProductsImported{Count: count})
}

func NewConfigUpdatedEvent(field string) Event {
	return NewEvent(ConfigUpdatedEvent, ConfigStream, ConfigUpdated{Field: field})
}

// Describe renders a one-line summary of a known event payload
func Describe(e Event) string {
	switch d := e.Data().(type) {
	case SessionOpened:
		return fmt.Sprintf("session %d opened with %s", d.Session.ID, d.Session.StartAmount.StringFixed(2))
	case SessionClosed:
		return fmt.Sprintf("session %d closed with %s", d.SessionID, d.Amount.StringFixed(2))
	case SessionRolledOver:
		return fmt.Sprintf("session %d rolled over into %d carrying %s", d.ClosedID, d.OpenedID, d.Carried.StringFixed(2))
	case MovementRecorded:
		return fmt.Sprintf("%s %s on session %d", d.Movement.Type, d.Movement.Amount.StringFixed(2), d.Movement.SessionID)
	case SaleRecorded:
		return fmt.Sprintf("sale %d of %s with %d items on session %d", d.Sale.ID, d.Sale.Total.StringFixed(2), len(d.Items), d.Sale.SessionID)
	case ProductChanged:
		return fmt.Sprintf("product %d (%s)", d.ProductID, d.Code)
	case ProductsImported:
		return fmt.Sprintf("%d products imported", d.Count)
	case ConfigUpdated:
		return fmt.Sprintf("%s updated", d.Field)
	default:
		return fmt.Sprintf("%v", d)
	}
}
