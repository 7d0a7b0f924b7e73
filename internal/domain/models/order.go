package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrLineNotFound indicates no line in the order carries the requested identity.
	ErrLineNotFound = errors.New("order line not found")
	// ErrUnparseablePrice indicates the price in a rendered line label could not be read.
	ErrUnparseablePrice = errors.New("unparseable line price")
)

// OrderStatus tracks the persistence lifecycle of an order.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusSubmitted OrderStatus = "submitted"
)

// OrderLine is one customized, priced drink. It is immutable once built.
type OrderLine struct {
	ID          uuid.UUID       `json:"id"`
	MenuID      int             `json:"menu_id"`
	DrinkName   string          `json:"drink_name"`
	Removed     []string        `json:"removed"`
	Extras      []Extra         `json:"extras"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Label renders the line the way the register lists it, e.g. "Taro [-Ice ] - $4.50".
func (l OrderLine) Label() string {
	return fmt.Sprintf("%s - $%s", l.Description, l.Price.StringFixed(2))
}

// Order is the in-progress or persisted ticket for one customer.
type Order struct {
	ID         int         `json:"id"`
	Lines      []OrderLine `json:"lines"`
	EmployeeID int         `json:"employee_id"`
	Location   string      `json:"location"`
	PlacedAt   time.Time   `json:"placed_at"`
	Status     OrderStatus `json:"status"`
}

// NewOrder starts an empty draft.
func NewOrder(employeeID int, location string) *Order {
	return &Order{EmployeeID: employeeID, Location: location, Status: OrderStatusDraft}
}

// Total is the sum of current line prices.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Price)
	}
	return total
}

// IsEmpty reports whether the order has no lines.
func (o *Order) IsEmpty() bool {
	return len(o.Lines) == 0
}

// AddLine appends a line and returns the new total.
func (o *Order) AddLine(line OrderLine) decimal.Decimal {
	o.Lines = append(o.Lines, line)
	return o.Total()
}

// RemoveLine drops the line with the given id.
func (o *Order) RemoveLine(id uuid.UUID) (OrderLine, error) {
	for i, line := range o.Lines {
		if line.ID == id {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			return line, nil
		}
	}
	return OrderLine{}, ErrLineNotFound
}

// RemoveLineByLabel removes the first line whose rendered label equals label.
// The price after the last '$' must parse, otherwise the order is left untouched.
// Duplicate labels are indistinguishable here; prefer RemoveLine.
func (o *Order) RemoveLineByLabel(label string) (OrderLine, error) {
	idx := strings.LastIndex(label, "$")
	if idx < 0 {
		return OrderLine{}, fmt.Errorf("%w: no price in %q", ErrUnparseablePrice, label)
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(label[idx+1:]), 64); err != nil {
		return OrderLine{}, fmt.Errorf("%w: %v", ErrUnparseablePrice, err)
	}

	for i, line := range o.Lines {
		if line.Label() == label {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			return line, nil
		}
	}
	return OrderLine{}, ErrLineNotFound
}

// Clear resets the order for the next customer.
func (o *Order) Clear() {
	o.Lines = nil
	o.ID = 0
	o.PlacedAt = time.Time{}
	o.Status = OrderStatusDraft
}
