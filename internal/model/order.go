package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order is the slot-filled state of one drink order. Required slots are
// DrinkType, Size, Milk, and Name; Extras may stay empty.
type Order struct {
	// ID is the unique identifier for this order.
	ID string `json:"id"`
	// DrinkType is the kind of drink (latte, cappuccino, ...).
	DrinkType string `json:"drink_type"`
	// Size is the drink size (small/medium/large or tall/grande/venti).
	Size string `json:"size"`
	// Milk is the milk preference (whole, oat, none, ...).
	Milk string `json:"milk"`
	// Extras are additional items, deduplicated in insertion order.
	Extras []string `json:"extras"`
	// Name is the customer's name called out at the counter.
	Name string `json:"name"`
	// CreatedAt is the Unix timestamp when the order was opened.
	CreatedAt int64 `json:"created_at"`
	// UpdatedAt is the Unix timestamp of the last slot change.
	UpdatedAt int64 `json:"updated_at"`
}

// NewOrder creates an empty order with a generated UUID.
func NewOrder() *Order {
	now := time.Now().Unix()
	return &Order{
		ID:        uuid.New().String(),
		Extras:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp to now.
func (o *Order) Touch() {
	o.UpdatedAt = time.Now().Unix()
}

// AddExtra appends an extra unless it is already on the order.
// Reports whether the extra was actually added.
func (o *Order) AddExtra(extra string) bool {
	for _, e := range o.Extras {
		if e == extra {
			return false
		}
	}
	o.Extras = append(o.Extras, extra)
	return true
}

// Missing lists the required slots not yet filled, in the order they
// are normally collected.
func (o *Order) Missing() []string {
	var missing []string
	if o.DrinkType == "" {
		missing = append(missing, "drink type")
	}
	if o.Size == "" {
		missing = append(missing, "size")
	}
	if o.Milk == "" {
		missing = append(missing, "milk type")
	}
	if o.Name == "" {
		missing = append(missing, "name")
	}
	return missing
}

// Complete reports whether every required slot is filled.
func (o *Order) Complete() bool {
	return len(o.Missing()) == 0
}

// ExtrasLine renders the extras for display, "no extras" when empty.
func (o *Order) ExtrasLine() string {
	if len(o.Extras) == 0 {
		return "no extras"
	}
	return strings.Join(o.Extras, ", ")
}

// Clone creates a deep copy of the order.
func (o *Order) Clone() *Order {
	extras := make([]string, len(o.Extras))
	copy(extras, o.Extras)

	clone := *o
	clone.Extras = extras
	return &clone
}
