// Package order persists completed drink orders as receipt files.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
)

var (
	// ErrNotFound is returned when a receipt is not found.
	ErrNotFound = errors.New("not found")
	// ErrIncomplete is returned when saving an order with empty
	// required slots.
	ErrIncomplete = errors.New("order incomplete")
)

// Receipt is a saved order as read back from disk.
type Receipt struct {
	// File is the receipt filename inside the orders directory.
	File string `json:"file"`
	// SavedAt is when the receipt was written.
	SavedAt time.Time `json:"saved_at"`
	// Order is the saved order content.
	Order model.Order `json:"order"`
}

// Store defines receipt persistence.
type Store interface {
	// SaveReceipt writes one completed order and returns the file path.
	// It returns only after the receipt is on disk; the customer hears
	// the confirmation second.
	SaveReceipt(o *model.Order) (string, error)
	// ListReceipts returns saved receipts, newest first.
	ListReceipts(ctx context.Context) ([]Receipt, error)
	// GetReceipt reads a single receipt by filename.
	GetReceipt(ctx context.Context, file string) (*Receipt, error)
	// Close releases any resources held by the store.
	Close() error
}
