package order

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
)

// receiptPayload is the on-disk shape of a receipt. The field names are
// a compatibility contract with the tooling that reads the orders
// directory; they do not follow the wire naming.
type receiptPayload struct {
	DrinkType string   `json:"drinkType"`
	Size      string   `json:"size"`
	Milk      string   `json:"milk"`
	Extras    []string `json:"extras"`
	Name      string   `json:"name"`
}

// FSStore implements Store with one JSON file per completed order in a
// single directory, named order_<timestamp>_<customer>.json.
type FSStore struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewFSStore creates the orders directory if needed and returns a store
// writing into it.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create orders dir: %w", err)
	}
	return &FSStore{dir: dir, now: time.Now}, nil
}

// Dir returns the orders directory.
func (s *FSStore) Dir() string {
	return s.dir
}

// SaveReceipt writes the order to its own file and returns the path.
func (s *FSStore) SaveReceipt(o *model.Order) (string, error) {
	if len(o.Missing()) > 0 {
		return "", ErrIncomplete
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payload := receiptPayload{
		DrinkType: o.DrinkType,
		Size:      o.Size,
		Milk:      o.Milk,
		Extras:    o.Extras,
		Name:      o.Name,
	}
	if payload.Extras == nil {
		payload.Extras = []string{}
	}

	content, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	stamp := s.now().Format("20060102_150405")
	name := strings.ReplaceAll(o.Name, " ", "_")
	path := filepath.Join(s.dir, fmt.Sprintf("order_%s_%s.json", stamp, name))
	// Same customer, same second: keep both receipts apart.
	if _, err := os.Stat(path); err == nil {
		short := o.ID
		if len(short) > 8 {
			short = short[:8]
		}
		path = filepath.Join(s.dir, fmt.Sprintf("order_%s_%s_%s.json", stamp, name, short))
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return path, nil
}

// ListReceipts returns saved receipts, newest first.
func (s *FSStore) ListReceipts(ctx context.Context) ([]Receipt, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var receipts []Receipt
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if entry.IsDir() || !isReceiptFile(entry.Name()) {
			continue
		}
		r, err := s.readReceipt(entry.Name())
		if err != nil {
			// Skip files someone else dropped into the directory.
			continue
		}
		receipts = append(receipts, *r)
	}

	// Timestamped filenames sort chronologically.
	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].File > receipts[j].File
	})
	return receipts, nil
}

// GetReceipt reads a single receipt by filename.
func (s *FSStore) GetReceipt(ctx context.Context, file string) (*Receipt, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	// Reject traversal; receipts live flat in the orders directory.
	if file != filepath.Base(file) || !isReceiptFile(file) {
		return nil, ErrNotFound
	}
	r, err := s.readReceipt(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

// Close is a no-op; every receipt is flushed as it is written.
func (s *FSStore) Close() error {
	return nil
}

func (s *FSStore) readReceipt(file string) (*Receipt, error) {
	content, err := os.ReadFile(filepath.Join(s.dir, file))
	if err != nil {
		return nil, err
	}

	var payload receiptPayload
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, err
	}

	return &Receipt{
		File:    file,
		SavedAt: savedAt(file),
		Order: model.Order{
			DrinkType: payload.DrinkType,
			Size:      payload.Size,
			Milk:      payload.Milk,
			Extras:    payload.Extras,
			Name:      payload.Name,
		},
	}, nil
}

func isReceiptFile(name string) bool {
	return strings.HasPrefix(name, "order_") && strings.HasSuffix(name, ".json")
}

// savedAt recovers the write time from the filename stamp, falling back
// to the zero time for foreign names.
func savedAt(file string) time.Time {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(file, "order_"), ".json")
	if len(trimmed) < len("20060102_150405") {
		return time.Time{}
	}
	t, err := time.ParseInLocation("20060102_150405", trimmed[:len("20060102_150405")], time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
