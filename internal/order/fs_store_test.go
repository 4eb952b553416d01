package order

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
)

func newTestStore(t *testing.T) *FSStore {
	t.Helper()
	s, err := NewFSStore(filepath.Join(t.TempDir(), "orders"))
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	return s
}

func completeOrder() *model.Order {
	o := model.NewOrder()
	o.DrinkType = "latte"
	o.Size = "large"
	o.Milk = "oat"
	o.AddExtra("extra shot")
	o.Name = "Sam Lee"
	return o
}

func TestSaveReceiptFileNameAndContent(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	}

	path, err := s.SaveReceipt(completeOrder())
	if err != nil {
		t.Fatalf("SaveReceipt: %v", err)
	}

	if got := filepath.Base(path); got != "order_20250314_092653_Sam_Lee.json" {
		t.Errorf("filename = %q", got)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read receipt: %v", err)
	}

	// The file keeps the external receipt field names.
	for _, key := range []string{`"drinkType"`, `"size"`, `"milk"`, `"extras"`, `"name"`} {
		if !strings.Contains(string(content), key) {
			t.Errorf("receipt missing %s: %s", key, content)
		}
	}
	if !strings.Contains(string(content), "\n  \"size\"") {
		t.Errorf("receipt should be two-space indented: %s", content)
	}

	var payload struct {
		DrinkType string   `json:"drinkType"`
		Extras    []string `json:"extras"`
		Name      string   `json:"name"`
	}
	if err := json.Unmarshal(content, &payload); err != nil {
		t.Fatalf("unmarshal receipt: %v", err)
	}
	if payload.DrinkType != "latte" || payload.Name != "Sam Lee" {
		t.Errorf("payload = %+v", payload)
	}
	if len(payload.Extras) != 1 || payload.Extras[0] != "extra shot" {
		t.Errorf("extras = %v", payload.Extras)
	}
}

func TestSaveReceiptRejectsIncompleteOrder(t *testing.T) {
	s := newTestStore(t)

	o := model.NewOrder()
	o.DrinkType = "latte"

	if _, err := s.SaveReceipt(o); !errors.Is(err, ErrIncomplete) {
		t.Errorf("err = %v, want ErrIncomplete", err)
	}
}

func TestSaveReceiptSameSecondDoesNotOverwrite(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	}

	first, err := s.SaveReceipt(completeOrder())
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := s.SaveReceipt(completeOrder())
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first == second {
		t.Errorf("second receipt overwrote the first: %s", first)
	}

	receipts, err := s.ListReceipts(context.Background())
	if err != nil {
		t.Fatalf("ListReceipts: %v", err)
	}
	if len(receipts) != 2 {
		t.Errorf("listed %d receipts, want 2", len(receipts))
	}
}

func TestListReceiptsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	times := []time.Time{
		time.Date(2025, 3, 14, 8, 0, 0, 0, time.Local),
		time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local),
		time.Date(2025, 3, 14, 9, 5, 0, 0, time.Local),
	}
	for i, at := range times {
		s.now = func() time.Time { return at }
		o := completeOrder()
		o.Name = []string{"Ada", "Kai", "Riley"}[i]
		if _, err := s.SaveReceipt(o); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	receipts, err := s.ListReceipts(context.Background())
	if err != nil {
		t.Fatalf("ListReceipts: %v", err)
	}
	if len(receipts) != 3 {
		t.Fatalf("listed %d receipts, want 3", len(receipts))
	}
	wantOrder := []string{"Kai", "Riley", "Ada"}
	for i, want := range wantOrder {
		if receipts[i].Order.Name != want {
			t.Errorf("receipts[%d] = %s, want %s", i, receipts[i].Order.Name, want)
		}
	}
	if receipts[0].SavedAt != times[1] {
		t.Errorf("SavedAt = %v, want %v", receipts[0].SavedAt, times[1])
	}
}

func TestListReceiptsSkipsForeignFiles(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SaveReceipt(completeOrder()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("not a receipt"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "order_bad.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	receipts, err := s.ListReceipts(context.Background())
	if err != nil {
		t.Fatalf("ListReceipts: %v", err)
	}
	if len(receipts) != 1 {
		t.Errorf("listed %d receipts, want 1", len(receipts))
	}
}

func TestGetReceipt(t *testing.T) {
	s := newTestStore(t)

	path, err := s.SaveReceipt(completeOrder())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	r, err := s.GetReceipt(context.Background(), filepath.Base(path))
	if err != nil {
		t.Fatalf("GetReceipt: %v", err)
	}
	if r.Order.Name != "Sam Lee" {
		t.Errorf("order = %+v", r.Order)
	}

	if _, err := s.GetReceipt(context.Background(), "order_20990101_000000_Nobody.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing receipt err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetReceipt(context.Background(), "../escape.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("traversal err = %v, want ErrNotFound", err)
	}
}
