package model

import (
	"reflect"
	"testing"
)

func TestNewOrderEmptySlots(t *testing.T) {
	o := NewOrder()

	if o.ID == "" {
		t.Error("order should get a generated ID")
	}
	if o.Complete() {
		t.Error("fresh order should not be complete")
	}
	want := []string{"drink type", "size", "milk type", "name"}
	if got := o.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestMissingShrinksAsSlotsFill(t *testing.T) {
	o := NewOrder()
	o.DrinkType = "latte"
	o.Milk = "oat"

	want := []string{"size", "name"}
	if got := o.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}

	o.Size = "large"
	o.Name = "Sam"
	if !o.Complete() {
		t.Error("order with all required slots should be complete")
	}
}

func TestAddExtraDeduplicates(t *testing.T) {
	o := NewOrder()

	if !o.AddExtra("caramel") {
		t.Error("first add should report true")
	}
	if o.AddExtra("caramel") {
		t.Error("duplicate add should report false")
	}
	o.AddExtra("extra shot")

	if got := o.ExtrasLine(); got != "caramel, extra shot" {
		t.Errorf("ExtrasLine() = %q", got)
	}
}

func TestExtrasLineEmpty(t *testing.T) {
	if got := NewOrder().ExtrasLine(); got != "no extras" {
		t.Errorf("ExtrasLine() = %q, want %q", got, "no extras")
	}
}

func TestCloneIsDeep(t *testing.T) {
	o := NewOrder()
	o.AddExtra("vanilla")

	clone := o.Clone()
	clone.AddExtra("caramel")
	clone.Name = "Alex"

	if len(o.Extras) != 1 {
		t.Errorf("mutating clone leaked into original: %v", o.Extras)
	}
	if o.Name != "" {
		t.Error("mutating clone leaked name into original")
	}
}
