// Package agent implements the barista: a deterministic slot-filling
// engine that collects a drink order over chat and saves a receipt once
// every required slot is filled.
package agent

import (
	"fmt"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
)

// slot tracks which question the barista asked last, so bare answers
// ("large", "Sam", "no thanks") land in the right place.
type slot int

const (
	awaitNone slot = iota
	awaitDrink
	awaitSize
	awaitMilk
	// awaitExtras covers both "any extras?" and "anything else, or what
	// name?"; declines and bare names are both valid here.
	awaitExtras
	awaitName
)

// ReceiptWriter persists a completed order and returns where it landed.
type ReceiptWriter interface {
	SaveReceipt(o *model.Order) (string, error)
}

// Receipt reports a saved order back to the session.
type Receipt struct {
	OrderID string
	Path    string
	Summary string
}

// Turn is the outcome of one customer utterance: the barista's replies
// in speaking order, a snapshot of the order, and the receipt when this
// turn completed one.
type Turn struct {
	Replies []string
	Order   *model.Order
	Missing []string
	Receipt *Receipt
}

// Barista holds one customer's order state. Not safe for concurrent
// use; every session owns its own instance.
type Barista struct {
	order    *model.Order
	awaiting slot
	receipts ReceiptWriter
}

// NewBarista creates a barista persisting completed orders through w.
func NewBarista(w ReceiptWriter) *Barista {
	return &Barista{
		order:    model.NewOrder(),
		awaiting: awaitDrink,
		receipts: w,
	}
}

// Order returns a snapshot of the current order.
func (b *Barista) Order() *model.Order {
	return b.order.Clone()
}

// SetDrinkType records the kind of drink the customer wants.
func (b *Barista) SetDrinkType(drinkType string) string {
	b.order.DrinkType = drinkType
	b.order.Touch()
	b.awaiting = awaitSize
	return fmt.Sprintf("Got it, a %s. What size would you like?", drinkType)
}

// SetSize records the drink size.
func (b *Barista) SetSize(size string) string {
	b.order.Size = size
	b.order.Touch()
	b.awaiting = awaitMilk
	return fmt.Sprintf("Perfect, a %s size. What type of milk would you like?", size)
}

// SetMilk records the milk preference. Asks about extras unless some
// are already on the order, in which case it moves on to the name.
func (b *Barista) SetMilk(milkType string) string {
	b.order.Milk = milkType
	b.order.Touch()
	if len(b.order.Extras) == 0 {
		b.awaiting = awaitExtras
		return fmt.Sprintf("Great, %s milk. Would you like any extras like whipped cream, caramel, or an extra shot?", milkType)
	}
	b.awaiting = awaitName
	return fmt.Sprintf("Perfect, %s milk. And what name should I put on the order?", milkType)
}

// AddExtra puts an extra on the order, ignoring duplicates.
func (b *Barista) AddExtra(extra string) string {
	b.order.AddExtra(extra)
	b.order.Touch()
	b.awaiting = awaitExtras
	return fmt.Sprintf("Added %s. Anything else, or what name should I put on the order?", extra)
}

// SetName records the customer's name.
func (b *Barista) SetName(name string) string {
	b.order.Name = name
	b.order.Touch()
	if b.order.DrinkType != "" && b.order.Size != "" && b.order.Milk != "" {
		b.awaiting = awaitNone
		return fmt.Sprintf("Thanks %s! I have everything I need. Let me complete your order now.", name)
	}
	return fmt.Sprintf("Thanks %s! I still need a few more details about your order.", name)
}

// CompleteOrder saves the order when every required slot is filled,
// answers with the summary, and resets for the next customer. With
// slots still missing it reprompts for the first one instead. The
// error is non-nil only when persisting failed; the reply then asks
// the customer to retry and the order is kept.
func (b *Barista) CompleteOrder() (string, *Receipt, error) {
	switch {
	case b.order.DrinkType == "":
		b.awaiting = awaitDrink
		return "I still need to know what drink you'd like. What can I get for you?", nil, nil
	case b.order.Size == "":
		b.awaiting = awaitSize
		return "What size would you like for your drink?", nil, nil
	case b.order.Milk == "":
		b.awaiting = awaitMilk
		return "What type of milk would you like?", nil, nil
	case b.order.Name == "":
		b.awaiting = awaitName
		return "What name should I put on the order?", nil, nil
	}

	path, err := b.receipts.SaveReceipt(b.order)
	if err != nil {
		return "Sorry, I couldn't save your order just now. Give me a moment and tell me again.", nil, err
	}

	summary := fmt.Sprintf(
		"Perfect! I've got your order: a %s %s with %s milk, %s. Your order has been saved. We'll call your name, %s, when it's ready!",
		b.order.Size, b.order.DrinkType, b.order.Milk, b.order.ExtrasLine(), b.order.Name,
	)
	receipt := &Receipt{
		OrderID: b.order.ID,
		Path:    path,
		Summary: summary,
	}

	// Reset for the next customer.
	b.order = model.NewOrder()
	b.awaiting = awaitDrink

	return summary, receipt, nil
}

// Status describes how far along the order is: "complete" or the list
// of missing slots.
func (b *Barista) Status() string {
	missing := b.order.Missing()
	if len(missing) == 0 {
		return "complete"
	}
	out := "Missing: " + missing[0]
	for _, m := range missing[1:] {
		out += ", " + m
	}
	return out
}

// Respond runs one conversational turn: parse the utterance, apply every
// slot it filled, and answer with the last prompt. Completing the last
// required slot finishes the order in the same turn.
func (b *Barista) Respond(text string) (Turn, error) {
	p := parseUtterance(text, b.awaiting)

	var replies []string
	if p.drink != "" {
		replies = append(replies, b.SetDrinkType(p.drink))
	}
	if p.size != "" {
		replies = append(replies, b.SetSize(p.size))
	}
	if p.milk != "" {
		replies = append(replies, b.SetMilk(p.milk))
	}
	for _, e := range p.extras {
		replies = append(replies, b.AddExtra(e))
	}
	if p.declinedExtras {
		b.awaiting = awaitName
		replies = append(replies, "No problem. What name should I put on the order?")
	}
	if p.affirmed {
		replies = append(replies, "Sure! We've got whipped cream, caramel, vanilla, chocolate, or an extra shot. What sounds good?")
	}
	if p.name != "" {
		replies = append(replies, b.SetName(p.name))
	}

	if len(replies) > 1 {
		// Only the final question stands; earlier tool replies would
		// re-ask slots the same utterance already answered.
		replies = replies[len(replies)-1:]
	}

	// Snapshot before completing: a completing turn reports the order it
	// closed, not the fresh one the reset leaves behind.
	snapshot := b.Order()
	missing := snapshot.Missing()

	var (
		receipt *Receipt
		err     error
	)
	if b.order.Complete() {
		// Also reached on a retry after a failed save.
		var summary string
		summary, receipt, err = b.CompleteOrder()
		replies = append(replies, summary)
	} else if len(replies) == 0 {
		replies = append(replies, b.reprompt())
	}

	return Turn{
		Replies: replies,
		Order:   snapshot,
		Missing: missing,
		Receipt: receipt,
	}, err
}

// reprompt asks for the first missing slot when an utterance yielded
// nothing usable.
func (b *Barista) reprompt() string {
	if b.order.DrinkType == "" && b.order.Size == "" && b.order.Milk == "" && b.order.Name == "" {
		b.awaiting = awaitDrink
		return "What can I get for you?"
	}
	reply, _, _ := b.CompleteOrder()
	return reply
}
