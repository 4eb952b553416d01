package agent

import (
	"errors"
	"strings"
	"testing"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
)

type fakeReceipts struct {
	saved []*model.Order
	err   error
}

func (f *fakeReceipts) SaveReceipt(o *model.Order) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, o.Clone())
	return "orders/order_20250101_120000_" + strings.ReplaceAll(o.Name, " ", "_") + ".json", nil
}

func newTestBarista() (*Barista, *fakeReceipts) {
	receipts := &fakeReceipts{}
	return NewBarista(receipts), receipts
}

func TestToolReplies(t *testing.T) {
	b, _ := newTestBarista()

	if got := b.SetDrinkType("latte"); got != "Got it, a latte. What size would you like?" {
		t.Errorf("SetDrinkType reply = %q", got)
	}
	if got := b.SetSize("large"); got != "Perfect, a large size. What type of milk would you like?" {
		t.Errorf("SetSize reply = %q", got)
	}
	if got := b.SetMilk("oat"); got != "Great, oat milk. Would you like any extras like whipped cream, caramel, or an extra shot?" {
		t.Errorf("SetMilk reply = %q", got)
	}
	if got := b.AddExtra("caramel"); got != "Added caramel. Anything else, or what name should I put on the order?" {
		t.Errorf("AddExtra reply = %q", got)
	}
	if got := b.SetName("Sam"); got != "Thanks Sam! I have everything I need. Let me complete your order now." {
		t.Errorf("SetName reply = %q", got)
	}
}

func TestSetMilkSkipsExtrasQuestionWhenExtrasPresent(t *testing.T) {
	b, _ := newTestBarista()
	b.AddExtra("vanilla")

	got := b.SetMilk("soy")
	if got != "Perfect, soy milk. And what name should I put on the order?" {
		t.Errorf("SetMilk reply = %q", got)
	}
}

func TestSetNameIncompleteOrder(t *testing.T) {
	b, _ := newTestBarista()

	got := b.SetName("Alex")
	if got != "Thanks Alex! I still need a few more details about your order." {
		t.Errorf("SetName reply = %q", got)
	}
}

func TestCompleteOrderRepromptsForMissingSlots(t *testing.T) {
	b, _ := newTestBarista()

	reply, receipt, err := b.CompleteOrder()
	if err != nil || receipt != nil {
		t.Fatalf("incomplete order should not save: receipt=%v err=%v", receipt, err)
	}
	if reply != "I still need to know what drink you'd like. What can I get for you?" {
		t.Errorf("reply = %q", reply)
	}

	b.SetDrinkType("mocha")
	reply, _, _ = b.CompleteOrder()
	if reply != "What size would you like for your drink?" {
		t.Errorf("reply = %q", reply)
	}

	b.SetSize("small")
	reply, _, _ = b.CompleteOrder()
	if reply != "What type of milk would you like?" {
		t.Errorf("reply = %q", reply)
	}

	b.SetMilk("whole")
	reply, _, _ = b.CompleteOrder()
	if reply != "What name should I put on the order?" {
		t.Errorf("reply = %q", reply)
	}
}

func TestCompleteOrderSavesAndResets(t *testing.T) {
	b, receipts := newTestBarista()
	b.SetDrinkType("latte")
	b.SetSize("large")
	b.SetMilk("oat")
	b.AddExtra("extra shot")
	b.SetName("Sam")

	summary, receipt, err := b.CompleteOrder()
	if err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}
	want := "Perfect! I've got your order: a large latte with oat milk, extra shot. Your order has been saved. We'll call your name, Sam, when it's ready!"
	if summary != want {
		t.Errorf("summary = %q\nwant      %q", summary, want)
	}
	if receipt == nil || receipt.Summary != summary {
		t.Fatal("receipt should carry the summary")
	}
	if len(receipts.saved) != 1 {
		t.Fatalf("saved %d orders, want 1", len(receipts.saved))
	}
	if receipts.saved[0].Name != "Sam" || receipts.saved[0].DrinkType != "latte" {
		t.Errorf("saved order = %+v", receipts.saved[0])
	}

	// Reset for the next customer.
	if b.Order().DrinkType != "" || b.Order().Name != "" {
		t.Error("order should reset after completion")
	}
	if b.Status() == "complete" {
		t.Error("fresh order should not report complete")
	}
}

func TestCompleteOrderNoExtrasSummary(t *testing.T) {
	b, _ := newTestBarista()
	b.SetDrinkType("americano")
	b.SetSize("medium")
	b.SetMilk("none")
	b.SetName("Kai")

	summary, _, err := b.CompleteOrder()
	if err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}
	if !strings.Contains(summary, "with none milk, no extras.") {
		t.Errorf("summary = %q", summary)
	}
}

func TestCompleteOrderSaveFailureKeepsOrder(t *testing.T) {
	receipts := &fakeReceipts{err: errors.New("disk full")}
	b := NewBarista(receipts)
	b.SetDrinkType("latte")
	b.SetSize("tall")
	b.SetMilk("almond")
	b.SetName("Riley")

	reply, receipt, err := b.CompleteOrder()
	if err == nil {
		t.Fatal("expected save error")
	}
	if receipt != nil {
		t.Error("failed save should not produce a receipt")
	}
	if !strings.Contains(reply, "couldn't save") {
		t.Errorf("reply = %q", reply)
	}
	if b.Order().Name != "Riley" {
		t.Error("order should be kept for retry after a failed save")
	}

	// Retry through Respond once saving works again.
	receipts.err = nil
	turn, err := b.Respond("ok")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if turn.Receipt == nil {
		t.Fatal("retry should complete the order")
	}
	if len(receipts.saved) != 1 {
		t.Errorf("saved %d orders, want 1", len(receipts.saved))
	}
}

func TestStatus(t *testing.T) {
	b, _ := newTestBarista()

	if got := b.Status(); got != "Missing: drink type, size, milk type, name" {
		t.Errorf("Status() = %q", got)
	}

	b.SetDrinkType("espresso")
	b.SetMilk("none")
	if got := b.Status(); got != "Missing: size, name" {
		t.Errorf("Status() = %q", got)
	}

	b.SetSize("small")
	b.SetName("Ada")
	if got := b.Status(); got != "complete" {
		t.Errorf("Status() = %q", got)
	}
}

func TestRespondFullConversation(t *testing.T) {
	b, receipts := newTestBarista()

	turn, _ := b.Respond("hi there")
	if len(turn.Replies) != 1 || turn.Replies[0] != "What can I get for you?" {
		t.Fatalf("greeting turn replies = %v", turn.Replies)
	}

	turn, _ = b.Respond("can I get a latte")
	if turn.Replies[0] != "Got it, a latte. What size would you like?" {
		t.Fatalf("drink turn replies = %v", turn.Replies)
	}

	turn, _ = b.Respond("large please")
	if turn.Replies[0] != "Perfect, a large size. What type of milk would you like?" {
		t.Fatalf("size turn replies = %v", turn.Replies)
	}

	turn, _ = b.Respond("oat milk")
	if !strings.Contains(turn.Replies[0], "Would you like any extras") {
		t.Fatalf("milk turn replies = %v", turn.Replies)
	}

	turn, _ = b.Respond("no thanks")
	if turn.Replies[0] != "No problem. What name should I put on the order?" {
		t.Fatalf("decline turn replies = %v", turn.Replies)
	}

	turn, err := b.Respond("Sam")
	if err != nil {
		t.Fatalf("name turn: %v", err)
	}
	if len(turn.Replies) != 2 {
		t.Fatalf("final turn should ack and summarize, got %v", turn.Replies)
	}
	if !strings.Contains(turn.Replies[1], "a large latte with oat milk, no extras") {
		t.Errorf("summary = %q", turn.Replies[1])
	}
	if turn.Receipt == nil {
		t.Fatal("final turn should produce a receipt")
	}
	if len(receipts.saved) != 1 {
		t.Fatalf("saved %d orders, want 1", len(receipts.saved))
	}
	if got := receipts.saved[0]; got.DrinkType != "latte" || got.Size != "large" || got.Milk != "oat" || got.Name != "Sam" {
		t.Errorf("saved order = %+v", got)
	}
}

func TestRespondMultiSlotUtterance(t *testing.T) {
	b, _ := newTestBarista()

	turn, _ := b.Respond("I'd like a large oat latte with an extra shot")
	if len(turn.Replies) != 1 {
		t.Fatalf("replies = %v", turn.Replies)
	}
	// Only the last question stands.
	if !strings.Contains(turn.Replies[0], "what name") {
		t.Errorf("reply = %q", turn.Replies[0])
	}

	order := turn.Order
	if order.DrinkType != "latte" || order.Size != "large" || order.Milk != "oat" {
		t.Errorf("order = %+v", order)
	}
	if len(order.Extras) != 1 || order.Extras[0] != "extra shot" {
		t.Errorf("extras = %v", order.Extras)
	}
	if len(turn.Missing) != 1 || turn.Missing[0] != "name" {
		t.Errorf("missing = %v", turn.Missing)
	}
}

func TestRespondOneLinerCompletesOrder(t *testing.T) {
	b, receipts := newTestBarista()

	turn, err := b.Respond("venti caramel frappuccino with coconut milk for Jordan")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if turn.Receipt == nil {
		t.Fatalf("one-liner with every slot should complete, replies = %v", turn.Replies)
	}
	got := receipts.saved[0]
	if got.DrinkType != "frappuccino" || got.Size != "venti" || got.Milk != "coconut" || got.Name != "Jordan" {
		t.Errorf("saved order = %+v", got)
	}
	if len(got.Extras) != 1 || got.Extras[0] != "caramel" {
		t.Errorf("extras = %v", got.Extras)
	}
}

func TestRespondAffirmationListsExtras(t *testing.T) {
	b, _ := newTestBarista()
	b.Respond("medium mocha with whole milk")

	turn, _ := b.Respond("sure")
	if !strings.Contains(turn.Replies[0], "whipped cream, caramel, vanilla, chocolate") {
		t.Errorf("reply = %q", turn.Replies[0])
	}

	turn, _ = b.Respond("whipped cream")
	if !strings.Contains(turn.Replies[0], "Added whipped cream.") {
		t.Errorf("reply = %q", turn.Replies[0])
	}
}

func TestRespondRepromptsFirstMissingSlot(t *testing.T) {
	b, _ := newTestBarista()
	b.Respond("a cappuccino")

	turn, _ := b.Respond("hmm let me think")
	if turn.Replies[0] != "What size would you like for your drink?" {
		t.Errorf("reply = %q", turn.Replies[0])
	}
}
