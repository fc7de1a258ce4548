package inventory

import (
	"context"
	"testing"
	"time"

	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/infrastructure/store"
	"fridgechef/internal/pkg/common"
)

type fakeMailer struct {
	reminders   map[string][]common.InventoryItem
	suggestions map[string][]common.GeneratedRecipe
	welcomes    map[string]int
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		reminders:   make(map[string][]common.InventoryItem),
		suggestions: make(map[string][]common.GeneratedRecipe),
		welcomes:    make(map[string]int),
	}
}

func (m *fakeMailer) SendExpiryReminder(ctx context.Context, to string, items []common.InventoryItem) error {
	m.reminders[to] = items
	return nil
}

func (m *fakeMailer) SendRecipeSuggestion(ctx context.Context, to string, recipes []common.GeneratedRecipe) error {
	m.suggestions[to] = recipes
	return nil
}

func (m *fakeMailer) SendWelcome(ctx context.Context, to string) error {
	m.welcomes[to]++
	return nil
}

type fakeSuggester struct{}

func (fakeSuggester) Suggest(ctx context.Context, ingredients []string) []common.GeneratedRecipe {
	return []common.GeneratedRecipe{
		{CatalogEntry: common.CatalogEntry{Name: "Leftover Stir-fry", UsedIngredients: ingredients}},
	}
}

func newTestService() (*Service, *store.MemoryStore, *fakeMailer) {
	st := store.NewMemoryStore()
	mailer := newFakeMailer()
	cfg := &config.Config{Sweep: config.SweepConfig{Interval: time.Hour}}
	return NewService(cfg, st, mailer, fakeSuggester{}), st, mailer
}

func TestAddDetectedDeduplicates(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	detected := []common.DetectedIngredient{
		{Name: "tomato", Category: "vegetables"},
		{Name: "egg", Category: "proteins"},
	}
	items, err := svc.AddDetected(ctx, "u1", detected)
	if err != nil {
		t.Fatalf("AddDetected: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("inventory size = %d, want 2", len(items))
	}

	// Re-analyzing the same fridge must not duplicate entries.
	items, err = svc.AddDetected(ctx, "u1", detected)
	if err != nil {
		t.Fatalf("AddDetected again: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("inventory size after re-add = %d, want 2", len(items))
	}
}

func TestAddNormalizesName(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Add(ctx, "u1", "Fresh Garlic", 2, "cloves")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.Name != "garlic" {
		t.Errorf("name = %q, want garlic", item.Name)
	}
	if item.Category != "vegetables" {
		t.Errorf("category = %q, want vegetables", item.Category)
	}
	if item.ShelfLifeDays != 60 {
		t.Errorf("shelf life = %d, want 60", item.ShelfLifeDays)
	}

	names, err := st.GetIngredients(ctx, "u1")
	if err != nil {
		t.Fatalf("GetIngredients: %v", err)
	}
	if len(names) != 1 || names[0] != "garlic" {
		t.Errorf("ingredient names = %v, want [garlic]", names)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Add(ctx, "u1", "milk", 1, "bottle")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, err := svc.Update(ctx, "u1", item.ID, 3, "", nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Quantity != 3 || updated.Unit != "bottle" {
		t.Errorf("updated = %+v, want quantity 3 unit bottle", updated)
	}

	if _, err := svc.Update(ctx, "u1", "no-such-id", 1, "", nil); err == nil {
		t.Error("Update with unknown id should fail")
	}

	if err := svc.Delete(ctx, "u1", item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("inventory size after delete = %d, want 0", len(items))
	}
}

func TestWelcomeMailOnFirstInventory(t *testing.T) {
	svc, _, mailer := newTestService()
	ctx := context.Background()

	if _, err := svc.Add(ctx, "new@example.com", "egg", 1, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := mailer.welcomes["new@example.com"]; got != 1 {
		t.Errorf("welcome count after first add = %d, want 1", got)
	}

	if _, err := svc.Add(ctx, "new@example.com", "milk", 1, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := mailer.welcomes["new@example.com"]; got != 1 {
		t.Errorf("welcome count after second add = %d, want still 1", got)
	}

	// Non-email ids never get mail, detected ingredients count as a first write too.
	if _, err := svc.AddDetected(ctx, "anonymous-user", []common.DetectedIngredient{{Name: "tomato"}}); err != nil {
		t.Fatalf("AddDetected: %v", err)
	}
	if got := mailer.welcomes["anonymous-user"]; got != 0 {
		t.Errorf("welcome sent to non-email user id %d times", got)
	}

	if _, err := svc.AddDetected(ctx, "scan@example.com", []common.DetectedIngredient{{Name: "tomato"}}); err != nil {
		t.Fatalf("AddDetected: %v", err)
	}
	if got := mailer.welcomes["scan@example.com"]; got != 1 {
		t.Errorf("welcome count after first detection = %d, want 1", got)
	}
}

func TestUpdateExpiryDate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Milk defaults to a 7 day shelf life; the user corrects it to 2 days out.
	item, err := svc.Add(ctx, "u1", "milk", 1, "bottle")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	expiry := time.Now().Add(2 * 24 * time.Hour)
	updated, err := svc.Update(ctx, "u1", item.ID, 0, "", &expiry)
	if err != nil {
		t.Fatalf("Update expiry: %v", err)
	}
	if updated.DaysLeft != 2 {
		t.Errorf("days left = %d, want 2", updated.DaysLeft)
	}
	if !updated.ExpiryDate.Equal(expiry) {
		t.Errorf("expiry = %v, want %v", updated.ExpiryDate, expiry)
	}
	if updated.Quantity != 1 || updated.Unit != "bottle" {
		t.Errorf("quantity/unit changed by expiry edit: %+v", updated)
	}

	items, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if items[0].DaysLeft != 2 {
		t.Errorf("persisted days left = %d, want 2", items[0].DaysLeft)
	}
}

func TestMoveToWasteAndBack(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Add(ctx, "u1", "spinach", 1, "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	waste, err := svc.MoveToWaste(ctx, "u1", item.ID)
	if err != nil {
		t.Fatalf("MoveToWaste: %v", err)
	}
	if waste.Name != "spinach" {
		t.Errorf("waste item = %q, want spinach", waste.Name)
	}

	items, _ := svc.List(ctx, "u1")
	if len(items) != 0 {
		t.Errorf("inventory still has %d items after move", len(items))
	}
	bin, err := svc.WasteBin(ctx, "u1")
	if err != nil {
		t.Fatalf("WasteBin: %v", err)
	}
	if len(bin) != 1 {
		t.Fatalf("waste bin size = %d, want 1", len(bin))
	}

	if err := svc.RemoveFromWaste(ctx, "u1", waste.ID); err != nil {
		t.Fatalf("RemoveFromWaste: %v", err)
	}
	bin, _ = svc.WasteBin(ctx, "u1")
	if len(bin) != 0 {
		t.Errorf("waste bin size after remove = %d, want 0", len(bin))
	}
}

func TestSweepOnceSendsReminders(t *testing.T) {
	svc, st, mailer := newTestService()
	ctx := context.Background()

	// Chicken keeps for 2 days, within the notification threshold.
	// Rice keeps for 180 days and must not trigger mail.
	if _, err := svc.Add(ctx, "cook@example.com", "chicken", 1, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.Add(ctx, "cook@example.com", "rice", 1, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Not an email address, must be skipped even with expiring items.
	if _, err := svc.Add(ctx, "anonymous-user", "chicken", 1, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	svc.SweepOnce(ctx)

	got, ok := mailer.reminders["cook@example.com"]
	if !ok {
		t.Fatal("no reminder sent to cook@example.com")
	}
	if len(got) != 1 || got[0].Name != "chicken" {
		t.Errorf("reminder items = %+v, want only chicken", got)
	}
	if _, ok := mailer.reminders["anonymous-user"]; ok {
		t.Error("reminder sent to non-email user id")
	}

	// The reminder comes with recipe suggestions built from the expiring items.
	suggested, ok := mailer.suggestions["cook@example.com"]
	if !ok {
		t.Fatal("no suggestion mail sent to cook@example.com")
	}
	if len(suggested) != 1 || suggested[0].Name != "Leftover Stir-fry" {
		t.Errorf("suggestions = %+v, want Leftover Stir-fry", suggested)
	}
	if _, ok := mailer.suggestions["anonymous-user"]; ok {
		t.Error("suggestion sent to non-email user id")
	}

	// Fresh long-life inventory only: no reminder.
	if err := st.SaveInventory(ctx, "cook@example.com", nil); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}
	delete(mailer.reminders, "cook@example.com")
	svc.SweepOnce(ctx)
	if _, ok := mailer.reminders["cook@example.com"]; ok {
		t.Error("reminder sent for empty inventory")
	}
}
