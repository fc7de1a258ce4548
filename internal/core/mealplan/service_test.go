package mealplan

import (
	"context"
	"testing"

	"fridgechef/internal/infrastructure/store"
	"fridgechef/internal/pkg/common"
)

func seedRecipes(t *testing.T, st *store.MemoryStore, userID string) common.GeneratedRecipe {
	t.Helper()
	r := common.GeneratedRecipe{
		CatalogEntry: common.CatalogEntry{Name: "Egg Bowl"},
		ID:           "r-1",
		Image:        "img://egg-bowl",
	}
	if err := st.SaveRecipes(context.Background(), userID, []common.GeneratedRecipe{r}); err != nil {
		t.Fatalf("SaveRecipes: %v", err)
	}
	return r
}

func TestAssignAndReplace(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	ctx := context.Background()
	r := seedRecipes(t, st, "u1")

	entry, err := svc.Assign(ctx, "u1", "Monday", common.MealLunch, r.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if entry.RecipeName != "Egg Bowl" || entry.Image != r.Image {
		t.Errorf("entry = %+v, want recipe fields copied", entry)
	}

	// Assigning the same slot again replaces, it does not append.
	if _, err := svc.Assign(ctx, "u1", "Monday", common.MealLunch, r.ID); err != nil {
		t.Fatalf("Assign replace: %v", err)
	}
	plan, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(plan) != 1 {
		t.Errorf("plan size = %d, want 1 after replacement", len(plan))
	}
}

func TestAssignValidation(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	ctx := context.Background()
	r := seedRecipes(t, st, "u1")

	if _, err := svc.Assign(ctx, "u1", "Funday", common.MealLunch, r.ID); err == nil {
		t.Error("invalid day accepted")
	}
	if _, err := svc.Assign(ctx, "u1", "Monday", common.MealSlot("Brunch"), r.ID); err == nil {
		t.Error("invalid slot accepted")
	}
	if _, err := svc.Assign(ctx, "u1", "Monday", common.MealLunch, "missing-recipe"); err == nil {
		t.Error("unknown recipe accepted")
	}
}

func TestRemove(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	ctx := context.Background()
	r := seedRecipes(t, st, "u1")

	if _, err := svc.Assign(ctx, "u1", "Friday", common.MealDinner, r.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := svc.Remove(ctx, "u1", "Friday", common.MealDinner); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	plan, _ := svc.Get(ctx, "u1")
	if len(plan) != 0 {
		t.Errorf("plan size = %d, want 0", len(plan))
	}

	if err := svc.Remove(ctx, "u1", "Friday", common.MealDinner); err == nil {
		t.Error("removing empty slot should fail")
	}
}
