package store

import (
	"context"
	"sort"
	"testing"

	"fridgechef/internal/pkg/common"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.SaveIngredients(ctx, "u1", []string{"egg", "milk"}); err != nil {
		t.Fatalf("SaveIngredients: %v", err)
	}
	names, err := st.GetIngredients(ctx, "u1")
	if err != nil {
		t.Fatalf("GetIngredients: %v", err)
	}
	if len(names) != 2 || names[0] != "egg" {
		t.Errorf("names = %v, want [egg milk]", names)
	}

	// Unknown users read as empty, not as an error.
	recipes, err := st.GetRecipes(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetRecipes for unknown user: %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("recipes = %v, want empty", recipes)
	}
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	first := []common.InventoryItem{{ID: "1", Name: "egg"}}
	second := []common.InventoryItem{{ID: "2", Name: "milk"}}
	if err := st.SaveInventory(ctx, "u1", first); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}
	if err := st.SaveInventory(ctx, "u1", second); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}

	items, err := st.GetInventory(ctx, "u1")
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}
	if len(items) != 1 || items[0].Name != "milk" {
		t.Errorf("items = %+v, want only milk", items)
	}
}

func TestMemoryStoreDeepCopies(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	items := []common.InventoryItem{{ID: "1", Name: "egg"}}
	if err := st.SaveInventory(ctx, "u1", items); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}
	items[0].Name = "mutated"

	got, err := st.GetInventory(ctx, "u1")
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}
	if got[0].Name != "egg" {
		t.Errorf("stored copy mutated: %q", got[0].Name)
	}
}

func TestMemoryStoreUsers(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	st.SaveIngredients(ctx, "a@example.com", []string{"egg"})
	st.SaveInventory(ctx, "b@example.com", nil)
	st.SaveIngredients(ctx, "a@example.com", []string{"milk"})

	users, err := st.Users(ctx)
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	sort.Strings(users)
	if len(users) != 2 || users[0] != "a@example.com" || users[1] != "b@example.com" {
		t.Errorf("users = %v, want both users once", users)
	}
}
