package recipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"fridgechef/internal/core/imagesearch"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/infrastructure/store"
	"fridgechef/internal/pkg/common"
)

type fakeRemote struct {
	enabled bool
	entries []common.CatalogEntry
	err     error
}

func (f *fakeRemote) Enabled() bool { return f.enabled }

func (f *fakeRemote) GenerateRecipes(ctx context.Context, ingredients []string, count int) ([]common.CatalogEntry, error) {
	return f.entries, f.err
}

type fakeSearcher struct{}

func (fakeSearcher) SearchRecipeImage(ctx context.Context, recipeName string) string {
	return "img://" + recipeName
}

func generationConfig() *config.Config {
	return &config.Config{
		Generation: config.GenerationConfig{
			MaxRecipes:         12,
			MinMatchPercentage: 30,
			BatchSize:          4,
			PriorityImages:     3,
			BackfillWorkers:    2,
		},
	}
}

func TestGenerateFromLocalCatalog(t *testing.T) {
	svc := NewService(generationConfig(), store.NewMemoryStore(), nil, fakeSearcher{})

	recipes, err := svc.Generate(context.Background(), "u1", []string{"egg", "rice", "cheese", "onion"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recipes) == 0 {
		t.Fatal("no recipes from local catalog")
	}
	if recipes[0].Name != "Egg Bowl" || recipes[0].MatchPercentage != 100 {
		t.Errorf("top recipe = %q (%d%%), want Egg Bowl at 100%%", recipes[0].Name, recipes[0].MatchPercentage)
	}
	for i := 1; i < len(recipes); i++ {
		if recipes[i].MatchPercentage > recipes[i-1].MatchPercentage {
			t.Errorf("recipes not sorted by match: %d%% after %d%%", recipes[i].MatchPercentage, recipes[i-1].MatchPercentage)
		}
		if recipes[i].MatchPercentage < 30 {
			t.Errorf("recipe %q below threshold: %d%%", recipes[i].Name, recipes[i].MatchPercentage)
		}
	}
}

func TestGenerateRemoteFailureFallsBack(t *testing.T) {
	ingredients := []string{"egg", "rice", "cheese", "onion"}

	localOnly := NewService(generationConfig(), store.NewMemoryStore(), nil, fakeSearcher{})
	wantRecipes, err := localOnly.Generate(context.Background(), "u1", ingredients)
	if err != nil {
		t.Fatalf("local-only Generate: %v", err)
	}

	broken := &fakeRemote{enabled: true, err: errors.New("upstream timeout")}
	svc := NewService(generationConfig(), store.NewMemoryStore(), broken, fakeSearcher{})
	gotRecipes, err := svc.Generate(context.Background(), "u1", ingredients)
	if err != nil {
		t.Fatalf("Generate with broken remote: %v", err)
	}

	if len(gotRecipes) != len(wantRecipes) {
		t.Fatalf("broken remote result differs from local-only: %d vs %d", len(gotRecipes), len(wantRecipes))
	}
	for i := range wantRecipes {
		if gotRecipes[i].Name != wantRecipes[i].Name {
			t.Errorf("result[%d] = %q, want %q", i, gotRecipes[i].Name, wantRecipes[i].Name)
		}
	}
}

func TestGenerateRemoteReplacesCatalog(t *testing.T) {
	remote := &fakeRemote{
		enabled: true,
		entries: []common.CatalogEntry{
			{
				Name:              "Remote Egg Rice",
				Time:              "12 min",
				Difficulty:        common.DifficultyEasy,
				Calories:          400,
				NutritionBenefits: "Protein and carbs",
				UsedIngredients:   []string{"egg", "rice", "cheese", "onion"},
				Ingredients:       []string{"eggs", "rice", "cheese", "onion"},
				Instructions:      []common.InstructionStep{{Title: "Cook", Detail: "Fry it all."}},
			},
			{
				// 無步驟，驗證必須把它丟掉
				Name:            "Broken Recipe",
				Time:            "5 min",
				Difficulty:      common.DifficultyEasy,
				UsedIngredients: []string{"egg"},
				Ingredients:     []string{"egg"},
			},
		},
	}

	svc := NewService(generationConfig(), store.NewMemoryStore(), remote, fakeSearcher{})
	recipes, err := svc.Generate(context.Background(), "u1", []string{"egg", "rice", "cheese", "onion"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// A healthy remote owns the result set: no catalog entries mixed in.
	if len(recipes) != 1 {
		t.Fatalf("got %d recipes, want only the valid remote one: %v", len(recipes), names(recipes))
	}
	if recipes[0].Name != "Remote Egg Rice" || recipes[0].MatchPercentage != 100 {
		t.Errorf("top recipe = %q (%d%%), want Remote Egg Rice at 100%%",
			recipes[0].Name, recipes[0].MatchPercentage)
	}
}

func TestGenerateAllRemoteRecipesInvalidFallsBack(t *testing.T) {
	ingredients := []string{"egg", "rice", "cheese", "onion"}

	localOnly := NewService(generationConfig(), store.NewMemoryStore(), nil, fakeSearcher{})
	wantRecipes, err := localOnly.Generate(context.Background(), "u1", ingredients)
	if err != nil {
		t.Fatalf("local-only Generate: %v", err)
	}

	junk := &fakeRemote{
		enabled: true,
		entries: []common.CatalogEntry{
			{Name: "No Steps", Time: "5 min", Difficulty: common.DifficultyEasy,
				UsedIngredients: []string{"egg"}, Ingredients: []string{"egg"}},
		},
	}
	svc := NewService(generationConfig(), store.NewMemoryStore(), junk, fakeSearcher{})
	gotRecipes, err := svc.Generate(context.Background(), "u1", ingredients)
	if err != nil {
		t.Fatalf("Generate with junk remote: %v", err)
	}

	if len(gotRecipes) != len(wantRecipes) {
		t.Fatalf("junk remote result differs from local-only: %d vs %d", len(gotRecipes), len(wantRecipes))
	}
	for i := range wantRecipes {
		if gotRecipes[i].Name != wantRecipes[i].Name {
			t.Errorf("result[%d] = %q, want %q", i, gotRecipes[i].Name, wantRecipes[i].Name)
		}
	}
}

type failingStore struct {
	*store.MemoryStore
}

func (f *failingStore) SaveRecipes(ctx context.Context, userID string, recipes []common.GeneratedRecipe) error {
	return errors.New("connection refused")
}

func TestGeneratePersistenceFailureIsStoreError(t *testing.T) {
	st := &failingStore{MemoryStore: store.NewMemoryStore()}
	svc := NewService(generationConfig(), st, nil, fakeSearcher{})

	_, err := svc.Generate(context.Background(), "u1", []string{"egg", "rice", "cheese", "onion"})
	if err == nil {
		t.Fatal("expected error when recipes cannot be persisted")
	}
	if !common.IsStoreError(err) {
		t.Errorf("error not typed as store failure: %v", err)
	}
}

func TestGenerateZeroIngredients(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(generationConfig(), st, nil, fakeSearcher{})

	recipes, err := svc.Generate(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("zero ingredients produced %d recipes, want 0", len(recipes))
	}

	stored, err := st.GetRecipes(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetRecipes: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("stored %d recipes, want 0", len(stored))
	}
}

func TestGenerateEventsBatchesPersistedBeforeEmission(t *testing.T) {
	cfg := generationConfig()
	cfg.Generation.BatchSize = 2
	st := store.NewMemoryStore()
	svc := NewService(cfg, st, nil, fakeSearcher{})

	ctx := context.Background()
	var batches int
	var done bool
	for ev := range svc.GenerateEvents(ctx, "u1", []string{"egg", "rice", "cheese", "onion"}) {
		switch ev.Kind {
		case EventBatchReady:
			batches++
			stored, err := st.GetRecipes(ctx, "u1")
			if err != nil {
				t.Fatalf("GetRecipes: %v", err)
			}
			storedIDs := make(map[string]struct{}, len(stored))
			for _, r := range stored {
				storedIDs[r.ID] = struct{}{}
			}
			for _, r := range ev.Batch {
				if _, ok := storedIDs[r.ID]; !ok {
					t.Errorf("batch recipe %q emitted before being persisted", r.Name)
				}
			}
		case EventDone:
			done = true
		case EventFailed:
			t.Fatalf("unexpected failure: %v", ev.Err)
		}
	}

	if !done {
		t.Error("no Done event received")
	}
	if batches < 2 {
		t.Errorf("got %d batches, want at least 2 with batch size 2", batches)
	}
}

func TestSuggestScoresLocalCatalog(t *testing.T) {
	svc := NewService(generationConfig(), store.NewMemoryStore(), nil, fakeSearcher{})

	suggested := svc.Suggest(context.Background(), []string{"egg", "rice", "cheese", "onion"})
	if len(suggested) == 0 {
		t.Fatal("no suggestions for a full match set")
	}
	if suggested[0].Name != "Egg Bowl" || suggested[0].MatchPercentage != 100 {
		t.Errorf("top suggestion = %q (%d%%), want Egg Bowl at 100%%",
			suggested[0].Name, suggested[0].MatchPercentage)
	}

	if got := svc.Suggest(context.Background(), nil); got != nil {
		t.Errorf("suggestions for empty ingredients = %v, want nil", got)
	}
}

func TestGeneratePriorityImagesAndBackfill(t *testing.T) {
	cfg := generationConfig()
	cfg.Generation.PriorityImages = 1
	st := store.NewMemoryStore()
	svc := NewService(cfg, st, nil, fakeSearcher{})

	ctx := context.Background()
	recipes, err := svc.Generate(ctx, "u1", []string{"egg", "rice", "cheese", "onion"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recipes) < 2 {
		t.Skip("need at least two recipes for backfill coverage")
	}

	if recipes[0].Image != "img://"+recipes[0].Name {
		t.Errorf("priority recipe image = %q, want synchronous result", recipes[0].Image)
	}
	if recipes[1].Image != imagesearch.PlaceholderImage {
		t.Errorf("non-priority recipe image = %q, want placeholder", recipes[1].Image)
	}

	// Backfill runs in the background and rewrites the stored copies.
	deadline := time.Now().Add(3 * time.Second)
	for {
		stored, err := st.GetRecipes(ctx, "u1")
		if err != nil {
			t.Fatalf("GetRecipes: %v", err)
		}
		allFilled := true
		for _, r := range stored {
			if r.Image == imagesearch.PlaceholderImage {
				allFilled = false
			}
		}
		if allFilled {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("backfill did not replace placeholder images in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
	svc.StopBackfill()
}
