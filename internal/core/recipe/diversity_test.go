package recipe

import (
	"testing"

	"fridgechef/internal/pkg/common"
)

func genRecipe(name string, match int, signature ...string) common.GeneratedRecipe {
	return common.GeneratedRecipe{
		CatalogEntry: common.CatalogEntry{
			Name:            name,
			UsedIngredients: signature,
		},
		ID:              name,
		MatchPercentage: match,
	}
}

func names(recipes []common.GeneratedRecipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}

func TestFilterSimilarCapsCluster(t *testing.T) {
	// Three near-identical omelettes, the weakest one must be dropped.
	in := []common.GeneratedRecipe{
		genRecipe("omelette-a", 90, "egg", "cheese", "butter", "milk"),
		genRecipe("omelette-b", 80, "egg", "cheese", "butter", "milk"),
		genRecipe("omelette-c", 70, "egg", "cheese", "butter", "milk"),
		genRecipe("salad", 60, "lettuce", "tomato", "cucumber"),
	}

	out := FilterSimilar(in)
	got := names(out)
	want := []string{"omelette-a", "omelette-b", "salad"}
	if len(got) != len(want) {
		t.Fatalf("FilterSimilar = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterSimilarSortsByMatch(t *testing.T) {
	in := []common.GeneratedRecipe{
		genRecipe("low", 40, "a", "b"),
		genRecipe("high", 95, "c", "d"),
		genRecipe("mid", 70, "e", "f"),
	}

	out := FilterSimilar(in)
	want := []string{"high", "mid", "low"}
	for i := range want {
		if out[i].Name != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, out[i].Name, want[i])
		}
	}
}

func TestFilterSimilarStableTies(t *testing.T) {
	in := []common.GeneratedRecipe{
		genRecipe("first", 50, "a", "b"),
		genRecipe("second", 50, "c", "d"),
		genRecipe("third", 50, "e", "f"),
	}

	out := FilterSimilar(in)
	want := []string{"first", "second", "third"}
	for i := range want {
		if out[i].Name != want[i] {
			t.Errorf("tie order broken: result[%d] = %q, want %q", i, out[i].Name, want[i])
		}
	}
}

func TestFilterSimilarDistinctSignaturesKept(t *testing.T) {
	// Overlap below the threshold must not cluster together.
	in := []common.GeneratedRecipe{
		genRecipe("fried-rice", 80, "rice", "egg", "carrot", "onion", "soy sauce"),
		genRecipe("egg-bowl", 75, "egg", "rice", "cheese", "onion"),
		genRecipe("egg-bowl-2", 70, "egg", "rice", "cheese", "onion"),
	}

	out := FilterSimilar(in)
	if len(out) != 3 {
		t.Fatalf("FilterSimilar kept %d, want all 3: %v", len(out), names(out))
	}
}

func TestFilterSimilarCustomCap(t *testing.T) {
	in := []common.GeneratedRecipe{
		genRecipe("omelette-a", 90, "egg", "cheese", "butter", "milk"),
		genRecipe("omelette-b", 80, "egg", "cheese", "butter", "milk"),
		genRecipe("salad", 60, "lettuce", "tomato", "cucumber"),
	}

	out := filterSimilar(in, DefaultSimilarityThreshold, 1)
	got := names(out)
	want := []string{"omelette-a", "salad"}
	if len(got) != len(want) {
		t.Fatalf("filterSimilar cap 1 = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterSimilarComparesAllSelected(t *testing.T) {
	// d is similar to b and c but not to a. Counting against every kept
	// signature must reject it once two similar ones are already in.
	base := []string{"i1", "i2", "i3", "i4", "i5", "i6", "i7", "i8", "i9"}
	shifted := []string{"i1", "i2", "i3", "i4", "i5", "i6", "i7", "i8", "x"}
	drifted := []string{"i2", "i3", "i4", "i5", "i6", "i7", "i8", "x", "z"}
	farther := []string{"i2", "i3", "i4", "i5", "i6", "i7", "i8", "x", "w"}

	in := []common.GeneratedRecipe{
		genRecipe("a", 90, base...),
		genRecipe("b", 80, shifted...),
		genRecipe("c", 70, drifted...),
		genRecipe("d", 60, farther...),
	}

	out := FilterSimilar(in)
	got := names(out)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("FilterSimilar = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestJaccard(t *testing.T) {
	a := signatureSet([]string{"egg", "rice", "cheese", "onion"})
	b := signatureSet([]string{"egg", "rice", "cheese", "onion"})
	if got := jaccard(a, b); got != 1 {
		t.Errorf("identical sets = %f, want 1", got)
	}

	c := signatureSet([]string{"egg", "rice"})
	if got := jaccard(a, c); got != 0.5 {
		t.Errorf("subset = %f, want 0.5", got)
	}

	if got := jaccard(signatureSet(nil), signatureSet(nil)); got != 1 {
		t.Errorf("empty sets = %f, want 1", got)
	}
}
