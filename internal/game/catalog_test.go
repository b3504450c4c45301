package game

import (
	"reflect"
	"testing"
)

func TestCatalogDeterministic(t *testing.T) {
	a := Catalog()
	b := Catalog()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("catalog is not deterministic")
	}
}

func TestCatalogDefaults(t *testing.T) {
	seen := make(map[string]bool)
	for _, u := range Catalog() {
		if u.ID == "" {
			t.Fatalf("upgrade without id: %+v", u)
		}
		if seen[u.ID] {
			t.Fatalf("duplicate upgrade id %s", u.ID)
		}
		seen[u.ID] = true

		if u.CurrentLevel != 0 || u.Owned {
			t.Fatalf("%s: catalog entries must start unowned at level 0", u.ID)
		}
		if u.BaseCost <= 0 || u.BaseEffect <= 0 || u.MaxLevel < 1 {
			t.Fatalf("%s: invalid catalog values %+v", u.ID, u)
		}
	}
}

func TestCatalogReturnsFreshCopies(t *testing.T) {
	a := Catalog()
	a[0].CurrentLevel = 5
	if Catalog()[0].CurrentLevel != 0 {
		t.Fatalf("catalog mutation leaked into later calls")
	}
}
