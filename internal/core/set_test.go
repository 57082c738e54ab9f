package core

import (
	"encoding/json"
	"testing"
)

func TestSetAddIsIdempotent(t *testing.T) {
	s := NewSet[int]()
	if !s.Add(10) {
		t.Fatal("first Add(10) should report insertion")
	}
	if s.Add(10) {
		t.Error("second Add(10) should be a no-op")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSetJSONSorted(t *testing.T) {
	s := NewSet(20, 5, 10, 5)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != "[5,10,20]" {
		t.Errorf("Marshal() = %s, want [5,10,20]", data)
	}

	var back Set[int]
	if err := json.Unmarshal([]byte("[3,3,1]"), &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if back.Len() != 2 || !back.Has(1) || !back.Has(3) {
		t.Errorf("Unmarshal() = %v, want {1,3}", back.Sorted())
	}
}

func TestSetCloneIndependent(t *testing.T) {
	a := NewSet("default")
	b := a.Clone()
	b.Add("ocean")

	if a.Has("ocean") {
		t.Error("mutating clone leaked into original")
	}

	var nilSet Set[string]
	if c := nilSet.Clone(); c == nil {
		t.Error("Clone() of nil set should be non-nil")
	}
}

func TestIntBetweenInclusive(t *testing.T) {
	r := NewRand(42)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := IntBetween(r, 25, 50)
		if v < 25 || v > 50 {
			t.Fatalf("IntBetween() = %d, outside [25,50]", v)
		}
		seen[v] = true
	}
	if !seen[25] || !seen[50] {
		t.Error("IntBetween() never produced a range endpoint")
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for i := 0; i < 10; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatal("equal seeds produced different sequences")
		}
	}
}
