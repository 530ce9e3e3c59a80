package types

import "testing"

func TestVec4iAddSub(t *testing.T) {
	a := Vec4i{1, 2, 3, 4}
	b := Vec4i{10, 20, 30, 40}
	if got := a.Add(b); got != (Vec4i{11, 22, 33, 44}) {
		t.Fatalf("Add: got %v", got)
	}
	if got := b.Sub(a); got != (Vec4i{9, 18, 27, 36}) {
		t.Fatalf("Sub: got %v", got)
	}
}

func TestVec4iShlShr(t *testing.T) {
	v := Vec4i{1, -1, 4, -4}
	if got := v.Shl(2); got != (Vec4i{4, -4, 16, -16}) {
		t.Fatalf("Shl: got %v", got)
	}
	if got := v.Shr(1); got != (Vec4i{0, -1, 2, -2}) {
		t.Fatalf("Shr: got %v", got)
	}
}

func TestVec4iMaxZero(t *testing.T) {
	v := Vec4i{-5, 0, 5, -1}
	if got := v.MaxZero(); got != (Vec4i{0, 0, 5, 0}) {
		t.Fatalf("MaxZero: got %v", got)
	}
}

func TestVec4iNeg(t *testing.T) {
	v := Vec4i{1, -2, 3, -4}
	if got := v.Neg(); got != (Vec4i{-1, 2, -3, 4}) {
		t.Fatalf("Neg: got %v", got)
	}
}

func TestVec4iLess(t *testing.T) {
	if !(Vec4i{1, 1, 1, 1}).Less(Vec4i{2, 2, 2, 2}) {
		t.Fatal("expected {1,1,1,1} < {2,2,2,2}")
	}
	if (Vec4i{1, 2, 1, 1}).Less(Vec4i{2, 2, 2, 2}) {
		t.Fatal("Less requires every lane to be strictly less, not just one")
	}
}

func TestVec4iAnyLess(t *testing.T) {
	if !(Vec4i{5, 5, 5, 0}).AnyLess(Vec4i{1, 1, 1, 1}) {
		t.Fatal("expected at least one lane (lane 3: 0 < 1) to trigger AnyLess")
	}
	if (Vec4i{5, 5, 5, 5}).AnyLess(Vec4i{1, 1, 1, 1}) {
		t.Fatal("expected no lane to trigger AnyLess")
	}
}

// TestQuadShuffleKeepsAxesSeparate confirms the property the trace package's
// tests lean on: lanes 0/1 (the X-splitting pair) and lanes 2/3 (the
// Y-splitting pair) never mix under any of the four subquadrant
// permutations, so an asymmetric X bound cannot leak into the Y lanes.
func TestQuadShuffleKeepsAxesSeparate(t *testing.T) {
	v := Vec4i{10, 20, 30, 40}
	for i := 4; i < 8; i++ {
		shuffled := v.QuadShuffle(i)
		for lane, src := range quadShufflePermutation[i] {
			if shuffled[lane] != v[src] {
				t.Fatalf("QuadShuffle(%d) lane %d: expected source lane %d (%d), got %d", i, lane, src, v[src], shuffled[lane])
			}
			if lane < 2 && src >= 2 {
				t.Fatalf("QuadShuffle(%d) lane %d pulled from a Y lane (%d)", i, lane, src)
			}
			if lane >= 2 && src < 2 {
				t.Fatalf("QuadShuffle(%d) lane %d pulled from an X lane (%d)", i, lane, src)
			}
		}
	}
}

// TestMidpointUniformIsFixedPoint checks the property the trace package's
// tests rely on: a vector with all four lanes equal is unchanged by
// Midpoint, for every subquadrant.
func TestMidpointUniformIsFixedPoint(t *testing.T) {
	v := Vec4i{1000, 1000, 1000, 1000}
	for i := 4; i < 8; i++ {
		if got := v.Midpoint(i); got != v {
			t.Fatalf("Midpoint(%d) on a uniform vector: expected %v, got %v", i, v, got)
		}
	}
}

// TestMidpointAveragesSharedEdge checks the arithmetic directly: Midpoint(i)
// is (v + v.QuadShuffle(i)) >> 1, lane-wise.
func TestMidpointAveragesSharedEdge(t *testing.T) {
	v := Vec4i{200, -50, 1000, 1000}
	for i := 4; i < 8; i++ {
		want := v.Add(v.QuadShuffle(i)).Shr(1)
		if got := v.Midpoint(i); got != want {
			t.Fatalf("Midpoint(%d): expected %v, got %v", i, want, got)
		}
	}
}
