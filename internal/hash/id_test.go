package hash

import "testing"

func TestIDDeterministic(t *testing.T) {
	a := ID("ROI")
	b := ID("ROI")
	if a != b {
		t.Fatalf("ID not deterministic: %d != %d", a, b)
	}

	if ID("ROI") == ID("AIF") {
		t.Fatal("distinct names should not collide in this test set")
	}
}

func TestSumMatchesIDForSameBytes(t *testing.T) {
	name := "HF1-2CFM+3DSPGR"
	if ID(name) != Sum([]byte(name)) {
		t.Fatal("string and byte hashing disagree")
	}
}

func TestSumEmpty(t *testing.T) {
	// Empty payloads still need a stable checksum for snapshot validation.
	if Sum(nil) != Sum([]byte{}) {
		t.Fatal("nil and empty payloads should hash identically")
	}
}
