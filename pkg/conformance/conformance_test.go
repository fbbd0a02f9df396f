package conformance

import (
	"strings"
	"testing"
)

func u16(v uint16) *uint16 { return &v }

func TestLoadVectorsDecodesJSON(t *testing.T) {
	const doc = `[
		{
			"name": "add-overflow",
			"initial": {"ax": 32767, "memory": {"0x0": 5, "0x1": 1, "0x2": 0}},
			"steps": 1,
			"expected": {"ax": 32768}
		}
	]`
	vectors, err := LoadVectors(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadVectors() error = %v", err)
	}
	if len(vectors) != 1 || vectors[0].Name != "add-overflow" {
		t.Fatalf("unexpected vectors: %+v", vectors)
	}
}

func TestRunnerPassAndFail(t *testing.T) {
	vectors := []Vector{
		{
			Name: "mov-imm-ax",
			Initial: VectorState{
				Memory: map[string]uint8{"0x0": 0xB8, "0x1": 0x34, "0x2": 0x12},
			},
			Steps:    1,
			Expected: VectorState{AX: u16(0x1234), IP: u16(3)},
		},
		{
			Name: "wrong-expectation",
			Initial: VectorState{
				Memory: map[string]uint8{"0x0": 0xB8, "0x1": 0x34, "0x2": 0x12},
			},
			Steps:    1,
			Expected: VectorState{AX: u16(0xFFFF)},
		},
	}

	run := NewRunner(2)
	report := run.Run(vectors)

	passed, total := report.Summary()
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	if passed != 1 {
		t.Fatalf("passed = %d, want 1", passed)
	}

	results := report.Results()
	if results[0].Passed {
		t.Errorf("results[0] = %+v, want the failing vector sorted first", results[0])
	}
	if results[0].Name != "wrong-expectation" {
		t.Errorf("results[0].Name = %q, want wrong-expectation", results[0].Name)
	}
	if len(results[0].Mismatches) == 0 {
		t.Error("failing result has no recorded mismatches")
	}
	if run.Checked() != 2 {
		t.Errorf("Checked() = %d, want 2", run.Checked())
	}
}

func TestRunnerDeterministicOrderingAcrossRuns(t *testing.T) {
	vectors := make([]Vector, 0, 20)
	for i := 0; i < 20; i++ {
		vectors = append(vectors, Vector{
			Name:     string(rune('a' + i)),
			Initial:  VectorState{Memory: map[string]uint8{"0x0": 0x90}}, // NOP-equivalent XCHG AX,AX
			Steps:    1,
			Expected: VectorState{IP: u16(1)},
		})
	}

	run := NewRunner(8)
	first := run.Run(vectors).Results()
	second := run.Run(vectors).Results()

	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("order diverged at %d: %q vs %q", i, first[i].Name, second[i].Name)
		}
	}
}
