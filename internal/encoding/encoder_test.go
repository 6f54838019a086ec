package encoding

import (
	"strings"
	"testing"

	"github.com/genomexlab/genome-x/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCContent(t *testing.T) {
	tests := []struct {
		name     string
		window   string
		expected float64
	}{
		{name: "all GC", window: strings.Repeat("GC", 10), expected: 100},
		{name: "no GC", window: strings.Repeat("AT", 10), expected: 0},
		{name: "half GC", window: "ATGCATGCATGCATGCATGC", expected: 50},
		{name: "unknown bases count in length only", window: "GCNNNNNNNN", expected: 20},
		{name: "empty window", window: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, GCContent(tt.window), 1e-9)
		})
	}
}

func TestMolecularWeight(t *testing.T) {
	tests := []struct {
		name     string
		window   string
		expected float64
	}{
		{name: "single A", window: "A", expected: 313.2},
		{name: "single T", window: "T", expected: 304.2},
		{name: "single G", window: "G", expected: 329.2},
		{name: "single C", window: "C", expected: 289.2},
		{name: "one of each", window: "ATGC", expected: 313.2 + 304.2 + 329.2 + 289.2},
		{name: "unknown base contributes zero", window: "AN", expected: 313.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MolecularWeight(tt.window), 1e-9)
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	window := "ATGCATGCATGCATGCATGC"
	vec := Encode(window)

	require.Len(t, vec, VectorWidth)
	assert.InDelta(t, 50.0, vec[0], 1e-9)
	assert.InDelta(t, 5*(313.2+304.2+329.2+289.2), vec[1], 1e-9)

	// Per-base codes follow in window order: A=1 T=2 G=3 C=4
	for i := 0; i < len(window); i += 4 {
		assert.Equal(t, 1.0, vec[2+i])
		assert.Equal(t, 2.0, vec[2+i+1])
		assert.Equal(t, 3.0, vec[2+i+2])
		assert.Equal(t, 4.0, vec[2+i+3])
	}
}

func TestEncodeUnknownBaseCode(t *testing.T) {
	vec := Encode("N" + strings.Repeat("A", 19))
	require.Len(t, vec, VectorWidth)
	assert.Equal(t, 0.0, vec[2])
	assert.Equal(t, 1.0, vec[3])
}

func TestEncodeDeterminism(t *testing.T) {
	window := "GCGCGCGCGCATATATATAT"
	first := Encode(window)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Encode(window))
	}
}

func TestEncodeAllKeepsOrder(t *testing.T) {
	candidates := []types.Candidate{
		{SequenceID: "s", Position: 0, Window: strings.Repeat("A", 20)},
		{SequenceID: "s", Position: 5, Window: strings.Repeat("G", 20)},
	}

	rows := EncodeAll(candidates)
	require.Len(t, rows, 2)
	assert.InDelta(t, 0.0, rows[0][0], 1e-9)
	assert.InDelta(t, 100.0, rows[1][0], 1e-9)
	for _, row := range rows {
		assert.Len(t, row, VectorWidth)
	}
}
