package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePreservesUntouchedRegions(t *testing.T) {
	source := []byte("uses UnitA, UnitB;\nbegin\nend.")
	edits := []Edit{
		NewReplacement(0, 18, "uses\n  UnitA,\n  UnitB;", false),
	}
	require.NoError(t, Validate(source, edits))
	out := Merge(source, edits)
	assert.Equal(t, "uses\n  UnitA,\n  UnitB;\nbegin\nend.", string(out))
}

func TestMergeNoEditsReturnsSourceVerbatim(t *testing.T) {
	source := []byte("unit Foo;\ninterface\nend.")
	out := Merge(source, nil)
	assert.Equal(t, string(source), string(out))
}

func TestValidateDetectsOverlap(t *testing.T) {
	source := []byte("0123456789")
	edits := []Edit{
		NewReplacement(0, 5, "aaaaa", false),
		NewReplacement(3, 8, "bbbbb", false),
	}
	err := Validate(source, edits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlapping edits")
}

func TestValidateDetectsBoundaryMisalignment(t *testing.T) {
	source := []byte("héllo") // 'é' is 2 bytes, offset 2 is mid-rune
	edits := []Edit{
		NewReplacement(2, 4, "x", false),
	}
	err := Validate(source, edits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestGapsComputesUncoveredRanges(t *testing.T) {
	edits := []Edit{
		NewReplacement(5, 10, "x", false),
		NewReplacement(20, 25, "y", false),
	}
	gaps := Gaps(30, edits)
	require.Len(t, gaps, 3)
	assert.Equal(t, Edit{Start: 0, End: 5}, gaps[0])
	assert.Equal(t, Edit{Start: 10, End: 20}, gaps[1])
	assert.Equal(t, Edit{Start: 25, End: 30}, gaps[2])
}

func TestReplacementCountOnlyCountsChanged(t *testing.T) {
	source := []byte("abcdef")
	edits := []Edit{
		NewReplacement(0, 3, "abc", false), // identical, not a real replacement
		NewReplacement(3, 6, "xyz", false),
	}
	assert.Equal(t, 1, ReplacementCount(source, edits))
}

func TestWithTextPanicsOnFinalEdit(t *testing.T) {
	e := NewReplacement(0, 1, "a", true)
	assert.Panics(t, func() {
		e.WithText("b")
	})
}
