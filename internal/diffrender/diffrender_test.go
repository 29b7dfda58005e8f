package diffrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedReportsChangedLines(t *testing.T) {
	before := "uses\n  UnitB,\n  UnitA;\n"
	after := "uses\n  UnitA,\n  UnitB;\n"

	text, err := Unified("Unit1.pas", []byte(before), []byte(after))
	require.NoError(t, err)
	assert.Contains(t, text, "--- Unit1.pas")
	assert.Contains(t, text, "+++ Unit1.pas")
	assert.Contains(t, text, "-  UnitB,")
	assert.Contains(t, text, "+  UnitA,")
}

func TestUnifiedEmptyForIdenticalInput(t *testing.T) {
	text, err := Unified("Unit1.pas", []byte("same\n"), []byte("same\n"))
	require.NoError(t, err)
	assert.Empty(t, text)
}
