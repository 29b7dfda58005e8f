package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	o := DefaultConfig()

	assert.Equal(t, LineEndingAuto, o.LineEnding)
	assert.Equal(t, CommaAtEnd, o.UsesSection.Style)
	assert.True(t, o.Transformations.UsesSection)
	assert.True(t, o.Transformations.Text)
	assert.Equal(t, BeforeAndAfter, o.TextChanges.Assign)
	assert.True(t, o.TextChanges.ColonNumericException)
	require.NoError(t, o.Validate())
}

func TestUsesStyleValidation(t *testing.T) {
	tests := []struct {
		style UsesStyle
		valid bool
	}{
		{CommaAtEnd, true},
		{CommaAtBeginning, true},
		{UsesStyle("invalid"), false},
		{UsesStyle(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.style.IsValid())
		})
	}
}

func TestLineEndingValidation(t *testing.T) {
	tests := []struct {
		value LineEnding
		valid bool
	}{
		{LineEndingAuto, true},
		{LineEndingCRLF, true},
		{LineEndingLF, true},
		{LineEnding("cr"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.value.IsValid())
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Options)
		wantError string
	}{
		{
			name:   "default config is valid",
			mutate: func(o *Options) {},
		},
		{
			name: "invalid line ending",
			mutate: func(o *Options) {
				o.LineEnding = "cr"
			},
			wantError: "invalid line_ending",
		},
		{
			name: "invalid uses section style",
			mutate: func(o *Options) {
				o.UsesSection.Style = "alphabetical"
			},
			wantError: "invalid uses_section.style",
		},
		{
			name: "invalid text change operation",
			mutate: func(o *Options) {
				o.TextChanges.Comma = "sometimes"
			},
			wantError: "invalid text_changes.comma",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultConfig()
			tt.mutate(o)
			err := o.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestLineEndingResolve(t *testing.T) {
	assert.Equal(t, "crlf", LineEndingCRLF.Resolve())
	assert.Equal(t, "lf", LineEndingLF.Resolve())
	// LineEndingAuto resolves based on runtime.GOOS; either is a valid newline.
	assert.Contains(t, []string{"crlf", "lf"}, LineEndingAuto.Resolve())
}

func TestOptionsValidateAccumulatesMultipleErrors(t *testing.T) {
	o := DefaultConfig()
	o.LineEnding = "cr"
	o.UsesSection.Style = "alphabetical"

	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid line_ending")
	assert.Contains(t, err.Error(), "invalid uses_section.style")
}
