package campus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_Resolve_ParenthesizedCodes(t *testing.T) {
	dir := NewDirectory()

	for _, code := range dir.Codes() {
		name, ok := dir.Name(code)
		require.True(t, ok)

		gotCode, gotName := dir.Resolve(fmt.Sprintf("Whatever (%s)", code))
		assert.Equal(t, code, gotCode)
		assert.Equal(t, name, gotName)
	}
}

func TestDirectory_Resolve_DisplayNames(t *testing.T) {
	dir := NewDirectory()

	for _, code := range dir.Codes() {
		name, ok := dir.Name(code)
		require.True(t, ok)

		gotCode, gotName := dir.Resolve(name)
		assert.Equal(t, code, gotCode, "resolving %q", name)
		assert.Equal(t, name, gotName, "resolving %q", name)
	}
}

func TestDirectory_Resolve(t *testing.T) {
	dir := NewDirectory()

	tests := []struct {
		name         string
		text         string
		expectedCode string
		expectedName string
	}{
		{
			name:         "Parenthesized known code",
			text:         "Campus Monterrey (MTY)",
			expectedCode: "MTY",
			expectedName: "Monterrey",
		},
		{
			name:         "Parenthesized lowercase code",
			text:         "Campus Guadalajara (gdl)",
			expectedCode: "GDL",
			expectedName: "Guadalajara",
		},
		{
			name:         "Parenthesized unknown code keeps the annotation",
			text:         "Campus Virtual (XYZ)",
			expectedCode: "XYZ",
			expectedName: "XYZ",
		},
		{
			name:         "Code embedded in longer text",
			text:         "Resumen QRO agosto",
			expectedCode: "QRO",
			expectedName: "Querétaro",
		},
		{
			name:         "Display name embedded in longer text",
			text:         "reporte para hidalgo, mes actual",
			expectedCode: "HGO",
			expectedName: "Hidalgo",
		},
		{
			name:         "Accented display name",
			text:         "León",
			expectedCode: "LEO",
			expectedName: "León",
		},
		{
			name:         "Fallback truncates to three letters",
			text:         "Tampico",
			expectedCode: "TAM",
			expectedName: "Tampico",
		},
		{
			name:         "Empty text",
			text:         "",
			expectedCode: UnknownCode,
			expectedName: "",
		},
		{
			name:         "Too short for a code",
			text:         "ab",
			expectedCode: UnknownCode,
			expectedName: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, name := dir.Resolve(tt.text)
			assert.Equal(t, tt.expectedCode, code)
			assert.Equal(t, tt.expectedName, name)
		})
	}
}

func TestDirectory_ResolveByName(t *testing.T) {
	dir := NewDirectory()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Exact display name",
			input:    "Monterrey",
			expected: "MTY",
		},
		{
			name:     "Name embedded in a header",
			input:    "Campus de Querétaro",
			expected: "QRO",
		},
		{
			name:     "Case-insensitive match",
			input:    "SANTA FE",
			expected: "CSF",
		},
		{
			name:     "Unknown name truncates",
			input:    "Tampico",
			expected: "TAM",
		},
		{
			name:     "Short unknown name uppercases as-is",
			input:    "ab",
			expected: "AB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dir.ResolveByName(tt.input))
		})
	}
}

func TestDirectory_IsKnown(t *testing.T) {
	dir := NewDirectory()

	assert.True(t, dir.IsKnown("MTY"))
	assert.True(t, dir.IsKnown("SAL"))
	assert.False(t, dir.IsKnown("XYZ"))
	assert.False(t, dir.IsKnown("mty"))
}

func TestDirectory_Codes_HasTwentyEntries(t *testing.T) {
	dir := NewDirectory()
	assert.Len(t, dir.Codes(), 20)
}
