package jsonv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	sc := NewScanner([]byte(src), 0)
	var toks []Token
	for {
		tok, err := sc.Next()
		require.NoError(t, err)
		if tok.Kind == TokEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestScannerPunctuation(t *testing.T) {
	toks := scanAll(t, "{}[],:")
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{TokLBrace, TokRBrace, TokLBracket, TokRBracket, TokComma, TokColon}, kinds)
}

func TestScannerStrings(t *testing.T) {
	toks := scanAll(t, `"hello" "" "with spaces"`)
	require.Len(t, toks, 3)
	assert.Equal(t, "hello", toks[0].Str)
	assert.Equal(t, "", toks[1].Str)
	assert.Equal(t, "with spaces", toks[2].Str)
}

func TestScannerUnterminatedStringIsError(t *testing.T) {
	sc := NewScanner([]byte(`"abc`), 0)
	_, err := sc.Next()
	assert.Error(t, err)
}

func TestScannerEmbeddedNewlineInStringIsError(t *testing.T) {
	sc := NewScanner([]byte("\"abc\ndef\""), 0)
	_, err := sc.Next()
	assert.Error(t, err)
}

func TestScannerNumbers(t *testing.T) {
	cases := map[string]float64{
		"0":        0,
		"-1":       -1,
		"3.14":     3.14,
		"-3.14":    -3.14,
		"1e10":     1e10,
		"1.5E-3":   1.5e-3,
		"2e+2":     200,
		"123456":   123456,
		"0.000001": 0.000001,
	}
	for src, want := range cases {
		toks := scanAll(t, src)
		require.Len(t, toks, 1, src)
		assert.Equal(t, TokNumber, toks[0].Kind, src)
		assert.InDelta(t, want, toks[0].Number, 1e-9, src)
	}
}

func TestScannerKeywords(t *testing.T) {
	toks := scanAll(t, "true false null")
	require.Len(t, toks, 3)
	assert.Equal(t, TokBool, toks[0].Kind)
	assert.True(t, toks[0].Bool)
	assert.Equal(t, TokBool, toks[1].Kind)
	assert.False(t, toks[1].Bool)
	assert.Equal(t, TokNull, toks[2].Kind)
}

func TestScannerUnrecognizedIdentifierIsError(t *testing.T) {
	sc := NewScanner([]byte("undefined"), 0)
	_, err := sc.Next()
	assert.Error(t, err)
}

func TestScannerUnexpectedByteIsError(t *testing.T) {
	sc := NewScanner([]byte("#"), 0)
	_, err := sc.Next()
	assert.Error(t, err)
}

func TestScannerStopsAtDeclaredLimit(t *testing.T) {
	data := []byte(`{"a":1}garbage`)
	sc := NewScanner(data, 7) // exactly `{"a":1}`
	var kinds []TokenKind
	for {
		tok, err := sc.Next()
		require.NoError(t, err)
		if tok.Kind == TokEOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{TokLBrace, TokString, TokColon, TokNumber, TokRBrace}, kinds)
}

func TestScannerSkipsWhitespace(t *testing.T) {
	toks := scanAll(t, "  \t\n 42 \r\n")
	require.Len(t, toks, 1)
	assert.Equal(t, float64(42), toks[0].Number)
}
