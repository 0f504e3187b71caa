package language

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Code
	}{
		{
			name: "spanish stop-words repeated",
			text: strings.Repeat("que la de en y ", 20),
			want: Spanish,
		},
		{
			name: "spanish lyrics",
			text: "Quiero que sepas que mi corazón es tuyo\nY cuando te vas no queda nada",
			want: Spanish,
		},
		{
			name: "english lyrics",
			text: "Yesterday, all my troubles seemed so far away\nNow it looks as though they're here to stay\nOh, I believe in yesterday",
			want: English,
		},
		{
			name: "german lyrics",
			text: "Ich weiß nicht, was soll es bedeuten, dass ich so traurig bin\nEin Märchen aus uralten Zeiten, das kommt mir nicht aus dem Sinn",
			want: German,
		},
		{
			name: "french lyrics",
			text: "Non, je ne regrette rien\nNi le bien qu'on m'a fait, ni le mal, tout ça m'est bien égal\nC'est payé, balayé, oublié, je me fous du passé",
			want: French,
		},
		{
			name: "single match falls back to english",
			text: "corazón",
			want: English,
		},
		{
			name: "no matches",
			text: "lorem ipsum dolor sit amet",
			want: English,
		},
		{
			name: "empty",
			text: "",
			want: English,
		},
		{
			name: "frequency does not matter",
			text: "der der der der der der der und",
			want: German,
		},
		{
			name: "whole words only",
			text: "theatre andante yourself",
			want: English,
		},
		{
			name: "case insensitive",
			text: "QUE LA DE",
			want: Spanish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestDetectTieBreak(t *testing.T) {
	// "de" and "en" are on both the Spanish and French lists
	scores := Scores("de en")
	assert.Equal(t, 2, scores[Spanish])
	assert.Equal(t, 2, scores[French])
	assert.Equal(t, Spanish, Detect("de en"))
}

func TestDetectLowConfidenceIgnoresWinner(t *testing.T) {
	// German nominally wins with a single hit, but one hit is not enough
	assert.Equal(t, 1, Scores("ich")[German])
	assert.Equal(t, English, Detect("ich"))
}

func TestName(t *testing.T) {
	assert.Equal(t, "Spanish", Name(Spanish))
	assert.Equal(t, "English", Name(English))
	assert.Equal(t, "IT", Name(Code("it")))
}

func TestCodes(t *testing.T) {
	codes := Codes()
	assert.Equal(t, []Code{Spanish, English, German, French}, codes)
	for _, c := range codes {
		assert.True(t, Supported(c))
	}

	codes[0] = Code("it")
	assert.Equal(t, Spanish, Codes()[0], "callers must not be able to reorder detection")
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(French))
	assert.False(t, Supported(Code("it")))
}
