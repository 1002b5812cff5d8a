package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FencedDialogue(t *testing.T) {
	raw := "```json\n[\n" +
		`{"speaker": "Expert", "text": "Mitosis is how cells divide."},` + "\n" +
		`{"speaker": "Novice", "text": "So every cell does this?"},` + "\n" +
		`{"speaker": "Narrator", "text": "A short interlude."}` + "\n" +
		"]\n```"

	result := Parse(raw)

	require.True(t, result.Structured())
	require.Len(t, result.Turns, 3)

	assert.Equal(t, SpeakerExpert, result.Turns[0].Speaker)
	assert.Equal(t, "Mitosis is how cells divide.", result.Turns[0].Text)

	assert.Equal(t, SpeakerNovice, result.Turns[1].Speaker)

	assert.Equal(t, SpeakerOther, result.Turns[2].Speaker)
	assert.Equal(t, "Narrator", result.Turns[2].Label)
}

func TestParse_UnfencedDialogue(t *testing.T) {
	raw := `[{"speaker": "expert", "text": "Plain JSON works too."}]`

	result := Parse(raw)

	require.True(t, result.Structured())
	require.Len(t, result.Turns, 1)
	assert.Equal(t, SpeakerExpert, result.Turns[0].Speaker)
}

func TestParse_SpeakerCategorization(t *testing.T) {
	tests := []struct {
		label string
		want  Speaker
	}{
		{"Expert", SpeakerExpert},
		{"Dr. Expert", SpeakerExpert},
		{"EXPERT HOST", SpeakerExpert},
		{"Novice", SpeakerNovice},
		{"the novice", SpeakerNovice},
		{"Narrator", SpeakerOther},
		{"", SpeakerOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, categorize(tt.label))
		})
	}
}

func TestParse_OrderPreserved(t *testing.T) {
	raw := `[
		{"speaker": "Novice", "text": "first"},
		{"speaker": "Expert", "text": "second"},
		{"speaker": "Novice", "text": "third"}
	]`

	result := Parse(raw)

	require.Len(t, result.Turns, 3)
	assert.Equal(t, "first", result.Turns[0].Text)
	assert.Equal(t, "second", result.Turns[1].Text)
	assert.Equal(t, "third", result.Turns[2].Text)
}

func TestParse_FallbackReturnsInputUnmodified(t *testing.T) {
	inputs := []string{
		"This is just prose, not JSON.",
		`{"speaker": "Expert"}`, // object, not array
		"```json\n[{broken\n```",
		"",
	}

	for _, raw := range inputs {
		result := Parse(raw)
		assert.False(t, result.Structured())
		assert.Empty(t, result.Turns, "no partial turn list on failure")
		assert.Equal(t, raw, result.Raw, "fallback must be the original input")
	}
}

func TestParse_EmptyArrayFallsBack(t *testing.T) {
	result := Parse("[]")
	assert.False(t, result.Structured())
	assert.Equal(t, "[]", result.Raw)
}

func TestTurn_DisplayName(t *testing.T) {
	assert.Equal(t, "Expert", Turn{Speaker: SpeakerExpert, Label: "Dr. Expert"}.DisplayName())
	assert.Equal(t, "Novice", Turn{Speaker: SpeakerNovice, Label: "novice host"}.DisplayName())
	assert.Equal(t, "Narrator", Turn{Speaker: SpeakerOther, Label: "Narrator"}.DisplayName())
}
