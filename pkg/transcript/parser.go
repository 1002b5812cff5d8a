// Package transcript parses podcast transcripts into ordered dialogue turns.
//
// Transcripts arrive from the generation service as a JSON array of
// {speaker, text} records, usually wrapped in Markdown code fencing. Parsing
// is best-effort by design: malformed input degrades to a raw-text result
// instead of an error, since a readable transcript beats a failed render.
package transcript

import (
	"encoding/json"
	"strings"
)

// Speaker is the normalized category of a dialogue turn's speaker.
type Speaker string

const (
	// SpeakerExpert is the host explaining the material.
	SpeakerExpert Speaker = "expert"
	// SpeakerNovice is the host asking questions.
	SpeakerNovice Speaker = "novice"
	// SpeakerOther is any speaker outside the two-host format,
	// displayed under its original label.
	SpeakerOther Speaker = "other"
)

// Turn is one speaker's contribution, in original order.
type Turn struct {
	// Speaker is the normalized category.
	Speaker Speaker `json:"speaker" yaml:"speaker"`
	// Label is the speaker label as it appeared in the transcript.
	Label string `json:"label" yaml:"label"`
	// Text is the spoken content.
	Text string `json:"text" yaml:"text"`
}

// DisplayName returns the name to render for this turn: the canonical host
// name for the two known categories, the original label otherwise.
func (t Turn) DisplayName() string {
	switch t.Speaker {
	case SpeakerExpert:
		return "Expert"
	case SpeakerNovice:
		return "Novice"
	default:
		return t.Label
	}
}

// Result is the tagged outcome of parsing: either the full ordered turn
// sequence, or the original raw text. Never both, never a partial list.
type Result struct {
	// Turns is the ordered dialogue when parsing succeeded.
	Turns []Turn `json:"turns,omitempty" yaml:"turns,omitempty"`
	// Raw is the unmodified input when it could not be parsed.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Structured reports whether parsing produced dialogue turns.
func (r Result) Structured() bool {
	return len(r.Turns) > 0
}

// rawTurn is the wire shape of one transcript record.
type rawTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Parse interprets a raw transcript. Code fencing is stripped before
// structural parsing; on any structural failure the original input is
// returned verbatim as the fallback.
func Parse(raw string) Result {
	stripped := stripFencing(raw)

	var records []rawTurn
	if err := json.Unmarshal([]byte(stripped), &records); err != nil || len(records) == 0 {
		return Result{Raw: raw}
	}

	turns := make([]Turn, 0, len(records))
	for _, rec := range records {
		turns = append(turns, Turn{
			Speaker: categorize(rec.Speaker),
			Label:   rec.Speaker,
			Text:    rec.Text,
		})
	}
	return Result{Turns: turns}
}

// stripFencing removes Markdown code-fence decoration around the payload.
func stripFencing(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// categorize maps a free-form speaker label to its category by
// case-insensitive substring match. Total: every label lands in exactly
// one category.
func categorize(label string) Speaker {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "expert"):
		return SpeakerExpert
	case strings.Contains(lower, "novice"):
		return SpeakerNovice
	default:
		return SpeakerOther
	}
}
