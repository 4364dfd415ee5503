package follower

import (
	"strconv"
	"strings"
)

// Markers recognised in trigger definitions
const (
	MarkerTrigger = "trigger"
	MarkerNext    = "next"
)

// BuildTrigger parses a trigger definition:
//
//	note repeats ["trigger" action...] ["next"]
//
// The returned trigger has no ID; Engine.DefineTrigger assigns one.
func BuildTrigger(tokens []string) (Trigger, error) {
	if len(tokens) < 3 {
		return Trigger{}, invalid(ErrInsufficientArguments, "need at least 3 tokens, got %d", len(tokens))
	}

	note, ok := parseInt(tokens[0])
	if !ok || !validNote(note) {
		return Trigger{}, invalid(ErrMalformedTrigger, "bad note %q", tokens[0])
	}
	repeats, ok := parseInt(tokens[1])
	if !ok || repeats <= 0 {
		return Trigger{}, invalid(ErrMalformedTrigger, "bad repeat count %q", tokens[1])
	}

	t := Trigger{Note: note, Repeats: repeats}

	end := len(tokens)
	if tokens[end-1] == MarkerNext {
		t.Advance = true
		end--
	}

	if tokens[2] == MarkerTrigger {
		t.HasAction = true
		// "60 3 trigger next" leaves an empty span
		if end > 3 {
			t.Action = append([]string(nil), tokens[3:end]...)
		}
		return t, nil
	}
	if t.Advance {
		return t, nil
	}
	return Trigger{}, invalid(ErrUnknownTriggerType, "third token %q", tokens[2])
}

// ParseDefinition splits a whitespace separated definition line into tokens
func ParseDefinition(line string) []string {
	return strings.Fields(line)
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
