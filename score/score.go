// Package score loads cue lists. A score is an ordered list of cues; each
// cue arms a set of triggers and usually ends with one "next" trigger that
// moves the performer on to the following cue.
//
//	title = "Etude No. 1"
//
//	[[cue]]
//	name = "opening"
//	scene = "Wide"
//	triggers = [
//	  "60 3 trigger 144 72 100",
//	  "67 1 next",
//	]
package score

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"score-follower/follower"
)

// Cue is one step of the score
type Cue struct {
	Name     string   `toml:"name"`
	Scene    string   `toml:"scene,omitempty"` // OBS scene to show while the cue is active
	Triggers []string `toml:"triggers"`
}

// Tokens splits every trigger line into definition tokens
func (c Cue) Tokens() [][]string {
	out := make([][]string, 0, len(c.Triggers))
	for _, line := range c.Triggers {
		out = append(out, follower.ParseDefinition(line))
	}
	return out
}

// Label returns the cue name, or its 1-based position when unnamed
func (c Cue) Label(idx int) string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return fmt.Sprintf("cue %d", idx+1)
}

// Score is an ordered cue list
type Score struct {
	Title string `toml:"title"`
	Cues  []Cue  `toml:"cue"`
}

// Len returns the number of cues
func (s *Score) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Cues)
}

// Cue returns cue i and whether it exists
func (s *Score) Cue(i int) (Cue, bool) {
	if s == nil || i < 0 || i >= len(s.Cues) {
		return Cue{}, false
	}
	return s.Cues[i], true
}

// Parse decodes a score and checks every trigger line
func Parse(data []byte) (*Score, error) {
	var s Score
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a score file
func Load(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate builds every trigger once so bad lines are caught before a performance
func (s *Score) Validate() error {
	for i, c := range s.Cues {
		for j, tokens := range c.Tokens() {
			if _, err := follower.BuildTrigger(tokens); err != nil {
				return fmt.Errorf("%s, trigger %d (%q): %w", c.Label(i), j+1, c.Triggers[j], err)
			}
		}
	}
	return nil
}
