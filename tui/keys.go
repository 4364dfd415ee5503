package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"score-follower/widgets"
)

func Key(help string, keyboardKey ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keyboardKey...), key.WithHelp(keyboardKey[0], help))
}

type keyMap struct {
	ResetCounters key.Binding
	ResetAll      key.Binding
	NextCue       key.Binding
	PrevCue       key.Binding
	Restart       key.Binding
	Define        key.Binding
	Dump          key.Binding
	Help          key.Binding
	Quit          key.Binding

	Submit key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	ResetCounters: Key("reset counters", "r"),
	ResetAll:      Key("reset all", "R"),
	NextCue:       Key("next cue", "n", "right"),
	PrevCue:       Key("prev cue", "p", "left"),
	Restart:       Key("restart score", "home"),
	Define:        Key("define trigger", ":"),
	Dump:          Key("dump to log", "d"),
	Help:          Key("help", "?"),
	Quit:          Key("quit", "q", "ctrl+c"),

	Submit: Key("arm trigger", "enter"),
	Cancel: Key("cancel", "esc"),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextCue, k.PrevCue, k.ResetCounters, k.Define, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextCue, k.PrevCue, k.Restart},
		{k.ResetCounters, k.ResetAll, k.Define},
		{k.Dump, k.Help, k.Quit},
	}
}

// sections lays the full key map out for widgets.RenderKeyHelp
func (k keyMap) sections() []widgets.KeySection {
	titles := []string{"Cues", "Engine", "Other"}
	var out []widgets.KeySection
	for i, group := range k.FullHelp() {
		sec := widgets.KeySection{Title: titles[i]}
		for _, b := range group {
			sec.Keys = append(sec.Keys, widgets.KeyBinding{Key: b.Help().Key, Desc: b.Help().Desc})
		}
		out = append(out, sec)
	}
	return out
}
