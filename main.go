package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"score-follower/config"
	"score-follower/debug"
	"score-follower/follower"
	"score-follower/midi"
	"score-follower/obs"
	"score-follower/player"
	"score-follower/score"
	"score-follower/theme"
	"score-follower/tui"
)

// overridable with -ldflags "-X main.version=1.2.3 -X main.commit=abcd123"
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		runPlay(os.Args[2:])
	case "check":
		runCheck(os.Args[2:])
	case "ports":
		runPorts()
	case "init":
		runInit()
	case "version", "-v", "--version":
		fmt.Printf("score-follower %s (commit %s)\n", version, commit)
	case "help", "-h", "--help":
		usage()
	default:
		log.Printf("unknown command: %s", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("score-follower - fire MIDI cues from a live performance")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  score-follower <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run [options] [score.toml]   follow a score in the terminal UI")
	fmt.Println("  check <score.toml>           validate a score and list its cues")
	fmt.Println("  ports                        list MIDI ports")
	fmt.Println("  init                         write a default config file")
	fmt.Println("  version                      print version")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  score-follower run -input keystation -output 'IAC Bus 1' etude.toml")
	fmt.Println("  score-follower run -obs-addr 127.0.0.1:4455 -watch etude.toml")
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)

	configPath := fs.String("config", "", "config file (default ~/.config/score-follower/config.json)")
	input := fs.String("input", "", "MIDI input port name (substring, empty = all inputs)")
	output := fs.String("output", "", "MIDI output port for trigger actions")
	channel := fs.Int("channel", 0, "MIDI channel to follow (1-16, 0 = all)")
	minVelocity := fs.Int("min-velocity", follower.DefaultMinVelocity, "notes at or below this velocity are ignored")
	watch := fs.Bool("watch", false, "reload the score when the file changes")
	palette := fs.String("palette", "", "GIMP .gpl palette for the UI")
	obsAddr := fs.String("obs-addr", "", "obs-websocket address (host:port) for cue scenes")
	obsPassword := fs.String("obs-password", "", "obs-websocket password")
	debugLog := fs.Bool("debug", false, "write a debug log to "+debug.DefaultPath())

	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// flags given explicitly win over the config file
	setFlags := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	if setFlags["input"] {
		cfg.Input = *input
	}
	if setFlags["output"] {
		cfg.Output = *output
	}
	if setFlags["channel"] {
		cfg.Channel = *channel
	}
	if setFlags["min-velocity"] {
		cfg.MinVelocity = *minVelocity
	}
	if setFlags["watch"] {
		cfg.WatchScore = *watch
	}
	if setFlags["palette"] {
		cfg.Palette = *palette
	}
	if setFlags["obs-addr"] {
		cfg.OBS.Addr = *obsAddr
	}
	if setFlags["obs-password"] {
		cfg.OBS.Password = *obsPassword
	}
	if setFlags["debug"] {
		cfg.Debug = *debugLog
	}
	if fs.NArg() > 0 {
		cfg.Score = fs.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if cfg.Debug {
		if err := debug.Enable(debug.DefaultPath()); err != nil {
			log.Printf("debug log disabled: %v", err)
		}
		defer debug.Disable()
	}

	pal, err := theme.Load(cfg.Palette)
	if err != nil {
		log.Fatalf("palette: %v", err)
	}
	th := theme.New(pal)

	opts := player.Options{
		Channel:     cfg.Channel,
		MinVelocity: cfg.MinVelocity,
	}
	if cfg.Output != "" {
		opts.Actions = midi.NewOutput(cfg.Output)
	}
	if cfg.OBS.Addr != "" {
		timeout, err := cfg.OBSTimeout()
		if err != nil {
			log.Fatal(err)
		}
		sw := obs.NewSwitcher(cfg.OBS.Addr, cfg.OBS.Password, timeout)
		defer sw.Close()
		opts.Scenes = sw
	}
	manager := player.NewManager(opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Score != "" {
		s, err := score.Load(cfg.Score)
		if err != nil {
			log.Fatal(err)
		}
		manager.Reload(s)

		if cfg.WatchScore {
			go func() {
				if err := score.Watch(ctx, cfg.Score, manager.Reload, manager.Report); err != nil {
					manager.Report(fmt.Errorf("watch %s: %w", cfg.Score, err))
				}
			}()
		}
	}
	manager.StartRuntime(ctx)

	// Create MIDI device manager (handles hot-plug)
	deviceMgr := midi.NewDeviceManager(cfg.Input)
	go deviceMgr.Run(ctx)

	m := tui.NewModel(manager, deviceMgr, th)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func runCheck(args []string) {
	if len(args) != 1 {
		log.Println("usage: score-follower check <score.toml>")
		os.Exit(2)
	}
	s, err := score.Load(args[0])
	if err != nil {
		log.Fatal(err)
	}

	if s.Title != "" {
		fmt.Println(s.Title)
	}
	for i, c := range s.Cues {
		fmt.Printf("%2d. %s", i+1, c.Label(i))
		if c.Scene != "" {
			fmt.Printf("  [scene %s]", c.Scene)
		}
		fmt.Println()
		for _, tokens := range c.Tokens() {
			t, err := follower.BuildTrigger(tokens)
			if err != nil {
				// Load already validated every line
				log.Fatal(err)
			}
			fmt.Printf("      %s\n", describe(t))
		}
	}
	fmt.Printf("%d cues OK\n", s.Len())
}

func describe(t follower.Trigger) string {
	out := fmt.Sprintf("note %d x%d", t.Note, t.Repeats)
	if t.HasAction {
		out += "  -> " + follower.FormatAction(t.Action)
	}
	if t.Advance {
		out += "  next"
	}
	return out
}

func runPorts() {
	ins, outs, err := midi.Ports(3 * time.Second)
	if err != nil {
		log.Printf("%v (CoreMIDI hung? sudo killall coreaudiod midiserver)", err)
		os.Exit(1)
	}
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p)
	}
}

func runInit() {
	path, err := config.ConfigPath()
	if err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stat(path); err == nil {
		log.Fatalf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Fatal(err)
	}
	if err := config.DefaultConfig().Save(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", path)
}
