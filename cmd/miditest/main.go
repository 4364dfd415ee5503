package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"score-follower/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		monitor(strings.Join(os.Args[2:], " "))
	case "send":
		if len(os.Args) < 4 {
			usage()
			os.Exit(2)
		}
		send(os.Args[2], os.Args[3:])
	case "poll":
		poll(strings.Join(os.Args[2:], " "))
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                   - List all MIDI ports")
	fmt.Println("  monitor [port]         - Print note-ons as the follower sees them")
	fmt.Println("  send <port> <bytes...> - Send one raw message, e.g. send iac 144 60 100")
	fmt.Println("  poll [port]            - Watch an input connect and disconnect")
}

func listPorts() {
	fmt.Println("(waiting up to 3 seconds...)")
	ins, outs, err := midi.Ports(3 * time.Second)
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
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

func monitor(want string) {
	want = strings.ToLower(strings.TrimSpace(want))
	var ctrl *midi.InputController
	for _, in := range gomidi.GetInPorts() {
		if !midi.Matches(in.String(), want) {
			continue
		}
		c, err := midi.NewInputController(in.String(), in)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		ctrl = c
		break
	}
	if ctrl == nil {
		fmt.Printf("No input matching %q\n", want)
		return
	}
	defer ctrl.Close()

	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", ctrl.ID())
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	for {
		select {
		case <-stop:
			return
		case evt := <-ctrl.NoteEvents():
			fmt.Printf("[%s] ch=%2d note=%3d vel=%3d\n", time.Now().Format("15:04:05.000"), evt.Channel, evt.Note, evt.Velocity)
		}
	}
}

func send(port string, tokens []string) {
	out := midi.NewOutput(port)
	msg, err := midi.ParseAction(tokens)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := out.Send(tokens); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sent %s to %s\n", msg, port)
}

func poll(want string) {
	fmt.Println("Polling for device changes every second...")
	fmt.Println("Connect/disconnect the input to test. Ctrl+C to exit.")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dm := midi.NewDeviceManager(want)
	go dm.Run(ctx)

	for evt := range dm.Events() {
		switch evt.Type {
		case midi.DeviceConnected:
			fmt.Printf("[%s] connected: %s\n", time.Now().Format("15:04:05"), evt.ID)
		case midi.DeviceDisconnected:
			fmt.Printf("[%s] disconnected: %s\n", time.Now().Format("15:04:05"), evt.ID)
		}
	}
}
