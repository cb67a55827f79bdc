// ABOUTME: Entry point for the Soundwire Bluetooth streamer
// ABOUTME: Runs as speaker (listen on an RFCOMM channel) or recorder (connect to a device)
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Soundwire-Project/soundwire-go/internal/app"
	"github.com/Soundwire-Project/soundwire-go/internal/audio"
	"github.com/Soundwire-Project/soundwire-go/internal/engine"
	"github.com/Soundwire-Project/soundwire-go/internal/transport"
	"github.com/Soundwire-Project/soundwire-go/internal/version"
)

func main() {
	fs := flag.NewFlagSet("soundwire-bt", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var (
		speakerChannel int
		recorderMode   bool
		macAddress     string
		channel        int
		wire           string
		logFile        string
	)
	fs.IntVar(&speakerChannel, "speaker", 0, "start as speaker listening on an RFCOMM channel [arg = channel]")
	fs.BoolVar(&recorderMode, "recorder", false, "start as recorder sending to -mac-address on -port")
	fs.StringVar(&macAddress, "mac-address", "", "remote device MAC address (recorder)")
	fs.IntVar(&channel, "port", 0, "remote RFCOMM channel (recorder)")
	fs.StringVar(&wire, "wire", "binary", "wire format: binary or text")
	fs.StringVar(&logFile, "log-file", "soundwire-bt.log", "log file path")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	codec := audio.NewCodec(wire)
	if codec == nil {
		fmt.Printf("Invalid wire format %q. Use 'binary' or 'text'.\n", wire)
		os.Exit(1)
	}

	speakerMode := speakerChannel != 0
	if speakerMode == recorderMode {
		fmt.Printf("You must specify either '--speaker channel' or '--recorder --mac-address addr --port channel'\n")
		fs.Usage()
		os.Exit(1)
	}

	setupLogging(logFile)
	log.Printf("%s %s (bluetooth) starting", version.Product, version.Version)

	if speakerMode {
		runSpeaker(speakerChannel, codec)
	} else {
		runRecorder(macAddress, channel, codec)
	}
}

// setupLogging mirrors output to stdout and the log file.
func setupLogging(path string) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("error opening log file: %v", err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
}

func runSpeaker(channel int, codec audio.Codec) {
	if !transport.IsValidChannel(channel) {
		fmt.Printf("Invalid channel. Channel must be between 1 and %d.\n", transport.MaxRFCOMMChannel)
		os.Exit(1)
	}

	session, err := app.StartBluetoothSpeaker(channel, codec)
	if err != nil {
		fmt.Printf("Failed to start speaker: %v\n", err)
		os.Exit(1)
	}

	app.ControlLoop(os.Stdin)
	session.Close()
}

func runRecorder(mac string, channel int, codec audio.Codec) {
	if !transport.IsValidMAC(mac) {
		fmt.Printf("Invalid MAC address %q.\n", mac)
		os.Exit(1)
	}
	if !transport.IsValidChannel(channel) {
		fmt.Printf("Invalid channel. Channel must be between 1 and %d.\n", transport.MaxRFCOMMChannel)
		os.Exit(1)
	}

	if err := engine.Initialize(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	defer engine.Terminate()

	session, err := app.StartBluetoothRecorder(mac, channel, codec)
	if err != nil {
		fmt.Printf("Failed to start recorder: %v\n", err)
		engine.Terminate()
		os.Exit(1)
	}

	app.ControlLoop(os.Stdin)
	session.Close()
}
