// ABOUTME: Entry point for the Soundwire UDP streamer
// ABOUTME: Runs as player (listen on a port) or recorder (send to ip:port)
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
	fs := flag.NewFlagSet("soundwire", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var (
		playerPort   int
		recorderAddr string
		wire         string
		discover     bool
		noMDNS       bool
		logFile      string
	)
	fs.IntVar(&playerPort, "player", 0, "start as player listening for recorders [arg = port]")
	fs.IntVar(&playerPort, "p", 0, "shorthand for -player")
	fs.StringVar(&recorderAddr, "recorder", "", "start as recorder sending to a player [arg = ip:port]")
	fs.StringVar(&recorderAddr, "r", "", "shorthand for -recorder")
	fs.StringVar(&wire, "wire", "binary", "wire format: binary or text")
	fs.BoolVar(&discover, "discover", false, "recorder: find a player via mDNS instead of ip:port")
	fs.BoolVar(&noMDNS, "no-mdns", false, "player: disable mDNS advertisement")
	fs.StringVar(&logFile, "log-file", "soundwire.log", "log file path")

	if err := fs.Parse(os.Args[1:]); err != nil {
		// Usage has already been printed, for -h included.
		os.Exit(1)
	}

	codec := audio.NewCodec(wire)
	if codec == nil {
		fmt.Printf("Invalid wire format %q. Use 'binary' or 'text'.\n", wire)
		os.Exit(1)
	}

	playerMode := playerPort != 0
	recorderMode := recorderAddr != "" || discover

	if playerMode && recorderMode {
		fmt.Printf("You must specify either '-p [ --player ] port' or '-r [ --recorder ] ip:port' not both\n")
		os.Exit(1)
	}
	if !playerMode && !recorderMode {
		fmt.Printf("You must specify either '-p [ --player ] port' or '-r [ --recorder ] ip:port'\n")
		fs.Usage()
		os.Exit(1)
	}

	setupLogging(logFile)
	log.Printf("%s %s starting", version.Product, version.Version)

	if playerMode {
		runPlayer(playerPort, codec, !noMDNS)
	} else {
		runRecorder(recorderAddr, discover, codec)
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

func runPlayer(port int, codec audio.Codec, advertise bool) {
	if !transport.IsValidPort(port) {
		fmt.Printf("Invalid port number. Port must be between 1 and 65535.\n")
		os.Exit(1)
	}

	session, err := app.StartPlayer(port, codec, advertise)
	if err != nil {
		fmt.Printf("Failed to start player: %v\n", err)
		os.Exit(1)
	}

	app.ControlLoop(os.Stdin)
	session.Close()
}

func runRecorder(addr string, discover bool, codec audio.Codec) {
	var (
		ip   string
		port int
		err  error
	)
	if discover {
		ip, port, err = app.FindPlayer()
		if err != nil {
			fmt.Printf("Player discovery failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		ip, port, err = transport.SplitHostPort(addr)
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
	}

	if !app.Reachable(ip) {
		fmt.Printf("IP: %s is unreachable.\n", ip)
		os.Exit(1)
	}

	if err := engine.Initialize(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	defer engine.Terminate()

	session, err := app.StartRecorder(ip, port, codec)
	if err != nil {
		fmt.Printf("Failed to start recorder: %v\n", err)
		engine.Terminate()
		os.Exit(1)
	}

	app.ControlLoop(os.Stdin)
	session.Close()
}
