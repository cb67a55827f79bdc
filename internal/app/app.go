// ABOUTME: Role orchestration for player and recorder sessions
// ABOUTME: Builds the pipeline for each transport variant and tears it down in order
package app

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/Soundwire-Project/soundwire-go/internal/audio"
	"github.com/Soundwire-Project/soundwire-go/internal/discovery"
	"github.com/Soundwire-Project/soundwire-go/internal/engine"
	"github.com/Soundwire-Project/soundwire-go/internal/player"
	"github.com/Soundwire-Project/soundwire-go/internal/recorder"
	"github.com/Soundwire-Project/soundwire-go/internal/transport"
)

// PlayerSession is a running player and its discovery advertisement.
type PlayerSession struct {
	player *player.Player
	disc   *discovery.Manager
}

// StartPlayer opens the speaker and starts a player listening for UDP
// datagrams on port. With advertise set, the player announces itself
// over mDNS so recorders can find it.
func StartPlayer(port int, codec audio.Codec, advertise bool) (*PlayerSession, error) {
	speaker, err := engine.NewSpeaker()
	if err != nil {
		return nil, err
	}

	p, err := player.New(speaker, codec, func(cb transport.ReceiveFunc) (transport.Receiver, error) {
		return transport.NewUDPReceiver(port, cb)
	})
	if err != nil {
		speaker.Close()
		return nil, err
	}

	session := &PlayerSession{player: p}
	if advertise {
		session.disc = discovery.NewManager(discovery.Config{
			InstanceName: instanceName(),
			Port:         port,
		})
		if err := session.disc.Advertise(); err != nil {
			// Discovery is a convenience; explicit addressing still works.
			log.Printf("mDNS advertisement failed: %v", err)
		}
	}
	return session, nil
}

// StartBluetoothSpeaker opens the speaker and starts a player accepting
// one RFCOMM connection on the channel.
func StartBluetoothSpeaker(channel int, codec audio.Codec) (*PlayerSession, error) {
	speaker, err := engine.NewSpeaker()
	if err != nil {
		return nil, err
	}

	p, err := player.New(speaker, codec, func(cb transport.ReceiveFunc) (transport.Receiver, error) {
		return transport.NewBluetoothReceiver(channel, cb)
	})
	if err != nil {
		speaker.Close()
		return nil, err
	}
	return &PlayerSession{player: p}, nil
}

// Close stops discovery, then the player. The player joins its receive
// goroutine before the speaker is closed.
func (s *PlayerSession) Close() {
	if s.disc != nil {
		s.disc.Stop()
	}
	s.player.Close()
}

// RecorderSession is a running recorder and the sender it feeds.
type RecorderSession struct {
	recorder *recorder.Recorder
	sender   transport.Sender
}

// StartRecorder opens the microphone and starts streaming to ip:port
// over UDP.
func StartRecorder(ip string, port int, codec audio.Codec) (*RecorderSession, error) {
	sender, err := transport.NewUDPSender(ip, port)
	if err != nil {
		return nil, err
	}
	return startRecorder(sender, codec)
}

// StartBluetoothRecorder opens the microphone and starts streaming to
// the remote device's RFCOMM channel.
func StartBluetoothRecorder(mac string, channel int, codec audio.Codec) (*RecorderSession, error) {
	sender, err := transport.NewBluetoothSender(mac, channel)
	if err != nil {
		return nil, err
	}
	return startRecorder(sender, codec)
}

func startRecorder(sender transport.Sender, codec audio.Codec) (*RecorderSession, error) {
	mic, err := engine.NewMicrophone()
	if err != nil {
		sender.Close()
		return nil, err
	}
	return &RecorderSession{
		recorder: recorder.New(mic, codec, sender),
		sender:   sender,
	}, nil
}

// Close stops capture first, then releases the sender.
func (s *RecorderSession) Close() {
	s.recorder.Close()
	s.sender.Close()
}

// FindPlayer resolves a player endpoint via mDNS.
func FindPlayer() (ip string, port int, err error) {
	mgr := discovery.NewManager(discovery.Config{})
	defer mgr.Stop()

	info, err := mgr.FindPlayer(discoveryTimeout)
	if err != nil {
		return "", 0, err
	}
	return info.Host, info.Port, nil
}

// instanceName builds a unique mDNS instance name for this process.
func instanceName() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-soundwire-%s", hostname, uuid.NewString()[:8])
}
