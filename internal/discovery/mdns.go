// ABOUTME: mDNS discovery of running players
// ABOUTME: Players advertise their UDP port; recorders browse for one to target
package discovery

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/hashicorp/mdns"

	"github.com/Soundwire-Project/soundwire-go/internal/version"
)

// ServiceType is the mDNS service players advertise under.
const ServiceType = "_soundwire._udp"

// Config holds discovery configuration.
type Config struct {
	InstanceName string
	Port         int
}

// PlayerInfo describes a discovered player.
type PlayerInfo struct {
	Name string
	Host string
	Port int
}

// Manager handles mDNS advertisement and browsing.
type Manager struct {
	config Config
	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager creates a discovery manager.
func NewManager(config Config) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{config: config, ctx: ctx, cancel: cancel}
}

// Advertise announces this player on the local network until Stop.
func (m *Manager) Advertise() error {
	ips, err := getLocalIPs()
	if err != nil {
		return fmt.Errorf("failed to get local IPs: %w", err)
	}

	service, err := mdns.NewMDNSService(
		m.config.InstanceName,
		ServiceType,
		"",
		"",
		m.config.Port,
		ips,
		[]string{
			"role=player",
			"manufacturer=" + version.Manufacturer,
			"version=" + version.Version,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("failed to create mdns server: %w", err)
	}

	log.Printf("Advertising mDNS service: %s on port %d (type: %s)",
		m.config.InstanceName, m.config.Port, ServiceType)

	go func() {
		<-m.ctx.Done()
		server.Shutdown()
	}()

	return nil
}

// FindPlayer browses for players and returns the first one found.
func (m *Manager) FindPlayer(timeout time.Duration) (*PlayerInfo, error) {
	entries := make(chan *mdns.ServiceEntry, 10)
	found := make(chan *PlayerInfo, 1)

	go func() {
		found <- firstPlayer(entries)
	}()

	params := &mdns.QueryParam{
		Service: ServiceType,
		Domain:  "local",
		Timeout: timeout,
		Entries: entries,
	}

	err := mdns.Query(params)
	close(entries)
	if err != nil {
		return nil, fmt.Errorf("mdns query: %w", err)
	}

	player := <-found
	if player == nil {
		return nil, fmt.Errorf("no player found within %v", timeout)
	}
	return player, nil
}

// firstPlayer drains entries and returns the first usable one, or nil.
// Entries without a resolved IPv4 address are skipped.
func firstPlayer(entries <-chan *mdns.ServiceEntry) *PlayerInfo {
	var player *PlayerInfo
	for entry := range entries {
		if entry.AddrV4 == nil {
			continue
		}
		if player != nil {
			continue
		}
		player = &PlayerInfo{
			Name: entry.Name,
			Host: entry.AddrV4.String(),
			Port: entry.Port,
		}
		log.Printf("Discovered player: %s at %s:%d", player.Name, player.Host, player.Port)
	}
	return player
}

// Stop stops the discovery manager.
func (m *Manager) Stop() {
	m.cancel()
}

// getLocalIPs returns the usable local IPv4 addresses.
func getLocalIPs() ([]net.IP, error) {
	var ips []net.IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					ips = append(ips, ipnet.IP)
				}
			}
		}
	}

	return ips, nil
}
