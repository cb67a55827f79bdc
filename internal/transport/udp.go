// ABOUTME: Datagram transport over UDP
// ABOUTME: Connected-socket sender and goroutine receive loop with close-to-cancel
package transport

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/Soundwire-Project/soundwire-go/internal/audio"
)

// UDPSender sends each message as one datagram to a fixed ip:port.
type UDPSender struct {
	ip   string
	port int

	mu   sync.Mutex
	conn *net.UDPConn
}

// NewUDPSender validates the endpoint and opens a connected UDP socket.
func NewUDPSender(ip string, port int) (*UDPSender, error) {
	if !IsValidPort(port) {
		return nil, fmt.Errorf("invalid port number: port must be between 1 and 65535")
	}
	if !IsValidIP(ip) {
		return nil, fmt.Errorf("invalid IP address %q", ip)
	}

	conn, err := net.DialUDP("udp", nil, &net.UDPAddr{IP: net.ParseIP(ip), Port: port})
	if err != nil {
		return nil, fmt.Errorf("udp dial %s:%d: %w", ip, port, err)
	}

	log.Printf("UDPSender started, sending to %s:%d", ip, port)
	return &UDPSender{ip: ip, port: port, conn: conn}, nil
}

// Send transmits one datagram. A message larger than the path MTU may be
// dropped by the network stack; no fragmentation handling is attempted.
func (s *UDPSender) Send(msg []byte) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return net.ErrClosed
	}
	if _, err := conn.Write(msg); err != nil {
		return fmt.Errorf("udp send: %w", err)
	}
	return nil
}

// Close releases the socket. Safe to call repeatedly.
func (s *UDPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	log.Printf("UDPSender stopped")
	return err
}

// UDPReceiver listens on a port and delivers each datagram to its
// callback on a dedicated goroutine.
type UDPReceiver struct {
	port      int
	onReceive ReceiveFunc

	mu   sync.Mutex
	conn *net.UDPConn
	wg   sync.WaitGroup
}

// NewUDPReceiver validates the port. No socket or goroutine exists until
// Start.
func NewUDPReceiver(port int, onReceive ReceiveFunc) (*UDPReceiver, error) {
	if !IsValidPort(port) {
		return nil, fmt.Errorf("invalid port number: port must be between 1 and 65535")
	}
	return &UDPReceiver{port: port, onReceive: onReceive}, nil
}

// Start binds the port and spawns the receive loop.
func (r *UDPReceiver) Start() error {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: r.port})
	if err != nil {
		return fmt.Errorf("udp bind port %d: %w", r.port, err)
	}

	r.mu.Lock()
	r.conn = conn
	r.mu.Unlock()

	r.wg.Add(1)
	go r.receiveLoop(conn)

	log.Printf("UDPReceiver started listening on port: %d", r.port)
	return nil
}

// receiveLoop blocks on the socket and hands each datagram to the
// callback. Closing the socket is the only way out.
func (r *UDPReceiver) receiveLoop(conn *net.UDPConn) {
	defer r.wg.Done()

	buf := make([]byte, audio.RecvBufferSize)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("UDPReceiver read error: %v", err)
			continue
		}
		r.onReceive(buf[:n])
	}
}

// Stop closes the socket to unblock the pending read and joins the
// receive goroutine. Safe to call repeatedly or if Start never ran.
func (r *UDPReceiver) Stop() {
	r.mu.Lock()
	conn := r.conn
	r.conn = nil
	r.mu.Unlock()
	if conn == nil {
		return
	}

	conn.Close()
	r.wg.Wait()
	log.Printf("UDPReceiver stopped listening on port: %d", r.port)
}
