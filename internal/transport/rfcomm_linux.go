// ABOUTME: Serial-stream transport over Bluetooth RFCOMM sockets
// ABOUTME: Linux-only; connection-oriented, one session per connection
package transport

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/Soundwire-Project/soundwire-go/internal/audio"
)

// BluetoothSender writes messages to an RFCOMM connection opened at
// construction. Connect failure is fatal to construction.
type BluetoothSender struct {
	mac     string
	channel int

	mu     sync.Mutex
	fd     int
	closed bool
}

// NewBluetoothSender validates the endpoint and connects to the remote
// device's RFCOMM channel.
func NewBluetoothSender(mac string, channel int) (*BluetoothSender, error) {
	if !IsValidChannel(channel) {
		return nil, fmt.Errorf("invalid channel: channel must be between 1 and %d", MaxRFCOMMChannel)
	}
	addr, err := parseBTAddr(mac)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_STREAM, unix.BTPROTO_RFCOMM)
	if err != nil {
		return nil, fmt.Errorf("rfcomm socket: %w", err)
	}
	sa := &unix.SockaddrRFCOMM{Addr: addr, Channel: uint8(channel)}
	if err := unix.Connect(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rfcomm connect %s channel %d: %w", mac, channel, err)
	}

	log.Printf("BluetoothSender connected to %s channel %d", mac, channel)
	return &BluetoothSender{mac: mac, channel: channel, fd: fd}, nil
}

// Send writes one message to the connection. The underlying write may
// block; there is no application-level acknowledgement.
func (s *BluetoothSender) Send(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("rfcomm send: connection closed")
	}
	for len(msg) > 0 {
		n, err := unix.Write(s.fd, msg)
		if err != nil {
			return fmt.Errorf("rfcomm send: %w", err)
		}
		msg = msg[n:]
	}
	return nil
}

// Close shuts the connection down. Safe to call repeatedly.
func (s *BluetoothSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	err := unix.Close(s.fd)
	log.Printf("BluetoothSender stopped")
	return err
}

// BluetoothReceiver listens on a local RFCOMM channel, accepts one peer
// and delivers everything it sends to the callback. A dropped connection
// ends the session; there is no automatic reconnection.
type BluetoothReceiver struct {
	channel   int
	onReceive ReceiveFunc

	mu       sync.Mutex
	listenFD int
	connFD   int
	started  bool
	stopping atomic.Bool
	wg       sync.WaitGroup
}

// NewBluetoothReceiver validates the channel. The socket is created by
// Start.
func NewBluetoothReceiver(channel int, onReceive ReceiveFunc) (*BluetoothReceiver, error) {
	if !IsValidChannel(channel) {
		return nil, fmt.Errorf("invalid channel: channel must be between 1 and %d", MaxRFCOMMChannel)
	}
	return &BluetoothReceiver{channel: channel, onReceive: onReceive, listenFD: -1, connFD: -1}, nil
}

// Start binds BDADDR_ANY on the channel, listens, and spawns the accept
// and read loop.
func (r *BluetoothReceiver) Start() error {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_STREAM, unix.BTPROTO_RFCOMM)
	if err != nil {
		return fmt.Errorf("rfcomm socket: %w", err)
	}
	sa := &unix.SockaddrRFCOMM{Channel: uint8(r.channel)} // zero Addr = any adapter
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return fmt.Errorf("rfcomm bind channel %d: %w", r.channel, err)
	}
	if err := unix.Listen(fd, 1); err != nil {
		unix.Close(fd)
		return fmt.Errorf("rfcomm listen channel %d: %w", r.channel, err)
	}

	r.mu.Lock()
	r.listenFD = fd
	r.started = true
	r.mu.Unlock()

	r.wg.Add(1)
	go r.sessionLoop(fd)

	log.Printf("BluetoothReceiver listening on channel: %d", r.channel)
	return nil
}

// sessionLoop accepts one connection and pumps it until the peer hangs
// up or Stop closes the sockets.
func (r *BluetoothReceiver) sessionLoop(listenFD int) {
	defer r.wg.Done()

	connFD, _, err := unix.Accept(listenFD)
	if err != nil {
		if !r.stopping.Load() {
			log.Printf("BluetoothReceiver accept error: %v", err)
		}
		return
	}
	log.Printf("BluetoothReceiver accepted connection on channel %d", r.channel)

	r.mu.Lock()
	if r.stopping.Load() {
		r.mu.Unlock()
		unix.Close(connFD)
		return
	}
	r.connFD = connFD
	r.mu.Unlock()
	defer r.closeConn()

	buf := make([]byte, audio.RecvBufferSize)
	for {
		n, err := unix.Read(connFD, buf)
		if err != nil {
			if !r.stopping.Load() {
				log.Printf("BluetoothReceiver read error: %v", err)
			}
			return
		}
		if n == 0 {
			log.Printf("BluetoothReceiver peer disconnected")
			return
		}
		r.onReceive(buf[:n])
	}
}

// closeConn releases the accepted connection if it is still open.
func (r *BluetoothReceiver) closeConn() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.connFD >= 0 {
		unix.Close(r.connFD)
		r.connFD = -1
	}
}

// Stop closes both sockets to unblock accept/read and joins the session
// goroutine. Safe to call repeatedly or if Start never ran.
func (r *BluetoothReceiver) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	r.stopping.Store(true)
	if r.connFD >= 0 {
		unix.Shutdown(r.connFD, unix.SHUT_RDWR)
		unix.Close(r.connFD)
		r.connFD = -1
	}
	if r.listenFD >= 0 {
		// close(2) alone does not wake a thread parked in accept(2);
		// shutdown does, with EINVAL, which sessionLoop treats as a
		// quiet exit once stopping is set.
		unix.Shutdown(r.listenFD, unix.SHUT_RDWR)
		unix.Close(r.listenFD)
		r.listenFD = -1
	}
	r.mu.Unlock()

	r.wg.Wait()
	log.Printf("BluetoothReceiver stopped listening on channel: %d", r.channel)
}
