// ABOUTME: Endpoint validation helpers for both transport variants
// ABOUTME: Ports, IP literals, RFCOMM channels and Bluetooth MAC addresses
package transport

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

// MaxRFCOMMChannel is the highest RFCOMM channel number.
const MaxRFCOMMChannel = 30

var macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)

// IsValidPort reports whether n is a usable UDP port number.
func IsValidPort(n int) bool {
	return n > 0 && n <= 65535
}

// IsValidChannel reports whether n is a usable RFCOMM channel.
func IsValidChannel(n int) bool {
	return n > 0 && n <= MaxRFCOMMChannel
}

// IsValidIP reports whether s parses as an IP address literal.
func IsValidIP(s string) bool {
	return net.ParseIP(s) != nil
}

// IsValidMAC reports whether s is six 2-digit hex groups separated by
// colons or hyphens, case-insensitive.
func IsValidMAC(s string) bool {
	return macPattern.MatchString(s)
}

// SplitHostPort splits an "ip:port" argument and validates both halves.
func SplitHostPort(s string) (ip string, port int, err error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return "", 0, fmt.Errorf("invalid argument %q: use format IP:PORT", s)
	}
	ip = s[:i]
	port, err = strconv.Atoi(s[i+1:])
	if err != nil || !IsValidPort(port) {
		return "", 0, fmt.Errorf("invalid port number: port must be between 1 and 65535")
	}
	if !IsValidIP(ip) {
		return "", 0, fmt.Errorf("invalid IP address %q", ip)
	}
	return ip, port, nil
}

// parseBTAddr converts a validated MAC string to the byte order RFCOMM
// socket addresses use (least significant byte first).
func parseBTAddr(mac string) ([6]byte, error) {
	var addr [6]byte
	if !IsValidMAC(mac) {
		return addr, fmt.Errorf("invalid MAC address %q", mac)
	}
	norm := strings.NewReplacer("-", "", ":", "").Replace(mac)
	for i := 0; i < 6; i++ {
		b, err := strconv.ParseUint(norm[i*2:i*2+2], 16, 8)
		if err != nil {
			return addr, fmt.Errorf("invalid MAC address %q", mac)
		}
		addr[5-i] = byte(b)
	}
	return addr, nil
}
