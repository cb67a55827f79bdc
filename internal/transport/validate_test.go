// ABOUTME: Tests for endpoint validation helpers
// ABOUTME: Table tests for ports, channels, IPs and MAC addresses
package transport

import "testing"

func TestIsValidPort(t *testing.T) {
	cases := []struct {
		port int
		want bool
	}{
		{0, false},
		{-1, false},
		{1, true},
		{12345, true},
		{65535, true},
		{65536, false},
		{70000, false},
	}
	for _, c := range cases {
		if got := IsValidPort(c.port); got != c.want {
			t.Errorf("IsValidPort(%d) = %v, want %v", c.port, got, c.want)
		}
	}
}

func TestIsValidChannel(t *testing.T) {
	cases := []struct {
		channel int
		want    bool
	}{
		{0, false},
		{1, true},
		{15, true},
		{30, true},
		{31, false},
	}
	for _, c := range cases {
		if got := IsValidChannel(c.channel); got != c.want {
			t.Errorf("IsValidChannel(%d) = %v, want %v", c.channel, got, c.want)
		}
	}
}

func TestIsValidIP(t *testing.T) {
	cases := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"192.168.1.42", true},
		{"::1", true},
		{"999.999.999.999", false},
		{"not-an-ip", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsValidIP(c.ip); got != c.want {
			t.Errorf("IsValidIP(%q) = %v, want %v", c.ip, got, c.want)
		}
	}
}

func TestIsValidMAC(t *testing.T) {
	cases := []struct {
		mac  string
		want bool
	}{
		{"00:1A:7D:DA:71:13", true},
		{"00-1a-7d-da-71-13", true},
		{"ff:ff:ff:ff:ff:ff", true},
		{"00:1A:7D", false},
		{"001A7DDA7113", false},
		{"00:1A:7D:DA:71:13:55", false},
		{"g0:1A:7D:DA:71:13", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsValidMAC(c.mac); got != c.want {
			t.Errorf("IsValidMAC(%q) = %v, want %v", c.mac, got, c.want)
		}
	}
}

func TestSplitHostPort(t *testing.T) {
	ip, port, err := SplitHostPort("192.168.1.7:9000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ip != "192.168.1.7" || port != 9000 {
		t.Errorf("got %s:%d, want 192.168.1.7:9000", ip, port)
	}

	for _, bad := range []string{"192.168.1.7", "192.168.1.7:70000", "192.168.1.7:x", "999.999.999.999:80"} {
		if _, _, err := SplitHostPort(bad); err == nil {
			t.Errorf("SplitHostPort(%q) succeeded, want error", bad)
		}
	}
}

func TestParseBTAddr(t *testing.T) {
	addr, err := parseBTAddr("00:1A:7D:DA:71:13")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// RFCOMM addresses are stored least significant byte first.
	want := [6]byte{0x13, 0x71, 0xDA, 0x7D, 0x1A, 0x00}
	if addr != want {
		t.Errorf("parseBTAddr = %x, want %x", addr, want)
	}

	if _, err := parseBTAddr("001A7DDA7113"); err == nil {
		t.Errorf("unseparated MAC accepted")
	}
}
