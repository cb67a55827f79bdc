// ABOUTME: Interactive control loop and recorder preflight checks
// ABOUTME: Reads stdin until q/Q; probes peer reachability with one ping
package app

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// discoveryTimeout bounds the mDNS browse when resolving a player.
const discoveryTimeout = 3 * time.Second

// ControlLoop blocks reading lines from r until the user enters q or Q
// or the input ends. Any other input is ignored.
func ControlLoop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Print("Enter q to quit\t")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "q" || line == "Q" {
			return
		}
	}
}

// Reachable probes the peer with a single short ping, mirroring the
// preflight the recorder role has always done. UDP itself cannot detect
// an unreachable peer.
func Reachable(ip string) bool {
	return exec.Command("ping", "-c", "1", "-w", "1", ip).Run() == nil
}
