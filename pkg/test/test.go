// Package test provides helpers shared by tests.
package test

import (
	"net"
	"sync"
)

var (
	usedPorts = map[int]struct{}{}
	portsMu   sync.Mutex
)

// RandomPort returns a free port number that no earlier call handed out.
func RandomPort() int {
	l, _ := net.Listen("tcp", ":0") //nolint:gosec
	_ = l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	portsMu.Lock()
	if _, ok := usedPorts[port]; ok {
		portsMu.Unlock()
		return RandomPort()
	}

	usedPorts[port] = struct{}{}
	portsMu.Unlock()
	return port
}
