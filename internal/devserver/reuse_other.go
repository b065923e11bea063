//go:build !unix

package devserver

import "syscall"

// reuseAddr is a no-op where SO_REUSEADDR would let another process steal
// the port (Windows) or is not available.
func reuseAddr(network, address string, c syscall.RawConn) error {
	return nil
}
