package devserver

import (
	"context"
	"fmt"
	"net"
)

// Listen binds a TCP listener on all interfaces at port. The socket allows
// immediate rebinding after a previous server released the port.
func Listen(ctx context.Context, port int) (net.Listener, error) {
	lc := net.ListenConfig{Control: reuseAddr}
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listening on port %d: %w", port, err)
	}
	return ln, nil
}
