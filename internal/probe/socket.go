package probe

import (
	"context"
	"net"
)

// runSocket attempts one TCP connect. An open port is Success; a refused or
// timed-out connect is Failure, since "nothing is listening" is exactly the
// condition this probe exists to detect.
func runSocket(ctx context.Context, def CheckDefinition) Outcome {
	detail := map[string]any{"addr": def.Target.Addr}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", def.Target.Addr)
	if err != nil {
		detail["message"] = err.Error()
		return failure("port closed", detail)
	}
	_ = conn.Close()
	return success("port open", detail)
}
