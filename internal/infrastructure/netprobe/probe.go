// Package netprobe verifica conectividad abriendo una conexión TCP al proveedor de IA.
package netprobe

import (
	"context"
	"net"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
)

var _ ports.Connectivity = (*Probe)(nil)

// Probe marca offline cuando no se puede abrir TCP a Addr dentro del timeout.
type Probe struct {
	Addr    string
	Timeout time.Duration
	dialer  func(ctx context.Context, network, addr string) (net.Conn, error)
}

// New crea la sonda. Addr vacío significa "siempre en línea".
func New(addr string, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	d := &net.Dialer{}
	return &Probe{Addr: addr, Timeout: timeout, dialer: d.DialContext}
}

// Online intenta conectar y cierra de inmediato.
func (p *Probe) Online(ctx context.Context) bool {
	if p.Addr == "" {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	conn, err := p.dialer(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
