// Package mdns advertises the Plateful server on the local network via
// mDNS/Zeroconf so clients can discover it without configuration.
package mdns

import (
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/mdns"

	"github.com/platefulapp/plateful-server/internal/logger"
)

const (
	// ServiceType is the mDNS service type for Plateful servers.
	ServiceType = "_plateful._tcp"

	// APIVersion is the API version advertised in TXT records.
	APIVersion = "v1"

	// ServerVersion is the server version advertised in TXT records.
	ServerVersion = "1.0.0"
)

// Service manages mDNS advertisement.
type Service struct {
	server *mdns.Server
	logger *logger.Logger
	mu     sync.Mutex
}

// NewService creates an mDNS service.
func NewService(log *logger.Logger) *Service {
	return &Service{logger: log}
}

// Start begins advertising on the given port. Call after the HTTP server
// is listening. Failures are typically non-fatal (multicast may be
// unavailable, e.g. inside containers).
func (s *Service) Start(serverName string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
	}

	host, err := os.Hostname()
	if err != nil {
		host = "plateful-server"
	}

	txtRecords := []string{
		fmt.Sprintf("name=%s", serverName),
		fmt.Sprintf("version=%s", ServerVersion),
		fmt.Sprintf("api=%s", APIVersion),
	}

	service, err := mdns.NewMDNSService(
		host,
		ServiceType,
		"", // domain: .local
		"", // host: system hostname
		port,
		nil, // all interfaces
		txtRecords,
	)
	if err != nil {
		return fmt.Errorf("create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("start mDNS server: %w", err)
	}

	s.server = server
	s.logger.Info("mDNS advertisement started",
		"service", ServiceType,
		"port", port,
		"name", serverName,
	)

	return nil
}

// Stop stops advertising. Safe to call multiple times.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
		s.logger.Info("mDNS advertisement stopped")
	}
}
