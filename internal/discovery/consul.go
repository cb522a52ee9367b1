package discovery

import (
	"fmt"
	"log"
	"net"

	"github.com/hashicorp/consul/api"
)

const (
	healthCheckInterval = "10s"
	healthCheckTimeout  = "5s"
	deregisterAfter     = "30s"
)

// Registry registers this service with a Consul agent so that other
// services can discover it. Health is probed over the /health endpoint.
type Registry struct {
	client *api.Client
}

// Service describes one registration. Address is optional; when empty
// the machine's outbound IP is advertised.
type Service struct {
	Name    string
	ID      string
	Address string
	Port    int
	Tags    []string
}

func NewRegistry(addr string) (*Registry, error) {
	config := api.DefaultConfig()
	config.Address = addr

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %w", err)
	}

	if _, err := client.Agent().Self(); err != nil {
		return nil, fmt.Errorf("failed to connect to Consul: %w", err)
	}

	log.Println("✅ Connected to Consul")

	return &Registry{client: client}, nil
}

// outboundIP finds the IP this machine would use to reach the outside
func outboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// Register announces the service to Consul with an HTTP health check
func (r *Registry) Register(svc Service) error {
	addr := svc.Address
	if addr == "" {
		addr = outboundIP()
	}

	registration := &api.AgentServiceRegistration{
		ID:      svc.ID,
		Name:    svc.Name,
		Port:    svc.Port,
		Address: addr,
		Tags:    svc.Tags,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", addr, svc.Port),
			Interval:                       healthCheckInterval,
			Timeout:                        healthCheckTimeout,
			DeregisterCriticalServiceAfter: deregisterAfter,
		},
	}

	if err := r.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	log.Printf("✅ Registered service: %s (ID: %s) at %s:%d", svc.Name, svc.ID, addr, svc.Port)
	return nil
}

// Deregister removes the service from Consul
func (r *Registry) Deregister(serviceID string) error {
	if err := r.client.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}

	log.Printf("✅ Deregistered service: %s", serviceID)
	return nil
}
