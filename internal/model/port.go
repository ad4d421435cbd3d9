package model

import (
	"fmt"
	"strconv"
	"strings"
)

// PortAllocation represents a single port mapping between a container port
// and a host port within a worktree environment.
type PortAllocation struct {
	// ServiceName is the Docker container or Compose service name
	// that owns this port mapping. Empty means the primary container.
	ServiceName string

	// ContainerPort is the port number inside the container (1-65535).
	ContainerPort int

	// HostPort is the port number on the host machine (1024-65535).
	HostPort int

	// Protocol is the network protocol for the port mapping.
	// Defaults to "tcp". Also supports "udp".
	Protocol string
}

// Validate checks whether the PortAllocation has valid field values.
// It verifies port number ranges and protocol values.
func (p *PortAllocation) Validate() error {
	if p.ContainerPort < 1 || p.ContainerPort > 65535 {
		return fmt.Errorf("port allocation: container port %d out of range (1-65535)", p.ContainerPort)
	}
	if p.HostPort < 1024 || p.HostPort > 65535 {
		return fmt.Errorf("port allocation: host port %d out of range (1024-65535)", p.HostPort)
	}
	if p.Protocol == "" {
		p.Protocol = "tcp"
	}
	if p.Protocol != "tcp" && p.Protocol != "udp" {
		return fmt.Errorf("port allocation: invalid protocol %q (valid: tcp, udp)", p.Protocol)
	}
	return nil
}

// String returns the allocation in the form accepted by ParsePortAllocation:
//
//	[service:]containerPort:hostPort/protocol
func (p *PortAllocation) String() string {
	proto := p.Protocol
	if proto == "" {
		proto = "tcp"
	}
	s := fmt.Sprintf("%d:%d/%s", p.ContainerPort, p.HostPort, proto)
	if p.ServiceName != "" {
		s = p.ServiceName + ":" + s
	}
	return s
}

// ParsePortAllocation parses "[service:]containerPort:hostPort[/protocol]"
// and validates the result.
//
//	ParsePortAllocation("3000:13000")          → {ContainerPort: 3000, HostPort: 13000, Protocol: "tcp"}
//	ParsePortAllocation("db:5432:15432/tcp")   → {ServiceName: "db", ...}
func ParsePortAllocation(s string) (PortAllocation, error) {
	var pa PortAllocation

	spec, proto, _ := strings.Cut(s, "/")
	pa.Protocol = proto

	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 2:
	case 3:
		pa.ServiceName = parts[0]
		parts = parts[1:]
	default:
		return PortAllocation{}, fmt.Errorf("invalid port allocation %q: want [service:]containerPort:hostPort[/protocol]", s)
	}

	var err error
	if pa.ContainerPort, err = strconv.Atoi(parts[0]); err != nil {
		return PortAllocation{}, fmt.Errorf("invalid container port in %q: %w", s, err)
	}
	if pa.HostPort, err = strconv.Atoi(parts[1]); err != nil {
		return PortAllocation{}, fmt.Errorf("invalid host port in %q: %w", s, err)
	}

	if err := pa.Validate(); err != nil {
		return PortAllocation{}, err
	}
	return pa, nil
}

// ValidatePortAllocations checks a slice of PortAllocations for
// individual validity and cross-allocation host port uniqueness.
func ValidatePortAllocations(allocations []PortAllocation) error {
	// Key: "hostPort/protocol", Value: the allocation that owns it.
	seen := make(map[string]string)

	for i := range allocations {
		if err := allocations[i].Validate(); err != nil {
			return err
		}

		// Different protocols on the same port are allowed (e.g., 3000/tcp and 3000/udp).
		key := fmt.Sprintf("%d/%s", allocations[i].HostPort, allocations[i].Protocol)
		if existing, exists := seen[key]; exists {
			return fmt.Errorf("port allocation: host port %s is used by both %q and %q",
				key, existing, allocations[i].String())
		}
		seen[key] = allocations[i].String()
	}
	return nil
}
