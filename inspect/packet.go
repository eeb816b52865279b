package inspect

import "net/netip"

// Packet is the part of a host packet the inspectors read.
type Packet interface {
	// HasIP reports whether the packet carries an IP header.
	HasIP() bool
	// Src and Dst are the packet's addresses and ports. Ports are zero for
	// protocols without them.
	Src() netip.AddrPort
	Dst() netip.AddrPort
	// Flow returns the session the packet belongs to, or nil.
	Flow() Flow
}

// Flow is the part of a host session the inspectors read.
type Flow interface {
	Client() netip.AddrPort
	Server() netip.AddrPort
	// Service is the identified application protocol, or "".
	Service() string
}

// EndpointFormatter renders the principal (true) or endpoint (false) side
// of an event. flow may be nil.
type EndpointFormatter func(p Packet, flow Flow, principal bool) string

// FormatAddr is the default EndpointFormatter: the flow's client or server
// address when there is a flow, otherwise the packet's source or
// destination address.
func FormatAddr(p Packet, flow Flow, principal bool) string {
	var ap netip.AddrPort
	switch {
	case flow != nil && principal:
		ap = flow.Client()
	case flow != nil:
		ap = flow.Server()
	case p == nil:
		return ""
	case principal:
		ap = p.Src()
	default:
		ap = p.Dst()
	}
	if !ap.Addr().IsValid() {
		return ""
	}
	return ap.Addr().String()
}
