// Package inspect connects packet-inspection events to LioLi sinks.
//
// The host inspection framework is reached only through the Packet and Flow
// interfaces. AlertLogger turns alert and log events into trees for a
// registered tree sink; NetworkMapper writes one flow-log line per IP packet
// and per flow service change, pairing the two through a flowcache.Cache.
package inspect
