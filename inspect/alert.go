package inspect

import (
	"github.com/joshuapare/lioli/config"
	"github.com/joshuapare/lioli/sink"
	"github.com/joshuapare/lioli/tree"
)

// Event type node names.
const (
	TypeAlert = "alert"
	TypeLog   = "log"
)

// AlertLogger writes alert and log events as trees to the sink named by
// its options. The sink is resolved on first use; an unknown name is
// reported once and the events are discarded.
type AlertLogger struct {
	sink   *sink.Resolver
	format EndpointFormatter
}

// NewAlertLogger returns a logger resolving opts.Logger against reg.
func NewAlertLogger(reg *sink.Registry, opts config.AlertOptions) *AlertLogger {
	return &AlertLogger{
		sink:   sink.NewResolver(reg, opts.Logger),
		format: FormatAddr,
	}
}

// SetFormatter replaces the principal/endpoint renderer.
func (a *AlertLogger) SetFormatter(f EndpointFormatter) {
	if f == nil {
		f = FormatAddr
	}
	a.format = f
}

// Alert logs an alert raised on p.
func (a *AlertLogger) Alert(p Packet, msg string) {
	a.sink.Get().Log(a.Tree(TypeAlert, p, msg))
}

// Log logs a log event raised on p.
func (a *AlertLogger) Log(p Packet, msg string) {
	a.sink.Get().Log(a.Tree(TypeLog, p, msg))
}

// Tree builds the event tree:
//
//	$ {
//	 <kind> "<msg>" .
//	 principal "<addr>" .
//	 endpoint "<addr>" .
//	 protocol "<service>" .
//	};
//
// protocol is present only when the packet's flow has a service.
func (a *AlertLogger) Tree(kind string, p Packet, msg string) *tree.Tree {
	var flow Flow
	if p != nil {
		flow = p.Flow()
	}

	root := tree.MustNew(tree.RootName).
		AppendTree(tree.MustNew(kind).AppendText(msg)).
		AppendTree(tree.MustNew("principal").AppendText(a.format(p, flow, true))).
		AppendTree(tree.MustNew("endpoint").AppendText(a.format(p, flow, false)))

	if flow != nil && flow.Service() != "" {
		root.AppendTree(tree.MustNew("protocol").AppendText(flow.Service()))
	}
	return root
}

// SinkName returns the configured sink name.
func (a *AlertLogger) SinkName() string { return a.sink.Name() }
