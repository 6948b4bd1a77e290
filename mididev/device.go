// Package mididev decodes a keyboard's raw MIDI stream into structured
// input events. The driver invokes the decode callback on its own thread;
// events land in an unbounded queue and the consumer drains them on its own
// schedule via Dispatch, in arrival order, with nothing dropped or
// reordered.
package mididev

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Cable-s/PianoGame/model"
	"github.com/bep/debounce"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// Virtual/system ports that are never auto-connected.
var excludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// ErrNoDevice is returned when no usable input port exists.
var ErrNoDevice = fmt.Errorf("no MIDI input device available")

// ListInputs returns the names of connected input ports, with virtual
// system ports filtered out.
func ListInputs() ([]string, error) {
	drv := drivers.Get()
	if drv == nil {
		return nil, fmt.Errorf("no MIDI driver registered")
	}
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI inputs: %w", err)
	}
	var names []string
	for _, in := range ins {
		if excluded(in.String()) {
			continue
		}
		names = append(names, in.String())
	}
	return names, nil
}

func excluded(name string) bool {
	for _, pat := range excludedPatterns {
		if strings.Contains(strings.ToLower(name), strings.ToLower(pat)) {
			return true
		}
	}
	return false
}

func findInput(name string) (drivers.In, error) {
	drv := drivers.Get()
	if drv == nil {
		return nil, fmt.Errorf("no MIDI driver registered")
	}
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI inputs: %w", err)
	}
	for _, in := range ins {
		if excluded(in.String()) {
			continue
		}
		if name == "" || strings.Contains(strings.ToLower(in.String()), strings.ToLower(name)) {
			return in, nil
		}
	}
	return nil, ErrNoDevice
}

// Decoder owns one open input port and the queue its events land in.
type Decoder struct {
	mu        sync.Mutex
	queue     Queue
	in        drivers.In
	stop      func()
	name      string
	connected bool

	// reconnect attempts after a disconnect are coalesced so a flapping
	// device doesn't hammer the driver
	reconnect func(f func())

	// the driver's clock restarts at zero on every listen, so timestamps
	// are rebased onto the decoder's own stream clock across reconnects
	baseMS atomic.Int32
	lastMS atomic.Int32
}

// stamp converts a listen-relative driver timestamp to the decoder's
// stream-relative clock and advances the high-water mark.
func (d *Decoder) stamp(raw int32) int32 {
	ts := raw + d.baseMS.Load()
	if ts > d.lastMS.Load() {
		d.lastMS.Store(ts)
	}
	return ts
}

// rebase anchors the next listen's zero at the last seen timestamp.
func (d *Decoder) rebase() {
	d.baseMS.Store(d.lastMS.Load())
}

// Open connects to the first input port whose name contains name (any
// usable port if name is empty) and starts the decode producer.
func Open(name string) (*Decoder, error) {
	d := &Decoder{reconnect: debounce.New(time.Second)}
	if err := d.connect(name); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Decoder) connect(name string) error {
	in, err := findInput(name)
	if err != nil {
		return err
	}

	d.rebase()
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		if ev, ok := Decode(msg.Bytes(), d.stamp(timestampms)); ok {
			d.queue.Push(ev)
		}
	})
	if err != nil {
		return fmt.Errorf("listening to %v: %w", in.String(), err)
	}

	d.mu.Lock()
	d.in = in
	d.stop = stop
	d.name = in.String()
	d.connected = true
	d.mu.Unlock()

	slog.Info("midi input connected", "device", in.String())
	return nil
}

// Name is the connected port name.
func (d *Decoder) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// Connected reports whether the port is open.
func (d *Decoder) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Dispatch drains every event decoded since the last call and hands them to
// fn in arrival order. It never blocks waiting for input. Returns the
// number of events dispatched.
func (d *Decoder) Dispatch(fn func(model.InputEvent)) int {
	events := d.queue.Drain()
	for _, ev := range events {
		fn(ev)
	}
	return len(events)
}

// RequestReconnect schedules a debounced attempt to re-open the port after
// a disconnect.
func (d *Decoder) RequestReconnect() {
	d.mu.Lock()
	name := d.name
	connected := d.connected
	d.mu.Unlock()
	if connected {
		return
	}
	d.reconnect(func() {
		if err := d.connect(name); err != nil {
			slog.Warn("midi reconnect failed", "device", name, "err", err)
		}
	})
}

// Close stops the producer and releases the port. Queued events stay
// drainable; bytes mid-message at close time are discarded.
func (d *Decoder) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
	d.connected = false
}

// CloseDriver releases the underlying MIDI driver. Call once at process
// shutdown.
func CloseDriver() {
	midi.CloseDriver()
}
