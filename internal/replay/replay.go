// Package replay drives headless input devices from a YAML event script.
//
// A script declares the devices (and tablet tools) it needs and a list of
// events. Each event is emitted on the signals of its device, which is what a
// backend does when the kernel delivers input:
//
//	devices:
//	  - name: mouse
//	    type: pointer
//	events:
//	  - {device: mouse, type: motion, time: 10, dx: 4, dy: -2}
//	  - {device: mouse, type: button, button: 272, state: pressed}
//	  - {device: mouse, type: frame}
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/native/headless"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownEvent is returned for an event type the player does not know.
	ErrUnknownEvent = errors.New("unknown event type")
	// ErrUnknownDevice is returned when an event names an undeclared device.
	ErrUnknownDevice = errors.New("unknown device")
	// ErrWrongDevice is returned when an event does not fit its device type.
	ErrWrongDevice = errors.New("event does not match device type")
)

// Script is a parsed event script.
type Script struct {
	Devices []DeviceSpec `yaml:"devices"`
	Tools   []ToolSpec   `yaml:"tools"`
	Events  []Event      `yaml:"events"`
}

// DeviceSpec declares a headless input device.
type DeviceSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // pointer, touch or tablet-tool
}

// ToolSpec declares a tablet tool used by tablet events.
type ToolSpec struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"` // pen, eraser, brush, pencil, airbrush, mouse, lens, totem
	Serial uint64 `yaml:"serial"`
}

// Event is one scripted notification. Only the fields relevant to Type are
// read.
type Event struct {
	Device string `yaml:"device"`
	Type   string `yaml:"type"`
	Time   uint32 `yaml:"time"`

	DX        float64 `yaml:"dx"`
	DY        float64 `yaml:"dy"`
	UnaccelDX float64 `yaml:"unaccel_dx"`
	UnaccelDY float64 `yaml:"unaccel_dy"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`

	Button      uint32  `yaml:"button"`
	State       string  `yaml:"state"`
	Source      string  `yaml:"source"`
	Orientation string  `yaml:"orientation"`
	Delta       float64 `yaml:"delta"`
	Discrete    int32   `yaml:"discrete"`

	Fingers   uint32  `yaml:"fingers"`
	Cancelled bool    `yaml:"cancelled"`
	Scale     float64 `yaml:"scale"`
	Rotation  float64 `yaml:"rotation"`

	ID int32 `yaml:"id"`

	Tool     string   `yaml:"tool"`
	Axes     []string `yaml:"axes"`
	Pressure float64  `yaml:"pressure"`
	Distance float64  `yaml:"distance"`
	TiltX    float64  `yaml:"tilt_x"`
	TiltY    float64  `yaml:"tilt_y"`
	Slider   float64  `yaml:"slider"`
	Wheel    float64  `yaml:"wheel"`
}

// Load parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	s := &Script{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Script) validate() error {
	devices := make(map[string]native.InputDeviceType, len(s.Devices))
	for i, d := range s.Devices {
		if d.Name == "" {
			return fmt.Errorf("device %d has no name", i)
		}
		if _, dup := devices[d.Name]; dup {
			return fmt.Errorf("duplicate device %q", d.Name)
		}
		t, err := parseDeviceType(d.Type)
		if err != nil {
			return fmt.Errorf("device %q: %w", d.Name, err)
		}
		devices[d.Name] = t
	}

	tools := make(map[string]bool, len(s.Tools))
	for i, t := range s.Tools {
		if t.Name == "" {
			return fmt.Errorf("tool %d has no name", i)
		}
		if _, err := parseToolType(t.Type); err != nil {
			return fmt.Errorf("tool %q: %w", t.Name, err)
		}
		tools[t.Name] = true
	}

	for i := range s.Events {
		ev := &s.Events[i]
		k, ok := kinds[ev.Type]
		if !ok {
			return fmt.Errorf("event %d: %w %q", i, ErrUnknownEvent, ev.Type)
		}
		dt, ok := devices[ev.Device]
		if !ok {
			return fmt.Errorf("event %d: %w %q", i, ErrUnknownDevice, ev.Device)
		}
		if dt != k.device {
			return fmt.Errorf("event %d: %w: %s on %s", i, ErrWrongDevice, ev.Type, dt)
		}
		if k.device == native.DeviceTabletTool && !tools[ev.Tool] {
			return fmt.Errorf("event %d: unknown tool %q", i, ev.Tool)
		}
		if err := k.check(ev); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Session holds the headless objects a script runs against.
type Session struct {
	// Devices in declaration order.
	Devices []*headless.InputDevice

	byName map[string]*headless.InputDevice
	tools  map[string]*headless.TabletTool
}

// NewSession creates the script's devices on backend and its tools on lib.
func NewSession(lib *headless.Library, backend *headless.Backend, s *Script) (*Session, error) {
	sess := &Session{
		byName: make(map[string]*headless.InputDevice, len(s.Devices)),
		tools:  make(map[string]*headless.TabletTool, len(s.Tools)),
	}
	for _, d := range s.Devices {
		t, err := parseDeviceType(d.Type)
		if err != nil {
			return nil, err
		}
		dev := backend.NewInputDevice(t, d.Name)
		sess.Devices = append(sess.Devices, dev)
		sess.byName[d.Name] = dev
	}
	for _, t := range s.Tools {
		tt, err := parseToolType(t.Type)
		if err != nil {
			return nil, err
		}
		sess.tools[t.Name] = lib.NewTabletTool(tt, t.Serial)
	}
	return sess, nil
}

// Device returns the device declared under name, or nil.
func (sess *Session) Device(name string) *headless.InputDevice {
	return sess.byName[name]
}

// Play emits every event in order.
func (sess *Session) Play(events []Event) error {
	for i := range events {
		if err := sess.Emit(&events[i]); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Emit delivers one event on its device.
func (sess *Session) Emit(ev *Event) error {
	k, ok := kinds[ev.Type]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownEvent, ev.Type)
	}
	dev := sess.byName[ev.Device]
	if dev == nil {
		return fmt.Errorf("%w %q", ErrUnknownDevice, ev.Device)
	}
	if dev.DeviceType() != k.device {
		return fmt.Errorf("%w: %s on %s", ErrWrongDevice, ev.Type, dev.DeviceType())
	}
	var tool native.TabletTool
	if k.device == native.DeviceTabletTool {
		t := sess.tools[ev.Tool]
		if t == nil {
			return fmt.Errorf("unknown tool %q", ev.Tool)
		}
		tool = t
	}
	k.emit(ev, dev, tool)
	return nil
}
