//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var backend *x11Clipboard

func initBackend() error {
	clip := &x11Clipboard{}
	if err := clip.initialize(); err != nil {
		return err
	}
	backend = clip
	return nil
}

func publish(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return backend.own(data)
}

// x11Clipboard owns the CLIPBOARD selection and serves image/png to
// requestors until another client takes ownership.
type x11Clipboard struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomSet
	mu     sync.RWMutex
	data   []byte
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
}

func (c *x11Clipboard) initialize() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		conn.Close()
		return err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return err
	}
	c.conn = conn
	c.window = window
	c.atoms = atoms
	go c.eventLoop()
	return nil
}

func internAtoms(conn *xgb.Conn) (atomSet, error) {
	var set atomSet
	for name, dst := range map[string]*xproto.Atom{
		"CLIPBOARD": &set.clipboard,
		"TARGETS":   &set.targets,
		"image/png": &set.png,
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atomSet{}, err
		}
		*dst = reply.Atom
	}
	return set, nil
}

// changePropertyHeader is the fixed size of a ChangeProperty request in
// bytes.
const changePropertyHeader = 24

// fitsRequest checks that n bytes of property data fit into one request
// under a server limit of maxWords 4-byte units. Transfers are not split
// into INCR chunks.
func fitsRequest(n int, maxWords uint16) error {
	limit := int(maxWords)*4 - changePropertyHeader
	if n > limit {
		return fmt.Errorf("clipboard image is %d bytes, the X server takes at most %d per request", n, limit)
	}
	return nil
}

func (c *x11Clipboard) own(data []byte) error {
	if err := fitsRequest(len(data), xproto.Setup(c.conn).MaximumRequestLength); err != nil {
		return err
	}
	c.mu.Lock()
	c.data = append([]byte(nil), data...)
	c.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(c.conn, c.window, c.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (c *x11Clipboard) eventLoop() {
	for {
		ev, err := c.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			c.serve(e)
		case xproto.SelectionClearEvent:
			c.mu.Lock()
			c.data = nil
			c.mu.Unlock()
		}
	}
}

func (c *x11Clipboard) serve(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	c.mu.RLock()
	data := c.data
	c.mu.RUnlock()

	switch {
	case e.Target == c.atoms.targets:
		targets := []xproto.Atom{c.atoms.targets}
		if len(data) > 0 {
			targets = append(targets, c.atoms.png)
		}
		payload := atomsToBytes(targets)
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(targets)), payload)
	case e.Target == c.atoms.png && len(data) > 0:
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, c.atoms.png, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(c.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

func atomsToBytes(atoms []xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, atom := range atoms {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
