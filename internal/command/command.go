// Package command implements the Command Parser (spec.md §4.H): the
// FOOT_COMMANDV custom atom, a UTF8_STRING argv-style property on the root
// window that external tools (footsh, a menu) use to drive desktop
// operations EWMH has no verbs for.
package command

import (
	"bytes"

	"github.com/jezek/xgb/xproto"

	"github.com/footwm/footwm/internal/display"
)

// Atom is the property name carrying the command argv.
const Atom = "FOOT_COMMANDV"

// Encode joins argv into the property's wire format: NUL-separated UTF-8
// strings, format 8. Decode(Encode(argv)) == argv for any non-empty argv
// whose strings contain no embedded NULs (spec.md §8 round-trip property),
// except the one-element argv {""}: it encodes to no bytes, and Decode
// returns nil for no bytes, as it does for an empty argv.
func Encode(argv []string) []byte {
	var buf bytes.Buffer
	for i, s := range argv {
		if i > 0 {
			buf.WriteByte(0)
		}
		buf.WriteString(s)
	}
	return buf.Bytes()
}

// Decode splits the property's wire format back into an argv.
func Decode(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(data, []byte{0})
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

// Write installs argv as the FOOT_COMMANDV property on the root window.
func Write(a *display.Adapter, argv []string) error {
	cmdAtom, err := a.Atom(Atom)
	if err != nil {
		return err
	}
	utf8Atom, err := a.Atom("UTF8_STRING")
	if err != nil {
		return err
	}
	data := Encode(argv)
	return xproto.ChangePropertyChecked(a.X.Conn(), xproto.PropModeReplace, a.RootWin(),
		cmdAtom, utf8Atom, 8, uint32(len(data)), data).Check()
}

// Read fetches and decodes the current FOOT_COMMANDV property.
func Read(a *display.Adapter) ([]string, error) {
	cmdAtom, err := a.Atom(Atom)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(a.X.Conn(), false, a.RootWin(), cmdAtom, xproto.GetPropertyTypeAny, 0, (1<<32)-1).Reply()
	if err != nil {
		return nil, err
	}
	return Decode(reply.Value), nil
}
