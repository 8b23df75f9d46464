package command

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/footwm/footwm/internal/desktop"
)

// Engine is the subset of desktop.Engine the command dispatcher drives.
type Engine interface {
	AddDesktop(name string, index int) bool
	DeleteDesktop(index int) bool
	RenameDesktop(index int, newName string) bool
	SelectDesktop(index int)
}

var _ Engine = (*desktop.Engine)(nil)

// Dispatch parses argv per spec.md §4.H's grammar and calls the matching
// Desktop Engine operation. Unknown commands and malformed arguments are
// logged and ignored -- WM state is left unchanged (spec.md §7 Command
// parse error policy), grounded directly on original_source/footwm/
// command.py's FootCommandWM.action.
func Dispatch(log *logrus.Logger, eng Engine, argv []string) {
	if len(argv) == 0 {
		return
	}
	switch argv[0] {
	case "desktop":
		dispatchDesktop(log, eng, argv[1:])
	case "window":
		// Reserved; currently no-op, matching command.py exactly.
	default:
		log.WithField("command", argv[0]).Debug("unknown FOOT_COMMANDV command, ignored")
	}
}

func dispatchDesktop(log *logrus.Logger, eng Engine, argv []string) {
	if len(argv) < 1 {
		log.Debug("desktop command: missing subcommand")
		return
	}
	switch argv[0] {
	case "insert":
		if len(argv) != 3 {
			log.WithField("argv", argv).Debug("desktop insert: expected name and index")
			return
		}
		index, err := strconv.Atoi(argv[2])
		if err != nil {
			log.WithField("index", argv[2]).Debug("desktop insert: bad index")
			return
		}
		eng.AddDesktop(argv[1], index)
	case "delete":
		if len(argv) != 2 {
			log.WithField("argv", argv).Debug("desktop delete: expected index")
			return
		}
		index, err := strconv.Atoi(argv[1])
		if err != nil {
			log.WithField("index", argv[1]).Debug("desktop delete: bad index")
			return
		}
		eng.DeleteDesktop(index)
	case "rename":
		if len(argv) != 3 {
			log.WithField("argv", argv).Debug("desktop rename: expected index and name")
			return
		}
		index, err := strconv.Atoi(argv[1])
		if err != nil {
			log.WithField("index", argv[1]).Debug("desktop rename: bad index")
			return
		}
		eng.RenameDesktop(index, argv[2])
	case "select":
		if len(argv) != 2 {
			log.WithField("argv", argv).Debug("desktop select: expected index")
			return
		}
		index, err := strconv.Atoi(argv[1])
		if err != nil {
			log.WithField("index", argv[1]).Debug("desktop select: bad index")
			return
		}
		eng.SelectDesktop(index)
	default:
		log.WithField("subcommand", argv[0]).Debug("unknown desktop subcommand, ignored")
	}
}
