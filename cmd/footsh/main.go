// Command footsh is the footwm CLI client (spec.md §6): it talks to a
// running WM exclusively through X properties and EWMH client messages,
// grounded on original_source/footwm/clientcmd.py's ClientCommand wrapper
// and command.py's FootCommandClient.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jezek/xgb/xproto"

	"github.com/footwm/footwm/internal/command"
	"github.com/footwm/footwm/internal/common"
	"github.com/footwm/footwm/internal/display"
	"github.com/footwm/footwm/internal/protocol"
)

func main() {
	displayName := flag.String("display", "", "X display to connect to, empty for $DISPLAY")
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}

	log := common.NewLogger()
	a, err := display.Open(*displayName, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "footsh:", err)
		os.Exit(1)
	}
	client := protocol.NewEwmhClient(a.X, log)

	var runErr error
	switch args[0] {
	case "desktops":
		runErr = desktops(a, client, args[1:])
	case "windows":
		runErr = windows(a, client, args[1:])
	default:
		usage()
		os.Exit(1)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "footsh:", runErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: footsh desktops {ls|add <name> [--index N]|delete <i>|rename <i> <name>|select <i>}")
	fmt.Fprintln(os.Stderr, "       footsh windows {ls|activate <i>|close <i>|move <i> --desktop <d>}")
}

func desktops(a *display.Adapter, client *protocol.EwmhClient, args []string) error {
	if len(args) < 1 {
		usage()
		return nil
	}
	switch args[0] {
	case "ls":
		for i, name := range client.DesktopNames() {
			fmt.Printf("%d\t%s\n", i, name)
		}
		return nil
	case "add":
		if len(args) < 2 {
			usage()
			return nil
		}
		fs := flag.NewFlagSet("desktops add", flag.ExitOnError)
		index := fs.Int("index", 0, "position to insert the new desktop at")
		fs.Parse(args[2:])
		if fs.NArg() != 0 {
			usage()
			return nil
		}
		return command.Write(a, []string{"desktop", "insert", args[1], strconv.Itoa(*index)})
	case "delete":
		if len(args) != 2 {
			usage()
			return nil
		}
		return command.Write(a, []string{"desktop", "delete", args[1]})
	case "rename":
		if len(args) != 3 {
			usage()
			return nil
		}
		return command.Write(a, []string{"desktop", "rename", args[1], args[2]})
	case "select":
		if len(args) != 2 {
			usage()
			return nil
		}
		index, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return err
		}
		client.RequestSelectDesktop(uint32(index))
		return nil
	default:
		usage()
		return nil
	}
}

func windows(a *display.Adapter, client *protocol.EwmhClient, args []string) error {
	if len(args) < 1 {
		usage()
		return nil
	}
	switch args[0] {
	case "ls":
		for i, w := range client.ClientListStacking() {
			fmt.Printf("%d\t0x%08x\n", i, w)
		}
		return nil
	case "activate":
		if len(args) != 2 {
			usage()
			return nil
		}
		w, err := windowAt(client, args[1])
		if err != nil {
			return err
		}
		client.RequestActivate(w)
		return nil
	case "close":
		if len(args) != 2 {
			usage()
			return nil
		}
		w, err := windowAt(client, args[1])
		if err != nil {
			return err
		}
		client.RequestClose(w)
		return nil
	case "move":
		if len(args) < 2 {
			usage()
			return nil
		}
		fs := flag.NewFlagSet("windows move", flag.ExitOnError)
		desktopIndex := fs.Uint("desktop", 0, "target desktop index")
		fs.Parse(args[2:])
		if fs.NArg() != 0 {
			usage()
			return nil
		}
		w, err := windowAt(client, args[1])
		if err != nil {
			return err
		}
		client.RequestWindowDesktop(w, uint32(*desktopIndex))
		return nil
	default:
		usage()
		return nil
	}
}

// windowAt resolves an index into the stacking-order client list, the same
// index scheme original_source/footwm/clientcmd.py's activatewindow/
// closewindow use against self.ewmh.clientliststacking.
func windowAt(client *protocol.EwmhClient, arg string) (xproto.Window, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, err
	}
	wins := client.ClientListStacking()
	if index < 0 || index >= len(wins) {
		return 0, fmt.Errorf("window index %d out of range (have %d)", index, len(wins))
	}
	return wins[index], nil
}
