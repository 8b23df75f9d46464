// Command footwm is the window manager entrypoint: it wires the Display
// Adapter, Root Model, Desktop Engine, Protocol Layer, Keyboard Map and
// Event Reconciler together and runs the event loop until a signal arrives
// (spec.md §5, grounded on original_source/footwm/footwm.py's Foot.__init__
// and driusan-dewm/main.go's main).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jezek/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/footwm/footwm/internal/common"
	"github.com/footwm/footwm/internal/config"
	"github.com/footwm/footwm/internal/desktop"
	"github.com/footwm/footwm/internal/display"
	"github.com/footwm/footwm/internal/keyboard"
	"github.com/footwm/footwm/internal/protocol"
	"github.com/footwm/footwm/internal/reconcile"
	"github.com/footwm/footwm/internal/window"
	"github.com/footwm/footwm/internal/wmroot"
)

func main() {
	displayName := flag.String("display", "", "X display to connect to, empty for $DISPLAY")
	flag.Parse()

	log := common.NewLogger()

	a, err := display.Open(*displayName, log)
	if err != nil {
		log.WithField("error", err).Fatal("could not open display")
	}
	if err := a.InstallAsWM(); err != nil {
		log.WithField("error", err).Fatal("could not install as window manager")
	}

	cfg := config.Load()

	root := wmroot.New(a.RootWin())
	proto := protocol.NewEwmhWM(a.X, log)
	if err := proto.Install(); err != nil {
		log.WithField("error", err).Fatal("could not install EWMH support")
	}
	defer proto.Teardown()

	ops := &wmOps{a: a, log: log, proto: proto}
	eng := desktop.New(root, a.RootGeometry, ops, sizerFor(cfg), log)

	for i, name := range cfg.Desktops {
		eng.AddDesktop(name, i)
	}

	kmap := keyboard.New(a, log)
	kmap.Configure(bindingsFrom(cfg, a))

	r := &reconcile.Reconciler{
		Adapter:  a,
		Root:     root,
		Engine:   eng,
		Protocol: proto,
		Keyboard: kmap,
		Log:      log,
	}

	importWindows(a, root, eng, log)
	eng.Redraw()

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		cancel()
	}()

	if err := r.Run(ctx); err != nil && err != context.Canceled {
		log.WithField("error", err).Error("event loop exited")
	}
}

// importWindows populates root with the windows already on the server at
// startup and hands the ones that pass managewindowp to the Desktop Engine,
// mirroring original_source/footwm/footwm.py's _importwindows/_managewindows.
func importWindows(a *display.Adapter, root *wmroot.Root, eng *desktop.Engine, log *logrus.Logger) {
	children, err := a.QueryTree(a.RootWin())
	if err != nil {
		log.WithField("error", err).Warn("import: QueryTree failed")
		return
	}
	for _, id := range children {
		w, hasWmState, err := protocol.ReadWindow(a, id)
		if err != nil {
			log.WithFields(logrus.Fields{"window": id, "error": err}).Debug("import: read failed")
			continue
		}
		root.Insert(w)
		if !desktop.ManageWindowP(w, hasWmState) {
			continue
		}
		a.SelectInput(w.Id, uint32(xproto.EventMaskEnterWindow|xproto.EventMaskFocusChange|xproto.EventMaskStructureNotify))
		eng.ManageWindow(w)
	}
}

func sizerFor(cfg config.Config) desktop.SizerFor {
	return func(w *window.Window) window.Sizer {
		if w.HasTransientFor {
			return window.Transient
		}
		name, ok := cfg.Sizers[w.ResClass()]
		if !ok {
			return window.HonourableMax
		}
		switch name {
		case "brutal-max":
			return window.BrutalMax
		default:
			return window.HonourableMax
		}
	}
}

func bindingsFrom(cfg config.Config, a *display.Adapter) []keyboard.Binding {
	ignore := keyboard.DefaultIgnoreMods(a)
	bindings := make([]keyboard.Binding, 0, len(cfg.Keybindings))
	for spec, action := range cfg.Keybindings {
		bindings = append(bindings, keyboard.Binding{Spec: spec, Action: action, IgnoreMods: ignore})
	}
	return bindings
}

// wmOps implements desktop.Ops over the Display Adapter and Protocol Layer,
// the one place the two are glued together (spec.md §4.E's Ops capability
// set, Design Note: composition over inheritance).
type wmOps struct {
	a     *display.Adapter
	log   *logrus.Logger
	proto *protocol.EwmhWM
}

func (o *wmOps) MoveResize(id window.Wid, g common.Geometry) { o.a.MoveResizeWindow(id, g) }
func (o *wmOps) Map(id window.Wid)                           { o.a.MapWindow(id) }
func (o *wmOps) Unmap(id window.Wid)                         { o.a.UnmapWindow(id) }
func (o *wmOps) Focus(w *window.Window)                      { protocol.Focus(o.a, o.log, w) }

func (o *wmOps) SetWmState(id window.Wid, state window.WmState) {
	o.proto.SetWmState(id, uint32(state))
}

func (o *wmOps) SetWmDesktop(id window.Wid, index uint32) { o.proto.SetWmDesktop(id, index) }

func (o *wmOps) PublishActiveWindow(id window.Wid)                { o.proto.PublishActiveWindow(id) }
func (o *wmOps) PublishClientList(ids []window.Wid)                { o.proto.PublishClientList(ids) }
func (o *wmOps) PublishClientListStacking(ids []window.Wid)        { o.proto.PublishClientListStacking(ids) }
func (o *wmOps) PublishDesktopNames(names []string)                { o.proto.PublishDesktopNames(names) }
func (o *wmOps) PublishNumberOfDesktops(n uint)                    { o.proto.PublishNumberOfDesktops(n) }
