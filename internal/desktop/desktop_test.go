package desktop

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footwm/footwm/internal/common"
	"github.com/footwm/footwm/internal/window"
	"github.com/footwm/footwm/internal/wmroot"
)

type fakeOps struct {
	mapped, unmapped []window.Wid
	active           window.Wid
	clientList       []window.Wid
	clientStacking   []window.Wid
	desktopNames     []string
	numDesktops      uint
	wmStates         map[window.Wid]window.WmState
	wmDesktops       map[window.Wid]uint32
}

func newFakeOps() *fakeOps {
	return &fakeOps{wmStates: map[window.Wid]window.WmState{}, wmDesktops: map[window.Wid]uint32{}}
}

func (f *fakeOps) MoveResize(id window.Wid, g common.Geometry)   {}
func (f *fakeOps) Map(id window.Wid)                             { f.mapped = append(f.mapped, id) }
func (f *fakeOps) Unmap(id window.Wid)                           { f.unmapped = append(f.unmapped, id) }
func (f *fakeOps) Focus(w *window.Window)                        { f.active = w.Id }
func (f *fakeOps) SetWmState(id window.Wid, s window.WmState)    { f.wmStates[id] = s }
func (f *fakeOps) SetWmDesktop(id window.Wid, index uint32)      { f.wmDesktops[id] = index }
func (f *fakeOps) PublishActiveWindow(id window.Wid)             { f.active = id }
func (f *fakeOps) PublishClientList(ids []window.Wid)            { f.clientList = ids }
func (f *fakeOps) PublishClientListStacking(ids []window.Wid)    { f.clientStacking = ids }
func (f *fakeOps) PublishDesktopNames(names []string)            { f.desktopNames = names }
func (f *fakeOps) PublishNumberOfDesktops(n uint)                 { f.numDesktops = n }

func testEngine() (*Engine, *wmroot.Root, *fakeOps) {
	root := wmroot.New(1)
	ops := newFakeOps()
	geom := common.Geometry{X: 0, Y: 0, W: 1920, H: 1080}
	e := New(root, func() common.Geometry { return geom }, ops, nil, logrus.New())
	return e, root, ops
}

func TestManageWindowPutsOnTopAndShows(t *testing.T) {
	e, root, ops := testEngine()
	w1 := &window.Window{Id: 100, MapState: window.Viewable}
	root.Insert(w1)

	e.ManageWindow(w1)

	assert.Equal(t, []window.Wid{100}, e.current().Stack)
	assert.Contains(t, ops.mapped, window.Wid(100))
	assert.Equal(t, window.Wid(100), ops.active)
}

func TestMapRequestForSecondWindowRaisesAndHidesFirst(t *testing.T) {
	e, root, ops := testEngine()
	w1 := &window.Window{Id: 100, MapState: window.Viewable}
	w2 := &window.Window{Id: 200, MapState: window.Viewable}
	root.Insert(w1)
	root.Insert(w2)

	e.ManageWindow(w1)
	e.ManageWindow(w2)

	assert.Equal(t, []window.Wid{200, 100}, e.current().Stack)
	assert.Equal(t, []window.Wid{200, 100}, ops.clientStacking)
	assert.Contains(t, ops.unmapped, window.Wid(100))
}

func TestAddDesktopInsertZeroSelectsItAndHidesOld(t *testing.T) {
	e, root, ops := testEngine()
	w1 := &window.Window{Id: 100, MapState: window.Viewable}
	root.Insert(w1)
	e.ManageWindow(w1)

	ok := e.AddDesktop("work", 0)
	require.True(t, ok)

	assert.Equal(t, []string{"work", UnassignedName}, e.DesktopNames())
	assert.Empty(t, e.current().Stack)
	assert.Contains(t, ops.unmapped, window.Wid(100))
}

func TestSetWindowDesktopMovesAndUnmaps(t *testing.T) {
	e, root, ops := testEngine()
	w1 := &window.Window{Id: 100, MapState: window.Viewable}
	w2 := &window.Window{Id: 200, MapState: window.Viewable}
	root.Insert(w1)
	root.Insert(w2)
	e.ManageWindow(w1)
	e.ManageWindow(w2)
	e.AddDesktop("other", 1)

	e.SetWindowDesktop(200, 1)

	assert.Equal(t, []window.Wid{100}, e.current().Stack)
	assert.Contains(t, ops.unmapped, window.Wid(200))
	assert.Equal(t, uint32(1), ops.wmDesktops[200])
}

func TestRaiseWindowBringsTransientFamilyToTop(t *testing.T) {
	e, root, ops := testEngine()
	w1 := &window.Window{Id: 100, MapState: window.Viewable}
	t1 := &window.Window{Id: 101, MapState: window.Viewable, TransientFor: 100, HasTransientFor: true}
	root.Insert(w1)
	root.Insert(t1)

	e.ManageWindow(w1)
	e.ManageWindow(t1)

	assert.Equal(t, []window.Wid{101, 100}, e.current().Stack)
	assert.Equal(t, window.Wid(101), ops.active)
}

func TestUnmanageWindowNotFoundLogsAndDoesNotPanic(t *testing.T) {
	e, _, _ := testEngine()
	log, hook := logtest.NewNullLogger()
	e.Log = log
	e.UnmanageWindow(999)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestManageWindowIgnoresOverrideRedirect(t *testing.T) {
	e, root, ops := testEngine()
	w := &window.Window{Id: 5, OverrideRedirect: true}
	root.Insert(w)
	e.ManageWindow(w)
	assert.Empty(t, e.current().Stack)
	assert.Empty(t, ops.mapped)
}
