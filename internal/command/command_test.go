package command

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]string{
		{"desktop", "insert", "work", "0"},
		{"window"},
		{"desktop", "rename", "1", "éclair"},
	}
	for _, argv := range cases {
		got := Decode(Encode(argv))
		assert.Equal(t, argv, got)
	}
}

func TestDecodeEmpty(t *testing.T) {
	assert.Nil(t, Decode(nil))
	assert.Nil(t, Decode([]byte{}))
}

type fakeEngine struct {
	added    []string
	deleted  []int
	renamed  map[int]string
	selected []int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{renamed: map[int]string{}}
}

func (f *fakeEngine) AddDesktop(name string, index int) bool {
	f.added = append(f.added, name)
	return true
}
func (f *fakeEngine) DeleteDesktop(index int) bool {
	f.deleted = append(f.deleted, index)
	return true
}
func (f *fakeEngine) RenameDesktop(index int, newName string) bool {
	f.renamed[index] = newName
	return true
}
func (f *fakeEngine) SelectDesktop(index int) {
	f.selected = append(f.selected, index)
}

func TestDispatchDesktopInsert(t *testing.T) {
	eng := newFakeEngine()
	Dispatch(logrus.New(), eng, []string{"desktop", "insert", "work", "0"})
	assert.Equal(t, []string{"work"}, eng.added)
}

func TestDispatchDesktopSelect(t *testing.T) {
	eng := newFakeEngine()
	Dispatch(logrus.New(), eng, []string{"desktop", "select", "2"})
	assert.Equal(t, []int{2}, eng.selected)
}

func TestDispatchUnknownCommandIgnored(t *testing.T) {
	eng := newFakeEngine()
	Dispatch(logrus.New(), eng, []string{"bogus"})
	assert.Empty(t, eng.added)
	assert.Empty(t, eng.selected)
}

func TestDispatchWindowIsNoOp(t *testing.T) {
	eng := newFakeEngine()
	Dispatch(logrus.New(), eng, []string{"window", "anything"})
	assert.Empty(t, eng.added)
}

func TestDispatchMalformedIndexIgnored(t *testing.T) {
	eng := newFakeEngine()
	Dispatch(logrus.New(), eng, []string{"desktop", "select", "not-a-number"})
	assert.Empty(t, eng.selected)
}
