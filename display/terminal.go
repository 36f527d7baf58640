// Package display shows img2ascii frames live in a terminal.
package display

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/wbrown/img2ascii"
)

// Terminal draws frames onto a full-screen tcell screen, each glyph in its
// block's color. Frames larger than the screen are clipped at the right
// and bottom.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	bg     tcell.Color
	closed bool
}

// NewTerminal takes over the controlling terminal. Close must be called to
// restore it.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen)
}

func newTerminal(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()
	return &Terminal{screen: screen, bg: tcell.ColorDefault}, nil
}

// SetBackground sets the background color behind every glyph.
func (t *Terminal) SetBackground(c img2ascii.RGB) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bg = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (cols, rows int) {
	return t.screen.Size()
}

// Show replaces the screen contents with frame.
func (t *Terminal) Show(frame *img2ascii.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	base := tcell.StyleDefault.Background(t.bg)
	t.screen.Fill(' ', base)
	w, h := t.screen.Size()
	for row := 0; row < min(frame.Rows(), h); row++ {
		cells := frame.Row(row)
		for col := 0; col < min(len(cells), w); col++ {
			c := cells[col]
			fg := tcell.NewRGBColor(int32(c.Color.R), int32(c.Color.G), int32(c.Color.B))
			t.screen.SetContent(col, row, c.Glyph, nil, base.Foreground(fg))
		}
	}
	t.screen.Show()
}

// Watch polls input in the background and calls cancel when Escape,
// Ctrl-C or q is pressed. Resizes redraw the screen. Watch returns
// immediately; polling stops when the terminal is closed.
func (t *Terminal) Watch(cancel context.CancelFunc) {
	go func() {
		for {
			ev := t.screen.PollEvent()
			switch ev := ev.(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					cancel()
				}
			case *tcell.EventResize:
				t.mu.Lock()
				if !t.closed {
					t.screen.Sync()
				}
				t.mu.Unlock()
			}
		}
	}()
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}
