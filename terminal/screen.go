// Package terminal plays the game in a text console: a Screen that draws
// the panel as ANSI colored "[]" blocks and Keys that turn key presses into
// touches.
package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[?25h\r\n"
	resetPos   = "\033[H" // Reset cursor position to 0,0
)

type cell struct {
	r     rune
	c     color.RGBA
	block bool
}

// Screen emulates a pixel panel on a character grid. Each character stands
// for scaleX by scaleY panel pixels, sampled at its center.
type Screen struct {
	writer         io.Writer
	cols, rows     int
	scaleX, scaleY int
	cells          []cell
}

// NewScreen returns a panel of cols*scaleX by rows*scaleY pixels.
func NewScreen(w io.Writer, cols, rows, scaleX, scaleY int) *Screen {
	s := &Screen{
		writer: w,
		cols:   cols,
		rows:   rows,
		scaleX: scaleX,
		scaleY: scaleY,
		cells:  make([]cell, cols*rows),
	}
	s.clear()
	return s
}

func (s *Screen) clear() {
	for i := range s.cells {
		s.cells[i] = cell{r: ' '}
	}
}

// Start checks that the console fits the screen, then hides the cursor and
// clears it. The returned func shows the cursor again.
func (s *Screen) Start(fd int) (func(), error) {
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return nil, fmt.Errorf("unable to read the terminal size: %w", err)
	}
	if w < s.cols || h < s.rows {
		return nil, fmt.Errorf("terminal is %dx%d, the game needs %dx%d", w, h, s.cols, s.rows)
	}
	fmt.Fprint(s.writer, hideCursor)
	return func() { fmt.Fprint(s.writer, showCursor) }, nil
}

func (s *Screen) Size() (x, y int16) {
	return int16(s.cols * s.scaleX), int16(s.rows * s.scaleY)
}

func (s *Screen) SetPixel(x, y int16, c color.RGBA) {
	col, row := int(x)/s.scaleX, int(y)/s.scaleY
	if x < 0 || y < 0 || col >= s.cols || row >= s.rows {
		return
	}
	s.cells[row*s.cols+col] = s.block(col, c)
}

func (s *Screen) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid rectangle %dx%d", width, height)
	}
	for row := range s.rows {
		cy := row*s.scaleY + s.scaleY/2
		if cy < int(y) || cy >= int(y)+int(height) {
			continue
		}
		for col := range s.cols {
			cx := col*s.scaleX + s.scaleX/2
			if cx < int(x) || cx >= int(x)+int(width) {
				continue
			}
			s.cells[row*s.cols+col] = s.block(col, c)
		}
	}
	return nil
}

// block draws the left and right halves of a "[]" pair on even and odd
// columns, so two columns make one square.
func (s *Screen) block(col int, c color.RGBA) cell {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return cell{r: ' '}
	}
	r := '['
	if col%2 == 1 {
		r = ']'
	}
	return cell{r: r, c: c, block: true}
}

// WriteText prints str on the row holding the baseline y.
func (s *Screen) WriteText(x, y int16, str string, c color.RGBA) {
	col, row := int(x)/s.scaleX, int(y)/s.scaleY
	if row < 0 || row >= s.rows {
		return
	}
	for _, r := range str {
		if col >= 0 && col < s.cols {
			s.cells[row*s.cols+col] = cell{r: r, c: c}
		}
		col++
	}
}

func (s *Screen) TextWidth(str string) int {
	return len([]rune(str)) * s.scaleX
}

func (s *Screen) Display() error {
	var b bytes.Buffer
	b.WriteString(resetPos)
	for row := range s.rows {
		if row > 0 {
			// the console is raw, so new lines need a carriage return.
			b.WriteString("\r\n")
		}
		for _, c := range s.cells[row*s.cols : (row+1)*s.cols] {
			switch {
			case c.block:
				fmt.Fprintf(&b, "\x1b[7m\x1b[38;2;%d;%d;%dm%c\x1b[0m", c.c.R, c.c.G, c.c.B, c.r)
			case c.r != ' ':
				fmt.Fprintf(&b, "\x1b[1m\x1b[38;2;%d;%d;%dm%c\x1b[0m", c.c.R, c.c.G, c.c.B, c.r)
			default:
				b.WriteByte(' ')
			}
		}
	}
	_, err := s.writer.Write(b.Bytes())
	return err
}
