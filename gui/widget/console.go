package widget

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"recoveryui/gui/geom"
	"recoveryui/gui/gfx"
	"recoveryui/gui/theme"
	"recoveryui/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// Console is a scrolling text log drawn with a bitmap font.
//
//	<object type="console">
//	  <placement x="0" y="400" w="480" h="300"/>
//	  <color background="#000000"/>
//	</object>
type Console struct {
	Object

	mu         sync.Mutex
	disp       *consoleDisplay
	term       *tinyterm.Terminal
	background gfx.Color
	dirty      bool
	rendered   bool
}

func NewConsole(n theme.Node, env *Env) *Console {
	c := &Console{Object: newObject(n, env), background: gfx.RGB(0, 0, 0)}
	if n == nil {
		return c
	}
	if bg, ok := env.LoadAttrColor(n.Child("color"), "background"); ok {
		c.background = bg
	}
	r, _ := geom.LoadPlacement(n.Child("placement"), env.Scale)
	c.Object.SetRenderPos(r.X, r.Y, r.W, r.H)

	buf, err := gfx.NewCanvas(r.W, r.H)
	if err != nil {
		env.Log.Error().Err(err).Msg("console has no usable area")
		return c
	}
	buf.Clear(c.background)
	c.disp = &consoleDisplay{buf: buf.Image()}
	c.term = tinyterm.NewTerminal(c.disp)
	c.term.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: 10,
		FontOffset: 6,
	})
	return c
}

// Write appends text to the console. It may be called from any
// goroutine; the text shows up on the next Update.
func (c *Console) Write(p []byte) (int, error) {
	if c.term == nil {
		return len(p), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := c.term.Write(p)
	c.dirty = true
	return n, err
}

func (c *Console) Render() error {
	if !c.IsVisible() {
		c.rendered = false
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.RenderPos()
	c.env.Canvas.FillRect(r.X, r.Y, r.W, r.H, c.background)
	if c.disp != nil {
		c.disp.blit(c.env.Canvas, r.X, r.Y)
	}
	c.dirty = false
	c.rendered = true
	return nil
}

// Update redraws the console in place when text was written.
func (c *Console) Update() (RenderResult, error) {
	if !c.IsVisible() {
		if c.rendered {
			return FullRepaintNeeded, nil
		}
		return NoChange, nil
	}
	if !c.rendered {
		return FullRepaintNeeded, nil
	}
	c.mu.Lock()
	dirty := c.dirty
	c.mu.Unlock()
	if !dirty {
		return NoChange, nil
	}
	if err := c.Render(); err != nil {
		return NoChange, err
	}
	return PartialRepaint, nil
}

func (c *Console) NotifyTouch(hal.TouchState, int, int) int {
	if !c.IsVisible() {
		return -1
	}
	return 0
}

// consoleDisplay is a drivers.Displayer over an RGBA buffer. Scrolling
// rotates which buffer row is shown at the top.
type consoleDisplay struct {
	buf    *image.RGBA
	scroll int16
}

func (d *consoleDisplay) Size() (x, y int16) {
	b := d.buf.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *consoleDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.buf.SetRGBA(int(x), int(y), c)
}

func (d *consoleDisplay) Display() error { return nil }

func (d *consoleDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height))
	draw.Draw(d.buf, r, image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

func (d *consoleDisplay) SetScroll(line int16) { d.scroll = line }

func (d *consoleDisplay) SetRotation(drivers.Rotation) error { return nil }

func (d *consoleDisplay) blit(dst *gfx.Canvas, x, y int) {
	src, err := gfx.CanvasFromImage(d.buf)
	if err != nil {
		return
	}
	w, h := src.Width(), src.Height()
	s := int(d.scroll) % h
	if s < 0 {
		s += h
	}
	dst.Draw(src, x, y, 0, s, w, h-s, 0xFF)
	if s > 0 {
		dst.Draw(src, x, y+h-s, 0, 0, w, s, 0xFF)
	}
}
