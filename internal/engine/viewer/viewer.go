// Package viewer shows triangulated hex map chunks in an OpenGL window,
// either bare in an SDL window or inside an ImGui control panel.
//
// Plain window controls: drag to orbit, wheel to zoom, WASD to pan, 1-7 to
// toggle layers, F to fit the camera, F12 for a screenshot, R to reload
// the map and Escape to quit.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/engine/input"
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/engine/preview"
	"github.com/Faultbox/hexmesh/internal/engine/window"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
)

// ReloadFunc rebuilds the map shown by the viewer from seed.
type ReloadFunc func(seed uint32) (*hexgrid.Grid, []*mesh.Set, error)

// Options configure a Viewer or a Panel.
type Options struct {
	Window     window.Config
	Palette    preview.Palette
	Light      preview.Light
	Background color.NRGBA
	FOV        float32

	// Font is the panel's TTF file. Empty tries system fonts.
	Font string

	// ScreenshotDir receives screenshots. Empty means the working
	// directory.
	ScreenshotDir string

	// Reload rebuilds the map. Nil disables reloading.
	Reload ReloadFunc

	// Seed is the seed of the map passed to Load. Seeded reports whether
	// a new seed produces a new map; file maps only reload.
	Seed   uint32
	Seeded bool
}

// layerKeys toggle the layers in Kind order.
var layerKeys = [mesh.KindCount]sdl.Scancode{
	sdl.SCANCODE_1, sdl.SCANCODE_2, sdl.SCANCODE_3, sdl.SCANCODE_4,
	sdl.SCANCODE_5, sdl.SCANCODE_6, sdl.SCANCODE_7,
}

// Viewer shows the scene in a plain SDL window.
type Viewer struct {
	opts  Options
	log   *zap.Logger
	win   *window.Window
	input *input.Input
	scene *Scene
	seed  uint32

	width, height int
}

// New opens the window and prepares the GL state. It must be called from
// the main goroutine.
func New(opts Options, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	win, err := window.New(opts.Window, log)
	if err != nil {
		return nil, err
	}
	if err := gl.Init(); err != nil {
		win.Close()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	scene, err := NewScene(opts, log)
	if err != nil {
		win.Close()
		return nil, err
	}
	gl.Enable(gl.MULTISAMPLE)

	v := &Viewer{
		opts:  opts,
		log:   log,
		win:   win,
		input: input.New(),
		scene: scene,
		seed:  opts.Seed,
	}
	v.width, v.height = win.DrawableSize()
	return v, nil
}

// Load replaces the shown map and fits the camera to it.
func (v *Viewer) Load(g *hexgrid.Grid, sets []*mesh.Set) {
	v.scene.Load(g, sets)
}

// Run shows frames until the window closes or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	frames := 0
	last := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if v.input.Update() {
			return nil
		}
		v.handleEvents()
		v.handleMovement()
		v.scene.Render(v.width, v.height)
		v.win.SwapBuffers()

		frames++
		if elapsed := time.Since(last); elapsed >= time.Second {
			v.win.SetTitle(fmt.Sprintf("%s - %.0f fps", v.opts.Window.Title, float64(frames)/elapsed.Seconds()))
			frames = 0
			last = time.Now()
		}
	}
}

func (v *Viewer) handleEvents() {
	cam := v.scene.Camera()
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.width, v.height = v.win.DrawableSize()
		case input.EventMouseDrag:
			cam.HandleDrag(e.DX, e.DY)
		case input.EventMouseWheel:
			cam.HandleZoom(e.DY)
		case input.EventKeyDown:
			v.handleKey(e.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	for k, sc := range layerKeys {
		if key == sc {
			kind := mesh.Kind(k)
			v.scene.Visible = v.scene.Visible.With(kind, !v.scene.Visible.Has(kind))
			v.log.Debug("layer toggled", zap.Stringer("layer", kind), zap.Bool("visible", v.scene.Visible.Has(kind)))
			return
		}
	}
	switch key {
	case sdl.SCANCODE_F:
		v.scene.FitCamera()
	case sdl.SCANCODE_F12:
		if path, err := v.Screenshot(); err != nil {
			v.log.Error("screenshot failed", zap.Error(err))
		} else {
			v.log.Info("screenshot saved", zap.String("path", path))
		}
	case sdl.SCANCODE_R:
		seed := v.seed
		if v.opts.Seeded {
			seed++
		}
		if err := v.reload(seed); err != nil {
			v.log.Error("reload failed", zap.Error(err))
		}
	}
}

func (v *Viewer) handleMovement() {
	var forward, right float32
	if input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if forward != 0 || right != 0 {
		v.scene.Camera().HandleMovement(forward, right)
	}
}

func (v *Viewer) reload(seed uint32) error {
	if v.opts.Reload == nil {
		return nil
	}
	g, sets, err := v.opts.Reload(seed)
	if err != nil {
		return err
	}
	v.seed = seed
	v.scene.Load(g, sets)
	return nil
}

// Screenshot renders a frame into the back buffer and saves it as a
// timestamped PNG.
func (v *Viewer) Screenshot() (string, error) {
	w, h := v.width, v.height
	if w <= 0 || h <= 0 {
		return "", fmt.Errorf("screenshot: empty framebuffer %dx%d", w, h)
	}
	v.scene.Render(w, h)

	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return saveScreenshot(v.opts.ScreenshotDir, pixels, w, h)
}

// Close frees GPU resources and the window.
func (v *Viewer) Close() {
	v.scene.Delete()
	v.win.Close()
}
