package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/engine/framebuffer"
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/engine/ui"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
)

const (
	controlsWidth = 300
	statusTimeout = 5 * time.Second
)

// Panel shows the scene as an image next to an ImGui controls window with
// per-layer statistics, layer toggles and map reloading.
type Panel struct {
	opts    Options
	log     *zap.Logger
	backend *ui.Backend
	scene   *Scene
	fb      *framebuffer.Framebuffer
	seed    uint32

	lastMouse imgui.Vec2

	frames int
	fps    float64
	last   time.Time

	status     string
	statusErr  bool
	statusTime time.Time
}

// NewPanel opens the ImGui window and prepares the scene. It must be
// called from the main goroutine.
func NewPanel(opts Options, log *zap.Logger) (*Panel, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b, err := ui.NewBackend(ui.Config{
		Title:  opts.Window.Title,
		Width:  opts.Window.Width,
		Height: opts.Window.Height,
		Font:   opts.Font,
	}, log.Named("ui"))
	if err != nil {
		return nil, err
	}
	scene, err := NewScene(opts, log)
	if err != nil {
		return nil, err
	}
	fb, err := framebuffer.New(int32(opts.Window.Width-controlsWidth), int32(opts.Window.Height))
	if err != nil {
		scene.Delete()
		return nil, err
	}
	return &Panel{
		opts:    opts,
		log:     log,
		backend: b,
		scene:   scene,
		fb:      fb,
		seed:    opts.Seed,
		last:    time.Now(),
	}, nil
}

// Load replaces the shown map and fits the camera to it.
func (p *Panel) Load(g *hexgrid.Grid, sets []*mesh.Set) {
	p.scene.Load(g, sets)
}

// Run shows frames until the window closes or ctx is done.
func (p *Panel) Run(ctx context.Context) error {
	p.backend.Run(func() {
		if ctx.Err() != nil {
			p.backend.Close()
			return
		}
		p.frame()
	})
	return ctx.Err()
}

func (p *Panel) frame() {
	p.frames++
	if elapsed := time.Since(p.last); elapsed >= time.Second {
		p.fps = float64(p.frames) / elapsed.Seconds()
		p.frames = 0
		p.last = time.Now()
	}

	pos, size := ui.Viewport()
	sceneW := max(size.X-controlsWidth, 1)

	p.renderScene(int32(sceneW), int32(size.Y))
	p.drawScene(pos, imgui.NewVec2(sceneW, size.Y))
	p.drawControls(imgui.NewVec2(pos.X+sceneW, pos.Y), imgui.NewVec2(controlsWidth, size.Y))
	p.handleKeys()
}

func (p *Panel) renderScene(width, height int32) {
	p.fb.Resize(width, height)
	restore := p.fb.BindWithViewport()
	defer restore()
	w, h := p.fb.Size()
	p.scene.Render(int(w), int(h))
}

func (p *Panel) drawScene(pos, size imgui.Vec2) {
	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoCollapse

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		ui.Image(p.fb.ColorTexture(), size)

		if imgui.IsItemHovered() {
			cam := p.scene.Camera()
			mouse := imgui.MousePos()
			if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
				cam.HandleDrag(mouse.X-p.lastMouse.X, mouse.Y-p.lastMouse.Y)
			}
			p.lastMouse = mouse

			if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
				cam.HandleZoom(wheel)
			}
			p.handleMovement()
		}
	}
	imgui.End()
	imgui.PopStyleVar()
}

func (p *Panel) handleMovement() {
	var forward, right float32
	if ui.IsKeyDown(imgui.KeyW) {
		forward++
	}
	if ui.IsKeyDown(imgui.KeyS) {
		forward--
	}
	if ui.IsKeyDown(imgui.KeyD) {
		right++
	}
	if ui.IsKeyDown(imgui.KeyA) {
		right--
	}
	if forward != 0 || right != 0 {
		p.scene.Camera().HandleMovement(forward, right)
	}
}

func (p *Panel) handleKeys() {
	if ui.IsKeyPressed(imgui.KeyF12) {
		p.screenshot()
	}
	if ui.IsKeyPressed(imgui.KeyF) {
		p.scene.FitCamera()
	}
	if ui.IsKeyPressed(imgui.KeyR) && p.opts.Reload != nil {
		seed := p.seed
		if p.opts.Seeded {
			seed++
		}
		p.reload(seed)
	}
}

func (p *Panel) drawControls(pos, size imgui.Vec2) {
	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)
	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove |
		imgui.WindowFlagsNoCollapse | imgui.WindowFlagsNoSavedSettings

	if imgui.BeginV("Controls", nil, flags) {
		imgui.Text(fmt.Sprintf("FPS: %.0f", p.fps))
		imgui.Separator()

		p.drawLayers()
		p.drawMap()
		p.drawView()

		if p.status != "" && time.Since(p.statusTime) < statusTimeout {
			imgui.Separator()
			if p.statusErr {
				imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), p.status)
			} else {
				imgui.TextDisabled(p.status)
			}
		}
	}
	imgui.End()
}

func (p *Panel) drawLayers() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Layers", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	vertices, triangles := p.scene.Stats()
	totalV, totalT := 0, 0
	for k := mesh.Kind(0); k < mesh.KindCount; k++ {
		on := p.scene.Visible.Has(k)
		if imgui.Checkbox(fmt.Sprintf("%s###layer%d", k, k), &on) {
			p.scene.Visible = p.scene.Visible.With(k, on)
		}
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("%d tris", triangles[k]))
		totalV += vertices[k]
		totalT += triangles[k]
	}
	imgui.Text(fmt.Sprintf("Chunks: %d", p.scene.Chunks()))
	imgui.Text(fmt.Sprintf("Vertices: %d", totalV))
	imgui.Text(fmt.Sprintf("Triangles: %d", totalT))
	if imgui.Button("Show all") {
		p.scene.Visible = mesh.AllKinds
	}
}

func (p *Panel) drawMap() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Map", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	if p.opts.Reload == nil {
		imgui.TextDisabled("Reloading unavailable")
		return
	}
	if !p.opts.Seeded {
		if imgui.Button("Reload map file") {
			p.reload(p.seed)
		}
		return
	}
	imgui.Text(fmt.Sprintf("Seed: %d", p.seed))
	if imgui.Button("Previous") {
		p.reload(p.seed - 1)
	}
	imgui.SameLine()
	if imgui.Button("Next") {
		p.reload(p.seed + 1)
	}
	imgui.SameLine()
	if imgui.Button("Regenerate") {
		p.reload(p.seed)
	}
}

func (p *Panel) drawView() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("View", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	if imgui.Button("Fit camera") {
		p.scene.FitCamera()
	}
	imgui.SameLine()
	if imgui.Button("Screenshot") {
		p.screenshot()
	}
	imgui.TextDisabled("Drag to orbit, scroll to zoom, WASD to pan")
}

func (p *Panel) reload(seed uint32) {
	start := time.Now()
	g, sets, err := p.opts.Reload(seed)
	if err != nil {
		p.log.Error("reload failed", zap.Uint32("seed", seed), zap.Error(err))
		p.setStatus(true, "Reload failed: %v", err)
		return
	}
	p.seed = seed
	p.scene.Load(g, sets)
	p.setStatus(false, "Loaded in %s", time.Since(start).Round(time.Millisecond))
}

func (p *Panel) screenshot() {
	w, h := p.fb.Size()
	path, err := saveScreenshot(p.opts.ScreenshotDir, p.fb.ReadPixels(), int(w), int(h))
	if err != nil {
		p.log.Error("screenshot failed", zap.Error(err))
		p.setStatus(true, "Screenshot failed: %v", err)
		return
	}
	p.log.Info("screenshot saved", zap.String("path", path))
	p.setStatus(false, "Saved %s", path)
}

func (p *Panel) setStatus(isErr bool, format string, args ...any) {
	p.status = fmt.Sprintf(format, args...)
	p.statusErr = isErr
	p.statusTime = time.Now()
}

// Close frees GPU resources.
func (p *Panel) Close() {
	p.fb.Destroy()
	p.scene.Delete()
}
