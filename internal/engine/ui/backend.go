// Package ui wraps the ImGui SDL backend the viewer control panel runs on.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// latinGlyphRanges covers Basic Latin and Latin-1. Pairs of [start, end]
// terminated by 0.
var latinGlyphRanges = []imgui.Wchar{
	0x0020, 0x00FF,
	0,
}

// fontPaths are tried in order when no font is configured.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
}

// Config configures the backend window.
type Config struct {
	Title  string
	Width  int
	Height int
	// Font is a TTF file; empty falls back to the first system font found
	// and then to the ImGui default.
	Font string
}

// Backend owns the ImGui context, its SDL window and the GL context.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger
}

// NewBackend creates the window and initializes OpenGL. It must be called
// from the main goroutine.
func NewBackend(cfg Config, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Backend{log: log}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Fonts must be added before the first frame builds the atlas.
	b.backend.SetAfterCreateContextHook(func() {
		b.loadFont(cfg.Font)
	})

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	log.Info("imgui backend ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height))
	return b, nil
}

func (b *Backend) loadFont(path string) {
	if path == "" {
		for _, p := range fontPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		b.log.Warn("panel font not found, using default", zap.String("path", path))
		return
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, 16.0, fontCfg, &latinGlyphRanges[0])
	b.log.Debug("panel font loaded", zap.String("path", path))
}

// Run calls frame once per frame until the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Close asks the loop to stop after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// Viewport returns the work area of the main viewport.
func Viewport() (pos, size imgui.Vec2) {
	vp := imgui.MainViewport()
	return vp.WorkPos(), vp.WorkSize()
}

// Image draws a GL texture rendered bottom-up, flipping V.
func Image(texture uint32, size imgui.Vec2) {
	ref := imgui.NewTextureRefTextureID(imgui.TextureID(texture))
	imgui.ImageV(*ref, size, imgui.NewVec2(0, 1), imgui.NewVec2(1, 0))
}

// IsKeyPressed reports whether key went down this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown reports whether key is held.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}
