package viewer

import (
	"fmt"
	"image/color"
	"path/filepath"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hexmesh/internal/engine/camera"
	"github.com/Faultbox/hexmesh/internal/engine/mesh"
	"github.com/Faultbox/hexmesh/internal/engine/preview"
	"github.com/Faultbox/hexmesh/internal/engine/shader"
	"github.com/Faultbox/hexmesh/internal/engine/vertex"
	"github.com/Faultbox/hexmesh/internal/engine/viewer/shaders"
	"github.com/Faultbox/hexmesh/internal/hexgrid"
)

// roadBias lifts roads above the terrain they lie on.
const roadBias = 0.02

// gpuMesh is one uploaded layer of one chunk.
type gpuMesh struct {
	kind        mesh.Kind
	vao         uint32
	vbo         uint32
	ebo         uint32
	count       int32
	translucent bool
}

// Scene holds the uploaded map and draws it into the bound framebuffer.
// Both the plain window and the panel render through it.
type Scene struct {
	palette    preview.Palette
	light      preview.Light
	background color.NRGBA

	prog   *shader.Program
	cam    *camera.OrbitCamera
	meshes []gpuMesh
	bounds mesh.Bounds
	log    *zap.Logger

	// Visible selects the layers Render draws.
	Visible mesh.KindSet

	chunks    int
	vertices  [mesh.KindCount]int
	triangles [mesh.KindCount]int
}

// NewScene compiles the hex shader. OpenGL must be initialized.
func NewScene(opts Options, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.Palette) == 0 {
		opts.Palette = preview.DefaultPalette
	}
	prog, err := shader.New(shaders.HexVertexShader, shaders.HexFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("hex shader: %w", err)
	}
	cam := camera.NewOrbitCamera()
	if opts.FOV > 0 {
		cam.FOV = opts.FOV
	}
	return &Scene{
		palette:    opts.Palette,
		light:      opts.Light,
		background: opts.Background,
		prog:       prog,
		cam:        cam,
		bounds:     mesh.EmptyBounds(),
		log:        log,
		Visible:    mesh.AllKinds,
	}, nil
}

// Camera returns the orbit camera.
func (s *Scene) Camera() *camera.OrbitCamera {
	return s.cam
}

// Stats returns the per-layer vertex and triangle counts of the map.
func (s *Scene) Stats() (vertices, triangles [mesh.KindCount]int) {
	return s.vertices, s.triangles
}

// Chunks returns the number of chunks loaded.
func (s *Scene) Chunks() int {
	return s.chunks
}

// Load replaces the shown map and fits the camera to it.
func (s *Scene) Load(g *hexgrid.Grid, sets []*mesh.Set) {
	s.free()

	for _, k := range preview.DrawOrder {
		for _, set := range sets {
			l := set.Layer(k)
			if l.TriangleCount() == 0 {
				continue
			}
			s.meshes = append(s.meshes, upload(k, vertex.Build(g, l, s.palette), l.Triangles))
		}
	}
	s.bounds = mesh.EmptyBounds()
	for _, set := range sets {
		s.bounds = s.bounds.Union(set.Bounds())
	}
	s.FitCamera()
	s.chunks = len(sets)
	s.vertices, s.triangles = mesh.SumStats(sets)

	total := 0
	for _, n := range s.triangles {
		total += n
	}
	s.log.Info("map uploaded",
		zap.Int("chunks", len(sets)),
		zap.Int("meshes", len(s.meshes)),
		zap.Int("triangles", total))
}

// FitCamera frames the whole map.
func (s *Scene) FitCamera() {
	s.cam.FitToBounds(s.bounds)
}

func upload(k mesh.Kind, vertices []vertex.Vertex, indices []uint32) gpuMesh {
	m := gpuMesh{kind: k, count: int32(len(indices)), translucent: vertex.Translucent(k)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertex.Size, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertex.Size, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertex.Size, 3*4)
	gl.EnableVertexAttribArray(1)

	// Color (location 2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, vertex.Size, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

func (s *Scene) free() {
	for _, m := range s.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	s.meshes = s.meshes[:0]
}

// Render draws the visible layers into the bound framebuffer. It sets the
// whole GL state it depends on since the panel changes it between frames.
func (s *Scene) Render(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	bg := s.background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.SCISSOR_TEST)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	s.prog.Use()
	s.prog.SetMat4("uViewProj", s.cam.ViewProjection(float32(width)/float32(max(height, 1))))
	s.prog.SetVec3("uLightDir", s.light.Dir)
	s.prog.SetFloat("uAmbient", s.light.Ambient)
	s.prog.SetFloat("uDirect", s.light.Direct)

	blending := false
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, m := range s.meshes {
		if !s.Visible.Has(m.kind) {
			continue
		}
		if m.translucent != blending {
			blending = m.translucent
			if blending {
				gl.Enable(gl.BLEND)
				gl.DepthMask(false)
			} else {
				gl.Disable(gl.BLEND)
				gl.DepthMask(true)
			}
		}
		bias := float32(0)
		if m.kind == mesh.Roads {
			bias = roadBias
		}
		s.prog.SetFloat("uDepthBias", bias)

		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
}

// Delete frees the meshes and the shader.
func (s *Scene) Delete() {
	s.free()
	s.prog.Delete()
}

// saveScreenshot writes bottom-up RGBA pixels as a timestamped PNG in dir.
func saveScreenshot(dir string, pixels []byte, w, h int) (string, error) {
	if w <= 0 || h <= 0 {
		return "", fmt.Errorf("screenshot: empty framebuffer %dx%d", w, h)
	}
	img, err := preview.FromGLPixels(pixels, w, h)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("hexmesh_%s.png", time.Now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(dir, name)
	if err := preview.Save(path, img, preview.FormatPNG); err != nil {
		return "", err
	}
	return path, nil
}
