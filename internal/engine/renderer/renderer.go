// Package renderer draws the warehouse scene with OpenGL: floor slabs,
// shelf boxes and group outlines, styled by the selector.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/shelfview/internal/engine/lighting"
	"github.com/Faultbox/shelfview/internal/engine/shader"
	"github.com/Faultbox/shelfview/internal/logger"
	"github.com/Faultbox/shelfview/internal/selector"
)

// Config holds renderer configuration.
type Config struct {
	Width          int
	Height         int
	FloorThickness float32
	Light          lighting.Sun
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	cubeVAO, cubeVBO uint32
	lineVAO, lineVBO uint32
	lineCap          int // line buffer capacity in floats
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;

void main() {
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec4 uColor;
uniform vec3 uLightDir;
uniform float uAmbient;
uniform float uUnlit;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	float light = mix(uAmbient + (1.0 - uAmbient) * diffuse, 1.0, uUnlit);
	FragColor = vec4(uColor.rgb * light, uColor.a);
}
`

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	prog, err := shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r := &Renderer{config: cfg, program: prog}
	r.createCube()
	r.createLineBuffer()
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	gl.DeleteVertexArrays(1, &r.cubeVAO)
	gl.DeleteBuffers(1, &r.cubeVBO)
	gl.DeleteVertexArrays(1, &r.lineVAO)
	gl.DeleteBuffers(1, &r.lineVBO)
	r.program.Delete()
}

// Resize handles a drawable size change.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Draw renders one frame of the selector's scene.
func (r *Renderer) Draw(sel *selector.Selector) {
	dl := BuildDrawList(sel, r.config.FloorThickness)

	gl.ClearColor(dl.Clear[0], dl.Clear[1], dl.Clear[2], dl.Clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(1)
	if r.config.Height > 0 {
		aspect = float32(r.config.Width) / float32(r.config.Height)
	}
	rig := sel.Rig()

	r.program.Use()
	r.program.SetMat4("uView", rig.ViewMatrix())
	r.program.SetMat4("uProj", rig.ProjectionMatrix(aspect))
	r.program.SetVec3("uLightDir", r.config.Light.Direction())
	r.program.SetFloat("uAmbient", r.config.Light.Ambient)

	r.program.SetFloat("uUnlit", 0)
	gl.BindVertexArray(r.cubeVAO)
	for _, b := range dl.Opaque {
		r.drawBox(b)
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	for _, b := range dl.Transparent {
		r.drawBox(b)
	}

	r.program.SetFloat("uUnlit", 1)
	r.program.SetMat4("uModel", mgl32.Ident4())
	gl.BindVertexArray(r.lineVAO)
	for _, l := range dl.Lines {
		r.drawLines(l)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

func (r *Renderer) drawBox(b Box) {
	model := mgl32.Translate3D(b.Center.X, b.Center.Y, b.Center.Z).
		Mul4(mgl32.Scale3D(b.Size.X, b.Size.Y, b.Size.Z))
	r.program.SetMat4("uModel", model)
	r.program.SetVec4("uColor", b.Color)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(cubeVertices)/6))
}

func (r *Renderer) drawLines(l Lines) {
	if len(l.Vertices) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(l.Vertices) > r.lineCap {
		r.lineCap = len(l.Vertices) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.lineCap*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(l.Vertices)*4, gl.Ptr(l.Vertices))
	r.program.SetVec4("uColor", l.Color)
	gl.DrawArrays(gl.LINES, 0, int32(len(l.Vertices)/3))
}

func (r *Renderer) createCube() {
	gl.GenVertexArrays(1, &r.cubeVAO)
	gl.BindVertexArray(r.cubeVAO)

	gl.GenBuffers(1, &r.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)

	// position
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	// normal
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	logger.Debug("cube created", zap.Uint32("vao", r.cubeVAO), zap.Uint32("vbo", r.cubeVBO))
}

func (r *Renderer) createLineBuffer() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	r.lineCap = 24 * 3 * 64
	gl.BufferData(gl.ARRAY_BUFFER, r.lineCap*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttrib3f(1, 0, 1, 0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}
