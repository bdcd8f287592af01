// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// HexVertexShader transforms map vertices and passes color and normal on.
//
//go:embed hex.vert
var HexVertexShader string

// HexFragmentShader applies two-sided directional lighting.
//
//go:embed hex.frag
var HexFragmentShader string
