package mesh

import (
	"github.com/Faultbox/hexmesh/pkg/math"
)

// SmoothNormals averages normals at shared vertex positions.
// This hides the seams between the separately emitted triangles.
func SmoothNormals(vertices, normals []math.Vec3) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i, v := range vertices {
		key := [3]int32{
			int32(v.X / epsilon),
			int32(v.Y / epsilon),
			int32(v.Z / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, indices := range posMap {
		if len(indices) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range indices {
			sum = sum.Add(normals[idx])
		}

		avg := normalize(sum)
		for _, idx := range indices {
			normals[idx] = avg
		}
	}
}

// normalize falls back to straight up for degenerate input.
func normalize(v math.Vec3) math.Vec3 {
	if v.Length() < 0.0001 {
		return math.Vec3{Y: 1}
	}
	return v.Normalize()
}
