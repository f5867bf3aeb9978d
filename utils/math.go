package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box given by its minimum and maximum corners.
type AABB struct {
	Min mgl32.Vec3 `json:"aabb.min"`
	Max mgl32.Vec3 `json:"aabb.max"`
}

// EmptyAABB returns a box that any point expands, suitable as a fold seed.
func EmptyAABB() AABB {
	return AABB{
		Min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

func (a *AABB) Expand(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < a.Min[i] {
			a.Min[i] = p[i]
		}
		if p[i] > a.Max[i] {
			a.Max[i] = p[i]
		}
	}
}

func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) ExtentX() float32 { return a.Max.X() - a.Min.X() }
func (a AABB) ExtentY() float32 { return a.Max.Y() - a.Min.Y() }
func (a AABB) ExtentZ() float32 { return a.Max.Z() - a.Min.Z() }
