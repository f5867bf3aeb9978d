package utils

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestAABBExpand(t *testing.T) {
	box := EmptyAABB()
	box.Expand(mgl32.Vec3{1, -2, 3})
	box.Expand(mgl32.Vec3{-1, 2, -3})
	box.Expand(mgl32.Vec3{0, 0, 0})

	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, box.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, box.Max)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, box.Center())
	assert.Equal(t, float32(2), box.ExtentX())
	assert.Equal(t, float32(4), box.ExtentY())
	assert.Equal(t, float32(6), box.ExtentZ())
}

func TestEmptyAABBSeed(t *testing.T) {
	box := EmptyAABB()
	p := mgl32.Vec3{0.5, 0.5, 0.5}
	box.Expand(p)
	// a single point collapses the seed completely
	assert.Equal(t, p, box.Min)
	assert.Equal(t, p, box.Max)
}
