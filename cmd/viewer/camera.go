package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Camera is an orthographic view orbiting the origin.
type Camera struct {
	Yaw, Pitch float64 // degrees
	// Scale is pixels per world unit.
	Scale float64
	// CX, CY is the screen point the origin projects to.
	CX, CY float64
}

func (c Camera) rotation() geometry.Quat {
	yaw := geometry.AxisAngle(geometry.Up, c.Yaw*math.Pi/180)
	pitch := geometry.AxisAngle(geometry.Right, c.Pitch*math.Pi/180)
	return yaw.Mul(pitch)
}

// Projector returns a projection function for the current camera settings.
// The returned depth grows away from the viewer.
func (c Camera) Projector() func(p r3.Vec) (x, y, depth float64) {
	inv := c.rotation().Inverse()
	return func(p r3.Vec) (float64, float64, float64) {
		v := inv.Rotate(p)
		return c.CX + v.X*c.Scale, c.CY - v.Y*c.Scale, v.Z
	}
}
