package main

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestCamera_Projector(t *testing.T) {
	const tol = 1e-9
	tests := []struct {
		name         string
		cam          Camera
		p            r3.Vec
		wantX, wantY float64
		wantDepth    float64
	}{
		{"front view x", Camera{Scale: 10, CX: 100, CY: 50}, r3.Vec{X: 1}, 110, 50, 0},
		{"front view y is up", Camera{Scale: 10, CX: 100, CY: 50}, r3.Vec{Y: 2}, 100, 30, 0},
		{"front view depth", Camera{Scale: 10}, r3.Vec{Z: 3}, 0, 0, 3},
		{"yaw quarter turn", Camera{Yaw: 90, Scale: 1}, r3.Vec{Z: 1}, -1, 0, 0},
		{"top view", Camera{Pitch: 90, Scale: 1}, r3.Vec{Y: 1}, 0, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, d := tt.cam.Projector()(tt.p)
			if math.Abs(x-tt.wantX) > tol || math.Abs(y-tt.wantY) > tol || math.Abs(d-tt.wantDepth) > tol {
				t.Errorf("Projector()(%v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.p, x, y, d, tt.wantX, tt.wantY, tt.wantDepth)
			}
		})
	}
}
