package zmxtest

import (
	"math"
	"strings"
)

type vec [3]float64

type mat [3][3]float64

var identity = mat{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func matMul(a, b mat) mat {
	var out mat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

func matVec(m mat, v vec) vec {
	var out vec
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

func vecAdd(a, b vec) vec {
	return vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func rotX(deg float64) mat {
	s, c := math.Sincos(deg * math.Pi / 180)
	return mat{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func rotY(deg float64) mat {
	s, c := math.Sincos(deg * math.Pi / 180)
	return mat{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

func rotZ(deg float64) mat {
	s, c := math.Sincos(deg * math.Pi / 180)
	return mat{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// frame composes the local-to-global transform for surface n. It walks from
// the object surface, advancing along the local z axis by each thickness
// and applying coordinate break transforms at the breaks themselves, in the
// order their flag selects: decenter before rotations Rx Ry Rz, or flipped
// rotations Rz Ry Rx before the decenter.
func (h *Host) frame(n int) (mat, vec) {
	r := identity
	var t vec
	for i := 0; i <= n && i < len(h.surfaces); i++ {
		if i > 0 {
			thick := h.surfaces[i-1].Data[3]
			t = vecAdd(t, matVec(r, vec{0, 0, thick}))
		}
		s := h.surfaces[i]
		if s.Type != "COORDBRK" {
			continue
		}
		d := vec{s.Params[1], s.Params[2], 0}
		rx, ry, rz := s.Params[3], s.Params[4], s.Params[5]
		if s.Params[6] != 0 {
			r = matMul(r, matMul(rotZ(rz), matMul(rotY(ry), rotX(rx))))
			t = vecAdd(t, matVec(r, d))
		} else {
			t = vecAdd(t, matVec(r, d))
			r = matMul(r, matMul(rotX(rx), matMul(rotY(ry), rotZ(rz))))
		}
	}
	return r, t
}

func (h *Host) globalMatrix(n int) string {
	if h.at(n) == nil {
		return "0"
	}
	r, t := h.frame(n)
	parts := make([]string, 0, 12)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			parts = append(parts, ftoa(r[i][j]))
		}
	}
	for i := 0; i < 3; i++ {
		parts = append(parts, ftoa(t[i]))
	}
	return strings.Join(parts, ",")
}
