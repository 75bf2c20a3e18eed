package zmx

import (
	"fmt"
	"time"
)

// Vec3 is a 3-vector in lens units or direction cosines.
type Vec3 [3]float64

// Mat3 is a row-major 3x3 rotation matrix.
type Mat3 [3][3]float64

// Apply rotates v by m.
func (m Mat3) Apply(v Vec3) Vec3 {
	var out Vec3
	for i := range 3 {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

// Add returns the component-wise sum.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// RayNode describes one ray/surface intersection.
type RayNode struct {
	Status      int
	VigCode     int
	Intersect   Vec3
	ExitCosines Vec3
	Normal      Vec3
	Intensity   float64
}

// GetTrace traces a single ray to a surface. mode 0 is real, 1 paraxial;
// h is the normalised field coordinate and p the normalised pupil coordinate.
func (c *Conn) GetTrace(wave, mode, surf int, h, p [2]float64) (RayNode, error) {
	cmd := fmt.Sprintf("GetTrace,%d,%d,%d,%s,%s,%s,%s",
		wave, mode, surf, argString(h[0]), argString(h[1]), argString(p[0]), argString(p[1]))
	resp, err := c.req(cmd)
	if err != nil {
		return RayNode{}, err
	}
	return parseRayNode("GetTrace", resp)
}

// GetTraceDirect traces a ray given explicitly in the coordinate frame of
// startSurf (the ray does not interact with startSurf itself).
func (c *Conn) GetTraceDirect(wave, mode, startSurf, stopSurf int, origin, cosines Vec3) (RayNode, error) {
	cmd := fmt.Sprintf("GetTraceDirect,%d,%d,%d,%d,%s,%s,%s,%s,%s,%s",
		wave, mode, startSurf, stopSurf,
		argString(origin[0]), argString(origin[1]), argString(origin[2]),
		argString(cosines[0]), argString(cosines[1]), argString(cosines[2]))
	resp, err := c.req(cmd)
	if err != nil {
		return RayNode{}, err
	}
	return parseRayNode("GetTraceDirect", resp)
}

func parseRayNode(op, resp string) (RayNode, error) {
	fields, err := splitFields(op, resp, 12)
	if err != nil {
		return RayNode{}, err
	}
	var node RayNode
	if node.Status, err = parseInt(op, fields[0]); err != nil {
		return RayNode{}, err
	}
	if node.Status > 0 {
		return RayNode{}, &UntraceableError{Status: node.Status}
	}
	if node.VigCode, err = parseInt(op, fields[1]); err != nil {
		return RayNode{}, err
	}
	vecs := []*Vec3{&node.Intersect, &node.ExitCosines, &node.Normal}
	for vi, v := range vecs {
		for i := range 3 {
			if v[i], err = parseFloat(op, fields[2+vi*3+i]); err != nil {
				return RayNode{}, err
			}
		}
	}
	if node.Intensity, err = parseFloat(op, fields[11]); err != nil {
		return RayNode{}, err
	}
	return node, nil
}

// GetGlobalMatrix returns the rotation matrix and offset converting the
// surface's local coordinates to the global reference frame.
func (c *Conn) GetGlobalMatrix(surf int) (Mat3, Vec3, error) {
	resp, err := c.req(fmt.Sprintf("GetGlobalMatrix,%d", surf))
	if err != nil {
		return Mat3{}, Vec3{}, err
	}
	vals, err := parseFloatList("GetGlobalMatrix", resp)
	if err != nil {
		return Mat3{}, Vec3{}, err
	}
	if len(vals) != 12 {
		return Mat3{}, Vec3{}, fmt.Errorf("GetGlobalMatrix: expected 12 fields, got %d", len(vals))
	}
	var rot Mat3
	for i := range 3 {
		for j := range 3 {
			rot[i][j] = vals[i*3+j]
		}
	}
	return rot, Vec3{vals[9], vals[10], vals[11]}, nil
}

// meritSentinel is the host's "merit function cannot be evaluated" value.
const meritSentinel = "9.0E+009"

// Optimize runs the host optimiser. cycles 0 means automatic, negative means
// evaluate the current merit function without optimising. Algorithms:
// 0 damped least squares, 1 orthogonal descent. Returns the final merit value.
func (c *Conn) Optimize(cycles, algorithm int, timeout time.Duration) (float64, error) {
	resp, err := c.reqTimeout(fmt.Sprintf("Optimize,%d,%d", cycles, algorithm), timeout)
	if err != nil {
		return 0, err
	}
	if resp == meritSentinel {
		return 0, ErrUntraceable
	}
	return parseFloat("Optimize", resp)
}

// OperandValue evaluates a single merit operand without touching the merit
// function table.
func (c *Conn) OperandValue(kind string, args ...any) (float64, error) {
	resp, err := c.req(fmt.Sprintf("OperandValue,%s,%s", kind, argList(args...)))
	if err != nil {
		return 0, err
	}
	return parseFloat("OperandValue", resp)
}

// GetOperand fetches one cell of the merit function table. Columns: 1 type,
// 2-3 integer arguments, 4-7 data, 8 target, 9 weight, 10 value.
func (c *Conn) GetOperand(row, column int) (string, error) {
	return c.req(fmt.Sprintf("GetOperand,%d,%d", row, column))
}

// SetOperand writes one cell of the merit function table.
func (c *Conn) SetOperand(row, column int, value any) (string, error) {
	return c.req(fmt.Sprintf("SetOperand,%d,%d,%s", row, column, argString(value)))
}

// LoadMerit loads a merit function file, returning the operand count and the
// current merit value.
func (c *Conn) LoadMerit(filename string) (int, float64, error) {
	resp, err := c.req("LoadMerit," + filename)
	if err != nil {
		return 0, 0, err
	}
	fields, err := splitFields("LoadMerit", resp, 2)
	if err != nil {
		return 0, 0, err
	}
	n, err := parseInt("LoadMerit", fields[0])
	if err != nil {
		return 0, 0, err
	}
	merit, err := parseFloat("LoadMerit", fields[1])
	if err != nil {
		return 0, 0, err
	}
	return n, merit, nil
}
