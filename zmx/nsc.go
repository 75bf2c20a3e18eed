package zmx

import (
	"fmt"
	"time"
)

// Non-sequential component commands. Objects inside an NSC surface are
// addressed by (surface position, object slot); there is no label scheme for
// them, so handles in the lens layer stay position-based.

// GetNSCData returns group data for an NSC surface; code 0 (the only defined
// code) returns the number of objects.
func (c *Conn) GetNSCData(surf, code int) (int, error) {
	resp, err := c.req(fmt.Sprintf("GetNSCData,%d,%d", surf, code))
	if err != nil {
		return 0, err
	}
	return parseInt("GetNSCData", resp)
}

// GetNSCMatrix returns the rotation and offset of an object within its NSC
// group, in the same layout as GetGlobalMatrix.
func (c *Conn) GetNSCMatrix(surf, obj int) (Mat3, Vec3, error) {
	resp, err := c.req(fmt.Sprintf("GetNSCMatrix,%d,%d", surf, obj))
	if err != nil {
		return Mat3{}, Vec3{}, err
	}
	vals, err := parseFloatList("GetNSCMatrix", resp)
	if err != nil {
		return Mat3{}, Vec3{}, err
	}
	if len(vals) != 12 {
		return Mat3{}, Vec3{}, fmt.Errorf("GetNSCMatrix: expected 12 fields, got %d", len(vals))
	}
	var rot Mat3
	for i := range 3 {
		for j := range 3 {
			rot[i][j] = vals[i*3+j]
		}
	}
	return rot, Vec3{vals[9], vals[10], vals[11]}, nil
}

// GetNSCParameter fetches an object parameter as raw text.
func (c *Conn) GetNSCParameter(surf, obj, code int) (string, error) {
	return c.req(fmt.Sprintf("GetNSCParameter,%d,%d,%d", surf, obj, code))
}

// SetNSCParameter stores an object parameter.
func (c *Conn) SetNSCParameter(surf, obj, code int, value any) (string, error) {
	return c.req(fmt.Sprintf("SetNSCParameter,%d,%d,%d,%s", surf, obj, code, argString(value)))
}

// GetNSCProperty fetches an object property; face < 0 omits the face
// argument.
func (c *Conn) GetNSCProperty(surf, obj, code, face int) (string, error) {
	cmd := fmt.Sprintf("GetNSCProperty,%d,%d,%d", surf, obj, code)
	if face >= 0 {
		cmd = fmt.Sprintf("%s,%d", cmd, face)
	}
	return c.req(cmd)
}

// SetNSCProperty stores an object property on the given face.
func (c *Conn) SetNSCProperty(surf, obj, code, face int, value any) (string, error) {
	return c.req(fmt.Sprintf("SetNSCProperty,%d,%d,%d,%d,%s", surf, obj, code, face, argString(value)))
}

// SetNSCObjectData stores object-level data (type, comment, aperture file,
// reference object and so on, by code).
func (c *Conn) SetNSCObjectData(surf, obj, code int, value any) (string, error) {
	return c.req(fmt.Sprintf("SetNSCObjectData,%d,%d,%d,%s", surf, obj, code, argString(value)))
}

// SetNSCPosition stores one of the object's position/material fields
// (codes 1-6 position, 7 material).
func (c *Conn) SetNSCPosition(surf, obj, code int, value any) (string, error) {
	return c.req(fmt.Sprintf("SetNSCPosition,%d,%d,%d,%s", surf, obj, code, argString(value)))
}

// InsertObject inserts a blank object at the given slot of an NSC surface.
func (c *Conn) InsertObject(surf, obj int) error {
	resp, err := c.req(fmt.Sprintf("InsertObject,%d,%d", surf, obj))
	if err != nil {
		return err
	}
	return c.errorStatus("InsertObject", resp)
}

// NSCDetectorData reads detector data. obj 0 clears all detectors; negative
// obj clears that detector.
func (c *Conn) NSCDetectorData(surf, obj, pixel, data int) (float64, error) {
	resp, err := c.req(fmt.Sprintf("NSCDetectorData,%d,%d,%d,%d", surf, obj, pixel, data))
	if err != nil {
		return 0, err
	}
	return parseFloat("NSCDetectorData", resp)
}

// NSCTraceOptions configures a non-sequential trace batch.
type NSCTraceOptions struct {
	Surf         int
	Source       int
	Split        bool
	Scatter      bool
	UsePolar     bool
	IgnoreErrors bool
	NoRandomSeed bool
	Save         bool
	SaveFilename string
	Filter       string
	ZRDFormat    int
	Timeout      time.Duration
}

// NSCTrace launches a non-sequential ray trace. This is a long-running host
// operation; the timeout must cover the whole batch.
func (c *Conn) NSCTrace(opts NSCTraceOptions) (string, error) {
	if opts.Surf == 0 {
		opts.Surf = 1
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Minute
	}
	cmd := fmt.Sprintf("NSCTrace,%d,%d,%s,%s,%s,%s,%s,%s,%s,\"%s\",%d",
		opts.Surf, opts.Source,
		argString(opts.Split), argString(opts.Scatter), argString(opts.UsePolar),
		argString(opts.IgnoreErrors), argString(opts.NoRandomSeed), argString(opts.Save),
		opts.SaveFilename, opts.Filter, opts.ZRDFormat)
	return c.reqTimeout(cmd, opts.Timeout)
}

// SaveDetector writes detector data for one object to a file.
func (c *Conn) SaveDetector(surf, obj int, filename string, timeout time.Duration) error {
	resp, err := c.reqTimeout(fmt.Sprintf("SaveDetector,%d,%d,%s", surf, obj, filename), timeout)
	if err != nil {
		return err
	}
	return c.errorStatus("SaveDetector", resp)
}

// ExportCADOptions configures a CAD geometry export. Zero values select the
// host defaults used by the extension protocol.
type ExportCADOptions struct {
	FileType         int // 0 IGES, 1 STEP, 2 SAT, 3 STL
	NumSpline        int
	First, Last      int
	RaysLayer        int
	LensLayer        int
	ExportDummy      bool
	UseSolids        bool
	RayPattern       int
	NumRays          int
	Wave, Field      int
	DeleteVignetted  bool
	DummyThick       float64
	Split, Scatter   bool
	UsePolarization  bool
	Config           int
	Timeout          time.Duration
}

// ExportCAD exports lens geometry and rays to a CAD file.
func (c *Conn) ExportCAD(filename string, opts ExportCADOptions) (string, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Minute
	}
	if opts.Config < 0 {
		row, err := c.GetMulticon(1, 1)
		if err != nil {
			return "", err
		}
		opts.Config = row.NumConfig - opts.Config
	}
	if opts.Last < 0 {
		sys, err := c.GetSystem()
		if err != nil {
			return "", err
		}
		opts.Last = sys.NumSurfs - opts.Last + 1
	}
	cmd := fmt.Sprintf("ExportCAD,%s,%d,%d,%d,%d,%d,%d,%s,%s,%d,%d,%d,%d,%s,%s,%s,%s,%s,%d",
		filename, opts.FileType, opts.NumSpline, opts.First, opts.Last,
		opts.RaysLayer, opts.LensLayer,
		argString(opts.ExportDummy), argString(opts.UseSolids),
		opts.RayPattern, opts.NumRays, opts.Wave, opts.Field,
		argString(opts.DeleteVignetted), argString(opts.DummyThick),
		argString(opts.Split), argString(opts.Scatter), argString(opts.UsePolarization),
		opts.Config)
	return c.reqTimeout(cmd, opts.Timeout)
}

// ExportCheck reports whether the previous ExportCAD has finished.
func (c *Conn) ExportCheck() (int, error) {
	resp, err := c.req("ExportCheck")
	if err != nil {
		return 0, err
	}
	return parseInt("ExportCheck", resp)
}
