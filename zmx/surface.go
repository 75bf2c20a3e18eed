package zmx

import "fmt"

// Surface-record commands: the flat, position-addressed view of the model.
// Surface data, parameter and extra columns carry raw string values here;
// type coercion is the lens layer's job.

// GetLabel returns the label stored on the surface at the given position.
// Zero means the surface has no label assigned.
func (c *Conn) GetLabel(surf int) (int32, error) {
	resp, err := c.req(fmt.Sprintf("GetLabel,%d", surf))
	if err != nil {
		return 0, err
	}
	n, err := parseInt("GetLabel", resp)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

// SetLabel stores a label on the surface at the given position. The host
// echoes the stored value; a mismatch means the label was not accepted.
func (c *Conn) SetLabel(surf int, label int32) error {
	resp, err := c.req(fmt.Sprintf("SetLabel,%d,%d", surf, label))
	if err != nil {
		return err
	}
	stored, err := parseInt("SetLabel", resp)
	if err != nil {
		return err
	}
	if int32(stored) != label {
		return fmt.Errorf("SetLabel: label %d not stored (host kept %d)", label, stored)
	}
	return nil
}

// FindLabel resolves a label to its current surface position. A negative
// response means no live surface carries the label.
func (c *Conn) FindLabel(label int32) (int, error) {
	resp, err := c.req(fmt.Sprintf("FindLabel,%d", label))
	if err != nil {
		return 0, err
	}
	surf, err := parseInt("FindLabel", resp)
	if err != nil {
		return 0, err
	}
	if surf < 0 {
		return 0, &LabelNotFoundError{Label: label}
	}
	return surf, nil
}

// GetSurfaceData fetches one column of the surface-data table as raw text.
func (c *Conn) GetSurfaceData(surf, code int) (string, error) {
	return c.req(fmt.Sprintf("GetSurfaceData,%d,%d", surf, code))
}

// SetSurfaceData stores one column of the surface-data table. The response is
// usually the stored value echoed back.
func (c *Conn) SetSurfaceData(surf, code int, value any) (string, error) {
	return c.req(fmt.Sprintf("SetSurfaceData,%d,%d,%s", surf, code, argString(value)))
}

// GetSurfaceParameter fetches one column of the parameter table as raw text.
func (c *Conn) GetSurfaceParameter(surf, code int) (string, error) {
	return c.req(fmt.Sprintf("GetSurfaceParameter,%d,%d", surf, code))
}

// SetSurfaceParameter stores one column of the parameter table.
func (c *Conn) SetSurfaceParameter(surf, code int, value any) (string, error) {
	return c.req(fmt.Sprintf("SetSurfaceParameter,%d,%d,%s", surf, code, argString(value)))
}

// GetExtra fetches one column of the extra-data table as raw text.
func (c *Conn) GetExtra(surf, code int) (string, error) {
	return c.req(fmt.Sprintf("GetExtra,%d,%d", surf, code))
}

// SetExtra stores one column of the extra-data table.
func (c *Conn) SetExtra(surf, code int, value any) (string, error) {
	return c.req(fmt.Sprintf("SetExtra,%d,%d,%s", surf, code, argString(value)))
}

// GetSolve returns the raw solve record for a field: the solve type code
// followed by its arguments, comma-separated.
func (c *Conn) GetSolve(surf, code int) (string, error) {
	return c.req(fmt.Sprintf("GetSolve,%d,%d", surf, code))
}

// SetSolve installs a solve on a field. The first argument is the solve type
// code; the rest depend on the solve type and field category.
// Undefined solve type codes are not rejected by the host.
func (c *Conn) SetSolve(surf, code int, args ...any) (string, error) {
	return c.req(fmt.Sprintf("SetSolve,%d,%d,%s", surf, code, argList(args...)))
}

// InsertSurface inserts a blank surface before the given position. Inserting
// at position 0 fails silently on the host; the lens layer pre-validates.
func (c *Conn) InsertSurface(surf int) error {
	resp, err := c.req(fmt.Sprintf("InsertSurface,%d", surf))
	if err != nil {
		return err
	}
	return c.errorStatus("InsertSurface", resp)
}

// DeleteSurface removes the surface at the given position; later surfaces
// shift down by one, carrying their labels with them.
func (c *Conn) DeleteSurface(surf int) error {
	resp, err := c.req(fmt.Sprintf("DeleteSurface,%d", surf))
	if err != nil {
		return err
	}
	return c.errorStatus("DeleteSurface", resp)
}

// SetAperture sets the surface aperture record. Aperture types: 0 none,
// 1 circular, 2 circular obscuration, 3 spider, 4 rectangular, 5 rectangular
// obscuration, 6 elliptical, 7 elliptical obscuration, 8/9 user defined,
// 10 floating.
func (c *Conn) SetAperture(surf, kind int, min, max, xDecenter, yDecenter float64, apertureFile string) error {
	_, err := c.req(fmt.Sprintf("SetAperture,%d,%d,%s,%s,%s,%s,%s",
		surf, kind, argString(min), argString(max), argString(xDecenter), argString(yDecenter), apertureFile))
	return err
}

// Aperture describes one surface's aperture record.
type Aperture struct {
	Kind      int
	Min       float64
	Max       float64
	XDecenter float64
	YDecenter float64
	File      string
}

// GetAperture fetches the aperture record for a surface.
func (c *Conn) GetAperture(surf int) (Aperture, error) {
	resp, err := c.req(fmt.Sprintf("GetAperture,%d", surf))
	if err != nil {
		return Aperture{}, err
	}
	fields, err := splitFields("GetAperture", resp, 6)
	if err != nil {
		return Aperture{}, err
	}
	var a Aperture
	if a.Kind, err = parseInt("GetAperture", fields[0]); err != nil {
		return Aperture{}, err
	}
	if a.Min, err = parseFloat("GetAperture", fields[1]); err != nil {
		return Aperture{}, err
	}
	if a.Max, err = parseFloat("GetAperture", fields[2]); err != nil {
		return Aperture{}, err
	}
	if a.XDecenter, err = parseFloat("GetAperture", fields[3]); err != nil {
		return Aperture{}, err
	}
	if a.YDecenter, err = parseFloat("GetAperture", fields[4]); err != nil {
		return Aperture{}, err
	}
	a.File = fields[5]
	return a, nil
}

// GetIndex returns the refractive indices at each defined wavelength for the
// surface. An empty response means the surface is invalid.
func (c *Conn) GetIndex(surf int) ([]float64, error) {
	resp, err := c.req(fmt.Sprintf("GetIndex,%d", surf))
	if err != nil {
		return nil, err
	}
	if resp == "" {
		return nil, fmt.Errorf("GetIndex: surface %d is invalid", surf)
	}
	return parseFloatList("GetIndex", resp)
}
