package zmx

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SystemData is the whole-model settings tuple reported by GetSystem.
// NonAxialFlag and AdjustIndex are integer-coded booleans on the wire.
type SystemData struct {
	NumSurfs      int
	UnitCode      int // 0 mm, 1 cm, 2 in, 3 m
	StopSurf      int
	NonAxialFlag  int
	RayAimingType int // 0 off, 1 paraxial, 2 real
	AdjustIndex   int
	Temperature   float64
	Pressure      float64
	GlobalRefSurf int
}

// GetSystem fetches the system settings tuple.
func (c *Conn) GetSystem() (SystemData, error) {
	resp, err := c.req("GetSystem")
	if err != nil {
		return SystemData{}, err
	}
	fields, err := splitFields("GetSystem", resp, 9)
	if err != nil {
		return SystemData{}, err
	}
	var d SystemData
	ints := []*int{&d.NumSurfs, &d.UnitCode, &d.StopSurf, &d.NonAxialFlag, &d.RayAimingType, &d.AdjustIndex}
	for i, p := range ints {
		if *p, err = parseInt("GetSystem", fields[i]); err != nil {
			return SystemData{}, err
		}
	}
	if d.Temperature, err = parseFloat("GetSystem", fields[6]); err != nil {
		return SystemData{}, err
	}
	if d.Pressure, err = parseFloat("GetSystem", fields[7]); err != nil {
		return SystemData{}, err
	}
	if d.GlobalRefSurf, err = parseInt("GetSystem", fields[8]); err != nil {
		return SystemData{}, err
	}
	return d, nil
}

// GetSystemRaw fetches the system tuple as unparsed fields, for
// read-modify-write updates that must not disturb unrelated settings.
func (c *Conn) GetSystemRaw() ([]string, error) {
	resp, err := c.req("GetSystem")
	if err != nil {
		return nil, err
	}
	return strings.Split(resp, ","), nil
}

// SetSystemRaw writes the system tuple from unparsed fields.
func (c *Conn) SetSystemRaw(fields ...string) ([]string, error) {
	resp, err := c.req("SetSystem," + strings.Join(fields, ","))
	if err != nil {
		return nil, err
	}
	return strings.Split(resp, ","), nil
}

// SetSystem writes the settable subset of the system tuple.
func (c *Conn) SetSystem(unitCode, stopSurf, rayAiming int, adjustIndex bool, temp, pressure float64, globalRefSurf int) (SystemData, error) {
	resp, err := c.req(fmt.Sprintf("SetSystem,%d,%d,%d,%s,%s,%s,%d",
		unitCode, stopSurf, rayAiming, argString(adjustIndex), argString(temp), argString(pressure), globalRefSurf))
	if err != nil {
		return SystemData{}, err
	}
	fields, err := splitFields("SetSystem", resp, 9)
	if err != nil {
		return SystemData{}, err
	}
	var d SystemData
	ints := []*int{&d.NumSurfs, &d.UnitCode, &d.StopSurf, &d.NonAxialFlag, &d.RayAimingType, &d.AdjustIndex}
	for i, p := range ints {
		if *p, err = parseInt("SetSystem", fields[i]); err != nil {
			return SystemData{}, err
		}
	}
	if d.Temperature, err = parseFloat("SetSystem", fields[6]); err != nil {
		return SystemData{}, err
	}
	if d.Pressure, err = parseFloat("SetSystem", fields[7]); err != nil {
		return SystemData{}, err
	}
	if d.GlobalRefSurf, err = parseInt("SetSystem", fields[8]); err != nil {
		return SystemData{}, err
	}
	return d, nil
}

// SystemAperture describes the system aperture setting. Types: 0 entrance
// pupil diameter, 1 image space f/#, 2 object space NA, 3 float by stop size,
// 4 paraxial working f/#, 5 object cone angle.
type SystemAperture struct {
	Kind     int
	StopSurf int
	Value    float64
}

// GetSystemAper fetches the system aperture setting.
func (c *Conn) GetSystemAper() (SystemAperture, error) {
	resp, err := c.req("GetSystemAper")
	if err != nil {
		return SystemAperture{}, err
	}
	return parseSystemAper("GetSystemAper", resp)
}

// SetSystemAper writes the system aperture setting.
func (c *Conn) SetSystemAper(kind, stopSurf int, value float64) (SystemAperture, error) {
	resp, err := c.req(fmt.Sprintf("SetSystemAper,%d,%d,%s", kind, stopSurf, argString(value)))
	if err != nil {
		return SystemAperture{}, err
	}
	return parseSystemAper("SetSystemAper", resp)
}

func parseSystemAper(op, resp string) (SystemAperture, error) {
	fields, err := splitFields(op, resp, 3)
	if err != nil {
		return SystemAperture{}, err
	}
	var a SystemAperture
	if a.Kind, err = parseInt(op, fields[0]); err != nil {
		return SystemAperture{}, err
	}
	if a.StopSurf, err = parseInt(op, fields[1]); err != nil {
		return SystemAperture{}, err
	}
	if a.Value, err = parseFloat(op, fields[2]); err != nil {
		return SystemAperture{}, err
	}
	return a, nil
}

// GetSystemProperty fetches a system property by numeric code, unparsed.
func (c *Conn) GetSystemProperty(code int) (string, error) {
	return c.req(fmt.Sprintf("GetSystemProperty,%d", code))
}

// SetSystemProperty writes a system property by numeric code.
func (c *Conn) SetSystemProperty(code int, args ...any) (string, error) {
	return c.req(fmt.Sprintf("SetSystemProperty,%d,%s", code, argList(args...)))
}

// GetUpdate recomputes the model: pickups, solves and derived data. Callers
// must issue it after installing pickups or changing geometry, before reading
// dependent values.
func (c *Conn) GetUpdate() error {
	resp, err := c.req("GetUpdate")
	if err != nil {
		return err
	}
	status, err := parseInt("GetUpdate", resp)
	if err != nil {
		return err
	}
	if status != 0 {
		return &UntraceableError{Status: status}
	}
	return nil
}

// GetRefresh copies the model back from the host's editor window, then
// recomputes as GetUpdate does.
func (c *Conn) GetRefresh() error {
	resp, err := c.req("GetRefresh")
	if err != nil {
		return err
	}
	status, err := parseInt("GetRefresh", resp)
	if err != nil {
		return err
	}
	if status != 0 {
		return &UntraceableError{Status: status}
	}
	return nil
}

// PushLens copies the in-memory model into the host's editor window. The
// operation must be enabled in the host preferences; -999 reports it is not.
func (c *Conn) PushLens() error {
	resp, err := c.req("PushLens,0")
	if err != nil {
		return err
	}
	status, err := parseInt("PushLens", resp)
	if err != nil {
		return err
	}
	if status == -999 {
		return &HostError{Op: "PushLens", Status: status}
	}
	if status != 0 {
		return &UntraceableError{Status: status}
	}
	return nil
}

// NewLens resets the model to the host's minimal default system.
func (c *Conn) NewLens() error {
	resp, err := c.req("NewLens")
	if err != nil {
		return err
	}
	return c.errorStatus("NewLens", resp)
}

// LoadFile loads a lens file into the model. append nonzero appends the
// file's surfaces after the given position instead of replacing the model.
func (c *Conn) LoadFile(filename string, appendAt int) error {
	resp, err := c.req(fmt.Sprintf("LoadFile,%s,%d", filename, appendAt))
	if err != nil {
		return err
	}
	status, err := parseInt("LoadFile", resp)
	if err != nil {
		return err
	}
	switch {
	case status == -999:
		return &FileIOError{Op: "LoadFile", Path: filename}
	case status != 0:
		return &UntraceableError{Status: status}
	}
	return nil
}

// SaveFile writes the model to a lens file. Relative paths are resolved
// before transmission so the host does not save into its own directory.
func (c *Conn) SaveFile(filename string) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("SaveFile: %w", err)
	}
	resp, err := c.req("SaveFile," + abs)
	if err != nil {
		return err
	}
	status, err := parseInt("SaveFile", resp)
	if err != nil {
		return err
	}
	switch {
	case status == -999:
		return &FileIOError{Op: "SaveFile", Path: filename}
	case status != 0:
		return &UntraceableError{Status: status}
	}
	return nil
}

// GetVersion returns the host application version number.
func (c *Conn) GetVersion() (int, error) {
	resp, err := c.req("GetVersion")
	if err != nil {
		return 0, err
	}
	return parseInt("GetVersion", resp)
}

// GetFile returns the path of the lens file backing the current model.
func (c *Conn) GetFile() (string, error) {
	return c.req("GetFile")
}

// GetPath returns the host's data directory and lens directory.
func (c *Conn) GetPath() (dataPath, lensPath string, err error) {
	resp, err := c.req("GetPath")
	if err != nil {
		return "", "", err
	}
	fields, err := splitFields("GetPath", resp, 2)
	if err != nil {
		return "", "", err
	}
	return fields[0], fields[1], nil
}

// QuickFocus performs a best-focus adjustment of the back focal distance.
// Modes: 0 RMS spot radius, 1 spot x, 2 spot y, 3 wavefront OPD. centroid
// references the image centroid instead of the chief ray.
func (c *Conn) QuickFocus(mode int, centroid bool) error {
	_, err := c.req(fmt.Sprintf("QuickFocus,%d,%s", mode, argString(centroid)))
	return err
}

// RemoveVariables fixes every variable in the model.
func (c *Conn) RemoveVariables() error {
	_, err := c.req("RemoveVariables")
	return err
}

// SetVig adjusts vignetting factors for the current fields.
func (c *Conn) SetVig() error {
	_, err := c.req("SetVig")
	return err
}

// GetTextFile asks the host to export a report of the given kind to path.
// flag 1 applies the settings file; flag 2 opens the host's settings dialog,
// which blocks until the user closes it, so the timeout must cover that.
func (c *Conn) GetTextFile(path, kind, settingsPath string, flag int, timeout time.Duration) (string, error) {
	cmd := fmt.Sprintf("GetTextFile,\"%s\",%s,\"%s\",%d", path, kind, settingsPath, flag)
	return c.reqTimeout(cmd, timeout)
}
