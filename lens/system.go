package lens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/optikforge/zmxlink/zmx"
)

// SystemConfig exposes the model-wide settings as individual accessors. The
// host reports nine settings but accepts only seven back, all at once, so
// every setter reads the current values, patches one and writes the full
// record. Settings the host reports but does not accept are read-only.
type SystemConfig struct {
	conn *zmx.Conn
}

// NewSystemConfig wraps the model-wide settings of a connection.
func NewSystemConfig(conn *zmx.Conn) *SystemConfig {
	return &SystemConfig{conn: conn}
}

// setgetMap lists, per writable field of the settings record, the index the
// same field occupies in the reported record.
var setgetMap = [...]int{1, 2, 4, 5, 6, 7, 8}

func (s *SystemConfig) getRaw(idx int) (string, error) {
	fields, err := s.conn.GetSystemRaw()
	if err != nil {
		return "", err
	}
	if idx >= len(fields) {
		return "", fmt.Errorf("system settings: field %d missing in %d-field record", idx, len(fields))
	}
	return fields[idx], nil
}

func (s *SystemConfig) getInt(idx int) (int, error) {
	raw, err := s.getRaw(idx)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("system settings: parse field %d %q: %w", idx, raw, err)
	}
	return int(v), nil
}

func (s *SystemConfig) getFloat(idx int) (float64, error) {
	raw, err := s.getRaw(idx)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("system settings: parse field %d %q: %w", idx, raw, err)
	}
	return v, nil
}

func (s *SystemConfig) setRaw(idx int, value string) error {
	slot := -1
	for i, g := range setgetMap {
		if g == idx {
			slot = i
		}
	}
	if slot < 0 {
		return fmt.Errorf("system settings field %d: %w", idx, ErrReadOnlySetting)
	}
	orig, err := s.conn.GetSystemRaw()
	if err != nil {
		return err
	}
	fields := make([]string, len(setgetMap))
	for i, g := range setgetMap {
		if g >= len(orig) {
			return fmt.Errorf("system settings: field %d missing in %d-field record", g, len(orig))
		}
		fields[i] = orig[g]
	}
	fields[slot] = value
	_, err = s.conn.SetSystemRaw(fields...)
	return err
}

// NumSurfaces returns the surface count excluding the object plane. It is
// read-only; the count changes through surface edits.
func (s *SystemConfig) NumSurfaces() (int, error) { return s.getInt(0) }

// UnitCode returns the lens unit code.
func (s *SystemConfig) UnitCode() (int, error) { return s.getInt(1) }

// SetUnitCode sets the lens unit code.
func (s *SystemConfig) SetUnitCode(code int) error { return s.setRaw(1, strconv.Itoa(code)) }

// StopSurf returns the stop surface number.
func (s *SystemConfig) StopSurf() (int, error) { return s.getInt(2) }

// SetStopSurf sets the stop surface number.
func (s *SystemConfig) SetStopSurf(n int) error { return s.setRaw(2, strconv.Itoa(n)) }

// NonAxial reports whether the model contains non-axial elements. The host
// derives it, so it is read-only.
func (s *SystemConfig) NonAxial() (bool, error) {
	v, err := s.getInt(3)
	return v != 0, err
}

// RayAimingType returns the ray aiming mode code.
func (s *SystemConfig) RayAimingType() (int, error) { return s.getInt(4) }

// SetRayAimingType sets the ray aiming mode code.
func (s *SystemConfig) SetRayAimingType(code int) error { return s.setRaw(4, strconv.Itoa(code)) }

// AdjustIndex reports whether refractive indexes are adjusted to the
// ambient temperature and pressure.
func (s *SystemConfig) AdjustIndex() (bool, error) {
	v, err := s.getInt(5)
	return v != 0, err
}

// SetAdjustIndex enables or disables index adjustment.
func (s *SystemConfig) SetAdjustIndex(on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return s.setRaw(5, v)
}

// Temperature returns the ambient temperature in degrees Celsius.
func (s *SystemConfig) Temperature() (float64, error) { return s.getFloat(6) }

// SetTemperature sets the ambient temperature in degrees Celsius.
func (s *SystemConfig) SetTemperature(t float64) error {
	return s.setRaw(6, strconv.FormatFloat(t, 'G', -1, 64))
}

// Pressure returns the ambient pressure in atmospheres.
func (s *SystemConfig) Pressure() (float64, error) { return s.getFloat(7) }

// SetPressure sets the ambient pressure in atmospheres.
func (s *SystemConfig) SetPressure(p float64) error {
	return s.setRaw(7, strconv.FormatFloat(p, 'G', -1, 64))
}

// GlobalRefSurf returns the global coordinate reference surface number.
func (s *SystemConfig) GlobalRefSurf() (int, error) { return s.getInt(8) }

// SetGlobalRefSurf sets the global coordinate reference surface number.
func (s *SystemConfig) SetGlobalRefSurf(n int) error { return s.setRaw(8, strconv.Itoa(n)) }

// UnitName translates a lens unit code to its abbreviation, or "" for an
// unknown code.
func UnitName(code int) string {
	switch code {
	case 0:
		return "mm"
	case 1:
		return "cm"
	case 2:
		return "in"
	case 3:
		return "m"
	}
	return ""
}

// RayAimingName translates a ray aiming mode code to its name. Mode 0, no
// ray aiming, translates to "".
func RayAimingName(code int) string {
	switch code {
	case 1:
		return "paraxial"
	case 2:
		return "real"
	}
	return ""
}
