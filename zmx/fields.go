package zmx

import "fmt"

// FieldsConfig describes the field definition table. Types: 0 angles in
// degrees, 1 object height, 2 paraxial image height, 3 real image height.
// Normalization: 0 radial, 1 rectangular.
type FieldsConfig struct {
	Kind          int
	Number        int
	MaxXField     float64
	MaxYField     float64
	Normalization int
}

// GetFieldsConfig fetches the field table configuration.
func (c *Conn) GetFieldsConfig() (FieldsConfig, error) {
	resp, err := c.req("GetField,0")
	if err != nil {
		return FieldsConfig{}, err
	}
	fields, err := splitFields("GetField", resp, 5)
	if err != nil {
		return FieldsConfig{}, err
	}
	var fc FieldsConfig
	if fc.Kind, err = parseInt("GetField", fields[0]); err != nil {
		return FieldsConfig{}, err
	}
	if fc.Number, err = parseInt("GetField", fields[1]); err != nil {
		return FieldsConfig{}, err
	}
	if fc.MaxXField, err = parseFloat("GetField", fields[2]); err != nil {
		return FieldsConfig{}, err
	}
	if fc.MaxYField, err = parseFloat("GetField", fields[3]); err != nil {
		return FieldsConfig{}, err
	}
	if fc.Normalization, err = parseInt("GetField", fields[4]); err != nil {
		return FieldsConfig{}, err
	}
	return fc, nil
}

// SetFieldsConfig writes the field table configuration.
func (c *Conn) SetFieldsConfig(kind, number, normalization int) error {
	_, err := c.req(fmt.Sprintf("SetField,0,%d,%d,%d", kind, number, normalization))
	return err
}

// FieldPoint is one row of the field table: position, weight and vignetting
// factors.
type FieldPoint struct {
	X, Y    float64
	Weight  float64
	VDX     float64
	VDY     float64
	VCX     float64
	VCY     float64
	VAN     float64
}

// GetField fetches field point n (n > 0; 0 addresses the configuration).
func (c *Conn) GetField(n int) (FieldPoint, error) {
	if n <= 0 {
		return FieldPoint{}, fmt.Errorf("GetField: field number must be positive, got %d", n)
	}
	resp, err := c.req(fmt.Sprintf("GetField,%d", n))
	if err != nil {
		return FieldPoint{}, err
	}
	return parseFieldPoint("GetField", resp)
}

// SetField writes field point n.
func (c *Conn) SetField(n int, fp FieldPoint) (FieldPoint, error) {
	if n <= 0 {
		return FieldPoint{}, fmt.Errorf("SetField: field number must be positive, got %d", n)
	}
	cmd := fmt.Sprintf("SetField,%d,%s", n,
		argList(fp.X, fp.Y, fp.Weight, fp.VDX, fp.VDY, fp.VCX, fp.VCY, fp.VAN))
	resp, err := c.req(cmd)
	if err != nil {
		return FieldPoint{}, err
	}
	return parseFieldPoint("SetField", resp)
}

func parseFieldPoint(op, resp string) (FieldPoint, error) {
	vals, err := parseFloatList(op, resp)
	if err != nil {
		return FieldPoint{}, err
	}
	if len(vals) != 8 {
		return FieldPoint{}, fmt.Errorf("%s: expected 8 fields, got %d", op, len(vals))
	}
	return FieldPoint{
		X: vals[0], Y: vals[1], Weight: vals[2],
		VDX: vals[3], VDY: vals[4], VCX: vals[5], VCY: vals[6], VAN: vals[7],
	}, nil
}

// GetWavelengthsCount returns the primary wavelength number and the number of
// defined wavelengths.
func (c *Conn) GetWavelengthsCount() (primary, count int, err error) {
	resp, err := c.req("GetWave,0")
	if err != nil {
		return 0, 0, err
	}
	fields, err := splitFields("GetWave", resp, 2)
	if err != nil {
		return 0, 0, err
	}
	if primary, err = parseInt("GetWave", fields[0]); err != nil {
		return 0, 0, err
	}
	if count, err = parseInt("GetWave", fields[1]); err != nil {
		return 0, 0, err
	}
	return primary, count, nil
}

// SetWavelengthsCount sets the primary wavelength number and the wavelength
// count.
func (c *Conn) SetWavelengthsCount(primary, count int) error {
	_, err := c.req(fmt.Sprintf("SetWave,0,%d,%d", primary, count))
	return err
}

// GetWave fetches wavelength n (micrometres) and its weight.
func (c *Conn) GetWave(n int) (wavelength, weight float64, err error) {
	resp, err := c.req(fmt.Sprintf("GetWave,%d", n))
	if err != nil {
		return 0, 0, err
	}
	fields, err := splitFields("GetWave", resp, 2)
	if err != nil {
		return 0, 0, err
	}
	if wavelength, err = parseFloat("GetWave", fields[0]); err != nil {
		return 0, 0, err
	}
	if weight, err = parseFloat("GetWave", fields[1]); err != nil {
		return 0, 0, err
	}
	return wavelength, weight, nil
}

// SetWave writes wavelength n.
func (c *Conn) SetWave(n int, wavelength, weight float64) error {
	_, err := c.req(fmt.Sprintf("SetWave,%d,%s,%s", n, argString(wavelength), argString(weight)))
	return err
}
