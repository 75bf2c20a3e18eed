package zmx

import "fmt"

// Configuration and multi-configuration operand commands.

// ConfigInfo reports the configuration table state.
type ConfigInfo struct {
	Current     int
	Count       int
	OperandRows int
}

// GetConfig returns the current configuration, the number of configurations
// and the number of multi-configuration operand rows.
func (c *Conn) GetConfig() (ConfigInfo, error) {
	resp, err := c.req("GetConfig")
	if err != nil {
		return ConfigInfo{}, err
	}
	fields, err := splitFields("GetConfig", resp, 3)
	if err != nil {
		return ConfigInfo{}, err
	}
	var info ConfigInfo
	if info.Current, err = parseInt("GetConfig", fields[0]); err != nil {
		return ConfigInfo{}, err
	}
	if info.Count, err = parseInt("GetConfig", fields[1]); err != nil {
		return ConfigInfo{}, err
	}
	if info.OperandRows, err = parseInt("GetConfig", fields[2]); err != nil {
		return ConfigInfo{}, err
	}
	return info, nil
}

// SetConfig switches the current configuration. A nonzero trailing status
// means the newly selected configuration cannot be traced.
func (c *Conn) SetConfig(config int) (current, count int, err error) {
	resp, err := c.req(fmt.Sprintf("SetConfig,%d", config))
	if err != nil {
		return 0, 0, err
	}
	fields, err := splitFields("SetConfig", resp, 3)
	if err != nil {
		return 0, 0, err
	}
	if current, err = parseInt("SetConfig", fields[0]); err != nil {
		return 0, 0, err
	}
	if count, err = parseInt("SetConfig", fields[1]); err != nil {
		return 0, 0, err
	}
	status, err := parseInt("SetConfig", fields[2])
	if err != nil {
		return 0, 0, err
	}
	if status != 0 {
		return current, count, &UntraceableError{Status: status}
	}
	return current, count, nil
}

// InsertConfig inserts a configuration column, returning the new count.
func (c *Conn) InsertConfig(config int) (int, error) {
	resp, err := c.req(fmt.Sprintf("InsertConfig,%d", config))
	if err != nil {
		return 0, err
	}
	return parseInt("InsertConfig", resp)
}

// DeleteConfig deletes a configuration column, returning the new count.
func (c *Conn) DeleteConfig(config int) (int, error) {
	resp, err := c.req(fmt.Sprintf("DeleteConfig,%d", config))
	if err != nil {
		return 0, err
	}
	return parseInt("DeleteConfig", resp)
}

// InsertMCO inserts a multi-configuration operand row, returning the new row
// count.
func (c *Conn) InsertMCO(operand int) (int, error) {
	resp, err := c.req(fmt.Sprintf("InsertMCO,%d", operand))
	if err != nil {
		return 0, err
	}
	return parseInt("InsertMCO", resp)
}

// DeleteMCO deletes a multi-configuration operand row, returning the new row
// count.
func (c *Conn) DeleteMCO(operand int) (int, error) {
	resp, err := c.req(fmt.Sprintf("DeleteMCO,%d", operand))
	if err != nil {
		return 0, err
	}
	return parseInt("DeleteMCO", resp)
}

// InsertMFO inserts a merit function operand row, returning the new count.
func (c *Conn) InsertMFO(operand int) (int, error) {
	resp, err := c.req(fmt.Sprintf("InsertMFO,%d", operand))
	if err != nil {
		return 0, err
	}
	return parseInt("InsertMFO", resp)
}

// DeleteMFO deletes a merit function operand row, returning the new count.
func (c *Conn) DeleteMFO(operand int) (int, error) {
	resp, err := c.req(fmt.Sprintf("DeleteMFO,%d", operand))
	if err != nil {
		return 0, err
	}
	return parseInt("DeleteMFO", resp)
}

// MulticonRow is one multi-configuration table cell. Status: 0 fixed,
// 1 variable, 2 pickup, 3 thermal pickup; for pickups the row/config fields
// name the source. Scale and Offset are absent on hosts that omit them.
type MulticonRow struct {
	Value        string
	NumConfig    int
	NumRow       int
	Status       int
	PickupRow    int
	PickupConfig int
	Scale        *float64
	Offset       *float64
}

// GetMulticon fetches one multi-configuration cell (config > 0; config 0
// addresses operand info, see GetMulticonOperand).
func (c *Conn) GetMulticon(config, row int) (MulticonRow, error) {
	if config <= 0 {
		return MulticonRow{}, fmt.Errorf("GetMulticon: config must be positive, got %d", config)
	}
	resp, err := c.req(fmt.Sprintf("GetMulticon,%d,%d", config, row))
	if err != nil {
		return MulticonRow{}, err
	}
	return parseMulticonRow("GetMulticon", resp)
}

// SetMulticon writes one multi-configuration cell.
func (c *Conn) SetMulticon(config, row int, value any, status, pickupRow, pickupConfig int, scale, offset float64) (MulticonRow, error) {
	if config <= 0 {
		return MulticonRow{}, fmt.Errorf("SetMulticon: config must be positive, got %d", config)
	}
	cmd := fmt.Sprintf("SetMulticon,%d,%d,%s,%d,%d,%d,%s,%s",
		config, row, argString(value), status, pickupRow, pickupConfig, argString(scale), argString(offset))
	resp, err := c.req(cmd)
	if err != nil {
		return MulticonRow{}, err
	}
	return parseMulticonRow("SetMulticon", resp)
}

func parseMulticonRow(op, resp string) (MulticonRow, error) {
	fields := splitAtLeast(resp, 6)
	if fields == nil {
		return MulticonRow{}, fmt.Errorf("%s: short response %q", op, resp)
	}
	row := MulticonRow{Value: fields[0]}
	var err error
	if row.NumConfig, err = parseInt(op, fields[1]); err != nil {
		return MulticonRow{}, err
	}
	if row.NumRow, err = parseInt(op, fields[2]); err != nil {
		return MulticonRow{}, err
	}
	if row.Status, err = parseInt(op, fields[3]); err != nil {
		return MulticonRow{}, err
	}
	if row.PickupRow, err = parseInt(op, fields[4]); err != nil {
		return MulticonRow{}, err
	}
	if row.PickupConfig, err = parseInt(op, fields[5]); err != nil {
		return MulticonRow{}, err
	}
	if len(fields) > 7 {
		scale, err := parseFloat(op, fields[6])
		if err != nil {
			return MulticonRow{}, err
		}
		offset, err := parseFloat(op, fields[7])
		if err != nil {
			return MulticonRow{}, err
		}
		row.Scale, row.Offset = &scale, &offset
	}
	return row, nil
}

// GetMulticonOperand fetches the operand descriptor for a row: the operand
// type mnemonic and its three integer arguments.
func (c *Conn) GetMulticonOperand(row int) (kind string, v0, v1, v2 int, err error) {
	resp, err := c.req(fmt.Sprintf("GetMulticon,0,%d", row))
	if err != nil {
		return "", 0, 0, 0, err
	}
	return parseMulticonOperand("GetMulticon", resp)
}

// SetMulticonOperand writes the operand descriptor for a row.
func (c *Conn) SetMulticonOperand(row int, kind string, args ...any) (string, int, int, int, error) {
	cmd := fmt.Sprintf("SetMulticon,0,%d,%s", row, kind)
	if len(args) > 0 {
		cmd += "," + argList(args...)
	}
	resp, err := c.req(cmd)
	if err != nil {
		return "", 0, 0, 0, err
	}
	return parseMulticonOperand("SetMulticon", resp)
}

func parseMulticonOperand(op, resp string) (string, int, int, int, error) {
	fields, err := splitFields(op, resp, 4)
	if err != nil {
		return "", 0, 0, 0, err
	}
	v0, err := parseInt(op, fields[1])
	if err != nil {
		return "", 0, 0, 0, err
	}
	v1, err := parseInt(op, fields[2])
	if err != nil {
		return "", 0, 0, 0, err
	}
	v2, err := parseInt(op, fields[3])
	if err != nil {
		return "", 0, 0, 0, err
	}
	return fields[0], v0, v1, v2, nil
}
