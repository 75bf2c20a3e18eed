package lens

import "github.com/optikforge/zmxlink/zmx"

// ModelConfigs drives the multi-configuration editor: the set of
// configurations and the operand rows that vary between them.
type ModelConfigs struct {
	conn *zmx.Conn
}

// NewModelConfigs wraps the multi-configuration state of a connection.
func NewModelConfigs(conn *zmx.Conn) *ModelConfigs {
	return &ModelConfigs{conn: conn}
}

// Count returns the number of configurations.
func (m *ModelConfigs) Count() (int, error) {
	info, err := m.conn.GetConfig()
	if err != nil {
		return 0, err
	}
	return info.Count, nil
}

// Current returns the active configuration number.
func (m *ModelConfigs) Current() (int, error) {
	info, err := m.conn.GetConfig()
	if err != nil {
		return 0, err
	}
	return info.Current, nil
}

// SetCurrent activates a configuration.
func (m *ModelConfigs) SetCurrent(config int) error {
	_, _, err := m.conn.SetConfig(config)
	return err
}

// OperandCount returns the number of operand rows.
func (m *ModelConfigs) OperandCount() (int, error) {
	info, err := m.conn.GetConfig()
	if err != nil {
		return 0, err
	}
	return info.OperandRows, nil
}

// DeleteOperand removes one operand row.
func (m *ModelConfigs) DeleteOperand(n int) error {
	_, err := m.conn.DeleteMCO(n)
	return err
}

// DeleteConfig removes one configuration.
func (m *ModelConfigs) DeleteConfig(n int) error {
	_, err := m.conn.DeleteConfig(n)
	return err
}

// Clear deletes configurations and operand rows down to the single empty
// row the editor always keeps.
func (m *ModelConfigs) Clear() error {
	for {
		n, err := m.Count()
		if err != nil {
			return err
		}
		if n <= 1 {
			break
		}
		if err := m.DeleteConfig(1); err != nil {
			return err
		}
	}
	for {
		n, err := m.OperandCount()
		if err != nil {
			return err
		}
		if n <= 1 {
			break
		}
		if err := m.DeleteOperand(1); err != nil {
			return err
		}
	}
	return nil
}
