package zmxtest

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func atoi(s string) int {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return int(v)
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'E', 9, 64)
}

func (h *Host) at(n int) *surfaceRec {
	if n < 0 || n >= len(h.surfaces) {
		return nil
	}
	return h.surfaces[n]
}

func (h *Host) nonAxial() int {
	for _, s := range h.surfaces {
		if s.Type == "COORDBRK" {
			return 1
		}
	}
	return 0
}

func (h *Host) systemReply() string {
	sys := h.system
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d,%s,%s,%d",
		len(h.surfaces)-1, sys.UnitCode, sys.StopSurf, h.nonAxial(), sys.RayAiming,
		sys.AdjustIndex, ftoa(sys.Temperature), ftoa(sys.Pressure), sys.GlobalRef)
}

func (h *Host) setSystem(args []string) string {
	h.system.UnitCode = atoi(arg(args, 0))
	h.system.StopSurf = atoi(arg(args, 1))
	h.system.RayAiming = atoi(arg(args, 2))
	h.system.AdjustIndex = atoi(arg(args, 3))
	h.system.Temperature = atof(arg(args, 4))
	h.system.Pressure = atof(arg(args, 5))
	h.system.GlobalRef = atoi(arg(args, 6))
	return h.systemReply()
}

func (h *Host) getSystemProperty(code int) string {
	if code == 21 {
		return strconv.Itoa(h.system.GlobalRef)
	}
	if v, ok := h.props[code]; ok {
		return v
	}
	return "0"
}

func (h *Host) setSystemProperty(code int, args []string) string {
	value := strings.Join(args, ",")
	if code == 21 {
		h.system.GlobalRef = atoi(value)
		return strconv.Itoa(h.system.GlobalRef)
	}
	h.props[code] = value
	return value
}

func (h *Host) getSurfaceData(n, code int) string {
	s := h.at(n)
	if s == nil {
		return "0"
	}
	switch code {
	case 0:
		return s.Type
	case 1:
		return s.Comment
	case 4:
		return s.Glass
	case 7:
		return s.Coating
	}
	return ftoa(s.Data[code])
}

func (h *Host) setSurfaceData(n, code int, value string) string {
	s := h.at(n)
	if s == nil {
		return "0"
	}
	switch code {
	case 0:
		s.Type = value
		return s.Type
	case 1:
		s.Comment = value
		return s.Comment
	case 4:
		s.Glass = value
		return s.Glass
	case 7:
		s.Coating = value
		return s.Coating
	}
	s.Data[code] = atof(value)
	return ftoa(s.Data[code])
}

func (h *Host) getSolve(n, category int) string {
	s := h.at(n)
	if s == nil {
		return "0"
	}
	rec, ok := s.Solves[category]
	if !ok {
		return "0"
	}
	parts := []string{strconv.Itoa(rec.Kind)}
	for _, a := range rec.Args {
		parts = append(parts, ftoa(a))
	}
	return strings.Join(parts, ",")
}

func (h *Host) setSolve(n, category int, args []string) string {
	s := h.at(n)
	if s == nil {
		return "0"
	}
	kind := atoi(arg(args, 0))
	rec := solveRec{Kind: kind}
	for _, a := range args[1:] {
		rec.Args = append(rec.Args, atof(a))
	}
	if kind == 0 && category != 3 {
		delete(s.Solves, category)
	} else {
		s.Solves[category] = rec
	}
	return h.getSolve(n, category)
}

func (h *Host) insertSurface(n int) string {
	if n < 1 || n > len(h.surfaces) {
		return "-1"
	}
	s := newSurface("STANDARD")
	h.surfaces = append(h.surfaces[:n], append([]*surfaceRec{s}, h.surfaces[n:]...)...)
	return "0"
}

func (h *Host) deleteSurface(n int) string {
	if n < 1 || n >= len(h.surfaces) || len(h.surfaces) <= 2 {
		return "-1"
	}
	h.surfaces = append(h.surfaces[:n], h.surfaces[n+1:]...)
	return "0"
}

func (h *Host) setAperture(args []string) string {
	s := h.at(atoi(arg(args, 0)))
	if s == nil {
		return "0"
	}
	s.Aper = apertureRec{
		Kind: atoi(arg(args, 1)),
		Min:  atof(arg(args, 2)),
		Max:  atof(arg(args, 3)),
		XDec: atof(arg(args, 4)),
		YDec: atof(arg(args, 5)),
		File: arg(args, 6),
	}
	return strconv.Itoa(s.Aper.Kind)
}

// snapshot is what SaveFile persists and LoadFile restores.
type snapshot struct {
	Surfaces []*surfaceRec `json:"surfaces"`
	System   systemRec     `json:"system"`
}

func (h *Host) saveFile(path string) string {
	data, err := json.Marshal(snapshot{Surfaces: h.surfaces, System: h.system})
	if err != nil {
		return "-999"
	}
	h.saved[path] = data
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "-999"
	}
	h.file = path
	return "0"
}

func (h *Host) loadFile(args []string) string {
	// the append position is the last argument; the path may contain commas
	path := strings.Join(args[:len(args)-1], ",")
	data, ok := h.saved[path]
	if !ok {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return "-999"
		}
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return "-999"
	}
	h.surfaces = snap.Surfaces
	h.system = snap.System
	h.file = path
	return "0"
}

func (h *Host) removeVariables() {
	for _, s := range h.surfaces {
		for cat, rec := range s.Solves {
			if rec.Kind == 1 {
				delete(s.Solves, cat)
			}
		}
	}
}

func (h *Host) getWave(n int) string {
	if n == 0 {
		return fmt.Sprintf("%d,%d", h.primaryWave, len(h.waves))
	}
	if n < 1 || n > len(h.waves) {
		return "0,0"
	}
	w := h.waves[n-1]
	return fmt.Sprintf("%s,%s", ftoa(w[0]), ftoa(w[1]))
}

func (h *Host) setWave(args []string) string {
	n := atoi(arg(args, 0))
	if n == 0 {
		h.primaryWave = atoi(arg(args, 1))
		count := atoi(arg(args, 2))
		for len(h.waves) < count {
			h.waves = append(h.waves, [2]float64{0.55, 1})
		}
		if count > 0 && count < len(h.waves) {
			h.waves = h.waves[:count]
		}
		return fmt.Sprintf("%d,%d", h.primaryWave, len(h.waves))
	}
	if n >= 1 && n <= len(h.waves) {
		h.waves[n-1] = [2]float64{atof(arg(args, 1)), atof(arg(args, 2))}
		return fmt.Sprintf("%s,%s", ftoa(h.waves[n-1][0]), ftoa(h.waves[n-1][1]))
	}
	return "0,0"
}

func (h *Host) fieldMax() (x, y float64) {
	for _, f := range h.fields {
		if v := math.Abs(f[0]); v > x {
			x = v
		}
		if v := math.Abs(f[1]); v > y {
			y = v
		}
	}
	return x, y
}

func (h *Host) fieldReply(n int) string {
	if n == 0 {
		mx, my := h.fieldMax()
		return fmt.Sprintf("%d,%d,%s,%s,%d",
			h.fieldKind, len(h.fields), ftoa(mx), ftoa(my), h.fieldNorm)
	}
	if n < 1 || n > len(h.fields) {
		return strings.TrimSuffix(strings.Repeat(ftoa(0)+",", 8), ",")
	}
	f := h.fields[n-1]
	parts := make([]string, len(f))
	for i, v := range f {
		parts[i] = ftoa(v)
	}
	return strings.Join(parts, ",")
}

func (h *Host) getField(n int) string {
	return h.fieldReply(n)
}

func (h *Host) setField(args []string) string {
	n := atoi(arg(args, 0))
	if n == 0 {
		h.fieldKind = atoi(arg(args, 1))
		count := atoi(arg(args, 2))
		h.fieldNorm = atoi(arg(args, 3))
		for len(h.fields) < count {
			h.fields = append(h.fields, [8]float64{0, 0, 1, 0, 0, 0, 0, 0})
		}
		if count > 0 && count < len(h.fields) {
			h.fields = h.fields[:count]
		}
		return h.fieldReply(0)
	}
	if n >= 1 && n <= len(h.fields) {
		var f [8]float64
		for i := range f {
			f[i] = atof(arg(args, i+1))
		}
		h.fields[n-1] = f
	}
	return h.fieldReply(n)
}

func (h *Host) mcoReply(config, row int) string {
	if config == 0 {
		op, ok := h.mcoKinds[row]
		if !ok {
			op = mcoOperand{Kind: "MOFF"}
		}
		return fmt.Sprintf("%s,%d,%d,%d", op.Kind, op.V[0], op.V[1], op.V[2])
	}
	cell, ok := h.mcoCells[[2]int{config, row}]
	if !ok {
		cell = mcoCell{Value: "0"}
	}
	return fmt.Sprintf("%s,%d,%d,%d,%d,%d,%s,%s",
		cell.Value, h.configs, h.operandRows, cell.Status, cell.PickupRow, cell.PickupConfig,
		ftoa(cell.Scale), ftoa(cell.Offset))
}

func (h *Host) getMulticon(args []string) string {
	return h.mcoReply(atoi(arg(args, 0)), atoi(arg(args, 1)))
}

func (h *Host) setMulticon(args []string) string {
	config := atoi(arg(args, 0))
	row := atoi(arg(args, 1))
	if config == 0 {
		h.mcoKinds[row] = mcoOperand{
			Kind: arg(args, 2),
			V:    [3]int{atoi(arg(args, 3)), atoi(arg(args, 4)), atoi(arg(args, 5))},
		}
		return h.mcoReply(0, row)
	}
	h.mcoCells[[2]int{config, row}] = mcoCell{
		Value:        arg(args, 2),
		Status:       atoi(arg(args, 3)),
		PickupRow:    atoi(arg(args, 4)),
		PickupConfig: atoi(arg(args, 5)),
		Scale:        atof(arg(args, 6)),
		Offset:       atof(arg(args, 7)),
	}
	return h.mcoReply(config, row)
}

func (h *Host) getOperand(row, col int) string {
	if v, ok := h.meritCells[[2]int{row, col}]; ok {
		return v
	}
	if col == 1 {
		return "BLNK"
	}
	return "0"
}

func (h *Host) setOperand(args []string) string {
	row := atoi(arg(args, 0))
	col := atoi(arg(args, 1))
	h.meritCells[[2]int{row, col}] = arg(args, 2)
	return h.getOperand(row, col)
}

// trace returns a fixed vertex intersection in the surface's local frame:
// position at the vertex, exit along local z, normal against it.
func (h *Host) trace(surf int) string {
	if h.at(surf) == nil {
		return "-1,0,0,0,0,0,0,0,0,0,0,0"
	}
	return "0,0," +
		ftoa(0) + "," + ftoa(0) + "," + ftoa(0) + "," +
		ftoa(0) + "," + ftoa(0) + "," + ftoa(1) + "," +
		ftoa(0) + "," + ftoa(0) + "," + ftoa(-1) + "," +
		ftoa(1)
}

// getTextFile writes a canned report to the requested path. The detector
// viewer kind gets a parseable pixel grid; everything else a plain header.
func (h *Host) getTextFile(args []string) string {
	joined := strings.Join(args, ",")
	parts := strings.SplitN(joined, ",", 2)
	path := strings.Trim(parts[0], `"`)
	rest := ""
	if len(parts) > 1 {
		rest = parts[1]
	}
	kind, _, _ := strings.Cut(rest, ",")

	var body string
	if kind == "Dvr" {
		body = "Detector Viewer\r\n" +
			"Detector 1, NSCG Surface 1, Object 1\r\n" +
			"Size 2.000 W X 2.000 H, Pixels 3 W X 2 H, Total Hits = 100\r\n" +
			"Smoothing: None\r\n" +
			"\t1\t2\t3\r\n" +
			" 1\t0.1\t0.2\t0.3\r\n" +
			" 2\t0.4\t0.5\t0.6\r\n"
	} else {
		body = "Listing (" + kind + ")\r\nFile : " + h.file + "\r\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "-999"
	}
	return "OK"
}

func (h *Host) object(surf, slot int) *nscObject {
	s := h.at(surf)
	if s == nil || slot < 1 || slot > len(s.Objects) {
		return nil
	}
	return s.Objects[slot-1]
}

func (h *Host) insertObject(surf, slot int) string {
	s := h.at(surf)
	if s == nil || slot < 1 || slot > len(s.Objects)+1 {
		return "-1"
	}
	o := &nscObject{Type: "NSC_NULL", Params: map[int]float64{}, Pos: map[int]float64{}, Props: map[string]string{}}
	s.Objects = append(s.Objects[:slot-1], append([]*nscObject{o}, s.Objects[slot-1:]...)...)
	return "0"
}

func (h *Host) getNSCProperty(args []string) string {
	o := h.object(atoi(arg(args, 0)), atoi(arg(args, 1)))
	if o == nil {
		return "0"
	}
	code := atoi(arg(args, 2))
	face := 0
	if len(args) > 3 {
		face = atoi(arg(args, 3))
	}
	if code == 0 {
		return o.Type
	}
	return o.Props[fmt.Sprintf("%d/%d", code, face)]
}

func (h *Host) setNSCProperty(args []string) string {
	o := h.object(atoi(arg(args, 0)), atoi(arg(args, 1)))
	if o == nil {
		return "0"
	}
	code := atoi(arg(args, 2))
	face := atoi(arg(args, 3))
	value := strings.Join(args[4:], ",")
	if code == 0 {
		o.Type = value
		return o.Type
	}
	o.Props[fmt.Sprintf("%d/%d", code, face)] = value
	return value
}

func (h *Host) setNSCObjectData(args []string) string {
	o := h.object(atoi(arg(args, 0)), atoi(arg(args, 1)))
	if o == nil {
		return "0"
	}
	code := atoi(arg(args, 2))
	value := strings.Join(args[3:], ",")
	switch code {
	case 0:
		o.Type = value
		return o.Type
	case 1:
		o.Comment = value
		return o.Comment
	case 5:
		o.Ref = atoi(value)
		return strconv.Itoa(o.Ref)
	}
	o.Props[fmt.Sprintf("data%d", code)] = value
	return value
}

func (h *Host) setNSCPosition(args []string) string {
	o := h.object(atoi(arg(args, 0)), atoi(arg(args, 1)))
	if o == nil {
		return "0"
	}
	code := atoi(arg(args, 2))
	value := strings.Join(args[3:], ",")
	if code == 7 {
		o.Mat = value
		return o.Mat
	}
	o.Pos[code] = atof(value)
	return ftoa(o.Pos[code])
}
