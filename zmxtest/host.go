// Package zmxtest provides an in-memory stand-in for the optical design
// host. It speaks the same comma-separated command protocol over the same
// transport shape, holds a live surface model with labels, solves and
// pickups, and records every command it receives so tests can assert on
// traffic as well as state.
package zmxtest

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// solveRec is one installed solve: a type code and its arguments.
type solveRec struct {
	Kind int       `json:"kind"`
	Args []float64 `json:"args,omitempty"`
}

// apertureRec mirrors the surface aperture record.
type apertureRec struct {
	Kind     int     `json:"kind"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	XDec     float64 `json:"xdec"`
	YDec     float64 `json:"ydec"`
	File     string  `json:"file,omitempty"`
}

// nscObject is one object inside a non-sequential group.
type nscObject struct {
	Type    string             `json:"type"`
	Comment string             `json:"comment,omitempty"`
	Ref     int                `json:"ref,omitempty"`
	Params  map[int]float64    `json:"params,omitempty"`
	Pos     map[int]float64    `json:"pos,omitempty"`
	Mat     string             `json:"mat,omitempty"`
	Props   map[string]string  `json:"props,omitempty"`
}

// surfaceRec is one surface of the model. Numeric surface-data columns live
// in Data; the string columns have their own fields.
type surfaceRec struct {
	Label   int32           `json:"label,omitempty"`
	Type    string          `json:"type"`
	Comment string          `json:"comment,omitempty"`
	Glass   string          `json:"glass,omitempty"`
	Coating string          `json:"coating,omitempty"`
	Data    map[int]float64 `json:"data,omitempty"`
	Params  map[int]float64 `json:"params,omitempty"`
	Extra   map[int]float64 `json:"extra,omitempty"`
	Solves  map[int]solveRec `json:"solves,omitempty"`
	Aper    apertureRec     `json:"aper,omitempty"`
	Objects []*nscObject    `json:"objects,omitempty"`
}

func newSurface(typ string) *surfaceRec {
	return &surfaceRec{
		Type:   typ,
		Data:   map[int]float64{},
		Params: map[int]float64{},
		Extra:  map[int]float64{},
		Solves: map[int]solveRec{},
	}
}

// mcoCell is one multi-configuration table cell.
type mcoCell struct {
	Value        string  `json:"value"`
	Status       int     `json:"status"`
	PickupRow    int     `json:"pickup_row"`
	PickupConfig int     `json:"pickup_config"`
	Scale        float64 `json:"scale"`
	Offset       float64 `json:"offset"`
}

// mcoOperand is the operand descriptor of one multi-configuration row.
type mcoOperand struct {
	Kind string `json:"kind"`
	V    [3]int `json:"v"`
}

// systemRec is the model-wide settings state.
type systemRec struct {
	UnitCode    int     `json:"unit_code"`
	StopSurf    int     `json:"stop_surf"`
	RayAiming   int     `json:"ray_aiming"`
	AdjustIndex int     `json:"adjust_index"`
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
	GlobalRef   int     `json:"global_ref"`
	AperKind    int     `json:"aper_kind"`
	AperStop    int     `json:"aper_stop"`
	AperValue   float64 `json:"aper_value"`
}

// Host is the in-memory design host. It satisfies the client's transport
// interface directly, so tests connect with zmx.NewConn(host).
type Host struct {
	mu sync.Mutex

	surfaces []*surfaceRec
	system   systemRec
	props    map[int]string

	configs     int
	current     int
	operandRows int
	mfoRows     int

	primaryWave int
	waves       [][2]float64 // wavelength, weight

	fieldKind int
	fieldNorm int
	fields    [][8]float64

	mcoCells   map[[2]int]mcoCell
	mcoKinds   map[int]mcoOperand
	meritCells map[[2]int]string

	version int
	file    string
	saved   map[string][]byte

	// DenyPush makes PushLens answer as if the host preference forbids it.
	DenyPush bool
	// UpdateStatus, when nonzero, is returned by GetUpdate and GetRefresh
	// to simulate an untraceable model.
	UpdateStatus int

	log []string
}

// New returns a host holding the minimal default model: object, stop and
// image surfaces, millimetre units, one wavelength.
func New() *Host {
	h := &Host{
		version: 131231,
		saved:   map[string][]byte{},
	}
	h.reset()
	return h
}

func (h *Host) reset() {
	obj := newSurface("STANDARD")
	obj.Data[3] = 1e10
	h.surfaces = []*surfaceRec{obj, newSurface("STANDARD"), newSurface("STANDARD")}
	h.system = systemRec{StopSurf: 1, Temperature: 20, Pressure: 1, GlobalRef: 1, AperValue: 10}
	h.props = map[int]string{}
	h.configs = 1
	h.current = 1
	h.operandRows = 1
	h.mfoRows = 1
	h.primaryWave = 1
	h.waves = [][2]float64{{0.55, 1}}
	h.fieldKind = 0
	h.fieldNorm = 0
	h.fields = [][8]float64{{0, 0, 1, 0, 0, 0, 0, 0}}
	h.mcoCells = map[[2]int]mcoCell{}
	h.mcoKinds = map[int]mcoOperand{}
	h.meritCells = map[[2]int]string{}
	h.file = ""
}

// Commands returns a copy of every command received so far.
func (h *Host) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.log...)
}

// ClearCommands discards the command log.
func (h *Host) ClearCommands() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log = nil
}

// SurfaceCount returns the number of surfaces including the object plane.
func (h *Host) SurfaceCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.surfaces)
}

// Close implements the transport interface. The in-memory host has nothing
// to release.
func (h *Host) Close() error { return nil }

// Send dispatches one protocol command and returns its response line.
func (h *Host) Send(cmd string, timeout time.Duration) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log = append(h.log, cmd)
	name, rest, _ := strings.Cut(cmd, ",")
	resp := h.dispatch(name, rest)
	return resp, nil
}

func (h *Host) dispatch(name, rest string) string {
	args := strings.Split(rest, ",")
	if rest == "" {
		args = nil
	}
	switch name {
	case "GetVersion":
		return strconv.Itoa(h.version)
	case "GetSystem":
		return h.systemReply()
	case "SetSystem":
		return h.setSystem(args)
	case "GetSystemAper":
		return fmt.Sprintf("%d,%d,%s", h.system.AperKind, h.system.AperStop, ftoa(h.system.AperValue))
	case "SetSystemAper":
		h.system.AperKind = atoi(arg(args, 0))
		h.system.AperStop = atoi(arg(args, 1))
		h.system.AperValue = atof(arg(args, 2))
		return fmt.Sprintf("%d,%d,%s", h.system.AperKind, h.system.AperStop, ftoa(h.system.AperValue))
	case "GetSystemProperty":
		return h.getSystemProperty(atoi(arg(args, 0)))
	case "SetSystemProperty":
		return h.setSystemProperty(atoi(arg(args, 0)), args[1:])
	case "GetLabel":
		if s := h.at(atoi(arg(args, 0))); s != nil {
			return strconv.Itoa(int(s.Label))
		}
		return "0"
	case "SetLabel":
		if s := h.at(atoi(arg(args, 0))); s != nil {
			s.Label = int32(atoi(arg(args, 1)))
			return strconv.Itoa(int(s.Label))
		}
		return "0"
	case "FindLabel":
		label := int32(atoi(arg(args, 0)))
		for i, s := range h.surfaces {
			if s.Label == label {
				return strconv.Itoa(i)
			}
		}
		return "-1"
	case "GetSurfaceData":
		return h.getSurfaceData(atoi(arg(args, 0)), atoi(arg(args, 1)))
	case "SetSurfaceData":
		return h.setSurfaceData(atoi(arg(args, 0)), atoi(arg(args, 1)), strings.Join(args[2:], ","))
	case "GetSurfaceParameter":
		if s := h.at(atoi(arg(args, 0))); s != nil {
			return ftoa(s.Params[atoi(arg(args, 1))])
		}
		return "0"
	case "SetSurfaceParameter":
		if s := h.at(atoi(arg(args, 0))); s != nil {
			col := atoi(arg(args, 1))
			s.Params[col] = atof(arg(args, 2))
			return ftoa(s.Params[col])
		}
		return "0"
	case "GetExtra":
		if s := h.at(atoi(arg(args, 0))); s != nil {
			return ftoa(s.Extra[atoi(arg(args, 1))])
		}
		return "0"
	case "SetExtra":
		if s := h.at(atoi(arg(args, 0))); s != nil {
			col := atoi(arg(args, 1))
			s.Extra[col] = atof(arg(args, 2))
			return ftoa(s.Extra[col])
		}
		return "0"
	case "GetSolve":
		return h.getSolve(atoi(arg(args, 0)), atoi(arg(args, 1)))
	case "SetSolve":
		return h.setSolve(atoi(arg(args, 0)), atoi(arg(args, 1)), args[2:])
	case "InsertSurface":
		return h.insertSurface(atoi(arg(args, 0)))
	case "DeleteSurface":
		return h.deleteSurface(atoi(arg(args, 0)))
	case "SetAperture":
		return h.setAperture(args)
	case "GetAperture":
		if s := h.at(atoi(arg(args, 0))); s != nil {
			a := s.Aper
			return fmt.Sprintf("%d,%s,%s,%s,%s,%s", a.Kind, ftoa(a.Min), ftoa(a.Max), ftoa(a.XDec), ftoa(a.YDec), a.File)
		}
		return "0,0,0,0,0,"
	case "GetIndex":
		return "1.5,1.5,1.5"
	case "GetUpdate", "GetRefresh":
		if h.UpdateStatus != 0 {
			return strconv.Itoa(h.UpdateStatus)
		}
		h.update()
		return "0"
	case "PushLens":
		if h.DenyPush {
			return "-999"
		}
		return "0"
	case "NewLens":
		h.reset()
		return "0"
	case "SaveFile":
		return h.saveFile(rest)
	case "LoadFile":
		return h.loadFile(args)
	case "GetFile":
		return h.file
	case "GetPath":
		return `C:\ZMX\,C:\ZMX\Samples\`
	case "QuickFocus", "RemoveVariables", "SetVig":
		if name == "RemoveVariables" {
			h.removeVariables()
		}
		return "OK"
	case "GetTextFile":
		return h.getTextFile(args)
	case "GetTrace":
		return h.trace(atoi(arg(args, 2)))
	case "GetTraceDirect":
		return h.trace(atoi(arg(args, 3)))
	case "GetGlobalMatrix":
		return h.globalMatrix(atoi(arg(args, 0)))
	case "GetConfig":
		return fmt.Sprintf("%d,%d,%d", h.current, h.configs, h.operandRows)
	case "SetConfig":
		h.current = atoi(arg(args, 0))
		return fmt.Sprintf("%d,%d,0", h.current, h.configs)
	case "InsertConfig":
		h.configs++
		return strconv.Itoa(h.configs)
	case "DeleteConfig":
		if h.configs > 1 {
			h.configs--
		}
		return strconv.Itoa(h.configs)
	case "InsertMCO":
		h.operandRows++
		return strconv.Itoa(h.operandRows)
	case "DeleteMCO":
		if h.operandRows > 1 {
			h.operandRows--
		}
		return strconv.Itoa(h.operandRows)
	case "InsertMFO":
		h.mfoRows++
		return strconv.Itoa(h.mfoRows)
	case "DeleteMFO":
		if h.mfoRows > 1 {
			h.mfoRows--
		}
		return strconv.Itoa(h.mfoRows)
	case "GetMulticon":
		return h.getMulticon(args)
	case "SetMulticon":
		return h.setMulticon(args)
	case "GetWave":
		return h.getWave(atoi(arg(args, 0)))
	case "SetWave":
		return h.setWave(args)
	case "GetField":
		return h.getField(atoi(arg(args, 0)))
	case "SetField":
		return h.setField(args)
	case "Optimize":
		return "0.000000000E+000"
	case "OperandValue":
		return "0"
	case "GetOperand":
		return h.getOperand(atoi(arg(args, 0)), atoi(arg(args, 1)))
	case "SetOperand":
		return h.setOperand(args)
	case "LoadMerit":
		return fmt.Sprintf("%d,%s", h.operandRows, ftoa(0))
	case "GetNSCData":
		if s := h.at(atoi(arg(args, 0))); s != nil {
			return strconv.Itoa(len(s.Objects))
		}
		return "0"
	case "InsertObject":
		return h.insertObject(atoi(arg(args, 0)), atoi(arg(args, 1)))
	case "GetNSCParameter":
		if o := h.object(atoi(arg(args, 0)), atoi(arg(args, 1))); o != nil {
			return ftoa(o.Params[atoi(arg(args, 2))])
		}
		return "0"
	case "SetNSCParameter":
		if o := h.object(atoi(arg(args, 0)), atoi(arg(args, 1))); o != nil {
			code := atoi(arg(args, 2))
			o.Params[code] = atof(arg(args, 3))
			return ftoa(o.Params[code])
		}
		return "0"
	case "GetNSCProperty":
		return h.getNSCProperty(args)
	case "SetNSCProperty":
		return h.setNSCProperty(args)
	case "SetNSCObjectData":
		return h.setNSCObjectData(args)
	case "SetNSCPosition":
		return h.setNSCPosition(args)
	case "NSCDetectorData":
		return "0"
	case "GetNSCMatrix":
		return "1,0,0,0,1,0,0,0,1,0,0,0"
	case "NSCTrace":
		return "0"
	case "SaveDetector", "ExportCheck":
		return "0"
	case "ExportCAD":
		return "Exporting CAD file"
	}
	return "BAD COMMAND," + name
}
