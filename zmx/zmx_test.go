package zmx_test

import (
	"errors"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/optikforge/zmxlink/zmx"
	"github.com/optikforge/zmxlink/zmxtest"
)

func newConn(t *testing.T) (*zmx.Conn, *zmxtest.Host) {
	t.Helper()
	host := zmxtest.New()
	return zmx.NewConn(host), host
}

func TestGetSystemDefaults(t *testing.T) {
	conn, _ := newConn(t)
	sys, err := conn.GetSystem()
	if err != nil {
		t.Fatalf("GetSystem: %v", err)
	}
	if sys.NumSurfs != 2 {
		t.Errorf("NumSurfs = %d, want 2", sys.NumSurfs)
	}
	if sys.StopSurf != 1 {
		t.Errorf("StopSurf = %d, want 1", sys.StopSurf)
	}
	if sys.Temperature != 20 {
		t.Errorf("Temperature = %g, want 20", sys.Temperature)
	}
	if sys.Pressure != 1 {
		t.Errorf("Pressure = %g, want 1", sys.Pressure)
	}
}

func TestSetSystemRoundTrip(t *testing.T) {
	conn, _ := newConn(t)
	sys, err := conn.SetSystem(2, 1, 1, true, 25, 0.5, 1)
	if err != nil {
		t.Fatalf("SetSystem: %v", err)
	}
	if sys.UnitCode != 2 {
		t.Errorf("UnitCode = %d, want 2", sys.UnitCode)
	}
	if sys.RayAimingType != 1 {
		t.Errorf("RayAimingType = %d, want 1", sys.RayAimingType)
	}
	if sys.AdjustIndex != 1 {
		t.Errorf("AdjustIndex = %d, want 1", sys.AdjustIndex)
	}
	if sys.Temperature != 25 {
		t.Errorf("Temperature = %g, want 25", sys.Temperature)
	}
}

func TestLabels(t *testing.T) {
	conn, _ := newConn(t)
	if err := conn.SetLabel(1, 42); err != nil {
		t.Fatalf("SetLabel: %v", err)
	}
	label, err := conn.GetLabel(1)
	if err != nil {
		t.Fatalf("GetLabel: %v", err)
	}
	if label != 42 {
		t.Errorf("GetLabel = %d, want 42", label)
	}
	surf, err := conn.FindLabel(42)
	if err != nil {
		t.Fatalf("FindLabel: %v", err)
	}
	if surf != 1 {
		t.Errorf("FindLabel = %d, want 1", surf)
	}

	_, err = conn.FindLabel(999)
	var notFound *zmx.LabelNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("FindLabel(999) error = %v, want LabelNotFoundError", err)
	}
	if notFound.Label != 999 {
		t.Errorf("Label = %d, want 999", notFound.Label)
	}
}

func TestInsertAndDeleteSurface(t *testing.T) {
	conn, host := newConn(t)
	if err := conn.InsertSurface(1); err != nil {
		t.Fatalf("InsertSurface: %v", err)
	}
	if got := host.SurfaceCount(); got != 4 {
		t.Errorf("surface count after insert = %d, want 4", got)
	}
	if err := conn.DeleteSurface(1); err != nil {
		t.Fatalf("DeleteSurface: %v", err)
	}
	if got := host.SurfaceCount(); got != 3 {
		t.Errorf("surface count after delete = %d, want 3", got)
	}
}

func TestPushLensDenied(t *testing.T) {
	conn, host := newConn(t)
	if err := conn.PushLens(); err != nil {
		t.Fatalf("PushLens: %v", err)
	}
	host.DenyPush = true
	err := conn.PushLens()
	var hostErr *zmx.HostError
	if !errors.As(err, &hostErr) {
		t.Fatalf("PushLens error = %v, want HostError", err)
	}
	if hostErr.Status != -999 {
		t.Errorf("Status = %d, want -999", hostErr.Status)
	}
}

func TestGetUpdateUntraceable(t *testing.T) {
	conn, host := newConn(t)
	if err := conn.GetUpdate(); err != nil {
		t.Fatalf("GetUpdate: %v", err)
	}
	host.UpdateStatus = 3
	err := conn.GetUpdate()
	var untraceable *zmx.UntraceableError
	if !errors.As(err, &untraceable) {
		t.Fatalf("GetUpdate error = %v, want UntraceableError", err)
	}
	if untraceable.Status != 3 {
		t.Errorf("Status = %d, want 3", untraceable.Status)
	}
}

func TestSaveAndLoadFileRestoresModel(t *testing.T) {
	conn, _ := newConn(t)
	path := filepath.Join(t.TempDir(), "model.zmx")

	if _, err := conn.SetSurfaceData(1, 3, 5.0); err != nil {
		t.Fatalf("SetSurfaceData: %v", err)
	}
	if err := conn.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if _, err := conn.SetSurfaceData(1, 3, 9.0); err != nil {
		t.Fatalf("SetSurfaceData: %v", err)
	}
	if err := conn.LoadFile(path, 0); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	raw, err := conn.GetSurfaceData(1, 3)
	if err != nil {
		t.Fatalf("GetSurfaceData: %v", err)
	}
	thickness, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	if thickness != 5.0 {
		t.Errorf("thickness after load = %g, want 5", thickness)
	}
}

func TestGetGlobalMatrixAtVertex(t *testing.T) {
	conn, _ := newConn(t)
	r, off, err := conn.GetGlobalMatrix(0)
	if err != nil {
		t.Fatalf("GetGlobalMatrix: %v", err)
	}
	ident := zmx.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if r != ident {
		t.Errorf("rotation = %v, want identity", r)
	}
	if off != (zmx.Vec3{}) {
		t.Errorf("offset = %v, want zero", off)
	}
}

func TestGetTraceParsesRayNode(t *testing.T) {
	conn, _ := newConn(t)
	node, err := conn.GetTrace(1, 0, 1, [2]float64{0, 0}, [2]float64{0, 1})
	if err != nil {
		t.Fatalf("GetTrace: %v", err)
	}
	if node.Status != 0 || node.VigCode != 0 {
		t.Errorf("status = %d, vig = %d, want 0, 0", node.Status, node.VigCode)
	}
	if node.ExitCosines != (zmx.Vec3{0, 0, 1}) {
		t.Errorf("exit cosines = %v", node.ExitCosines)
	}
	if node.Intensity != 1 {
		t.Errorf("intensity = %g, want 1", node.Intensity)
	}
}

type scriptedTransport struct {
	resp string
	cmds []string
}

func (s *scriptedTransport) Send(cmd string, timeout time.Duration) (string, error) {
	s.cmds = append(s.cmds, cmd)
	return s.resp, nil
}

func (s *scriptedTransport) Close() error { return nil }

func TestBadCommandResponse(t *testing.T) {
	conn := zmx.NewConn(&scriptedTransport{resp: "BAD COMMAND,GetVersion"})
	_, err := conn.GetVersion()
	var bad *zmx.BadCommandError
	if !errors.As(err, &bad) {
		t.Fatalf("error = %v, want BadCommandError", err)
	}
}

func TestGetTextFileSendsPathVerbatim(t *testing.T) {
	tr := &scriptedTransport{resp: "OK"}
	conn := zmx.NewConn(tr)

	_, err := conn.GetTextFile(`C:\Reports\out.txt`, "Sur", `C:\Reports\sur.cfg`, 1, time.Second)
	if err != nil {
		t.Fatalf("GetTextFile: %v", err)
	}
	want := `GetTextFile,"C:\Reports\out.txt",Sur,"C:\Reports\sur.cfg",1`
	if got := tr.cmds[0]; got != want {
		t.Errorf("command = %q, want %q", got, want)
	}
}

func TestNSCTraceSendsFilterVerbatim(t *testing.T) {
	tr := &scriptedTransport{resp: "0"}
	conn := zmx.NewConn(tr)

	_, err := conn.NSCTrace(zmx.NSCTraceOptions{
		Save:         true,
		SaveFilename: "rays.zrd",
		Filter:       `H2\L3`,
	})
	if err != nil {
		t.Fatalf("NSCTrace: %v", err)
	}
	want := `NSCTrace,1,0,0,0,0,0,0,1,rays.zrd,"H2\L3",0`
	if got := tr.cmds[0]; got != want {
		t.Errorf("command = %q, want %q", got, want)
	}
}

func TestExportCADTranslatesNegativeArguments(t *testing.T) {
	conn, host := newConn(t)

	_, err := conn.ExportCAD("assembly.igs", zmx.ExportCADOptions{Last: -1, Config: -1})
	if err != nil {
		t.Fatalf("ExportCAD: %v", err)
	}
	// one configuration and two surfaces in the default model, so
	// config -1 becomes 1-(-1) = 2 and last -1 becomes 2-(-1)+1 = 4
	cmds := host.Commands()
	got := cmds[len(cmds)-1]
	want := "ExportCAD,assembly.igs,0,0,0,4,0,0,0,0,0,0,0,0,0," +
		"0.00000000000000000000E+00,0,0,0,2"
	if got != want {
		t.Errorf("command = %q, want %q", got, want)
	}
}

func TestSocketTransport(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	host := zmxtest.New()
	go host.Serve(l)

	conn, err := zmx.Dial("tcp", l.Addr().String(), zmx.WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	v, err := conn.GetVersion()
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if v != 131231 {
		t.Errorf("version = %d, want 131231", v)
	}
}
