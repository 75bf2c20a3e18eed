package report_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/optikforge/zmxlink/report"
	"github.com/optikforge/zmxlink/zmx"
	"github.com/optikforge/zmxlink/zmxtest"
)

func TestParseDetectorGrid(t *testing.T) {
	lines := []string{
		"Detector Viewer",
		"Detector 2, NSCG Surface 1, Object 3",
		"Size 4.000 W X 4.000 H, Pixels 2 W X 2 H, Total Hits = 8",
		"",
		"\t1\t2",
		" 1\t0.5\t1.5",
		" 2\t2.5\t3.5",
	}
	g, err := report.ParseDetectorGrid(lines)
	require.NoError(t, err)
	require.Equal(t, 2, g.Width)
	require.Equal(t, 2, g.Height)
	require.Equal(t, [][]float64{{0.5, 1.5}, {2.5, 3.5}}, g.Data)
}

func TestParseDetectorGridMissingHeader(t *testing.T) {
	_, err := report.ParseDetectorGrid([]string{"no pixels here"})
	require.ErrorContains(t, err, "pixel size header")
}

func TestParseDetectorGridTruncated(t *testing.T) {
	lines := []string{
		"Pixels 2 W X 3 H, Total Hits = 0",
		"\t1\t2",
		" 1\t0\t0",
	}
	_, err := report.ParseDetectorGrid(lines)
	require.ErrorContains(t, err, "truncated")
}

func TestDetectorGridFromHost(t *testing.T) {
	host := zmxtest.New()
	conn := zmx.NewConn(host)

	g, err := report.DetectorGrid(conn, "", 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, 3, g.Width)
	require.Equal(t, 2, g.Height)
	require.Equal(t, [][]float64{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}, g.Data)
}

// utf16Host writes its report body UTF-16 encoded with a byte order mark,
// the way some host builds export text.
type utf16Host struct{}

func (utf16Host) Send(cmd string, timeout time.Duration) (string, error) {
	parts := strings.Split(cmd, `"`)
	if len(parts) < 2 {
		return "-999", nil
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	body, err := enc.String("Listing\r\nsecond line\r\n")
	if err != nil {
		return "-999", nil
	}
	if err := os.WriteFile(parts[1], []byte(body), 0o644); err != nil {
		return "-999", nil
	}
	return "OK", nil
}

func (utf16Host) Close() error { return nil }

func TestFetchDecodesByteOrderMark(t *testing.T) {
	conn := zmx.NewConn(utf16Host{})
	lines, err := report.Fetch(conn, "Lst", "", 0, time.Second)
	require.NoError(t, err)
	require.Equal(t, []string{"Listing", "second line"}, lines)
}

type refusingHost struct{}

func (refusingHost) Send(cmd string, timeout time.Duration) (string, error) { return "-999", nil }

func (refusingHost) Close() error { return nil }

func TestFetchReportsFileError(t *testing.T) {
	conn := zmx.NewConn(refusingHost{})
	_, err := report.Fetch(conn, "Dvr", "", 0, time.Second)
	var fileErr *zmx.FileIOError
	require.ErrorAs(t, err, &fileErr)
}
