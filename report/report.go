// Package report retrieves analysis text reports from the design host. The
// host only writes reports to files, so retrieval goes through a temporary
// file that is removed after parsing. Report files come back in whatever
// encoding the host build favours, so decoding honours a leading byte order
// mark and falls back to UTF-8.
package report

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/optikforge/zmxlink/internal/paths"
	"github.com/optikforge/zmxlink/zmx"
)

// Fetch runs the text analysis identified by its three-letter kind code and
// returns the report as lines. settingsPath selects a saved settings file
// for the analysis; empty uses the defaults. flag 0 uses default settings,
// 1 the settings file, 2 the settings file updating it afterwards.
func Fetch(c *zmx.Conn, kind, settingsPath string, flag int, timeout time.Duration) ([]string, error) {
	dir := paths.CacheDir()
	if err := paths.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("report %s: %w", kind, err)
	}
	f, err := os.CreateTemp(dir, "report-*.txt")
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", kind, err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	resp, err := c.GetTextFile(path, kind, settingsPath, flag, timeout)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp) == "-999" {
		return nil, &zmx.FileIOError{Op: "GetTextFile", Path: path}
	}
	return readLines(path)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(f, decoder))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	return lines, nil
}

// Grid is a detector viewer pixel array. Data is indexed row-major as
// Data[y][x].
type Grid struct {
	Width  int
	Height int
	Data   [][]float64
}

var (
	gridSizePattern = regexp.MustCompile(`.*Pixels\s(\d+)\sW\sX\s(\d+)\s`)
	gridColsPattern = regexp.MustCompile(`^\s*1\s`)
)

// DetectorGrid runs the detector viewer analysis and parses its report into
// a pixel grid.
func DetectorGrid(c *zmx.Conn, settingsPath string, timeout time.Duration) (*Grid, error) {
	flag := 0
	if settingsPath != "" {
		flag = 1
	}
	lines, err := Fetch(c, "Dvr", settingsPath, flag, timeout)
	if err != nil {
		return nil, err
	}
	return ParseDetectorGrid(lines)
}

// ParseDetectorGrid extracts the pixel array from detector viewer report
// lines: the array size from the "Pixels W X H" header, then one row of
// tab-separated values per pixel row after the column number row.
func ParseDetectorGrid(lines []string) (*Grid, error) {
	i := 0
	var w, h int
	for ; ; i++ {
		if i >= len(lines) {
			return nil, fmt.Errorf("detector report has no pixel size header")
		}
		if m := gridSizePattern.FindStringSubmatch(lines[i]); m != nil {
			w, _ = strconv.Atoi(m[1])
			h, _ = strconv.Atoi(m[2])
			break
		}
	}
	for i++; ; i++ {
		if i >= len(lines) {
			return nil, fmt.Errorf("detector report has no data rows")
		}
		if gridColsPattern.MatchString(lines[i]) {
			break
		}
	}
	g := &Grid{Width: w, Height: h, Data: make([][]float64, h)}
	for y := 0; y < h; y++ {
		i++
		if i >= len(lines) {
			return nil, fmt.Errorf("detector report truncated at row %d of %d", y, h)
		}
		cells := strings.Split(lines[i], "\t")
		if len(cells) < w+1 {
			return nil, fmt.Errorf("detector row %d has %d cells, want %d", y, len(cells), w+1)
		}
		row := make([]float64, w)
		for x := 0; x < w; x++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(cells[x+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("detector row %d col %d: parse %q: %w", y, x, cells[x+1], err)
			}
			row[x] = v
		}
		g.Data[y] = row
	}
	return g, nil
}
