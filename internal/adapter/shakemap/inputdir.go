package shakemap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

const (
	eventFile       = "event.xml"
	gmpeFile        = "gmpe_set_name.txt"
	faultFileSuffix = "_for-map_fault.txt"
)

// WriteFaultTrace writes the rupture outline as "lat lon depth" lines: the
// top edge, the bottom edge reversed, then the first top point again to
// close the polygon.
func WriteFaultTrace(w io.Writer, edges domain.Edges) error {
	if len(edges.Top) == 0 || len(edges.Bottom) == 0 {
		return fmt.Errorf("write fault trace: empty edges: %w", domain.ErrInvalidGeometry)
	}
	bw := bufio.NewWriter(w)
	line := func(p domain.Point) {
		fmt.Fprintf(bw, "%.4f %.4f %.4f\n", p.Lat, p.Lon, p.Depth)
	}
	for _, p := range edges.Top {
		line(p)
	}
	for i := len(edges.Bottom) - 1; i >= 0; i-- {
		line(edges.Bottom[i])
	}
	line(edges.Top[0])
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write fault trace: %w", err)
	}
	return nil
}

// InputDir returns <shakeHome>/data/<id>/input.
func InputDir(shakeHome, eventID string) string {
	return filepath.Join(shakeHome, "data", eventID, "input")
}

// WriteInputDir lays out the ShakeMap input directory for sc under
// shakeHome and returns its path. The fault file is skipped for point
// sources and the GMPE set name file when gmpe is empty.
func WriteInputDir(shakeHome string, sc domain.Scenario, gmpe string) (string, error) {
	dir := InputDir(shakeHome, sc.Event.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create input dir: %w", err)
	}

	if err := writeFile(filepath.Join(dir, eventFile), func(w io.Writer) error {
		return WriteEventXML(w, sc.Event)
	}); err != nil {
		return "", err
	}

	if sc.Rupture != nil {
		if err := writeFile(filepath.Join(dir, sc.Event.ID+faultFileSuffix), func(w io.Writer) error {
			return WriteFaultTrace(w, sc.Edges)
		}); err != nil {
			return "", err
		}
	}

	if gmpe != "" {
		if err := os.WriteFile(filepath.Join(dir, gmpeFile), []byte(gmpe), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", gmpeFile, err)
		}
	}
	return dir, nil
}

func writeFile(path string, fill func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", filepath.Base(path), cerr)
		}
	}()
	return fill(f)
}
