package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

const (
	generationsFile = "generations.csv"
	windowsFile     = "windows.csv"
)

// OutputManager appends samples and window stats to CSV files in one directory.
type OutputManager struct {
	dir             string
	generationsFile *os.File
	windowsFile     *os.File

	generationsHeaderWritten bool
	windowsHeaderWritten     bool
}

// NewOutputManager creates the output directory and both CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, generationsFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", generationsFile, err)
	}
	om.generationsFile = f

	f, err = os.Create(filepath.Join(dir, windowsFile))
	if err != nil {
		om.generationsFile.Close()
		return nil, fmt.Errorf("creating %s: %w", windowsFile, err)
	}
	om.windowsFile = f
	return om, nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteSamples appends generation samples.
func (om *OutputManager) WriteSamples(samples []Sample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}
	if !om.generationsHeaderWritten {
		if err := gocsv.Marshal(&samples, om.generationsFile); err != nil {
			return fmt.Errorf("writing generations: %w", err)
		}
		om.generationsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(&samples, om.generationsFile); err != nil {
		return fmt.Errorf("writing generations: %w", err)
	}
	return nil
}

// WriteWindows appends window stats.
func (om *OutputManager) WriteWindows(windows []WindowStats) error {
	if om == nil || len(windows) == 0 {
		return nil
	}
	if !om.windowsHeaderWritten {
		if err := gocsv.Marshal(&windows, om.windowsFile); err != nil {
			return fmt.Errorf("writing windows: %w", err)
		}
		om.windowsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(&windows, om.windowsFile); err != nil {
		return fmt.Errorf("writing windows: %w", err)
	}
	return nil
}

// Drain writes everything the collector has buffered.
func (om *OutputManager) Drain(c *Collector) error {
	samples, windows := c.Drain()
	return errors.Join(om.WriteSamples(samples), om.WriteWindows(windows))
}

// Close flushes and closes both files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.generationsFile.Close(), om.windowsFile.Close())
}
