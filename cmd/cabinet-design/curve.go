package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/flobutbut/AcuoTune/cabinet"
)

// writeCurveCSV writes frequency_hz,voice_1_db,...,global_db rows.
func writeCurveCSV(path string, c cabinet.Curve) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"frequency_hz"}
	for v := range c.VoicesDB {
		header = append(header, fmt.Sprintf("voice_%d_db", v+1))
	}
	header = append(header, "global_db")
	if err := w.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for i, freq := range c.FrequenciesHz {
		row[0] = strconv.FormatFloat(freq, 'f', 2, 64)
		for v := range c.VoicesDB {
			row[v+1] = strconv.FormatFloat(c.VoicesDB[v][i], 'f', 3, 64)
		}
		row[len(row)-1] = strconv.FormatFloat(c.GlobalDB[i], 'f', 3, 64)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
