package valuation

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
)

// WriteScheduleCSV writes the schedule with display rounding: volumes to
// whole units, currency to 2 decimal places.
func WriteScheduleCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"period",
		"price",
		"injection",
		"withdrawal",
		"net_flow",
		"ending_inventory",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range res.Schedule {
		row := []string{
			r.Label,
			fmtCurrency(r.Price),
			fmtVolume(r.Injection),
			fmtVolume(r.Withdrawal),
			fmtVolume(r.NetFlow),
			fmtVolume(r.EndingInventory),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

// WriteScheduleCSVFile is a convenience wrapper for the CLI.
func WriteScheduleCSVFile(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteScheduleCSV(f, res)
}

func fmtVolume(x float64) string {
	return strconv.FormatFloat(math.Round(x), 'f', 0, 64)
}

func fmtCurrency(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
