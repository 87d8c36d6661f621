package util

import (
	"fmt"
	"io"
	"log"
	"os"
)

// PlotLogger records per-epoch evaluation metrics in a plottable key=value
// form. It writes to the default logger until InitPlotLogger is called.
var PlotLogger *log.Logger = log.Default()

// InitPlotLogger redirects the metrics log to plot_logs_<tag>.txt.
func InitPlotLogger(tag string) {
	fname := fmt.Sprintf("plot_logs_%s.txt", tag)
	file, _ := os.Create(fname)
	mw := io.MultiWriter(file)
	PlotLogger = log.New(mw, "", 0)
}
