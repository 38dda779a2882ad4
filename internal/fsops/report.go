package fsops

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Action — что произошло с узлом.
type Action int

const (
	DirCreated Action = iota + 1
	DirExists
	FileCreated
	FileExists
)

func (a Action) String() string {
	switch a {
	case DirCreated:
		return "dir created"
	case DirExists:
		return "dir exists"
	case FileCreated:
		return "file created"
	case FileExists:
		return "file exists"
	default:
		return "unknown"
	}
}

// Event — одна строка прогресса.
type Event struct {
	Action Action
	Path   string
	DryRun bool
}

// Reporter получает события прогресса в порядке обхода.
type Reporter interface {
	Report(Event)
}

type nopReporter struct{}

func (nopReporter) Report(Event) {}

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	infoMark = color.New(color.FgCyan).SprintFunc()
	dryMark  = color.New(color.FgYellow).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

// ConsoleReporter печатает события построчно в w.
// Существующие каталоги показываются только в подробном режиме.
type ConsoleReporter struct {
	w       io.Writer
	verbose bool
}

func NewConsoleReporter(w io.Writer, verbose bool) *ConsoleReporter {
	return &ConsoleReporter{w: w, verbose: verbose}
}

func (r *ConsoleReporter) Report(e Event) {
	switch e.Action {
	case DirCreated:
		if e.DryRun {
			fmt.Fprintf(r.w, "%s Would create directory: %s\n", dryMark("➕"), e.Path)
			return
		}
		fmt.Fprintf(r.w, "%s Created directory: %s\n", okMark("✅"), e.Path)

	case FileCreated:
		if e.DryRun {
			fmt.Fprintf(r.w, "%s Would create file: %s\n", dryMark("➕"), e.Path)
			return
		}
		fmt.Fprintf(r.w, "%s Created file: %s\n", okMark("✅"), e.Path)

	case FileExists:
		fmt.Fprintf(r.w, "%s File already exists: %s\n", infoMark("ℹ️"), e.Path)

	case DirExists:
		if r.verbose {
			fmt.Fprintf(r.w, "%s\n", dimText("· Directory exists: "+e.Path))
		}
	}
}
