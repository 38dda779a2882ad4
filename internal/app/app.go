package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"appstruct/internal/fsops"
	"appstruct/internal/plan"
	"appstruct/internal/skeleton"
)

// Options — все настройки запуска утилиты.
type Options struct {
	BaseDir  string // пусто — текущий каталог
	DryRun   bool
	Verbose  bool
	Quiet    bool
	DirPerm  os.FileMode
	FilePerm os.FileMode
	Version  string

	Stdout io.Writer
	Stderr io.Writer
}

// Run — главная функция приложения: берёт встроенный каркас и применяет его к базовому каталогу.
func Run(o Options) error {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	log := NewLogger(o)

	// 1) Каркас строится один раз и дальше только читается.
	p, err := skeleton.Plan()
	if err != nil {
		return err
	}

	// 2) Базовый каталог.
	base, err := resolveBase(o.BaseDir)
	if err != nil {
		return err
	}
	dirs, files := p.Count()
	log.WithFields(logrus.Fields{
		"base":    base,
		"version": o.Version,
		"dirs":    dirs,
		"files":   files,
	}).Debug("starting")

	return Apply(o, log, osfs.New(base), base, p)
}

// Apply применяет план к fs и печатает заголовок, прогресс и итог в o.Stdout.
// base нужен только для вывода.
func Apply(o Options, log logrus.FieldLogger, fs billy.Filesystem, base string, p plan.Plan) error {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}

	var rep fsops.Reporter
	if !o.Quiet {
		rep = fsops.NewConsoleReporter(o.Stdout, o.Verbose)
		fmt.Fprintf(o.Stdout, "Creating app structure in: %s\n", base)
	}
	if o.DryRun {
		log.Warn("dry-run: nothing will be written")
	}

	sum, err := fsops.Materialize(fsops.ApplyArgs{
		FS:       fs,
		Plan:     p,
		DryRun:   o.DryRun,
		DirPerm:  o.DirPerm,
		FilePerm: o.FilePerm,
		Reporter: rep,
		Log:      log,
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"dirs_created":  sum.DirsCreated,
		"dirs_existing": sum.DirsExisting,
		"files_created": sum.FilesCreated,
		"files_skipped": sum.FilesSkipped,
	}).Debug("done")

	if !o.Quiet {
		printSummary(o.Stdout, sum, o.DryRun)
	}
	return nil
}

func printSummary(w io.Writer, s fsops.Summary, dryRun bool) {
	if dryRun {
		fmt.Fprintln(w, "\nDry run complete, nothing was written.")
	} else {
		fmt.Fprintln(w, "\nApp structure setup complete!")
	}
	fmt.Fprintf(w, "Directories: %d created, %d existing. Files: %d created, %d already present.\n",
		s.DirsCreated, s.DirsExisting, s.FilesCreated, s.FilesSkipped)

	if !s.Changed() {
		fmt.Fprintln(w, "Nothing to create: the structure is already complete.")
		return
	}
	if s.FilesCreated > 0 && !dryRun {
		fmt.Fprintln(w, "Note: Placeholder files were created for missing components.")
		fmt.Fprintln(w, "Make sure to replace the placeholder implementations with your actual code.")
	}
}

// resolveBase приводит базовый каталог к абсолютному пути.
// Несуществующий каталог допустим (будет создан вместе с деревом), файл — нет.
func resolveBase(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "не удалось определить текущий каталог")
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "некорректный путь %q", dir)
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && !info.IsDir():
		return "", errors.Errorf("базовый путь %s не является каталогом", abs)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return "", errors.Wrapf(err, "stat %s", abs)
	}
	return abs, nil
}

// NewLogger — диагностический лог в stderr. Прогресс идёт отдельно, в stdout.
func NewLogger(o Options) *logrus.Logger {
	l := logrus.New()
	if o.Stderr != nil {
		l.SetOutput(o.Stderr)
	}
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case o.Quiet:
		l.SetLevel(logrus.WarnLevel)
	case o.Verbose:
		l.SetLevel(logrus.DebugLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}
