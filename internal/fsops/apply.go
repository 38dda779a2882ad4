package fsops

import (
	"io"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"appstruct/internal/plan"
	"appstruct/internal/safety"
)

const (
	DefaultDirPerm  os.FileMode = 0o755
	DefaultFilePerm os.FileMode = 0o644
)

// ErrConflict — по пути уже есть запись другого типа (каталог вместо файла или наоборот).
var ErrConflict = errors.New("конфликт типов")

// ApplyArgs — параметры применения плана к файловой системе.
type ApplyArgs struct {
	// FS смотрит в базовый каталог: все пути плана относительны его корня.
	FS       billy.Filesystem
	Plan     plan.Plan
	DryRun   bool
	DirPerm  os.FileMode
	FilePerm os.FileMode
	Reporter Reporter
	Log      logrus.FieldLogger
}

// Summary — итог одного прогона.
type Summary struct {
	DirsCreated  int
	DirsExisting int
	FilesCreated int
	FilesSkipped int
}

// Changed сообщает, было ли (или, в dry-run, было бы) что-то создано.
func (s Summary) Changed() bool {
	return s.DirsCreated > 0 || s.FilesCreated > 0
}

func (s *Summary) add(a Action) {
	switch a {
	case DirCreated:
		s.DirsCreated++
	case DirExists:
		s.DirsExisting++
	case FileCreated:
		s.FilesCreated++
	case FileExists:
		s.FilesSkipped++
	}
}

// Materialize создаёт недостающие каталоги и файлы плана. Существующие файлы не трогает,
// существующие каталоги переиспользует. Первая ошибка прерывает обход; уже созданное остаётся.
func Materialize(a ApplyArgs) (Summary, error) {
	if a.FS == nil {
		return Summary{}, errors.New("не задана файловая система")
	}
	if a.DirPerm == 0 {
		a.DirPerm = DefaultDirPerm
	}
	if a.FilePerm == 0 {
		a.FilePerm = DefaultFilePerm
	}
	if a.Reporter == nil {
		a.Reporter = nopReporter{}
	}
	if a.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		a.Log = l
	}

	m := &materializer{a: a}
	err := m.apply("", a.Plan.Nodes)
	return m.sum, err
}

type materializer struct {
	a   ApplyArgs
	sum Summary
}

func (m *materializer) apply(parent string, nodes []plan.Node) error {
	for _, n := range nodes {
		if err := safety.ValidateName(n.Name); err != nil {
			return err
		}
		target, err := safety.SafeJoin(parent, n.Name)
		if err != nil {
			return err
		}

		switch n.Kind {
		case plan.KindDir:
			if err := m.ensureDir(target); err != nil {
				return err
			}
			if err := m.apply(target, n.Children); err != nil {
				return err
			}
		case plan.KindFile:
			if err := m.ensureFile(target, n.Content); err != nil {
				return err
			}
		default:
			return errors.Errorf("узел %q: неизвестный тип %d", target, n.Kind)
		}
	}
	return nil
}

func (m *materializer) ensureDir(rel string) error {
	log := m.a.Log.WithField("path", rel)

	// Stat идёт по симлинкам: ссылка на каталог годится как каталог.
	info, err := m.a.FS.Stat(rel)
	switch {
	case err == nil && info.IsDir():
		log.Debug("dir exists")
		m.report(DirExists, rel)
		return nil

	case err == nil:
		return errors.Wrapf(ErrConflict, "по пути %s уже существует файл, ожидался каталог", m.display(rel))

	case errors.Is(err, os.ErrNotExist):
		if m.a.DryRun {
			log.Debug("mkdir -p (dry-run)")
			m.report(DirCreated, rel)
			return nil
		}
		log.Debug("mkdir -p")
		if err := m.a.FS.MkdirAll(rel, m.a.DirPerm); err != nil {
			return errors.Wrapf(err, "mkdir %s", m.display(rel))
		}
		m.report(DirCreated, rel)
		return nil

	default:
		return errors.Wrapf(err, "stat %s", m.display(rel))
	}
}

func (m *materializer) ensureFile(rel, content string) error {
	log := m.a.Log.WithField("path", rel)

	// Lstat: любая существующая запись, включая висячую ссылку, считается занятой.
	info, err := m.a.FS.Lstat(rel)
	switch {
	case err == nil && info.IsDir():
		return errors.Wrapf(ErrConflict, "по пути %s уже есть каталог, ожидался файл", m.display(rel))

	case err == nil && info.Mode()&os.ModeSymlink != 0:
		// Ссылка на каталог — тот же конфликт. Висячая ссылка считается занятым путём.
		target, serr := m.a.FS.Stat(rel)
		switch {
		case serr == nil && target.IsDir():
			return errors.Wrapf(ErrConflict, "по пути %s ссылка на каталог, ожидался файл", m.display(rel))
		case serr != nil && !errors.Is(serr, os.ErrNotExist):
			return errors.Wrapf(serr, "stat %s", m.display(rel))
		}
		log.Debug("symlink exists, skipping")
		m.report(FileExists, rel)
		return nil

	case err == nil:
		log.Debug("file exists, skipping")
		m.report(FileExists, rel)
		return nil

	case errors.Is(err, os.ErrNotExist):
		if m.a.DryRun {
			log.Debug("create (dry-run)")
			m.report(FileCreated, rel)
			return nil
		}
		return m.createFile(rel, content)

	default:
		return errors.Wrapf(err, "lstat %s", m.display(rel))
	}
}

func (m *materializer) createFile(rel, content string) error {
	log := m.a.Log.WithField("path", rel)

	f, err := m.a.FS.OpenFile(rel, os.O_CREATE|os.O_WRONLY|os.O_EXCL, m.a.FilePerm)
	if errors.Is(err, os.ErrExist) {
		// Кто-то успел создать файл между проверкой и созданием.
		log.Debug("file appeared concurrently, skipping")
		m.report(FileExists, rel)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "create %s", m.display(rel))
	}

	_, werr := io.WriteString(f, strings.TrimSpace(content))
	cerr := f.Close()
	if werr != nil {
		return errors.Wrapf(werr, "write %s", m.display(rel))
	}
	if cerr != nil {
		return errors.Wrapf(cerr, "close %s", m.display(rel))
	}

	log.Debug("file created")
	m.report(FileCreated, rel)
	return nil
}

func (m *materializer) report(a Action, rel string) {
	m.sum.add(a)
	m.a.Reporter.Report(Event{Action: a, Path: m.display(rel), DryRun: m.a.DryRun})
}

// display — путь для человека: корень файловой системы + относительный путь.
func (m *materializer) display(rel string) string {
	return m.a.FS.Join(m.a.FS.Root(), rel)
}
