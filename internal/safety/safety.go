package safety

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidName = errors.New("недопустимое имя")
	ErrEscapesRoot = errors.New("попытка выхода за пределы корня")
)

// ValidateName проверяет, что имя — один путь-сегмент без разделителей,
// не ".", не ".." и не абсолютный путь.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(ErrInvalidName, "пустое имя")
	}
	if name == "." || name == ".." {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.Wrapf(ErrInvalidName, "имя не должно содержать разделителей пути: %q", name)
	}
	if strings.ContainsRune(name, 0) {
		return errors.Wrapf(ErrInvalidName, "имя содержит NUL: %q", name)
	}
	if filepath.IsAbs(name) {
		return errors.Wrapf(ErrInvalidName, "абсолютные пути запрещены: %q", name)
	}
	return nil
}

// SafeJoin объединяет root и parts и убеждается, что результат остаётся внутри root.
// Для относительного root (например, "" или ".") возвращается относительный путь.
func SafeJoin(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	cleanRoot := filepath.Clean(root)
	cleanP := filepath.Clean(p)

	rel, err := filepath.Rel(cleanRoot, cleanP)
	if err != nil {
		return "", errors.Wrapf(err, "rel %s", p)
	}
	relSl := filepath.ToSlash(rel)
	if relSl == ".." || strings.HasPrefix(relSl, "../") {
		return "", errors.Wrap(ErrEscapesRoot, p)
	}
	return cleanP, nil
}
