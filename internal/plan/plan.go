package plan

import (
	"path"
)

// Kind — тип узла дерева.
type Kind int

const (
	KindDir Kind = iota + 1
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node — один элемент дерева: каталог с дочерними узлами или файл с начальным содержимым.
type Node struct {
	Name     string // короткое имя без слэшей (один сегмент)
	Kind     Kind
	Children []Node // только для KindDir, порядок значим
	Content  string // только для KindFile
}

// Dir собирает узел-каталог.
func Dir(name string, children ...Node) Node {
	return Node{Name: name, Kind: KindDir, Children: children}
}

// File собирает узел-файл.
func File(name, content string) Node {
	return Node{Name: name, Kind: KindFile, Content: content}
}

func (n Node) IsDir() bool { return n.Kind == KindDir }

// Plan — упорядоченный список узлов верхнего уровня относительно базового каталога.
type Plan struct {
	Nodes []Node
}

// WalkFunc получает путь узла относительно базы (через "/") и сам узел.
type WalkFunc func(rel string, n Node) error

// Walk обходит план в глубину, в порядке объявления. Каталог посещается раньше своих детей.
func (p Plan) Walk(fn WalkFunc) error {
	return walk("", p.Nodes, fn)
}

func walk(parent string, nodes []Node, fn WalkFunc) error {
	for _, n := range nodes {
		rel := path.Join(parent, n.Name)
		if err := fn(rel, n); err != nil {
			return err
		}
		if n.IsDir() {
			if err := walk(rel, n.Children, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Count возвращает число каталогов и файлов в плане.
func (p Plan) Count() (dirs, files int) {
	_ = p.Walk(func(_ string, n Node) error {
		if n.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})
	return dirs, files
}
