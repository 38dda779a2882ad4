package parser

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"appstruct/internal/plan"
	"appstruct/internal/safety"
)

var ErrBadTree = errors.New("некорректное описание структуры")

// Parse читает YAML-описание дерева и возвращает план.
// Отображение (mapping) — каталог, строка — файл с начальным содержимым,
// пустое значение (~ или ничего) — пустой файл. Порядок ключей сохраняется.
func Parse(r io.Reader) (plan.Plan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return plan.Plan{}, errors.Wrap(err, "чтение описания структуры")
	}
	return ParseBytes(data)
}

// ParseBytes — то же, что Parse, но для готового буфера.
func ParseBytes(data []byte) (plan.Plan, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return plan.Plan{}, errors.Wrap(err, "разбор YAML")
	}

	// Пустой документ — пустой план.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return plan.Plan{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return plan.Plan{}, errors.Wrapf(ErrBadTree, "строка %d: корень должен быть отображением", root.Line)
	}

	nodes, err := parseMapping(root, "")
	if err != nil {
		return plan.Plan{}, err
	}
	return plan.Plan{Nodes: nodes}, nil
}

func parseMapping(m *yaml.Node, parent string) ([]plan.Node, error) {
	// Content отображения — пары ключ/значение подряд.
	nodes := make([]plan.Node, 0, len(m.Content)/2)
	seen := make(map[string]struct{}, len(m.Content)/2)

	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]

		if k.Kind != yaml.ScalarNode {
			return nil, errors.Wrapf(ErrBadTree, "строка %d: ключ должен быть строкой", k.Line)
		}
		name := k.Value
		if err := safety.ValidateName(name); err != nil {
			return nil, errors.Wrapf(err, "строка %d", k.Line)
		}
		if _, dup := seen[name]; dup {
			return nil, errors.Wrapf(ErrBadTree, "строка %d: повтор имени %q в %q", k.Line, name, displayParent(parent))
		}
		seen[name] = struct{}{}

		rel := name
		if parent != "" {
			rel = parent + "/" + name
		}

		n, err := parseValue(name, rel, v)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseValue(name, rel string, v *yaml.Node) (plan.Node, error) {
	switch v.Kind {
	case yaml.MappingNode:
		children, err := parseMapping(v, rel)
		if err != nil {
			return plan.Node{}, err
		}
		// Пустой каталог — nil, как у plan.Dir без детей.
		if len(children) == 0 {
			children = nil
		}
		return plan.Dir(name, children...), nil

	case yaml.ScalarNode:
		if v.Tag == "!!null" {
			return plan.File(name, ""), nil
		}
		return plan.File(name, v.Value), nil

	default:
		return plan.Node{}, errors.Wrapf(ErrBadTree, "строка %d: %s: ожидается отображение или строка", v.Line, rel)
	}
}

func displayParent(p string) string {
	if strings.TrimSpace(p) == "" {
		return "."
	}
	return p
}
