// Package skeleton хранит встроенное описание каркаса проекта.
package skeleton

import (
	"bytes"
	_ "embed"

	"github.com/pkg/errors"

	"appstruct/internal/parser"
	"appstruct/internal/plan"
)

//go:embed skeleton.yaml
var skeletonYAML []byte

// Plan разбирает встроенный каркас. Каждый вызов возвращает новый план,
// так что вызывающий код не может испортить общее состояние.
func Plan() (plan.Plan, error) {
	p, err := parser.Parse(bytes.NewReader(skeletonYAML))
	if err != nil {
		return plan.Plan{}, errors.Wrap(err, "встроенный каркас")
	}
	return p, nil
}
