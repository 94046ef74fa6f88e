package when

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ib-77/match3/pkg/match"
)

// ParseYAML reads a table from a YAML mapping of keys to result values. The
// entries keep the order of the document.
//
//	"/^err/": failure
//	ok: success
//	_: unknown
func ParseYAML[T, R any](data []byte) (*Table[T, R], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("when: %w", err)
	}

	t := NewTable[T, R]()
	if len(doc.Content) == 0 {
		return t, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("when: line %d: table must be a mapping", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var r R
		if err := value.Decode(&r); err != nil {
			return nil, fmt.Errorf("when: line %d: key %q: %w", value.Line, key.Value, err)
		}
		t.Case(key.Value, match.Value[T](r))
	}

	if err := t.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
