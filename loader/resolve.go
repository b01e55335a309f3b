package loader

import (
	"errors"
	"fmt"
	"iter"
	"path"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/resources"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// resolveEntity finds the entity a reference names. When nothing matches, the documents
// that could define it ("a/b/c", then "a/b", then "a") are loaded until one exists, and
// the lookup is retried.
func (s *session) resolveEntity(doc string, node *yaml.Node) (ecs.EntityId, error) {
	name := node.Value

	id, ok, err := s.findEntity(name)
	if err != nil {
		return 0, &Error{Kind: KindWrongDataStructure, Document: doc, Line: node.Line, Err: err}
	}
	if ok {
		return id, nil
	}

	for candidate := path.Clean(name); candidate != "." && candidate != "/"; candidate = path.Dir(candidate) {
		_, err := s.loadDocument(candidate)
		if err == nil {
			break
		}
		if !documentMissing(err, candidate) {
			return 0, err
		}
		s.log.Debug("no document for entity reference",
			zap.String("entity", name),
			zap.String("candidate", candidate),
		)
	}

	id, ok, err = s.findEntity(name)
	if err != nil {
		return 0, &Error{Kind: KindWrongDataStructure, Document: doc, Line: node.Line, Err: err}
	}
	if !ok {
		return 0, &Error{
			Kind:     KindWrongDataStructure,
			Document: doc,
			Line:     node.Line,
			Err:      fmt.Errorf("%w: %s", ErrNoSuchEntity, name),
		}
	}
	return id, nil
}

// findEntity looks an entity up by its exact name, then by the name an entity gets when
// it shares its document's last path segment ("ui/button" -> "ui/button/button").
func (s *session) findEntity(name string) (ecs.EntityId, bool, error) {
	for _, candidate := range []string{name, path.Join(name, path.Base(name))} {
		switch ids := s.state.EntitiesByName(candidate); len(ids) {
		case 0:
			continue
		case 1:
			return ids[0], true, nil
		default:
			return 0, false, fmt.Errorf("%w: %s matches %d entities", ErrAmbiguousEntity, candidate, len(ids))
		}
	}
	return 0, false, nil
}

// documentMissing reports whether err only says that the document itself does not exist.
func documentMissing(err error, document string) bool {
	var le *Error
	return errors.As(err, &le) &&
		le.Kind == KindIO &&
		le.Document == document &&
		resources.IsNotFound(le.Err)
}

func wrongStructure(doc string, node *yaml.Node, msg string) error {
	e := &Error{Kind: KindWrongDataStructure, Document: doc, Err: errors.New(msg)}
	if node != nil {
		e.Line = node.Line
	}
	return e
}

// deref unwraps document and alias nodes.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// pairs iterates the key/value pairs of a mapping node.
func pairs(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if !yield(n.Content[i].Value, deref(n.Content[i+1])) {
				return
			}
		}
	}
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!str"
}
