// Package loader populates an ecs.State from entity documents.
//
// A document is a list of entities:
//
//	[
//	  {
//	    "name": "hero",
//	    "visible": true,
//	    "components": [
//	      {"type": "position", "data": {"x": 0, "y": {"property": "spawnY"}}},
//	      {"type": {"entity": "characters/base"}},
//	      {"type": {"prototype": [{"type": "spriteDisplay", "data": {"texture": "hero"}}]}}
//	    ]
//	  }
//	]
//
// Entity names are qualified with the document name, so "hero" in document "main" is
// registered as "main/hero". Documents may be written in JSON or YAML.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/resources"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader reads documents through a resources.Loader.
type Loader struct {
	res resources.Loader
	log *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// New creates a Loader.
func New(res resources.Loader, opts ...Option) *Loader {
	l := &Loader{res: res, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads the named document and every document it references into state, returning
// the document's top level entities. On failure state is left as it was before the call.
func (l *Loader) Load(name string, state *ecs.State) ([]ecs.EntityId, error) {
	ids, _, err := l.LoadAll(name, state)
	return ids, err
}

// LoadAll is Load that also returns every entity the call created, in creation order:
// inline prototypes and the entities of referenced documents included.
func (l *Loader) LoadAll(name string, state *ecs.State) (ids, created []ecs.EntityId, err error) {
	s := &session{
		Loader:  l,
		state:   state,
		visited: make(map[string]struct{}),
	}

	ids, err = s.loadDocument(name)
	if err != nil {
		s.rollback(0)
		l.log.Debug("document load failed", zap.String("document", name), zap.Error(err))
		return nil, nil, err
	}
	return ids, s.created, nil
}

// session is a single Load call. Every entity it creates is journaled so a failing step
// can destroy what it created, including entities of documents loaded along the way.
type session struct {
	*Loader
	state   *ecs.State
	visited map[string]struct{}
	created []ecs.EntityId
}

func (s *session) checkpoint() int {
	return len(s.created)
}

func (s *session) rollback(mark int) {
	for i := len(s.created) - 1; i >= mark; i-- {
		if id := s.created[i]; s.state.HasEntity(id) {
			_ = s.state.DestroyEntity(id)
		}
	}
	s.created = s.created[:mark]
}

func (s *session) createEntity(name string, visible bool) ecs.EntityId {
	id := s.state.CreateEntity(name, visible)
	s.created = append(s.created, id)
	return id
}

func (s *session) loadDocument(name string) ([]ecs.EntityId, error) {
	if _, ok := s.visited[name]; ok {
		return nil, nil
	}

	s.visited[name] = struct{}{}

	data, err := resources.ReadAll(s.res, name)
	if err != nil {
		return nil, &Error{Kind: KindIO, Document: name, Err: err}
	}

	doc, err := parse(data)
	if err != nil {
		return nil, &Error{Kind: KindSyntax, Document: name, Err: err}
	}
	if doc.Kind != yaml.SequenceNode {
		return nil, wrongStructure(name, doc, "document must be a list of entities")
	}

	mark := s.checkpoint()
	ids := make([]ecs.EntityId, 0, len(doc.Content))
	for _, item := range doc.Content {
		id, err := s.loadEntity(name, item)
		if err != nil {
			s.rollback(mark)
			return nil, err
		}
		ids = append(ids, id)
	}

	s.log.Debug("loaded document",
		zap.String("document", name),
		zap.Int("entities", len(ids)),
		zap.Int("created", len(s.created)-mark),
	)
	return ids, nil
}

// parse reads a JSON or YAML document. Valid JSON always goes through the JSON decoder
// since YAML rejects some JSON, such as the \/ escape.
func parse(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}
	if json.Valid(data) {
		return parseJSON(data)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	doc := deref(&root)
	if doc == nil {
		return nil, errors.New("empty document")
	}
	return doc, nil
}

func (s *session) loadEntity(doc string, node *yaml.Node) (ecs.EntityId, error) {
	node = deref(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return 0, wrongStructure(doc, node, "entity must be an object")
	}

	var (
		name       string
		visible    = true
		components *yaml.Node
	)
	for key, value := range pairs(node) {
		switch key {
		case "name":
			if !isString(value) {
				return 0, wrongStructure(doc, value, "entity name must be a string")
			}
			name = path.Join(doc, value.Value)
		case "visible":
			if value == nil || value.Tag != "!!bool" || value.Decode(&visible) != nil {
				return 0, wrongStructure(doc, value, "entity visible must be a boolean")
			}
		case "components":
			if value == nil || value.Kind != yaml.SequenceNode {
				return 0, wrongStructure(doc, value, "entity components must be a list")
			}
			components = value
		}
	}

	mark := s.checkpoint()
	id := s.createEntity(name, visible)
	if components == nil {
		return id, nil
	}
	for _, c := range components.Content {
		if _, err := s.loadComponent(doc, id, c); err != nil {
			s.rollback(mark)
			return 0, err
		}
	}
	return id, nil
}

func (s *session) loadComponent(doc string, owner ecs.EntityId, node *yaml.Node) (ecs.ComponentId, error) {
	node = deref(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return 0, wrongStructure(doc, node, "component must be an object")
	}

	var typ, dataNode *yaml.Node
	for key, value := range pairs(node) {
		switch key {
		case "type":
			typ = value
		case "data":
			dataNode = value
		}
	}
	if typ == nil {
		return 0, wrongStructure(doc, node, "component has no type")
	}

	data := make(map[string]ecs.Data)
	if dataNode != nil {
		if dataNode.Kind != yaml.MappingNode {
			return 0, wrongStructure(doc, dataNode, "component data must be an object")
		}
		for field, value := range pairs(dataNode) {
			d, err := s.loadData(doc, value)
			if err != nil {
				return 0, err
			}
			data[field] = d
		}
	}

	if isString(typ) {
		id, err := s.state.CreateNativeComponent(owner, typ.Value, data)
		if err != nil {
			return 0, &Error{Kind: KindState, Document: doc, Line: typ.Line, Err: err}
		}
		return id, nil
	}

	d, err := s.loadData(doc, typ)
	if err != nil {
		return 0, err
	}
	proto, ok := d.AsEntity()
	if !ok {
		return 0, wrongStructure(doc, typ, "component type must be a string or an entity")
	}

	id, err := s.state.CreateComponentFromEntity(owner, proto, data)
	if err != nil {
		return 0, &Error{Kind: KindState, Document: doc, Line: typ.Line, Err: err}
	}
	return id, nil
}

func (s *session) loadData(doc string, node *yaml.Node) (ecs.Data, error) {
	node = deref(node)
	if node == nil {
		return ecs.Data{}, wrongStructure(doc, node, "missing data entry")
	}
	switch node.Kind {
	case yaml.ScalarNode:
		return scalar(doc, node)

	case yaml.SequenceNode:
		items := make([]ecs.Data, 0, len(node.Content))
		for _, item := range node.Content {
			d, err := s.loadData(doc, item)
			if err != nil {
				return ecs.Data{}, err
			}
			items = append(items, d)
		}
		return ecs.List(items...), nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return ecs.Data{}, wrongStructure(doc, node, "data object must have exactly one key")
		}
		key, value := node.Content[0].Value, deref(node.Content[1])

		switch strings.ToLower(key) {
		case "prototype":
			return s.loadPrototype(doc, value)
		case "entity":
			if !isString(value) {
				return ecs.Data{}, wrongStructure(doc, value, "entity reference must be a string")
			}
			id, err := s.resolveEntity(doc, value)
			if err != nil {
				return ecs.Data{}, err
			}
			return ecs.Entity(id), nil
		case "property":
			if !isString(value) {
				return ecs.Data{}, wrongStructure(doc, value, "property name must be a string")
			}
			return ecs.FromProperty(value.Value), nil
		case "script":
			if !isString(value) {
				return ecs.Data{}, wrongStructure(doc, value, "script must be a string")
			}
			return ecs.Script(value.Value), nil
		}
		return ecs.Data{}, wrongStructure(doc, node, fmt.Sprintf("unknown data entry %q", key))
	}

	return ecs.Data{}, wrongStructure(doc, node, "unsupported data entry")
}

// loadPrototype creates an invisible, unnamed entity holding the listed components.
func (s *session) loadPrototype(doc string, node *yaml.Node) (ecs.Data, error) {
	if node.Kind != yaml.SequenceNode {
		return ecs.Data{}, wrongStructure(doc, node, "prototype must be a list of components")
	}

	mark := s.checkpoint()
	proto := s.createEntity("", false)
	for _, c := range node.Content {
		if _, err := s.loadComponent(doc, proto, c); err != nil {
			s.rollback(mark)
			return ecs.Data{}, err
		}
	}
	return ecs.Entity(proto), nil
}

func scalar(doc string, node *yaml.Node) (ecs.Data, error) {
	switch node.Tag {
	case "!!null":
		return ecs.Empty(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return ecs.Data{}, &Error{Kind: KindSyntax, Document: doc, Line: node.Line, Err: err}
		}
		return ecs.Boolean(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return ecs.Data{}, &Error{Kind: KindSyntax, Document: doc, Line: node.Line, Err: err}
		}
		return ecs.Number(f), nil
	}
	return ecs.String(node.Value), nil
}
