package systems

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
	"github.com/plus3/kiln/loader"
	"go.uber.org/zap"
)

// MechanicsSystem loads the document named by each externContent component {document}
// once, and destroys every entity the load created, referenced documents included, when
// the component goes away or is hidden.
type MechanicsSystem struct {
	Extern ecs.Query `ecs:"externContent"`

	loader *loader.Loader
	props  *props.Resolver
	log    *zap.Logger

	loaded *intmap.Map[ecs.ComponentId, []ecs.EntityId]
}

// NewMechanicsSystem creates a mechanics system loading documents through l.
func NewMechanicsSystem(l *loader.Loader, r *props.Resolver, log *zap.Logger) *MechanicsSystem {
	return &MechanicsSystem{
		loader: l,
		props:  r,
		log:    log,
		loaded: intmap.New[ecs.ComponentId, []ecs.EntityId](16),
	}
}

// Loaded returns the entities created for an externContent component.
func (s *MechanicsSystem) Loaded(c ecs.ComponentId) []ecs.EntityId {
	ids, _ := s.loaded.Get(c)
	return ids
}

func (s *MechanicsSystem) Execute(frame *ecs.UpdateFrame) {
	seen := intmap.NewSet[ecs.ComponentId](s.Extern.Len())

	for c := range s.Extern.Iter() {
		seen.Add(c)
		if s.loaded.Has(c) {
			continue
		}
		s.loaded.Put(c, nil)

		document, ok := s.props.String(c, "document")
		if !ok {
			s.log.Warn("externContent without document", zap.Uint64("component", uint64(c)))
			continue
		}

		frame.Commands.Defer(func() {
			_, ids, err := s.loader.LoadAll(document, frame.State)
			if err != nil {
				s.log.Error("cannot load extern content", zap.String("document", document), zap.Error(err))
				return
			}
			s.loaded.Put(c, ids)
		})
	}

	var gone []ecs.ComponentId
	for c, ids := range s.loaded.All() {
		if seen.Has(c) {
			continue
		}
		for _, id := range ids {
			frame.Commands.DestroyEntity(id)
		}
		gone = append(gone, c)
	}
	for _, c := range gone {
		s.loaded.Del(c)
	}
}
