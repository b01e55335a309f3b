package systems

import (
	"github.com/plus3/kiln/config"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
	"go.uber.org/zap"
)

// PhysicsSystem moves entities that carry an activated physics component.
//
// An entity's position, movement and requested movement are the sums of its position,
// movement and requestedMovement components. Movement approaches the requested movement
// at a fixed acceleration, gravity pulls it down unless the physics component sets
// gravity to false, and the result is written back to the first position and movement
// components.
type PhysicsSystem struct {
	Bodies ecs.Query `ecs:"physics"`

	props *props.Resolver
	cfg   config.PhysicsConfig
	log   *zap.Logger
}

// NewPhysicsSystem creates a physics system with the given constants.
func NewPhysicsSystem(r *props.Resolver, cfg config.PhysicsConfig, log *zap.Logger) *PhysicsSystem {
	return &PhysicsSystem{props: r, cfg: cfg, log: log}
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	if dt <= 0 {
		return
	}

	for owner, body := range s.Bodies.Iter2() {
		if active, ok := s.props.Boolean(body, "activated"); !ok || !active {
			continue
		}

		positions := Components(frame.State, owner, PositionType)
		if len(positions) == 0 {
			continue
		}
		movements := Components(frame.State, owner, MovementType)
		requested := Components(frame.State, owner, RequestedMovementType)

		pos := SumVec(s.props, positions)
		before := SumVec(s.props, movements)
		mov := before

		if len(requested) > 0 {
			diff := SumVec(s.props, requested).Sub(mov)
			step := s.cfg.Acceleration * dt
			if d := diff.Len(); d <= step {
				mov = mov.Add(diff)
			} else {
				mov = mov.Add(diff.Scale(step / d))
			}
		}

		if gravity, ok := s.props.Boolean(body, "gravity"); !ok || gravity {
			mov.Y += s.cfg.Gravity * dt
		}

		next := pos.Add(mov.Scale(dt))
		if s.cfg.Ground && next.Y < 0 {
			next.Y = 0
			if mov.Y < 0 {
				mov.Y = 0
			}
		}

		if err := addVec(s.props, positions[0], next.Sub(pos)); err != nil {
			s.log.Warn("cannot move entity", zap.Uint64("entity", uint64(owner)), zap.Error(err))
			continue
		}
		if len(movements) > 0 {
			if err := addVec(s.props, movements[0], mov.Sub(before)); err != nil {
				s.log.Warn("cannot update movement", zap.Uint64("entity", uint64(owner)), zap.Error(err))
			}
		}
	}
}
