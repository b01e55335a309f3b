package ecs

type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	State     *State
}

func newUpdateFrame(dt float64, state *State) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		State:     state,
	}
}
