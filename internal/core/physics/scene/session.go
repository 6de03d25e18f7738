package scene

// State is the outcome of the current level.
type State int8

const (
	StateLost     State = -1
	StatePlaying  State = 0
	StateWon      State = 1
	StateFinished State = 2
)

func (s State) String() string {
	switch s {
	case StateLost:
		return "lost"
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Session is the game state carried by a scene across level reloads.
type Session struct {
	Score int
	Level int
	State State
}

// Settle ends the current level with st unless it is already decided.
func (s *Session) Settle(st State) bool {
	if s.State != StatePlaying {
		return false
	}
	s.State = st
	return true
}
