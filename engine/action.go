package engine

import "fmt"

// Action is a player input. The zero value is not a valid action and is
// ignored like any other unknown value.
type Action int

const (
	MoveLeft Action = iota + 1
	MoveRight
	SoftDrop
	HardDrop
	RotateCW
	RotateCCW
)

var actionNames = map[Action]string{
	MoveLeft:  "move-left",
	MoveRight: "move-right",
	SoftDrop:  "soft-drop",
	HardDrop:  "hard-drop",
	RotateCW:  "rotate-cw",
	RotateCCW: "rotate-ccw",
}

// Actions lists every valid action.
var Actions = []Action{MoveLeft, MoveRight, SoftDrop, HardDrop, RotateCW, RotateCCW}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Valid reports whether a is one of Actions.
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// ParseAction maps the String form back to an Action.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
