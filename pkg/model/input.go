package model

import "fmt"

// Input identifies one logical gamepad input that can be mapped to a channel.
// The numeric order is the enumeration order used when encoding commands.
type Input uint8

// Axes.
const (
	InputXAxis Input = iota
	InputYAxis
	InputZAxis
	InputRxAxis
	InputRyAxis
	InputRzAxis
	InputRudder
	InputThrottle
	InputAccelerator
	InputBrake
	InputSteering
)

const (
	// NumAxes is the number of axis inputs.
	NumAxes = 11
	// NumButtons is the number of button inputs.
	NumButtons = 32
	// NumHats is the number of hat switch inputs.
	NumHats = 2
	// NumInputs is the total number of logical inputs.
	NumInputs = NumAxes + NumButtons + NumHats
)

// InputButton1 is the first button; buttons occupy a contiguous range.
const InputButton1 Input = NumAxes

// InputHatSwitch1 and InputHatSwitch2 follow the buttons.
const (
	InputHatSwitch1 Input = NumAxes + NumButtons
	InputHatSwitch2 Input = InputHatSwitch1 + 1
)

// Group partitions the inputs.
type Group uint8

const (
	GroupAxis Group = iota
	GroupButton
	GroupHat
)

// String returns the group name.
func (g Group) String() string {
	switch g {
	case GroupAxis:
		return "axes"
	case GroupButton:
		return "buttons"
	case GroupHat:
		return "hat switches"
	default:
		return "unknown"
	}
}

var axisKeys = [NumAxes]string{
	"x_axis", "y_axis", "z_axis", "rx_axis", "ry_axis", "rz_axis",
	"rudder", "throttle", "accelerator", "brake", "steering",
}

var (
	inputKeys   [NumInputs]string
	inputsByKey = make(map[string]Input, NumInputs)
)

func init() {
	copy(inputKeys[:], axisKeys[:])
	for i := 0; i < NumButtons; i++ {
		inputKeys[int(InputButton1)+i] = fmt.Sprintf("button_%d", i+1)
	}
	inputKeys[InputHatSwitch1] = "hat_switch_1"
	inputKeys[InputHatSwitch2] = "hat_switch_2"

	for i, k := range inputKeys {
		inputsByKey[k] = Input(i)
	}
}

// Button returns the input for button n (1-32).
func Button(n int) (Input, bool) {
	if n < 1 || n > NumButtons {
		return 0, false
	}
	return InputButton1 + Input(n-1), true
}

// AllInputs returns every input in enumeration order: axes, buttons 1-32,
// then hat switches.
func AllInputs() []Input {
	inputs := make([]Input, NumInputs)
	for i := range inputs {
		inputs[i] = Input(i)
	}
	return inputs
}

// InputsInGroup returns the inputs of one group in enumeration order.
func InputsInGroup(g Group) []Input {
	var out []Input
	for _, in := range AllInputs() {
		if in.Group() == g {
			out = append(out, in)
		}
	}
	return out
}

// LookupInput returns the input with the given canonical key.
func LookupInput(key string) (Input, bool) {
	in, ok := inputsByKey[key]
	return in, ok
}

// Valid reports whether the input is one of the 45 known inputs.
func (in Input) Valid() bool {
	return int(in) < NumInputs
}

// Key returns the canonical lowercase key, e.g. "x_axis" or "button_7".
func (in Input) Key() string {
	if !in.Valid() {
		return fmt.Sprintf("input(%d)", uint8(in))
	}
	return inputKeys[in]
}

// String returns the canonical key.
func (in Input) String() string {
	return in.Key()
}

// Group returns the group the input belongs to.
func (in Input) Group() Group {
	switch {
	case in < InputButton1:
		return GroupAxis
	case in < InputHatSwitch1:
		return GroupButton
	default:
		return GroupHat
	}
}
