// Package gesture converts per-frame hand poses into debounced
// presentation commands.
package gesture

// Gesture is the raw per-frame label produced by the Classifier.
type Gesture string

// Command is a confirmed gesture emitted by the Stabilizer. The raw and
// confirmed vocabularies share their names; a Command is a Gesture that
// survived stabilization.
type Command string

// Raw gesture labels.
const (
	GestureNone    Gesture = "none"
	GestureNext    Gesture = "next"
	GesturePrev    Gesture = "prev"
	GestureStart   Gesture = "start"
	GesturePause   Gesture = "pause"
	GestureZoomIn  Gesture = "zoom_in"
	GestureZoomOut Gesture = "zoom_out"
)

// Confirmed command values.
const (
	CommandNext    Command = "next"
	CommandPrev    Command = "prev"
	CommandStart   Command = "start"
	CommandPause   Command = "pause"
	CommandZoomIn  Command = "zoom_in"
	CommandZoomOut Command = "zoom_out"
)

var commandDescriptions = map[Command]string{
	CommandNext:    "Next Slide (Two Fingers Pointing Right)",
	CommandPrev:    "Previous Slide (One Finger Pointing Left)",
	CommandStart:   "Start Presentation (Thumbs Up)",
	CommandPause:   "Pause/Hold (Open Palm)",
	CommandZoomIn:  "Zoom In (Two Hands Frame Gesture)",
	CommandZoomOut: "Zoom Out (Two Hands 3 Fingers Moving Together)",
}

var commandHands = map[Command]int{
	CommandNext:    1,
	CommandPrev:    1,
	CommandStart:   1,
	CommandPause:   1,
	CommandZoomIn:  2,
	CommandZoomOut: 2,
}

// Commands returns the command vocabulary in detection priority order.
func Commands() []Command {
	return []Command{
		CommandNext,
		CommandPrev,
		CommandStart,
		CommandPause,
		CommandZoomIn,
		CommandZoomOut,
	}
}

// Valid reports whether c is one of the recognized commands.
func (c Command) Valid() bool {
	_, ok := commandDescriptions[c]
	return ok
}

// Description returns a human readable description of the command,
// suitable for menus and logs.
func (c Command) Description() string {
	if desc, ok := commandDescriptions[c]; ok {
		return desc
	}
	return "Unknown Command"
}

// Hands returns how many hands the command's gesture requires.
func (c Command) Hands() int {
	return commandHands[c]
}
