// Package main provides a presentation control plugin for macOS.
// It drives slideshow applications via AppleScript keyboard events.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action  string          `json:"action"`
	Command string          `json:"command"`
	Config  json.RawMessage `json:"config"`
	Params  json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// actionHandler defines a function type for handling specific actions.
type actionHandler func() error

// actionHandlers maps action names to their handler functions.
var actionHandlers = map[string]actionHandler{
	"next-slide":         nextSlide,
	"prev-slide":         prevSlide,
	"start-presentation": startPresentation,
	"blank-screen":       blankScreen,
	"zoom-in":            zoomIn,
	"zoom-out":           zoomOut,
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	// Look up the handler for the action
	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	// Execute the handler
	if err := handler(); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	// Write success response
	writeSuccessResponse()
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// nextSlide advances to the next slide using the right arrow key.
func nextSlide() error {
	script := `tell application "System Events"
	key code 124
end tell`
	return runAppleScript(script)
}

// prevSlide returns to the previous slide using the left arrow key.
func prevSlide() error {
	script := `tell application "System Events"
	key code 123
end tell`
	return runAppleScript(script)
}

// startPresentation starts the slideshow using the F5 key.
func startPresentation() error {
	script := `tell application "System Events"
	key code 96
end tell`
	return runAppleScript(script)
}

// blankScreen toggles a blanked screen; most slideshow apps map this to "b".
func blankScreen() error {
	script := `tell application "System Events" to keystroke "b"`
	return runAppleScript(script)
}

// zoomIn zooms into the slide with Cmd+Plus.
func zoomIn() error {
	script := `tell application "System Events" to keystroke "=" using {command down}`
	return runAppleScript(script)
}

// zoomOut zooms out of the slide with Cmd+Minus.
func zoomOut() error {
	script := `tell application "System Events" to keystroke "-" using {command down}`
	return runAppleScript(script)
}
