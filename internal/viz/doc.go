// Package viz previews lab test timelines in the terminal.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: plays one timeline on a braille canvas with a side panel
//     (segment, time, curve tip, tip history graph, progress)
//   - [Canvas]: Braille-based pixel canvas
//   - [RunInteractive]: scene picker that opens a [Model]
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart
//	[ ]   - Scrub one second back/forward
//	+ -   - Double/halve playback speed
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit (back to the picker when opened from it)
//
// # Recording
//
// G toggles recording of the braille canvas; the frames are written to
// [RecordingPath] when recording stops.
package viz
