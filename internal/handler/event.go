package handler

import "github.com/dmorgan81/portrait/internal/image"

type EventType string

const (
	EventLoaded            EventType = "loaded"
	EventFileSelected      EventType = "file_selected"
	EventDragOver          EventType = "drag_over"
	EventDragLeave         EventType = "drag_leave"
	EventDrop              EventType = "drop"
	EventRemoveImage       EventType = "remove_image"
	EventNameInput         EventType = "name_input"
	EventIncludeTextChange EventType = "include_text_change"
	EventGenerate          EventType = "generate"
	EventDownload          EventType = "download"
	EventNewGeneration     EventType = "new_generation"
	EventErrorClose        EventType = "error_close"
	EventSampleToggle      EventType = "sample_toggle"
)

// Event is one UI interaction. File events carry either a File or a Path to
// load it from.
type Event struct {
	Type    EventType
	File    *image.File
	Path    string
	Text    string
	Checked bool
}
