package form

// View is everything the controller can change on screen. Implementations
// must be safe for use from the banner's timer goroutine.
type View interface {
	ShowPreview(dataURI string)
	HidePreview()
	SetSubmitEnabled(enabled bool)
	SetSubmitVisible(visible bool)
	SetLoading(loading bool)
	// ShowResult reveals the result section and brings it into view.
	ShowResult(dataURI string)
	HideResult()
	ShowError(msg string)
	HideError()
	SetDragOver(over bool)
	ToggleSample()
	ClearName()
	ScrollToTop()
}
