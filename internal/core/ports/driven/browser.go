package driven

// PopupHandle represents an authorization window opened in the user's
// browser. The controller polls Closed to detect abandonment; handles
// that cannot observe window state report false forever.
type PopupHandle interface {
	// Closed reports whether the window is known to have been closed.
	Closed() bool

	// Close closes the window if still open. Safe to call repeatedly.
	Close()
}

// Browser opens pages in the user's browser.
type Browser interface {
	// OpenAuthPage opens the authorization URL and returns a handle to
	// the window. Returns domain.ErrPopupBlocked (possibly wrapped)
	// when the page could not be opened; callers fall back to the
	// manual flow via Prompter.
	OpenAuthPage(url string) (PopupHandle, error)

	// OpenPage opens a plain page (pricing, documentation).
	OpenPage(url string) error
}

// Prompter is the manual fallback surface used when the browser cannot
// be opened: it presents the authorization URL and waits for the user
// to acknowledge completing (or abandoning) the flow out of band.
type Prompter interface {
	// ConfirmManualAuth returns true once the user confirms they
	// completed authentication, false if they cancelled instead.
	ConfirmManualAuth(authURL string) (bool, error)
}
