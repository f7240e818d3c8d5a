// Package browser opens URLs with the operating system's default
// browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.Browser = (*Opener)(nil)

// Opener launches the system browser via the platform's URL handler.
type Opener struct{}

// NewOpener creates a system browser opener.
func NewOpener() *Opener {
	return &Opener{}
}

// OpenAuthPage opens the authorization URL and returns a handle for
// the page. Launch failures map to the blocked-popup error so the
// caller can fall back to the manual flow.
func (o *Opener) OpenAuthPage(url string) (driven.PopupHandle, error) {
	if err := o.OpenPage(url); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPopupBlocked, err)
	}
	return &systemPage{}, nil
}

// OpenPage opens any URL in the default browser.
func (o *Opener) OpenPage(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32.exe", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// systemPage is the handle for a page opened through the OS launcher.
// The launcher exits as soon as the browser takes over, so the window
// lifetime is not observable. Closed always reports false; the user
// cancels the flow explicitly instead.
type systemPage struct{}

func (p *systemPage) Closed() bool { return false }

func (p *systemPage) Close() {}
