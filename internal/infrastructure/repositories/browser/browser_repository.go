package browser

import (
	"github.com/go-rod/rod/lib/launcher"
)

// BrowserRepository finds locally installed browsers the way rod does.
type BrowserRepository struct {
	lookPath func() (string, bool)
}

// NewBrowserRepository creates a new BrowserRepository.
func NewBrowserRepository() *BrowserRepository {
	return &BrowserRepository{lookPath: launcher.LookPath}
}

// LookPath returns the path of a Chrome or Chromium binary, if any.
func (it *BrowserRepository) LookPath() (string, bool) {
	return it.lookPath()
}
