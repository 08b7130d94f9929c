package browser

// NewBrowserRepositoryWithLookPath creates a BrowserRepository with a custom
// lookup for testing.
func NewBrowserRepositoryWithLookPath(lookPath func() (string, bool)) *BrowserRepository {
	return &BrowserRepository{lookPath: lookPath}
}
