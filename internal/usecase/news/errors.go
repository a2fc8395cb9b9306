// Package news implements the administrator use cases for news articles:
// creating drafts, updating their editable fields and reading them back.
// Request validation happens at the HTTP boundary; this package assumes
// pre-validated input and only adds the not-found check.
package news

import "errors"

// Sentinel errors for news use case operations.
var (
	// ErrNewsNotFound indicates that the article does not exist or has been
	// soft-deleted.
	ErrNewsNotFound = errors.New("news not found")
)
