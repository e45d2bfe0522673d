package newsservice

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var (
	postPolicy    = bluemonday.UGCPolicy()
	commentPolicy = bluemonday.StrictPolicy()
)

func sanitizePost(text string) string {
	return postPolicy.Sanitize(text)
}

// sanitizeComment strips every tag; comments are plain text.
func sanitizeComment(text string) string {
	return commentPolicy.Sanitize(text)
}

// plainText drops the markup of stored post HTML and decodes its entities.
func plainText(text string) string {
	return html.UnescapeString(commentPolicy.Sanitize(text))
}
