package newsservice

// Preview returns text cut to length characters followed by "...", or text unchanged
// when it is not longer than length. A non-positive length means DefaultPreviewLength.
func Preview(text string, length int) string {
	if length <= 0 {
		length = DefaultPreviewLength
	}

	runes := []rune(text)
	if len(runes) <= length {
		return text
	}

	return string(runes[:length]) + "..."
}

// Preview cuts the plain text of the post, so a tag or an entity is never split.
func (p *Post) Preview(length int) string {
	return Preview(plainText(p.Text), length)
}
