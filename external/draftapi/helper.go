package draftapi

import (
	"io"
	"strings"
)

func limitReader(r io.Reader) io.Reader {
	return io.LimitReader(r, maxBodyBytes)
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
