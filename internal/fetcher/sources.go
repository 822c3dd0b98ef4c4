package fetcher

import (
	"strings"

	"golang.org/x/net/html"
)

// ScriptSources tokenizes page as HTML and returns the src attribute of every
// <script> element in document order. Unlike ScriptRefs it sees every bundle,
// not only main.<hex>.js, which helps when the page layout has changed and
// FindScriptRef fails.
func ScriptSources(page string) []string {
	var sources []string

	z := html.NewTokenizer(strings.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way we are done.
			return sources
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "script" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "src" && len(val) > 0 {
					sources = append(sources, string(val))
				}
				if !more {
					break
				}
			}
		}
	}
}
