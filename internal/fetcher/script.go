package fetcher

import (
	"fmt"
	"regexp"

	goerrors "github.com/go-errors/errors"
)

// scriptRefPattern matches a src attribute naming the main bundle.
// The dots are intentionally unescaped; the page has only ever used literal dots.
var scriptRefPattern = regexp.MustCompile(`src="(main.[0-9a-f]+.js)"`)

// ScriptRefs returns every bundle path referenced from page, in document order.
func ScriptRefs(page string) []string {
	matches := scriptRefPattern.FindAllStringSubmatch(page, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// FindScriptRef returns the last bundle path referenced from page.
// It returns an error wrapping ErrPatternNotFound when there is none; the
// error carries the stack of FindScriptRef.
func FindScriptRef(page string) (string, error) {
	refs := ScriptRefs(page)

	// No reference usually means the page layout changed.
	if len(refs) == 0 {
		return "", goerrors.Wrap(fmt.Errorf("%w: %s", ErrPatternNotFound, scriptRefPattern.String()), 0)
	}
	// The last reference wins when the page names more than one bundle.
	return refs[len(refs)-1], nil
}

// ScriptURL joins the base URL and a bundle path by plain concatenation.
func ScriptURL(baseURL, ref string) string {
	return baseURL + ref
}
