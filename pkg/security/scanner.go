package security

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"covergen/pkg/logging"
)

// maxScanDepth bounds recursion into nested payloads. Legitimate cover
// payloads are a handful of levels deep; anything deeper is treated as a scan
// hit rather than a crash risk.
const maxScanDepth = 32

var (
	markupPattern = regexp.MustCompile(`<[^>]*>`)
	scriptPattern = regexp.MustCompile(`(?i)(\b(script|onload|onerror|eval)\b|javascript:)`)
	sqlPattern    = regexp.MustCompile(`(?i)\b(union\s+select|drop\s+table|insert\s+into|delete\s+from|alter\s+table)\b`)

	traversalSequences = []string{`../`, `..\`, `./`, `.\`}
)

// Scan walks an untrusted JSON-like value and reports whether any string leaf
// matches a known attack signature. Map values and slice elements are
// traversed, strings are tested, other leaves are ignored. The first hit
// short-circuits the walk.
//
// This is a coarse defense-in-depth heuristic; parameterized queries and
// output escaping downstream remain the real defense.
func Scan(body any) bool {
	hit, signature := scanValue(body, 0)
	if hit {
		logging.Warn("payload scan hit", zap.String("signature", signature))
	}
	return hit
}

func scanValue(v any, depth int) (bool, string) {
	if depth > maxScanDepth {
		return true, "nesting depth"
	}
	switch t := v.(type) {
	case string:
		return matchString(t)
	case []any:
		for _, elem := range t {
			if hit, sig := scanValue(elem, depth+1); hit {
				return true, sig
			}
		}
	case map[string]any:
		for _, val := range t {
			if hit, sig := scanValue(val, depth+1); hit {
				return true, sig
			}
		}
	}
	return false, ""
}

func matchString(s string) (bool, string) {
	if markupPattern.MatchString(s) {
		return true, "markup"
	}
	for _, seq := range traversalSequences {
		if strings.Contains(s, seq) {
			return true, "path traversal"
		}
	}
	if scriptPattern.MatchString(s) {
		return true, "script trigger"
	}
	if sqlPattern.MatchString(s) {
		return true, "sql keyword"
	}
	return false, ""
}
