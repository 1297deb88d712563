// Package emotion rewrites tagged emotion tokens embedded in situation text
// into pictographs. The analysis service marks the speaker's detected
// emotion inline, e.g. "퇴근하고 왔는데 너무 더워 (분노)".
package emotion

import "regexp"

// pictographs is the fixed tag-to-pictograph table. Tags not present here
// pass through unchanged.
var pictographs = map[string]string{
	"기쁨": "😊",
	"행복": "😄",
	"슬픔": "😢",
	"분노": "😡",
	"놀람": "😲",
	"공포": "😨",
	"불안": "😰",
	"혐오": "🤢",
	"피곤": "😪",
	"중립": "🙂",
}

var tagPattern = regexp.MustCompile(`\(([^()]+)\)`)

// Annotate replaces every (태그)-delimited emotion token in text with its
// pictograph. Unknown tags are left as-is, so the function is idempotent:
// pictographs contain no parentheses and are never re-matched.
func Annotate(text string) string {
	return tagPattern.ReplaceAllStringFunc(text, func(match string) string {
		tag := match[1 : len(match)-1]
		if pic, ok := pictographs[tag]; ok {
			return pic
		}
		return match
	})
}

// Known reports whether a tag has a pictograph mapping.
func Known(tag string) bool {
	_, ok := pictographs[tag]
	return ok
}
