package usecase

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/shiplog/pkg/domain/model"
)

const tagRefPrefix = "tag: "

var issueRefPattern = regexp.MustCompile(`#(\d+)`)

// ParseCommit turns one raw log record into a CommitRecord. Pure
// transformation: no remote calls, malformed input degrades to empty fields.
func ParseCommit(raw model.RawCommit) *model.CommitRecord {
	return &model.CommitRecord{
		SHA:         raw.SHA,
		Message:     raw.Message,
		Date:        raw.Date,
		Tags:        parseTagRefs(raw.RefNames),
		IssueNumber: extractIssueNumber(raw.Message),
	}
}

// parseTagRefs extracts tag names from a ref decoration string such as
// "tag: v1.2.0, tag: latest, origin/main". Non-tag refs are dropped.
func parseTagRefs(refNames string) []string {
	if refNames == "" {
		return nil
	}

	var tags []string
	for _, ref := range strings.Split(refNames, ", ") {
		if name, ok := strings.CutPrefix(ref, tagRefPrefix); ok && name != "" {
			tags = append(tags, name)
		}
	}
	return tags
}

// extractIssueNumber returns the digits of the first inline "#123" style
// reference in the message, or an empty string.
func extractIssueNumber(message string) string {
	match := issueRefPattern.FindStringSubmatch(message)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
