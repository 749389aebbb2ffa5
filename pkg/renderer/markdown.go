package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/shiplog/pkg/domain/model"
)

// Markdown renders categorized releases as a Markdown changelog: one
// heading per release, one section per category, and a contributor gallery.
type Markdown struct {
	// Today supplies the date shown on unreleased sections. Defaults to
	// time.Now; injectable for tests.
	Today func() time.Time
}

// NewMarkdown creates a Markdown renderer.
func NewMarkdown() *Markdown {
	return &Markdown{Today: time.Now}
}

// Render produces the full changelog text for the given releases.
func (x *Markdown) Render(releases []*model.Release) string {
	var b strings.Builder
	for i, release := range releases {
		if i > 0 {
			b.WriteString("\n\n")
		}
		x.renderRelease(&b, release)
	}
	return b.String()
}

func (x *Markdown) renderRelease(b *strings.Builder, release *model.Release) {
	date := release.Date
	if date == nil {
		now := x.Today()
		date = &now
	}
	fmt.Fprintf(b, "## %s (%s)\n", release.Name, date.Format("2006-01-02"))

	for _, category := range categoryOrder(release.PullRequests) {
		fmt.Fprintf(b, "\n#### %s\n\n", category)
		for _, pr := range release.PullRequests {
			if pr.Categories == nil || !pr.Categories.Has(category) {
				continue
			}
			b.WriteString(renderEntry(pr))
		}
	}

	if len(release.Contributors) > 0 {
		fmt.Fprintf(b, "\n#### Committers: %d\n\n", len(release.Contributors))
		for _, author := range release.Contributors {
			b.WriteString(renderContributor(author))
		}
	}
}

func renderEntry(pr *model.PullRequestRecord) string {
	var b strings.Builder
	b.WriteString("* ")

	if len(pr.Packages) > 0 {
		marked := make([]string, len(pr.Packages))
		for i, name := range pr.Packages {
			marked[i] = "`" + name + "`"
		}
		b.WriteString(strings.Join(marked, ", "))
		b.WriteString(" ")
	}

	fmt.Fprintf(&b, "[#%d](%s) %s", pr.Number, pr.URL, pr.Title)
	if author := pr.Author; author != nil && author.Login != "" {
		fmt.Fprintf(&b, " ([@%s](%s))", author.Login, author.URL)
	}
	b.WriteString("\n")
	return b.String()
}

func renderContributor(author *model.Author) string {
	if author.Name != "" {
		return fmt.Sprintf("- %s ([@%s](%s))\n", author.Name, author.Login, author.URL)
	}
	return fmt.Sprintf("- [@%s](%s)\n", author.Login, author.URL)
}

// categoryOrder returns the categories in order of first appearance across
// the release's pull requests.
func categoryOrder(prs []*model.PullRequestRecord) []string {
	ordered := model.NewCategorySet()
	for _, pr := range prs {
		if pr.Categories == nil {
			continue
		}
		for _, category := range pr.Categories.Values() {
			ordered.Add(category)
		}
	}
	return ordered.Values()
}
