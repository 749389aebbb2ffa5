package renderer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/shiplog/pkg/domain/model"
	"github.com/m-mizutani/shiplog/pkg/renderer"
)

func testPR(number int, title, login string, categories ...string) *model.PullRequestRecord {
	set := model.NewCategorySet()
	for _, c := range categories {
		set.Add(c)
	}
	return &model.PullRequestRecord{
		Number:     number,
		Title:      title,
		URL:        "https://github.com/acme/demo/pull/42",
		Author:     &model.Author{Login: login, URL: "https://github.com/" + login},
		Categories: set,
	}
}

func fixedRenderer() *renderer.Markdown {
	r := renderer.NewMarkdown()
	r.Today = func() time.Time {
		return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	}
	return r
}

func TestMarkdown_Render(t *testing.T) {
	released := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	release := &model.Release{
		Name: "v1.2.0",
		Date: &released,
		PullRequests: []*model.PullRequestRecord{
			testPR(42, "Fix crash on empty input", "alice", "🐛 Bug Fixes"),
			testPR(43, "Add export command", "bob", "🚀 Features"),
		},
		Contributors: []*model.Author{
			{Login: "alice", URL: "https://github.com/alice"},
			{Name: "Bob Smith", Login: "bob", URL: "https://github.com/bob"},
		},
	}

	out := fixedRenderer().Render([]*model.Release{release})

	gt.String(t, out).Contains("## v1.2.0 (2026-03-10)")
	gt.String(t, out).Contains("#### 🐛 Bug Fixes")
	gt.String(t, out).Contains("#### 🚀 Features")
	gt.String(t, out).Contains("* [#42](https://github.com/acme/demo/pull/42) Fix crash on empty input ([@alice](https://github.com/alice))")
	gt.String(t, out).Contains("#### Committers: 2")
	gt.String(t, out).Contains("- [@alice](https://github.com/alice)")
	gt.String(t, out).Contains("- Bob Smith ([@bob](https://github.com/bob))")
}

func TestMarkdown_UnreleasedUsesToday(t *testing.T) {
	release := &model.Release{
		Name: "Unreleased",
		PullRequests: []*model.PullRequestRecord{
			testPR(1, "WIP change", "alice", "🚀 Features"),
		},
	}

	out := fixedRenderer().Render([]*model.Release{release})
	gt.String(t, out).Contains("## Unreleased (2026-05-01)")
}

func TestMarkdown_PackagePrefixes(t *testing.T) {
	pr := testPR(5, "Refactor parser", "alice", "🏠 Internal")
	pr.Packages = []string{"core", "cli"}

	release := &model.Release{
		Name:         "Unreleased",
		PullRequests: []*model.PullRequestRecord{pr},
	}

	out := fixedRenderer().Render([]*model.Release{release})
	gt.String(t, out).Contains("* `core`, `cli` [#5]")
}

func TestMarkdown_CategoryOrderFollowsFirstAppearance(t *testing.T) {
	release := &model.Release{
		Name: "Unreleased",
		PullRequests: []*model.PullRequestRecord{
			testPR(1, "first", "alice", "📝 Documentation"),
			testPR(2, "second", "bob", "🐛 Bug Fixes"),
		},
	}

	out := fixedRenderer().Render([]*model.Release{release})

	docs := "#### 📝 Documentation"
	bugs := "#### 🐛 Bug Fixes"
	gt.String(t, out).Contains(docs)
	gt.String(t, out).Contains(bugs)
	gt.Number(t, strings.Index(out, docs)).Less(strings.Index(out, bugs))
}

func TestMarkdown_MultipleReleases(t *testing.T) {
	first := &model.Release{
		Name: "v1.1.0",
		PullRequests: []*model.PullRequestRecord{
			testPR(1, "first", "alice", "🚀 Features"),
		},
	}
	second := &model.Release{
		Name: "v1.0.0",
		PullRequests: []*model.PullRequestRecord{
			testPR(2, "second", "bob", "🐛 Bug Fixes"),
		},
	}

	out := fixedRenderer().Render([]*model.Release{first, second})

	gt.String(t, out).Contains("## v1.1.0")
	gt.String(t, out).Contains("## v1.0.0")
	gt.Number(t, strings.Index(out, "## v1.1.0")).Less(strings.Index(out, "## v1.0.0"))
}

func TestMarkdown_EmptyInput(t *testing.T) {
	gt.Equal(t, fixedRenderer().Render(nil), "")
}
