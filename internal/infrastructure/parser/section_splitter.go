package parser

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/YoshitsuguKoike/propdoc/internal/domain/model/prop"
)

var (
	// delimiterPattern matches a `---` line, the frontmatter fence
	delimiterPattern = regexp.MustCompile(`(?m)^---[ \t]*\r?\n`)

	// titlePattern matches `title: value` with optional quotes
	titlePattern = regexp.MustCompile(`(?m)^title:[ \t]*['"]?([^"\r\n]+?)['"]?[ \t]*\r?$`)

	// headingPattern matches a top-level `# Heading` line
	headingPattern = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)
)

// SplitSections divides a document into titled sections.
//
// The document is cut on `---` lines. Every block from index 1 onward is
// treated as frontmatter for the block that follows it; blocks without a
// title contribute nothing. Bodies are further cut on `# Heading` lines, with
// each heading becoming the title of the text beneath it. The result is
// stably sorted by case-insensitive title.
func SplitSections(document string) []prop.Section {
	blocks := delimiterPattern.Split(document, -1)

	var sections []prop.Section
	for i := 1; i < len(blocks); i++ {
		title := frontmatterTitle(blocks[i])
		if title == "" {
			continue
		}

		body := ""
		if i+1 < len(blocks) {
			body = blocks[i+1]
		}
		sections = append(sections, splitBody(title, body)...)
	}

	sortSections(sections)
	return sections
}

// frontmatterTitle returns the compacted title of a frontmatter block, or "".
// The value is taken verbatim from the first `title:` line; it is not
// decoded as YAML, so comments, escapes and block indicators stay as written.
func frontmatterTitle(block string) string {
	m := titlePattern.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return compactTitle(m[1])
}

func splitBody(title, body string) []prop.Section {
	locs := headingPattern.FindAllStringSubmatchIndex(body, -1)
	if len(locs) == 0 {
		return []prop.Section{{Title: title, Content: body}}
	}

	var sections []prop.Section
	if lead := body[:locs[0][0]]; strings.TrimSpace(lead) != "" {
		sections = append(sections, prop.Section{Title: title, Content: lead})
	}

	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, prop.Section{
			Title:   compactTitle(body[loc[2]:loc[3]]),
			Content: body[loc[1]:end],
		})
	}
	return sections
}

// compactTitle trims a title and removes its spaces, so "My Component"
// becomes "MyComponent"
func compactTitle(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

func sortSections(sections []prop.Section) {
	lower := cases.Lower(language.Und)
	keys := make(map[string]string, len(sections))
	for _, s := range sections {
		if _, ok := keys[s.Title]; !ok {
			keys[s.Title] = lower.String(s.Title)
		}
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return keys[sections[i].Title] < keys[sections[j].Title]
	})
}
