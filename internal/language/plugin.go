package language

import (
	"fmt"
	"strings"

	"github.com/sha1n/mcp-arc42-server/internal/domain"
	"github.com/sha1n/mcp-arc42-server/internal/format"
)

const (
	projectPlaceholder = "{project}"

	arc42Site    = "https://arc42.org"
	arc42DocsURL = "https://docs.arc42.org/section-%d/"

	// SectionsDir is the workspace directory holding section files.
	SectionsDir = "sections"
)

// NewDocumentPlugin renders c through the vocabulary of fs.
func NewDocumentPlugin(c *Content, fs format.Strategy) Plugin {
	r := &documentRenderer{content: c, fs: fs}
	return Plugin{
		Template:      r.template,
		WorkflowGuide: r.workflowGuide,
		Readme:        r.readme,
	}
}

type documentRenderer struct {
	content *Content
	fs      format.Strategy
}

func (r *documentRenderer) template(section domain.Section) string {
	sc, ok := r.content.Sections[section]
	if !ok {
		return ""
	}

	blocks := []string{
		r.fs.Anchor("section-" + anchorID(section)),
		r.fs.Heading(fmt.Sprintf("%d. %s", section.Number(), sc.Title), 1),
		r.fs.Italic(sc.Description),
	}

	for _, part := range sc.Parts {
		blocks = append(blocks, r.fs.Heading(part.Heading, 2), part.Guidance)
		if len(part.Table) > 0 {
			blocks = append(blocks, r.fs.Table(part.Table, [][]string{make([]string, len(part.Table))}))
		}
	}

	docs := r.fs.Link("docs.arc42.org", fmt.Sprintf(arc42DocsURL, section.Number()))
	blocks = append(blocks, r.fs.HorizontalRule(), r.fs.Italic(r.content.Labels.FurtherReading)+" "+docs)

	return join(blocks)
}

func (r *documentRenderer) workflowGuide() string {
	w := r.content.Workflow

	sections := make([]string, len(domain.Sections))
	for i, s := range domain.Sections {
		sc := r.content.Sections[s]
		sections[i] = fmt.Sprintf("%s %s: %s", r.fs.InlineCode(string(s)), r.fs.Bold(sc.Title), sc.Description)
	}

	return join([]string{
		r.fs.Heading(w.Title, 1),
		w.Intro,
		r.fs.Heading(w.StepsHeading, 2),
		r.fs.OrderedList(w.Steps),
		r.fs.Heading(w.SectionsHeading, 2),
		r.fs.UnorderedList(sections),
		r.fs.Heading(w.TipsHeading, 2),
		r.fs.UnorderedList(w.Tips),
	})
}

func (r *documentRenderer) readme(projectName string) string {
	rc := r.content.Readme
	project := strings.TrimSpace(projectName)
	if project == "" {
		project = rc.DefaultProject
	}

	contents := make([]string, len(domain.Sections))
	for i, s := range domain.Sections {
		contents[i] = r.fs.Link(r.content.Sections[s].Title, SectionsDir+"/"+r.fs.SectionFilename(s))
	}

	return join([]string{
		r.fs.Heading(strings.ReplaceAll(rc.Title, projectPlaceholder, project), 1),
		rc.Intro,
		r.fs.Heading(rc.ContentsHeading, 2),
		r.fs.OrderedList(contents),
		r.fs.Heading(rc.AboutHeading, 2),
		rc.About + " " + r.fs.Link("arc42.org", arc42Site),
	})
}

// anchorID turns "05_building_block_view" into "building-block-view".
func anchorID(s domain.Section) string {
	id := string(s)
	if i := strings.IndexByte(id, '_'); i >= 0 {
		id = id[i+1:]
	}
	return strings.ReplaceAll(id, "_", "-")
}

func join(blocks []string) string {
	return strings.Join(blocks, "\n\n") + "\n"
}
