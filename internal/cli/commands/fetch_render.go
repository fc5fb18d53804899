package commands

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/cineai/internal/cli/output"
	"github.com/leapstack-labs/cineai/internal/i18n"
	"github.com/leapstack-labs/cineai/internal/ranking"
	"github.com/leapstack-labs/cineai/internal/ui/features/ranking/pages"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fetchOutput is the JSON and YAML shape of a fetch.
type fetchOutput struct {
	Model     string                   `json:"model" yaml:"model"`
	Locale    string                   `json:"locale" yaml:"locale"`
	FetchedAt string                   `json:"fetchedAt" yaml:"fetchedAt"`
	Tools     []ranking.ToolEntry      `json:"tools" yaml:"tools"`
	Sources   []ranking.CitationSource `json:"sources" yaml:"sources"`
}

func newFetchOutput(res ranking.Result, cmdCtx *CommandContext, at time.Time) fetchOutput {
	out := fetchOutput{
		Model:     cmdCtx.Cfg.Model,
		Locale:    cmdCtx.Localizer.Lang(),
		FetchedAt: at.UTC().Format(time.RFC3339),
		Tools:     res.Tools,
		Sources:   res.Sources,
	}
	if out.Tools == nil {
		out.Tools = []ranking.ToolEntry{}
	}
	if out.Sources == nil {
		out.Sources = []ranking.CitationSource{}
	}
	return out
}

// columnTitle title-cases a column name for the table header.
func columnTitle(tag language.Tag, name string) string {
	return cases.Title(tag).String(name)
}

// fetchText outputs the ranking as a styled table.
func fetchText(r *output.Renderer, loc *i18n.Localizer, res ranking.Result, at time.Time) error {
	styles := r.Styles()
	r.Header(1, loc.T(i18n.MsgTitle))
	r.Println("")

	if len(res.Tools) == 0 {
		r.Println(r.Muted(loc.T(i18n.MsgNoTools)))
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		t.Style().Format.Header = text.FormatDefault

		tag := loc.Tag()
		t.AppendHeader(table.Row{
			"#",
			columnTitle(tag, "name"),
			columnTitle(tag, "best features"),
			columnTitle(tag, "free tier"),
			columnTitle(tag, "link"),
		})
		for _, tool := range res.Tools {
			rank := ""
			if tool.Rank > 0 {
				rank = strconv.Itoa(tool.Rank)
			}
			t.AppendRow(table.Row{
				styles.Rank.Render(rank),
				styles.Name.Render(tool.Name),
				strings.Join(tool.BestFeatures, ", "),
				tool.FreeTierInfo,
				styles.Link.Render(tool.Link),
			})
		}
		t.Render()
	}

	if len(res.Sources) > 0 {
		r.Println("")
		r.Header(2, loc.T(i18n.MsgSourcesHeading))
		for _, s := range res.Sources {
			r.Printf("  %s %s\n", s.DisplayTitle(), r.Muted(s.URI))
		}
	}

	r.Println("")
	r.Println(r.Muted(loc.T(i18n.MsgLastUpdated, loc.Clock(at))))
	return nil
}

// fetchMarkdown outputs the ranking as markdown. The cards are the same
// markup the page shows, converted to markdown.
func fetchMarkdown(r *output.Renderer, loc *i18n.Localizer, res ranking.Result, at time.Time) error {
	r.Println(output.FormatHeader(1, loc.T(i18n.MsgTitle)))
	r.Println("")

	if len(res.Tools) == 0 {
		r.Println(loc.T(i18n.MsgNoTools))
	} else {
		md, err := cardsMarkdown(res.Tools, loc)
		if err != nil {
			return err
		}
		r.Println(md)
	}

	if len(res.Sources) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, loc.T(i18n.MsgSourcesHeading)))
		r.Println("")
		for _, s := range res.Sources {
			r.Printf("- [%s](%s)\n", escapeLinkText(s.DisplayTitle()), s.URI)
		}
	}

	r.Println("")
	r.Printf("_%s_\n", loc.T(i18n.MsgLastUpdated, loc.Clock(at)))
	return nil
}

// cardsMarkdown renders the card components and converts the HTML.
func cardsMarkdown(tools []ranking.ToolEntry, loc *i18n.Localizer) (string, error) {
	var buf bytes.Buffer
	if err := pages.Cards(pages.NewCards(tools, loc)).Render(context.Background(), &buf); err != nil {
		return "", fmt.Errorf("failed to render cards: %w", err)
	}
	md, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to convert cards to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

func escapeLinkText(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}
