// Package pages renders the ranking page. Markup lives in embedded
// html/template files and is exposed as templ components so handlers can
// render it directly or patch it over SSE.
package pages

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/cineai/internal/i18n"
	"github.com/leapstack-labs/cineai/internal/ranking"
	"github.com/leapstack-labs/cineai/internal/state"
	"github.com/leapstack-labs/cineai/internal/ui/resources"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

// DefaultSkeletons is the number of placeholder blocks shown while loading.
const DefaultSkeletons = 3

// Labels are the localized static strings of the page.
type Labels struct {
	Title          string
	Refresh        string
	Refreshing     string
	HeroTitle      string
	HeroAccent     string
	HeroLead       string
	SourcesHeading string
	Footer         string
	Loading        string
	NoTools        string
}

// NewLabels resolves all labels for loc.
func NewLabels(loc *i18n.Localizer) Labels {
	return Labels{
		Title:          loc.T(i18n.MsgTitle),
		Refresh:        loc.T(i18n.MsgRefresh),
		Refreshing:     loc.T(i18n.MsgRefreshing),
		HeroTitle:      loc.T(i18n.MsgHeroTitle),
		HeroAccent:     loc.T(i18n.MsgHeroAccent),
		HeroLead:       loc.T(i18n.MsgHeroLead),
		SourcesHeading: loc.T(i18n.MsgSourcesHeading),
		Footer:         loc.T(i18n.MsgFooter),
		Loading:        loc.T(i18n.MsgLoading),
		NoTools:        loc.T(i18n.MsgNoTools),
	}
}

// CardView is one tool card.
type CardView struct {
	Rank         int
	Name         string
	Description  string
	Features     []string
	Link         string
	FreeTierInfo string
	Badge        string
	AccessLabel  string
	VisitLabel   string
}

// NewCard projects a tool entry into a card. Missing fields render empty.
func NewCard(tool ranking.ToolEntry, loc *i18n.Localizer) CardView {
	return CardView{
		Rank:         tool.Rank,
		Name:         tool.Name,
		Description:  tool.Description,
		Features:     tool.BestFeatures,
		Link:         tool.Link,
		FreeTierInfo: tool.FreeTierInfo,
		Badge:        loc.T(i18n.MsgFreeBadge),
		AccessLabel:  loc.T(i18n.MsgAccess),
		VisitLabel:   loc.T(i18n.MsgVisit, tool.Name),
	}
}

// NewCards projects tools into cards, keeping their order.
func NewCards(tools []ranking.ToolEntry, loc *i18n.Localizer) []CardView {
	cards := make([]CardView, 0, len(tools))
	for _, t := range tools {
		cards = append(cards, NewCard(t, loc))
	}
	return cards
}

// SourceView is one citation link.
type SourceView struct {
	URI  string
	Text string
}

// ShellData is everything inside #app-shell, the element patched on updates.
type ShellData struct {
	Labels      Labels
	IsLoading   bool
	Error       string
	Skeletons   []struct{}
	Cards       []CardView
	ShowSources bool
	Sources     []SourceView
	LastUpdated string
}

// NewShellData projects the aggregate state for rendering.
func NewShellData(view state.AggregateState, loc *i18n.Localizer, skeletons int) ShellData {
	if skeletons <= 0 {
		skeletons = DefaultSkeletons
	}
	d := ShellData{
		Labels:      NewLabels(loc),
		IsLoading:   view.IsLoading,
		Error:       view.Error,
		Skeletons:   make([]struct{}, skeletons),
		Cards:       NewCards(view.Tools, loc),
		ShowSources: view.ShowSources(),
	}
	for _, s := range view.Sources {
		d.Sources = append(d.Sources, SourceView{URI: s.URI, Text: s.DisplayTitle()})
	}
	if view.UpdatedAt != nil {
		d.LastUpdated = loc.T(i18n.MsgLastUpdated, loc.Clock(*view.UpdatedAt))
	}
	return d
}

// PageData is the full document.
type PageData struct {
	Lang          string
	Title         string
	IsDev         bool
	Revision      uint64
	StylesheetURL string
	Shell         ShellData
}

// NewPageData builds the document around shell.
func NewPageData(shell ShellData, loc *i18n.Localizer, revision uint64, isDev bool) PageData {
	return PageData{
		Lang:          loc.Lang(),
		Title:         shell.Labels.Title,
		IsDev:         isDev,
		Revision:      revision,
		StylesheetURL: resources.StaticPath(resources.Stylesheet),
		Shell:         shell,
	}
}

// Page renders the whole document.
func Page(d PageData) templ.Component {
	return templ.FromGoHTML(templates.Lookup("page"), d)
}

// Shell renders #app-shell.
func Shell(d ShellData) templ.Component {
	return templ.FromGoHTML(templates.Lookup("shell"), d)
}

// Cards renders the card list.
func Cards(cards []CardView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("cards"), cards)
}

// Card renders a single card.
func Card(c CardView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("card"), c)
}
