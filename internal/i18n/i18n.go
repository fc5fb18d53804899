// Package i18n holds the user-facing strings in Brazilian Portuguese and
// English, backed by a golang.org/x/text message catalog.
package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "pt-BR"

// Message keys. Keys double as the English text.
const (
	MsgTitle          = "CineAI Ranker"
	MsgLoadFailed     = "Could not load the ranking. Please try again later."
	MsgRefresh        = "Refresh now"
	MsgRefreshing     = "Refreshing..."
	MsgHeroTitle      = "Create Cinema with"
	MsgHeroAccent     = "Artificial Intelligence"
	MsgHeroLead       = "The best free tools to turn text into epic videos. Ranking updated in real time through advanced search."
	MsgFreeBadge      = "Free / Freemium"
	MsgAccess         = "Access:"
	MsgVisit          = "Visit %s"
	MsgSourcesHeading = "Sources consulted via Google Search"
	MsgLastUpdated    = "Last updated: %s"
	MsgFooter         = "© 2024 CineAI Ranker - Explore the frontiers of visual creation."
	MsgLoading        = "Loading ranking"
	MsgNoTools        = "The search returned no tools."
)

var portuguese = map[string]string{
	MsgLoadFailed:     "Não foi possível carregar o ranking. Tente novamente mais tarde.",
	MsgRefresh:        "Atualizar Agora",
	MsgRefreshing:     "Atualizando...",
	MsgHeroTitle:      "Crie Cinema com",
	MsgHeroAccent:     "Inteligência Artificial",
	MsgHeroLead:       "As melhores ferramentas gratuitas para transformar texto em vídeos épicos. Ranking atualizado em tempo real via pesquisa avançada.",
	MsgFreeBadge:      "Grátis / Freemium",
	MsgAccess:         "Acesso:",
	MsgVisit:          "Acessar %s",
	MsgSourcesHeading: "Fontes Consultadas via Google Search",
	MsgLastUpdated:    "Última atualização: %s",
	MsgFooter:         "© 2024 CineAI Ranker - Explore as fronteiras da criação visual.",
	MsgLoading:        "Carregando ranking",
	MsgNoTools:        "A pesquisa não retornou ferramentas.",
}

var supported = []language.Tag{language.BrazilianPortuguese, language.English}

var (
	matcher = language.NewMatcher(supported)
	builder = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.BrazilianPortuguese))
	for key, pt := range portuguese {
		_ = b.SetString(language.BrazilianPortuguese, key, pt)
		_ = b.SetString(language.English, key, key)
	}
	_ = b.SetString(language.English, MsgTitle, MsgTitle)
	_ = b.SetString(language.BrazilianPortuguese, MsgTitle, MsgTitle)
	return b
}

// Localizer renders messages and times for one locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for locale. An empty locale selects DefaultLocale.
// Locales that match neither Portuguese nor English are rejected.
func New(locale string) (*Localizer, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	parsed, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return nil, fmt.Errorf("unsupported locale %q (supported: pt-BR, en)", locale)
	}
	tag := supported[idx]
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}

// MustNew is New for locales known at compile time.
func MustNew(locale string) *Localizer {
	l, err := New(locale)
	if err != nil {
		panic(err)
	}
	return l
}

// Tag returns the matched language.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Lang returns the BCP 47 string for the html lang attribute.
func (l *Localizer) Lang() string {
	return l.tag.String()
}

// T translates key, formatting args into it.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Clock formats t as a wall-clock time (HH:MM:SS) in the local zone.
func (l *Localizer) Clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("15:04:05")
}

// Supported lists the accepted locale strings.
func Supported() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		out[i] = t.String()
	}
	return out
}
