package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		locale  string
		wantTag language.Tag
		wantErr bool
	}{
		{name: "empty uses default", locale: "", wantTag: language.BrazilianPortuguese},
		{name: "pt-BR", locale: "pt-BR", wantTag: language.BrazilianPortuguese},
		{name: "plain pt", locale: "pt", wantTag: language.BrazilianPortuguese},
		{name: "english", locale: "en", wantTag: language.English},
		{name: "regional english", locale: "en-US", wantTag: language.English},
		{name: "malformed", locale: "not a locale!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.locale)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTag, l.Tag())
		})
	}
}

func TestLocalizer_T(t *testing.T) {
	pt := MustNew("pt-BR")
	en := MustNew("en")

	assert.Equal(t, "Não foi possível carregar o ranking. Tente novamente mais tarde.", pt.T(MsgLoadFailed))
	assert.Equal(t, "Could not load the ranking. Please try again later.", en.T(MsgLoadFailed))
	assert.Equal(t, "Atualizar Agora", pt.T(MsgRefresh))
	assert.Equal(t, "Atualizando...", pt.T(MsgRefreshing))
	assert.Equal(t, "Acessar Kling AI", pt.T(MsgVisit, "Kling AI"))
	assert.Equal(t, "Visit Kling AI", en.T(MsgVisit, "Kling AI"))
	assert.Equal(t, "Última atualização: 10:00:00", pt.T(MsgLastUpdated, "10:00:00"))
	assert.Equal(t, "Grátis / Freemium", pt.T(MsgFreeBadge))
}

func TestLocalizer_Clock(t *testing.T) {
	l := MustNew("pt-BR")
	at := time.Date(2025, 3, 4, 9, 5, 7, 0, time.Local)

	assert.Equal(t, "09:05:07", l.Clock(at))
	assert.Empty(t, l.Clock(time.Time{}))
}

func TestEveryKeyHasPortuguese(t *testing.T) {
	pt := MustNew("pt-BR")
	for key := range portuguese {
		assert.NotEmpty(t, pt.T(key), "missing translation for %q", key)
	}
	assert.Equal(t, []string{"pt-BR", "en"}, Supported())
}
