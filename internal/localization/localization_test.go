package localization

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLocales(t *testing.T) {
	l := Default()

	langs := l.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, "en", langs[0].Code)
	assert.Equal(t, "Español", langs[1].NativeName)
}

func TestResolve(t *testing.T) {
	l := Default()
	assert.Equal(t, "es", l.Resolve("ES"))
	assert.Equal(t, "es", l.Resolve("es-MX"))
	assert.Equal(t, "en", l.Resolve("de"))
	assert.Equal(t, "en", l.Resolve(""))
}

func TestGetStringFallbacks(t *testing.T) {
	l := Default()
	assert.Equal(t, "Enviar denuncia", l.GetString("es", "report.submit"))
	assert.Equal(t, "No alerts right now.", l.GetString("es", "alerts.empty"), "missing key falls back to English")
	assert.Equal(t, "no.such.key", l.GetString("es", "no.such.key"))
}

func TestStringsMergesEnglish(t *testing.T) {
	l := Default()
	s := l.Strings("es")
	assert.Equal(t, "Inicio", s["nav.home"])
	assert.Equal(t, "No alerts right now.", s["alerts.empty"])
}

func TestContent(t *testing.T) {
	l := Default()
	c := l.Content("es")
	assert.Equal(t, "es", c.Language)
	assert.Len(t, c.Disclaimer, 3)
	assert.Len(t, c.Features, 5)
	assert.Len(t, c.Carousel, 3)
}

func TestContentFallsBackPerSection(t *testing.T) {
	fsys := fstest.MapFS{
		"en.json": {Data: []byte(`{"language":{"name":"English"},"strings":{"a":"A"},"content":{"features":[{"title":"F"}],"carousel":[{"title":"S"}]}}`)},
		"fr.json": {Data: []byte(`{"language":{"name":"French"},"strings":{},"content":{"features":[{"title":"Fonction"}]}}`)},
	}
	l, err := NewLocalizer(fsys)
	require.NoError(t, err)

	c := l.Content("fr")
	assert.Equal(t, "Fonction", c.Features[0].Title)
	assert.Equal(t, "S", c.Carousel[0].Title)
}

func TestNewLocalizerRequiresEnglish(t *testing.T) {
	_, err := NewLocalizer(fstest.MapFS{"fr.json": {Data: []byte(`{}`)}})
	assert.Error(t, err)
}
