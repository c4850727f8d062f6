package i18n_test

import (
	"testing"

	"go-hris-leave/internal/shared/i18n"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	assert.Equal(t, language.English, i18n.Match(""))
	assert.Equal(t, language.English, i18n.Match("en-US,en;q=0.9"))
	assert.Equal(t, language.Indonesian, i18n.Match("id-ID,id;q=0.9,en;q=0.5"))
	assert.Equal(t, language.English, i18n.Match("fr-FR"))
	assert.Equal(t, language.English, i18n.Match(";;;garbage"))
}

func TestMessage(t *testing.T) {
	t.Run("english keeps sentinel text", func(t *testing.T) {
		got := i18n.Message("en", "OVERLAP_CONFLICT", "request overlaps an existing pending or approved request")
		assert.Equal(t, "request overlaps an existing pending or approved request", got)
	})

	t.Run("indonesian translation", func(t *testing.T) {
		got := i18n.Message("id", "INSUFFICIENT_BALANCE", "insufficient vacation balance")
		assert.Equal(t, "Sisa cuti tidak mencukupi", got)
	})

	t.Run("unknown code falls back", func(t *testing.T) {
		got := i18n.Message("id", "SOMETHING_NEW", "fallback text")
		assert.Equal(t, "fallback text", got)
	})
}
