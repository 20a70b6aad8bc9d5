package i18n

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	tcs := map[string]language.Tag{
		"":      language.English,
		"en":    language.English,
		"en-GB": language.English,
		"pt-BR": language.MustParse("pt-BR"),
		"pt_br": language.MustParse("pt-BR"),
		"!!":    language.English,
		"fr":    language.English,
	}
	for value, want := range tcs {
		if got := ResolveTag(value); got != want {
			t.Fatalf("ResolveTag(%q) = %s, want %s", value, got, want)
		}
	}
}

func TestSupportedReturnsCopy(t *testing.T) {
	tags := Supported()
	if len(tags) != 2 {
		t.Fatalf("supported tags = %v", tags)
	}
	tags[0] = language.French
	if Supported()[0] != language.English {
		t.Fatal("mutating Supported() result changed package state")
	}
}

func TestPrinterTranslates(t *testing.T) {
	en := Printer(language.English).Sprintf("game.won", 12)
	if en != "Board cleared in 12 seconds." {
		t.Fatalf("english = %q", en)
	}
	pt := Printer(ResolveTag("pt-BR")).Sprintf("game.won", 12)
	if pt != "Tabuleiro limpo em 12 segundos." {
		t.Fatalf("portuguese = %q", pt)
	}
}

func TestEveryKeyIsTranslated(t *testing.T) {
	keys := []string{
		"error.UNKNOWN", "error.INVALID_CONFIGURATION", "error.OUT_OF_BOUNDS",
		"error.GAME_NOT_FOUND", "error.GAME_NOT_WON", "error.GAME_LIMIT_REACHED",
		"error.UNKNOWN_PRESET", "error.PLAYER_NAME_EMPTY", "error.SCORE_ALREADY_RECORDED",
		"error.INVALID_FILTER", "error.INVALID_PAGE_TOKEN", "error.NOT_FOUND",
		"status.ONGOING", "status.WON", "status.LOST",
		"game.lost",
	}
	for _, tag := range Supported() {
		p := Printer(tag)
		for _, key := range keys {
			if got := p.Sprintf(key); got == key || strings.TrimSpace(got) == "" {
				t.Fatalf("%s: key %q is not registered", tag, key)
			}
		}
	}
}
