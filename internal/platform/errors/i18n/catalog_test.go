package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestFormatTemplateExecutionErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ call .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ call .Name }}" {
		t.Fatal("expected template fallback on execute error")
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}

func TestGetCatalogMatchesLanguage(t *testing.T) {
	french := GetCatalog("fr-FR")
	if french.Locale() != "fr-FR" {
		t.Fatalf("locale = %q, want fr-FR", french.Locale())
	}
	if got := GetCatalog("fr"); got != french {
		t.Fatalf("GetCatalog(fr) locale = %q, want fr-FR catalog", got.Locale())
	}
	if got := GetCatalog("fr-CA,fr;q=0.9,en;q=0.5"); got != french {
		t.Fatalf("accept-language locale = %q, want fr-FR catalog", got.Locale())
	}
}

func TestBundledNotationMessages(t *testing.T) {
	tcs := []struct {
		locale   string
		code     Code
		metadata map[string]string
		want     string
	}{
		{"en-US", CodeNotationDiceTooLarge, map[string]string{"Limit": "500"}, "Dice count and faces cannot exceed 500"},
		{"en-US", CodeNotationUnexpectedCharacter, map[string]string{"Character": "x", "Position": "5"}, `Unexpected character "x" at position 5`},
		{"fr-FR", CodeNotationEmptyExpression, nil, "L'expression de dés est vide"},
		{"fr-FR", CodeSeedInvalid, nil, "La graine du lancer doit être un nombre entier"},
	}
	for _, tc := range tcs {
		if got := GetCatalog(tc.locale).Format(tc.code, tc.metadata); got != tc.want {
			t.Fatalf("Format(%s, %s) = %q, want %q", tc.locale, tc.code, got, tc.want)
		}
	}
}

func TestEveryCodeHasMessage(t *testing.T) {
	codes := []Code{
		CodeUnknown,
		CodeNotationUnexpectedCharacter,
		CodeNotationEmptyExpression,
		CodeNotationMalformedExpression,
		CodeNotationDiceTooLarge,
		CodeNotationNumberTooLarge,
		CodeNotationTotalOverflow,
		CodeSeedInvalid,
	}
	for _, locale := range []string{"en-US", "fr-FR"} {
		cat := GetCatalog(locale)
		for _, code := range codes {
			if got := cat.Format(code, nil); got == code {
				t.Fatalf("%s has no message for %s", locale, code)
			}
		}
	}
}
