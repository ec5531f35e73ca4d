package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("unsupported_type", nil); msg == "unsupported_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("unsupported_type", nil); msg == "no recognizer matched the annotation" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Custom(t *testing.T) {
	SetTranslator(staticTranslator("boom"))
	defer SetTranslator(nil)

	if msg := T("cyclic_type", nil); msg != "boom" {
		t.Fatalf("expected custom translator message, got %q", msg)
	}
}

type staticTranslator string

func (s staticTranslator) Message(string, map[string]string) string { return string(s) }
