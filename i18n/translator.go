package i18n

// Translator retrieves localized messages for error codes. data provides
// optional metadata to embed in the message (for example, "name" or "path").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "unsupported_type":
			return "未対応の型注釈です"
		case "cyclic_type":
			return "型注釈が自己参照しています"
		case "invalid_node":
			return "スキーマノードの構成が不正です"
		}
	default: // "en"
		switch code {
		case "unsupported_type":
			return "no recognizer matched the annotation"
		case "cyclic_type":
			return "annotation refers back to an ancestor on the resolution path"
		case "invalid_node":
			return "invalid schema node construction"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
