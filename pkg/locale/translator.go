package locale

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translator resolves messages for one language. It tracks the current text
// domain and is owned by a single interpreter.
type Translator struct {
	catalog *Catalog
	lang    language.Tag
	matched language.Tag
	known   bool
	domain  string
	printer *message.Printer
}

// NewTranslator binds cat to lang. A nil catalog translates nothing.
func NewTranslator(cat *Catalog, lang language.Tag) *Translator {
	if cat == nil {
		cat = NewCatalog()
	}
	matched, known := cat.match(lang)
	return &Translator{
		catalog: cat,
		lang:    lang,
		matched: matched,
		known:   known,
		domain:  DefaultDomain,
		printer: message.NewPrinter(matched, message.Catalog(cat.builder)),
	}
}

// Language returns the requested language.
func (t *Translator) Language() language.Tag { return t.lang }

// Domain returns the current text domain.
func (t *Translator) Domain() string { return t.domain }

// SetDomain switches the text domain and returns the previous one.
func (t *Translator) SetDomain(domain string) string {
	prev := t.domain
	if domain == "" {
		domain = DefaultDomain
	}
	t.domain = domain
	return prev
}

// Translate returns the translation of msgid, or msgid itself.
func (t *Translator) Translate(msgid string) string {
	if !t.known || !t.catalog.hasSingular(t.domain, t.matched, msgid) {
		return msgid
	}
	return t.printer.Sprintf(messageKey(t.domain, msgid))
}

// TranslatePlural picks the form of a message for count n. Untranslated
// messages fall back to the English rule between singular and pluralText.
func (t *Translator) TranslatePlural(singular, pluralText string, n int64) string {
	if t.known {
		if forms, ok := t.catalog.pluralForms(t.domain, t.matched, singular); ok {
			if text, ok := forms[formFor(t.matched, n)]; ok {
				return text
			}
			if text, ok := forms[plural.Other]; ok {
				return text
			}
		}
	}
	if formFor(language.English, n) == plural.One {
		return singular
	}
	return pluralText
}

func formFor(tag language.Tag, n int64) plural.Form {
	if n < 0 {
		n = -n
	}
	return plural.Cardinal.MatchPlural(tag, int(n), 0, 0, 0, 0)
}
