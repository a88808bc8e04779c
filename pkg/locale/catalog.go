// Package locale translates the messages produced by `_` and nlocale
// builtins. Catalogs are grouped by text domain and language; singular
// messages go through an x/text message catalog and plural messages select a
// CLDR plural form for the requested count.
package locale

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// DefaultDomain is used until a program selects another text domain.
const DefaultDomain = "base"

// Catalog holds translations for any number of text domains and languages.
type Catalog struct {
	builder  *catalog.Builder
	singular map[string]map[language.Tag]map[string]bool
	plurals  map[string]map[language.Tag]map[string]map[plural.Form]string
	tags     []language.Tag
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		builder:  catalog.NewBuilder(),
		singular: make(map[string]map[language.Tag]map[string]bool),
		plurals:  make(map[string]map[language.Tag]map[string]map[plural.Form]string),
	}
}

// Message is one catalog entry. Plural entries carry CLDR form names
// (zero, one, two, few, many, other) instead of Str.
type Message struct {
	ID       string            `yaml:"id"`
	PluralID string            `yaml:"plural_id,omitempty"`
	Str      string            `yaml:"str,omitempty"`
	Forms    map[string]string `yaml:"forms,omitempty"`
}

type catalogFile struct {
	Domain   string    `yaml:"domain"`
	Language string    `yaml:"language"`
	Messages []Message `yaml:"messages"`
}

// Parse decodes one YAML catalog document and adds it to c.
func (c *Catalog) Parse(data []byte) error {
	var raw catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return fmt.Errorf("locale: parse catalog: %w", err)
	}
	tag, err := language.Parse(raw.Language)
	if err != nil {
		return fmt.Errorf("locale: catalog language %q: %w", raw.Language, err)
	}
	domain := strings.TrimSpace(raw.Domain)
	if domain == "" {
		domain = DefaultDomain
	}
	for _, msg := range raw.Messages {
		if err := c.Add(domain, tag, msg); err != nil {
			return err
		}
	}
	return nil
}

// Add registers a single message.
func (c *Catalog) Add(domain string, tag language.Tag, msg Message) error {
	if msg.ID == "" {
		return fmt.Errorf("locale: %s/%s: message without id", domain, tag)
	}
	c.noteTag(tag)
	if len(msg.Forms) > 0 {
		forms := make(map[plural.Form]string, len(msg.Forms))
		for name, text := range msg.Forms {
			form, ok := formsByName[name]
			if !ok {
				return fmt.Errorf("locale: %s/%s: %q: unknown plural form %q", domain, tag, msg.ID, name)
			}
			forms[form] = text
		}
		byTag := c.plurals[domain]
		if byTag == nil {
			byTag = make(map[language.Tag]map[string]map[plural.Form]string)
			c.plurals[domain] = byTag
		}
		if byTag[tag] == nil {
			byTag[tag] = make(map[string]map[plural.Form]string)
		}
		byTag[tag][msg.ID] = forms
		return nil
	}
	if err := c.builder.SetString(tag, messageKey(domain, msg.ID), escapeVerbs(msg.Str)); err != nil {
		return fmt.Errorf("locale: %s/%s: %q: %w", domain, tag, msg.ID, err)
	}
	byTag := c.singular[domain]
	if byTag == nil {
		byTag = make(map[language.Tag]map[string]bool)
		c.singular[domain] = byTag
	}
	if byTag[tag] == nil {
		byTag[tag] = make(map[string]bool)
	}
	byTag[tag][msg.ID] = true
	return nil
}

// Languages lists the languages with at least one message.
func (c *Catalog) Languages() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

func (c *Catalog) noteTag(tag language.Tag) {
	for _, t := range c.tags {
		if t == tag {
			return
		}
	}
	c.tags = append(c.tags, tag)
}

// match picks the catalog language closest to want.
func (c *Catalog) match(want language.Tag) (language.Tag, bool) {
	if len(c.tags) == 0 {
		return want, false
	}
	_, idx, conf := language.NewMatcher(c.tags).Match(want)
	if conf == language.No {
		return want, false
	}
	return c.tags[idx], true
}

func (c *Catalog) hasSingular(domain string, tag language.Tag, id string) bool {
	return c.singular[domain][tag][id]
}

func (c *Catalog) pluralForms(domain string, tag language.Tag, id string) (map[plural.Form]string, bool) {
	forms, ok := c.plurals[domain][tag][id]
	return forms, ok
}

var formsByName = map[string]plural.Form{
	"other": plural.Other,
	"zero":  plural.Zero,
	"one":   plural.One,
	"two":   plural.Two,
	"few":   plural.Few,
	"many":  plural.Many,
}

// messageKey joins domain and msgid with the gettext context separator.
func messageKey(domain, id string) string {
	return domain + "\x04" + id
}

func escapeVerbs(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
