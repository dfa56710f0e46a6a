package models

// VariantType distinguishes the trigger name of a keyword from its explanation
type VariantType string

const (
	VariantTitle VariantType = "title"
	VariantBody  VariantType = "body"
)

// AnnotationVariant is one localized form of a keyword annotation.
// Title variants carry the English text matched against ability text;
// body variants carry the Korean explanation appended as a footnote.
type AnnotationVariant struct {
	Key  string      `json:"key" yaml:"key"`
	Type VariantType `json:"type" yaml:"type"`
	EnUS string      `json:"enUS" yaml:"enUS"`
	KoKR string      `json:"koKR" yaml:"koKR"`

	// Pair is the body a title explains, fixed when the dictionary is built.
	// Nil for bodies and for titles without an adjacent body.
	Pair *AnnotationVariant `json:"-" yaml:"-"`
}

// AnnotationCore groups every variant that describes one game mechanic.
type AnnotationCore struct {
	Key      string               `yaml:"core"`
	Variants []*AnnotationVariant `yaml:"variants"`
}

// HasType reports whether the core holds at least one variant of type t.
func (c *AnnotationCore) HasType(t VariantType) bool {
	for _, v := range c.Variants {
		if v.Type == t {
			return true
		}
	}
	return false
}

// FirstBody returns the first body variant with Korean text, or nil.
func (c *AnnotationCore) FirstBody() *AnnotationVariant {
	for _, v := range c.Variants {
		if v.Type == VariantBody && v.KoKR != "" {
			return v
		}
	}
	return nil
}
