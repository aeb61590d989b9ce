package export

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the exam date format.
const DateLayout = "2006-01-02"

// Chart holds the form fields printed beside the marked diagram.
type Chart struct {
	Head      string
	Neck      string
	LeftFore  string
	RightFore string
	LeftHind  string
	RightHind string
	Body      string
	Microchip string
	ExamDate  string
	Approved  bool
	Signatory string
}

// Status is APPROVED for signed charts and DRAFT otherwise.
func (c Chart) Status() string {
	if c.Approved {
		return "APPROVED"
	}
	return "DRAFT"
}

// Field is one labelled row of the chart.
type Field struct {
	Key   string
	Label string
	Value string
}

var fieldKeys = []struct {
	key, label string
	aliases    []string
}{
	{"head", "Head", nil},
	{"neck", "Neck", nil},
	{"lf", "Left fore", []string{"left-fore", "leftfore"}},
	{"rf", "Right fore", []string{"right-fore", "rightfore"}},
	{"lh", "Left hind", []string{"left-hind", "lefthind"}},
	{"rh", "Right hind", []string{"right-hind", "righthind"}},
	{"body", "Body", nil},
	{"microchip", "Microchip", []string{"chip"}},
}

// Fields returns the description rows in print order.
func (c Chart) Fields() []Field {
	values := []string{c.Head, c.Neck, c.LeftFore, c.RightFore, c.LeftHind, c.RightHind, c.Body, c.Microchip}
	out := make([]Field, len(fieldKeys))
	for i, f := range fieldKeys {
		out[i] = Field{Key: f.key, Label: f.label, Value: values[i]}
	}
	return out
}

// Set assigns a description field by key. Keys are the short names
// head, neck, lf, rf, lh, rh, body and microchip, or their long aliases.
func (c *Chart) Set(key, value string) error {
	key = canonicalKey(key)
	value = strings.TrimSpace(value)
	switch key {
	case "head":
		c.Head = value
	case "neck":
		c.Neck = value
	case "lf":
		c.LeftFore = value
	case "rf":
		c.RightFore = value
	case "lh":
		c.LeftHind = value
	case "rh":
		c.RightHind = value
	case "body":
		c.Body = value
	case "microchip":
		c.Microchip = value
	default:
		return fmt.Errorf("unknown chart field %q", key)
	}
	return nil
}

func canonicalKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, f := range fieldKeys {
		if key == f.key {
			return key
		}
		for _, a := range f.aliases {
			if key == a {
				return f.key
			}
		}
	}
	return key
}

// SetDate validates and stores the exam date.
func (c *Chart) SetDate(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		c.ExamDate = ""
		return nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("exam date %q: want YYYY-MM-DD", value)
	}
	c.ExamDate = value
	return nil
}

// Approve marks the chart signed by signatory. An empty signatory
// withdraws approval.
func (c *Chart) Approve(signatory string) {
	c.Signatory = strings.TrimSpace(signatory)
	c.Approved = c.Signatory != ""
}
