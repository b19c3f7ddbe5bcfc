package planner

import (
	"strings"
	"testing"

	"cityagent/models"
)

func TestRationaleMentionsSizeAndLocation(t *testing.T) {
	intent := largeParkIntent()
	features := NewGenerator(2).Generate(intent, nil, testBlueprint())

	text := Rationale(intent, features, RationaleContext{CityType: "suburban"})

	if text == "" {
		t.Fatal("rationale must never be empty")
	}
	for _, want := range []string{"large", "north", "public park"} {
		if !strings.Contains(text, want) {
			t.Errorf("rationale %q does not mention %q", text, want)
		}
	}
}

func TestRationaleSingularPlural(t *testing.T) {
	intent := largeParkIntent()

	one := NewGenerator(2).Generate(intent, nil, testBlueprint())
	single := Rationale(intent, one, RationaleContext{})
	if !strings.Contains(single, "1 public park") {
		t.Errorf("singular rationale %q missing count clause", single)
	}

	intent.Quantity = 3
	three := NewGenerator(2).Generate(intent, nil, testBlueprint())
	plural := Rationale(intent, three, RationaleContext{})
	if !strings.Contains(plural, "3 public park features") {
		t.Errorf("plural rationale %q missing count clause", plural)
	}
}

func TestRationaleOmitsCenterClause(t *testing.T) {
	intent := largeParkIntent()
	intent.LocationPreference = models.LocationCenter
	intent.Size = models.SizeMedium

	features := NewGenerator(2).Generate(intent, nil, testBlueprint())
	text := Rationale(intent, features, RationaleContext{})

	if strings.Contains(text, "side of the blueprint") {
		t.Errorf("center placement should not produce a location clause: %q", text)
	}
	if strings.Contains(text, "sized") {
		t.Errorf("medium size should not produce a size clause: %q", text)
	}
}

func TestRationaleNeutralIntentStillExplains(t *testing.T) {
	intent := Classify("hello there", nil)
	text := Rationale(intent, nil, RationaleContext{ExistingCount: 4})

	if text == "" {
		t.Fatal("rationale must never be empty")
	}
	if !strings.Contains(text, "did not add any features") {
		t.Errorf("neutral rationale %q should say nothing was added", text)
	}
	if !strings.Contains(text, "4 placed elements") {
		t.Errorf("neutral rationale %q should mention the existing count", text)
	}
}
