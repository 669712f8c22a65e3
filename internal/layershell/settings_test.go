package layershell

import (
	"errors"
	"testing"
)

func TestParseAnchorAcceptsSeparators(t *testing.T) {
	for _, input := range []string{"bottom|left|right", "bottom,left,right", "Bottom Left Right"} {
		got, err := ParseAnchor(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		want := AnchorBottom | AnchorLeft | AnchorRight
		if got != want {
			t.Fatalf("expected %s for %q, got %s", want, input, got)
		}
	}
}

func TestParseAnchorRejectsUnknownEdge(t *testing.T) {
	if _, err := ParseAnchor("top|middle"); !errors.Is(err, ErrInvalidAnchor) {
		t.Fatalf("expected ErrInvalidAnchor, got %v", err)
	}
}

func TestAnchorStringRoundTrip(t *testing.T) {
	a := AnchorTop | AnchorRight
	if a.String() != "top|right" {
		t.Fatalf("expected top|right, got %s", a.String())
	}
	back, err := ParseAnchor(a.String())
	if err != nil || back != a {
		t.Fatalf("expected %s back, got %s (%v)", a, back, err)
	}
	if Anchor(0).String() != "none" {
		t.Fatalf("expected none for empty anchor")
	}
}

func TestParseLayerAndInteractivity(t *testing.T) {
	layer, err := ParseLayer("Overlay")
	if err != nil || layer != LayerOverlay {
		t.Fatalf("expected overlay, got %v (%v)", layer, err)
	}
	if _, err := ParseLayer("sky"); !errors.Is(err, ErrInvalidLayer) {
		t.Fatalf("expected ErrInvalidLayer, got %v", err)
	}
	k, err := ParseKeyboardInteractivity("on_demand")
	if err != nil || k != KeyboardOnDemand {
		t.Fatalf("expected on-demand, got %v (%v)", k, err)
	}
	if _, err := ParseKeyboardInteractivity("always"); !errors.Is(err, ErrInvalidInteraction) {
		t.Fatalf("expected ErrInvalidInteraction, got %v", err)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Anchor != AnchorAll || s.Layer != LayerTop || s.KeyboardInteractivity != KeyboardOnDemand {
		t.Fatalf("unexpected defaults %#v", s)
	}
	if s.Size != nil || s.VirtualKeyboard != nil {
		t.Fatalf("expected unset size and virtual keyboard")
	}
}
