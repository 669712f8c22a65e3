package action

import (
	"testing"

	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
)

func TestConstructorsEmitActions(t *testing.T) {
	id := runtime.NewWindowID()
	if msg := Close(id)(); msg != (CloseMsg{ID: id}) {
		t.Fatalf("expected CloseMsg, got %#v", msg)
	}
	if msg := ChangeSize(id, 10, 20)(); msg != (SizeChangeMsg{ID: id, Width: 10, Height: 20}) {
		t.Fatalf("expected SizeChangeMsg, got %#v", msg)
	}
	if _, ok := ChangeAnchor(id, layershell.AnchorTop)().(Action); !ok {
		t.Fatalf("expected anchor change to be an engine action")
	}
}

type role string

func TestTaggedActionsCarryInfo(t *testing.T) {
	msg := NewLayerShell(layershell.NewLayerShellSettings{Anchor: layershell.AnchorLeft}, role("left"))()
	typed, ok := msg.(NewLayerShellMsg[role])
	if !ok || typed.Info != "left" || typed.Settings.Anchor != layershell.AnchorLeft {
		t.Fatalf("unexpected message %#v", msg)
	}
	if _, ok := msg.(Tagged); !ok {
		t.Fatalf("expected new layer shell to be tagged")
	}
	if _, ok := NewMenu(layershell.MenuSettings{}, 3)().(NewMenuMsg[role]); ok {
		t.Fatalf("expected an int tag not to match the role tag type")
	}
}
