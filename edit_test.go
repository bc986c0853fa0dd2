package flatui_test

import (
	"testing"

	"github.com/go-theft-auto/flatui"
)

func TestEditWidgetLifecycle(t *testing.T) {
	ui, _ := newTestEngine(t, flatui.WithEditSession(flatui.NewTextEdit()))
	input := flatui.NewInputState()
	fieldID := flatui.HashID("field")
	text := "hello"

	var editing bool
	build := func(ctx *flatui.Context) {
		editing = ctx.Edit(13, flatui.Vec2{X: 100}, fieldID, &text)
	}

	// Pressing past the end of the text starts editing with the caret at
	// the end.
	input.SetPointerPos(0, 90, 5)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)
	if !editing || ui.InputCapture() != fieldID {
		t.Fatalf("press did not start editing (editing %v, capture %v)", editing, ui.InputCapture())
	}
	if !input.TextInputActive() || !input.IsRecordingTextInput() {
		t.Error("text input not enabled while editing")
	}

	input.Reset()
	input.SetPointerButton(0, false)
	input.AddTextEvent(flatui.TextEvent{Kind: flatui.TextEventText, Text: "!"})
	run(t, ui, input, build)
	if !editing {
		t.Fatal("editing stopped after typing")
	}
	if text != "hello" {
		t.Errorf("text written before commit: %q", text)
	}
	if len(input.TextEvents()) != 0 {
		t.Error("text events not consumed")
	}

	input.Reset()
	input.AddTextEvent(flatui.TextEvent{Kind: flatui.TextEventKey, Key: flatui.KeyEnter})
	run(t, ui, input, build)
	if text != "hello!" {
		t.Errorf("committed %q, want hello!", text)
	}
	if ui.InputCapture() != flatui.NoID || input.TextInputActive() {
		t.Error("input still captured after Enter")
	}

	input.Reset()
	run(t, ui, input, build)
	if editing {
		t.Error("field still editing a frame after commit")
	}
}

func TestEditWithoutSessionIsReadOnly(t *testing.T) {
	ui, _ := newTestEngine(t, flatui.WithEditSession(nil))
	input := flatui.NewInputState()
	text := "fixed"

	input.SetPointerPos(0, 5, 5)
	input.SetPointerButton(0, true)
	var editing bool
	run(t, ui, input, func(ctx *flatui.Context) {
		editing = ctx.Edit(13, flatui.Vec2{}, flatui.HashID("field"), &text)
	})
	if editing || ui.InputCapture() != flatui.NoID {
		t.Error("Edit started without an edit session")
	}
}

func TestHeldEnterAfterCommitDoesNotReopen(t *testing.T) {
	ui, _ := newTestEngine(t, flatui.WithEditSession(flatui.NewTextEdit()))
	input := flatui.NewInputState()
	fieldID := flatui.HashID("field")
	text := "hello"

	var editing bool
	build := func(ctx *flatui.Context) {
		editing = ctx.Edit(13, flatui.Vec2{X: 100}, fieldID, &text)
	}

	input.SetPointerPos(0, 90, 5)
	input.SetPointerButton(0, true)
	run(t, ui, input, build)

	// Release and move away so focus comes back only through the snap.
	input.Reset()
	input.SetPointerButton(0, false)
	input.SetPointerPos(0, 500, 500)
	run(t, ui, input, build)
	if !editing {
		t.Fatal("edit not started")
	}

	input.Reset()
	input.SetKey(flatui.KeyEnter, true)
	input.AddTextEvent(flatui.TextEvent{Kind: flatui.TextEventKey, Key: flatui.KeyEnter})
	run(t, ui, input, build)
	if ui.InputCapture() != flatui.NoID {
		t.Fatal("Enter did not commit")
	}

	for frame := 1; frame <= 3; frame++ {
		input.Reset()
		run(t, ui, input, build)
		if editing || ui.InputCapture() != flatui.NoID {
			t.Fatalf("held Enter reopened the edit on held frame %d", frame)
		}
	}
	if ui.Focus() != fieldID {
		t.Fatalf("focus %v, want the field after the snap", ui.Focus())
	}

	input.Reset()
	input.SetKey(flatui.KeyEnter, false)
	run(t, ui, input, build)
	if editing || ui.InputCapture() != flatui.NoID {
		t.Fatal("releasing Enter reopened the edit")
	}

	// A fresh press activates the focused field again.
	input.Reset()
	run(t, ui, input, build)
	input.Reset()
	input.SetKey(flatui.KeyEnter, true)
	run(t, ui, input, build)
	if !editing || ui.InputCapture() != fieldID {
		t.Errorf("new Enter press did not start editing (editing %v)", editing)
	}
	if text != "hello" {
		t.Errorf("text changed to %q", text)
	}
}
