package wriggle

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "select", "entity": "koi"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "after-click"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "select" || runner.steps[0].Entity != "koi" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "teleport"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := NewScene(testSceneConfig(KindNone), nil)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 60}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// The runner queues press+release, and the same Update consumes the press.
	s.Update(0.001, FrameInput{})
	if got := s.Particles().Len(); got != 50 {
		t.Errorf("Len = %d after click, want 50", got)
	}
	if s.Pointer() != (Vec2{50, 60}) {
		t.Errorf("Pointer = %v, want (50, 60)", s.Pointer())
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}
	s.Update(0.001, FrameInput{})
	s.Update(0.001, FrameInput{})
	if !runner.Done() {
		t.Error("runner should be done once the release is consumed")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene(testSceneConfig(KindNone), nil)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 3; i++ {
		s.Update(0.01, FrameInput{})
		if len(s.screenshotQueue) != 0 {
			t.Fatalf("screenshot queued during wait frame %d", i)
		}
	}
	s.Update(0.01, FrameInput{})
	if got := s.TakeScreenshots(); len(got) != 1 || got[0] != "done" {
		t.Errorf("screenshots = %v, want [done]", got)
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	s := NewScene(testSceneConfig(KindNone), nil)
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "frames": 5}
	]}`))
	runner.step(s)
	if len(s.injectQueue) != 5 {
		t.Fatalf("queued events = %d, want 5", len(s.injectQueue))
	}
}

func TestRunnerStep_Controls(t *testing.T) {
	s := NewScene(testSceneConfig(KindNone), nil)
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "select", "entity": "centipede"},
		{"action": "speed", "value": 3},
		{"action": "count", "value": 120},
		{"action": "clear"}
	]}`))
	s.SetTestRunner(runner)
	s.PointerDown(10, 10)
	for i := 0; i < 4; i++ {
		s.Update(0.001, FrameInput{})
	}
	if s.Entities().Kind() != KindCentipede {
		t.Errorf("Kind = %s, want centipede", s.Entities().Kind())
	}
	if st := s.Settings(); st.Speed != 3 || st.Count != 120 {
		t.Errorf("Settings = %+v, want speed 3 count 120", st)
	}
	if s.Particles().Len() != 0 {
		t.Errorf("Len = %d, want 0 after clear", s.Particles().Len())
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Hover(t *testing.T) {
	s := NewScene(testSceneConfig(KindSnake), nil)
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "hover", "x": 700, "y": 100, "frames": 10}]}`))
	s.SetTestRunner(runner)
	for i := 0; i < 10; i++ {
		s.Update(1.0/60, FrameInput{PointerX: 0, PointerY: 0})
		if s.Pointer() != (Vec2{700, 100}) {
			t.Fatalf("frame %d: Pointer = %v, want (700, 100)", i, s.Pointer())
		}
	}
	if s.held {
		t.Error("hover should not press")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene(testSceneConfig(KindNone), nil)
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "frames": 4},
		{"action": "screenshot", "label": "after"}
	]}`))
	s.SetTestRunner(runner)
	for i := 0; i < 4; i++ {
		s.Update(0.001, FrameInput{})
		if len(s.screenshotQueue) != 0 {
			t.Fatalf("screenshot taken during drag frame %d", i)
		}
	}
	s.Update(0.001, FrameInput{})
	if len(s.screenshotQueue) != 1 {
		t.Errorf("screenshot queue = %d, want 1", len(s.screenshotQueue))
	}
}

func TestRunnerStep_SelectFailureLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	s := NewScene(testSceneConfig(KindNone), log)
	s.entities.factory = func(Kind, float64, float64, CreatureConfigs) (Creature, error) {
		panic("boom")
	}
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "select", "entity": "dragon"}]}`))
	s.SetTestRunner(runner)
	s.Update(0.016, FrameInput{})

	var found *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "script select failed" {
			found = e
		}
	}
	if found == nil {
		t.Fatal("select failure not logged")
	}
	if found.Level != logrus.DebugLevel || found.Data["entity"] != "dragon" {
		t.Errorf("entry = %v %v, want debug with entity dragon", found.Level, found.Data)
	}
	if s.Entities().Active() != nil {
		t.Error("slot should be empty after a failed select")
	}
	if len(s.Notices()) == 0 {
		t.Error("failure should still raise a notice")
	}
}
