package core

import "testing"

func TestEventQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	q.Push(GameEvent{Kind: EventOpenDoor, Entity: 1})
	q.Push(GameEvent{Kind: EventTeleport, Entity: 2})
	q.Push(GameEvent{Kind: EventOpenDoor, Entity: 3})

	want := []EntityID{1, 2, 3}
	for _, id := range want {
		e, ok := q.Pop()
		if !ok || e.Entity != id {
			t.Fatalf("Pop() = %v, expected entity %d", e, id)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("queue should be empty")
	}
}

func TestEventQueueRefusesDuplicates(t *testing.T) {
	q := NewEventQueue()
	if !q.Push(GameEvent{Kind: EventTeleport, Entity: 7}) {
		t.Fatal("first push refused")
	}
	q.Pop()
	if q.Push(GameEvent{Kind: EventTeleport, Entity: 7}) {
		t.Error("same event from the same entity accepted twice in a frame")
	}
	if !q.Push(GameEvent{Kind: EventOpenDoor, Entity: 7}) {
		t.Error("different kind from the same entity refused")
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d", q.Dropped())
	}

	q.Reset()
	if q.Len() != 0 || q.Dropped() != 0 {
		t.Error("Reset() left state")
	}
	if !q.Push(GameEvent{Kind: EventTeleport, Entity: 7}) {
		t.Error("event refused after reset")
	}
}

func TestDoorNeedsKey(t *testing.T) {
	s := newTestState(t, DefaultConfig(), withCell(room, 4, 5, 'D')...)
	res := step(t, s, Walk(DirLeft))
	if len(res.Events) != 0 || playerPos(t, s) != C(5, 5) {
		t.Error("door without key should block silently")
	}
}

func TestDoorOpensWithKey(t *testing.T) {
	rows := withCell(withCell(room, 4, 5, '%'), 3, 5, 'D')
	s := newTestState(t, DefaultConfig(), rows...)

	step(t, s, Walk(DirLeft))
	if s.Inventory().Keys != 1 {
		t.Fatalf("keys = %d after pickup", s.Inventory().Keys)
	}
	res := step(t, s, Walk(DirLeft))
	if !hasEvent(res.Events, EventOpenDoor) || !hasCue(res.Cues, CueDoor) {
		t.Errorf("expected OpenDoor with a door cue, got %v %v", res.Events, res.Cues)
	}
	if s.Inventory().Keys != 0 || s.World().CountKind(KindDoor) != 0 {
		t.Error("door should be gone and the key spent")
	}
	if got := playerPos(t, s); got != C(4, 5) {
		t.Errorf("opening moved the player to %v", got)
	}
	step(t, s, Walk(DirLeft))
	if got := playerPos(t, s); got != C(3, 5) {
		t.Errorf("player at %v, expected in the doorway", got)
	}
}

func TestTeleportPairs(t *testing.T) {
	rows := withCell(withCell(moveRobboTo(room, 2, 1), 1, 1, '&'), 5, 1, '&')
	s := newTestState(t, DefaultConfig(), rows...)

	res := step(t, s, Walk(DirLeft))
	if !hasEvent(res.Events, EventTeleport) {
		t.Fatalf("expected Teleport, got %v", res.Events)
	}
	if got := playerPos(t, s); got != C(4, 1) {
		t.Errorf("player at %v, expected next to the far pad", got)
	}
	if !hasCue(res.Cues, CueTeleport) {
		t.Errorf("expected a teleport cue, got %v", res.Cues)
	}
}

func TestScrewsAndScore(t *testing.T) {
	cfg := DefaultConfig()
	rows := withCell(withCell(room, 4, 5, 'T'), 3, 5, 'T')
	s := newTestState(t, cfg, rows...)

	if s.Info().ScrewsRequired != 2 {
		t.Fatalf("screws required = %d", s.Info().ScrewsRequired)
	}
	step(t, s, Walk(DirLeft))
	if s.Info().ScrewsLeft(s.Inventory()) != 1 || s.CapsuleCountdown() != 0 {
		t.Error("one screw should not arm the capsule")
	}
	step(t, s, Walk(DirLeft))
	if s.CapsuleCountdown() != cfg.CapsuleDelay {
		t.Errorf("countdown = %d, expected %d", s.CapsuleCountdown(), cfg.CapsuleDelay)
	}
	if s.Score() != 2*cfg.Points.Screw {
		t.Errorf("score = %d", s.Score())
	}
}

func TestRetryDropsLevelScore(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestState(t, cfg, withCell(withCell(room, 4, 5, 'T'), 1, 1, 'T')...)

	step(t, s, Walk(DirLeft))
	if s.Score() != cfg.Points.Screw {
		t.Fatalf("score = %d after the first pickup", s.Score())
	}
	if res := step(t, s, Intent{Reload: true}); !res.Reloaded {
		t.Fatal("expected a reload")
	}
	if s.Score() != 0 {
		t.Errorf("score = %d after restart, expected 0", s.Score())
	}

	step(t, s, Walk(DirLeft))
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	step(t, s, Walk(DirLeft))
	if s.Score() != cfg.Points.Screw {
		t.Errorf("score = %d after repeated pickups, expected %d", s.Score(), cfg.Points.Screw)
	}
}

func TestCompletedLevelKeepsScore(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestState(t, cfg, withCell(room, 6, 5, '!')...)

	step(t, s, Walk(DirRight))
	if s.Score() != cfg.Points.Level {
		t.Fatalf("score = %d after completion, expected %d", s.Score(), cfg.Points.Level)
	}
	step(t, s, Intent{Reload: true})
	if s.Score() != cfg.Points.Level {
		t.Errorf("restart lost points from the completed level: %d", s.Score())
	}
}

func TestLostScrewLowersRequirement(t *testing.T) {
	rows := withCell(withCell(withCell(room, 2, 2, 'T'), 4, 5, 'T'), 2, 3, 'b')
	rows = withCell(rows, 1, 3, '*')
	s := newTestState(t, DefaultConfig(), rows...)

	res := step(t, s, Intent{})
	if !hasEvent(res.Events, EventItemLost) {
		t.Fatalf("expected the screw to be lost, got %v", res.Events)
	}
	if s.Info().ScrewsRequired != 1 {
		t.Errorf("screws required = %d, expected 1", s.Info().ScrewsRequired)
	}
}
