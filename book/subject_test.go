package book

import "testing"

func TestSubjectOrderAndUnsubscribe(t *testing.T) {
	var s Subject[int]
	var log []string

	first := s.Subscribe(func(int) { log = append(log, "first") })
	s.Subscribe(func(int) { log = append(log, "second") })

	s.Notify(1)
	first()
	first()
	s.Notify(2)

	want := []string{"first", "second", "second"}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("call %d: got %s, want %s", i, log[i], want[i])
		}
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}

func TestSubjectUnsubscribeDuringNotify(t *testing.T) {
	var s Subject[string]
	calls := 0

	var unsubscribe func()
	unsubscribe = s.Subscribe(func(string) {
		calls++
		unsubscribe()
	})
	s.Subscribe(func(string) { calls++ })

	s.Notify("a")
	s.Notify("b")

	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}
