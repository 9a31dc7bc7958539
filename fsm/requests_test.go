package fsm

import "testing"

func TestRequestsConsumeClears(t *testing.T) {
	r := NewRequests()
	r.Push("recall")
	if !r.Consume("recall") {
		t.Fatalf("pushed token must be consumable")
	}
	if r.Consume("recall") {
		t.Fatalf("second consume without a new push must return false")
	}
}

func TestRequestsPushIdempotent(t *testing.T) {
	r := NewRequests()
	r.Push("wield")
	r.Push("wield")
	if !r.Consume("wield") {
		t.Fatalf("token missing after duplicate push")
	}
	if r.Consume("wield") {
		t.Fatalf("duplicate push must not stack")
	}
}

func TestRequestsPendingSnapshot(t *testing.T) {
	cases := []struct {
		name string
		push []Request
		want []Request
	}{
		{"empty", nil, nil},
		{"single", []Request{"toggle"}, []Request{"toggle"}},
		{"sorted", []Request{"wield", "recall", "toggle"}, []Request{"recall", "toggle", "wield"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRequests()
			for _, req := range c.push {
				r.Push(req)
			}
			got := r.Pending()
			if len(got) != len(c.want) {
				t.Fatalf("Pending() = %v, want %v", got, c.want)
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("Pending() = %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestRequestsClear(t *testing.T) {
	r := NewRequests()
	r.Push("lunge")
	r.Push("sheathe")
	r.Clear()
	if r.Consume("lunge") || r.Consume("sheathe") {
		t.Fatalf("tokens survived Clear")
	}
}

func TestRequestsNilSafe(t *testing.T) {
	var r *Requests
	r.Push("toggle")
	if r.Consume("toggle") {
		t.Fatalf("nil buffer must consume nothing")
	}
	if r.Pending() != nil {
		t.Fatalf("nil buffer must have no pending tokens")
	}
}
