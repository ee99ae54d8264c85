package domain

import "testing"

func TestEvent_Free(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		priceCents int64
		want       bool
	}{
		{name: "zero price is free", priceCents: 0, want: true},
		{name: "paid event is not free", priceCents: 1500, want: false},
		{name: "one cent is not free", priceCents: 1, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := Event{PriceCents: tt.priceCents}
			if got := e.Free(); got != tt.want {
				t.Fatalf("expected Free() = %v for price %d, got %v", tt.want, tt.priceCents, got)
			}
		})
	}
}

func TestEvent_SoldOut(t *testing.T) {
	t.Parallel()

	e := Event{Capacity: 3}

	if e.SoldOut(2) {
		t.Fatalf("expected event with spots left not to be sold out")
	}
	if !e.SoldOut(3) {
		t.Fatalf("expected event at capacity to be sold out")
	}
	if !e.SoldOut(4) {
		t.Fatalf("expected event over capacity to be sold out")
	}
}

func TestEvent_SpotsLeft(t *testing.T) {
	t.Parallel()

	e := Event{Capacity: 10}

	if got := e.SpotsLeft(0); got != 10 {
		t.Fatalf("expected 10 spots left, got %d", got)
	}
	if got := e.SpotsLeft(7); got != 3 {
		t.Fatalf("expected 3 spots left, got %d", got)
	}
	if got := e.SpotsLeft(10); got != 0 {
		t.Fatalf("expected 0 spots left, got %d", got)
	}
}
