package sim

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func TestTokenQueueEviction(t *testing.T) {
	const capacity = 13
	q := NewTokenQueue(capacity)

	for n := 1; n <= 40; n++ {
		evicted, ok := q.Enqueue(Token(fmt.Sprintf("t%d", n)))
		if q.Len() > capacity {
			t.Fatalf("Len() = %d after %d enqueues, capacity %d", q.Len(), n, capacity)
		}
		if n <= capacity {
			if ok {
				t.Errorf("enqueue %d evicted %q before the queue was full", n, evicted)
			}
			continue
		}
		if !ok || evicted != Token(fmt.Sprintf("t%d", n-capacity)) {
			t.Errorf("enqueue %d evicted (%q, %v), expected t%d", n, evicted, ok, n-capacity)
		}
		// Oldest survivor is the (n-C+1)th enqueued token
		if got, want := q.At(0), Token(fmt.Sprintf("t%d", n-capacity+1)); got != want {
			t.Errorf("At(0) after %d enqueues = %q, expected %q", n, got, want)
		}
		if got, want := q.At(capacity-1), Token(fmt.Sprintf("t%d", n)); got != want {
			t.Errorf("newest after %d enqueues = %q, expected %q", n, got, want)
		}
	}
}

func TestTokenQueueCountsSumToLen(t *testing.T) {
	palette := Palette{"red", "blue", "green", "yellow"}
	q := NewTokenQueue(13)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		q.Enqueue(palette[rng.Intn(len(palette))])
		counts := q.Counts(palette)
		if len(counts) != len(palette) {
			t.Fatalf("Counts() has %d colors, expected %d", len(counts), len(palette))
		}
		sum := 0
		for _, n := range counts {
			sum += n
		}
		if sum != q.Len() {
			t.Fatalf("counts sum = %d, Len() = %d", sum, q.Len())
		}
	}
}

func TestTokenQueueTokensAndReset(t *testing.T) {
	q := NewTokenQueue(3)
	for _, tok := range []Token{"a", "b", "c", "d"} {
		q.Enqueue(tok)
	}
	if got, want := q.Tokens(), []Token{"b", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, expected %v", got, want)
	}

	// Tokens returns a copy
	tokens := q.Tokens()
	tokens[0] = "z"
	if q.At(0) != "b" {
		t.Errorf("modifying Tokens() result changed the queue")
	}

	q.Reset()
	if q.Len() != 0 || len(q.Tokens()) != 0 {
		t.Errorf("Reset() left %d tokens", q.Len())
	}
	if q.Cap() != 3 {
		t.Errorf("Cap() = %d, expected 3", q.Cap())
	}
}

func TestBalancedSeed(t *testing.T) {
	palette := Palette{"identity", "approval", "money"}
	seed := BalancedSeed(palette, 13)
	if len(seed) != 12 {
		t.Fatalf("len(BalancedSeed) = %d, expected 12", len(seed))
	}
	for i, tok := range seed {
		if tok != palette[i%3] {
			t.Errorf("seed[%d] = %q, expected %q", i, tok, palette[i%3])
		}
	}

	q := NewTokenQueue(13)
	q.Seed(seed)
	counts := q.Counts(palette)
	for _, c := range palette {
		if counts[c] != 4 {
			t.Errorf("counts[%s] = %d, expected 4", c, counts[c])
		}
	}
}

func TestLeastAndMostRepresented(t *testing.T) {
	palette := Palette{"red", "blue", "green"}
	tests := []struct {
		counts map[Token]int
		least  Token
		most   Token
	}{
		{map[Token]int{"red": 3, "blue": 1, "green": 2}, "blue", "red"},
		{map[Token]int{"red": 0, "blue": 0, "green": 0}, "red", "red"},
		{map[Token]int{"red": 2, "blue": 5, "green": 2}, "red", "blue"},
	}
	for _, tt := range tests {
		if got := LeastRepresented(tt.counts, palette); got != tt.least {
			t.Errorf("LeastRepresented(%v) = %q, expected %q", tt.counts, got, tt.least)
		}
		if got := MostRepresented(tt.counts, palette); got != tt.most {
			t.Errorf("MostRepresented(%v) = %q, expected %q", tt.counts, got, tt.most)
		}
	}
}
