// Package sim implements the balance-driven runner simulation: a bounded
// token queue, the balance policies that turn it into speed, the logical
// clock, spawning, the rival ghost and the run state machine that drives
// them once per frame. It has no knowledge of terminals, audio or files.
package sim

// Token is a collected color, identified by its palette name.
type Token string

// Palette is the ordered set of known colors. Order decides tie-breaks and
// the iteration order of weighted spawning.
type Palette []Token

// NewPalette builds a palette from config color names.
func NewPalette(names []string) Palette {
	p := make(Palette, len(names))
	for i, n := range names {
		p[i] = Token(n)
	}
	return p
}

// Contains reports whether t is a known color.
func (p Palette) Contains(t Token) bool {
	return p.Index(t) >= 0
}

// Index returns the position of t in the palette, or -1.
func (p Palette) Index(t Token) int {
	for i, c := range p {
		if c == t {
			return i
		}
	}
	return -1
}

// TokenQueue is a bounded FIFO of collected tokens backed by a ring buffer.
// Index 0 is the oldest token. The only way tokens leave is eviction on
// overflow or a full Reset.
type TokenQueue struct {
	buf  []Token
	head int
	n    int
}

// NewTokenQueue creates an empty queue. Capacity is at least 1.
func NewTokenQueue(capacity int) *TokenQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &TokenQueue{buf: make([]Token, capacity)}
}

// Enqueue appends t, evicting the oldest token first when full.
// Returns the evicted token and whether an eviction happened.
func (q *TokenQueue) Enqueue(t Token) (Token, bool) {
	if q.n == len(q.buf) {
		evicted := q.buf[q.head]
		q.buf[q.head] = t
		q.head = (q.head + 1) % len(q.buf)
		return evicted, true
	}
	q.buf[(q.head+q.n)%len(q.buf)] = t
	q.n++
	return "", false
}

// Len returns the number of tokens held.
func (q *TokenQueue) Len() int {
	return q.n
}

// Cap returns the fixed capacity.
func (q *TokenQueue) Cap() int {
	return len(q.buf)
}

// At returns the i-th oldest token. Panics if i is out of range.
func (q *TokenQueue) At(i int) Token {
	if i < 0 || i >= q.n {
		panic("sim: token index out of range")
	}
	return q.buf[(q.head+i)%len(q.buf)]
}

// Tokens returns a copy of the queue contents, oldest first.
func (q *TokenQueue) Tokens() []Token {
	out := make([]Token, q.n)
	for i := range out {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	return out
}

// Counts returns occurrences per color by full scan. Every palette color
// is present in the result, zero if absent from the queue.
func (q *TokenQueue) Counts(p Palette) map[Token]int {
	counts := make(map[Token]int, len(p))
	for _, c := range p {
		counts[c] = 0
	}
	for i := 0; i < q.n; i++ {
		counts[q.buf[(q.head+i)%len(q.buf)]]++
	}
	return counts
}

// Reset empties the queue.
func (q *TokenQueue) Reset() {
	for i := range q.buf {
		q.buf[i] = ""
	}
	q.head = 0
	q.n = 0
}

// Seed resets the queue and enqueues tokens in order.
func (q *TokenQueue) Seed(tokens []Token) {
	q.Reset()
	for _, t := range tokens {
		q.Enqueue(t)
	}
}

// BalancedSeed returns floor(capacity/len(p)) of each color, interleaved
// in palette order.
func BalancedSeed(p Palette, capacity int) []Token {
	if len(p) == 0 {
		return nil
	}
	per := capacity / len(p)
	out := make([]Token, 0, per*len(p))
	for i := 0; i < per; i++ {
		out = append(out, p...)
	}
	return out
}

// LeastRepresented returns the palette color with the lowest count.
// Ties go to the earliest palette entry.
func LeastRepresented(counts map[Token]int, p Palette) Token {
	var best Token
	bestCount := -1
	for _, c := range p {
		if bestCount < 0 || counts[c] < bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}

// MostRepresented returns the palette color with the highest count.
// Ties go to the earliest palette entry.
func MostRepresented(counts map[Token]int, p Palette) Token {
	var best Token
	bestCount := -1
	for _, c := range p {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}
