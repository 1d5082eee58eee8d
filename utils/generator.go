package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// CodeGenerator produces human-readable token codes: a literal prefix plus a
// random 6-digit suffix, e.g. CBT-482193. Collisions are possible and are the
// caller's problem: retry up to MaxAttempts on a duplicate, then fail closed.
type CodeGenerator struct {
	Prefix      string
	MaxAttempts int

	mu   sync.Mutex
	rand *rand.Rand
}

func NewCodeGenerator(prefix string, maxAttempts int) *CodeGenerator {
	return &CodeGenerator{
		Prefix:      prefix,
		MaxAttempts: maxAttempts,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *CodeGenerator) Next() string {
	g.mu.Lock()
	n := 100000 + g.rand.Intn(900000)
	g.mu.Unlock()
	return fmt.Sprintf("%s%d", g.Prefix, n)
}
