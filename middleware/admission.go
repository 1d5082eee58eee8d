package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Admission is a bounded concurrency gate for the submission intake. It
// replaces the old in-memory queue and active-submission counter with an
// injected component: capacity is fixed at construction and the semaphore is
// the only shared state.
type Admission struct {
	slots chan struct{}
}

func NewAdmission(maxConcurrent int) *Admission {
	return &Admission{slots: make(chan struct{}, maxConcurrent)}
}

// Limit admits up to the configured number of in-flight requests; the rest
// are turned away immediately rather than queued.
func (a *Admission) Limit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		select {
		case a.slots <- struct{}{}:
			defer func() { <-a.slots }()
			return c.Next()
		default:
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many submissions in progress, try again shortly",
			})
		}
	}
}

// InFlight reports the current number of admitted requests.
func (a *Admission) InFlight() int {
	return len(a.slots)
}
