/* Copyright 2025 Revue Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package clock provides an abstract layer over the standard time package
// so that anything time-dependent (confirmation codes, token expiry, the
// title year bound) can be tested against a fixed point in time.
package clock

import (
	"sync"
	"time"
)

// Clock tells the current time. Production code uses the real
// implementation while tests use a mock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (c *systemClock) Now() time.Time {
	return time.Now()
}

// New returns a clock backed by the system time.
func New() Clock {
	return &systemClock{}
}

// Mock is a clock frozen at a configurable instant.
type Mock struct {
	mu  sync.RWMutex
	now time.Time
}

// SetNow moves the mock clock to the given instant.
func (c *Mock) SetNow(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Now returns the instant the mock clock is frozen at.
func (c *Mock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// NewMock returns a mock clock frozen at an arbitrary fixed date.
func NewMock() *Mock {
	return &Mock{
		now: time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC),
	}
}
