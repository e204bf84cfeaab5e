// Package antiflood implements the submission cooldown gate.
package antiflood

import (
	"context"
	"fmt"
	"time"

	"github.com/applio/applio_bot/internal/db"
)

// Gate computes whether a user may start a new submission. It is purely
// advisory: the dispatcher decides what to do with the answer.
type Gate struct {
	users  *db.UserRepository
	window time.Duration
	now    func() time.Time
}

func NewGate(users *db.UserRepository, window time.Duration) *Gate {
	return &Gate{
		users:  users,
		window: window,
		now:    time.Now,
	}
}

// Check returns the remaining whole seconds of the cooldown and whether the
// user is throttled. Users with no prior submission are never throttled,
// and the boundary at exactly the window edge counts as open.
func (g *Gate) Check(ctx context.Context, userID int64) (int, bool, error) {
	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return 0, false, fmt.Errorf("antiflood.Check: %w", err)
	}

	if user == nil || user.LastSubmissionTime == nil {
		return 0, false, nil
	}

	elapsed := g.now().Sub(*user.LastSubmissionTime)
	if elapsed >= g.window {
		return 0, false, nil
	}

	remaining := int((g.window - elapsed).Seconds())
	return remaining, true, nil
}
