// Package util provides utility functions for the application
package util

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/rs/zerolog/log"
)

// KeepAwakeInterval is the interval for mouse movement to keep computer awake
const KeepAwakeInterval = 1 * time.Minute

// KeepAwake nudges the mouse every KeepAwakeInterval so a long hunt is not
// interrupted by the machine going to sleep. It returns when ctx is done.
func KeepAwake(ctx context.Context) {
	ticker := time.NewTicker(KeepAwakeInterval)
	defer ticker.Stop()

	log.Info().Msg("Starting keep-awake routine")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping keep-awake routine")
			return
		case <-ticker.C:
			x, y := robotgo.GetMousePos()
			dx := rand.IntN(20) - 10
			dy := rand.IntN(20) - 10
			robotgo.MoveSmooth(x+dx, y+dy)
		}
	}
}
