//go:build feetui

package main

import "github.com/rcornwell/feeprom"

func runViewerIfRequested(engine *feeprom.Engine, requested bool) bool {
	if !requested {
		return false
	}
	if err := RunViewer(engine); err != nil {
		Logger.Error("viewer exited with error", "error", err)
	}
	return true
}
