//go:build !feetui

package main

import "github.com/rcornwell/feeprom"

func runViewerIfRequested(engine *feeprom.Engine, requested bool) bool {
	if requested {
		Logger.Warn("viewer requested but this binary was built without the feetui tag")
	}
	return false
}
