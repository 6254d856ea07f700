/*
 * feeprom - Standalone flash simulator front end
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/feeprom"
	"github.com/rcornwell/feeprom/command/reader"
	"github.com/rcornwell/feeprom/config/feeconfig"
	"github.com/rcornwell/feeprom/internal/feedriver"
	"github.com/rcornwell/feeprom/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "feeprom.cfg", "Geometry configuration file")
	optFlash := getopt.StringLong("flash", 'f', "flash.img", "Backing flash image file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optViewer := getopt.BoolLong("viewer", 'v', "Launch the interactive hex viewer instead of the REPL")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, false))
	slog.SetDefault(Logger)

	Logger.Info("feesim started")

	geo := feeconfig.Geometry{
		PageSize:      256,
		PageCount:     64,
		DensityBytes:  4096,
		WriteLogBytes: 12192,
	}
	if _, err := os.Stat(*optConfig); err == nil {
		loaded, err := feeconfig.LoadFile(*optConfig)
		if err != nil {
			Logger.Error("loading configuration", "error", err)
			os.Exit(1)
		}
		geo = loaded
	}
	feeconfig.ApplyEnv(&geo)
	if err := geo.Validate(); err != nil {
		Logger.Error("invalid geometry", "error", err)
		os.Exit(1)
	}

	driver, err := feedriver.OpenFileDriver(*optFlash, geo.PageSize, geo.PageCount)
	if err != nil {
		Logger.Error("opening flash image", "error", err)
		os.Exit(1)
	}
	defer driver.Close()

	engine, err := feeprom.New(feeprom.Config{
		Driver:        driver,
		BaseAddress:   geo.BaseAddress,
		DensityBytes:  geo.DensityBytes,
		WriteLogBytes: geo.WriteLogBytes,
	})
	if err != nil {
		Logger.Error("initializing engine", "error", err)
		os.Exit(1)
	}

	Logger.Info("flash store ready", "density", engine.Density(), "log_capacity", engine.LogCapacity())
	if !runViewerIfRequested(engine, *optViewer) {
		reader.ConsoleReader(engine)
	}
	Logger.Info("feesim shutting down")
}
