// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"github.com/actforgood/xlog"
)

// LogErrorHandler is an ErrorHandler which logs the reported errors with a xlog.Logger.
// Passed parameter is a function that returns the logger (Logger and Properties may depend
// one of each other, this way we can instantiate them separately...)
func LogErrorHandler(loggerGetter func() xlog.Logger) ErrorHandler {
	return func(message string, cause error) {
		keyValues := []any{xlog.MessageKey, "[xprops] " + message}
		if cause != nil {
			keyValues = append(keyValues, xlog.ErrorKey, xlog.StackErr(cause))
		}
		loggerGetter().Error(keyValues...)
	}
}

// LogLevelProvider provides a level read from a Config object.
// It can be used to configure log level for a xlog.Logger.
// If the level property is not found, the default provided level is returned.
func LogLevelProvider(
	config Config,
	lvlKey string,
	defaultLvl string,
	levelLabels map[xlog.Level]string,
) xlog.LevelProvider {
	labeledLevels := flipLevelLabels(levelLabels)

	return func() xlog.Level {
		lvl, _ := config.Get(lvlKey, defaultLvl).(string)

		return labeledLevels[lvl]
	}
}

// flipLevelLabels flips level labels map.
func flipLevelLabels(levelLabels map[xlog.Level]string) map[string]xlog.Level {
	flippedLevelLabels := make(map[string]xlog.Level, len(levelLabels))
	for lvl, label := range levelLabels {
		flippedLevelLabels[label] = lvl
	}

	return flippedLevelLabels
}
