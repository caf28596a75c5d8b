package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Init builds the global logger. Development gets the console encoder,
// everything else JSON.
func Init(environment, lvl string) error {
	if err := SetLevel(lvl); err != nil {
		return err
	}

	var conf zap.Config
	if environment == "development" || environment == "test" {
		conf = zap.NewDevelopmentConfig()
	} else {
		conf = zap.NewProductionConfig()
	}
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the global logger at runtime.
func SetLevel(lvl string) error {
	if lvl == "" {
		return nil
	}

	var parsed zapcore.Level
	if err := parsed.UnmarshalText([]byte(lvl)); err != nil {
		return fmt.Errorf("invalid log level %q -> %w", lvl, err)
	}
	level.SetLevel(parsed)

	return nil
}

func Level() zapcore.Level {
	return level.Level()
}
