package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	serviceName = "market_sentry"

	// до Init() — no-op, чтобы ранние вызовы и тесты не падали
	log = zap.NewNop()
)

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

// Init строит продакшен-логгер. Вызывается один раз из main.
func Init() error {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	log = l
	return nil
}

func Sync() { _ = log.Sync() }

func Info(format string, args ...interface{}) {
	log.With(zap.String("service", serviceName)).Info(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	log.With(zap.String("service", serviceName)).Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	log.With(zap.String("service", serviceName)).Fatal(fmt.Sprintf(format, args...))
}
