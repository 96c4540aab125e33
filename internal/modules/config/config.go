package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"market_sentry/internal/helper"
)

const configFilePathENV = "CONFIG_FILE"

// Config ...
type Config struct {
	Telegram struct {
		Token  string
		ChatID int64
	}
	DB string

	// Движок сигналов
	PriceChangeThreshold  float64 // %, порог движения цены
	VolumeChangeThreshold float64 // %, порог всплеска объёма
	HistoryLength         int     // сколько закрытых свечей держим на символ
	SignalCooldown        time.Duration
	MinSignalScore        float64
	MaxSignalsPerHour     int

	// Периоды индикаторов
	RSIPeriod       int
	EMAFast         int
	EMASlow         int
	BollingerPeriod int
	BollingerK      float64

	// Фид / watchlist
	KlineInterval     string
	WatchTopN         int
	SchedulerInterval time.Duration
	WatchlistFile     string

	// Монитор ручных сделок
	MonitorInterval time.Duration
	TargetProfitPct float64
	StopLossPct     float64

	// Tracing
	Jaeger struct {
		Host string
		Port int
	}

	Health struct {
		Addr string
	}
}

func NewConfig() (*Config, error) {
	v := viper.New()

	name := os.Getenv(configFilePathENV)
	if name == "" {
		name = "values_local"
	}
	v.SetConfigName(strings.TrimSuffix(name, ".yaml"))
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")

	v.SetDefault("price_change_threshold", 3.0)
	v.SetDefault("volume_change_threshold", 100.0)
	v.SetDefault("history_length", 20)
	v.SetDefault("signal_cooldown_minutes", 30)
	v.SetDefault("min_signal_score", 70.0)
	v.SetDefault("max_signals_per_hour", 5)

	v.SetDefault("rsi_period", 14)
	v.SetDefault("ema_fast", 12)
	v.SetDefault("ema_slow", 26)
	v.SetDefault("bollinger_period", 20)
	v.SetDefault("bollinger_k", 2.0)

	v.SetDefault("kline_interval", "5m")
	v.SetDefault("watch_top_n", 100)
	v.SetDefault("scheduler_interval_hours", 5)
	v.SetDefault("watchlist_file", "configs/watchlist.yaml")
	v.SetDefault("monitor_interval", "1m")
	v.SetDefault("target_profit_percent", 5.0)
	v.SetDefault("stop_loss_percent", 3.0)

	v.SetDefault("jaeger.host", "localhost")
	v.SetDefault("jaeger.port", 6831)
	v.SetDefault("health.addr", ":8080")

	// ENV перекрывает файл: PRICE_CHANGE_THRESHOLD, TELEGRAM_TOKEN и т.д.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// файл опционален — дефолты + ENV достаточны для запуска
	_ = v.ReadInConfig()

	cfg := &Config{
		DB: v.GetString("database_dsn"),

		PriceChangeThreshold:  v.GetFloat64("price_change_threshold"),
		VolumeChangeThreshold: v.GetFloat64("volume_change_threshold"),
		HistoryLength:         v.GetInt("history_length"),
		SignalCooldown:        time.Duration(v.GetInt("signal_cooldown_minutes")) * time.Minute,
		MinSignalScore:        v.GetFloat64("min_signal_score"),
		MaxSignalsPerHour:     v.GetInt("max_signals_per_hour"),

		RSIPeriod:       v.GetInt("rsi_period"),
		EMAFast:         v.GetInt("ema_fast"),
		EMASlow:         v.GetInt("ema_slow"),
		BollingerPeriod: v.GetInt("bollinger_period"),
		BollingerK:      v.GetFloat64("bollinger_k"),

		KlineInterval:     helper.NormInterval(v.GetString("kline_interval")),
		WatchTopN:         v.GetInt("watch_top_n"),
		SchedulerInterval: time.Duration(v.GetInt("scheduler_interval_hours")) * time.Hour,
		WatchlistFile:     v.GetString("watchlist_file"),

		MonitorInterval: v.GetDuration("monitor_interval"),
		TargetProfitPct: v.GetFloat64("target_profit_percent"),
		StopLossPct:     v.GetFloat64("stop_loss_percent"),
	}

	cfg.Telegram.Token = v.GetString("telegram_token")
	cfg.Telegram.ChatID = v.GetInt64("telegram_chat_id")
	cfg.Jaeger.Host = v.GetString("jaeger.host")
	cfg.Jaeger.Port = v.GetInt("jaeger.port")
	cfg.Health.Addr = v.GetString("health.addr")

	return cfg, nil
}
