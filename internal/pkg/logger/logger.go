package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
	With(fields map[string]interface{}) Logger
}

// ZapLogger é a implementação concreta da interface Logger sobre o zap.
type ZapLogger struct {
	z *zap.Logger
}

// NewLogger cria o Logger da aplicação. Em desenvolvimento usa saída de console,
// nos demais ambientes JSON. Um nível inválido cai para "info".
func NewLogger(level string, development bool) Logger {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	atomic := zap.NewAtomicLevelAt(zap.InfoLevel)
	if level != "" {
		if err := atomic.UnmarshalText([]byte(level)); err != nil {
			fmt.Fprintf(os.Stderr, "LOG_LEVEL inválido (%s), usando info\n", level)
			atomic = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
	}
	cfg.Level = atomic

	z, err := cfg.Build(zap.AddCallerSkip(1), zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		z = zap.NewExample()
	}
	return &ZapLogger{z: z}
}

// NewNop devolve um Logger que descarta tudo (usado nos testes).
func NewNop() Logger {
	return &ZapLogger{z: zap.NewNop()}
}

// FromZap adapta um *zap.Logger já configurado.
func FromZap(z *zap.Logger) Logger {
	return &ZapLogger{z: z}
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.z.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.z.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error) {
	l.z.Error(msg, zap.Error(err))
}

// Fatal registra o erro e encerra o processo.
func (l *ZapLogger) Fatal(msg string, err error) {
	l.z.Fatal(msg, zap.Error(err))
}

// With devolve um Logger filho com campos fixos (ex.: request_id).
func (l *ZapLogger) With(fields map[string]interface{}) Logger {
	return &ZapLogger{z: l.z.With(toZapFields(fields)...)}
}

// Sync descarrega buffers pendentes; chamado no encerramento do processo.
func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}
