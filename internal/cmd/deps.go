package cmd

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/salmonumbrella/chitbook/internal/book"
)

var (
	envGet       = os.Getenv
	loadBookFunc = book.Load
	now          = time.Now
	newReportID  = uuid.NewString
	newLogger    = func(w io.Writer, level zapcore.Level) *zap.Logger {
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.Lock(zapcore.AddSync(w)),
			level,
		)
		return zap.New(core)
	}
)
