package notify

import (
	"context"
	"log/slog"

	"github.com/Dosada05/participants-admin/models"
	"golang.org/x/sync/errgroup"
)

// Sink is anything that can surface a notification banner.
type Sink interface {
	Notify(ctx context.Context, variant models.Variant, message string) error
}

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, variant models.Variant, message string) error {
	level := slog.LevelInfo
	if variant == models.VariantDanger {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, "notification dispatched",
		slog.String("variant", string(variant)),
		slog.String("message", message),
	)
	return nil
}

// Fanout рассылает уведомление во все приёмники параллельно и
// возвращает первую ошибку.
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Notify(ctx context.Context, variant models.Variant, message string) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, sink := range f.sinks {
		sink := sink
		g.Go(func() error {
			return sink.Notify(gCtx, variant, message)
		})
	}
	return g.Wait()
}
