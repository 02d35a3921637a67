package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/quarrydata/tributary/internal/sink"
	"github.com/quarrydata/tributary/internal/source"
)

const probePrefix = "_tributary_probe"

// Validate verifies that the source is listable and the sink is writable
// before a run touches any real table. The write probe is removed again.
func Validate(ctx context.Context, src source.Source, store sink.ObjectStore, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	songs, err := src.List(ctx, songDataPrefix)
	if err != nil {
		return fmt.Errorf("validate: list song data: %w", err)
	}
	logs, err := src.List(ctx, logDataPrefix)
	if err != nil {
		return fmt.Errorf("validate: list log data: %w", err)
	}
	log.Info("input reachable",
		zap.Int("song_files", len(songs)), zap.Int("log_files", len(logs)))
	if len(songs) == 0 && len(logs) == 0 {
		log.Warn("input contains no dataset files")
	}

	probeKey := probePrefix + "/probe"
	if err := store.Put(ctx, probeKey, []byte("tributary write probe")); err != nil {
		return fmt.Errorf("validate: write probe: %w", err)
	}
	if err := store.RemovePrefix(ctx, probePrefix+"/"); err != nil {
		return fmt.Errorf("validate: remove probe: %w", err)
	}
	log.Info("output writable")
	return nil
}
