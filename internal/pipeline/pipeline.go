// Package pipeline orchestrates a full ETL run: song data is decoded and
// written first, then log data is joined against the finished song
// dimension and the remaining tables are written.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quarrydata/tributary/internal/extract"
	"github.com/quarrydata/tributary/internal/model"
	"github.com/quarrydata/tributary/internal/sink"
	"github.com/quarrydata/tributary/internal/source"
	"github.com/quarrydata/tributary/internal/transform"
)

// Dataset prefixes inside the input location.
const (
	songDataPrefix = "song_data"
	logDataPrefix  = "log_data"
)

// Output table names.
const (
	TableSongs     = "songs"
	TableArtists   = "artists"
	TableUsers     = "users"
	TableTime      = "time"
	TableSongplays = "songplays"
)

const defaultWorkers = 8

// Options configures a pipeline run.
type Options struct {
	// Workers bounds concurrent file decodes. 0 uses the default.
	Workers int

	// Strict aborts the run on the first malformed input instead of
	// skipping and counting it.
	Strict bool

	// MaxRowsPerFile is passed through to the table writer.
	MaxRowsPerFile int
}

// RunReport summarizes what a run read, built, and wrote.
type RunReport struct {
	SongFiles int
	LogFiles  int

	SongRecords int // song records decoded
	Events      int // log events decoded
	PlayEvents  int // events with page == NextSong

	MalformedSongFiles int
	MalformedEvents    int
	DroppedSongs       int // missing song_id/artist_id
	DupSongs           int
	DroppedUsers       int // plays without a userId
	ZeroTimestamp      int
	UnmatchedPlays     int // plays whose title had no song match

	TableRows    map[string]int
	FilesWritten int
	Duration     time.Duration
}

// Pipeline connects a source, the transform builders, and a sink store
// into an ETL run.
type Pipeline struct {
	src   source.Source
	store sink.ObjectStore
	log   *zap.Logger
	opts  Options
}

// New creates a Pipeline from the given components.
func New(src source.Source, store sink.ObjectStore, log *zap.Logger, opts Options) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{src: src, store: store, log: log, opts: opts}
}

// Run executes both phases: song data, then log data.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	start := time.Now()
	rep := newReport()

	songs, err := p.songPhase(ctx, rep)
	if err != nil {
		return rep, err
	}
	if err := p.writeSongTables(ctx, rep, songs); err != nil {
		return rep, err
	}

	idx := transform.NewSongIndex(songs.Songs())
	if err := p.logPhase(ctx, rep, idx); err != nil {
		return rep, err
	}

	rep.Duration = time.Since(start)
	p.logReport(rep)
	return rep, nil
}

// RunSongs executes only the song phase, writing the songs and artists
// tables.
func (p *Pipeline) RunSongs(ctx context.Context) (*RunReport, error) {
	start := time.Now()
	rep := newReport()

	songs, err := p.songPhase(ctx, rep)
	if err != nil {
		return rep, err
	}
	if err := p.writeSongTables(ctx, rep, songs); err != nil {
		return rep, err
	}

	rep.Duration = time.Since(start)
	p.logReport(rep)
	return rep, nil
}

// RunLogs executes only the log phase. Song data is still decoded to
// rebuild the title index the fact join needs, but the songs and artists
// tables are left untouched.
func (p *Pipeline) RunLogs(ctx context.Context) (*RunReport, error) {
	start := time.Now()
	rep := newReport()

	songs, err := p.songPhase(ctx, rep)
	if err != nil {
		return rep, err
	}

	idx := transform.NewSongIndex(songs.Songs())
	if err := p.logPhase(ctx, rep, idx); err != nil {
		return rep, err
	}

	rep.Duration = time.Since(start)
	p.logReport(rep)
	return rep, nil
}

func newReport() *RunReport {
	return &RunReport{TableRows: make(map[string]int)}
}

func (p *Pipeline) workers() int {
	if p.opts.Workers > 0 {
		return p.opts.Workers
	}
	return defaultWorkers
}

// songPhase decodes all song files and builds the song and artist
// dimensions.
func (p *Pipeline) songPhase(ctx context.Context, rep *RunReport) (*transform.SongSet, error) {
	keys, err := p.src.List(ctx, songDataPrefix)
	if err != nil {
		return nil, fmt.Errorf("pipeline: list song data: %w", err)
	}
	rep.SongFiles = len(keys)
	p.log.Info("song data discovered", zap.Int("files", len(keys)))

	set := transform.NewSongSet()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for _, key := range keys {
		g.Go(func() error {
			r, err := p.src.Open(gctx, key)
			if err != nil {
				return fmt.Errorf("pipeline: %w", err)
			}
			records, malformed, derr := extract.DecodeSongs(r)
			r.Close()

			mu.Lock()
			rep.SongRecords += len(records)
			rep.MalformedSongFiles += malformed
			for _, rec := range records {
				set.Add(rec)
			}
			mu.Unlock()

			if derr != nil {
				if p.opts.Strict {
					return fmt.Errorf("pipeline: %s: %w", key, derr)
				}
				p.log.Warn("skipping malformed song file",
					zap.String("key", key), zap.Error(derr))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep.DroppedSongs = set.DroppedSongs
	rep.DupSongs = set.DupSongs
	return set, nil
}

func (p *Pipeline) writeSongTables(ctx context.Context, rep *RunReport, set *transform.SongSet) error {
	if err := writeTable(ctx, p, rep, TableSongs, set.Songs(), songPartition); err != nil {
		return err
	}
	return writeTable(ctx, p, rep, TableArtists, set.Artists(), nil)
}

// logPhase decodes all log files, filters to song plays, and builds the
// users and time dimensions and the songplays fact table.
func (p *Pipeline) logPhase(ctx context.Context, rep *RunReport, idx *transform.SongIndex) error {
	keys, err := p.src.List(ctx, logDataPrefix)
	if err != nil {
		return fmt.Errorf("pipeline: list log data: %w", err)
	}
	rep.LogFiles = len(keys)
	p.log.Info("log data discovered",
		zap.Int("files", len(keys)), zap.Int("indexed_titles", idx.Len()))

	users := transform.NewUserSet()
	times := transform.NewTimeSet()
	var plays []model.SongplayRow
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for _, key := range keys {
		g.Go(func() error {
			r, err := p.src.Open(gctx, key)
			if err != nil {
				return fmt.Errorf("pipeline: %w", err)
			}
			events, malformed, derr := extract.DecodeEvents(r)
			r.Close()
			if derr != nil {
				return fmt.Errorf("pipeline: %s: %w", key, derr)
			}
			if malformed > 0 {
				if p.opts.Strict {
					return fmt.Errorf("pipeline: %s: %d malformed events", key, malformed)
				}
				p.log.Warn("skipped malformed log lines",
					zap.String("key", key), zap.Int("lines", malformed))
			}

			mu.Lock()
			defer mu.Unlock()
			rep.Events += len(events)
			rep.MalformedEvents += malformed
			for _, ev := range events {
				if ev.Page != model.PageNextSong {
					continue
				}
				rep.PlayEvents++
				if ev.TS <= 0 {
					rep.ZeroTimestamp++
					continue
				}

				users.Add(ev)
				times.Add(ev.TS)

				if ev.UserID == "" {
					continue
				}
				if row, ok := transform.BuildSongplay(ev, idx); ok {
					plays = append(plays, row)
				} else {
					rep.UnmatchedPlays++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	rep.DroppedUsers = users.DroppedUsers

	if err := writeTable(ctx, p, rep, TableUsers, users.Rows(), nil); err != nil {
		return err
	}
	if err := writeTable(ctx, p, rep, TableTime, times.Rows(), timePartition); err != nil {
		return err
	}
	return writeTable(ctx, p, rep, TableSongplays, plays, songplayPartition)
}

// writeTable writes one table through the sink and records its row count.
func writeTable[T any](ctx context.Context, p *Pipeline, rep *RunReport, name string, rows []T, partitionFn func(T) []sink.KV) error {
	if len(rows) == 0 {
		p.log.Warn("table is empty, clearing destination", zap.String("table", name))
	}
	files, err := sink.WriteTable(ctx, p.store, name, rows, partitionFn, sink.Options{
		MaxRowsPerFile: p.opts.MaxRowsPerFile,
	})
	if err != nil {
		return err
	}
	rep.TableRows[name] = len(rows)
	rep.FilesWritten += files
	p.log.Info("table written",
		zap.String("table", name), zap.Int("rows", len(rows)), zap.Int("files", files))
	return nil
}

func (p *Pipeline) logReport(rep *RunReport) {
	p.log.Info("run complete",
		zap.Int("song_files", rep.SongFiles),
		zap.Int("log_files", rep.LogFiles),
		zap.Int("song_records", rep.SongRecords),
		zap.Int("events", rep.Events),
		zap.Int("play_events", rep.PlayEvents),
		zap.Int("unmatched_plays", rep.UnmatchedPlays),
		zap.Int("files_written", rep.FilesWritten),
		zap.Duration("duration", rep.Duration),
	)
}

func songPartition(r model.SongRow) []sink.KV {
	return []sink.KV{
		{Name: "year", Value: strconv.Itoa(int(r.Year))},
		{Name: "artist_id", Value: r.ArtistID},
	}
}

func timePartition(r model.TimeRow) []sink.KV {
	return []sink.KV{
		{Name: "year", Value: strconv.Itoa(int(r.Year))},
		{Name: "month", Value: strconv.Itoa(int(r.Month))},
	}
}

func songplayPartition(r model.SongplayRow) []sink.KV {
	return []sink.KV{
		{Name: "year", Value: strconv.Itoa(int(r.Year))},
		{Name: "month", Value: strconv.Itoa(int(r.Month))},
	}
}
