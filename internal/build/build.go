// Package build runs one validation pass: ingest the configured content
// directories, validate or transform each file, index what is accepted and
// report the rest.
package build

import (
	domainbuild "contentkit/internal/domain/build"
	"contentkit/internal/domain/config"
	"contentkit/internal/domain/content"
	domainerr "contentkit/internal/domain/errors"
	"contentkit/internal/index"
	"contentkit/internal/ingest"
	"contentkit/internal/logging"
	"contentkit/internal/markdown"
	"contentkit/internal/report"
	"contentkit/internal/schema"
	"contentkit/internal/transform"
	"contentkit/internal/validate"
	"context"
	"encoding/json"
	"fmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	ModeValidate = "validate"
	ModeLegacy   = "legacy"
)

type Runner struct {
	Cfg config.Config
	// Types restricts the run. Empty means every configured category.
	Types       []string
	Index       *index.Store
	Transformer *transform.Transformer
	Clock       transform.Clock
	Logger      *zap.Logger
}

// outcome is what gets cached per fingerprint.
type outcome struct {
	Valid    bool                   `json:"valid"`
	Errors   []domainerr.FieldError `json:"errors"`
	Warnings []string               `json:"warnings,omitempty"`
	Record   *index.Record          `json:"record,omitempty"`
}

func (r *Runner) mode() string {
	if r.Cfg.Content.Legacy {
		return ModeLegacy
	}
	return ModeValidate
}

func (r *Runner) now() time.Time {
	if r.Clock != nil {
		return r.Clock.Now()
	}
	return time.Now()
}

// Run never fails because of content; only I/O and index errors are
// returned.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	log := logging.OrNop(r.Logger)
	if r.Transformer == nil {
		opts := []transform.Option{}
		if r.Clock != nil {
			opts = append(opts, transform.WithClock(r.Clock))
		}
		r.Transformer = transform.New(opts...)
	}

	start := r.now()
	rep := report.New(r.mode(), start)
	dirs, unknown := r.resolveDirs()
	rep.UnknownTypes = unknown
	for _, t := range unknown {
		log.Error("unknown content type", zap.String("type", t))
	}
	for _, d := range dirs {
		rep.Section(d.Category, d.Path)
	}

	batch, err := ingest.Ingest(ctx, dirs)
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	for _, w := range batch.Warnings {
		log.Warn(w.Msg, zap.String("path", w.Path))
		rep.Notice(w.Path, w.Category, w.Msg)
	}
	for _, f := range batch.Failures {
		log.Warn("failed to process file", zap.String("path", f.Path), zap.Error(f.Err))
		rep.AddFailure(f.Path, f.Category, f.Err)
	}

	outcomes, hits, keys, err := r.processAll(ctx, batch.Files)
	if err != nil {
		return nil, err
	}

	var accepted []content.ContentFile
	for i, f := range batch.Files {
		o := outcomes[i]
		rep.Add(report.FileResult{
			File:     f.FilePath,
			Type:     f.Type,
			Valid:    o.Valid,
			Errors:   o.Errors,
			Warnings: o.Warnings,
			Cached:   hits[i],
		})
		if o.Valid {
			accepted = append(accepted, f)
		}
		log.Debug("validated",
			zap.String("path", f.FilePath),
			zap.Bool("valid", o.Valid),
			zap.Int("errors", len(o.Errors)),
			zap.Bool("cached", hits[i]),
		)
	}

	if r.Index != nil {
		if err := r.index(rep, batch.Files, outcomes, keys, accepted); err != nil {
			return nil, err
		}
	}

	rep.Duration = r.now().Sub(start)
	total, valid, invalid := rep.Totals()
	log.Info("validation finished",
		zap.String("mode", rep.Mode),
		zap.Int("files", total),
		zap.Int("valid", valid),
		zap.Int("invalid", invalid),
		zap.Int("cache_hits", rep.CacheHits),
		zap.Duration("took", rep.Duration),
	)
	return rep, nil
}

// resolveDirs maps the requested types to configured directories in
// category order. Unknown names are returned separately.
func (r *Runner) resolveDirs() ([]ingest.Dir, []string) {
	want := make(map[content.Category]bool)
	var unknown []string
	for _, t := range r.Types {
		c, ok := content.ParseCategory(strings.TrimSpace(t))
		if _, configured := r.Cfg.Content.Dirs[c]; !ok || !configured {
			unknown = append(unknown, t)
			continue
		}
		want[c] = true
	}
	var dirs []ingest.Dir
	for _, c := range r.Cfg.OrderedDirs() {
		if len(r.Types) > 0 && !want[c] {
			continue
		}
		dirs = append(dirs, ingest.Dir{Category: c, Path: r.Cfg.Content.Dirs[c]})
	}
	return dirs, unknown
}

func (r *Runner) processAll(ctx context.Context, files []content.ContentFile) ([]outcome, []bool, []string, error) {
	out := make([]outcome, len(files))
	hits := make([]bool, len(files))
	keys := make([]string, len(files))
	opts := r.Cfg.Options()
	optsHash := optionsHash(opts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fp := r.fingerprint(f, optsHash)
			keys[i] = fp.Key
			if r.Index != nil {
				var cached outcome
				found, err := r.Index.GetCache(fp.Key, &cached)
				if err != nil {
					return fmt.Errorf("cache read %s: %w", f.FilePath, err)
				}
				if found {
					out[i], hits[i] = cached, true
					return nil
				}
			}
			o := r.process(f, opts)
			if o.Record != nil {
				o.Record.Fingerprint = fp.Key
			}
			out[i] = o
			if r.Index != nil {
				if err := r.Index.PutCache(fp.Key, o); err != nil {
					return fmt.Errorf("cache write %s: %w", f.FilePath, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return out, hits, keys, nil
}

func (r *Runner) fingerprint(f content.ContentFile, optsHash string) domainbuild.Fingerprint {
	fp := domainbuild.Fingerprint{
		ContentHash:   f.ContentHash,
		OptionsHash:   optsHash,
		SchemaVersion: schema.Version,
		// the path feeds the filename slug, so it is part of the identity
		Mode: r.mode() + "\x00" + string(f.Type) + "\x00" + f.FilePath,
	}
	fp.ComputeKey()
	return fp
}

// process validates one file the way the configured mode asks for.
func (r *Runner) process(f content.ContentFile, opts transform.Options) outcome {
	if r.Cfg.Content.Legacy {
		pr := r.Transformer.ProcessFile(f, opts)
		o := outcome{Valid: pr.Success, Errors: pr.Errors}
		for _, w := range pr.Warnings {
			o.Warnings = append(o.Warnings, w.Field+": "+w.Message)
		}
		if pr.Success {
			rec := r.record(f, pr.Content.Meta)
			o.Record = &rec
		}
		return o
	}

	res := validate.ValidateContentByType(ingest.Prepare(f), string(f.Type))
	o := outcome{Valid: res.Valid, Errors: res.Errors}
	if res.Valid {
		rec := r.record(f, res.Data)
		o.Record = &rec
	}
	return o
}

func (r *Runner) record(f content.ContentFile, c content.AnyContent) index.Record {
	a := r.Transformer.Analyze([]byte(f.Content), r.Cfg.Options().EnableGFM)
	return index.NewRecord(c, f.FilePath, a.Stats(c.Base().LastTouched(), r.now()))
}

func (r *Runner) index(rep *report.Report, files []content.ContentFile, outcomes []outcome, keys []string, accepted []content.ContentFile) error {
	byPath := make(map[string]*index.Record, len(files))
	for i, f := range files {
		if rec := outcomes[i].Record; rec != nil {
			byPath[f.FilePath] = rec
		}
	}
	unique, dupes := ingest.Dedupe(accepted)
	for _, w := range dupes {
		rep.Notice(w.Path, w.Category, w.Msg)
	}
	now := r.now()
	records := make([]index.Record, 0, len(unique))
	for _, f := range unique {
		rec := *byPath[f.FilePath]
		// freshness depends on the run time, not on the cached content
		rec.Stats.FreshnessScore = markdown.Freshness(lastTouched(rec), now)
		records = append(records, rec)
	}

	if len(r.Types) == 0 {
		if err := r.Index.Rebuild(records); err != nil {
			return err
		}
		keep := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			keep[k] = struct{}{}
		}
		if _, err := r.Index.PruneCache(keep); err != nil {
			return fmt.Errorf("index: prune cache: %w", err)
		}
	} else {
		for _, rec := range records {
			if err := r.Index.Upsert(rec); err != nil {
				return err
			}
		}
	}

	total, valid, invalid := rep.Totals()
	run := index.Run{
		Mode:       rep.Mode,
		StartedAt:  rep.StartedAt,
		FinishedAt: now,
		Files:      total,
		Valid:      valid,
		Invalid:    invalid,
		CacheHits:  rep.CacheHits,
	}
	if err := r.Index.RecordRun(&run); err != nil {
		return fmt.Errorf("index: record run: %w", err)
	}
	rep.RunID = run.ID
	return nil
}

func lastTouched(rec index.Record) time.Time {
	if rec.UpdatedAt != nil && rec.UpdatedAt.After(rec.PublishedAt) {
		return *rec.UpdatedAt
	}
	return rec.PublishedAt
}

func optionsHash(o transform.Options) string {
	b, _ := json.Marshal(o)
	return domainbuild.HashString(string(b))
}

// WriteJSON writes v indented to rel under root, creating directories.
func WriteJSON(root, rel string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(root, rel, append(b, '\n'))
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
