package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"rfq/config"
	"rfq/l10n"
	"rfq/record"
	"rfq/state"
)

// Run is the action behind the render subcommand. SOURCE is either a single
// record file (JSON) or a directory processed recursively; DESTINATION is
// always a directory.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if v := cmd.String("variant"); len(v) > 0 {
		variant, err := config.ParseReportVariant(v)
		if err != nil {
			log.Warn("Unknown document variant requested, keeping configured one",
				zap.Stringer("configured", env.Cfg.Document.Variant), zap.Error(err))
		} else {
			env.Cfg.Document.Variant = variant
		}
	}

	env.Overwrite = cmd.Bool("overwrite")

	bundle := l10n.Default()
	if env.Cfg.Document.LabelsPath != "" {
		if bundle, err = l10n.Load(env.Cfg.Document.LabelsPath); err != nil {
			return fmt.Errorf("unable to load localization bundle: %w", err)
		}
	}

	gen := New(&env.Cfg.Document, bundle, log)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst),
		zap.Stringer("variant", env.Cfg.Document.Variant))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if fi.Mode().IsDir() {
		return processDir(ctx, gen, src, dst, env, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	return processRecord(ctx, gen, src, dst, 1, env, log)
}

// processDir walks the directory tree rendering every record file it finds.
// Individual record failures are logged and do not stop the walk.
func processDir(ctx context.Context, gen *Generator, dir, dst string, env *state.LocalEnv, log *zap.Logger) error {
	count := 0
	defer func() {
		if count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		count++
		if err := processRecord(ctx, gen, path, dst, count, env, log); err != nil {
			log.Error("Unable to process record", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// processRecord renders a single record file. Report entries are keyed by the
// walk sequence number, base names may repeat across subdirectories.
func processRecord(ctx context.Context, gen *Generator, path, dst string, seq int, env *state.LocalEnv, log *zap.Logger) error {
	rec, err := record.Load(path)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("records/%04d-%s", seq, filepath.Base(path)), path)
	}

	result, err := gen.Generate(ctx, rec)
	if err != nil {
		return err
	}

	out := filepath.Join(dst, result.FileName)
	if _, err := os.Stat(out); err == nil && !env.Overwrite {
		return fmt.Errorf("destination file already exists (%s), use overwrite flag", out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0700); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(out, result.Data, 0644); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("output/%04d-%s", seq, result.FileName), result.Data)
	}

	log.Info("Document written", zap.String("file", out), zap.Int("pages", result.Pages))
	return nil
}
