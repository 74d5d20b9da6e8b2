package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/sunshineplan/imgfx"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
)

var version = "dev"

var logFile *lumberjack.Logger

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var code int
	if err := newRoot(ctx).ExecuteContext(ctx); err != nil {
		code = 1
	}
	if logFile != nil {
		logFile.Close()
	}
	os.Exit(code)
}

func newRoot(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "imgfx",
		Short:        "apply photographic effects to images",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			file, _ := cmd.Flags().GetString("log-file")
			setupLogger(logLevel, file)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.AddCommand(
		newApplyCmd(ctx),
		newHistogramCmd(),
		newVersionCmd(),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "also write logs to this file, rotated by size")
	return cmd
}

func setupLogger(logLevel, file string) {
	var level slog.Level
	invalid := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
	if invalid != nil {
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stdout
	if file != "" {
		logFile = &lumberjack.Logger{Filename: file, MaxSize: 10, MaxBackups: 3}
		w = io.MultiWriter(logFile, os.Stdout)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With("run", uuid.NewString())
	slog.SetDefault(logger)
	imgfx.SetLogger(logger)

	if invalid != nil {
		slog.Warn("Invalid log level, defaulting to INFO", "level", logLevel, "error", invalid)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func newApplyCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "apply effects to an image or a directory of images",
		Long: "apply resizes each source image, runs the effects in order, rotates it,\n" +
			"adds the watermark and encodes it into the destination directory.\n\nEffects:\n  " +
			strings.Join(imgfx.EffectUsage(), "\n  "),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			src, _ := f.GetString("src")
			dst, _ := f.GetString("dst")
			format, _ := f.GetString("format")
			quality, _ := f.GetInt("quality")
			effects, _ := f.GetStringArray("effect")
			rotate, _ := f.GetFloat64("rotate")
			width, _ := f.GetInt("width")
			height, _ := f.GetInt("height")
			percent, _ := f.GetFloat64("percent")
			histogram, _ := f.GetBool("histogram")
			force, _ := f.GetBool("force")
			autoOrientation, _ := f.GetBool("auto-orientation")
			watermark, _ := f.GetString("watermark")
			opacity, _ := f.GetUint("opacity")
			random, _ := f.GetBool("random")
			offsetX, _ := f.GetInt("x")
			offsetY, _ := f.GetInt("y")
			split, _ := f.GetInt("split")
			splitMode, _ := f.GetString("split-mode")
			worker, _ := f.GetInt("worker")

			if src == "" && len(args) > 0 {
				src = args[0]
			}
			if src == "" {
				return errors.New("source is required. Use --src flag or provide as argument")
			}

			task := imgfx.NewOptions()
			if err := task.SetFormat(format, imgfx.Quality(quality)); err != nil {
				slog.Error("Failed to set format", "format", format, "error", err)
				return err
			}
			if err := task.AddEffect(effects...); err != nil {
				slog.Error("Failed to parse effect", "error", err)
				return err
			}
			task.SetRotate(rotate)
			if width != 0 || height != 0 || percent != 0 {
				task.SetResize(width, height, percent)
			}
			if watermark != "" {
				mark, err := open(watermark, autoOrientation)
				if err != nil {
					slog.Error("Failed to open watermark", "watermark", watermark, "error", err)
					return err
				}
				task.SetWatermark(mark, opacity).Watermark.
					SetRandom(random).
					SetOffset(image.Pt(offsetX, offsetY))
			}
			mode, err := imgfx.ParseSplitMode(splitMode)
			if err != nil {
				slog.Error("Failed to parse split mode", "error", err)
				return err
			}

			j := &job{
				task:            &task,
				force:           force,
				histogram:       histogram,
				autoOrientation: autoOrientation,
				split:           split,
				splitMode:       mode,
			}
			return run(ctx, j, src, dst, max(worker, 1))
		},
	}

	pf := cmd.Flags()
	pf.String("src", "", "source file or directory")
	pf.String("dst", "output", "destination directory")
	pf.String("format", "jpg", "output format (jpg, jpeg, png, gif, tif, tiff and bmp)")
	pf.Int("quality", 75, "jpeg quality (range 1-100)")
	pf.StringArrayP("effect", "e", nil, "effect to apply, repeatable, applied in order")
	pf.Float64("rotate", 0, "rotate counter-clockwise by degrees after the effects")
	pf.Int("width", 0, "resize width, if one of width or height is 0, the image aspect ratio is preserved")
	pf.Int("height", 0, "resize height, if one of width or height is 0, the image aspect ratio is preserved")
	pf.Float64("percent", 0, "resize percent, only when both of width and height are 0")
	pf.Bool("histogram", false, "also dump the gray histogram of each result")
	pf.Bool("force", false, "force overwrite")
	pf.Bool("auto-orientation", true, "apply EXIF orientation on decode")
	pf.String("watermark", "", "watermark image path")
	pf.Uint("opacity", 128, "watermark opacity (range 1-255)")
	pf.Bool("random", false, "random watermark position and tilt")
	pf.Int("x", 0, "fixed watermark x offset from the center")
	pf.Int("y", 0, "fixed watermark y offset from the center")
	pf.Int("split", 0, "split each result into this many parts")
	pf.String("split-mode", "horizontal", "split mode (horizontal or vertical)")
	pf.Int("worker", 5, "number of images converted at the same time")
	return cmd
}

func run(ctx context.Context, j *job, src, dst string, worker int) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		slog.Error("Failed to get FileInfo", "name", src, "error", err)
		return err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		slog.Error("Failed to create directory", "path", dst, "error", err)
		return err
	}

	switch mode := srcInfo.Mode(); {
	case mode.IsDir():
		images := loadImages(src)
		total := len(images)
		slog.Info("Found images", "total", total)

		var done, converted, skipped, failed atomic.Int64
		var g errgroup.Group
		g.SetLimit(worker)
		for _, file := range images {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				defer done.Add(1)
				rel, err := filepath.Rel(src, file)
				if err != nil {
					slog.Error("Failed to get relative path", "image", file, "error", err)
					failed.Add(1)
					return nil
				}
				output := j.task.ConvertExt(filepath.Join(dst, rel))
				switch err := j.convert(file, output); {
				case err == nil:
					converted.Add(1)
					slog.Debug("Converted", "image", file, "progress", fmt.Sprintf("%d/%d", done.Load()+1, total))
				case errors.Is(err, errSkip):
					skipped.Add(1)
					slog.Info("Skip", "output", output)
				default:
					failed.Add(1)
				}
				return nil
			})
		}
		g.Wait()
		if err := ctx.Err(); err != nil {
			slog.Warn("Interrupted", "done", done.Load(), "total", total)
			return err
		}
		slog.Info("Done", "converted", converted.Load(), "skipped", skipped.Load(), "failed", failed.Load())
		if n := failed.Load(); n > 0 {
			return fmt.Errorf("%d image(s) failed", n)
		}
	case mode.IsRegular():
		output := j.task.ConvertExt(filepath.Join(dst, filepath.Base(src)))
		if err := j.convert(src, output); err != nil {
			if errors.Is(err, errSkip) {
				slog.Error("Destination already exist", "output", output)
				return fs.ErrExist
			}
			return err
		}
		slog.Info("Done", "output", output)
	default:
		slog.Error("Unknown source", "src", src)
		return errors.New("unknown source")
	}
	return nil
}

func newHistogramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "histogram [image]",
		Short: "dump the gray histogram of an image, one count per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxLevel, _ := cmd.Flags().GetInt("max-level")
			out, _ := cmd.Flags().GetString("out")

			img, err := open(args[0], true)
			if err != nil {
				slog.Error("Failed to open image", "image", args[0], "error", err)
				return err
			}
			h, err := imgfx.NewHistogram(imgfx.ToGray(img), maxLevel)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = h.WriteTo(cmd.OutOrStdout())
				return err
			}
			return h.Save(out)
		},
	}
	cmd.Flags().Int("max-level", 255, "highest level counted (range 1-255)")
	cmd.Flags().StringP("out", "o", "", "output file (default: stdout)")
	return cmd
}
