package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sunshineplan/imgfx"
	"github.com/sunshineplan/tiff"
)

var (
	supported = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|tiff?|bmp|webp|pdf)$`)
	tiffImage = regexp.MustCompile(`(?i)\.tiff?$`)
)

var errSkip = errors.New("skip")

type job struct {
	task            *imgfx.Options
	force           bool
	histogram       bool
	autoOrientation bool
	split           int
	splitMode       imgfx.SplitMode
}

func open(file string, autoOrientation bool) (*imgfx.RGB, error) {
	img, err := imgfx.Open(file, imgfx.AutoOrientation(autoOrientation))
	if err != nil && tiffImage.MatchString(file) {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		m, err := tiff.Decode(f)
		if err != nil {
			return nil, err
		}
		return imgfx.FromImage(m)
	}
	return img, err
}

func loadImages(root string) (imgs []string) {
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Failed to scan", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() && supported.MatchString(d.Name()) {
			imgs = append(imgs, path)
		}
		return nil
	})
	return
}

func histogramPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".hist"
}

// partPath numbers the i-th split part of output from 1.
func partPath(output string, i int) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_" + strconv.Itoa(i+1) + ext
}

// outputs lists the files convert writes for output.
func (j *job) outputs(output string) []string {
	if j.split < 2 {
		return []string{output}
	}
	files := make([]string, j.split)
	for i := range files {
		files[i] = partPath(output, i)
	}
	return files
}

func (j *job) write(img *imgfx.RGB, output string) error {
	path := filepath.Dir(output)
	f, err := os.CreateTemp(path, "*.tmp")
	if err != nil {
		slog.Error("Failed to create temporary file", "path", path, "error", err)
		return err
	}
	if err := j.task.Format.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		slog.Error("Failed to encode image", "output", output, "error", err)
		return err
	}
	f.Close()
	if err := os.Rename(f.Name(), output); err != nil {
		slog.Error("Failed to move file", "from", f.Name(), "to", output, "error", err)
		return err
	}
	return nil
}

func (j *job) convert(image, output string) (err error) {
	files := j.outputs(output)
	if _, err = os.Stat(files[0]); err == nil {
		if !j.force {
			return errSkip
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to get FileInfo", "name", files[0], "error", err)
		return
	}
	path := filepath.Dir(output)
	if err = os.MkdirAll(path, 0755); err != nil {
		slog.Error("Failed to create directory", "path", path, "error", err)
		return
	}
	img, err := open(image, j.autoOrientation)
	if err != nil {
		slog.Error("Failed to open image", "image", image, "error", err)
		return
	}
	if j.task.Resize != nil {
		if img, err = imgfx.Resize(img, j.task.Resize); err != nil {
			slog.Error("Failed to resize image", "image", image, "error", err)
			return
		}
	}
	if img, err = j.task.Apply(img); err != nil {
		slog.Error("Failed to apply effects", "image", image, "error", err)
		return
	}
	parts := []*imgfx.RGB{img}
	if len(files) > 1 {
		if parts, err = imgfx.Split(img, j.split, j.splitMode); err != nil {
			slog.Error("Failed to split image", "image", image, "error", err)
			return
		}
	}
	for i, part := range parts {
		if err = j.write(part, files[i]); err != nil {
			return
		}
	}
	if j.histogram {
		h, _ := imgfx.NewHistogram(imgfx.ToGray(img), 255)
		if err = h.Save(histogramPath(output)); err != nil {
			slog.Error("Failed to save histogram", "output", output, "error", err)
		}
	}
	return
}
