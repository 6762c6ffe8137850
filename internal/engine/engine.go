package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/letterbox/internal/border"
	"github.com/ivlev/letterbox/internal/config"
	"github.com/ivlev/letterbox/internal/cropper"
	"github.com/ivlev/letterbox/internal/edges"
	"github.com/ivlev/letterbox/internal/report"
	"github.com/ivlev/letterbox/internal/source"
	"github.com/ivlev/letterbox/internal/system"
)

// ErrOutputConflict is returned when two pages map to the same output file.
var ErrOutputConflict = errors.New("output conflict")

type Project struct {
	Config   *config.Config
	Source   source.Source
	Detector edges.Detector
}

func NewProject(cfg *config.Config, src source.Source, det edges.Detector) *Project {
	return &Project{
		Config:   cfg,
		Source:   src,
		Detector: det,
	}
}

// Run обрезает все страницы источника. Первая ошибка отменяет страницы,
// которые еще не начались, и возвращается вызывающему.
func (p *Project) Run(ctx context.Context) (*report.Report, error) {
	startTime := time.Now()

	pageCount := p.Source.PageCount()
	if pageCount == 0 {
		return nil, fmt.Errorf("source %s has no pages", p.Config.InputPath)
	}
	multi := pageCount > 1 || source.IsMultiPage(p.Config.InputPath)

	workers := p.Config.Workers
	if workers > pageCount {
		workers = pageCount
	}
	if workers < 1 {
		workers = 1
	}

	logrus.Debugf("input %s: %d page(s), %d worker(s), detector %s", p.Config.InputPath, pageCount, workers, p.Config.Detector)

	// Пути выхода считаем заранее: два воркера не должны писать в один файл
	outPaths, err := p.outputPaths(pageCount, multi)
	if err != nil {
		return nil, err
	}

	entries := make([]report.Entry, pageCount)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < pageCount; i++ {
		g.Go(func() error {
			entry, err := p.processPage(ctx, i, outPaths[i])
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &report.Report{
		Version:  "1.0",
		Detector: p.Config.Detector,
		Entries:  entries,
	}
	if p.Config.ReportPath != "" {
		if err := report.WriteReport(rep, p.Config.ReportPath); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
		logrus.Infof("report written to %s", p.Config.ReportPath)
	}

	if p.Config.ShowStats {
		p.logStats(pageCount, time.Since(startTime))
	}

	return rep, nil
}

func (p *Project) processPage(ctx context.Context, i int, outPath string) (report.Entry, error) {
	entry := report.Entry{Page: i + 1, Input: p.Source.PageName(i), Output: outPath}
	if err := ctx.Err(); err != nil {
		return entry, err
	}

	srcW, srcH, err := p.Source.PageDimensions(i)
	if err != nil {
		return entry, fmt.Errorf("%w: %w", edges.ErrEdgeDetection, err)
	}
	if srcW < 1 || srcH < 1 {
		return entry, fmt.Errorf("%w: page is %dx%d", border.ErrInvalidDimensions, srcW, srcH)
	}

	img, err := p.Source.RenderPage(i, p.Config.DPI)
	if err != nil {
		return entry, fmt.Errorf("%w: %w", edges.ErrEdgeDetection, err)
	}
	bounds := img.Bounds()
	entry.Width, entry.Height = bounds.Dx(), bounds.Dy()

	// Размер сетки сверяем с размером, заявленным источником. У PDF он в
	// пунктах, а пиксели зависят от DPI, поэтому там берем размер рендера.
	scanW, scanH := srcW, srcH
	if _, ok := p.Source.(*source.FitzPDFSource); ok {
		scanW, scanH = entry.Width, entry.Height
	}

	grid, err := p.Detector.Detect(img)
	if err != nil {
		if !errors.Is(err, edges.ErrEdgeDetection) {
			err = fmt.Errorf("%w: %w", edges.ErrEdgeDetection, err)
		}
		return entry, err
	}
	// Карта границ нужна только для отладки
	if p.Config.EdgesDir != "" {
		p.saveEdges(grid, i)
	}

	var off border.Offsets
	if p.Config.Parallel {
		off, err = border.ScanParallel(ctx, grid, scanW, scanH)
	} else {
		off, err = border.Scan(grid, scanW, scanH)
	}
	if err != nil {
		return entry, err
	}
	rect := off.Rect()
	entry.Offsets = off
	entry.Crop = rect
	entry.Cropped = !rect.Empty() && !rect.Covers(entry.Width, entry.Height)

	logrus.Infof("%s -> %s", entry.Input, outPath)
	logrus.Infof("borders: top=%d bottom=%d left=%d right=%d", off.Top, off.Bottom, off.Left, off.Right)

	out := cropper.Crop(img, rect)
	if err := cropper.Save(out, outPath, p.Config.Quality); err != nil {
		return entry, err
	}
	logrus.Infof("size: %dx%d -> %dx%d", entry.Width, entry.Height, out.Bounds().Dx(), out.Bounds().Dy())

	return entry, nil
}

// outputPaths сопоставляет страницам файлы выхода. Многостраничный ввод
// пишется в папку; к именам, которые imaging не умеет кодировать,
// добавляется .png (a.webp -> a.webp.png).
func (p *Project) outputPaths(pageCount int, multi bool) ([]string, error) {
	paths := make([]string, pageCount)
	if !multi {
		paths[0] = p.Config.OutputPath
		return paths, nil
	}

	seen := make(map[string]int, pageCount)
	for i := range paths {
		name := p.Source.PageName(i)
		if _, err := imaging.FormatFromFilename(name); err != nil {
			name += ".png"
		}
		path := filepath.Join(p.Config.OutputPath, name)
		if prev, ok := seen[path]; ok {
			return nil, fmt.Errorf("%w: pages %d and %d both write %s", ErrOutputConflict, prev+1, i+1, path)
		}
		seen[path] = i
		paths[i] = path
	}
	return paths, nil
}

func (p *Project) saveEdges(grid *border.Grid, i int) {
	name := p.Source.PageName(i)
	path := filepath.Join(p.Config.EdgesDir, strings.TrimSuffix(name, filepath.Ext(name))+"_edges.png")
	if err := os.MkdirAll(p.Config.EdgesDir, 0755); err != nil {
		logrus.Warnf("cannot create %s: %v", p.Config.EdgesDir, err)
		return
	}
	if err := imaging.Save(edges.ToImage(grid), path); err != nil {
		logrus.Warnf("cannot write edge map %s: %v", path, err)
		return
	}
	logrus.Debugf("edge map written to %s (%d edge pixels)", path, grid.Count())
}

func (p *Project) logStats(pageCount int, elapsed time.Duration) {
	logrus.Infof("processed %d page(s) in %.2fs (%.2f pages/s)", pageCount, elapsed.Seconds(), float64(pageCount)/elapsed.Seconds())

	stats, err := system.ReadMemoryStats()
	if err != nil {
		logrus.Warnf("memory statistics unavailable: %v", err)
		return
	}
	logrus.Infof("memory: %s", stats)
}
