package etl

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BartekS5/uilm/pkg/logger"
)

const defaultBatchSize = 100

type Pipeline struct {
	Extractor Extractor
	Loader    Loader
	BatchSize int
	DryRun    bool

	// CheckpointFile, when set, records the offset after each loaded batch so
	// an interrupted run resumes where it stopped. It is removed on success.
	CheckpointFile string
}

// RunStats summarizes a finished run.
type RunStats struct {
	Processed int
	Batches   int
	Duration  time.Duration
}

// NewEnhancedPipeline creates a pipeline with dry-run support
func NewEnhancedPipeline(ext Extractor, loader Loader, batchSize int, dryRun bool) *Pipeline {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Pipeline{
		Extractor: ext,
		Loader:    loader,
		BatchSize: batchSize,
		DryRun:    dryRun,
	}
}

// WithCheckpoint enables resumable runs backed by file.
func (p *Pipeline) WithCheckpoint(file string) *Pipeline {
	p.CheckpointFile = file
	return p
}

func (p *Pipeline) Run(ctx context.Context) (RunStats, error) {
	var startOffset interface{}
	if p.CheckpointFile != "" {
		startOffset = loadCheckpoint(p.CheckpointFile)
	}

	logger.Infof("Starting pipeline. Batch Size: %d, Start Offset: %v, DryRun: %v", p.BatchSize, startOffset, p.DryRun)

	offset := startOffset
	stats := RunStats{}
	startTime := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("pipeline interrupted at offset %v: %w", offset, err)
		}

		// 1. Extract
		data, newOffset, err := p.Extractor.Extract(ctx, p.BatchSize, offset)
		if err != nil {
			logger.Errorf("Extraction failed at offset %v: %v", offset, err)
			return stats, err
		}

		count := len(data)
		if count == 0 {
			logger.Info("No more records to process. Import complete.")
			break
		}

		// 2. Load (Skip if DryRun)
		if !p.DryRun {
			if err := p.Loader.Load(ctx, data); err != nil {
				logger.Errorf("Loading failed at offset %v: %v", offset, err)
				return stats, err
			}
		} else {
			logger.Infof("[DRY RUN] Would load %d records", count)
		}

		// 3. Checkpoint & Stats
		stats.Processed += count
		stats.Batches++
		offset = newOffset

		if !p.DryRun && p.CheckpointFile != "" {
			if err := saveCheckpoint(p.CheckpointFile, offset); err != nil {
				logger.Warnf("Could not save checkpoint: %v", err)
			}
		}

		duration := time.Since(startTime)
		rate := 0.0
		if duration.Seconds() > 0 {
			rate = float64(stats.Processed) / duration.Seconds()
		}
		logger.Infof("Batch done. Total: %d. Rate: %.2f docs/sec. New Offset: %v", stats.Processed, rate, offset)
	}

	if !p.DryRun && p.CheckpointFile != "" {
		os.Remove(p.CheckpointFile)
	}
	stats.Duration = time.Since(startTime)
	logger.Info("Pipeline finished successfully.")
	return stats, nil
}

func loadCheckpoint(filename string) interface{} {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil // Return nil to let Extractor decide default
	}
	return string(data)
}

func saveCheckpoint(filename string, offset interface{}) error {
	str := fmt.Sprintf("%v", offset)
	return os.WriteFile(filename, []byte(str), 0644)
}
