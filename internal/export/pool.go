package export

import (
	"context"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
)

// SegmentJob parçalı dışa aktarımda tek bir segmentin işidir. SkipReason
// planlama aşamasında (çakışma çözümü) dolduysa iş hiç çalıştırılmaz.
type SegmentJob struct {
	Index      int
	InputPath  string
	Range      avtime.Range
	OutputPath string
	SkipReason string
}

// SegmentResult bir segment işinin sonucunu tutar.
type SegmentResult struct {
	Job        SegmentJob
	Success    bool
	Skipped    bool
	Attempts   int
	OutputSize int64
	SkipReason string
	Error      error
	Duration   time.Duration
}

// RunFunc tek bir segmenti render eden geri çağrıdır.
type RunFunc func(ctx context.Context, job SegmentJob) error

// Pool segment işlerini paralel çalıştıran worker pool'dur. Bir segmentin
// hatası kardeş segmentleri iptal etmez; her iş bağımsız sonuçlanır.
type Pool struct {
	Workers    int
	RetryMax   int
	RetryDelay time.Duration
	OnProgress func(completed, total int)

	mu        sync.Mutex
	results   []SegmentResult
	processed atomic.Int64
	totalJobs int
}

// NewPool yeni bir worker pool oluşturur.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	// Çok fazla worker açmayı engelle
	maxWorkers := runtime.NumCPU() * 2
	if workers > maxWorkers {
		workers = maxWorkers
	}

	return &Pool{
		Workers:    workers,
		RetryDelay: 500 * time.Millisecond,
	}
}

// SetRetry retry davranışını ayarlar.
func (p *Pool) SetRetry(max int, delay time.Duration) {
	if max < 0 {
		max = 0
	}
	p.RetryMax = max

	if delay >= 0 {
		p.RetryDelay = delay
	}
}

// Execute verilen segmentleri paralel olarak çalıştırır ve her biri için
// bir sonuç toplar. Tüm segmentler sonuçlanmadan dönmez.
func (p *Pool) Execute(ctx context.Context, jobs []SegmentJob, run RunFunc) []SegmentResult {
	p.totalJobs = len(jobs)
	p.results = make([]SegmentResult, 0, len(jobs))
	p.processed.Store(0)

	if len(jobs) == 0 {
		return p.results
	}

	workers := p.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobChan := make(chan SegmentJob, len(jobs))
	resultChan := make(chan SegmentResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				resultChan <- p.processJob(ctx, job, run)
			}
		}()
	}

	go func() {
		for _, job := range jobs {
			jobChan <- job
		}
		close(jobChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		p.mu.Lock()
		p.results = append(p.results, result)
		p.mu.Unlock()

		completed := int(p.processed.Add(1))
		if p.OnProgress != nil {
			p.OnProgress(completed, p.totalJobs)
		}
	}

	return p.results
}

func (p *Pool) processJob(ctx context.Context, job SegmentJob, run RunFunc) SegmentResult {
	start := time.Now()

	if job.SkipReason != "" {
		return SegmentResult{
			Job:        job,
			Skipped:    true,
			SkipReason: job.SkipReason,
			Duration:   time.Since(start),
		}
	}

	attempts := p.RetryMax + 1
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := run(ctx, job)
		if err == nil {
			size := int64(0)
			if info, statErr := os.Stat(job.OutputPath); statErr == nil {
				size = info.Size()
			}
			return SegmentResult{
				Job:        job,
				Success:    true,
				Attempts:   attempt,
				OutputSize: size,
				Duration:   time.Since(start),
			}
		}

		lastErr = err
		if attempt < attempts && p.RetryDelay > 0 {
			time.Sleep(p.RetryDelay)
		}
	}

	return SegmentResult{
		Job:      job,
		Attempts: attempts,
		Error:    lastErr,
		Duration: time.Since(start),
	}
}

// Summary segment sonuçlarının özetidir.
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	Duration  time.Duration
	Errors    []SegmentError
}

// SegmentError başarısız olan bir segmentin hata bilgisidir.
type SegmentError struct {
	OutputPath string
	Error      string
	Attempts   int
}

// Summarize sonuç listesinden özet çıkarır.
func Summarize(results []SegmentResult, totalDuration time.Duration) Summary {
	s := Summary{
		Total:    len(results),
		Duration: totalDuration,
	}

	for _, r := range results {
		switch {
		case r.Success:
			s.Succeeded++
		case r.Skipped:
			s.Skipped++
		default:
			s.Failed++
			msg := "bilinmeyen hata"
			if r.Error != nil {
				msg = r.Error.Error()
			}
			s.Errors = append(s.Errors, SegmentError{
				OutputPath: r.Job.OutputPath,
				Error:      msg,
				Attempts:   r.Attempts,
			})
		}
	}

	return s
}
