package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one reporting interval's worth of frame and memory statistics.
type Stats struct {
	FPS          float64
	MinFrameTime time.Duration
	MaxFrameTime time.Duration
	HeapMB       float64
	AllocRateMB  float64
	NumGC        uint32
}

// Profiler tracks frame rate, frame time spread and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	name string

	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	minFrame       time.Duration
	maxFrame       time.Duration
	updateInterval time.Duration

	memStats       runtime.MemStats
	lastTotalAlloc uint64

	now    func() time.Time
	logger *log.Logger
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - name: tag printed in each log line, e.g. "Render"
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(name string) *Profiler {
	now := time.Now()
	return &Profiler{
		name:           name,
		lastTime:       now,
		lastFrame:      now,
		updateInterval: time.Second,
		now:            time.Now,
		logger:         log.Default(),
	}
}

// SetInterval changes how often statistics are reported.
//
// Parameters:
//   - interval: reporting interval; values <= 0 are ignored
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.updateInterval = interval
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - Stats: the statistics for the interval that just closed (zero value if none)
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() (Stats, bool) {
	currentTime := p.now()
	frameTime := currentTime.Sub(p.lastFrame)
	p.lastFrame = currentTime

	if p.frameCount == 0 || frameTime < p.minFrame {
		p.minFrame = frameTime
	}
	if frameTime > p.maxFrame {
		p.maxFrame = frameTime
	}
	p.frameCount++

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	stats := Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		MinFrameTime: p.minFrame,
		MaxFrameTime: p.maxFrame,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		NumGC:        p.memStats.NumGC,
	}

	p.logger.Printf("[Profiler] %s FPS: %.2f | Frame: %v..%v | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		p.name, stats.FPS, stats.MinFrameTime, stats.MaxFrameTime, stats.HeapMB, stats.AllocRateMB, stats.NumGC)

	p.frameCount = 0
	p.maxFrame = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return stats, true
}
