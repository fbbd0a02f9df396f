package conformance

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/oisee/w86emu/pkg/cpu"
)

// Result is the outcome of running one Vector.
type Result struct {
	Name       string
	Passed     bool
	Status     cpu.Status
	Mismatches []string
}

// Report aggregates Results from a concurrent run, guarded by a mutex the
// way the teacher's result.Table guards its rule slice.
type Report struct {
	mu      sync.Mutex
	results []Result
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{}
}

// Add records one Result.
func (r *Report) Add(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

// Results returns a copy of all results, sorted failures-first then by name
// so a re-run of the same vector set always reports in the same order
// regardless of worker-goroutine completion order.
func (r *Report) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Result, len(r.results))
	copy(out, r.results)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Passed != out[j].Passed {
			return !out[i].Passed
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Summary reports how many vectors passed and how many ran in total.
func (r *Report) Summary() (passed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total = len(r.results)
	for _, res := range r.results {
		if res.Passed {
			passed++
		}
	}
	return passed, total
}

// Runner executes a set of vectors across a worker pool.
type Runner struct {
	NumWorkers int
	checked    atomic.Int64
}

// NewRunner creates a Runner. numWorkers<=0 defaults to runtime.NumCPU(), as
// in the teacher's NewWorkerPool.
func NewRunner(numWorkers int) *Runner {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Runner{NumWorkers: numWorkers}
}

// Checked returns how many vectors this Runner has executed so far.
func (run *Runner) Checked() int64 {
	return run.checked.Load()
}

// Run executes every vector independently (each gets its own cpu.State, so
// no shared mutable CPU state crosses goroutines) and returns the
// aggregated Report.
func (run *Runner) Run(vectors []Vector) *Report {
	report := NewReport()

	ch := make(chan Vector, len(vectors))
	for _, v := range vectors {
		ch <- v
	}
	close(ch)

	var wg sync.WaitGroup
	for i := 0; i < run.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range ch {
				report.Add(run.runOne(v))
				run.checked.Add(1)
			}
		}()
	}
	wg.Wait()

	return report
}

func (run *Runner) runOne(v Vector) Result {
	s := cpu.NewState()
	applyState(s, v.Initial)

	var status cpu.Status
	for i := 0; i < v.Steps; i++ {
		status = cpu.Step(s)
		if status != cpu.StatusSuccess {
			break
		}
	}

	mismatches := diffState(s, v.Expected)
	return Result{
		Name:       v.Name,
		Passed:     status == cpu.StatusSuccess && len(mismatches) == 0,
		Status:     status,
		Mismatches: mismatches,
	}
}
