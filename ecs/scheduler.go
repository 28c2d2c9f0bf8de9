package ecs

import (
	"sort"
	"time"
)

// Scheduler groups systems by stage, resolves each stage's intra-stage
// dependency DAG, orders systems by topological level with a priority
// tiebreak, and records per-system timing (spec §4.7).
type Scheduler struct {
	byName map[string]*systemWrapper
	stages map[Stage][]*systemWrapper
	dirty  map[Stage]bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		byName: make(map[string]*systemWrapper),
		stages: make(map[Stage][]*systemWrapper),
		dirty:  make(map[Stage]bool),
	}
}

// Add registers system into StageUpdate. Fails if a system with the same
// name is already registered (in any stage).
func (s *Scheduler) Add(system System) error {
	return s.AddToStage(system, StageUpdate)
}

// AddToStage registers system into the given stage. Fails if a system with
// the same name is already registered.
func (s *Scheduler) AddToStage(system System, stage Stage) error {
	name := system.Name()
	if _, exists := s.byName[name]; exists {
		return ErrDuplicateSystem
	}

	w := &systemWrapper{
		system:         system,
		stage:          stage,
		enabled:        true,
		insertionIndex: len(s.stages[stage]),
	}
	s.byName[name] = w
	s.stages[stage] = append(s.stages[stage], w)
	s.dirty[stage] = true
	return nil
}

// SetEnabled toggles whether a registered system runs. Unknown names are a
// no-op.
func (s *Scheduler) SetEnabled(name string, enabled bool) {
	if w, ok := s.byName[name]; ok {
		w.enabled = enabled
	}
}

// IsEnabled reports whether name is registered and currently enabled.
func (s *Scheduler) IsEnabled(name string) bool {
	w, ok := s.byName[name]
	return ok && w.enabled
}

// Remove unregisters the named system. Returns false if it wasn't
// registered.
func (s *Scheduler) Remove(name string) bool {
	w, ok := s.byName[name]
	if !ok {
		return false
	}
	delete(s.byName, name)

	systems := s.stages[w.stage]
	for i, sw := range systems {
		if sw == w {
			s.stages[w.stage] = append(systems[:i], systems[i+1:]...)
			break
		}
	}
	s.dirty[w.stage] = true
	return true
}

// Clear unregisters every system.
func (s *Scheduler) Clear() {
	s.byName = make(map[string]*systemWrapper)
	s.stages = make(map[Stage][]*systemWrapper)
	s.dirty = make(map[Stage]bool)
}

// computeExecutionOrder resolves stage's intra-stage dependency DAG with
// Kahn's algorithm and assigns each system's executionOrder =
// topoIndex*1000 - priority, so higher priority wins ties within a
// topological level (spec §4.7).
func (s *Scheduler) computeExecutionOrder(stage Stage) error {
	systems := s.stages[stage]
	index := make(map[string]int, len(systems))
	for i, w := range systems {
		index[w.system.Name()] = i
	}

	// adjacency: dep -> systems that depend on it
	adj := make([][]int, len(systems))
	indegree := make([]int, len(systems))

	for i, w := range systems {
		for _, depName := range systemDependsOn(w.system) {
			depIdx, ok := index[depName]
			if !ok {
				return ErrUnknownDependency
			}
			adj[depIdx] = append(adj[depIdx], i)
			indegree[i]++
		}
	}

	queue := make([]int, 0, len(systems))
	for i, deg := range indegree {
		if deg == 0 {
			queue = append(queue, i)
		}
	}
	// Stable seed order among initial roots.
	sort.SliceStable(queue, func(a, b int) bool { return queue[a] < queue[b] })

	topoIndex := make([]int, len(systems))
	visited := 0
	level := 0
	for len(queue) > 0 {
		var next []int
		sort.SliceStable(queue, func(a, b int) bool { return queue[a] < queue[b] })
		for _, i := range queue {
			topoIndex[i] = level
			visited++
			for _, j := range adj[i] {
				indegree[j]--
				if indegree[j] == 0 {
					next = append(next, j)
				}
			}
		}
		queue = next
		level++
	}

	if visited != len(systems) {
		return ErrCircularDependency
	}

	for i, w := range systems {
		w.executionOrder = topoIndex[i]*1000 - systemPriority(w.system)
	}
	return nil
}

// run is one maximal block of consecutive systems in execution order that
// share parallel-eligibility, per spec §4.7 step 4's partitioning.
type run struct {
	systems  []*systemWrapper
	parallel bool
}

func partitionRuns(ordered []*systemWrapper) []run {
	var runs []run
	for _, w := range ordered {
		eligible := systemCanRunParallel(w.system)
		if len(runs) > 0 && runs[len(runs)-1].parallel == eligible {
			last := &runs[len(runs)-1]
			last.systems = append(last.systems, w)
			continue
		}
		runs = append(runs, run{systems: []*systemWrapper{w}, parallel: eligible})
	}
	return runs
}

// UpdateStage recomputes stage's execution order if needed, then runs
// every enabled system in that stage in order. A run of consecutive
// parallel-eligible systems is grouped together (spec §4.7) but — per
// spec §5/§9 — still executed member-by-member on the caller's goroutine;
// grouping only prepares for future concurrent execution.
//
// The first system error aborts the remaining systems in the stage (and,
// via UpdateAll, the remaining stages in the frame) after its stats are
// recorded.
func (s *Scheduler) UpdateStage(app *App, stage Stage, dt float64) error {
	if s.dirty[stage] {
		if err := s.computeExecutionOrder(stage); err != nil {
			return err
		}
		s.dirty[stage] = false
	}

	systems := append([]*systemWrapper(nil), s.stages[stage]...)
	var enabled []*systemWrapper
	for _, w := range systems {
		if w.enabled {
			enabled = append(enabled, w)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		if enabled[i].executionOrder != enabled[j].executionOrder {
			return enabled[i].executionOrder < enabled[j].executionOrder
		}
		return enabled[i].insertionIndex < enabled[j].insertionIndex
	})

	for _, grp := range partitionRuns(enabled) {
		for _, w := range grp.systems {
			if err := s.runOne(app, w, dt); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Scheduler) runOne(app *App, w *systemWrapper, dt float64) error {
	if !w.initialized {
		if init, ok := w.system.(Initializer); ok {
			init.Init(app)
		}
		w.initialized = true
	}

	start := time.Now()
	err := w.system.Update(app, dt)
	elapsed := time.Since(start)

	w.stats.TotalTime += elapsed
	w.stats.CallCount++
	if err != nil {
		w.stats.ErrorCount++
	}
	return err
}

// UpdateAll advances every stage once, in the fixed declared order,
// stopping at the first stage that returns an error.
func (s *Scheduler) UpdateAll(app *App, dt float64) error {
	for _, stage := range stageOrder {
		if err := s.UpdateStage(app, stage, dt); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns a copy of the recorded statistics for the named system, or
// false if it isn't registered.
func (s *Scheduler) Stats(name string) (SystemStats, bool) {
	w, ok := s.byName[name]
	if !ok {
		return SystemStats{}, false
	}
	return w.stats, true
}

// SystemNames returns the names of every registered system, grouped by
// stage in declared stage order, for introspection tooling.
func (s *Scheduler) SystemNames() []string {
	var names []string
	for _, stage := range stageOrder {
		for _, w := range s.stages[stage] {
			names = append(names, w.system.Name())
		}
	}
	return names
}
