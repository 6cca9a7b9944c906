package pipeline

// Step is one named stage of a pipeline. A step receives the current state
// and returns the next one; it must not retain or mutate its input.
type Step[S any] interface {
	Name() string
	Run(state S) S
}

// FuncStep allows registering plain functions as pipeline steps.
type FuncStep[S any] struct {
	name string
	fn   func(S) S
}

// Name returns the human readable identifier for the step.
func (s FuncStep[S]) Name() string { return s.name }

// Run executes the wrapped function.
func (s FuncStep[S]) Run(state S) S { return s.fn(state) }

// NewFuncStep constructs a pipeline step from the provided function.
func NewFuncStep[S any](name string, fn func(S) S) FuncStep[S] {
	return FuncStep[S]{name: name, fn: fn}
}

// Observer is notified after every step with the step name and its output.
type Observer[S any] func(step string, state S)

// Pipeline runs registered steps in order, threading a state value through
// them. A built pipeline holds no per-run data and may be executed from many
// goroutines at once.
type Pipeline[S any] struct {
	steps []Step[S]
	guard func(step string, state S)
}

// New returns an empty pipeline.
func New[S any]() *Pipeline[S] { return &Pipeline[S]{} }

// Add appends a step to the pipeline.
func (p *Pipeline[S]) Add(step Step[S]) *Pipeline[S] {
	p.steps = append(p.steps, step)
	return p
}

// AddFunc is shorthand for Add(NewFuncStep(name, fn)).
func (p *Pipeline[S]) AddFunc(name string, fn func(S) S) *Pipeline[S] {
	return p.Add(NewFuncStep(name, fn))
}

// Guard installs a check run on the output of every step. Guards are meant
// for invariants and report violations by panicking.
func (p *Pipeline[S]) Guard(fn func(step string, state S)) *Pipeline[S] {
	p.guard = fn
	return p
}

// Names lists the step names in execution order.
func (p *Pipeline[S]) Names() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all steps in order starting from state and returns the final
// state. observe may be nil.
func (p *Pipeline[S]) Execute(state S, observe Observer[S]) S {
	for _, step := range p.steps {
		state = step.Run(state)
		if p.guard != nil {
			p.guard(step.Name(), state)
		}
		if observe != nil {
			observe(step.Name(), state)
		}
	}
	return state
}
