package web

// Status is the lifecycle stage of one fetch slot.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Fetch is the tagged state of one request slot: idle, loading,
// loaded(data) or failed(err). Data survives Begin and Fail so a section can
// keep showing what it had.
type Fetch[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Begin moves the slot to loading, keeping any data it holds.
func (f Fetch[T]) Begin() Fetch[T] {
	return Fetch[T]{Status: StatusLoading, Data: f.Data}
}

// Resolve stores data and marks the slot loaded.
func (f Fetch[T]) Resolve(data T) Fetch[T] {
	return Fetch[T]{Status: StatusLoaded, Data: data}
}

// Fail records err, keeping the previous data.
func (f Fetch[T]) Fail(err error) Fetch[T] {
	return Fetch[T]{Status: StatusFailed, Data: f.Data, Err: err}
}

func (f Fetch[T]) Idle() bool    { return f.Status == StatusIdle }
func (f Fetch[T]) Loading() bool { return f.Status == StatusLoading }
func (f Fetch[T]) Loaded() bool  { return f.Status == StatusLoaded }
func (f Fetch[T]) Failed() bool  { return f.Status == StatusFailed }
