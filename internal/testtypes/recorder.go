package testtypes

import "context"

// Recorder collects teardown events so tests can assert disposal order.
type Recorder struct {
	Events []string
}

func (r *Recorder) Record(event string) {
	r.Events = append(r.Events, event)
}

// Tracked is a sync-disposable that records its teardown.
type Tracked struct {
	Name string
	Rec  *Recorder
}

func (t *Tracked) Dispose() {
	t.Rec.Record(t.Name)
}

// TrackedAsync is an async-disposable that records its teardown.
type TrackedAsync struct {
	Name string
	Rec  *Recorder
}

func (t *TrackedAsync) DisposeAsync(context.Context) error {
	t.Rec.Record(t.Name)
	return nil
}
