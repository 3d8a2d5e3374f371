package workers

type Workers struct {
	workers []Worker
}

func NewWorkers(w ...Worker) *Workers {
	return &Workers{workers: w}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop shuts workers down in reverse start order, so the sync job stops
// before the connectivity watcher it depends on.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
