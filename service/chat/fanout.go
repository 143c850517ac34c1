package chat

type fanoutJob struct {
	conns   []*Client
	payload []byte
}

// Fanout is the broadcast primitive: a small worker pool that pushes one
// marshaled frame into many client send queues. A slow client whose queue is
// full is skipped rather than blocking the rest of the recipients.
type Fanout struct {
	jobs chan fanoutJob
}

func NewFanout(workers, queue int) *Fanout {
	if workers <= 0 {
		workers = 4
	}
	if queue <= 0 {
		queue = 1024
	}
	f := &Fanout{jobs: make(chan fanoutJob, queue)}
	for i := 0; i < workers; i++ {
		go func() {
			for job := range f.jobs {
				for _, c := range job.conns {
					select {
					case <-c.done:
						// connection already torn down
					case c.Send <- job.payload:
					default:
						// slow client: skip, the write pump will catch up or die
					}
				}
			}
		}()
	}
	return f
}

func (f *Fanout) Broadcast(conns []*Client, payload []byte) {
	if len(conns) == 0 || len(payload) == 0 {
		return
	}
	f.jobs <- fanoutJob{conns: conns, payload: payload}
}

// Close stops the workers once pending jobs drain.
func (f *Fanout) Close() {
	close(f.jobs)
}
