package ocr

// Pool hands engines out to concurrent workers. Tesseract keeps
// per-call native state (the image is set on the client, then read
// back as text), so one engine cannot serve overlapping Recognize
// calls; a worker draws a dedicated engine from the pool and returns
// it when finished. The pool does not own the engines: closing them
// stays with the caller.
type Pool struct {
	engines chan Engine
}

// NewPool creates a pool over the given engines.
func NewPool(engines []Engine) *Pool {
	ch := make(chan Engine, len(engines))
	for _, engine := range engines {
		ch <- engine
	}
	return &Pool{engines: ch}
}

// Acquire blocks until an engine is free and checks it out.
func (p *Pool) Acquire() Engine {
	return <-p.engines
}

// Release returns a checked-out engine to the pool.
func (p *Pool) Release(engine Engine) {
	p.engines <- engine
}

// Size reports how many engines the pool was created with.
func (p *Pool) Size() int {
	return cap(p.engines)
}
