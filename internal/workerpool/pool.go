package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
)

type Response struct {
	Value any
	Err   error
}

// Job is a unit of background work, currently simulation test cases and
// archive flushes. The result is delivered on Resp.
type Job struct {
	Ctx  context.Context
	Run  func(context.Context) (any, error)
	Resp chan Response
}

type Pool struct {
	jobs    chan Job
	kill    chan struct{}
	rootCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	workers int32
	active  int32
}

func New(workerCnt, queueSize int) *Pool {
	if workerCnt <= 0 {
		workerCnt = 1
	}
	if queueSize <= 0 {
		queueSize = workerCnt * 4
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:    make(chan Job, queueSize),
		kill:    make(chan struct{}, workerCnt*2),
		rootCtx: ctx,
		cancel:  cancel,
	}
	atomic.StoreInt32(&p.workers, int32(workerCnt))
	p.spawn(workerCnt)
	return p
}

func (p *Pool) spawn(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.kill:
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			if errCtx := job.Ctx.Err(); errCtx != nil {
				select {
				case job.Resp <- Response{Err: errCtx}:
				default:
				}
				continue
			}

			atomic.AddInt32(&p.active, 1)
			v, err := job.Run(job.Ctx)
			atomic.AddInt32(&p.active, -1)
			select {
			case job.Resp <- Response{Value: v, Err: err}:
			case <-job.Ctx.Done():
			}
		case <-p.rootCtx.Done():
			return
		}
	}
}

// Submit enqueues the job; if the queue is full it runs the job on the
// caller's goroutine so API handlers never block behind the pool.
func (p *Pool) Submit(j Job) {
	select {
	case p.jobs <- j:
	default:
		v, err := j.Run(j.Ctx)
		select {
		case j.Resp <- Response{Value: v, Err: err}:
		case <-j.Ctx.Done():
		}
	}
}

func (p *Pool) Resize(n int) {
	if n < 0 {
		return
	}
	cur := int(atomic.LoadInt32(&p.workers))
	if n == cur {
		return
	}

	if n > cur {
		p.spawn(n - cur)
	} else {
		// surplus workers exit on the next kill signal they pick up
		for i := 0; i < cur-n; i++ {
			p.kill <- struct{}{}
		}
	}
	atomic.StoreInt32(&p.workers, int32(n))
}

func (p *Pool) WorkerCount() int {
	return int(atomic.LoadInt32(&p.workers))
}

func (p *Pool) ActiveWorkers() int {
	return int(atomic.LoadInt32(&p.active))
}

func (p *Pool) QueueSize() int {
	return len(p.jobs)
}

func (p *Pool) QueueCapacity() int {
	return cap(p.jobs)
}

func (p *Pool) Close() {
	p.cancel()
	close(p.jobs)
	for i := int32(0); i < atomic.LoadInt32(&p.workers); i++ {
		p.kill <- struct{}{}
	}
	p.wg.Wait()
	close(p.kill)
}
