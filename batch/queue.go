// queue.go - expand several documents in parallel
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
// Copyright (C) 2022  Ali AslRousta <aslrousta@gmail.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package batch

import (
	"io"
	"os"
	"sync"
)

const queueLength = 1

// ProcessFunc converts one input document into one output document.
type ProcessFunc func(in io.Reader, out io.Writer) error

// Queue runs a ProcessFunc on several files in parallel.  Every job
// is processed independently of all other jobs.
type Queue struct {
	process ProcessFunc
	workers int

	jobs chan *jobSpec
	wg   *sync.WaitGroup
}

// NewQueue creates a new queue which runs up to 'workers' jobs at the
// same time.
func NewQueue(workers int, process ProcessFunc) *Queue {
	if workers < 1 {
		workers = 1
	}
	q := &Queue{
		process: process,
		workers: workers,
		jobs:    make(chan *jobSpec, queueLength),
		wg:      &sync.WaitGroup{},
	}

	q.wg.Add(1)
	go q.scheduler()

	return q
}

// Finish must be called after the last job has been submitted to the
// queue.  The function waits until all jobs are complete and then
// shuts down the queue.
func (q *Queue) Finish() {
	close(q.jobs)
	q.wg.Wait()
	q.jobs = nil
}

func (q *Queue) scheduler() {
	defer q.wg.Done()

	workers := make(chan int, q.workers)
	for i := 0; i < q.workers; i++ {
		workers <- i
	}

	for job := range q.jobs {
		worker := <-workers
		q.wg.Add(1)
		go func(job *jobSpec) {
			job.Result <- q.run(job)
			close(job.Result)
			workers <- worker
			q.wg.Done()
		}(job)
	}
}

// Submit adds a new job to the queue.  The job reads the file
// inFileName and writes the result to outFileName.  The outcome can
// be read from the returned channel, which delivers exactly one
// value.  If the job fails, the output file is removed.
func (q *Queue) Submit(inFileName, outFileName string) <-chan error {
	c := make(chan error, 1)
	job := &jobSpec{
		In:     inFileName,
		Out:    outFileName,
		Result: c,
	}
	q.jobs <- job
	return c
}

type jobSpec struct {
	In     string
	Out    string
	Result chan<- error
}

func (q *Queue) run(job *jobSpec) (err error) {
	in, err := os.Open(job.In)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(job.Out)
	if err != nil {
		return err
	}
	defer func() {
		e2 := out.Close()
		if err == nil {
			err = e2
		}
		if err != nil {
			os.Remove(job.Out)
		}
	}()

	return q.process(in, out)
}
