package calculator

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// 一次迭代的节点计算调度，dispatchTask 返回时 [first, last) 内所有节点都已计算完成
type executor interface {
	run(c *jacobiCalculator)
	dispatchTask(first, last int) (time.Duration, error)
	stop()
}

func newExecutor(kind string, workers int) (executor, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "slice":
		return newExecutorBaseOnSlice(workers), nil
	case "group":
		return newExecutorBaseOnGroup(workers), nil
	case "serial":
		return newSerialExecutor(nil), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrExecutor, kind)
}

type task struct {
	start int
	end   int
}

// 将 [first, last) 划分为大约 2 * workers 个任务
func splitTasks(first, last, workers int) []task {
	total := last - first
	if total <= 0 {
		return nil
	}
	taskLen := total / (workers * 2)
	if taskLen == 0 {
		taskLen = 1
	}
	tasks := make([]task, 0, total/taskLen+1)
	for start := first; start < last; start += taskLen {
		end := start + taskLen
		if end > last {
			end = last
		}
		tasks = append(tasks, task{start: start, end: end})
	}
	return tasks
}

// 基于切片任务分配，常驻 worker 从任务通道中取任务
type executorBaseOnSlice struct {
	dispatchChan chan task
	workers      int

	doneSoFar chan error

	once sync.Once
}

func newExecutorBaseOnSlice(workers int) *executorBaseOnSlice {
	return &executorBaseOnSlice{
		dispatchChan: make(chan task, workers*2),
		workers:      workers,
		doneSoFar:    make(chan error, workers*2),
	}
}

func (e *executorBaseOnSlice) run(c *jacobiCalculator) {
	for i := 0; i < e.workers; i++ {
		go func() {
			for t := range e.dispatchChan {
				e.doneSoFar <- c.calculateRange(t.start, t.end)
			}
		}()
	}
}

func (e *executorBaseOnSlice) dispatchTask(first, last int) (time.Duration, error) {
	start := time.Now()
	tasks := splitTasks(first, last, e.workers)
	go func() {
		for _, t := range tasks {
			e.dispatchChan <- t
		}
	}()
	var err error
	for range tasks {
		if taskErr := <-e.doneSoFar; taskErr != nil && err == nil {
			err = taskErr
		}
	}
	return time.Since(start), err
}

func (e *executorBaseOnSlice) stop() {
	e.once.Do(func() {
		close(e.dispatchChan)
	})
}

// 每次迭代启动一组 goroutine，限制并发数
type executorBaseOnGroup struct {
	workers int
	c       *jacobiCalculator
}

func newExecutorBaseOnGroup(workers int) *executorBaseOnGroup {
	return &executorBaseOnGroup{workers: workers}
}

func (e *executorBaseOnGroup) run(c *jacobiCalculator) {
	e.c = c
}

func (e *executorBaseOnGroup) dispatchTask(first, last int) (time.Duration, error) {
	start := time.Now()
	var g errgroup.Group
	g.SetLimit(e.workers)
	for _, t := range splitTasks(first, last, e.workers) {
		t := t
		g.Go(func() error {
			return e.c.calculateRange(t.start, t.end)
		})
	}
	err := g.Wait()
	return time.Since(start), err
}

func (e *executorBaseOnGroup) stop() {}

// 在调用方 goroutine 中按 order 顺序逐个计算节点，order 为空时按下标顺序
type serialExecutor struct {
	order []int
	c     *jacobiCalculator
}

func newSerialExecutor(order []int) *serialExecutor {
	return &serialExecutor{order: order}
}

func (e *serialExecutor) run(c *jacobiCalculator) {
	e.c = c
}

func (e *serialExecutor) dispatchTask(first, last int) (time.Duration, error) {
	start := time.Now()
	if len(e.order) == 0 {
		return time.Since(start), e.c.calculateRange(first, last)
	}
	for _, i := range e.order {
		if i < first || i >= last {
			continue
		}
		if err := e.c.calculateRange(i, i+1); err != nil {
			return time.Since(start), err
		}
	}
	return time.Since(start), nil
}

func (e *serialExecutor) stop() {}
