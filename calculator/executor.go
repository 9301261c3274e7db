package calculator

import (
	"sync"
	"time"
)

// executor 按行切分任务，多个 goroutine 并行处理互不重叠的行带。
// dispatch 返回前所有任务都已完成，调用方之后的读写不会与任务交错。
type executor struct {
	workers int
}

type task struct {
	start int // 起始行（包含）
	end   int // 结束行（不包含）
}

func newExecutor(workers int) *executor {
	if workers < 1 {
		workers = 1
	}
	return &executor{workers: workers}
}

func (e *executor) dispatch(first, last int, f func(t task)) time.Duration {
	start := time.Now()
	total := last - first
	if total <= 0 {
		return time.Since(start)
	}
	if e.workers == 1 || total < 2*e.workers {
		f(task{start: first, end: last})
		return time.Since(start)
	}

	taskLen, remainder := total/e.workers, total%e.workers
	var wg sync.WaitGroup
	row := first
	for i := 0; i < e.workers; i++ {
		t := task{start: row, end: row + taskLen}
		// 余数分给前面的 worker
		if i < remainder {
			t.end++
		}
		row = t.end
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			f(t)
		}(t)
	}
	wg.Wait()
	return time.Since(start)
}
