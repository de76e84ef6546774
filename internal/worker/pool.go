package worker

import (
	"sync"

	"go.uber.org/zap"
)

// Pool запускает группы одноименных обработчиков и дает барьер
// присоединения: Wait возвращается только когда все обработчики закончили.
// Используется фазой сбора для веерной агрегации way перед однопоточной
// финализацией.
type Pool struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewPool создает новый Pool
func NewPool(logger *zap.Logger) *Pool {
	return &Pool{logger: logger}
}

// Spawn запускает n обработчиков fn в отдельных горутинах.
func (p *Pool) Spawn(name string, n int, fn func(worker int)) {
	p.logger.Info("Starting workers",
		zap.String("name", name),
		zap.Int("count", n))

	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func(worker int) {
			defer p.wg.Done()
			fn(worker)
		}(i)
	}
}

// Wait блокируется до завершения всех запущенных обработчиков.
func (p *Pool) Wait() {
	p.wg.Wait()
	p.logger.Info("All workers finished")
}
