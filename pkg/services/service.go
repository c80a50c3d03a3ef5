package service

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type (
	Service interface {
		Name() string
		Init() error
		Run(ctx context.Context)
		Stop()
	}
	Services interface {
		AddService(service ...Service)
		Run(ctx context.Context) error
	}
	Manager struct {
		log      Logger
		services []Service
		signals  []os.Signal
	}
)

func NewManager(log Logger) Services {
	return &Manager{log: log, signals: []os.Signal{os.Interrupt, syscall.SIGTERM}}
}

func (s *Manager) AddService(service ...Service) {
	s.services = append(s.services, service...)
}

// Run initializes services in order, runs them until ctx is done or a signal
// arrives, then stops them in reverse order and waits for Run to return.
func (s *Manager) Run(ctx context.Context) error {
	s.log.Info("going to start %d services", len(s.services))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for count, svc := range s.services {
		if err := svc.Init(); err != nil {
			s.log.Error("failed to init %s: %v", svc.Name(), err)
			cancel()
			s.stop(s.services[:count])
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(svc Service) {
			defer wg.Done()
			svc.Run(runCtx)
		}(svc)
		s.log.Info("started %s", svc.Name())
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, s.signals...)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		s.log.Info("received %s", sig)
	case <-ctx.Done():
	}

	cancel()
	s.stop(s.services)
	wg.Wait()
	return nil
}

func (s *Manager) stop(services []Service) {
	s.log.Info("going to stop")
	for i := len(services) - 1; i >= 0; i-- {
		services[i].Stop()
		s.log.Info("stopped %s", services[i].Name())
	}
}
