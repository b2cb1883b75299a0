package ports

import "time"

type Metrics interface {
	ObserveAdmission(outcome string)
	ObserveCompletion(mode string, attempts int, ok bool, elapsed time.Duration)
	ObserveSweep(expired int, notifyFailures int, removeFailures int)
	ObserveSessions(active int)
}

type NopMetrics struct{}

func (NopMetrics) ObserveAdmission(string) {}

func (NopMetrics) ObserveCompletion(string, int, bool, time.Duration) {}

func (NopMetrics) ObserveSweep(int, int, int) {}

func (NopMetrics) ObserveSessions(int) {}
