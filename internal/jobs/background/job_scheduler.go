package background

import (
	"context"
	"sort"
	"sync"
	"time"

	"propertymanager/internal/common"
	"propertymanager/internal/metrics"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const (
	JobOverdueInvoices = "overdue-invoices"
	JobContractExpiry  = "contract-expiry"
)

type OverdueInvoiceMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

type ContractExpirer interface {
	ExpireEnded(ctx context.Context, now time.Time) (int, error)
}

// JobScheduler runs the periodic status maintenance jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	invoices  OverdueInvoiceMarker
	contracts ContractExpirer
	interval  time.Duration
	timeout   time.Duration
	now       func() time.Time
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(invoices OverdueInvoiceMarker, contracts ContractExpirer, interval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		invoices:  invoices,
		contracts: contracts,
		interval:  interval,
		timeout:   time.Minute,
		now:       time.Now,
		jobs:      make(map[string]gocron.Job),
	}

	if err := js.registerJobs(); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	common.Logger.Info("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	common.Logger.Info("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	tasks := map[string]func(context.Context) error{
		JobOverdueInvoices: js.markOverdueInvoices,
		JobContractExpiry:  js.expireContracts,
	}

	js.mu.Lock()
	defer js.mu.Unlock()
	for name, task := range tasks {
		job, err := js.scheduler.NewJob(
			gocron.DurationJob(js.interval),
			gocron.NewTask(js.run, name, task),
			gocron.WithName(name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return err
		}
		js.jobs[name] = job
	}

	common.Logger.Infof("Registered %d background jobs", len(js.jobs))
	return nil
}

// run wraps a task with a timeout, logging and metrics.
func (js *JobScheduler) run(name string, task func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), js.timeout)
	defer cancel()

	start := time.Now()
	err := task(ctx)
	metrics.RecordJobRun(name, time.Since(start), err == nil)

	if err != nil {
		common.Logger.WithError(err).WithField("job", name).Error("Background job failed")
	}
}

func (js *JobScheduler) markOverdueInvoices(ctx context.Context) error {
	n, err := js.invoices.MarkOverdue(ctx, js.now())
	if err != nil {
		return err
	}
	if n > 0 {
		common.Logger.WithFields(logrus.Fields{"job": JobOverdueInvoices, "count": n}).Info("Marked invoices overdue")
	}
	return nil
}

func (js *JobScheduler) expireContracts(ctx context.Context) error {
	released, err := js.contracts.ExpireEnded(ctx, js.now())
	if err != nil {
		return err
	}
	if released > 0 {
		common.Logger.WithFields(logrus.Fields{"job": JobContractExpiry, "released": released}).Info("Released properties of expired contracts")
	}
	return nil
}

// JobNames lists the registered jobs in name order.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
