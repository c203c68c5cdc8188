package jobs

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"accounts/services/logger"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
)

type countingPinger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	return p.err
}

func TestInitCronJobsRegistersKeepAlive(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	pinger := &countingPinger{}
	require.NoError(t, InitCronJobs(c, pinger, "@every 5m", logger.NewLogger(logger.ErrorLevel, io.Discard)))
	require.Len(t, c.Entries(), 1)

	c.Entries()[0].Job.Run()
	require.Equal(t, int32(1), pinger.calls.Load())
}

func TestInitCronJobsWithoutSchedule(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	require.NoError(t, InitCronJobs(c, &countingPinger{}, "", logger.NewLogger(logger.ErrorLevel, io.Discard)))
	require.Empty(t, c.Entries())
}

func TestInitCronJobsRejectsBadSchedule(t *testing.T) {
	c := cron.New()
	require.Error(t, InitCronJobs(c, &countingPinger{}, "every now and then", logger.NewLogger(logger.ErrorLevel, io.Discard)))
}

func TestKeepAliveToleratesFailure(t *testing.T) {
	pinger := &countingPinger{err: errors.New("connection refused")}
	KeepAlive(pinger, logger.NewLogger(logger.ErrorLevel, io.Discard))
	require.Equal(t, int32(1), pinger.calls.Load())
}
