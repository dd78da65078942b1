package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/gruntwork-io/testgrunt/pkg/log"
	"github.com/gruntwork-io/testgrunt/util"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	DefaultWaitInterval = time.Second
	DefaultWaitTimeout  = 60 * time.Second
)

// WaitOptions configure WaitUntilReachable.
type WaitOptions struct {
	// Process, if set, makes the wait fail as soon as the process exits.
	Process *Process
	// Client defaults to a pooled go-cleanhttp client.
	Client   *http.Client
	Interval time.Duration
	Timeout  time.Duration
}

func (opts *WaitOptions) withDefaults() *WaitOptions {
	out := WaitOptions{}
	if opts != nil {
		out = *opts
	}

	if out.Interval <= 0 {
		out.Interval = DefaultWaitInterval
	}

	if out.Timeout <= 0 {
		out.Timeout = DefaultWaitTimeout
	}

	if out.Client == nil {
		out.Client = cleanhttp.DefaultPooledClient()
	}

	return &out
}

// WaitUntilReachable polls url until the server answers with any HTTP response.
//
// It fails with TimeoutError when the timeout elapses and with ProcessExitedError when the watched process exits first.
func WaitUntilReachable(ctx context.Context, l log.Logger, url string, opts *WaitOptions) error {
	opts = opts.withDefaults()

	waitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	l.Infof("Waiting for %s", url)

	err := util.DoWithRetry(waitCtx, "Request "+url, -1, opts.Interval, l, log.TraceLevel, func(ctx context.Context) error {
		if opts.Process != nil {
			select {
			case <-opts.Process.Exited():
				return util.FatalError{Underlying: ProcessExitedError{PID: opts.Process.PID, Err: opts.Process.Err()}}
			default:
			}
		}

		return probe(ctx, opts.Client, url, opts.Interval)
	})
	if err == nil {
		l.Debugf("Server at %s is reachable", url)
		return nil
	}

	var fatalErr util.FatalError
	if errors.As(err, &fatalErr) {
		return errors.New(fatalErr.Underlying)
	}

	if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return errors.New(TimeoutError{URL: url, Timeout: opts.Timeout})
	}

	return err
}

func probe(ctx context.Context, client *http.Client, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return util.FatalError{Underlying: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	return resp.Body.Close()
}
