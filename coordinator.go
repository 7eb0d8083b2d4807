package amt8000

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/exp/slices"
)

// session is the part of Client the coordinator drives on every refresh.
type session interface {
	Connect() error
	Auth(password string) error
	RawStatus() ([]byte, error)
	PairedSensors() ([]int, error)
	Close() error
}

// Coordinator polls the central on demand and keeps the last good Status
// around. While the central is unreachable it backs off, doubling from 2s up
// to 5m, and keeps serving the stale report, so a flaky link never takes the
// consumers down with it. The cap keeps a long outage from pushing the next
// attempt absurdly far out.
//
// Callers are expected to serialize Poll calls, the coordinator holds no
// lock.
type Coordinator struct {
	sess     session
	password string
	layout   ZoneLayout

	now func() time.Time

	backoff     *backoff.ExponentialBackOff
	status      *Status
	paired      []int
	pairedKnown bool
	failures    int
	lastUpdated time.Time
	nextAllowed time.Time
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithZoneLayout sets the layout used to decode the zone block.
func WithZoneLayout(layout ZoneLayout) CoordinatorOption {
	return func(c *Coordinator) { c.layout = layout }
}

// NewCoordinator creates a coordinator polling the central behind sess with
// the given password.
func NewCoordinator(sess session, password string, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		sess:     sess,
		password: password,
		layout:   ZoneLayoutV1,
		now:      time.Now,
		backoff:  newPollBackOff(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newPollBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = 5 * time.Minute
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Poll refreshes the status unless a previous failure still holds the next
// attempt back, and returns the freshest report known, nil until the first
// refresh succeeds. It never fails, an unreachable central only pushes the
// next attempt further out.
func (c *Coordinator) Poll() *Status {
	if c.now().Before(c.nextAllowed) {
		return c.status
	}
	status, err := c.refresh()
	if err != nil {
		c.failures++
		c.nextAllowed = c.now().Add(c.backoff.NextBackOff())
		log.Warn(
			"could not refresh status",
			"failures", c.failures,
			"next", c.nextAllowed.Format(time.Kitchen),
			"err", err,
		)
		return c.status
	}
	c.failures = 0
	c.backoff.Reset()
	c.status = status
	c.lastUpdated = c.now()
	c.nextAllowed = c.lastUpdated
	return c.status
}

// ConsecutiveFailures reports how many refreshes in a row have failed.
func (c *Coordinator) ConsecutiveFailures() int { return c.failures }

// LastUpdated reports when the cached status was last replaced.
func (c *Coordinator) LastUpdated() time.Time { return c.lastUpdated }

func (c *Coordinator) refresh() (*Status, error) {
	defer func() {
		if err := c.sess.Close(); err != nil {
			log.Warn("could not close the session", "err", err)
		}
	}()
	if err := c.sess.Connect(); err != nil {
		return nil, err
	}
	if err := c.sess.Auth(c.password); err != nil {
		return nil, err
	}
	raw, err := c.sess.RawStatus()
	if err != nil {
		return nil, err
	}
	status, err := DecodeStatus(raw, c.layout)
	if err != nil {
		return nil, err
	}
	if !c.pairedKnown {
		// Fetched once per coordinator, zones don't pair themselves while
		// we are polling. A failure here is not worth losing the report
		// over, the next refresh retries.
		paired, err := c.sess.PairedSensors()
		if err != nil {
			log.Warn("could not list paired sensors", "err", err)
		} else {
			c.paired = paired
			c.pairedKnown = true
		}
	}
	if c.pairedKnown {
		for n := range status.Zones {
			if !slices.Contains(c.paired, n) {
				delete(status.Zones, n)
			}
		}
	}
	return &status, nil
}
