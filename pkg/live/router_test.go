package live

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/justyntemme/realknobs/pkg/framework/debug"
	"github.com/justyntemme/realknobs/pkg/knobs"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type recorder struct {
	mu   sync.Mutex
	msgs []gomidi.Message
	err  error
}

func (r *recorder) send(msg gomidi.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func newRouter(t *testing.T, cfg knobs.Config) (*Router, *recorder, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	log := debug.New(out, "live", debug.FlagPrefix)
	rec := &recorder{}
	return NewRouter(knobs.MustNew(cfg), rec.send, log, 50*time.Millisecond), rec, out
}

func TestRouterReplacesMatchedControlChange(t *testing.T) {
	r, rec, _ := newRouter(t, knobs.Bank8)

	r.Handle(gomidi.ControlChange(0, 102, 5), 0)
	r.Handle(gomidi.ControlChange(0, 102, 65), 1)

	require.Len(t, rec.msgs, 2)
	assert.Equal(t, gomidi.ControlChange(0, 102, 5), rec.msgs[0])
	assert.Equal(t, gomidi.ControlChange(0, 102, 4), rec.msgs[1])

	received, replaced, sendErrors := r.Stats()
	assert.Equal(t, uint64(2), received)
	assert.Equal(t, uint64(2), replaced)
	assert.Zero(t, sendErrors)
}

func TestRouterForwardsEverythingElse(t *testing.T) {
	r, rec, _ := newRouter(t, knobs.Bank8)

	in := []gomidi.Message{
		gomidi.NoteOn(0, 60, 100),
		gomidi.ControlChange(3, 102, 1),
		gomidi.Pitchbend(0, 100),
		gomidi.SysEx([]byte{0x7E, 0x7F, 0x06, 0x01}),
	}
	for _, msg := range in {
		r.Handle(msg, 0)
	}

	assert.Equal(t, in, rec.msgs)
	_, replaced, _ := r.Stats()
	assert.Zero(t, replaced)
}

func TestRouterLogsSettledMoves(t *testing.T) {
	r, _, out := newRouter(t, knobs.Single)

	for i := 0; i < 5; i++ {
		r.Handle(gomidi.ControlChange(0, 7, 1), int32(i))
	}

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "knob 0: ch 1 cc 7 = 10")
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, strings.Count(out.String(), "knob 0:"), "moves are coalesced")
}

func TestRouterCountsSendErrors(t *testing.T) {
	r, rec, out := newRouter(t, knobs.Single)
	rec.err = errors.New("port closed")

	r.Handle(gomidi.NoteOn(0, 60, 100), 0)
	r.Handle(gomidi.NoteOn(0, 61, 100), 0)

	_, _, sendErrors := r.Stats()
	assert.Equal(t, uint64(2), sendErrors)
	assert.Equal(t, 1, strings.Count(out.String(), "port closed"), "only the first failure is logged")
}
