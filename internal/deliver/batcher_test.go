package deliver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seanstash/seanstash-cli/internal/filter"
	"github.com/seanstash/seanstash-cli/internal/transport"
)

type fakeTransport struct {
	sent []string
	// fail maps command text to the error Send returns for it.
	fail map[string]error
}

func (f *fakeTransport) Send(_ context.Context, record filter.Record) error {
	f.sent = append(f.sent, record.Text)
	if err, ok := f.fail[record.Text]; ok {
		return err
	}
	return nil
}

func records(texts ...string) []filter.Record {
	out := make([]filter.Record, len(texts))
	for i, text := range texts {
		out[i] = filter.Record{Text: text, Hash: filter.Hash(text)}
	}
	return out
}

func TestDeliver(t *testing.T) {
	t.Run("all items submitted in sequence order", func(t *testing.T) {
		fake := &fakeTransport{}
		batcher := NewBatcher(2, false, zap.NewNop())

		outcome, err := batcher.Deliver(context.Background(), records("a", "b", "c"), fake)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, fake.sent)
		assert.Equal(t, 3, outcome.Attempted)
		assert.Equal(t, 3, outcome.Succeeded)
		assert.Empty(t, outcome.Failures)
	})

	t.Run("rejections are soft and do not stop the run", func(t *testing.T) {
		fake := &fakeTransport{fail: map[string]error{
			"b": &transport.RejectedError{Status: 422},
		}}
		batcher := NewBatcher(10, false, zap.NewNop())

		outcome, err := batcher.Deliver(context.Background(), records("a", "b", "c"), fake)
		require.NoError(t, err)

		assert.Equal(t, 3, outcome.Attempted)
		assert.Equal(t, 2, outcome.Succeeded)
		require.Len(t, outcome.Failures, 1)
		assert.Equal(t, "b", outcome.Failures[0].Record.Text)
	})

	t.Run("transport-level failure aborts the run", func(t *testing.T) {
		fake := &fakeTransport{fail: map[string]error{
			"b": errors.New("connection refused"),
		}}
		batcher := NewBatcher(10, false, zap.NewNop())

		outcome, err := batcher.Deliver(context.Background(), records("a", "b", "c"), fake)
		require.Error(t, err)

		// c is never attempted after the fatal failure on b.
		assert.Equal(t, []string{"a", "b"}, fake.sent)
		assert.Equal(t, 2, outcome.Attempted)
		assert.Equal(t, 1, outcome.Succeeded)
	})

	t.Run("dry run makes no transport calls and succeeds everything", func(t *testing.T) {
		fake := &fakeTransport{}
		batcher := NewBatcher(2, true, zap.NewNop())

		outcome, err := batcher.Deliver(context.Background(), records("a", "b", "c"), fake)
		require.NoError(t, err)

		assert.Empty(t, fake.sent)
		assert.Equal(t, 3, outcome.Attempted)
		assert.Equal(t, 3, outcome.Succeeded)
	})

	t.Run("progress is reported per item", func(t *testing.T) {
		fake := &fakeTransport{fail: map[string]error{
			"b": &transport.RejectedError{Status: 400},
		}}
		batcher := NewBatcher(10, false, zap.NewNop())

		var seen []string
		var errs []error
		batcher.Progress = func(record filter.Record, err error) {
			seen = append(seen, record.Text)
			errs = append(errs, err)
		}

		_, err := batcher.Deliver(context.Background(), records("a", "b"), fake)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, seen)
		assert.NoError(t, errs[0])
		assert.Error(t, errs[1])
	})

	t.Run("non-positive batch size falls back to one", func(t *testing.T) {
		fake := &fakeTransport{}
		batcher := NewBatcher(0, false, zap.NewNop())

		outcome, err := batcher.Deliver(context.Background(), records("a", "b"), fake)
		require.NoError(t, err)
		assert.Equal(t, 2, outcome.Succeeded)
	})
}
