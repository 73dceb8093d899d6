package eventbus

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/pkg/logging"
)

type args struct {
	data any
}

type otherArgs struct {
	data any
}

func TestPublisher_Publish_NoSubscribers(t *testing.T) {
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {
		t.Error("should not be called")
	})
	publisher.Publish(&otherArgs{data: "test"})

	output := logBuffer.String()
	if !strings.Contains(output, "eventbus.Publish: no matching subscribers") {
		t.Errorf("should have contained no matching subscribers but got: %q", output)
	}
}

func TestPublisher_Subscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	called := false
	var data any
	publisher.Subscribe(func(e *args) {
		called = true
		data = e.data
	})
	publisher.Publish(&args{data: "test"})
	require.True(t, called)
	require.Equal(t, "test", data)
}

func TestPublisher_PublishE_JoinsErrors(t *testing.T) {
	publisher := NewEventPublisher(nil)
	boom := errors.New("boom")
	publisher.Subscribe(func(e *args) error { return boom })
	publisher.Subscribe(func(e *args) { panic("kaput") })
	publisher.Subscribe(func(e *args) error { return nil })

	err := publisher.PublishE(&args{})
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "kaput")
}

func TestPublisher_PublishE_NoSubscribers(t *testing.T) {
	publisher := NewEventPublisher(nil)
	require.ErrorIs(t, publisher.PublishE(&args{}), ErrNoSubscribers)
}

func TestPublisher_PublishE_InvalidReturn(t *testing.T) {
	publisher := NewEventPublisher(nil)
	publisher.Subscribe(func(e *args) (int, error) { return 0, nil })
	require.ErrorIs(t, publisher.PublishE(&args{}), ErrInvalidHandlerReturn)
}

func TestPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher(nil)
	handler := func(e *args) {}
	publisher.Subscribe(handler)
	require.Equal(t, 1, publisher.SubscribersCount())
	publisher.Unsubscribe(handler)
	require.Equal(t, 0, publisher.SubscribersCount())
}

func TestMatchSignature_NilArgument(t *testing.T) {
	publisher := NewEventPublisher(nil)
	called := false
	publisher.Subscribe(func(e *args) { called = e == nil })
	require.NoError(t, publisher.PublishE(nil))
	require.True(t, called)
}
