package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shanehull/auctionwatch/internal/notify"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestHeartbeat_SendsEachInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	images := NewMockImageNotifier(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	images.EXPECT().NotifyHeartbeatImage(gomock.Any()).DoAndReturn(func(context.Context) []notify.Delivery {
		calls++
		if calls == 2 {
			cancel()
		}
		return []notify.Delivery{{Channel: "telegram", Status: notify.Sent}}
	}).Times(2)

	done := make(chan struct{})
	go func() {
		NewHeartbeat(images, 10*time.Millisecond).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("heartbeat did not stop")
	}
}

func TestHeartbeat_FailureDoesNotStopTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	images := NewMockImageNotifier(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		images.EXPECT().NotifyHeartbeatImage(gomock.Any()).Return([]notify.Delivery{
			{Channel: "telegram", Status: notify.Failed, Err: notify.ErrImageNotFound},
		}),
		images.EXPECT().NotifyHeartbeatImage(gomock.Any()).DoAndReturn(func(context.Context) []notify.Delivery {
			panic("send on closed channel")
		}),
		images.EXPECT().NotifyHeartbeatImage(gomock.Any()).DoAndReturn(func(context.Context) []notify.Delivery {
			cancel()
			return nil
		}),
	)

	done := make(chan struct{})
	go func() {
		NewHeartbeat(images, 10*time.Millisecond).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("heartbeat did not stop")
	}
}

func TestHeartbeat_DisabledReturnsImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	images := NewMockImageNotifier(ctrl)
	NewHeartbeat(images, 0).Run(context.Background())
}

func TestHeartbeat_NotBeforeFirstInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	images := NewMockImageNotifier(ctrl)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	NewHeartbeat(images, time.Hour).Run(ctx)
	require.True(t, errors.Is(ctx.Err(), context.DeadlineExceeded))
}
