package client

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/teenpatti/internal/game"
	"github.com/lox/teenpatti/internal/server"
	"github.com/lox/teenpatti/internal/session"
)

func startServer(t *testing.T) (string, *quartz.Mock) {
	t.Helper()
	logger := log.New(io.Discard)
	clock := quartz.NewMock(t)
	factory := func() (*session.Session, error) {
		return session.New(game.NewTestTable(), session.WithClock(clock), session.WithLogger(logger))
	}
	srv := server.NewServer("127.0.0.1:0", factory, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
		ts.Close()
	})
	return ts.URL, clock
}

func connect(t *testing.T, url string) *Client {
	t.Helper()
	c := NewClient(url, log.New(io.Discard))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Connect(ctx))
	t.Cleanup(func() { _ = c.Disconnect() })
	return c
}

func wait(t *testing.T, c *Client, match func(game.Snapshot) bool) server.StateData {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := c.WaitForState(ctx, match)
	require.NoError(t, err)
	return st
}

func TestClientPlaysAgainstServer(t *testing.T) {
	url, clock := startServer(t)
	c := connect(t, url)
	assert.True(t, c.IsConnected())

	st := wait(t, c, func(s game.Snapshot) bool { return s.Phase == game.Idle })
	assert.Empty(t, st.Event, "first state is the connect snapshot")
	assert.Equal(t, 0, st.Snapshot.Viewer)

	require.NoError(t, c.Command(server.CommandStart))
	st = wait(t, c, func(s game.Snapshot) bool { return s.Phase == game.Betting })
	assert.Equal(t, game.EventTypeRoundStart, st.Event)
	assert.Equal(t, 2, st.Snapshot.ActiveSeat)

	require.NoError(t, c.Command("call"))
	select {
	case e := <-c.Errors():
		assert.Equal(t, server.ErrCodeIllegalAction, e.Code)
	case <-time.After(5 * time.Second):
		t.Fatal("expected the out-of-turn call to be rejected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, w := clock.AdvanceNext()
	w.MustWait(ctx)
	wait(t, c, func(s game.Snapshot) bool { return s.ActiveSeat == 0 })

	require.NoError(t, c.Command("see"))
	st = wait(t, c, func(s game.Snapshot) bool { return len(s.Seats[0].Cards) == 3 })
	assert.NotEmpty(t, st.Snapshot.Seats[0].HandName)
	assert.Nil(t, st.Snapshot.Seats[1].Cards)
	assert.Equal(t, st.Snapshot.RoundID, c.Last().RoundID)
}

func TestClientUnknownCommand(t *testing.T) {
	url, _ := startServer(t)
	c := connect(t, url)
	wait(t, c, func(game.Snapshot) bool { return true })

	require.NoError(t, c.Command("bluff"))
	select {
	case e := <-c.Errors():
		assert.Equal(t, server.ErrCodeUnknownCommand, e.Code)
	case <-time.After(5 * time.Second):
		t.Fatal("expected an error")
	}
}

func TestClientDisconnect(t *testing.T) {
	url, _ := startServer(t)
	c := connect(t, url)

	require.NoError(t, c.Disconnect())
	require.NoError(t, c.Disconnect(), "disconnect is idempotent")
	assert.False(t, c.IsConnected())
	assert.Error(t, c.Command(server.CommandStart))

	_, err := c.WaitForState(context.Background(), func(game.Snapshot) bool { return false })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConnectBadURL(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", log.New(io.Discard))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Error(t, c.Connect(ctx))
	assert.False(t, c.IsConnected())
}
