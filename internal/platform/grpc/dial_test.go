package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestDialWithHealth(t *testing.T) {
	serving := newHealthFixture(t, grpc_health_v1.HealthCheckResponse_SERVING, notationService)
	down := newHealthFixture(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	tcs := []struct {
		name      string
		addr      string
		service   string
		wantStage DialStage
	}{
		{name: "server", addr: serving.addr},
		{name: "service", addr: serving.addr, service: notationService},
		{name: "unregistered service", addr: serving.addr, service: "aria.dice.v1.Unregistered", wantStage: DialStageHealth},
		{name: "not serving", addr: down.addr, wantStage: DialStageHealth},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			conn, err := DialWithHealth(ctx, nil, tc.addr, tc.service, 300*time.Millisecond, nil, DefaultClientDialOptions()...)
			if tc.wantStage == "" {
				if err != nil {
					t.Fatalf("dial with health: %v", err)
				}
				_ = conn.Close()
				return
			}

			if conn != nil {
				_ = conn.Close()
				t.Fatal("expected nil connection on error")
			}
			var dialErr *DialError
			if !errors.As(err, &dialErr) {
				t.Fatalf("expected *DialError, got %T (%v)", err, err)
			}
			if dialErr.Stage != tc.wantStage || dialErr.Addr != tc.addr {
				t.Fatalf("dial error = %+v, want stage %q for %s", dialErr, tc.wantStage, tc.addr)
			}
		})
	}
}

func TestDialWithHealthBoundsHealthWait(t *testing.T) {
	down := newHealthFixture(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	start := time.Now()
	if _, err := DialWithHealth(context.Background(), nil, down.addr, "", 150*time.Millisecond, nil, DefaultClientDialOptions()...); err == nil {
		t.Fatal("expected error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("dial timeout did not bound the health wait: %v", elapsed)
	}
}

func TestDialWithHealthConnectFailure(t *testing.T) {
	dialCause := errors.New("dial failure")
	var gotAddr string
	dialer := DialerFunc(func(addr string, _ ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
		gotAddr = addr
		return nil, dialCause
	})

	_, err := DialWithHealth(context.Background(), dialer, "dice:8085", "", time.Second, nil)
	var dialErr *DialError
	if !errors.As(err, &dialErr) || dialErr.Stage != DialStageConnect {
		t.Fatalf("expected connect DialError, got %v", err)
	}
	if !errors.Is(err, dialCause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	if gotAddr != "dice:8085" {
		t.Fatalf("dialer addr = %q", gotAddr)
	}
}

func TestDialErrorMessages(t *testing.T) {
	tcs := []struct {
		err  *DialError
		want string
	}{
		{&DialError{Stage: DialStageConnect, Err: errors.New("boom")}, "gRPC connect error: boom"},
		{&DialError{Stage: DialStageHealth, Addr: "localhost:8085", Err: errors.New("boom")}, "gRPC health error for localhost:8085: boom"},
	}
	for _, tc := range tcs {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("Error() = %q, want %q", got, tc.want)
		}
	}

	var nilErr *DialError
	if nilErr.Error() == "" {
		t.Fatal("expected message for nil DialError")
	}
	if nilErr.Unwrap() != nil {
		t.Fatal("expected nil unwrap for nil DialError")
	}
}

func TestUserAgent(t *testing.T) {
	if got := userAgent(); got != "aria-memo" {
		t.Fatalf("user agent = %q, want aria-memo", got)
	}
}
