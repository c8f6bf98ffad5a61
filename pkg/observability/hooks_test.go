package observability

import (
	"context"
	"testing"
	"time"
)

type recordingRenderHooks struct {
	NoopRenderHooks
	scenes int
}

func (h *recordingRenderHooks) OnSceneStart(context.Context, int) { h.scenes++ }

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Render().OnSceneStart(ctx, 10)
	Render().OnSceneComplete(ctx, 100, time.Second, nil)
	Render().OnSinkStart(ctx, []string{"svg"})
	Render().OnSinkComplete(ctx, []string{"svg"}, time.Second, nil)
	Probe().OnLookup(ctx, 850, true)
	Cache().OnCacheHit(ctx, "scene")
	Cache().OnCacheMiss(ctx, "scene")
	Cache().OnCacheSet(ctx, "scene", 1024)
}

func TestSetAndResetHooks(t *testing.T) {
	defer Reset()

	rh := &recordingRenderHooks{}
	ch := &recordingCacheHooks{}
	SetRenderHooks(rh)
	SetCacheHooks(ch)

	ctx := context.Background()
	Render().OnSceneStart(ctx, 3)
	Cache().OnCacheHit(ctx, "scene")
	Cache().OnCacheMiss(ctx, "artifact")

	if rh.scenes != 1 {
		t.Errorf("scenes = %d, want 1", rh.scenes)
	}
	if ch.hits != 1 || ch.misses != 1 {
		t.Errorf("cache hits/misses = %d/%d, want 1/1", ch.hits, ch.misses)
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset should restore no-op render hooks")
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	defer Reset()
	SetRenderHooks(nil)
	if Render() == nil {
		t.Error("nil registration must not clear hooks")
	}
}
