package runtime_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/slidekit/internal/runtime"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder registers "unload" and "end" callbacks and records every invocation as "event:slide".
type recorder struct {
	calls []string
}

func (r *recorder) registry() *registry.Registry {
	reg := registry.NewRegistry()
	reg.Register("unload", func(ctx context.Context, evt domain.CallbackEvent) error {
		r.calls = append(r.calls, "unload:"+evt.SlideID)
		return nil
	})
	reg.Register("end", func(ctx context.Context, evt domain.CallbackEvent) error {
		r.calls = append(r.calls, "end:"+evt.SlideID)
		return nil
	})
	return reg
}

func slide(id, kind string) domain.Slide {
	return domain.Slide{ID: id, Transition: kind, OnUnload: "unload", OnTransitionEnd: "end"}
}

func newSession(t *testing.T, rec *recorder, slides []domain.Slide, opts ...runtime.SessionOption) *runtime.Session {
	t.Helper()
	opts = append([]runtime.SessionOption{runtime.WithCallbacks(rec.registry())}, opts...)
	s, err := runtime.NewSession(slides, opts...)
	require.NoError(t, err)
	return s
}

func dissolveDeck(n int) []domain.Slide {
	slides := make([]domain.Slide, n)
	for i := range slides {
		slides[i] = slide(fmt.Sprintf("s%d", i), "dissolve")
	}
	return slides
}

func classesOf(t *testing.T, s *runtime.Session, id string) []string {
	t.Helper()
	sl, err := s.Slides().ByID(id)
	require.NoError(t, err)
	return sl.Classes.Classes()
}

func currentIndex(t *testing.T, s *runtime.Session) int {
	t.Helper()
	idx, err := s.Slides().CurrentIndex()
	require.NoError(t, err)
	return idx
}

// settle delivers the awaited completion signals until the session is idle.
func settle(t *testing.T, s *runtime.Session) {
	t.Helper()
	ctx := context.Background()
	for i := 0; s.Phase() != domain.PhaseIdle; i++ {
		require.Less(t, i, 10, "transition did not settle")
		for _, id := range s.Awaiting() {
			require.NoError(t, s.Complete(ctx, id))
		}
	}
}

func TestSession_StartsOnFirstSlide(t *testing.T) {
	s := newSession(t, &recorder{}, dissolveDeck(3))

	assert.Equal(t, 0, currentIndex(t, s))
	assert.Equal(t, domain.PhaseIdle, s.Phase())
	assert.Equal(t, []string{"dissolve", "current"}, classesOf(t, s, "s0"))
	assert.Equal(t, []string{"dissolve"}, classesOf(t, s, "s1"))
}

func TestSession_StartsOnMarkedSlide(t *testing.T) {
	slides := dissolveDeck(3)
	slides[1].Current = true
	s := newSession(t, &recorder{}, slides)
	assert.Equal(t, 1, currentIndex(t, s))

	slides[2].Current = true
	_, err := runtime.NewSession(slides, runtime.WithCallbacks((&recorder{}).registry()))
	assert.Error(t, err, "two slides marked current is a configuration error")
}

func TestSession_LoadTimeValidation(t *testing.T) {
	t.Run("Unknown Transition Kind", func(t *testing.T) {
		_, err := runtime.NewSession([]domain.Slide{{ID: "a"}, {ID: "b", Transition: "wobble"}})
		assert.ErrorIs(t, err, domain.ErrUnknownTransitionKind)
	})

	t.Run("Unknown Callback", func(t *testing.T) {
		_, err := runtime.NewSession([]domain.Slide{{ID: "a", OnUnload: "nope"}})
		assert.ErrorIs(t, err, domain.ErrUnknownCallback)
	})

	t.Run("Empty Deck", func(t *testing.T) {
		_, err := runtime.NewSession(nil)
		assert.ErrorIs(t, err, domain.ErrEmptyDeck)
	})

	t.Run("Duplicate IDs", func(t *testing.T) {
		_, err := runtime.NewSession([]domain.Slide{{ID: "a"}, {ID: "a"}})
		assert.ErrorIs(t, err, domain.ErrDuplicateSlideID)
	})

	t.Run("Defaults Applied", func(t *testing.T) {
		s, err := runtime.NewSession([]domain.Slide{{ID: "a"}})
		require.NoError(t, err)
		sl, err := s.Slides().At(0)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultTransition, sl.Transition)
		assert.Equal(t, domain.DefaultDelay, sl.Delay)
	})
}

func TestSession_NextStopsAtEnd(t *testing.T) {
	ctx := context.Background()
	for _, n := range []int{2, 3, 5} {
		t.Run(fmt.Sprintf("len=%d", n), func(t *testing.T) {
			s := newSession(t, &recorder{}, dissolveDeck(n))
			for i := 0; i < n-1; i++ {
				require.NoError(t, s.Next(ctx))
				settle(t, s)
			}
			assert.Equal(t, n-1, currentIndex(t, s))

			require.NoError(t, s.Next(ctx))
			assert.Equal(t, domain.PhaseIdle, s.Phase(), "next at the end must not start a transition")
			assert.Equal(t, n-1, currentIndex(t, s))
		})
	}
}

func TestSession_PreviousAtStartIsNoop(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, rec, dissolveDeck(3))
	before := s.State()

	require.NoError(t, s.Previous(context.Background()))

	assert.Equal(t, before, s.State())
	assert.Empty(t, rec.calls, "no callback may fire on a boundary no-op")
}

func TestSession_GotoThenBackRoundTrip(t *testing.T) {
	ctx := context.Background()
	deck := []domain.Slide{
		slide("a", "dissolve"), slide("b", "fade"), slide("c", "dissolve"), slide("d", "slide"),
	}

	for k := 1; k < len(deck); k++ {
		t.Run(deck[k].ID, func(t *testing.T) {
			s := newSession(t, &recorder{}, deck)
			require.NoError(t, s.Next(ctx))
			settle(t, s)
			prior := currentIndex(t, s)
			if prior == k {
				return
			}

			require.NoError(t, s.Goto(ctx, k))
			settle(t, s)
			assert.Equal(t, k, currentIndex(t, s))

			require.NoError(t, s.Back(ctx))
			settle(t, s)
			assert.Equal(t, prior, currentIndex(t, s))
			assert.Equal(t, []string{"a"}, s.History(), "back must not push history")
		})
	}
}

func TestSession_GotoOutOfRange(t *testing.T) {
	s := newSession(t, &recorder{}, dissolveDeck(2))

	assert.ErrorIs(t, s.Goto(context.Background(), 2), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Goto(context.Background(), -1), domain.ErrIndexOutOfRange)
	assert.Empty(t, s.History())
}

func TestSession_GotoCurrentIsNoop(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, rec, dissolveDeck(2))

	require.NoError(t, s.Goto(context.Background(), 0))
	assert.Equal(t, domain.PhaseIdle, s.Phase())
	assert.Empty(t, s.History())
	assert.Empty(t, rec.calls)
}

func TestSession_BackOnEmptyHistory(t *testing.T) {
	s := newSession(t, &recorder{}, dissolveDeck(2))
	require.NoError(t, s.Back(context.Background()))
	assert.Equal(t, 0, currentIndex(t, s))
	assert.Equal(t, domain.PhaseIdle, s.Phase())
}

func TestSession_SyncTransitionFiresOneCallbackAfterBothSignals(t *testing.T) {
	ctx := context.Background()

	for _, order := range [][]string{{"s0", "s1"}, {"s1", "s0"}} {
		t.Run(order[0]+"-first", func(t *testing.T) {
			rec := &recorder{}
			s := newSession(t, rec, dissolveDeck(2))

			require.NoError(t, s.Next(ctx))
			assert.Equal(t, []string{"unload:s0"}, rec.calls)
			assert.Equal(t, domain.PhaseSync, s.Phase())
			assert.NotContains(t, classesOf(t, s, "s0"), domain.TagCurrent)
			assert.Contains(t, classesOf(t, s, "s1"), domain.TagCurrent)

			require.NoError(t, s.Complete(ctx, order[0]))
			assert.Equal(t, []string{"unload:s0"}, rec.calls, "callback waits for both signals")
			assert.Equal(t, domain.PhaseSync, s.Phase())

			require.NoError(t, s.Complete(ctx, order[1]))
			assert.Equal(t, []string{"unload:s0", "end:s1"}, rec.calls)
			assert.Equal(t, domain.PhaseIdle, s.Phase())
		})
	}
}

func TestSession_SyncDuplicateSignalIsNotCounted(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := newSession(t, rec, dissolveDeck(3))

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Complete(ctx, "s1"))
	require.NoError(t, s.Complete(ctx, "s1"))
	require.NoError(t, s.Complete(ctx, "s2"), "a slide outside the transition is stale")
	assert.Equal(t, domain.PhaseSync, s.Phase())
	assert.Equal(t, []string{"s0"}, s.Awaiting())

	require.NoError(t, s.Complete(ctx, "s0"))
	assert.Equal(t, []string{"unload:s0", "end:s1"}, rec.calls)
}

func TestSession_AsyncPhasesAreOrdered(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := newSession(t, rec, []domain.Slide{slide("a", "dissolve"), slide("b", "fade")})

	require.NoError(t, s.Next(ctx))
	assert.Equal(t, domain.PhaseAsync, s.Phase())
	assert.ElementsMatch(t, []string{"dissolve", "current", "out"}, classesOf(t, s, "a"))
	assert.ElementsMatch(t, []string{"fade", "next"}, classesOf(t, s, "b"))

	// The arriving slide cannot finish before the departure completed.
	require.NoError(t, s.Complete(ctx, "b"))
	assert.ElementsMatch(t, []string{"fade", "next"}, classesOf(t, s, "b"))
	assert.Equal(t, []string{"unload:a"}, rec.calls)

	require.NoError(t, s.Complete(ctx, "a"))
	assert.ElementsMatch(t, []string{"dissolve"}, classesOf(t, s, "a"))
	assert.ElementsMatch(t, []string{"fade", "in", "current"}, classesOf(t, s, "b"))
	assert.Equal(t, []string{"unload:a"}, rec.calls, "no callback on handoff")
	assert.Equal(t, domain.PhaseAsync, s.Phase())

	require.NoError(t, s.Complete(ctx, "b"))
	assert.ElementsMatch(t, []string{"fade", "current"}, classesOf(t, s, "b"))
	assert.Equal(t, []string{"unload:a", "end:b"}, rec.calls)
	assert.Equal(t, domain.PhaseIdle, s.Phase())
}

func TestSession_DuplicateSignalAfterResolution(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := newSession(t, rec, []domain.Slide{slide("a", "fade"), slide("b", "dissolve")})

	require.NoError(t, s.Next(ctx))
	settle(t, s)
	before := s.State()
	calls := len(rec.calls)

	for _, id := range []string{"a", "b", "b", "a"} {
		require.NoError(t, s.Complete(ctx, id))
	}

	assert.Equal(t, before, s.State())
	assert.Len(t, rec.calls, calls)
}

// Deck [A(dissolve), B(dissolve), C(fade)] walked through forward.
func TestSession_ConcreteScenario(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := newSession(t, rec, []domain.Slide{slide("A", "dissolve"), slide("B", "dissolve"), slide("C", "fade")})

	// A -> B is synchronous.
	require.NoError(t, s.Next(ctx))
	assert.Equal(t, []string{"unload:A"}, rec.calls)
	assert.NotContains(t, classesOf(t, s, "A"), domain.TagCurrent)
	assert.Contains(t, classesOf(t, s, "B"), domain.TagCurrent)
	assert.Equal(t, []string{"A", "B"}, s.Awaiting())

	require.NoError(t, s.Complete(ctx, "B"))
	require.NoError(t, s.Complete(ctx, "A"))
	assert.Equal(t, []string{"unload:A", "end:B"}, rec.calls)
	assert.Equal(t, domain.PhaseIdle, s.Phase())

	// B -> C is asynchronous because C fades.
	require.NoError(t, s.Next(ctx))
	assert.Equal(t, []string{"unload:A", "end:B", "unload:B"}, rec.calls)
	assert.ElementsMatch(t, []string{"dissolve", "current", "out"}, classesOf(t, s, "B"))
	assert.ElementsMatch(t, []string{"fade", "next"}, classesOf(t, s, "C"))

	require.NoError(t, s.Complete(ctx, "B"))
	assert.ElementsMatch(t, []string{"dissolve"}, classesOf(t, s, "B"))
	assert.ElementsMatch(t, []string{"fade", "current", "in"}, classesOf(t, s, "C"))

	require.NoError(t, s.Complete(ctx, "C"))
	assert.ElementsMatch(t, []string{"fade", "current"}, classesOf(t, s, "C"))
	assert.Equal(t, []string{"unload:A", "end:B", "unload:B", "end:C"}, rec.calls)
	assert.Equal(t, []string{"A", "B"}, s.History())
}

func TestSession_OverlapQueue(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := newSession(t, rec, dissolveDeck(4))

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Next(ctx), "queued, not rejected")
	require.NoError(t, s.Next(ctx))
	assert.Equal(t, 2, s.State().Pending)
	assert.Equal(t, 1, currentIndex(t, s), "queued requests wait for the transition")

	settle(t, s)
	settle(t, s)
	settle(t, s)

	assert.Equal(t, 3, currentIndex(t, s))
	assert.Equal(t, 0, s.State().Pending)
	assert.Equal(t, []string{"s0", "s1", "s2"}, s.History())
	assert.Equal(t, []string{
		"unload:s0", "end:s1",
		"unload:s1", "end:s2",
		"unload:s2", "end:s3",
	}, rec.calls)
}

func TestSession_LeftoverSignalsDoNotReachQueuedTransition(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, &recorder{}, []domain.Slide{slide("A", "fade"), slide("B", "fade"), slide("C", "fade")})

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Next(ctx))
	first := s.Generation()

	// Two signals per animation, the second one arriving after its transition moved on.
	require.NoError(t, s.CompleteGeneration(ctx, "A", first))
	require.NoError(t, s.CompleteGeneration(ctx, "A", first))
	require.NoError(t, s.CompleteGeneration(ctx, "B", first))

	// B -> C started from the queue; B departs.
	second := s.Generation()
	require.NotEqual(t, first, second)
	assert.ElementsMatch(t, []string{"fade", "current", "out"}, classesOf(t, s, "B"))
	assert.ElementsMatch(t, []string{"fade", "next"}, classesOf(t, s, "C"))

	require.NoError(t, s.CompleteGeneration(ctx, "B", first))
	assert.ElementsMatch(t, []string{"fade", "current", "out"}, classesOf(t, s, "B"), "B's outbound phase is still running")
	assert.ElementsMatch(t, []string{"fade", "next"}, classesOf(t, s, "C"))
	assert.Equal(t, []string{"B"}, s.Awaiting())

	require.NoError(t, s.CompleteGeneration(ctx, "B", second))
	assert.ElementsMatch(t, []string{"fade"}, classesOf(t, s, "B"))
	assert.ElementsMatch(t, []string{"fade", "in", "current"}, classesOf(t, s, "C"))

	require.NoError(t, s.CompleteGeneration(ctx, "C", second))
	assert.Equal(t, domain.PhaseIdle, s.Phase())
	assert.Equal(t, 2, currentIndex(t, s))
}

func TestSession_RestoreRetiresEarlierSignals(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, &recorder{}, []domain.Slide{slide("a", "fade"), slide("b", "fade"), slide("c", "fade")})
	before := s.Generation()

	require.NoError(t, s.Restore(&domain.Snapshot{CurrentID: "b"}))
	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.CompleteGeneration(ctx, "b", before))
	assert.ElementsMatch(t, []string{"fade", "current", "out"}, classesOf(t, s, "b"))
}

func TestSession_QueueSurvivesCallbackError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("author code failed")
	reg := registry.NewRegistry()
	reg.Register("fail", func(ctx context.Context, evt domain.CallbackEvent) error { return boom })

	s, err := runtime.NewSession([]domain.Slide{
		{ID: "a"}, {ID: "b", OnTransitionEnd: "fail"}, {ID: "c"}, {ID: "d"},
	}, runtime.WithCallbacks(reg))
	require.NoError(t, err)

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Goto(ctx, 3))
	require.NoError(t, s.Complete(ctx, "a"))

	assert.ErrorIs(t, s.Complete(ctx, "b"), boom)
	assert.Equal(t, domain.PhaseSync, s.Phase(), "the queued goto still runs")
	assert.Equal(t, 0, s.State().Pending)
	assert.Equal(t, []string{"b", "d"}, s.Awaiting())

	require.NoError(t, s.Previous(ctx))
	settle(t, s)
	assert.Equal(t, 2, currentIndex(t, s), "previous runs after the older goto")
	assert.Equal(t, []string{"a", "b", "d"}, s.History())
}

func TestSession_OverlapReject(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, &recorder{}, dissolveDeck(3), runtime.WithOverlapPolicy(domain.OverlapReject))

	require.NoError(t, s.Next(ctx))
	assert.ErrorIs(t, s.Next(ctx), domain.ErrTransitionInFlight)
	assert.ErrorIs(t, s.Back(ctx), domain.ErrTransitionInFlight)

	settle(t, s)
	assert.Equal(t, 1, currentIndex(t, s))
	assert.Equal(t, []string{"s0"}, s.History())
}

func TestSession_QueuedNoopIsSkipped(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, &recorder{}, dissolveDeck(2))

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Next(ctx)) // will be a no-op at the end
	require.NoError(t, s.Previous(ctx))

	// Resolving s0 -> s1 replays next (a no-op at the end) then previous.
	require.NoError(t, s.Complete(ctx, "s0"))
	require.NoError(t, s.Complete(ctx, "s1"))
	assert.Equal(t, domain.PhaseSync, s.Phase())
	assert.Equal(t, []string{"s1", "s0"}, s.Awaiting())
	settle(t, s)
	assert.Equal(t, 0, currentIndex(t, s))
}

func TestSession_UnloadErrorAbortsNavigation(t *testing.T) {
	boom := errors.New("author code failed")
	reg := registry.NewRegistry()
	reg.Register("fail", func(ctx context.Context, evt domain.CallbackEvent) error { return boom })

	s, err := runtime.NewSession([]domain.Slide{{ID: "a", OnUnload: "fail"}, {ID: "b"}}, runtime.WithCallbacks(reg))
	require.NoError(t, err)

	err = s.Next(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.PhaseIdle, s.Phase())
	assert.Equal(t, 0, currentIndex(t, s))
	assert.Empty(t, s.History())
}

func TestSession_TransitionEndErrorPropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("author code failed")
	reg := registry.NewRegistry()
	reg.Register("fail", func(ctx context.Context, evt domain.CallbackEvent) error { return boom })

	s, err := runtime.NewSession([]domain.Slide{{ID: "a"}, {ID: "b", OnTransitionEnd: "fail"}}, runtime.WithCallbacks(reg))
	require.NoError(t, err)

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Complete(ctx, "a"))
	assert.ErrorIs(t, s.Complete(ctx, "b"), boom)
	assert.Equal(t, domain.PhaseIdle, s.Phase(), "state resolves before the callback runs")
	assert.Equal(t, 1, currentIndex(t, s))
}

func TestSession_CallbackMayNavigate(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewRegistry()
	var s *runtime.Session
	reg.Register("advance", func(ctx context.Context, evt domain.CallbackEvent) error {
		return s.Next(ctx)
	})

	var err error
	s, err = runtime.NewSession([]domain.Slide{{ID: "a"}, {ID: "b", OnTransitionEnd: "advance"}, {ID: "c"}}, runtime.WithCallbacks(reg))
	require.NoError(t, err)

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Complete(ctx, "a"))
	require.NoError(t, s.Complete(ctx, "b")) // b's callback starts b -> c
	assert.Equal(t, domain.PhaseSync, s.Phase())
	assert.Equal(t, []string{"b", "c"}, s.Awaiting())
	settle(t, s)
	assert.Equal(t, 2, currentIndex(t, s))
}

func TestSession_Force(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := newSession(t, rec, []domain.Slide{slide("a", "slide"), slide("b", "fade")})

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Force(ctx))

	assert.Equal(t, domain.PhaseIdle, s.Phase())
	assert.ElementsMatch(t, []string{"fade", "current"}, classesOf(t, s, "b"))
	assert.Equal(t, []string{"unload:a", "end:b"}, rec.calls)

	require.NoError(t, s.Force(ctx), "force while idle is a no-op")
}

func TestSession_CompleteUnknownSlide(t *testing.T) {
	s := newSession(t, &recorder{}, dissolveDeck(2))
	assert.ErrorIs(t, s.Complete(context.Background(), "ghost"), domain.ErrUnknownSlide)
}

func TestSession_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := newSession(t, rec, dissolveDeck(4), runtime.WithName("talk"))

	require.NoError(t, s.Goto(ctx, 2))
	_, err := s.Snapshot()
	assert.ErrorIs(t, err, domain.ErrTransitionInFlight)
	settle(t, s)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "talk", snap.Deck)
	assert.Equal(t, "s2", snap.CurrentID)
	assert.Equal(t, []string{"s0"}, snap.History)

	other := newSession(t, rec, dissolveDeck(4))
	calls := len(rec.calls)
	require.NoError(t, other.Restore(snap))
	assert.Equal(t, 2, currentIndex(t, other))
	assert.Equal(t, []string{"s0"}, other.History())
	assert.Len(t, rec.calls, calls, "restore fires no callback")

	require.NoError(t, other.Back(ctx))
	settle(t, other)
	assert.Equal(t, 0, currentIndex(t, other))

	assert.ErrorIs(t, other.Restore(&domain.Snapshot{CurrentID: "zz"}), domain.ErrUnknownSlide)
}

func TestSession_HooksObserveTransitions(t *testing.T) {
	ctx := context.Background()
	var events []string
	hooks := domain.LifecycleHooks{
		OnTransitionStart: func(ctx context.Context, e *domain.TransitionEvent) {
			events = append(events, fmt.Sprintf("start:%s>%s", e.FromID, e.ToID))
		},
		OnHandoff: func(ctx context.Context, e *domain.TransitionEvent) {
			events = append(events, "handoff")
		},
		OnTransitionEnd: func(ctx context.Context, e *domain.TransitionEvent) {
			events = append(events, fmt.Sprintf("end:%s>%s", e.FromID, e.ToID))
		},
		OnSignal: func(ctx context.Context, e *domain.SignalEvent) {
			if e.Stale {
				events = append(events, "stale:"+e.SlideID)
			}
		},
	}
	s := newSession(t, &recorder{}, []domain.Slide{slide("a", "dissolve"), slide("b", "fade")}, runtime.WithLifecycleHooks(hooks))

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Complete(ctx, "b"))
	require.NoError(t, s.Complete(ctx, "a"))
	require.NoError(t, s.Complete(ctx, "b"))

	assert.Equal(t, []string{"start:a>b", "stale:b", "handoff", "end:a>b"}, events)
}
