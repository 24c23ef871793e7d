/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package scheduler

import (
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testclock "k8s.io/utils/clock/testing"

	"github.com/foodotbar/dmclock/types"
)

// newTestCore builds a Core backed by a fake clock, with infoFn supplying ClientInfo per client ID. Tests
// drive AddRequest/PullRequest with explicit synthetic types.Time values rather than the fake clock's wall
// time, so that scenarios are expressed purely in terms of virtual seconds.
func newTestCore(t *testing.T, infoFn types.ClientInfoFunc[string], cfg Config) *Core[string, string] {
	t.Helper()
	clk := testclock.NewFakeClock(time.Unix(0, 0))
	core, err := New[string, string](infoFn, cfg, clk, logr.Discard())
	require.NoError(t, err)
	t.Cleanup(core.Close)
	return core
}

func constantInfo(info types.ClientInfo) types.ClientInfoFunc[string] {
	return func(string) types.ClientInfo { return info }
}

func TestAddRequest_RejectsDisabledReservationAndWeight(t *testing.T) {
	core := newTestCore(t, constantInfo(types.NewClientInfo(0, 0, 5)), Config{})
	err := core.AddRequest("req", "a", types.ReqParams{}, 0, 0)
	assert.ErrorIs(t, err, types.ErrClientParametersRejected)
}

func TestPullRequest_SingleClientFIFO(t *testing.T) {
	core := newTestCore(t, constantInfo(types.NewClientInfo(1, 1, 0)), Config{})

	require.NoError(t, core.AddRequest("first", "a", types.ReqParams{}, 0, 0))
	require.NoError(t, core.AddRequest("second", "a", types.ReqParams{}, 0, 0))
	require.NoError(t, core.AddRequest("third", "a", types.ReqParams{}, 0, 0))

	var dispatched []string
	for i := 0; i < 3; i++ {
		outcome := core.PullRequest(types.Time(1000))
		require.Equal(t, OutcomeReturning, outcome.Kind)
		dispatched = append(dispatched, outcome.Request)
	}
	assert.Equal(t, []string{"first", "second", "third"}, dispatched)
}

func TestPullRequest_EmptySchedulerReturnsNone(t *testing.T) {
	core := newTestCore(t, constantInfo(types.NewClientInfo(1, 1, 0)), Config{})
	outcome := core.PullRequest(0)
	assert.Equal(t, OutcomeNone, outcome.Kind)
}

func TestPullRequest_FutureWhenReservationNotYetMature(t *testing.T) {
	core := newTestCore(t, constantInfo(types.NewClientInfo(1, 0, 0)), Config{})
	require.NoError(t, core.AddRequest("req", "a", types.ReqParams{}, 100, 0))

	outcome := core.PullRequest(types.Time(0))
	require.Equal(t, OutcomeFuture, outcome.Kind)
	assert.InDelta(t, 100, float64(outcome.FutureTime), 1e-9)
}

func TestRemoveByClient_DrainsPendingAndStopsDispatch(t *testing.T) {
	core := newTestCore(t, constantInfo(types.NewClientInfo(1, 1, 0)), Config{})
	require.NoError(t, core.AddRequest("req", "a", types.ReqParams{}, 0, 0))

	var drained []string
	core.RemoveByClient("a", func(r string) { drained = append(drained, r) })
	assert.Equal(t, []string{"req"}, drained)

	outcome := core.PullRequest(types.Time(1000))
	assert.Equal(t, OutcomeNone, outcome.Kind)
}

// TestDispatch_ReadySourceReducesReservationTags exercises the post-dispatch reservation-tag reduction: a
// single client with a short limit gets its head request promoted to ready and dispatched via the priority
// phase while its reservation deadline is still in the future, so every remaining queued tag (and prev_tag)
// must have its R coordinate pulled 1/r seconds closer.
func TestDispatch_ReadySourceReducesReservationTags(t *testing.T) {
	core := newTestCore(t, constantInfo(types.NewClientInfo(1, 1, 1)), Config{})

	// With r=1, w=1, l=1 and cost=5: tag1 = {R:6, P:1, L:1}, tag2 = {R:12, P:2, L:2} (seeded from ZeroTag).
	require.NoError(t, core.AddRequest("first", "a", types.ReqParams{}, 0, 5))
	require.NoError(t, core.AddRequest("second", "a", types.ReqParams{}, 0, 5))

	rec, ok := core.registry.Find("a")
	require.True(t, ok)

	// At now=1, the limit promotion loop matures "first"'s ready flag (L=1<=1) before its R=6 ever becomes
	// eligible, so the priority phase dispatches it via the ready ordering, not the reservation ordering.
	outcome := core.PullRequest(types.Time(1))
	require.Equal(t, OutcomeReturning, outcome.Kind)
	assert.Equal(t, "first", outcome.Request)
	assert.Equal(t, types.PhasePriority, outcome.Phase)

	remainingTag, _, ok := rec.Head()
	require.True(t, ok)
	assert.InDelta(t, 11, float64(remainingTag.R), 1e-9, "remaining queued tag's R should be reduced by 1/r")
	assert.InDelta(t, 11, float64(rec.PrevTag.R), 1e-9, "prev_tag.R should be reduced by 1/r")
}
