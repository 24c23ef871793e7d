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

	"github.com/foodotbar/dmclock/registry"
	"github.com/foodotbar/dmclock/types"
)

func infoByClient(m map[string]types.ClientInfo) types.ClientInfoFunc[string] {
	return func(c string) types.ClientInfo { return m[c] }
}

// TestScenario_ReservationDominatesAtRateProportionalCounts is the reservation scenario: two continuously
// backlogged clients with no competing weight, differing only in reservation rate. Reservation deadlines
// mature strictly in rate order and the reservation phase is always checked before the priority phase, so the
// count of reservation-phase dispatches within a fixed window is exactly floor(rate * window) per client,
// matching the 2:1 rate ratio.
func TestScenario_ReservationDominatesAtRateProportionalCounts(t *testing.T) {
	infos := map[string]types.ClientInfo{
		"A": types.NewClientInfo(2, 1, 10),
		"B": types.NewClientInfo(1, 1, 10),
	}
	core := newTestCore(t, infoByClient(infos), Config{})

	for _, client := range []string{"A", "B"} {
		for i := 0; i < 100; i++ {
			require.NoError(t, core.AddRequest("req", client, types.ReqParams{}, 0, 0))
		}
	}

	counts := map[string]int{}
	for i := 0; i < 250; i++ {
		outcome := core.PullRequest(types.Time(10))
		if outcome.Kind != OutcomeReturning {
			break
		}
		if outcome.Phase == types.PhaseReservation {
			counts[outcome.Client]++
		}
	}

	assert.Equal(t, 20, counts["A"], "rate 2/s over a 10s window matures exactly 20 reservation deadlines")
	assert.Equal(t, 10, counts["B"], "rate 1/s over a 10s window matures exactly 10 reservation deadlines")
}

// TestScenario_WeightSharingIsAllPriorityPhase is the weight-sharing scenario: reservation disabled for both
// clients, so every dispatch is sourced from the ready ordering, and a higher-weight client is dispatched
// more often in roughly the ratio of its weight.
func TestScenario_WeightSharingIsAllPriorityPhase(t *testing.T) {
	infos := map[string]types.ClientInfo{
		"A": types.NewClientInfo(0, 3, 0),
		"B": types.NewClientInfo(0, 1, 0),
	}
	core := newTestCore(t, infoByClient(infos), Config{})

	for _, client := range []string{"A", "B"} {
		for i := 0; i < 100; i++ {
			require.NoError(t, core.AddRequest("req", client, types.ReqParams{}, 0, 0))
		}
	}

	counts := map[string]int{}
	const sampleSize = 40
	for i := 0; i < sampleSize; i++ {
		outcome := core.PullRequest(types.Time(0))
		require.Equal(t, OutcomeReturning, outcome.Kind)
		require.Equal(t, types.PhasePriority, outcome.Phase, "reservation is disabled for both clients")
		counts[outcome.Client]++
	}

	require.Equal(t, sampleSize, counts["A"]+counts["B"])
	ratio := float64(counts["A"]) / float64(counts["B"])
	assert.Greater(t, ratio, 2.0, "A's weight is 3x B's, so it should dispatch well more than twice as often")
	assert.Less(t, ratio, 5.0)
}

// TestScenario_LimitThrottlesReadyPromotion is the limit-throttling scenario: a single client with its
// reservation axis disabled can only be dispatched once its limit deadline matures and promotes its head to
// ready, so within a fixed window the dispatch count is capped by the limit rate.
func TestScenario_LimitThrottlesReadyPromotion(t *testing.T) {
	core := newTestCore(t, constantInfo(types.NewClientInfo(0, 1, 5)), Config{})
	for i := 0; i < 20; i++ {
		require.NoError(t, core.AddRequest("req", "a", types.ReqParams{}, 0, 0))
	}

	count := 0
	for i := 0; i < 25; i++ {
		outcome := core.PullRequest(types.Time(2))
		if outcome.Kind != OutcomeReturning {
			break
		}
		count++
	}

	assert.LessOrEqual(t, count, 11, "limit 5/s over a 2s window caps dispatches at 5*2+1")
}

// TestScenario_IdleReentryCorrectsPropDelta is the idle re-entry scenario: correctIdleDriftLocked must pin a
// reactivating client's PropDelta to the gap between the current virtual front among active clients and now,
// so the client's first new request competes from that front rather than from its stale prior position.
func TestScenario_IdleReentryCorrectsPropDelta(t *testing.T) {
	core := newTestCore(t, constantInfo(types.NewClientInfo(0, 1, 0)), Config{})

	active, _ := core.registry.GetOrCreate("B")
	active.Idle = false
	active.Enqueue(types.RequestTag{P: 100, Ready: true}, "b-req")

	reactivating, _ := core.registry.GetOrCreate("A")
	reactivating.Idle = true

	core.correctIdleDriftLocked(reactivating, types.Time(105))

	assert.InDelta(t, -5, reactivating.PropDelta, 1e-9, "prop_delta should equal min_active_P (100) minus now (105)")
}

// TestScenario_LimitBreakDispatchesContinuously is the limit-break scenario: with allow_limit_break enabled
// and no other schedulable client, a backlogged client is dispatched immediately even though its limit
// deadline has not matured. Each such dispatch is still sourced from the ready ordering, so it counts toward
// prop_sched_count, not limit_break_sched_count, which this implementation reserves for the (unenabled)
// proportional-heap branch.
func TestScenario_LimitBreakDispatchesContinuously(t *testing.T) {
	core := newTestCore(t, constantInfo(types.NewClientInfo(0, 1, 1)), Config{AllowLimitBreak: true})
	for i := 0; i < 5; i++ {
		require.NoError(t, core.AddRequest("req", "a", types.ReqParams{}, 0, 0))
	}

	for i := 0; i < 5; i++ {
		outcome := core.PullRequest(types.Time(0))
		require.Equal(t, OutcomeReturning, outcome.Kind, "limit break must keep dispatching despite L not matured")
		assert.Equal(t, types.PhasePriority, outcome.Phase)
	}

	assert.EqualValues(t, 0, core.LimitBreakSchedCount())
	assert.EqualValues(t, 5, core.PropSchedCount())
	assert.EqualValues(t, 0, core.ReservSchedCount())
}

// TestScenario_AgingMarksIdleThenErases is the aging scenario: idle_age=100ms, erase_age=200ms,
// check_time=50ms. A client that submits once and then goes silent must be marked idle once its last
// activity predates idle_age, and erased once it predates erase_age. The background aging goroutine is
// stopped immediately after construction so the test can drive runAgingPass deterministically against the
// fake clock instead of racing a real ticker.
func TestScenario_AgingMarksIdleThenErases(t *testing.T) {
	clk := testclock.NewFakeClock(time.Unix(0, 0))
	cfg := Config{Registry: registry.Config{
		IdleAge:   100 * time.Millisecond,
		EraseAge:  200 * time.Millisecond,
		CheckTime: 50 * time.Millisecond,
	}}
	core, err := New[string, string](constantInfo(types.NewClientInfo(1, 1, 0)), cfg, clk, logr.Discard())
	require.NoError(t, err)
	core.Close()

	require.NoError(t, core.AddRequest("req", "a", types.ReqParams{}, 0, 0))
	rec, ok := core.registry.Find("a")
	require.True(t, ok)

	// Passes at wall times 0, 50, 100, 150ms.
	for i := 0; i < 4; i++ {
		core.runAgingPass()
		clk.Step(50 * time.Millisecond)
	}
	assert.True(t, rec.Idle, "client should be idle once its last activity predates idle_age")

	// Passes at wall times 200, 250ms.
	for i := 0; i < 2; i++ {
		core.runAgingPass()
		clk.Step(50 * time.Millisecond)
	}
	_, stillPresent := core.registry.Find("a")
	assert.False(t, stillPresent, "client should be erased once its last activity predates erase_age")
}
