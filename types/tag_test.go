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

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodotbar/dmclock/types"
)

func TestNextTag_RejectsDisabledReservationAndWeight(t *testing.T) {
	info := types.NewClientInfo(0, 0, 5)
	_, err := types.NextTag(types.ZeroTag, info, types.ReqParams{}, 0, 0)
	require.ErrorIs(t, err, types.ErrClientParametersRejected)
}

func TestNextTag_DisabledAxisIsInfinite(t *testing.T) {
	info := types.NewClientInfo(0, 1, 0)
	tag, err := types.NextTag(types.ZeroTag, info, types.ReqParams{}, 0, 0)
	require.NoError(t, err)
	assert.True(t, tag.R.IsInf(), "reservation disabled, R should be +Inf")
	assert.True(t, tag.L.IsInf(), "limit disabled, L should be -Inf")
	assert.False(t, tag.Ready, "ready always starts false")
}

func TestNextTag_MonotoneUnderAdvancingTime(t *testing.T) {
	info := types.NewClientInfo(2, 1, 10)
	prev := types.ZeroTag
	now := types.Time(0)
	for i := 0; i < 20; i++ {
		now += 0.25
		tag, err := types.NextTag(prev, info, types.ReqParams{}, now, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, float64(tag.R), float64(prev.R))
		assert.GreaterOrEqual(t, float64(tag.P), float64(prev.P))
		assert.GreaterOrEqual(t, float64(tag.L), float64(prev.L))
		prev = tag
	}
}

func TestNextTag_ClampsToNowAfterIdlePeriod(t *testing.T) {
	info := types.NewClientInfo(1, 1, 1)
	prev, err := types.NextTag(types.ZeroTag, info, types.ReqParams{}, 0, 0)
	require.NoError(t, err)

	// Simulate a long idle gap: virtual time (prev.R/P/L) is far behind wall time now.
	later := types.Time(1000)
	tag, err := types.NextTag(prev, info, types.ReqParams{}, later, 0)
	require.NoError(t, err)
	assert.Equal(t, later, tag.R)
	assert.Equal(t, later, tag.P)
	assert.Equal(t, later, tag.L)
}

func TestNextTag_RhoAndDeltaAdvanceVirtualClockFaster(t *testing.T) {
	info := types.NewClientInfo(1, 1, 0)
	base, err := types.NextTag(types.ZeroTag, info, types.ReqParams{}, 0, 0)
	require.NoError(t, err)

	withFeedback, err := types.NextTag(base, info, types.ReqParams{Rho: 4, Delta: 4}, 0, 0)
	require.NoError(t, err)

	withoutFeedback, err := types.NextTag(base, info, types.ReqParams{}, 0, 0)
	require.NoError(t, err)

	assert.Greater(t, float64(withFeedback.R), float64(withoutFeedback.R))
	assert.Greater(t, float64(withFeedback.P), float64(withoutFeedback.P))
}
