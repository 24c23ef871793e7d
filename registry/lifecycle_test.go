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

package registry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodotbar/dmclock/registry"
)

func TestConfig_ValidateAndApplyDefaults_AppliesDefaults(t *testing.T) {
	cfg, err := registry.Config{}.ValidateAndApplyDefaults()
	require.NoError(t, err)
	assert.Positive(t, cfg.IdleAge)
	assert.Positive(t, cfg.EraseAge)
	assert.Positive(t, cfg.CheckTime)
}

func TestConfig_ValidateAndApplyDefaults_RejectsEraseBeforeIdle(t *testing.T) {
	_, err := registry.Config{IdleAge: 100 * time.Millisecond, EraseAge: 50 * time.Millisecond, CheckTime: 10 * time.Millisecond}.ValidateAndApplyDefaults()
	require.Error(t, err)
}

func TestConfig_ValidateAndApplyDefaults_RejectsCheckTimeAtOrAboveIdleAge(t *testing.T) {
	_, err := registry.Config{IdleAge: 100 * time.Millisecond, EraseAge: 200 * time.Millisecond, CheckTime: 100 * time.Millisecond}.ValidateAndApplyDefaults()
	require.Error(t, err)
}

func TestMarkPointLog_Sweep(t *testing.T) {
	log := registry.NewMarkPointLog()
	// Scenario S6: idle_age=100ms, erase_age=200ms, check_time=50ms; one submission at tick 1, t=0.
	log.Record(0, 1)

	// At t=50ms nothing has aged yet.
	log.Record(0.05, 1)
	th := log.Sweep(0.05, 0.1, 0.2)
	assert.Zero(t, th.IdleTick)
	assert.Zero(t, th.EraseTick)

	// At t=150ms the first mark point (t=0) predates the idle horizon (150ms-100ms=50ms... the t=0 point
	// qualifies), so idle_tick should now point at tick 1.
	log.Record(0.15, 1)
	th = log.Sweep(0.15, 0.1, 0.2)
	assert.Equal(t, uint64(1), th.IdleTick)
	assert.Zero(t, th.EraseTick)

	// At t=250ms the erase horizon (250ms-200ms=50ms) now also passes the earliest points.
	log.Record(0.25, 1)
	th = log.Sweep(0.25, 0.1, 0.2)
	assert.Equal(t, uint64(1), th.EraseTick)
}
