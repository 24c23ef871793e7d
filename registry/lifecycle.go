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

package registry

import (
	"container/list"

	"github.com/foodotbar/dmclock/types"
)

// MarkPoint is a (wall_time, tick) sample recorded periodically by the idle/lifecycle manager. The aging
// pass walks the deque of MarkPoints to translate a wall-clock idle/erase horizon into a tick threshold that
// can be compared cheaply against each client's LastTick.
type MarkPoint struct {
	WallTime types.Time
	Tick     uint64
}

// MarkPointLog is the deque of MarkPoints described in the idle/lifecycle manager. It is append-only except
// for eviction of its oldest entries once they age past EraseAge.
type MarkPointLog struct {
	points *list.List // of MarkPoint, oldest at Front
}

// NewMarkPointLog constructs an empty MarkPointLog.
func NewMarkPointLog() *MarkPointLog {
	return &MarkPointLog{points: list.New()}
}

// Record appends a new (wallNow, tick) sample to the back of the log.
func (l *MarkPointLog) Record(wallNow types.Time, tick uint64) {
	l.points.PushBack(MarkPoint{WallTime: wallNow, Tick: tick})
}

// AgingThresholds is the result of one aging pass over the MarkPointLog: the tick thresholds a client's
// LastTick must be at or below to be considered erase-eligible or idle-eligible, respectively. A zero value
// for either means "no client is eligible on this axis yet" (there is no MarkPoint old enough).
type AgingThresholds struct {
	EraseTick uint64
	IdleTick  uint64
}

// Sweep evicts MarkPoints older than eraseAge, then computes the erase and idle tick thresholds as of
// wallNow, per the idle/lifecycle manager's four-step pass:
//  1. (the caller has already called Record for this pass)
//  2. evict leading MarkPoints older than eraseAge; the last evicted point's tick is EraseTick (0 if none
//     were evicted).
//  3. walk the remaining MarkPoints; the last one whose wall time predates wallNow-idleAge gives IdleTick (0
//     if none).
func (l *MarkPointLog) Sweep(wallNow types.Time, idleAge, eraseAge float64) AgingThresholds {
	var thresholds AgingThresholds

	eraseHorizon := wallNow - types.Time(eraseAge)
	for {
		front := l.points.Front()
		if front == nil {
			break
		}
		mp := front.Value.(MarkPoint)
		if mp.WallTime >= eraseHorizon {
			break
		}
		thresholds.EraseTick = mp.Tick
		l.points.Remove(front)
	}

	idleHorizon := wallNow - types.Time(idleAge)
	for e := l.points.Front(); e != nil; e = e.Next() {
		mp := e.Value.(MarkPoint)
		if mp.WallTime >= idleHorizon {
			break
		}
		thresholds.IdleTick = mp.Tick
	}

	return thresholds
}
