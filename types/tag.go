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

package types

import "math"

// RequestTag is the three-coordinate stamp dmClock's tag calculator attaches to every request: a
// reservation deadline R, a proportion virtual-time tag P, and a limit deadline L, plus a Ready flag that
// starts false and is promoted to true (never demoted) once wall time reaches L.
//
// A disabled axis is represented by an infinity rather than by a zero, so that comparisons ("is this
// client's head request reservation-eligible yet") never need a separate "is this axis enabled" check: +Inf
// never compares <= any finite now, and -Inf always does.
type RequestTag struct {
	R     Time
	P     Time
	L     Time
	Ready bool
}

// ZeroTag is the seed tag for a client that has never submitted before: every coordinate at the time
// origin, not ready. NextTag uses it as T_prev for a client's very first request.
var ZeroTag = RequestTag{R: 0, P: 0, L: 0, Ready: false}

// NextTag computes the tag for a new request given the previous tag of the same client (seeded from
// ZeroTag for a client's first request), that client's service parameters, the feedback parameters supplied
// with this request, the current time, and the request's additive cost.
//
// It returns ErrClientParametersRejected if info has both reservation and weight disabled, since such a
// client could never be dispatched by either the reservation or the priority phase of the scheduling core.
func NextTag(prev RequestTag, info ClientInfo, params ReqParams, now Time, cost float64) (RequestTag, error) {
	if info.Reservation <= 0 && info.Weight <= 0 {
		return RequestTag{}, ErrClientParametersRejected
	}

	tag := RequestTag{Ready: false}

	if info.Reservation > 0 {
		rho := float64(params.Rho)
		if rho < 1 {
			rho = 1
		}
		tag.R = Time(cost) + maxTime(now, prev.R+Time(info.invReservation*rho))
	} else {
		tag.R = Time(math.Inf(1))
	}

	if info.Weight > 0 {
		delta := float64(params.Delta)
		if delta < 1 {
			delta = 1
		}
		tag.P = maxTime(now, prev.P+Time(info.invWeight*delta))
	} else {
		tag.P = Time(math.Inf(1))
	}

	if info.Limit > 0 {
		tag.L = maxTime(now, prev.L+Time(info.invLimit))
	} else {
		tag.L = Time(math.Inf(-1))
	}

	return tag, nil
}

func maxTime(a, b Time) Time {
	if a > b {
		return a
	}
	return b
}
