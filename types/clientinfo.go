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

// ClientInfo holds a client's three per-client service parameters. It is immutable once a client has been
// registered: a priority change for an existing client is modeled as registering a new client, not as
// mutating this struct in place.
//
// The inverse fields are precomputed once, at construction, because the tag formulas in NextTag divide by
// each parameter on every single request; a zero parameter means "disabled" and its inverse is pinned at
// zero rather than computed. NextTag checks each parameter itself and gives a disabled axis an infinite
// coordinate (+Inf for R and P, -Inf for L).
type ClientInfo struct {
	// Reservation is the minimum guaranteed service rate, in requests per second. Zero disables the
	// reservation axis for this client.
	Reservation float64
	// Weight is the relative share of capacity remaining after reservations are honored. Zero disables the
	// proportional axis for this client.
	Weight float64
	// Limit is the maximum service rate, in requests per second. Zero disables the limit axis (the client is
	// never throttled).
	Limit float64

	invReservation float64
	invWeight      float64
	invLimit       float64
}

// NewClientInfo constructs a ClientInfo from the three service parameters, precomputing their inverses. All
// three parameters must be non-negative; NewClientInfo does not itself reject r == w == 0, since that
// violation is only observable once a tag is actually computed (see NextTag).
func NewClientInfo(reservation, weight, limit float64) ClientInfo {
	return ClientInfo{
		Reservation:    reservation,
		Weight:         weight,
		Limit:          limit,
		invReservation: invOrZero(reservation),
		invWeight:      invOrZero(weight),
		invLimit:       invOrZero(limit),
	}
}

// InvReservation returns 1/Reservation, or 0 if the reservation axis is disabled for this client. This is
// the per-dispatch reduction amount subtracted from every outstanding R tag when a request is served from
// the ready ordering rather than the reservation ordering.
func (ci ClientInfo) InvReservation() float64 {
	return ci.invReservation
}

func invOrZero(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}

// ClientInfoFunc lazily supplies a ClientInfo the first time a given client submits a request. The
// registry calls it at most once per client, on the client's first get-or-create.
type ClientInfoFunc[C comparable] func(client C) ClientInfo
