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

// Package priority maintains the three logical orderings the scheduling core reads from: reservation order,
// limit order, and ready order, each keyed on the head of a client's FIFO. Every ordering is available in
// two interchangeable backings — an indexed binary heap, good for many clients, and a linear-scan vector,
// good for few — selected once at construction time. Both backings are required to produce identical top()
// results for the same sequence of mutations; tests in this package run against both.
package priority
