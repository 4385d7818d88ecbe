// SPDX-License-Identifier: EPL-2.0

// Package dataset resolves the waveform data a view is drawn from.
//
// A configured URI collapses to exactly one Source:
//
//	URI{ArrayBuffer: "a.dat", JSON: "a.json"}.Source() // Binary{"a.dat"}
//	URI{JSON: "a.json"}.Source()                       // JSON{"a.json"}
//	URI{URL: "a.json"}.Source()                        // BareURL{"a.json"}
//	URI{}.Source()                                     // Local{}
//
// Remote sources are fetched with one unconditional GET. Binary sources are
// never downgraded to JSON: when binary parsing is disabled, resolution fails
// with ErrCapabilityUnavailable.
package dataset
