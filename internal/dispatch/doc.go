// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch maps verbs onto store, matcher and executor operations.
//
// Exit codes are stable:
//
//	0  success
//	1  usage or unexpected error
//	2  validation error (empty name or body, invalid edit)
//	3  duplicate name
//	4  not found, or nothing matched
//	5  corrupt store
//	6  persist failure
//	7  spawn failure
//	8  editor failed or aborted
//	9  selection aborted or invalid
//
// The run verb exits with the child's exit code.
package dispatch
