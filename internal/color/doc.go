// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes.
//
// Colour is disabled when NO_COLOR is set, forced when FORCE_COLOR is set,
// and otherwise enabled only when the destination is a terminal
// (detected with golang.org/x/term).
package color
