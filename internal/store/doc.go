// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package store is the durable owner of every saved command.
//
// Entries live in a single YAML file. The file is read once per invocation,
// mutated in memory and written back with Persist, which replaces the file
// atomically (temp file in the same directory, fsync, rename) so a crash never
// leaves a half written store behind.
//
// A file that cannot be parsed is never guessed at: Load fails with
// ErrCorruptStore and the store refuses every later mutation so the damage is
// not compounded.
package store
