// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package docstore is the write side of the Firestore document store.
//
// It exposes exactly one mutation, a full-document Set, behind the Writer
// interface. Callers construct a Writer explicitly through an Opener and
// must Close it; nothing here holds a process-wide client.
package docstore
