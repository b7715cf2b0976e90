// Package mmap provides anonymous memory mappings for off-heap record storage.
//
// # Overview
//
// An anonymous mapping is read-write memory obtained directly from the
// operating system. The Go garbage collector neither scans nor moves it, which
// makes it a good home for the large flat columns of an arena that welds
// millions of vertices: the collector never has to walk them and the process
// does not pay for them on every GC cycle.
//
// # Usage
//
//	m, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	defer m.Close()
//
//	buf := m.Bytes()
//	_ = m.Advise(mmap.AccessRandom)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE, madvise(2) hints
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT (Advise is a no-op)
//
// # Thread Safety
//
// Close is idempotent and guarded by an atomic flag. Callers must ensure no
// goroutine touches Bytes() after Close returns.
package mmap
