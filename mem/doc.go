// Package mem provides the refcounted allocation header and the allocator
// interface consumed by the container core.
//
// An Allocation fronts a region of typed slot storage. Containers that own
// their memory hold a non-nil *Allocation and participate in its use count;
// static (borrowed) containers hold slot storage without an Allocation.
//
// Two allocators are provided:
//
//   - Standard: the process allocator. Geometric reserve growth, optional
//     atomic use counts, an optional managed index for ownership queries,
//     and allocation statistics for instrumentation.
//   - Pool: a bulk allocator for small uniform nodes (out-of-line table
//     pairs). Chunk sizes grow geometrically from 4 up to 16384 nodes.
//
// Set BLOCKKIT_LOG_ALLOC to any non-empty value to log allocator activity.
package mem
