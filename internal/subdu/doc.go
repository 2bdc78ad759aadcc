// Package subdu measures the disk usage of each immediate subdirectory of a root.
//
// The root is listed once, every subdirectory becomes one task on a bounded
// worker pool, and each task walks its tree with fastwalk, summing regular
// file sizes. Results are delivered to a single consumer in completion order.
// Cancelling the context terminates the pool and abandons outstanding work.
package subdu
