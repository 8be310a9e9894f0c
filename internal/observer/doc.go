// Package observer watches a file or directory tree by polling.
//
// An Observer records the modification time of every leaf file under its
// target when it is created, then wakes on a fixed interval, re-enumerates
// the target and reports each difference to a Handler as Created, Modified
// or Erased. Only changes after construction are reported.
//
// Change detection is timestamp based. A rewrite that leaves the
// modification time unchanged is not seen.
//
// Within one poll cycle every Erased change is delivered before any Created
// or Modified change. A file replaced between two polls still exists when
// the cycle runs and is reported as Modified if its timestamp moved. Once a
// path has been reported Erased, recreating it is reported as Created.
package observer
